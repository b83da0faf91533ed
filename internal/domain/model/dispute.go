package model

import (
	"errors"
	"strings"
	"time"
)

// DisputeStatus is the admin handling status of a dispute.
type DisputeStatus string

const (
	DisputeOpen             DisputeStatus = "OPEN"
	DisputeUnderReview      DisputeStatus = "UNDER_REVIEW"
	DisputeAwaitingEvidence DisputeStatus = "AWAITING_EVIDENCE"
	DisputeResolved         DisputeStatus = "RESOLVED"
	DisputeClosed           DisputeStatus = "CLOSED"
)

// DisputeStatuses lists statuses in the order the filter dropdown shows them.
var DisputeStatuses = []DisputeStatus{
	DisputeOpen, DisputeUnderReview, DisputeAwaitingEvidence, DisputeResolved, DisputeClosed,
}

// Valid returns true if the DisputeStatus is known.
func (s DisputeStatus) Valid() bool {
	for _, v := range DisputeStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Final reports whether the dispute needs no further admin action.
func (s DisputeStatus) Final() bool {
	return s == DisputeResolved || s == DisputeClosed
}

// DisputeType categorises what the dispute is about.
type DisputeType string

const (
	DisputeTypePayment DisputeType = "PAYMENT"
	DisputeTypeQuality DisputeType = "QUALITY"
	DisputeTypeNoShow  DisputeType = "NO_SHOW"
	DisputeTypeOther   DisputeType = "OTHER"
)

// DisputeTypes lists known dispute types.
var DisputeTypes = []DisputeType{DisputeTypePayment, DisputeTypeQuality, DisputeTypeNoShow, DisputeTypeOther}

// Valid returns true if the DisputeType is known.
func (t DisputeType) Valid() bool {
	for _, v := range DisputeTypes {
		if t == v {
			return true
		}
	}
	return false
}

// DisputePriority is the admin triage priority.
type DisputePriority string

const (
	PriorityLow    DisputePriority = "LOW"
	PriorityMedium DisputePriority = "MEDIUM"
	PriorityHigh   DisputePriority = "HIGH"
	PriorityUrgent DisputePriority = "URGENT"
)

// DisputePriorities lists known priorities, lowest first.
var DisputePriorities = []DisputePriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Valid returns true if the DisputePriority is known.
func (p DisputePriority) Valid() bool {
	for _, v := range DisputePriorities {
		if p == v {
			return true
		}
	}
	return false
}

// Dispute is raised by a customer or contractor about a job.
type Dispute struct {
	ID                 string          `json:"id"`
	JobID              string          `json:"jobId"`
	JobTitle           string          `json:"jobTitle,omitempty"`
	RaisedBy           string          `json:"raisedBy"`
	RaisedByRole       UserRole        `json:"raisedByRole,omitempty"`
	Status             DisputeStatus   `json:"status"`
	Type               DisputeType     `json:"type"`
	Priority           DisputePriority `json:"priority"`
	Description        string          `json:"description"`
	Resolution         string          `json:"resolution,omitempty"`
	RefundIssued       bool            `json:"refundIssued"`
	CommissionAdjusted bool            `json:"commissionAdjusted"`
	AdminNotes         string          `json:"adminNotes,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	ResolvedAt         *time.Time      `json:"resolvedAt,omitempty"`
}

// ResolveDisputeRequest updates a dispute from the admin dialog.
type ResolveDisputeRequest struct {
	Status             DisputeStatus   `json:"status"`
	Priority           DisputePriority `json:"priority,omitempty"`
	Resolution         string          `json:"resolution,omitempty"`
	RefundIssued       bool            `json:"refundIssued"`
	CommissionAdjusted bool            `json:"commissionAdjusted"`
	AdminNotes         string          `json:"adminNotes,omitempty"`
}

// Validate validates the ResolveDisputeRequest fields.
func (r *ResolveDisputeRequest) Validate() error {
	if !r.Status.Valid() {
		return errors.New("invalid dispute status")
	}
	if r.Priority != "" && !r.Priority.Valid() {
		return errors.New("invalid dispute priority")
	}
	if r.Status.Final() && strings.TrimSpace(r.Resolution) == "" {
		return errors.New("resolution is required to resolve or close a dispute")
	}
	if len(r.AdminNotes) > 2000 {
		return errors.New("admin notes must be 2000 characters or fewer")
	}
	return nil
}

// MovesMoney reports whether the resolution refunds the customer or changes commission.
func (r *ResolveDisputeRequest) MovesMoney() bool {
	return r.RefundIssued || r.CommissionAdjusted
}
