// Package model defines the marketplace resources the console reads from and submits to the backend.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// JobStatus is the lifecycle status of a job.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type JobStatus string

const (
	JobStatusPosted                         JobStatus = "POSTED"
	JobStatusInProgress                     JobStatus = "IN_PROGRESS"
	JobStatusAwaitingFinalPriceConfirmation JobStatus = "AWAITING_FINAL_PRICE_CONFIRMATION"
	JobStatusCompleted                      JobStatus = "COMPLETED"
	JobStatusCancelled                      JobStatus = "CANCELLED"
	JobStatusDisputed                       JobStatus = "DISPUTED"
)

var validJobStatuses = map[JobStatus]bool{
	JobStatusPosted:                         true,
	JobStatusInProgress:                     true,
	JobStatusAwaitingFinalPriceConfirmation: true,
	JobStatusCompleted:                      true,
	JobStatusCancelled:                      true,
	JobStatusDisputed:                       true,
}

// Valid returns true if the JobStatus is known.
func (s JobStatus) Valid() bool { return validJobStatuses[s] }

// UnmarshalText normalises case so query params like "in_progress" parse.
func (s *JobStatus) UnmarshalText(text []byte) error {
	v := JobStatus(strings.ToUpper(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid JobStatus: %q", string(text))
	}
	*s = v
	return nil
}

// Label returns a human readable status.
func (s JobStatus) Label() string {
	switch s {
	case JobStatusPosted:
		return "Posted"
	case JobStatusInProgress:
		return "In progress"
	case JobStatusAwaitingFinalPriceConfirmation:
		return "Awaiting price confirmation"
	case JobStatusCompleted:
		return "Completed"
	case JobStatusCancelled:
		return "Cancelled"
	case JobStatusDisputed:
		return "Disputed"
	default:
		return string(s)
	}
}

// ApplicationStatus is the status of a contractor's application to a job.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// Valid returns true if the ApplicationStatus is known.
func (s ApplicationStatus) Valid() bool {
	return s == ApplicationPending || s == ApplicationAccepted || s == ApplicationRejected
}

// Job is a customer's job posting and its progress through the workflow.
type Job struct {
	ID                       string           `json:"id"`
	Title                    string           `json:"title"`
	Description              string           `json:"description,omitempty"`
	Location                 string           `json:"location,omitempty"`
	Trade                    string           `json:"trade,omitempty"`
	Status                   JobStatus        `json:"status"`
	Budget                   Money            `json:"budget"`
	FinalAmount              *Money           `json:"finalAmount,omitempty"`
	ContractorProposedAmount *Money           `json:"contractorProposedAmount,omitempty"`
	WonByContractorID        *string          `json:"wonByContractorId,omitempty"`
	CustomerID               string           `json:"customerId"`
	CustomerConfirmed        bool             `json:"customerConfirmed"`
	Applications             []JobApplication `json:"applications,omitempty"`
	JobAccess                []JobAccess      `json:"jobAccess,omitempty"`
	CreatedAt                time.Time        `json:"createdAt"`
	UpdatedAt                time.Time        `json:"updatedAt"`
}

// JobApplication is a contractor's application to a job.
type JobApplication struct {
	ID           string `json:"id"`
	JobID        string `json:"jobId"`
	ContractorID string `json:"contractorId"`
	// ContractorUserID is the user account behind ContractorID.
	ContractorUserID string            `json:"contractorUserId,omitempty"`
	Status           ApplicationStatus `json:"status"`
	ProposedRate     *Money            `json:"proposedRate,omitempty"`
	CoverLetter      string            `json:"coverLetter,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// JobAccess records a contractor's lead purchase and won claim for one job.
type JobAccess struct {
	ContractorID string     `json:"contractorId"`
	ClaimedWon   bool       `json:"claimedWon"`
	CreditUsed   bool       `json:"creditUsed"`
	AccessedAt   *time.Time `json:"accessedAt,omitempty"`
}

// ApplicationFor returns the contractor's application, if any.
func (j *Job) ApplicationFor(contractorID string) (*JobApplication, bool) {
	if j == nil || contractorID == "" {
		return nil, false
	}
	for i := range j.Applications {
		if j.Applications[i].ContractorID == contractorID {
			return &j.Applications[i], true
		}
	}
	return nil, false
}

// AccessFor returns the contractor's lead access record, if any.
func (j *Job) AccessFor(contractorID string) (*JobAccess, bool) {
	if j == nil || contractorID == "" {
		return nil, false
	}
	for i := range j.JobAccess {
		if j.JobAccess[i].ContractorID == contractorID {
			return &j.JobAccess[i], true
		}
	}
	return nil, false
}

// ClaimedWonBy returns contractor ids that asserted they won the job.
func (j *Job) ClaimedWonBy() []string {
	if j == nil {
		return nil
	}
	var ids []string
	for _, a := range j.JobAccess {
		if a.ClaimedWon {
			ids = append(ids, a.ContractorID)
		}
	}
	return ids
}

// HasPriceProposal reports whether final price fields are meaningful for the current status.
func (j *Job) HasPriceProposal() bool {
	if j == nil {
		return false
	}
	return j.Status == JobStatusAwaitingFinalPriceConfirmation || j.Status == JobStatusCompleted ||
		j.Status == JobStatusDisputed
}

// CreateJobRequest posts a new job.
type CreateJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Trade       string `json:"trade,omitempty"`
	Budget      Money  `json:"budget"`
}

// Validate validates the CreateJobRequest fields.
func (r *CreateJobRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(r.Location) == "" {
		return errors.New("location is required")
	}
	if r.Budget <= 0 {
		return errors.New("budget must be greater than zero")
	}
	return nil
}

// ApplyRequest applies a contractor to a job.
type ApplyRequest struct {
	ProposedRate *Money `json:"proposedRate,omitempty"`
	CoverLetter  string `json:"coverLetter,omitempty"`
}
