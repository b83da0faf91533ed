package model

import (
	"net/url"
	"strconv"
	"strings"
)

// Page is one page of a backend list endpoint.
type Page[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// HasNext reports whether more rows exist after this page.
func (p Page[T]) HasNext() bool {
	return p.Offset+len(p.Items) < p.Total
}

// ListOptions are the paging and search params shared by list endpoints.
type ListOptions struct {
	Search string
	Limit  int
	Offset int
	Sort   string
	Dir    string
}

// Values encodes the options as backend query params, omitting zero values.
func (o ListOptions) Values() url.Values {
	q := url.Values{}
	setIf(q, "search", o.Search)
	setIf(q, "sort", o.Sort)
	setIf(q, "order", strings.ToLower(o.Dir))
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	return q
}

func setIf(q url.Values, key, value string) {
	if v := strings.TrimSpace(value); v != "" {
		q.Set(key, v)
	}
}

// JobListOptions filters job listings.
type JobListOptions struct {
	ListOptions
	Status       JobStatus
	ContractorID string
	CustomerID   string
}

// Values encodes the options as backend query params.
func (o JobListOptions) Values() url.Values {
	q := o.ListOptions.Values()
	setIf(q, "status", string(o.Status))
	setIf(q, "contractorId", o.ContractorID)
	setIf(q, "customerId", o.CustomerID)
	return q
}

// DisputeListOptions filters the admin dispute table.
type DisputeListOptions struct {
	ListOptions
	Status   DisputeStatus
	Type     DisputeType
	Priority DisputePriority
}

// Values encodes the options as backend query params.
func (o DisputeListOptions) Values() url.Values {
	q := o.ListOptions.Values()
	setIf(q, "status", string(o.Status))
	setIf(q, "type", string(o.Type))
	setIf(q, "priority", string(o.Priority))
	return q
}

// InvoiceListOptions filters the admin invoice table.
type InvoiceListOptions struct {
	ListOptions
	Status       InvoiceStatus
	ContractorID string
}

// Values encodes the options as backend query params.
func (o InvoiceListOptions) Values() url.Values {
	q := o.ListOptions.Values()
	setIf(q, "status", string(o.Status))
	setIf(q, "contractorId", o.ContractorID)
	return q
}

// PaymentListOptions filters the admin payment table.
type PaymentListOptions struct {
	ListOptions
	Status PaymentStatus
}

// Values encodes the options as backend query params.
func (o PaymentListOptions) Values() url.Values {
	q := o.ListOptions.Values()
	setIf(q, "status", string(o.Status))
	return q
}

// UserListOptions filters the admin user table.
type UserListOptions struct {
	ListOptions
	Role   UserRole
	Status UserStatus
}

// Values encodes the options as backend query params.
func (o UserListOptions) Values() url.Values {
	q := o.ListOptions.Values()
	setIf(q, "role", string(o.Role))
	setIf(q, "status", string(o.Status))
	return q
}

// SubscriptionListOptions filters the admin subscription table.
type SubscriptionListOptions struct {
	ListOptions
	Plan   SubscriptionPlan
	Status SubscriptionStatus
}

// Values encodes the options as backend query params.
func (o SubscriptionListOptions) Values() url.Values {
	q := o.ListOptions.Values()
	setIf(q, "plan", string(o.Plan))
	setIf(q, "status", string(o.Status))
	return q
}

// TransactionListOptions filters the transaction table.
type TransactionListOptions struct {
	ListOptions
	Type   TransactionType
	UserID string
}

// Values encodes the options as backend query params.
func (o TransactionListOptions) Values() url.Values {
	q := o.ListOptions.Values()
	setIf(q, "type", string(o.Type))
	setIf(q, "userId", o.UserID)
	return q
}
