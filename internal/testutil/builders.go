package testutil

import (
	"time"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/domain/model"
)

// JobBuilder provides a fluent interface for building model.Job fixtures.
type JobBuilder struct {
	job model.Job
}

// NewJob starts a POSTED job owned by customer "cust-1".
func NewJob(id string) *JobBuilder {
	return &JobBuilder{job: model.Job{
		ID:         id,
		Title:      "Replace kitchen tap",
		Location:   "Leeds",
		Trade:      "plumbing",
		Status:     model.JobStatusPosted,
		Budget:     model.Pounds(150),
		CustomerID: "cust-1",
		CreatedAt:  TestTime(),
		UpdatedAt:  TestTime(),
	}}
}

// WithStatus sets the job status.
func (b *JobBuilder) WithStatus(s model.JobStatus) *JobBuilder {
	b.job.Status = s
	return b
}

// WithCustomer sets the owning customer.
func (b *JobBuilder) WithCustomer(id string) *JobBuilder {
	b.job.CustomerID = id
	return b
}

// WithApplication adds a pending application from contractorID (user id "u-"+contractorID).
func (b *JobBuilder) WithApplication(contractorID string) *JobBuilder {
	b.job.Applications = append(b.job.Applications, model.JobApplication{
		ID:               "app-" + contractorID,
		JobID:            b.job.ID,
		ContractorID:     contractorID,
		ContractorUserID: "u-" + contractorID,
		Status:           model.ApplicationPending,
		CreatedAt:        TestTime(),
	})
	return b
}

// WithClaim records contractorID as having bought the lead and claimed the win.
func (b *JobBuilder) WithClaim(contractorID string) *JobBuilder {
	at := TestTime().Add(time.Hour)
	b.job.JobAccess = append(b.job.JobAccess, model.JobAccess{
		ContractorID: contractorID,
		ClaimedWon:   true,
		CreditUsed:   true,
		AccessedAt:   &at,
	})
	return b
}

// WonBy sets the winning contractor.
func (b *JobBuilder) WonBy(contractorID string) *JobBuilder {
	b.job.WonByContractorID = &contractorID
	return b
}

// WithFinalAmount sets the proposed final amount.
func (b *JobBuilder) WithFinalAmount(m model.Money) *JobBuilder {
	b.job.FinalAmount = &m
	return b
}

// Build returns a copy of the job.
func (b *JobBuilder) Build() model.Job {
	j := b.job
	j.Applications = append([]model.JobApplication(nil), b.job.Applications...)
	j.JobAccess = append([]model.JobAccess(nil), b.job.JobAccess...)
	return j
}

// ContractorSession returns a signed-in contractor session for contractorID.
func ContractorSession(id, contractorID string) domainauth.Session {
	return domainauth.Session{
		ID:           id,
		UserID:       "u-" + contractorID,
		ContractorID: contractorID,
		Email:        contractorID + "@example.com",
		Role:         domainauth.RoleContractor,
		Tokens:       domainauth.Tokens{AuthToken: "tok-" + contractorID},
		ExpiresAt:    TestTime().Add(24 * 365 * time.Hour * 10),
	}
}

// CustomerSession returns a signed-in customer session for customerID.
func CustomerSession(id, customerID string) domainauth.Session {
	return domainauth.Session{
		ID:         id,
		UserID:     "u-" + customerID,
		CustomerID: customerID,
		Email:      customerID + "@example.com",
		Role:       domainauth.RoleCustomer,
		Tokens:     domainauth.Tokens{AuthToken: "tok-" + customerID},
		ExpiresAt:  TestTime().Add(24 * 365 * time.Hour * 10),
	}
}

// AdminSession returns a signed-in admin session.
func AdminSession(id string) domainauth.Session {
	return domainauth.Session{
		ID:        id,
		UserID:    "admin-1",
		Email:     "ops@example.com",
		FirstName: "Olu",
		Role:      domainauth.RoleAdmin,
		Tokens:    domainauth.Tokens{AdminToken: "admin-tok"},
		ExpiresAt: TestTime().Add(24 * 365 * time.Hour * 10),
	}
}
