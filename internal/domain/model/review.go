package model

import (
	"errors"
	"time"
)

// Review is a customer's rating of a contractor after a completed job.
type Review struct {
	ID           string    `json:"id"`
	JobID        string    `json:"jobId"`
	ContractorID string    `json:"contractorId"`
	CustomerID   string    `json:"customerId"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateReviewRequest submits a review.
type CreateReviewRequest struct {
	JobID   string `json:"jobId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// Validate validates the CreateReviewRequest fields.
func (r *CreateReviewRequest) Validate() error {
	if r.JobID == "" {
		return errors.New("job id is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}
