package dto

import (
	"errors"

	"github.com/joblane/joblane/internal/model"
)

// CreateJobRequest is the payload for POST /jobs.
type CreateJobRequest struct {
	Title         string   `json:"title"`
	Salary        *int     `json:"salary"`
	Equity        *float64 `json:"equity"`
	CompanyHandle string   `json:"company_handle"`
}

// Validate checks required fields.
func (r *CreateJobRequest) Validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	if r.CompanyHandle == "" {
		return errors.New("company_handle is required")
	}
	return nil
}

// UpdateJobRequest is the payload for PATCH /jobs/{id}. The id and
// company_handle are immutable; sending either is rejected as an
// unknown field at decode time.
type UpdateJobRequest struct {
	Title  *string  `json:"title"`
	Salary *int     `json:"salary"`
	Equity *float64 `json:"equity"`
}

// JobResponse wraps a single job.
type JobResponse struct {
	Job *model.Job `json:"job"`
}

// JobListResponse wraps a job listing.
type JobListResponse struct {
	Jobs []*model.Job `json:"jobs"`
}
