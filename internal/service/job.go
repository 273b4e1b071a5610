package service

import (
	"context"
	"errors"

	"github.com/joblane/joblane/internal/model"
	"github.com/joblane/joblane/internal/repository"
)

// Job service errors.
var (
	ErrInvalidEquity = errors.New("equity must be between 0 and 1")
	ErrInvalidSalary = errors.New("salary cannot be negative")
)

// JobService handles job business logic.
type JobService struct {
	repo *repository.Repository
}

// NewJobService creates a new JobService.
func NewJobService(repo *repository.Repository) *JobService {
	return &JobService{repo: repo}
}

// CreateJobInput defines input for creating a job.
type CreateJobInput struct {
	Title         string
	Salary        *int
	Equity        *float64
	CompanyHandle string
}

// CreateJob creates a new job under an existing company.
func (s *JobService) CreateJob(ctx context.Context, input CreateJobInput) (*model.Job, error) {
	if err := validateJobFields(input.Salary, input.Equity); err != nil {
		return nil, err
	}

	job := &model.Job{
		Title:         input.Title,
		Salary:        input.Salary,
		Equity:        input.Equity,
		CompanyHandle: input.CompanyHandle,
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// GetJob retrieves a job with its company.
func (s *JobService) GetJob(ctx context.Context, id int64) (*model.Job, error) {
	return s.repo.GetJob(ctx, id)
}

// ListJobs retrieves jobs matching the filter.
func (s *JobService) ListJobs(ctx context.Context, filter repository.JobFilter) ([]*model.Job, error) {
	return s.repo.ListJobs(ctx, filter)
}

// UpdateJobInput defines the mutable job fields. Nil fields are left
// untouched; id and company_handle are immutable.
type UpdateJobInput struct {
	Title  *string
	Salary *int
	Equity *float64
}

// UpdateJob applies a partial update to a job.
func (s *JobService) UpdateJob(ctx context.Context, id int64, input UpdateJobInput) (*model.Job, error) {
	if err := validateJobFields(input.Salary, input.Equity); err != nil {
		return nil, err
	}

	set := &repository.UpdateSet{}
	if input.Title != nil {
		set.Set("title", *input.Title)
	}
	if input.Salary != nil {
		set.Set("salary", *input.Salary)
	}
	if input.Equity != nil {
		set.Set("equity", *input.Equity)
	}

	if set.Len() == 0 {
		return nil, ErrNoUpdateData
	}

	return s.repo.UpdateJob(ctx, id, set)
}

// DeleteJob removes a job.
func (s *JobService) DeleteJob(ctx context.Context, id int64) error {
	return s.repo.DeleteJob(ctx, id)
}

func validateJobFields(salary *int, equity *float64) error {
	if salary != nil && *salary < 0 {
		return ErrInvalidSalary
	}
	if equity != nil && (*equity < 0 || *equity > 1) {
		return ErrInvalidEquity
	}
	return nil
}
