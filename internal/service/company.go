// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"

	"github.com/joblane/joblane/internal/model"
	"github.com/joblane/joblane/internal/repository"
)

// Shared service errors.
var (
	ErrNoUpdateData = errors.New("no update data supplied")
	ErrBadFilter    = errors.New("min employees cannot be greater than max")
)

// CompanyService handles company business logic.
type CompanyService struct {
	repo *repository.Repository
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(repo *repository.Repository) *CompanyService {
	return &CompanyService{repo: repo}
}

// CreateCompanyInput defines input for creating a company.
type CreateCompanyInput struct {
	Handle       string
	Name         string
	NumEmployees *int
	Description  *string
	LogoURL      *string
}

// CreateCompany creates a new company.
func (s *CompanyService) CreateCompany(ctx context.Context, input CreateCompanyInput) (*model.Company, error) {
	company := &model.Company{
		Handle:       input.Handle,
		Name:         input.Name,
		NumEmployees: input.NumEmployees,
		Description:  input.Description,
		LogoURL:      input.LogoURL,
	}

	if err := s.repo.CreateCompany(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetCompany retrieves a company with its jobs.
func (s *CompanyService) GetCompany(ctx context.Context, handle string) (*model.Company, error) {
	return s.repo.GetCompany(ctx, handle)
}

// ListCompanies retrieves companies matching the filter.
// Rejects contradictory employee bounds before touching the store.
func (s *CompanyService) ListCompanies(ctx context.Context, filter repository.CompanyFilter) ([]*model.Company, error) {
	if filter.MinEmployees != nil && filter.MaxEmployees != nil &&
		*filter.MinEmployees > *filter.MaxEmployees {
		return nil, ErrBadFilter
	}
	return s.repo.ListCompanies(ctx, filter)
}

// UpdateCompanyInput defines the mutable company fields. Nil fields are
// left untouched; Handle is immutable and not represented here.
type UpdateCompanyInput struct {
	Name         *string
	NumEmployees *int
	Description  *string
	LogoURL      *string
}

// UpdateCompany applies a partial update to a company.
func (s *CompanyService) UpdateCompany(ctx context.Context, handle string, input UpdateCompanyInput) (*model.Company, error) {
	set := &repository.UpdateSet{}
	if input.Name != nil {
		set.Set("name", *input.Name)
	}
	if input.NumEmployees != nil {
		set.Set("num_employees", *input.NumEmployees)
	}
	if input.Description != nil {
		set.Set("description", *input.Description)
	}
	if input.LogoURL != nil {
		set.Set("logo_url", *input.LogoURL)
	}

	if set.Len() == 0 {
		return nil, ErrNoUpdateData
	}

	return s.repo.UpdateCompany(ctx, handle, set)
}

// DeleteCompany removes a company.
func (s *CompanyService) DeleteCompany(ctx context.Context, handle string) error {
	return s.repo.DeleteCompany(ctx, handle)
}
