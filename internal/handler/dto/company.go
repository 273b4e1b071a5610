// Package dto defines request and response payload types for the API.
package dto

import (
	"errors"
	"strings"

	"github.com/joblane/joblane/internal/model"
)

// CreateCompanyRequest is the payload for POST /companies.
type CreateCompanyRequest struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	NumEmployees *int    `json:"num_employees"`
	Description  *string `json:"description"`
	LogoURL      *string `json:"logo_url"`
}

// Validate checks required fields. The handle must be lowercase, same
// as the schema constraint, so the failure is reported as bad input
// instead of a storage error.
func (r *CreateCompanyRequest) Validate() error {
	if r.Handle == "" {
		return errors.New("handle is required")
	}
	if r.Handle != strings.ToLower(r.Handle) {
		return errors.New("handle must be lowercase")
	}
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// UpdateCompanyRequest is the payload for PATCH /companies/{handle}.
// The handle itself is immutable; sending it is rejected as an unknown
// field at decode time.
type UpdateCompanyRequest struct {
	Name         *string `json:"name"`
	NumEmployees *int    `json:"num_employees"`
	Description  *string `json:"description"`
	LogoURL      *string `json:"logo_url"`
}

// CompanyResponse wraps a single company.
type CompanyResponse struct {
	Company *model.Company `json:"company"`
}

// CompanyListResponse wraps a company listing.
type CompanyListResponse struct {
	Companies []*model.Company `json:"companies"`
}
