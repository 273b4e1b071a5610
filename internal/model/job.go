// Package model defines domain entities for the application.
package model

// Job represents a position listed by a company.
type Job struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Salary        *int     `json:"salary"`
	Equity        *float64 `json:"equity"`
	CompanyHandle string   `json:"company_handle,omitempty"`

	// Company is populated on single-job reads only; CompanyHandle is
	// omitted from the payload when it is set.
	Company *Company `json:"company,omitempty"`
}
