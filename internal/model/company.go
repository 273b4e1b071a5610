// Package model defines domain entities for the application.
package model

// Company represents an employer listing jobs.
type Company struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	NumEmployees *int    `json:"num_employees"`
	Description  *string `json:"description"`
	LogoURL      *string `json:"logo_url"`

	// Jobs is populated on single-company reads only.
	Jobs []*Job `json:"jobs,omitempty"`
}
