// Package model defines domain entities for the application.
package model

// User represents an account that can apply to jobs.
// PasswordHash is never serialized.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	IsAdmin      bool   `json:"is_admin"`

	// Applications is populated on single-user reads only.
	Applications []*UserApplication `json:"jobs,omitempty"`
}

// UserApplication is the job-centric view of an application embedded in
// a user payload.
type UserApplication struct {
	JobID         int64  `json:"id"`
	Title         string `json:"title"`
	CompanyHandle string `json:"company_handle"`
	CompanyName   string `json:"company_name"`
	State         string `json:"state"`
}
