// Package model defines domain entities for the application.
package model

import "time"

// Identity is the verified claim of who is making a request. It is
// reconstructed from the credential token on every request and lives
// only for the request's duration; it is never persisted.
type Identity struct {
	Username string    `json:"username"`
	IsAdmin  bool      `json:"is_admin"`
	IssuedAt time.Time `json:"issued_at"`
}
