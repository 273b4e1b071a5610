package dto

import (
	"errors"
	"strings"

	"github.com/joblane/joblane/internal/model"
)

// CreateUserRequest is the payload for POST /users.
type CreateUserRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
}

// Validate checks required fields.
func (r *CreateUserRequest) Validate() error {
	switch {
	case r.Username == "":
		return errors.New("username is required")
	case r.Password == "":
		return errors.New("password is required")
	case r.FirstName == "":
		return errors.New("first_name is required")
	case r.LastName == "":
		return errors.New("last_name is required")
	// The '@' must follow at least one character, matching the schema
	// constraint on the email column.
	case strings.Index(r.Email, "@") < 1:
		return errors.New("a valid email is required")
	}
	return nil
}

// UpdateUserRequest is the payload for PATCH /users/{username}. The
// username and is_admin flag are immutable through this route; sending
// either is rejected as an unknown field at decode time.
type UpdateUserRequest struct {
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

// ApplyRequest is the payload for POST /users/{username}/jobs/{id}.
type ApplyRequest struct {
	State string `json:"state"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	User *model.User `json:"user"`
}

// UserWithTokenResponse wraps a created user plus their credential token.
type UserWithTokenResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// UserListResponse wraps a user listing.
type UserListResponse struct {
	Users []*model.User `json:"users"`
}

// ApplicationResponse wraps a recorded application.
type ApplicationResponse struct {
	Application *model.Application `json:"application"`
}

// DeletedResponse acknowledges a deletion.
type DeletedResponse struct {
	Deleted string `json:"deleted"`
}
