package dto

import "errors"

// LoginRequest is the payload for POST /auth/token.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks required fields.
func (r *LoginRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return errors.New("username and password are required")
	}
	return nil
}

// RegisterRequest is the payload for POST /auth/register.
// Registration never accepts an admin flag.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Validate checks required fields.
func (r *RegisterRequest) Validate() error {
	req := CreateUserRequest{
		Username:  r.Username,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
	}
	return req.Validate()
}

// TokenResponse carries an issued credential token.
type TokenResponse struct {
	Token string `json:"token"`
}
