package service

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/joblane/joblane/internal/auth"
	"github.com/joblane/joblane/internal/model"
	"github.com/joblane/joblane/internal/repository"
)

// User service errors.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidState       = errors.New("invalid application state")
)

// UserService handles user and application business logic.
type UserService struct {
	repo *repository.Repository
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository) *UserService {
	return &UserService{repo: repo}
}

// CreateUserInput defines input for creating a user.
type CreateUserInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
}

// CreateUser hashes the password and inserts the user. Admin creation
// is allowed here; the route layer restricts who may reach it.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     input.Username,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		IsAdmin:      input.IsAdmin,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates a self-service account. Registration can never
// produce an admin, regardless of input.
func (s *UserService) Register(ctx context.Context, input CreateUserInput) (*model.User, error) {
	input.IsAdmin = false
	return s.CreateUser(ctx, input)
}

// Authenticate verifies a username/password pair. A missing user and a
// wrong password both yield ErrInvalidCredentials so callers cannot
// probe which usernames exist.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.GetUserWithPassword(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user with their applications.
func (s *UserService) GetUser(ctx context.Context, username string) (*model.User, error) {
	return s.repo.GetUser(ctx, username)
}

// ListUsers retrieves all users.
func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.repo.ListUsers(ctx)
}

// UpdateUserInput defines the mutable user fields. Nil fields are left
// untouched; username and is_admin are immutable through this path.
type UpdateUserInput struct {
	Password  *string
	FirstName *string
	LastName  *string
	Email     *string
}

// UpdateUser applies a partial update to a user. A new password is
// hashed before it reaches the store.
func (s *UserService) UpdateUser(ctx context.Context, username string, input UpdateUserInput) (*model.User, error) {
	set := &repository.UpdateSet{}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		set.Set("password", hash)
	}
	if input.FirstName != nil {
		set.Set("first_name", *input.FirstName)
	}
	if input.LastName != nil {
		set.Set("last_name", *input.LastName)
	}
	if input.Email != nil {
		set.Set("email", *input.Email)
	}

	if set.Len() == 0 {
		return nil, ErrNoUpdateData
	}

	return s.repo.UpdateUser(ctx, username, set)
}

// DeleteUser removes a user.
func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	return s.repo.DeleteUser(ctx, username)
}

// ApplyToJob records an application state for a user on a job. The
// state defaults to "applied" when empty. History is append-only, so
// repeat calls add rows rather than overwrite.
func (s *UserService) ApplyToJob(ctx context.Context, username string, jobID int64, state model.ApplicationState) (*model.Application, error) {
	if state == "" {
		state = model.StateApplied
	}
	if !state.IsValid() {
		return nil, ErrInvalidState
	}

	// Verify the user exists so a foreign key failure on insert can
	// only mean the job is missing.
	if _, err := s.repo.GetUserWithPassword(ctx, username); err != nil {
		return nil, err
	}

	app := &model.Application{
		ID:        ulid.Make().String(),
		Username:  username,
		JobID:     jobID,
		State:     state,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}
