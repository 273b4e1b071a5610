package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/joblane/joblane/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username or email already taken")
)

// CreateUser inserts a new user. PasswordHash must already be hashed.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (username, password, first_name, last_name, email, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Email,
		user.IsAdmin,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUser retrieves a user by username, including their applications.
func (r *Repository) GetUser(ctx context.Context, username string) (*model.User, error) {
	user, err := r.getUserRow(ctx, username)
	if err != nil {
		return nil, err
	}

	apps, err := r.listUserApplications(ctx, username)
	if err != nil {
		return nil, err
	}
	user.Applications = apps

	return user, nil
}

// GetUserWithPassword retrieves a user row without applications, for
// credential checks.
func (r *Repository) GetUserWithPassword(ctx context.Context, username string) (*model.User, error) {
	return r.getUserRow(ctx, username)
}

func (r *Repository) getUserRow(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT username, password, first_name, last_name, email, is_admin
		FROM users
		WHERE username = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.Username,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.IsAdmin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// listUserApplications returns the latest application state per job for
// a user, newest first within each job.
func (r *Repository) listUserApplications(ctx context.Context, username string) ([]*model.UserApplication, error) {
	query := `
		SELECT DISTINCT ON (a.job_id)
		       a.job_id, j.title, j.company_handle, c.name, a.state
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN companies c ON c.handle = j.company_handle
		WHERE a.username = $1
		ORDER BY a.job_id, a.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []*model.UserApplication{}
	for rows.Next() {
		var app model.UserApplication
		err := rows.Scan(&app.JobID, &app.Title, &app.CompanyHandle, &app.CompanyName, &app.State)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, &app)
	}
	return apps, rows.Err()
}

// ListUsers retrieves all users ordered by username.
func (r *Repository) ListUsers(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT username, first_name, last_name, email, is_admin
		FROM users
		ORDER BY username
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		var user model.User
		err := rows.Scan(&user.Username, &user.FirstName, &user.LastName, &user.Email, &user.IsAdmin)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

// UpdateUser applies a partial update and returns the updated row.
func (r *Repository) UpdateUser(ctx context.Context, username string, set *UpdateSet) (*model.User, error) {
	clause, args := set.Clause()
	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE username = $%d
		RETURNING username, first_name, last_name, email, is_admin
	`, clause, len(args)+1)
	args = append(args, username)

	var user model.User
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.IsAdmin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &user, nil
}

// DeleteUser removes a user and, via cascade, their applications.
func (r *Repository) DeleteUser(ctx context.Context, username string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
