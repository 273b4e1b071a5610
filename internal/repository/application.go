package repository

import (
	"context"
	"fmt"

	"github.com/joblane/joblane/internal/model"
)

// CreateApplication inserts a new application state row. Rows are
// append-only; recording a new state for the same user and job inserts
// another row rather than overwriting.
func (r *Repository) CreateApplication(ctx context.Context, app *model.Application) error {
	query := `
		INSERT INTO applications (id, username, job_id, state, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		app.ID,
		app.Username,
		app.JobID,
		app.State,
		app.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			// Either the user or the job is missing; callers verify the
			// user first, so this can only be the job.
			return ErrJobNotFound
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// ListApplications returns the full application history for a user and
// job, newest first.
func (r *Repository) ListApplications(ctx context.Context, username string, jobID int64) ([]*model.Application, error) {
	query := `
		SELECT id, username, job_id, state, created_at
		FROM applications
		WHERE username = $1 AND job_id = $2
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, username, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []*model.Application{}
	for rows.Next() {
		var app model.Application
		err := rows.Scan(&app.ID, &app.Username, &app.JobID, &app.State, &app.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, &app)
	}
	return apps, rows.Err()
}
