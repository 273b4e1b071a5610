package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/joblane/joblane/internal/model"
)

// ErrJobNotFound indicates the job id does not exist.
var ErrJobNotFound = errors.New("job not found")

// JobFilter defines optional filters for listing jobs.
type JobFilter struct {
	MinSalary *int
	HasEquity bool
	Title     string
}

// CreateJob inserts a new job and fills in its generated id.
func (r *Repository) CreateJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		job.Title,
		job.Salary,
		job.Equity,
		job.CompanyHandle,
	).Scan(&job.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCompanyNotFound
		}
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetJob retrieves a job by id, including its company.
func (r *Repository) GetJob(ctx context.Context, id int64) (*model.Job, error) {
	query := `
		SELECT j.id, j.title, j.salary, j.equity,
		       c.handle, c.name, c.num_employees, c.description, c.logo_url
		FROM jobs j
		JOIN companies c ON c.handle = j.company_handle
		WHERE j.id = $1
	`

	var job model.Job
	var company model.Company
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&job.Title,
		&job.Salary,
		&job.Equity,
		&company.Handle,
		&company.Name,
		&company.NumEmployees,
		&company.Description,
		&company.LogoURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	job.Company = &company
	return &job, nil
}

// ListJobs retrieves jobs matching the filter, ordered by title.
func (r *Repository) ListJobs(ctx context.Context, filter JobFilter) ([]*model.Job, error) {
	query := `SELECT id, title, salary, equity, company_handle FROM jobs`

	var where []string
	var args []any

	if filter.MinSalary != nil {
		args = append(args, *filter.MinSalary)
		where = append(where, fmt.Sprintf("salary >= $%d", len(args)))
	}
	if filter.HasEquity {
		where = append(where, "equity > 0")
	}
	if filter.Title != "" {
		args = append(args, "%"+filter.Title+"%")
		where = append(where, fmt.Sprintf("title ILIKE $%d", len(args)))
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY title"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*model.Job{}
	for rows.Next() {
		var job model.Job
		err := rows.Scan(&job.ID, &job.Title, &job.Salary, &job.Equity, &job.CompanyHandle)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, &job)
	}
	return jobs, rows.Err()
}

// UpdateJob applies a partial update and returns the updated row.
func (r *Repository) UpdateJob(ctx context.Context, id int64, set *UpdateSet) (*model.Job, error) {
	clause, args := set.Clause()
	query := fmt.Sprintf(`
		UPDATE jobs
		SET %s
		WHERE id = $%d
		RETURNING id, title, salary, equity, company_handle
	`, clause, len(args)+1)
	args = append(args, id)

	var job model.Job
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&job.ID,
		&job.Title,
		&job.Salary,
		&job.Equity,
		&job.CompanyHandle,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	return &job, nil
}

// DeleteJob removes a job.
func (r *Repository) DeleteJob(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}
