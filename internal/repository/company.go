package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/joblane/joblane/internal/model"
)

// Common errors for company repository operations.
var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrCompanyExists   = errors.New("company already exists")
)

// CompanyFilter defines optional filters for listing companies.
type CompanyFilter struct {
	MinEmployees *int
	MaxEmployees *int
	Name         string
}

// CreateCompany inserts a new company.
func (r *Repository) CreateCompany(ctx context.Context, company *model.Company) error {
	query := `
		INSERT INTO companies (handle, name, num_employees, description, logo_url)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		company.Handle,
		company.Name,
		company.NumEmployees,
		company.Description,
		company.LogoURL,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrCompanyExists
		}
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

// GetCompany retrieves a company by handle, including its jobs.
func (r *Repository) GetCompany(ctx context.Context, handle string) (*model.Company, error) {
	query := `
		SELECT handle, name, num_employees, description, logo_url
		FROM companies
		WHERE handle = $1
	`

	var company model.Company
	err := r.pool.QueryRow(ctx, query, handle).Scan(
		&company.Handle,
		&company.Name,
		&company.NumEmployees,
		&company.Description,
		&company.LogoURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	jobs, err := r.listCompanyJobs(ctx, handle)
	if err != nil {
		return nil, err
	}
	company.Jobs = jobs

	return &company, nil
}

// listCompanyJobs returns the jobs belonging to a company, ordered by id.
func (r *Repository) listCompanyJobs(ctx context.Context, handle string) ([]*model.Job, error) {
	query := `
		SELECT id, title, salary, equity
		FROM jobs
		WHERE company_handle = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, handle)
	if err != nil {
		return nil, fmt.Errorf("failed to list company jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*model.Job{}
	for rows.Next() {
		var job model.Job
		if err := rows.Scan(&job.ID, &job.Title, &job.Salary, &job.Equity); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, &job)
	}
	return jobs, rows.Err()
}

// ListCompanies retrieves companies matching the filter, ordered by name.
func (r *Repository) ListCompanies(ctx context.Context, filter CompanyFilter) ([]*model.Company, error) {
	query := `SELECT handle, name, num_employees, description, logo_url FROM companies`

	var where []string
	var args []any

	if filter.MinEmployees != nil {
		args = append(args, *filter.MinEmployees)
		where = append(where, fmt.Sprintf("num_employees >= $%d", len(args)))
	}
	if filter.MaxEmployees != nil {
		args = append(args, *filter.MaxEmployees)
		where = append(where, fmt.Sprintf("num_employees <= $%d", len(args)))
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := []*model.Company{}
	for rows.Next() {
		var company model.Company
		err := rows.Scan(
			&company.Handle,
			&company.Name,
			&company.NumEmployees,
			&company.Description,
			&company.LogoURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, &company)
	}
	return companies, rows.Err()
}

// UpdateCompany applies a partial update and returns the updated row.
func (r *Repository) UpdateCompany(ctx context.Context, handle string, set *UpdateSet) (*model.Company, error) {
	clause, args := set.Clause()
	query := fmt.Sprintf(`
		UPDATE companies
		SET %s
		WHERE handle = $%d
		RETURNING handle, name, num_employees, description, logo_url
	`, clause, len(args)+1)
	args = append(args, handle)

	var company model.Company
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&company.Handle,
		&company.Name,
		&company.NumEmployees,
		&company.Description,
		&company.LogoURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	return &company, nil
}

// DeleteCompany removes a company and, via cascade, its jobs.
func (r *Repository) DeleteCompany(ctx context.Context, handle string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE handle = $1`, handle)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
