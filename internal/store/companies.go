package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const companyColumns = `id::text AS id, name, slug, description, industry, address,
	number_of_employees, company_email, company_hr::text AS company_hr, created_at, updated_at`

func (s *Store) oneCompany(ctx context.Context, op, sql string, args ...any) (*Company, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap(op+" query", err)
	}
	c, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Company])
	if err != nil {
		return nil, wrap(op, err)
	}
	return &c, nil
}

// CompanyByID returns one company.
func (s *Store) CompanyByID(ctx context.Context, id string) (*Company, error) {
	return s.oneCompany(ctx, "companyByID",
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// CompanyByName looks a company up by its stored (lower-cased) name.
func (s *Store) CompanyByName(ctx context.Context, name string) (*Company, error) {
	return s.oneCompany(ctx, "companyByName",
		`SELECT `+companyColumns+` FROM companies WHERE name = $1`, name)
}

// CompanyByHR returns the company owned by hrID.
func (s *Store) CompanyByHR(ctx context.Context, hrID string) (*Company, error) {
	return s.oneCompany(ctx, "companyByHR",
		`SELECT `+companyColumns+` FROM companies WHERE company_hr = $1`, hrID)
}

// CreateCompany inserts c with a fresh id and returns the stored row.
func (s *Store) CreateCompany(ctx context.Context, c Company) (*Company, error) {
	return s.oneCompany(ctx, "createCompany",
		`INSERT INTO companies (id, name, slug, description, industry, address,
		                        number_of_employees, company_email, company_hr)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+companyColumns,
		uuid.NewString(), c.Name, c.Slug, c.Description, c.Industry, c.Address,
		string(c.NumberOfEmployees), c.CompanyEmail, c.CompanyHR,
	)
}

// UpdateCompany overwrites the non-empty fields of c on the row c.ID.
func (s *Store) UpdateCompany(ctx context.Context, c Company) (*Company, error) {
	return s.oneCompany(ctx, "updateCompany",
		`UPDATE companies
		 SET name                = COALESCE(NULLIF($2, ''), name),
		     slug                = COALESCE(NULLIF($3, ''), slug),
		     description         = COALESCE(NULLIF($4, ''), description),
		     industry            = COALESCE(NULLIF($5, ''), industry),
		     address             = COALESCE(NULLIF($6, ''), address),
		     number_of_employees = COALESCE(NULLIF($7, ''), number_of_employees),
		     company_email       = COALESCE(NULLIF($8, ''), company_email),
		     updated_at          = NOW()
		 WHERE id = $1
		 RETURNING `+companyColumns,
		c.ID, c.Name, c.Slug, c.Description, c.Industry, c.Address,
		string(c.NumberOfEmployees), c.CompanyEmail,
	)
}

// DeleteCompany removes a company; its jobs and their applications cascade.
func (s *Store) DeleteCompany(ctx context.Context, id string) (*Company, error) {
	return s.oneCompany(ctx, "deleteCompany",
		`DELETE FROM companies WHERE id = $1 RETURNING `+companyColumns, id)
}
