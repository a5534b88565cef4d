package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jobmate/jobboard-service/internal/query"
)

const jobColumns = `id::text AS id, title, location, working_time, seniority_level, description,
	technical_skills, soft_skills, added_by::text AS added_by, company::text AS company,
	created_at, updated_at`

func (s *Store) oneJob(ctx context.Context, op, sql string, args ...any) (*Job, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap(op+" query", err)
	}
	j, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Job])
	if err != nil {
		return nil, wrap(op, err)
	}
	return &j, nil
}

// ListJobs executes d against JobsCollection. Rows are keyed by API field
// name and contain only the projected fields.
func (s *Store) ListJobs(ctx context.Context, d query.Descriptor) ([]map[string]any, error) {
	sql, args := JobsCollection.Render(d)
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap("listJobs query", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, wrap("listJobs scan", err)
	}
	return out, nil
}

// JobByID returns one job.
func (s *Store) JobByID(ctx context.Context, id string) (*Job, error) {
	return s.oneJob(ctx, "jobByID", `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
}

// JobsByCompany returns every job of a company, oldest first.
func (s *Store) JobsByCompany(ctx context.Context, companyID string) ([]Job, error) {
	sql, args := jobsByCompany(companyID)
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap("jobsByCompany query", err)
	}
	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[Job])
	if err != nil {
		return nil, wrap("jobsByCompany scan", err)
	}
	return jobs, nil
}

func jobsByCompany(companyID string) (string, []any) {
	d := query.Descriptor{}.Where(query.Eq("company", companyID))
	return JobsCollection.render(jobColumns, "jobs j", d)
}

// CreateJob inserts j with a fresh id. A second job with the same title by
// the same HR user is ErrDuplicate.
func (s *Store) CreateJob(ctx context.Context, j Job) (*Job, error) {
	return s.oneJob(ctx, "createJob",
		`INSERT INTO jobs (id, title, location, working_time, seniority_level, description,
		                   technical_skills, soft_skills, added_by, company)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+jobColumns,
		uuid.NewString(), j.Title, string(j.Location), string(j.WorkingTime),
		string(j.SeniorityLevel), j.Description, nonNil(j.TechnicalSkills), nonNil(j.SoftSkills),
		j.AddedBy, j.Company,
	)
}

// UpdateJob replaces the editable fields of the row j.ID.
func (s *Store) UpdateJob(ctx context.Context, j Job) (*Job, error) {
	return s.oneJob(ctx, "updateJob",
		`UPDATE jobs
		 SET title            = $2,
		     location         = $3,
		     working_time     = $4,
		     seniority_level  = $5,
		     description      = $6,
		     technical_skills = $7,
		     soft_skills      = $8,
		     updated_at       = NOW()
		 WHERE id = $1
		 RETURNING `+jobColumns,
		j.ID, j.Title, string(j.Location), string(j.WorkingTime), string(j.SeniorityLevel),
		j.Description, nonNil(j.TechnicalSkills), nonNil(j.SoftSkills),
	)
}

// DeleteJob removes a job; its applications cascade.
func (s *Store) DeleteJob(ctx context.Context, id string) (*Job, error) {
	return s.oneJob(ctx, "deleteJob", `DELETE FROM jobs WHERE id = $1 RETURNING `+jobColumns, id)
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
