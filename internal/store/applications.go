package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id::text AS id, job_id::text AS job_id, user_id::text AS user_id,
	user_tech_skills, user_soft_skills, resume_url, resume_public_id, created_at, updated_at`

func (s *Store) applications(ctx context.Context, op, sql string, args ...any) ([]Application, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap(op+" query", err)
	}
	apps, err := pgx.CollectRows(rows, pgx.RowToStructByName[Application])
	if err != nil {
		return nil, wrap(op+" scan", err)
	}
	return apps, nil
}

// CreateApplication inserts a with a fresh id. Applying twice to the same
// job is ErrDuplicate.
func (s *Store) CreateApplication(ctx context.Context, a Application) (*Application, error) {
	rows, err := s.pool.Query(ctx,
		`INSERT INTO applications (id, job_id, user_id, user_tech_skills, user_soft_skills,
		                           resume_url, resume_public_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+applicationColumns,
		uuid.NewString(), a.JobID, a.UserID, nonNil(a.UserTechSkills), nonNil(a.UserSoftSkills),
		a.ResumeURL, a.ResumePublicID,
	)
	if err != nil {
		return nil, wrap("createApplication query", err)
	}
	out, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Application])
	if err != nil {
		return nil, wrap("createApplication", err)
	}
	return &out, nil
}

// ApplicationsByJob returns every application to a job, oldest first.
func (s *Store) ApplicationsByJob(ctx context.Context, jobID string) ([]Application, error) {
	return s.applications(ctx, "applicationsByJob",
		`SELECT `+applicationColumns+` FROM applications
		 WHERE job_id = $1 ORDER BY created_at, id`, jobID)
}

// ApplicationsInWindow returns applications to any job in jobIDs created
// within [from, until), oldest first.
func (s *Store) ApplicationsInWindow(ctx context.Context, jobIDs []string, from, until time.Time) ([]Application, error) {
	if len(jobIDs) == 0 {
		return []Application{}, nil
	}
	return s.applications(ctx, "applicationsInWindow",
		`SELECT `+applicationColumns+` FROM applications
		 WHERE job_id = ANY($1::uuid[]) AND created_at >= $2 AND created_at < $3
		 ORDER BY created_at, id`,
		jobIDs, from, until)
}

// ApplicationCounts returns, per company with at least one application in
// [from, until), how many it received.
func (s *Store) ApplicationCounts(ctx context.Context, from, until time.Time) ([]CompanyCount, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT c.id::text AS company_id, c.name AS company_name,
		        c.company_hr::text AS company_hr, COUNT(a.id) AS applications
		 FROM applications a
		 JOIN jobs j      ON j.id = a.job_id
		 JOIN companies c ON c.id = j.company
		 WHERE a.created_at >= $1 AND a.created_at < $2
		 GROUP BY c.id, c.name, c.company_hr
		 ORDER BY c.name`,
		from, until)
	if err != nil {
		return nil, wrap("applicationCounts query", err)
	}
	counts, err := pgx.CollectRows(rows, pgx.RowToStructByName[CompanyCount])
	if err != nil {
		return nil, wrap("applicationCounts scan", err)
	}
	return counts, nil
}
