// Package board contains the business logic of the job board: companies,
// jobs and applications. It is transport-agnostic and used by both the HTTP
// handlers and the gRPC server.
package board

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"jobmate/jobboard-service/internal/apperr"
	"jobmate/jobboard-service/internal/catalog"
	"jobmate/jobboard-service/internal/query"
	"jobmate/jobboard-service/internal/store"
)

// ─── Collaborators ───────────────────────────────────────────────────────────

// Store is the persistence the service needs; *store.Store implements it.
type Store interface {
	UserByID(ctx context.Context, id string) (*store.User, error)
	UsersByIDs(ctx context.Context, ids []string) (map[string]store.User, error)

	CompanyByID(ctx context.Context, id string) (*store.Company, error)
	CompanyByName(ctx context.Context, name string) (*store.Company, error)
	CompanyByHR(ctx context.Context, hrID string) (*store.Company, error)
	CreateCompany(ctx context.Context, c store.Company) (*store.Company, error)
	UpdateCompany(ctx context.Context, c store.Company) (*store.Company, error)
	DeleteCompany(ctx context.Context, id string) (*store.Company, error)

	ListJobs(ctx context.Context, d query.Descriptor) ([]map[string]any, error)
	JobByID(ctx context.Context, id string) (*store.Job, error)
	JobsByCompany(ctx context.Context, companyID string) ([]store.Job, error)
	CreateJob(ctx context.Context, j store.Job) (*store.Job, error)
	UpdateJob(ctx context.Context, j store.Job) (*store.Job, error)
	DeleteJob(ctx context.Context, id string) (*store.Job, error)

	CreateApplication(ctx context.Context, a store.Application) (*store.Application, error)
	ApplicationsByJob(ctx context.Context, jobID string) ([]store.Application, error)
}

// Events receives notifications about state changes.
type Events interface {
	ApplicationCreated(ctx context.Context, a store.Application, companyID string)
}

// ─── Inputs / views ──────────────────────────────────────────────────────────

// CompanyInput carries the writable fields of a company.
type CompanyInput struct {
	Name              string
	Description       string
	Industry          string
	Address           string
	NumberOfEmployees catalog.EmployeeRange
	CompanyEmail      string
}

// JobInput carries the writable fields of a job.
type JobInput struct {
	Title           string
	Location        catalog.JobLocation
	WorkingTime     catalog.WorkingTime
	SeniorityLevel  catalog.SeniorityLevel
	Description     string
	TechnicalSkills []string
	SoftSkills      []string
	Company         string
}

// ApplyInput is what a user submits when applying.
type ApplyInput struct {
	TechSkills     []string
	SoftSkills     []string
	ResumeURL      string
	ResumePublicID string
}

// CompanyDetail is a company with its jobs.
type CompanyDetail struct {
	store.Company
	Jobs []store.Job `json:"jobs"`
}

// JobDetail is a job with its company.
type JobDetail struct {
	store.Job
	CompanyInfo *store.Company `json:"companyInfo"`
}

// ApplicationView is an application with its applicant.
type ApplicationView struct {
	store.Application
	Applicant *store.User `json:"applicant"`
}

// ─── Service ─────────────────────────────────────────────────────────────────

// Service implements the job board's use cases.
type Service struct {
	store  Store
	events Events
	log    *zap.Logger
}

// NewService returns a configured Service. events may be nil.
func NewService(st Store, ev Events, log *zap.Logger) *Service {
	return &Service{store: st, events: ev, log: log.Named("board")}
}

// User resolves the caller's account.
func (s *Service) User(ctx context.Context, id string) (*store.User, error) {
	u, err := s.store.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Unauthenticated(catalog.UserMessages.NotFound)
		}
		return nil, apperr.Internal("load user", err)
	}
	return u, nil
}

// ─── Companies ───────────────────────────────────────────────────────────────

// CreateCompany registers hrID's company. An HR user owns at most one.
func (s *Service) CreateCompany(ctx context.Context, hrID string, in CompanyInput) (*store.Company, error) {
	name := normalizeName(in.Name)

	if _, err := s.store.CompanyByHR(ctx, hrID); err == nil {
		return nil, apperr.Conflict(catalog.MsgUserHasCompany)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Internal("load company", err)
	}

	if _, err := s.store.CompanyByName(ctx, name); err == nil {
		return nil, apperr.Conflict(catalog.CompanyMessages.AlreadyExist)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Internal("load company", err)
	}

	c, err := s.store.CreateCompany(ctx, store.Company{
		Name:              name,
		Slug:              catalog.Slug(name),
		Description:       in.Description,
		Industry:          in.Industry,
		Address:           in.Address,
		NumberOfEmployees: in.NumberOfEmployees,
		CompanyEmail:      in.CompanyEmail,
		CompanyHR:         hrID,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict(catalog.CompanyMessages.AlreadyExist)
		}
		return nil, apperr.Internal(catalog.CompanyMessages.FailToCreate, err)
	}
	s.log.Info("company created", zap.String("company_id", c.ID), zap.String("hr_id", hrID))
	return c, nil
}

// GetCompany returns a company with its jobs.
func (s *Service) GetCompany(ctx context.Context, id string) (*CompanyDetail, error) {
	c, err := s.company(ctx, id)
	if err != nil {
		return nil, err
	}
	jobs, err := s.store.JobsByCompany(ctx, c.ID)
	if err != nil {
		return nil, apperr.Internal("load jobs", err)
	}
	return &CompanyDetail{Company: *c, Jobs: jobs}, nil
}

// SearchCompany finds a company by exact name, ignoring case.
func (s *Service) SearchCompany(ctx context.Context, name string) (*store.Company, error) {
	c, err := s.store.CompanyByName(ctx, normalizeName(name))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("company")
		}
		return nil, apperr.Internal("search company", err)
	}
	return c, nil
}

// UpdateCompany overwrites the non-empty fields of in. Only the company's HR
// user may do so.
func (s *Service) UpdateCompany(ctx context.Context, hrID, id string, in CompanyInput) (*store.Company, error) {
	c, err := s.ownedCompany(ctx, hrID, id)
	if err != nil {
		return nil, err
	}

	patch := store.Company{
		ID:                c.ID,
		Description:       in.Description,
		Industry:          in.Industry,
		Address:           in.Address,
		NumberOfEmployees: in.NumberOfEmployees,
		CompanyEmail:      in.CompanyEmail,
	}
	if in.Name != "" {
		patch.Name = normalizeName(in.Name)
		patch.Slug = catalog.Slug(patch.Name)
	}

	updated, err := s.store.UpdateCompany(ctx, patch)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return nil, apperr.Conflict(catalog.CompanyMessages.AlreadyExist)
		case errors.Is(err, store.ErrNotFound):
			return nil, apperr.NotFound("company")
		}
		return nil, apperr.Internal(catalog.CompanyMessages.FailToUpdate, err)
	}
	return updated, nil
}

// DeleteCompany removes the company with its jobs and their applications.
func (s *Service) DeleteCompany(ctx context.Context, hrID, id string) (*store.Company, error) {
	if _, err := s.ownedCompany(ctx, hrID, id); err != nil {
		return nil, err
	}
	c, err := s.store.DeleteCompany(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("company")
		}
		return nil, apperr.Internal(catalog.CompanyMessages.FailToDelete, err)
	}
	s.log.Info("company deleted", zap.String("company_id", id))
	return c, nil
}

// JobApplications lists the applications to a job with their applicants.
// Only the HR user of the job's company may see them.
func (s *Service) JobApplications(ctx context.Context, hrID, jobID string) ([]ApplicationView, error) {
	j, err := s.job(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCompany(ctx, hrID, j.Company); err != nil {
		return nil, err
	}

	apps, err := s.store.ApplicationsByJob(ctx, j.ID)
	if err != nil {
		return nil, apperr.Internal("load applications", err)
	}
	if len(apps) == 0 {
		return nil, apperr.NotFound("application")
	}

	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.UserID)
	}
	users, err := s.store.UsersByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("load applicants", err)
	}

	out := make([]ApplicationView, 0, len(apps))
	for _, a := range apps {
		v := ApplicationView{Application: a}
		if u, ok := users[a.UserID]; ok {
			v.Applicant = &u
		}
		out = append(out, v)
	}
	return out, nil
}

// ─── Jobs ────────────────────────────────────────────────────────────────────

// ListJobs runs a job listing configured from query-string params.
func (s *Service) ListJobs(ctx context.Context, params url.Values) ([]map[string]any, error) {
	d := query.New(query.Descriptor{}, params, catalog.JobFilters).
		Paginate().Sort().Select().Filter().
		Descriptor()
	s.log.Debug("list jobs",
		zap.Int64("skip", d.Skip),
		zap.Int64("limit", d.Limit),
		zap.Stringers("filter", d.Filter),
	)

	jobs, err := s.store.ListJobs(ctx, d)
	if err != nil {
		return nil, apperr.Internal("list jobs", err)
	}
	return jobs, nil
}

// JobsByCompany returns every job of an existing company.
func (s *Service) JobsByCompany(ctx context.Context, companyID string) ([]store.Job, error) {
	c, err := s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.store.JobsByCompany(ctx, c.ID)
	if err != nil {
		return nil, apperr.Internal("load jobs", err)
	}
	return jobs, nil
}

// GetJob returns a job with its company.
func (s *Service) GetJob(ctx context.Context, id string) (*JobDetail, error) {
	j, err := s.job(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := s.store.CompanyByID(ctx, j.Company)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Internal("load company", err)
	}
	return &JobDetail{Job: *j, CompanyInfo: c}, nil
}

// CreateJob posts a job for in.Company, which must be owned by hrID.
func (s *Service) CreateJob(ctx context.Context, hrID string, in JobInput) (*store.Job, error) {
	c, err := s.ownedCompany(ctx, hrID, in.Company)
	if err != nil {
		return nil, err
	}

	j, err := s.store.CreateJob(ctx, store.Job{
		Title:           normalizeName(in.Title),
		Location:        in.Location,
		WorkingTime:     in.WorkingTime,
		SeniorityLevel:  in.SeniorityLevel,
		Description:     in.Description,
		TechnicalSkills: in.TechnicalSkills,
		SoftSkills:      in.SoftSkills,
		AddedBy:         hrID,
		Company:         c.ID,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict(catalog.JobMessages.AlreadyExist)
		}
		return nil, apperr.Internal(catalog.JobMessages.FailToCreate, err)
	}
	s.log.Info("job created", zap.String("job_id", j.ID), zap.String("company_id", c.ID))
	return j, nil
}

// UpdateJob replaces the editable fields of a job posted by hrID.
func (s *Service) UpdateJob(ctx context.Context, hrID, id string, in JobInput) (*store.Job, error) {
	j, err := s.ownedJob(ctx, hrID, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateJob(ctx, store.Job{
		ID:              j.ID,
		Title:           normalizeName(in.Title),
		Location:        in.Location,
		WorkingTime:     in.WorkingTime,
		SeniorityLevel:  in.SeniorityLevel,
		Description:     in.Description,
		TechnicalSkills: in.TechnicalSkills,
		SoftSkills:      in.SoftSkills,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return nil, apperr.Conflict(catalog.JobMessages.AlreadyExist)
		case errors.Is(err, store.ErrNotFound):
			return nil, apperr.NotFound("job")
		}
		return nil, apperr.Internal(catalog.JobMessages.FailToUpdate, err)
	}
	return updated, nil
}

// DeleteJob removes a job posted by hrID and its applications.
func (s *Service) DeleteJob(ctx context.Context, hrID, id string) (*store.Job, error) {
	if _, err := s.ownedJob(ctx, hrID, id); err != nil {
		return nil, err
	}
	j, err := s.store.DeleteJob(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("job")
		}
		return nil, apperr.Internal(catalog.JobMessages.FailToDelete, err)
	}
	return j, nil
}

// Apply submits userID's application to a job. A user applies at most once
// per job.
func (s *Service) Apply(ctx context.Context, userID, jobID string, in ApplyInput) (*store.Application, error) {
	if strings.TrimSpace(in.ResumeURL) == "" {
		return nil, apperr.Invalid(catalog.MsgResumeRequired)
	}
	j, err := s.job(ctx, jobID)
	if err != nil {
		return nil, err
	}

	a, err := s.store.CreateApplication(ctx, store.Application{
		JobID:          j.ID,
		UserID:         userID,
		UserTechSkills: in.TechSkills,
		UserSoftSkills: in.SoftSkills,
		ResumeURL:      in.ResumeURL,
		ResumePublicID: in.ResumePublicID,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict(catalog.MsgAlreadyApplied)
		}
		return nil, apperr.Internal(catalog.ApplicationMessages.FailToCreate, err)
	}

	if s.events != nil {
		s.events.ApplicationCreated(ctx, *a, j.Company)
	}
	return a, nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (s *Service) company(ctx context.Context, id string) (*store.Company, error) {
	c, err := s.store.CompanyByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("company")
		}
		return nil, apperr.Internal("load company", err)
	}
	return c, nil
}

func (s *Service) ownedCompany(ctx context.Context, hrID, id string) (*store.Company, error) {
	c, err := s.company(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.CompanyHR != hrID {
		return nil, apperr.Forbidden()
	}
	return c, nil
}

func (s *Service) job(ctx context.Context, id string) (*store.Job, error) {
	j, err := s.store.JobByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("job")
		}
		return nil, apperr.Internal("load job", err)
	}
	return j, nil
}

func (s *Service) ownedJob(ctx context.Context, hrID, id string) (*store.Job, error) {
	j, err := s.job(ctx, id)
	if err != nil {
		return nil, err
	}
	if j.AddedBy != hrID {
		return nil, apperr.Forbidden()
	}
	return j, nil
}

// normalizeName is the stored form of company names and job titles.
func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
