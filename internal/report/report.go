// Package report builds the per-day applicant spreadsheet of a company.
//
// Pipeline: company → HR check → company jobs → applications in the UTC day
// window → join applicant and job title → rows → xlsx. Every step is a
// blocking call on the request context; the first failure aborts the run and
// no partial workbook is produced.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"jobmate/jobboard-service/internal/apperr"
	"jobmate/jobboard-service/internal/catalog"
	"jobmate/jobboard-service/internal/store"
	"jobmate/jobboard-service/internal/xlsx"
)

// SheetName is the name of the single worksheet.
const SheetName = "Applications"

// DateLayout renders Row.AppliedAt in the sheet.
const DateLayout = "Mon Jan 02 2006"

// Header is the first row of the sheet.
var Header = []string{"User Name", "Email", "Applied Job Title", "Application Date", "User Resume"}

// ─── Collaborators ───────────────────────────────────────────────────────────

// Store is the read side the generator needs.
type Store interface {
	CompanyByID(ctx context.Context, id string) (*store.Company, error)
	JobsByCompany(ctx context.Context, companyID string) ([]store.Job, error)
	ApplicationsInWindow(ctx context.Context, jobIDs []string, from, until time.Time) ([]store.Application, error)
	UsersByIDs(ctx context.Context, ids []string) (map[string]store.User, error)
}

// Encoder serializes a sheet.
type Encoder interface {
	Encode(sheet string, header []string, rows [][]any) ([]byte, error)
}

// Notifier is told about every report produced. Failures are its own concern.
type Notifier interface {
	ReportGenerated(ctx context.Context, companyID string, day time.Time, rows int)
}

// ─── Types ───────────────────────────────────────────────────────────────────

// Row is one application, flattened.
type Row struct {
	ApplicantName string
	Email         string
	JobTitle      string
	AppliedAt     time.Time
	ResumeURL     string
}

func (r Row) cells() []any {
	return []any{r.ApplicantName, r.Email, r.JobTitle, r.AppliedAt.UTC().Format(DateLayout), r.ResumeURL}
}

// Report is a finished workbook ready to be sent as a download.
type Report struct {
	Body        []byte
	ContentType string
	Filename    string
	Rows        int
}

// ─── Generator ───────────────────────────────────────────────────────────────

// Generator runs the report pipeline.
type Generator struct {
	store    Store
	enc      Encoder
	notifier Notifier
	log      *zap.Logger
}

// NewGenerator returns a Generator. notifier may be nil.
func NewGenerator(st Store, enc Encoder, notifier Notifier, log *zap.Logger) *Generator {
	return &Generator{store: st, enc: enc, notifier: notifier, log: log.Named("report")}
}

// Generate builds the workbook of applications received by companyID's jobs
// on day (UTC). requesterID must be the company's HR user.
func (g *Generator) Generate(ctx context.Context, companyID string, day time.Time, requesterID string) (*Report, error) {
	rows, err := g.Rows(ctx, companyID, day, requesterID)
	if err != nil {
		return nil, err
	}

	cells := make([][]any, len(rows))
	for i, r := range rows {
		cells[i] = r.cells()
	}
	body, err := g.enc.Encode(SheetName, Header, cells)
	if err != nil {
		return nil, apperr.Internal("encode report", err)
	}

	day = StartOfDay(day)
	if g.notifier != nil {
		g.notifier.ReportGenerated(ctx, companyID, day, len(rows))
	}
	g.log.Info("report generated",
		zap.String("company_id", companyID),
		zap.String("day", day.Format(dayLayout)),
		zap.Int("rows", len(rows)),
		zap.Int("bytes", len(body)),
	)

	return &Report{
		Body:        body,
		ContentType: xlsx.ContentType,
		Filename:    fmt.Sprintf("applications-%s.xlsx", day.Format(dayLayout)),
		Rows:        len(rows),
	}, nil
}

// Rows runs every step of the pipeline except serialization.
func (g *Generator) Rows(ctx context.Context, companyID string, day time.Time, requesterID string) ([]Row, error) {
	company, err := g.store.CompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("company")
		}
		return nil, apperr.Internal("load company", err)
	}
	if company.CompanyHR != requesterID {
		return nil, apperr.Forbidden()
	}

	jobs, err := g.store.JobsByCompany(ctx, company.ID)
	if err != nil {
		return nil, apperr.Internal("load jobs", err)
	}
	if len(jobs) == 0 {
		return nil, apperr.NotFound("job")
	}

	titles := make(map[string]string, len(jobs))
	jobIDs := make([]string, 0, len(jobs))
	for _, j := range jobs {
		titles[j.ID] = j.Title
		jobIDs = append(jobIDs, j.ID)
	}

	from, until := DayWindow(day)
	apps, err := g.store.ApplicationsInWindow(ctx, jobIDs, from, until)
	if err != nil {
		return nil, apperr.Internal("load applications", err)
	}
	if len(apps) == 0 {
		return nil, apperr.NotFoundMsg(catalog.MsgNoApplicationsOnDay)
	}

	users, err := g.store.UsersByIDs(ctx, applicantIDs(apps))
	if err != nil {
		return nil, apperr.Internal("load applicants", err)
	}

	rows := make([]Row, 0, len(apps))
	for _, a := range apps {
		u, ok := users[a.UserID]
		if !ok {
			g.log.Warn("applicant missing, application skipped",
				zap.String("application_id", a.ID), zap.String("user_id", a.UserID))
			continue
		}
		title, ok := titles[a.JobID]
		if !ok {
			g.log.Warn("job missing, application skipped",
				zap.String("application_id", a.ID), zap.String("job_id", a.JobID))
			continue
		}
		rows = append(rows, Row{
			ApplicantName: u.FullName(),
			Email:         u.Email,
			JobTitle:      title,
			AppliedAt:     a.CreatedAt,
			ResumeURL:     a.ResumeURL,
		})
	}
	if len(rows) == 0 {
		return nil, apperr.NotFoundMsg(catalog.MsgNoApplicationsOnDay)
	}
	return rows, nil
}

func applicantIDs(apps []store.Application) []string {
	seen := make(map[string]struct{}, len(apps))
	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		if _, ok := seen[a.UserID]; ok {
			continue
		}
		seen[a.UserID] = struct{}{}
		ids = append(ids, a.UserID)
	}
	return ids
}
