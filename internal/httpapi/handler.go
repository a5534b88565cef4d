// Package httpapi implements the HTTP surface of the jobboard service.
//
// Every route except /health and /metrics expects an x-user-id header
// forwarded by the gateway.
//
// Routes:
//
//	GET    /jobs                                 → paginated, filtered job listing
//	GET    /jobs/by-company?companyId=           → all jobs of a company
//	GET    /jobs/{id}                            → job with its company
//	POST   /jobs                                 → post a job (HR)
//	PUT    /jobs/{id}                            → edit own job (HR)
//	DELETE /jobs/{id}                            → delete own job (HR)
//	POST   /jobs/{id}/apply                      → apply to a job (User)
//	POST   /companies                            → register a company (HR)
//	GET    /companies/search?name=               → find a company by name
//	GET    /companies/report?companyId=&date=    → applicant spreadsheet for a day (HR)
//	GET    /companies/jobs/{jobId}/applications  → applications to a job (HR)
//	GET    /companies/{id}                       → company with its jobs
//	PUT    /companies/{id}                       → edit own company (HR)
//	DELETE /companies/{id}                       → delete own company (HR)
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"jobmate/jobboard-service/internal/apperr"
	"jobmate/jobboard-service/internal/board"
	"jobmate/jobboard-service/internal/catalog"
	"jobmate/jobboard-service/internal/metrics"
	"jobmate/jobboard-service/internal/report"
	"jobmate/jobboard-service/internal/store"
)

// ─── Dependencies ────────────────────────────────────────────────────────────

// Board is the business logic behind the routes; *board.Service implements it.
type Board interface {
	User(ctx context.Context, id string) (*store.User, error)

	CreateCompany(ctx context.Context, hrID string, in board.CompanyInput) (*store.Company, error)
	GetCompany(ctx context.Context, id string) (*board.CompanyDetail, error)
	SearchCompany(ctx context.Context, name string) (*store.Company, error)
	UpdateCompany(ctx context.Context, hrID, id string, in board.CompanyInput) (*store.Company, error)
	DeleteCompany(ctx context.Context, hrID, id string) (*store.Company, error)
	JobApplications(ctx context.Context, hrID, jobID string) ([]board.ApplicationView, error)

	ListJobs(ctx context.Context, params url.Values) ([]map[string]any, error)
	JobsByCompany(ctx context.Context, companyID string) ([]store.Job, error)
	GetJob(ctx context.Context, id string) (*board.JobDetail, error)
	CreateJob(ctx context.Context, hrID string, in board.JobInput) (*store.Job, error)
	UpdateJob(ctx context.Context, hrID, id string, in board.JobInput) (*store.Job, error)
	DeleteJob(ctx context.Context, hrID, id string) (*store.Job, error)
	Apply(ctx context.Context, userID, jobID string, in board.ApplyInput) (*store.Application, error)
}

// Reports produces applicant spreadsheets; *report.Generator implements it.
type Reports interface {
	Generate(ctx context.Context, companyID string, day time.Time, requesterID string) (*report.Report, error)
}

// Options configures a Handler. Metrics may be nil.
type Options struct {
	Board   Board
	Reports Reports
	Metrics *metrics.Metrics
	Logger  *zap.Logger
	Version string
}

// ─── Handler ─────────────────────────────────────────────────────────────────

// Handler holds shared dependencies.
type Handler struct {
	board    Board
	reports  Reports
	metrics  *metrics.Metrics
	log      *zap.Logger
	validate *validator.Validate
	version  string
}

// NewHandler returns a configured Handler.
func NewHandler(opts Options) *Handler {
	return &Handler{
		board:    opts.Board,
		reports:  opts.Reports,
		metrics:  opts.Metrics,
		log:      opts.Logger.Named("http"),
		validate: newValidator(),
		version:  opts.Version,
	}
}

// Routes builds the router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(h.requestLogger, h.recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, apperr.NotFoundMsg("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, envelope{Message: "method not allowed"})
	})

	r.Get("/health", h.health)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	hr := requireRole(catalog.RoleCompanyHR)
	anyone := requireRole(catalog.RoleUser, catalog.RoleCompanyHR)

	r.Group(func(r chi.Router) {
		r.Use(h.authenticate)

		r.Route("/jobs", func(r chi.Router) {
			r.With(anyone).Get("/", h.listJobs)
			r.With(anyone).Get("/by-company", h.jobsByCompany)
			r.With(anyone).Get("/{id}", h.getJob)
			r.With(hr).Post("/", h.createJob)
			r.With(hr).Put("/{id}", h.updateJob)
			r.With(hr).Delete("/{id}", h.deleteJob)
			r.With(requireRole(catalog.RoleUser)).Post("/{id}/apply", h.apply)
		})

		r.Route("/companies", func(r chi.Router) {
			r.With(hr).Post("/", h.createCompany)
			r.With(anyone).Get("/search", h.searchCompany)
			r.With(hr).Get("/report", h.applicationsReport)
			r.With(hr).Get("/jobs/{jobId}/applications", h.jobApplications)
			r.With(anyone).Get("/{id}", h.getCompany)
			r.With(hr).Put("/{id}", h.updateCompany)
			r.With(hr).Delete("/{id}", h.deleteCompany)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "jobboard-service",
		"version": h.version,
	})
}

// ─── Jobs ────────────────────────────────────────────────────────────────────

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.board.ListJobs(r.Context(), r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonOK(w, "", jobs)
}

func (h *Handler) jobsByCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := parseID("companyId", r.URL.Query().Get("companyId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jobs, err := h.board.JobsByCompany(r.Context(), companyID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonOK(w, "", jobs)
}

func (h *Handler) getJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	job, err := h.board.GetJob(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonOK(w, "", job)
}

func (h *Handler) createJob(w http.ResponseWriter, r *http.Request) {
	var body jobRequest
	if err := h.decode(w, r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	job, err := h.board.CreateJob(r.Context(), userFrom(r.Context()).ID, body.input())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonCreated(w, catalog.JobMessages.Created, job)
}

func (h *Handler) updateJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var body jobRequest
	if err := h.decode(w, r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	job, err := h.board.UpdateJob(r.Context(), userFrom(r.Context()).ID, id, body.input())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonOK(w, catalog.JobMessages.Updated, job)
}

func (h *Handler) deleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	job, err := h.board.DeleteJob(r.Context(), userFrom(r.Context()).ID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonOK(w, catalog.JobMessages.Deleted, job)
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var body applyRequest
	if err := h.decode(w, r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	app, err := h.board.Apply(r.Context(), userFrom(r.Context()).ID, jobID, body.input())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonCreated(w, catalog.MsgApplied, app)
}

// ─── Companies ───────────────────────────────────────────────────────────────

func (h *Handler) createCompany(w http.ResponseWriter, r *http.Request) {
	var body companyRequest
	if err := h.decode(w, r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	c, err := h.board.CreateCompany(r.Context(), userFrom(r.Context()).ID, body.input())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonCreated(w, catalog.CompanyMessages.Created, c)
}

func (h *Handler) searchCompany(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		h.fail(w, r, apperr.Invalid("name is required"))
		return
	}
	c, err := h.board.SearchCompany(r.Context(), name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonOK(w, "", c)
}

func (h *Handler) getCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	c, err := h.board.GetCompany(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonOK(w, "", c)
}

func (h *Handler) updateCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var body companyPatch
	if err := h.decode(w, r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	c, err := h.board.UpdateCompany(r.Context(), userFrom(r.Context()).ID, id, body.input())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonOK(w, catalog.CompanyMessages.Updated, c)
}

func (h *Handler) deleteCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	c, err := h.board.DeleteCompany(r.Context(), userFrom(r.Context()).ID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonOK(w, catalog.CompanyMessages.Deleted, c)
}

func (h *Handler) jobApplications(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "jobId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	apps, err := h.board.JobApplications(r.Context(), userFrom(r.Context()).ID, jobID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	jsonOK(w, "", apps)
}

// applicationsReport streams the xlsx workbook as an attachment.
func (h *Handler) applicationsReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	companyID, err := parseID("companyId", q.Get("companyId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	day, err := report.ParseDay(q.Get("date"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rep, err := h.reports.Generate(r.Context(), companyID, day, userFrom(r.Context()).ID)
	if err != nil {
		h.observeReport(apperr.KindOf(err).String(), 0)
		h.fail(w, r, err)
		return
	}
	h.observeReport("ok", rep.Rows)

	w.Header().Set("Content-Type", rep.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(rep.Body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(rep.Body); err != nil {
		h.log.Warn("report write failed",
			zap.String("request_id", RequestID(r.Context())), zap.Error(err))
	}
}

func (h *Handler) observeReport(outcome string, rows int) {
	if h.metrics != nil {
		h.metrics.ObserveReport(outcome, rows)
	}
}
