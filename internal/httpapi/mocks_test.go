package httpapi_test

import (
	"context"
	"net/url"
	"time"

	"github.com/stretchr/testify/mock"

	"jobmate/jobboard-service/internal/board"
	"jobmate/jobboard-service/internal/report"
	"jobmate/jobboard-service/internal/store"
)

type mockBoard struct{ mock.Mock }

func (m *mockBoard) User(ctx context.Context, id string) (*store.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*store.User)
	return u, args.Error(1)
}

func (m *mockBoard) CreateCompany(ctx context.Context, hrID string, in board.CompanyInput) (*store.Company, error) {
	args := m.Called(ctx, hrID, in)
	c, _ := args.Get(0).(*store.Company)
	return c, args.Error(1)
}

func (m *mockBoard) GetCompany(ctx context.Context, id string) (*board.CompanyDetail, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*board.CompanyDetail)
	return c, args.Error(1)
}

func (m *mockBoard) SearchCompany(ctx context.Context, name string) (*store.Company, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(*store.Company)
	return c, args.Error(1)
}

func (m *mockBoard) UpdateCompany(ctx context.Context, hrID, id string, in board.CompanyInput) (*store.Company, error) {
	args := m.Called(ctx, hrID, id, in)
	c, _ := args.Get(0).(*store.Company)
	return c, args.Error(1)
}

func (m *mockBoard) DeleteCompany(ctx context.Context, hrID, id string) (*store.Company, error) {
	args := m.Called(ctx, hrID, id)
	c, _ := args.Get(0).(*store.Company)
	return c, args.Error(1)
}

func (m *mockBoard) JobApplications(ctx context.Context, hrID, jobID string) ([]board.ApplicationView, error) {
	args := m.Called(ctx, hrID, jobID)
	v, _ := args.Get(0).([]board.ApplicationView)
	return v, args.Error(1)
}

func (m *mockBoard) ListJobs(ctx context.Context, params url.Values) ([]map[string]any, error) {
	args := m.Called(ctx, params)
	v, _ := args.Get(0).([]map[string]any)
	return v, args.Error(1)
}

func (m *mockBoard) JobsByCompany(ctx context.Context, companyID string) ([]store.Job, error) {
	args := m.Called(ctx, companyID)
	v, _ := args.Get(0).([]store.Job)
	return v, args.Error(1)
}

func (m *mockBoard) GetJob(ctx context.Context, id string) (*board.JobDetail, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*board.JobDetail)
	return v, args.Error(1)
}

func (m *mockBoard) CreateJob(ctx context.Context, hrID string, in board.JobInput) (*store.Job, error) {
	args := m.Called(ctx, hrID, in)
	v, _ := args.Get(0).(*store.Job)
	return v, args.Error(1)
}

func (m *mockBoard) UpdateJob(ctx context.Context, hrID, id string, in board.JobInput) (*store.Job, error) {
	args := m.Called(ctx, hrID, id, in)
	v, _ := args.Get(0).(*store.Job)
	return v, args.Error(1)
}

func (m *mockBoard) DeleteJob(ctx context.Context, hrID, id string) (*store.Job, error) {
	args := m.Called(ctx, hrID, id)
	v, _ := args.Get(0).(*store.Job)
	return v, args.Error(1)
}

func (m *mockBoard) Apply(ctx context.Context, userID, jobID string, in board.ApplyInput) (*store.Application, error) {
	args := m.Called(ctx, userID, jobID, in)
	v, _ := args.Get(0).(*store.Application)
	return v, args.Error(1)
}

type mockReports struct{ mock.Mock }

func (m *mockReports) Generate(ctx context.Context, companyID string, day time.Time, requesterID string) (*report.Report, error) {
	args := m.Called(ctx, companyID, day, requesterID)
	r, _ := args.Get(0).(*report.Report)
	return r, args.Error(1)
}
