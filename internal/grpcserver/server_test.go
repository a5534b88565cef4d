package grpcserver

import (
	"context"
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"jobmate/jobboard-service/internal/apperr"
	"jobmate/jobboard-service/internal/catalog"
	"jobmate/jobboard-service/internal/report"
	"jobmate/jobboard-service/internal/store"
)

const (
	hrID      = "0b7e5a58-1d1c-4b57-9a53-000000000001"
	userID    = "0b7e5a58-1d1c-4b57-9a53-000000000002"
	companyID = "0b7e5a58-1d1c-4b57-9a53-0000000000c1"
)

type fakeBoard struct{ mock.Mock }

func (f *fakeBoard) User(ctx context.Context, id string) (*store.User, error) {
	switch id {
	case hrID:
		return &store.User{ID: hrID, Role: catalog.RoleCompanyHR}, nil
	case userID:
		return &store.User{ID: userID, Role: catalog.RoleUser}, nil
	}
	return nil, apperr.Unauthenticated("unknown user")
}

func (f *fakeBoard) ListJobs(ctx context.Context, params url.Values) ([]map[string]any, error) {
	args := f.Called(params)
	v, _ := args.Get(0).([]map[string]any)
	return v, args.Error(1)
}

type fakeReports struct{ mock.Mock }

func (f *fakeReports) Generate(ctx context.Context, companyID string, day time.Time, requesterID string) (*report.Report, error) {
	args := f.Called(companyID, day, requesterID)
	r, _ := args.Get(0).(*report.Report)
	return r, args.Error(1)
}

func as(id string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-user-id", id))
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

// ─── Direct calls ────────────────────────────────────────────────────────────

func TestListJobs_ConvertsParamsAndRows(t *testing.T) {
	b := new(fakeBoard)
	created := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	b.On("ListJobs", url.Values{
		"page":            {"2"},
		"jobTitle":        {"eng"},
		"technicalSkills": {"go,rust"},
	}).Return([]map[string]any{{
		"id":              "j1",
		"technicalSkills": []string{"go"},
		"createdAt":       created,
	}}, nil)

	srv := NewServer(b, new(fakeReports))
	req := mustStruct(t, map[string]any{
		"page":            2,
		"jobTitle":        "eng",
		"technicalSkills": []any{"go", "rust"},
	})

	out, err := srv.ListJobs(as(userID), req)
	require.NoError(t, err)
	require.Len(t, out.GetValues(), 1)

	job := out.GetValues()[0].GetStructValue().GetFields()
	assert.Equal(t, "j1", job["id"].GetStringValue())
	assert.Equal(t, "2024-05-10T09:30:00Z", job["createdAt"].GetStringValue())
	assert.Equal(t, "go", job["technicalSkills"].GetListValue().GetValues()[0].GetStringValue())
	b.AssertExpectations(t)
}

func TestListJobs_RequiresMetadata(t *testing.T) {
	srv := NewServer(new(fakeBoard), new(fakeReports))

	_, err := srv.ListJobs(context.Background(), &structpb.Struct{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = srv.ListJobs(as("not-a-uuid"), &structpb.Struct{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = srv.ListJobs(as("0b7e5a58-1d1c-4b57-9a53-0000000000ff"), &structpb.Struct{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestApplicationsReport_RoleAndArguments(t *testing.T) {
	rep := new(fakeReports)
	srv := NewServer(new(fakeBoard), rep)

	_, err := srv.ApplicationsReport(as(userID), mustStruct(t, map[string]any{"companyId": companyID, "date": "2024-05-10"}))
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = srv.ApplicationsReport(as(hrID), mustStruct(t, map[string]any{"companyId": "x", "date": "2024-05-10"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = srv.ApplicationsReport(as(hrID), mustStruct(t, map[string]any{"companyId": companyID, "date": "nope"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	rep.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestToGRPCError(t *testing.T) {
	cases := []struct {
		err  error
		code codes.Code
	}{
		{apperr.NotFound("company"), codes.NotFound},
		{apperr.Forbidden(), codes.PermissionDenied},
		{apperr.Invalid("bad"), codes.InvalidArgument},
		{apperr.Conflict("dup"), codes.AlreadyExists},
		{apperr.Unauthenticated("who"), codes.Unauthenticated},
		{apperr.TooLarge("big"), codes.ResourceExhausted},
		{apperr.Internal("boom", nil), codes.Internal},
		{status.Error(codes.Canceled, "gone"), codes.Canceled},
	}
	for _, c := range cases {
		assert.Equal(t, c.code, status.Code(toGRPCError(c.err)), "%v", c.err)
	}

	st, _ := status.FromError(toGRPCError(apperr.Internal("db down", assert.AnError)))
	assert.Equal(t, "internal server error", st.Message())
}

// ─── Wire round trip ─────────────────────────────────────────────────────────

func dial(t *testing.T, srv JobBoardServer) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	gs := New(srv, zaptest.NewLogger(t))
	go gs.Serve(lis)
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestApplicationsReport_OverTheWire(t *testing.T) {
	rep := new(fakeReports)
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	rep.On("Generate", companyID, day, hrID).Return(&report.Report{Body: []byte("PK\x03\x04")}, nil)

	conn := dial(t, NewServer(new(fakeBoard), rep))
	ctx := metadata.AppendToOutgoingContext(context.Background(), "x-user-id", hrID)

	out := new(wrapperspb.BytesValue)
	err := conn.Invoke(ctx, "/"+ServiceName+"/ApplicationsReport",
		mustStruct(t, map[string]any{"companyId": companyID, "date": "2024-05-10"}), out)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK\x03\x04"), out.GetValue())
}

func TestApplicationsReport_NotFoundOverTheWire(t *testing.T) {
	rep := new(fakeReports)
	rep.On("Generate", companyID, mock.Anything, hrID).
		Return(nil, apperr.NotFoundMsg(catalog.MsgNoApplicationsOnDay))

	conn := dial(t, NewServer(new(fakeBoard), rep))
	ctx := metadata.AppendToOutgoingContext(context.Background(), "x-user-id", hrID)

	err := conn.Invoke(ctx, "/"+ServiceName+"/ApplicationsReport",
		mustStruct(t, map[string]any{"companyId": companyID, "date": "2024-05-10"}), new(wrapperspb.BytesValue))
	st, _ := status.FromError(err)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Equal(t, catalog.MsgNoApplicationsOnDay, st.Message())
}
