// Package grpcserver exposes the job listing and the applicant report over
// gRPC for internal callers.
//
// Messages use the well-known structpb/wrapperspb types, so the service
// descriptor is declared here instead of generated:
//
//	jobboard.v1.JobBoard/ListJobs            Struct{page,size,sort,...} → ListValue of Struct
//	jobboard.v1.JobBoard/ApplicationsReport  Struct{companyId,date}     → BytesValue (xlsx)
//
// All business logic lives in board.Service and report.Generator; this
// package handles metadata extraction, error mapping and type conversion.
package grpcserver

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"jobmate/jobboard-service/internal/apperr"
	"jobmate/jobboard-service/internal/catalog"
	"jobmate/jobboard-service/internal/report"
	"jobmate/jobboard-service/internal/store"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "jobboard.v1.JobBoard"

// Board is the subset of board.Service used here.
type Board interface {
	User(ctx context.Context, id string) (*store.User, error)
	ListJobs(ctx context.Context, params url.Values) ([]map[string]any, error)
}

// Reports is implemented by *report.Generator.
type Reports interface {
	Generate(ctx context.Context, companyID string, day time.Time, requesterID string) (*report.Report, error)
}

// JobBoardServer is the server API for the JobBoard service.
type JobBoardServer interface {
	ListJobs(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error)
	ApplicationsReport(ctx context.Context, req *structpb.Struct) (*wrapperspb.BytesValue, error)
}

// Server implements JobBoardServer.
type Server struct {
	board   Board
	reports Reports
}

// NewServer constructs a Server.
func NewServer(b Board, r Reports) *Server {
	return &Server{board: b, reports: r}
}

// New returns a grpc.Server with srv registered and request logging
// installed.
func New(srv JobBoardServer, log *zap.Logger) *grpc.Server {
	gs := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(log.Named("grpc"))))
	Register(gs, srv)
	return gs
}

// Register attaches srv to any grpc.ServiceRegistrar.
func Register(r grpc.ServiceRegistrar, srv JobBoardServer) {
	r.RegisterService(&serviceDesc, srv)
}

// ─── RPC implementations ──────────────────────────────────────────────────────

// ListJobs runs the job listing query. Request fields are treated as
// query-string parameters; list values are joined with commas.
func (s *Server) ListJobs(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	if _, err := s.caller(ctx, catalog.RoleUser, catalog.RoleCompanyHR); err != nil {
		return nil, err
	}

	jobs, err := s.board.ListJobs(ctx, toParams(req))
	if err != nil {
		return nil, toGRPCError(err)
	}

	values := make([]*structpb.Value, 0, len(jobs))
	for _, job := range jobs {
		st, err := structpb.NewStruct(normalize(job).(map[string]any))
		if err != nil {
			return nil, status.Errorf(codes.Internal, "encode job: %v", err)
		}
		values = append(values, structpb.NewStructValue(st))
	}
	return &structpb.ListValue{Values: values}, nil
}

// ApplicationsReport returns the xlsx workbook for one company and day.
func (s *Server) ApplicationsReport(ctx context.Context, req *structpb.Struct) (*wrapperspb.BytesValue, error) {
	u, err := s.caller(ctx, catalog.RoleCompanyHR)
	if err != nil {
		return nil, err
	}

	fields := req.GetFields()
	companyID, err := uuid.Parse(fields["companyId"].GetStringValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "companyId must be a valid id")
	}
	day, err := report.ParseDay(fields["date"].GetStringValue())
	if err != nil {
		return nil, toGRPCError(err)
	}

	rep, err := s.reports.Generate(ctx, companyID.String(), day, u.ID)
	if err != nil {
		return nil, toGRPCError(err)
	}
	return wrapperspb.Bytes(rep.Body), nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// caller resolves the x-user-id metadata to a user holding one of roles.
func (s *Server) caller(ctx context.Context, roles ...catalog.Role) (*store.User, error) {
	userID, err := userIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, status.Error(codes.Unauthenticated, "malformed x-user-id metadata")
	}
	u, err := s.board.User(ctx, userID)
	if err != nil {
		return nil, toGRPCError(err)
	}
	for _, r := range roles {
		if u.Role == r {
			return u, nil
		}
	}
	return nil, status.Error(codes.PermissionDenied, catalog.MsgUnauthorized)
}

// userIDFromCtx extracts the x-user-id value forwarded by the Gateway
// via gRPC metadata.
func userIDFromCtx(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing metadata")
	}
	vals := md.Get("x-user-id")
	if len(vals) == 0 || vals[0] == "" {
		return "", status.Error(codes.Unauthenticated, "missing x-user-id metadata")
	}
	return vals[0], nil
}

// toGRPCError maps domain errors to gRPC status errors.
func toGRPCError(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	msg := apperr.Message(err)
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return status.Error(codes.NotFound, msg)
	case apperr.KindForbidden:
		return status.Error(codes.PermissionDenied, msg)
	case apperr.KindInvalidInput:
		return status.Error(codes.InvalidArgument, msg)
	case apperr.KindConflict:
		return status.Error(codes.AlreadyExists, msg)
	case apperr.KindUnauthenticated:
		return status.Error(codes.Unauthenticated, msg)
	case apperr.KindTooLarge:
		return status.Error(codes.ResourceExhausted, msg)
	}
	return status.Error(codes.Internal, "internal server error")
}

func toParams(req *structpb.Struct) url.Values {
	params := url.Values{}
	for k, v := range req.GetFields() {
		if s, ok := scalar(v); ok {
			params.Set(k, s)
			continue
		}
		if list := v.GetListValue(); list != nil {
			parts := make([]string, 0, len(list.GetValues()))
			for _, item := range list.GetValues() {
				if s, ok := scalar(item); ok {
					parts = append(parts, s)
				}
			}
			params.Set(k, strings.Join(parts, ","))
		}
	}
	return params
}

func scalar(v *structpb.Value) (string, bool) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue, true
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(k.NumberValue, 'f', -1, 64), true
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(k.BoolValue), true
	}
	return "", false
}

// normalize rewrites row values into the shapes structpb accepts.
func normalize(v any) any {
	switch t := v.(type) {
	case nil, bool, string, float64, int, int32, int64:
		return t
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

func loggingInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("duration", time.Since(start)),
		}
		if code == codes.Internal {
			log.Error("grpc request", append(fields, zap.Error(err))...)
		} else {
			log.Info("grpc request", fields...)
		}
		return resp, err
	}
}

// ─── Service descriptor ──────────────────────────────────────────────────────

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*JobBoardServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListJobs", Handler: listJobsHandler},
		{MethodName: "ApplicationsReport", Handler: applicationsReportHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func listJobsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(JobBoardServer).ListJobs(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ListJobs"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(JobBoardServer).ListJobs(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func applicationsReportHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(JobBoardServer).ApplicationsReport(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ApplicationsReport"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(JobBoardServer).ApplicationsReport(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
