// jobmate-jobboard-service
//
// Companies, job postings and applications for the job board.
// Exposes a REST API used by the Gateway to implement:
//   - job listing with pagination, sorting, projection and filters
//   - company and job management for HR users
//   - applying to jobs
//   - per-day applicant spreadsheet (xlsx) for a company
//
// The listing and the spreadsheet are also served over gRPC for internal
// callers. A daily cron publishes EVENT_DAILY_APPLICATIONS per company to
// Redis; EVENT_APPLICATION_CREATED and EVENT_REPORT_GENERATED are published
// as they happen.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"jobmate/jobboard-service/internal/board"
	"jobmate/jobboard-service/internal/config"
	"jobmate/jobboard-service/internal/db"
	"jobmate/jobboard-service/internal/events"
	"jobmate/jobboard-service/internal/grpcserver"
	"jobmate/jobboard-service/internal/httpapi"
	"jobmate/jobboard-service/internal/metrics"
	"jobmate/jobboard-service/internal/report"
	"jobmate/jobboard-service/internal/scheduler"
	"jobmate/jobboard-service/internal/store"
	"jobmate/jobboard-service/internal/xlsx"
	"jobmate/jobboard-service/pkg/logger"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[jobboard-service] Config error: %v", err)
	}

	if err := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
	}); err != nil {
		log.Fatalf("[jobboard-service] Logger error: %v", err)
	}
	defer logger.Sync()
	lg := logger.Get().With(zap.String("service", "jobboard-service"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	lg.Info("connecting to PostgreSQL")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Fatal("postgres", zap.Error(err))
	}
	defer pool.Close()
	if err := db.Migrate(ctx, pool); err != nil {
		lg.Fatal("migrate", zap.Error(err))
	}
	lg.Info("PostgreSQL connected")

	// ── Redis ────────────────────────────────────────────────────────────────
	lg.Info("connecting to Redis")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		lg.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()
	lg.Info("Redis connected")

	// ── Domain ───────────────────────────────────────────────────────────────
	st := store.New(pool)
	pub := events.NewPublisher(rdb, lg)
	reports := report.NewGenerator(st, xlsx.NewEncoder(), pub, lg)
	svc := board.NewService(st, pub, lg)
	m := metrics.New()

	// ── Digest cron ──────────────────────────────────────────────────────────
	if cfg.DigestEnabled {
		sched := scheduler.New(st, pub, m, cfg.DigestCron, lg)
		if err := sched.Start(ctx); err != nil {
			lg.Fatal("scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	// ── HTTP server ──────────────────────────────────────────────────────────
	h := httpapi.NewHandler(httpapi.Options{
		Board:   svc,
		Reports: reports,
		Metrics: m,
		Logger:  lg,
		Version: version,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      h.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		lg.Info("http listening", zap.String("version", version), zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("http server", zap.Error(err))
		}
	}()

	// ── gRPC server ──────────────────────────────────────────────────────────
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPCPort))
	if err != nil {
		lg.Fatal("grpc listen", zap.Error(err))
	}
	gs := grpcserver.New(grpcserver.NewServer(svc, reports), lg)

	go func() {
		lg.Info("grpc listening", zap.String("port", cfg.GRPCPort))
		if err := gs.Serve(lis); err != nil {
			lg.Fatal("grpc server", zap.Error(err))
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	gs.GracefulStop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown", zap.Error(err))
	}
	lg.Info("stopped")
}
