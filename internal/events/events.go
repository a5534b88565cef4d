// Package events publishes domain events to Redis pub/sub for the gateway
// and the mailer. Publishing is best effort: failures are logged and never
// fail the request that triggered them.
package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"jobmate/jobboard-service/internal/store"
)

// Channel names. Each event is published on the channel named after its type.
const (
	ApplicationCreated = "EVENT_APPLICATION_CREATED"
	ReportGenerated    = "EVENT_REPORT_GENERATED"
	DailyApplications  = "EVENT_DAILY_APPLICATIONS"
)

// Redis is the subset of *redis.Client used here.
type Redis interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// Publisher emits events.
type Publisher struct {
	rdb Redis
	log *zap.Logger
}

// NewPublisher returns a Publisher over rdb.
func NewPublisher(rdb Redis, log *zap.Logger) *Publisher {
	return &Publisher{rdb: rdb, log: log.Named("events")}
}

// ApplicationCreated announces a new application to companyID's job.
func (p *Publisher) ApplicationCreated(ctx context.Context, a store.Application, companyID string) {
	p.publish(ctx, ApplicationCreated, map[string]string{
		"applicationId": a.ID,
		"jobId":         a.JobID,
		"userId":        a.UserID,
		"companyId":     companyID,
	})
}

// ReportGenerated announces a finished applicant report.
func (p *Publisher) ReportGenerated(ctx context.Context, companyID string, day time.Time, rows int) {
	p.publish(ctx, ReportGenerated, map[string]string{
		"companyId": companyID,
		"date":      day.Format("2006-01-02"),
		"rows":      strconv.Itoa(rows),
	})
}

// DailyApplications announces a company's application count for day, to be
// mailed to its HR user downstream.
func (p *Publisher) DailyApplications(ctx context.Context, c store.CompanyCount, day time.Time) {
	p.publish(ctx, DailyApplications, map[string]string{
		"companyId":    c.CompanyID,
		"companyName":  c.CompanyName,
		"hrUserId":     c.CompanyHR,
		"date":         day.Format("2006-01-02"),
		"applications": strconv.FormatInt(c.Count, 10),
	})
}

func (p *Publisher) publish(ctx context.Context, typ string, fields map[string]string) {
	fields["type"] = typ
	event, err := json.Marshal(fields)
	if err != nil {
		p.log.Warn("marshal event failed", zap.String("type", typ), zap.Error(err))
		return
	}
	if err := p.rdb.Publish(ctx, typ, event).Err(); err != nil {
		p.log.Warn("publish failed", zap.String("type", typ), zap.Error(err))
		return
	}
	p.log.Debug("event published", zap.String("type", typ))
}
