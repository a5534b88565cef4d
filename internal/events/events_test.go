package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"jobmate/jobboard-service/internal/events"
	"jobmate/jobboard-service/internal/store"
)

type published struct {
	channel string
	payload map[string]string
}

type fakeRedis struct {
	sent []published
	err  error
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message any) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	var payload map[string]string
	_ = json.Unmarshal(message.([]byte), &payload)
	f.sent = append(f.sent, published{channel: channel, payload: payload})
	cmd.SetVal(1)
	return cmd
}

func TestPublisher_ApplicationCreated(t *testing.T) {
	rdb := &fakeRedis{}
	p := events.NewPublisher(rdb, zap.NewNop())

	p.ApplicationCreated(context.Background(), store.Application{ID: "A1", JobID: "J1", UserID: "U1"}, "C")

	require.Len(t, rdb.sent, 1)
	assert.Equal(t, events.ApplicationCreated, rdb.sent[0].channel)
	assert.Equal(t, map[string]string{
		"type":          "EVENT_APPLICATION_CREATED",
		"applicationId": "A1",
		"jobId":         "J1",
		"userId":        "U1",
		"companyId":     "C",
	}, rdb.sent[0].payload)
}

func TestPublisher_ReportAndDigest(t *testing.T) {
	rdb := &fakeRedis{}
	p := events.NewPublisher(rdb, zap.NewNop())
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	p.ReportGenerated(context.Background(), "C", day, 4)
	p.DailyApplications(context.Background(), store.CompanyCount{CompanyID: "C", CompanyName: "acme", CompanyHR: "hr", Count: 7}, day)

	require.Len(t, rdb.sent, 2)
	assert.Equal(t, "4", rdb.sent[0].payload["rows"])
	assert.Equal(t, "2024-05-10", rdb.sent[0].payload["date"])
	assert.Equal(t, events.DailyApplications, rdb.sent[1].channel)
	assert.Equal(t, "7", rdb.sent[1].payload["applications"])
	assert.Equal(t, "hr", rdb.sent[1].payload["hrUserId"])
}

func TestPublisher_FailureIsLoggedNotReturned(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	p := events.NewPublisher(&fakeRedis{err: errors.New("connection refused")}, zap.New(core))

	p.ReportGenerated(context.Background(), "C", time.Now(), 1)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "publish failed", logs.All()[0].Message)
}
