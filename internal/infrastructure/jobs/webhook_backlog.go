package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"rampsync.backend/pkg/logger"
	"rampsync.backend/pkg/metrics"
)

type unprocessedCounter interface {
	CountUnprocessedBefore(ctx context.Context, before time.Time) (int64, error)
}

// WebhookBacklogJob reports stored webhook events that were never processed
type WebhookBacklogJob struct {
	repo     unprocessedCounter
	interval time.Duration
	grace    time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewWebhookBacklogJob checks every interval for events older than grace
func NewWebhookBacklogJob(repo unprocessedCounter, interval, grace time.Duration) *WebhookBacklogJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &WebhookBacklogJob{
		repo:     repo,
		interval: interval,
		grace:    grace,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

func (j *WebhookBacklogJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting webhook backlog job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Webhook backlog job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Webhook backlog job stopped")
			return
		case <-ticker.C:
			j.checkBacklog(ctx)
		}
	}
}

func (j *WebhookBacklogJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *WebhookBacklogJob) checkBacklog(ctx context.Context) {
	count, err := j.repo.CountUnprocessedBefore(ctx, j.now().Add(-j.grace))
	if err != nil {
		logger.Error(ctx, "Error counting unprocessed webhook events", zap.Error(err))
		return
	}

	metrics.WebhookBacklog.Set(float64(count))
	if count > 0 {
		logger.Warn(ctx, "Unprocessed webhook events waiting for reprocessing",
			zap.Int64("count", count),
			zap.Duration("older_than", j.grace),
		)
	}
}
