package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/Fikiresilase/mini-finance/internal/ledger"
)

// Enqueuer submits jobs to the queue. It doubles as a catalog sold-hook so a
// sale schedules a cache refresh without blocking the sell path on the work
// itself.
type Enqueuer struct {
	client *asynq.Client
	logger *slog.Logger
}

// NewEnqueuer constructs an Asynq-backed enqueuer.
func NewEnqueuer(redisOpts asynq.RedisClientOpt, logger *slog.Logger) *Enqueuer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enqueuer{client: asynq.NewClient(redisOpts), logger: logger}
}

// EnqueueTrendWarmup schedules a warmup of the given granularities.
func (e *Enqueuer) EnqueueTrendWarmup(ctx context.Context, payload TrendWarmupPayload) (*asynq.TaskInfo, error) {
	task, err := NewTrendWarmupTask(payload)
	if err != nil {
		return nil, err
	}
	info, err := e.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	if err != nil {
		return nil, fmt.Errorf("jobs: enqueue trend warmup: %w", err)
	}
	return info, nil
}

// HandleItemSold schedules a full warmup after a sale.
func (e *Enqueuer) HandleItemSold(ctx context.Context, _ ledger.Sale) error {
	_, err := e.EnqueueTrendWarmup(ctx, TrendWarmupPayload{})
	return err
}

// Close releases client resources.
func (e *Enqueuer) Close() error {
	return e.client.Close()
}
