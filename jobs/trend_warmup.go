package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/Fikiresilase/mini-finance/internal/trend"
)

// TrendWarmer is the slice of the trend service the warmup job needs; a read
// through GetSeries populates the cache as a side effect.
type TrendWarmer interface {
	GetSeries(ctx context.Context, granularity trend.Granularity) (trend.Series, error)
}

// TrendWarmupJob pre-populates the trend series cache so dashboard reads stay
// cheap after a cache bump.
type TrendWarmupJob struct {
	warmer TrendWarmer
	logger *slog.Logger
	clock  func() time.Time
}

// NewTrendWarmupJob wires dependencies for the warmup handler.
func NewTrendWarmupJob(warmer TrendWarmer, logger *slog.Logger) *TrendWarmupJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrendWarmupJob{warmer: warmer, logger: logger, clock: time.Now}
}

// Handle processes trend warmup tasks.
func (j *TrendWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.warmer == nil {
		return errors.New("trend warmup: handler not configured")
	}
	var payload TrendWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	granularities, err := resolveGranularities(payload.Granularities)
	if err != nil {
		j.logger.Warn("trend warmup: bad payload", slog.Any("error", err))
		return asynq.SkipRetry
	}

	started := j.clock()
	g, gctx := errgroup.WithContext(ctx)
	for _, granularity := range granularities {
		g.Go(func() error {
			_, err := j.warmer.GetSeries(gctx, granularity)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		j.logger.Error("trend warmup failed", slog.Any("error", err))
		return err
	}
	j.logger.Info("trend warmup complete",
		slog.Int("series", len(granularities)),
		slog.Duration("elapsed", j.clock().Sub(started)))
	return nil
}

func resolveGranularities(names []string) ([]trend.Granularity, error) {
	if len(names) == 0 {
		return []trend.Granularity{trend.GranularityDay, trend.GranularityWeek, trend.GranularityMonth}, nil
	}
	out := make([]trend.Granularity, 0, len(names))
	for _, name := range names {
		granularity, err := trend.ParseGranularity(name)
		if err != nil {
			return nil, err
		}
		out = append(out, granularity)
	}
	return out, nil
}
