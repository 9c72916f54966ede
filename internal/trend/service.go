package trend

import (
	"context"
	"time"

	"github.com/Fikiresilase/mini-finance/internal/ledger"
	"github.com/Fikiresilase/mini-finance/internal/store"
)

// Service derives trend series from the persisted ledger, fronted by the
// versioned cache when one is configured.
type Service struct {
	store *store.Store
	cache *Cache
	now   func() time.Time
}

// NewService builds the trend service. cache may be nil, in which case every
// read recomputes the series.
func NewService(st *store.Store, cache *Cache) *Service {
	return &Service{store: st, cache: cache, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// GetSeries returns the bucketed revenue series for the granularity,
// recomputed from the full ledger on cache miss.
func (s *Service) GetSeries(ctx context.Context, granularity Granularity) (Series, error) {
	now := s.now()
	loader := func(ctx context.Context) (interface{}, error) {
		sales := store.Load[ledger.Sale](ctx, s.store, store.CollectionSales)
		return BuildSeries(sales, granularity, now), nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return Series{}, err
		}
		return value.(Series), nil
	}

	key, err := s.cache.BuildKey(ctx, keySeries(granularity, now))
	if err != nil {
		return Series{}, err
	}
	var series Series
	if err := s.cache.FetchJSON(ctx, key, &series, loader); err != nil {
		return Series{}, err
	}
	return series, nil
}

// HandleItemSold invalidates cached series after a successful sell.
func (s *Service) HandleItemSold(ctx context.Context, _ ledger.Sale) error {
	return s.cache.Bump(ctx)
}
