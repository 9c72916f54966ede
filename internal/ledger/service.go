package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Fikiresilase/mini-finance/internal/store"
)

// Service owns the append-only sales collection. No component other than the
// ledger writes it; the catalog reaches it through Append during a sell.
type Service struct {
	store  *store.Store
	logger *slog.Logger
}

// NewService builds the ledger service.
func NewService(st *store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, logger: logger}
}

// Append records one sale at the end of the ledger and persists the full
// collection. There is no deduplication; callers invoke it exactly once per
// successful sell.
func (s *Service) Append(ctx context.Context, sale Sale) error {
	sales := store.Load[Sale](ctx, s.store, store.CollectionSales)
	sales = append(sales, sale)
	if err := store.Save(ctx, s.store, store.CollectionSales, sales); err != nil {
		return fmt.Errorf("ledger: append sale: %w", err)
	}
	return nil
}

// Query returns all sales with timestamp >= since, in append order.
func (s *Service) Query(ctx context.Context, since time.Time) []Sale {
	sales := store.Load[Sale](ctx, s.store, store.CollectionSales)
	matched := make([]Sale, 0, len(sales))
	for _, sale := range sales {
		if !sale.Timestamp.Before(since) {
			matched = append(matched, sale)
		}
	}
	return matched
}

// All returns the full ledger in append order.
func (s *Service) All(ctx context.Context) []Sale {
	return store.Load[Sale](ctx, s.store, store.CollectionSales)
}

// Aggregate reduces sales to count, revenue and profit. Pure, no I/O.
func Aggregate(sales []Sale) Summary {
	summary := Summary{Count: len(sales)}
	for _, sale := range sales {
		summary.TotalRevenue += sale.Price
		summary.TotalProfit += sale.Profit()
	}
	return summary
}
