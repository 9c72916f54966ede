package ledger

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Fikiresilase/mini-finance/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store.New(store.NewMemoryKV(), logger), logger)
}

func TestAggregate(t *testing.T) {
	sales := []Sale{
		{Price: 10, OriginalPrice: 6},
		{Price: 20, OriginalPrice: 15},
	}
	summary := Aggregate(sales)
	require.Equal(t, 2, summary.Count)
	require.InDelta(t, 30.0, summary.TotalRevenue, 0.0001)
	require.InDelta(t, 9.0, summary.TotalProfit, 0.0001)
}

func TestAggregateEmpty(t *testing.T) {
	summary := Aggregate(nil)
	require.Equal(t, Summary{}, summary)
}

func TestAppendAndQueryKeepOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	names := []string{"first", "second", "third"}
	for i, name := range names {
		sale := Sale{ItemID: name, Name: name, Price: 5, Timestamp: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, svc.Append(ctx, sale))
	}

	all := svc.All(ctx)
	require.Len(t, all, 3)
	for i, name := range names {
		require.Equal(t, name, all[i].Name)
	}

	since := base.Add(30 * time.Minute)
	matched := svc.Query(ctx, since)
	require.Len(t, matched, 2)
	require.Equal(t, "second", matched[0].Name)
	require.Equal(t, "third", matched[1].Name)
}

func TestQueryBoundaryIsInclusive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, svc.Append(ctx, Sale{Name: "edge", Price: 1, Timestamp: at}))
	matched := svc.Query(ctx, at)
	require.Len(t, matched, 1)
}

func TestWindowSince(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.Local)

	day := WindowDay.Since(now)
	require.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local), day)

	week := WindowWeek.Since(now)
	require.Equal(t, now.AddDate(0, 0, -7), week)

	month := WindowMonth.Since(now)
	require.Equal(t, now.AddDate(0, 0, -30), month)
}

func TestParseWindow(t *testing.T) {
	window, err := ParseWindow("")
	require.NoError(t, err)
	require.Equal(t, WindowDay, window)

	window, err = ParseWindow("month")
	require.NoError(t, err)
	require.Equal(t, WindowMonth, window)

	_, err = ParseWindow("fortnight")
	require.ErrorIs(t, err, ErrUnknownWindow)
}
