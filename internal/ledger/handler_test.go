package ledger

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLoggerHandler() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestListSalesEndpoint(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	require.NoError(t, svc.Append(ctx, Sale{Name: "today", Price: 10, OriginalPrice: 6, Timestamp: now.Add(-time.Hour)}))
	require.NoError(t, svc.Append(ctx, Sale{Name: "last week", Price: 99, OriginalPrice: 1, Timestamp: now.AddDate(0, 0, -3)}))

	h := NewHandler(testLoggerHandler(), svc)
	h.WithNow(func() time.Time { return now })
	r := chi.NewRouter()
	h.MountRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales?window=day", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp salesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, WindowDay, resp.Window)
	assert.Equal(t, 1, resp.Summary.Count)
	assert.InDelta(t, 10.0, resp.Summary.TotalRevenue, 0.0001)
	assert.Equal(t, "$10.00", resp.TotalRevenueDisplay)
	assert.Equal(t, "$4.00", resp.TotalProfitDisplay)
	require.Len(t, resp.Sales, 1)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales?window=week", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Summary.Count)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales?window=fortnight", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
