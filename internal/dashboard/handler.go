// Package dashboard renders the aggregate view the home screen consumes:
// today's totals next to all three trend series in one response.
package dashboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Fikiresilase/mini-finance/internal/ledger"
	"github.com/Fikiresilase/mini-finance/internal/trend"
)

// LedgerService is the ledger read contract used by the handler.
type LedgerService interface {
	Query(ctx context.Context, since time.Time) []ledger.Sale
}

// TrendService is the series contract used by the handler.
type TrendService interface {
	GetSeries(ctx context.Context, granularity trend.Granularity) (trend.Series, error)
}

// Handler assembles the dashboard payload.
type Handler struct {
	logger  *slog.Logger
	ledger  LedgerService
	trends  TrendService
	printer *message.Printer
	now     func() time.Time
}

// NewHandler builds the dashboard HTTP handler.
func NewHandler(logger *slog.Logger, ledgerSvc LedgerService, trendSvc TrendService) *Handler {
	return &Handler{
		logger:  logger,
		ledger:  ledgerSvc,
		trends:  trendSvc,
		printer: message.NewPrinter(language.AmericanEnglish),
		now:     time.Now,
	}
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

// MountRoutes registers the dashboard route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard", h.getDashboard)
}

type dashboardResponse struct {
	Today              ledger.Summary                      `json:"today"`
	TodaySalesDisplay  string                              `json:"todaySalesDisplay"`
	TodayProfitDisplay string                              `json:"todayProfitDisplay"`
	Trends             map[trend.Granularity]trend.Series `json:"trends"`
}

func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := h.now()

	sales := h.ledger.Query(ctx, ledger.WindowDay.Since(now))
	summary := ledger.Aggregate(sales)

	granularities := []trend.Granularity{trend.GranularityDay, trend.GranularityWeek, trend.GranularityMonth}
	series := make([]trend.Series, len(granularities))
	g, gctx := errgroup.WithContext(ctx)
	for i, granularity := range granularities {
		g.Go(func() error {
			s, err := h.trends.GetSeries(gctx, granularity)
			if err != nil {
				return err
			}
			series[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.logger.Error("load dashboard trends", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp := dashboardResponse{
		Today:              summary,
		TodaySalesDisplay:  h.printer.Sprintf("$%.2f", summary.TotalRevenue),
		TodayProfitDisplay: h.printer.Sprintf("$%.2f", summary.TotalProfit),
		Trends:             make(map[trend.Granularity]trend.Series, len(granularities)),
	}
	for i, granularity := range granularities {
		resp.Trends[granularity] = series[i]
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("encode dashboard response", slog.Any("error", err))
	}
}
