package ledger

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Handler exposes the sales ledger over HTTP.
type Handler struct {
	logger  *slog.Logger
	service *Service
	printer *message.Printer
	now     func() time.Time
}

// NewHandler builds the ledger HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
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

// MountRoutes registers ledger routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/sales", h.listSales)
}

type salesResponse struct {
	Window              Window  `json:"window"`
	Summary             Summary `json:"summary"`
	TotalRevenueDisplay string  `json:"totalRevenueDisplay"`
	TotalProfitDisplay  string  `json:"totalProfitDisplay"`
	Sales               []Sale  `json:"sales"`
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	window, err := ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		if errors.Is(err, ErrUnknownWindow) {
			http.Error(w, "unknown window", http.StatusBadRequest)
			return
		}
		h.logger.Error("parse window", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sales := h.service.Query(r.Context(), window.Since(h.now()))
	summary := Aggregate(sales)

	resp := salesResponse{
		Window:              window,
		Summary:             summary,
		TotalRevenueDisplay: h.printer.Sprintf("$%.2f", summary.TotalRevenue),
		TotalProfitDisplay:  h.printer.Sprintf("$%.2f", summary.TotalProfit),
		Sales:               sales,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("encode sales response", slog.Any("error", err))
	}
}
