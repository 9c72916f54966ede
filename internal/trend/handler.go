package trend

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes trend series over HTTP.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds the trend HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers trend routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/trends", h.getSeries)
}

func (h *Handler) getSeries(w http.ResponseWriter, r *http.Request) {
	granularity, err := ParseGranularity(r.URL.Query().Get("granularity"))
	if err != nil {
		if errors.Is(err, ErrUnknownGranularity) {
			http.Error(w, "unknown granularity", http.StatusBadRequest)
			return
		}
		h.logger.Error("parse granularity", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	series, err := h.service.GetSeries(r.Context(), granularity)
	if err != nil {
		h.logger.Error("load trend series", slog.String("granularity", string(granularity)), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	payload := map[string]any{"granularity": granularity, "labels": series.Labels, "values": series.Values}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("encode trend response", slog.Any("error", err))
	}
}
