package catalog

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the catalog over HTTP.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds the catalog HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/items", func(r chi.Router) {
		r.Get("/", h.listItems)
		r.Post("/", h.createItem)
		r.Post("/{id}/sell", h.sellItem)
	})
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.listCategories)
		r.Post("/", h.createCategory)
	})
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	onlyInStock := false
	if raw := r.URL.Query().Get("inStock"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "inStock must be a boolean")
			return
		}
		onlyInStock = parsed
	}
	items := h.service.ListItems(r.Context(), category, onlyInStock)
	h.respondJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	item, err := h.service.AddItem(r.Context(), req)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			h.respondJSON(w, http.StatusBadRequest, map[string]any{
				"error":  "validation failed",
				"fields": verr.Fields,
			})
			return
		}
		h.logger.Error("add item", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "could not save item")
		return
	}
	h.respondJSON(w, http.StatusCreated, item)
}

func (h *Handler) sellItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")
	sale, err := h.service.Sell(r.Context(), itemID)
	switch {
	case errors.Is(err, ErrNotFound):
		h.respondError(w, http.StatusNotFound, "item not found")
		return
	case errors.Is(err, ErrOutOfStock):
		h.respondError(w, http.StatusConflict, "item out of stock")
		return
	case err != nil:
		h.logger.Error("sell item", slog.String("item_id", itemID), slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "could not record sale")
		return
	}
	h.respondJSON(w, http.StatusCreated, sale)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.service.ListCategories(r.Context())
	h.respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

type createCategoryRequest struct {
	Label string `json:"label"`
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	category, added, err := h.service.AddCategory(r.Context(), req.Label)
	if err != nil {
		h.logger.Error("add category", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "could not save category")
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	h.respondJSON(w, status, map[string]any{"category": category, "added": added})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("encode response", slog.Any("error", err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, map[string]string{"error": msg})
}
