package hours

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bellasalong/booking-platform/internal/clock"
	"github.com/bellasalong/booking-platform/pkg/logging"
)

// Handler handles HTTP requests for opening hours
type Handler struct {
	repo   Repository
	clk    clock.Clock
	logger *logging.Logger
}

// NewHandler creates a new hours handler
func NewHandler(repo Repository, clk clock.Clock, logger *logging.Logger) *Handler {
	return &Handler{
		repo:   repo,
		clk:    clk,
		logger: logger,
	}
}

// ListBusinessHours handles GET /business-hours requests
func (h *Handler) ListBusinessHours(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.ListBusinessHours(r.Context())
	if err != nil {
		h.logger.Error("failed to list business hours", "error", err)
		http.Error(w, "failed to list business hours", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"business_hours": entries})
}

// UpsertBusinessHours handles PUT /admin/business-hours requests. The body
// is the full weekly table; each entry replaces the stored one for its day.
func (h *Handler) UpsertBusinessHours(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BusinessHours []BusinessHoursEntry `json:"business_hours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	for i := range req.BusinessHours {
		if err := h.repo.UpsertBusinessHours(r.Context(), &req.BusinessHours[i]); err != nil {
			h.logger.Error("failed to upsert business hours", "error", err, "day", req.BusinessHours[i].DayOfWeek)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"updated": len(req.BusinessHours)})
}

// ListOverrides handles GET /admin/schedule-overrides requests. Defaults to
// the next 90 days starting today.
func (h *Handler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	if from == "" {
		from = h.clk.Today()
	}
	to := r.URL.Query().Get("to")
	if to == "" {
		var err error
		if to, err = clock.AddDays(from, 90); err != nil {
			http.Error(w, ErrInvalidDate.Error(), http.StatusBadRequest)
			return
		}
	}

	overrides, err := h.repo.ListOverrides(r.Context(), from, to)
	if err != nil {
		h.logger.Error("failed to list overrides", "error", err)
		http.Error(w, "failed to list overrides", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"overrides": overrides, "count": len(overrides)})
}

// CreateOverride handles POST /admin/schedule-overrides requests
func (h *Handler) CreateOverride(w http.ResponseWriter, r *http.Request) {
	var req CreateOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	override, err := h.repo.CreateOverride(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create override", "error", err, "date", req.Date)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("schedule override created", "date", override.Date, "is_closed", override.IsClosed)
	writeJSON(w, http.StatusCreated, override)
}

// DeleteOverride handles DELETE /admin/schedule-overrides/{overrideID} requests
func (h *Handler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "overrideID")

	if err := h.repo.DeleteOverride(r.Context(), id); err != nil {
		if errors.Is(err, ErrOverrideNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete override", "error", err, "id", id)
		http.Error(w, "failed to delete override", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
