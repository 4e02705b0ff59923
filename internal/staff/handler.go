package staff

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bellasalong/booking-platform/pkg/logging"
)

// Handler handles HTTP requests for workers
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new staff handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// ListWorkers handles GET /workers requests. With a service_ids query
// parameter it returns only active workers offering every listed service,
// which is what the booking wizard uses to populate its worker step.
func (h *Handler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	var (
		workers []*Worker
		err     error
	)
	if raw := r.URL.Query().Get("service_ids"); raw != "" {
		workers, err = h.repo.ListForServices(r.Context(), splitIDs(raw))
	} else {
		workers, err = h.repo.ListActive(r.Context())
	}
	if err != nil {
		h.logger.Error("failed to list workers", "error", err)
		http.Error(w, "failed to list workers", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"workers": workers, "count": len(workers)})
}

// GetWorker handles GET /workers/{workerID} requests
func (h *Handler) GetWorker(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workerID")

	worker, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrWorkerNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get worker", "error", err, "id", id)
		http.Error(w, "failed to get worker", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, worker)
}

// CreateWorker handles POST /admin/workers requests
func (h *Handler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	worker, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create worker", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("worker created", "id", worker.ID, "name", worker.Name)
	writeJSON(w, http.StatusCreated, worker)
}

// SetWorkingHoursRequest is the request body for replacing a schedule
type SetWorkingHoursRequest struct {
	WorkingHours []WorkingHoursEntry `json:"working_hours"`
}

// SetWorkingHours handles PUT /admin/workers/{workerID}/hours requests
func (h *Handler) SetWorkingHours(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workerID")

	var req SetWorkingHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	worker, err := h.repo.SetWorkingHours(r.Context(), id, req.WorkingHours)
	if err != nil {
		if errors.Is(err, ErrWorkerNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to set working hours", "error", err, "id", id)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, worker)
}

// SetServicesRequest is the request body for replacing offered services
type SetServicesRequest struct {
	ServiceIDs []string `json:"service_ids"`
}

// SetServices handles PUT /admin/workers/{workerID}/services requests
func (h *Handler) SetServices(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workerID")

	var req SetServicesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	worker, err := h.repo.SetServices(r.Context(), id, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, ErrWorkerNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to set worker services", "error", err, "id", id)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, worker)
}

func splitIDs(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
