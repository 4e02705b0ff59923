package availability

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bellasalong/booking-platform/pkg/logging"
)

// Handler handles HTTP requests for availability
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new availability handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// DaySlots handles GET /availability?worker_id=&service_ids=&date= requests
func (h *Handler) DaySlots(w http.ResponseWriter, r *http.Request) {
	workerID := r.URL.Query().Get("worker_id")
	serviceIDs := splitIDs(r.URL.Query().Get("service_ids"))
	date := r.URL.Query().Get("date")
	if workerID == "" || len(serviceIDs) == 0 || date == "" {
		http.Error(w, "worker_id, service_ids and date are required", http.StatusBadRequest)
		return
	}

	slots, err := h.service.DaySlots(r.Context(), workerID, serviceIDs, date)
	if err != nil {
		h.logger.Error("failed to compute day slots", "error", err, "worker_id", workerID, "date", date)
		http.Error(w, "failed to compute availability", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"date": date, "timeslots": slots})
}

// WindowSlots handles GET /availability/window?worker_id=&service_ids= requests
func (h *Handler) WindowSlots(w http.ResponseWriter, r *http.Request) {
	workerID := r.URL.Query().Get("worker_id")
	serviceIDs := splitIDs(r.URL.Query().Get("service_ids"))
	if workerID == "" || len(serviceIDs) == 0 {
		http.Error(w, "worker_id and service_ids are required", http.StatusBadRequest)
		return
	}

	days, err := h.service.WindowSlots(r.Context(), workerID, serviceIDs)
	if err != nil {
		h.logger.Error("failed to compute booking window", "error", err, "worker_id", workerID)
		http.Error(w, "failed to compute availability", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}

// NextAvailable handles GET /availability/next?service_ids= requests
func (h *Handler) NextAvailable(w http.ResponseWriter, r *http.Request) {
	serviceIDs := splitIDs(r.URL.Query().Get("service_ids"))
	if len(serviceIDs) == 0 {
		http.Error(w, "service_ids is required", http.StatusBadRequest)
		return
	}

	next, err := h.service.NextAvailable(r.Context(), serviceIDs)
	if err != nil {
		h.logger.Error("failed to find next available slot", "error", err)
		http.Error(w, "failed to compute availability", http.StatusInternalServerError)
		return
	}
	if next == nil {
		writeJSON(w, http.StatusOK, map[string]any{"next": nil})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"next": next})
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
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
