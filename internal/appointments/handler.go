package appointments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bellasalong/booking-platform/pkg/logging"
)

// Handler handles HTTP requests for appointments
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new appointments handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create handles POST /appointments requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.service.Create(r.Context(), &req)
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			http.Error(w, conflict.Error(), http.StatusConflict)
			return
		}
		h.logger.Error("failed to create appointment", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, appt)
}

// CancelByTokenRequest is the request body for a customer cancellation
type CancelByTokenRequest struct {
	Token string `json:"token"`
}

// CancelByToken handles POST /appointments/cancel requests
func (h *Handler) CancelByToken(w http.ResponseWriter, r *http.Request) {
	var req CancelByTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Token == "" {
		http.Error(w, ErrInvalidToken.Error(), http.StatusBadRequest)
		return
	}

	appt, err := h.service.CancelByToken(r.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrAlreadyCancelled), errors.Is(err, ErrAppointmentPassed):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			h.logger.Error("failed to cancel appointment", "error", err)
			http.Error(w, "failed to cancel appointment", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, appt)
}

// List handles GET /admin/appointments requests with from/to date keys
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		http.Error(w, "from and to are required", http.StatusBadRequest)
		return
	}

	appts, err := h.service.ListRange(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to list appointments", "error", err)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"appointments": appts, "count": len(appts)})
}

// Cancel handles POST /admin/appointments/{appointmentID}/cancel requests
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")

	appt, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		h.writeLifecycleError(w, err, id)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

// RescheduleRequest is the request body for moving an appointment
type RescheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Reschedule handles PUT /admin/appointments/{appointmentID} requests
func (h *Handler) Reschedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")

	var req RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.service.Reschedule(r.Context(), id, req.Date, req.Time)
	if err != nil {
		var conflict *ConflictError
		switch {
		case errors.As(err, &conflict):
			http.Error(w, conflict.Error(), http.StatusConflict)
		case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidTime), errors.Is(err, ErrPastDate):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.writeLifecycleError(w, err, id)
		}
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

// Complete handles POST /admin/appointments/{appointmentID}/complete requests
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")

	appt, err := h.service.Complete(r.Context(), id)
	if err != nil {
		h.writeLifecycleError(w, err, id)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

func (h *Handler) writeLifecycleError(w http.ResponseWriter, err error, id string) {
	switch {
	case errors.Is(err, ErrAppointmentNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrAlreadyCancelled):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.logger.Error("appointment update failed", "error", err, "id", id)
		http.Error(w, "appointment update failed", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
