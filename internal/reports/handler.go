package reports

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/bellasalong/booking-platform/internal/clock"
	"github.com/bellasalong/booking-platform/pkg/logging"
)

// BookingCounters is a process-local snapshot of the booking counters,
// read back from the Prometheus registry.
type BookingCounters struct {
	Created       int64 `json:"created"`
	Conflicts     int64 `json:"conflicts"`
	Rejected      int64 `json:"rejected"`
	Cancellations int64 `json:"cancellations"`
}

// Summary is the admin report payload.
type Summary struct {
	Stats
	Counters BookingCounters `json:"process_counters"`
}

// Handler serves the admin reporting endpoints.
type Handler struct {
	stats    *StatsRepository
	days     *WorkerDayRepository
	gatherer prometheus.Gatherer
	clk      clock.Clock
	logger   *logging.Logger
}

// NewHandler creates a new reports handler.
func NewHandler(stats *StatsRepository, days *WorkerDayRepository, gatherer prometheus.Gatherer, clk clock.Clock, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Handler{
		stats:    stats,
		days:     days,
		gatherer: gatherer,
		clk:      clk,
		logger:   logger,
	}
}

// GetSummary returns aggregated booking metrics.
// GET /admin/reports/summary
// Query params:
//   - from, to: date keys (YYYY-MM-DD), both or neither; defaults to the
//     last 30 days ending today
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		http.Error(w, `{"error":"reports disabled (db not configured)"}`, http.StatusServiceUnavailable)
		return
	}

	from, to, err := h.parseRange(r, 30)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	stats, err := h.stats.Summary(r.Context(), from, to)
	if err != nil {
		h.logger.Error("failed to query booking summary", "error", err, "from", from, "to", to)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}

	resp := Summary{
		Stats:    *stats,
		Counters: snapshotBookingCounters(h.gatherer),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// GetWorkerDays returns per-worker daily utilization rows.
// GET /admin/reports/utilization
func (h *Handler) GetWorkerDays(w http.ResponseWriter, r *http.Request) {
	if h.days == nil {
		http.Error(w, `{"error":"reports disabled (db not configured)"}`, http.StatusServiceUnavailable)
		return
	}

	from, to, err := h.parseRange(r, 7)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	rows, err := h.days.List(r.Context(), from, to)
	if err != nil {
		h.logger.Error("failed to query utilization", "error", err, "from", from, "to", to)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"from": from, "to": to, "rows": rows})
}

func (h *Handler) parseRange(r *http.Request, defaultDays int) (string, string, error) {
	q := r.URL.Query()
	from := strings.TrimSpace(q.Get("from"))
	to := strings.TrimSpace(q.Get("to"))
	if (from == "") != (to == "") {
		return "", "", errRangeHalf
	}
	if from != "" {
		if _, err := clock.ParseDateKey(from); err != nil {
			return "", "", errRangeFormat
		}
		if _, err := clock.ParseDateKey(to); err != nil {
			return "", "", errRangeFormat
		}
		if to < from {
			return "", "", errRangeOrder
		}
		return from, to, nil
	}

	today := h.clk.Today()
	start, err := clock.AddDays(today, -(defaultDays - 1))
	if err != nil {
		return "", "", err
	}
	return start, today, nil
}

var (
	errRangeHalf   = rangeError("both from and to must be provided, or neither")
	errRangeFormat = rangeError("dates must be YYYY-MM-DD")
	errRangeOrder  = rangeError("to must not be before from")
)

type rangeError string

func (e rangeError) Error() string { return string(e) }

// snapshotBookingCounters reads the booking counter families back out of
// the registry. Counters reset with the process; the summary labels them
// as process-local.
func snapshotBookingCounters(gatherer prometheus.Gatherer) BookingCounters {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mfs, err := gatherer.Gather()
	if err != nil {
		return BookingCounters{}
	}

	var out BookingCounters
	for _, mf := range mfs {
		switch mf.GetName() {
		case "salon_appointments_bookings_total":
			for _, metric := range mf.Metric {
				if metric == nil || metric.GetCounter() == nil {
					continue
				}
				value := int64(metric.GetCounter().GetValue())
				switch counterResult(metric) {
				case "created":
					out.Created += value
				case "conflict":
					out.Conflicts += value
				case "rejected":
					out.Rejected += value
				}
			}
		case "salon_appointments_cancellations_total":
			for _, metric := range mf.Metric {
				if metric == nil || metric.GetCounter() == nil {
					continue
				}
				out.Cancellations += int64(metric.GetCounter().GetValue())
			}
		}
	}
	return out
}

func counterResult(metric *dto.Metric) string {
	for _, lp := range metric.Label {
		if lp.GetName() == "result" {
			return lp.GetValue()
		}
	}
	return ""
}
