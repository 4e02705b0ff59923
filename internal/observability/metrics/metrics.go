package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking flows.
type BookingMetrics struct {
	slotRequests  *prometheus.CounterVec
	slotLatency   *prometheus.HistogramVec
	slotCache     *prometheus.CounterVec
	bookingsTotal *prometheus.CounterVec
	cancellations prometheus.Counter
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		slotRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "availability",
			Name:      "slot_requests_total",
			Help:      "Total slot computations",
		}, []string{"kind", "status"}),
		slotLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "salon",
			Subsystem: "availability",
			Name:      "slot_compute_seconds",
			Help:      "Latency of slot computations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		slotCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "availability",
			Name:      "slot_cache_total",
			Help:      "Slot cache lookups by result",
		}, []string{"result"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "appointments",
			Name:      "bookings_total",
			Help:      "Booking attempts by result",
		}, []string{"result"}),
		cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "appointments",
			Name:      "cancellations_total",
			Help:      "Total customer cancellations",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.slotRequests, m.slotLatency, m.slotCache, m.bookingsTotal, m.cancellations)
	return m
}

func (m *BookingMetrics) ObserveSlotRequest(kind, status string, seconds float64) {
	if m == nil {
		return
	}
	m.slotRequests.WithLabelValues(kind, status).Inc()
	m.slotLatency.WithLabelValues(kind).Observe(seconds)
}

func (m *BookingMetrics) ObserveSlotCache(result string) {
	if m == nil {
		return
	}
	m.slotCache.WithLabelValues(result).Inc()
}

func (m *BookingMetrics) ObserveBooking(result string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(result).Inc()
}

func (m *BookingMetrics) ObserveCancellation() {
	if m == nil {
		return
	}
	m.cancellations.Inc()
}
