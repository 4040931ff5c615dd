package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "rental_booking"

// Metrics holds all prometheus metrics
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	BookingsCreated  *prometheus.CounterVec
	BookingChanges   *prometheus.CounterVec
	OTPIssued        *prometheus.CounterVec
	OTPVerifications *prometheus.CounterVec
	PaymentOutcomes  *prometheus.CounterVec
	GatewayLatency   prometheus.Histogram
	JobRuns          *prometheus.CounterVec
}

// NewMetrics registers every collector on reg. Tests pass a fresh registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "The total number of handled HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time taken to handle HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BookingsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "bookings_created_total",
			Help:      "Booking creation attempts by outcome",
		}, []string{"outcome"}),
		BookingChanges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "booking_transitions_total",
			Help:      "Booking state changes by kind",
		}, []string{"transition"}),
		OTPIssued: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "otp_issued_total",
			Help:      "Issued OTP challenges by purpose",
		}, []string{"purpose"}),
		OTPVerifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "otp_verifications_total",
			Help:      "OTP verification calls by result",
		}, []string{"result"}),
		PaymentOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "payment_outcomes_total",
			Help:      "Payment status changes by resulting status",
		}, []string{"status"}),
		GatewayLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "payment_gateway_seconds",
			Help:      "Time taken by the payment gateway to answer a charge",
			Buckets:   prometheus.DefBuckets,
		}),
		JobRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "scheduled_job_runs_total",
			Help:      "Scheduled job runs by job and result",
		}, []string{"job", "result"}),
	}
}

// NewNopMetrics is backed by a private registry that is never scraped.
func NewNopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
