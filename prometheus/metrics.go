package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Login counter
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nestify_login_total",
			Help: "Total number of password login attempts",
		},
	)

	// Registration counter
	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nestify_register_total",
			Help: "Total number of user registrations",
		},
	)

	// OTP send counter
	OTPSendCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nestify_otp_send_total",
			Help: "Total number of OTP codes issued",
		},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nestify_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // type can be "invalid_token", "user_not_found", "invalid_password" etc.
	)

	// Booking conflict counter
	BookingConflictCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nestify_booking_conflicts_total",
			Help: "Total number of facility bookings rejected for overlapping an existing slot",
		},
	)

	// Late fee counter
	LateFeeCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nestify_invoice_overdue_transitions_total",
			Help: "Total number of invoices transitioned to overdue on read",
		},
	)

	// Payment counter
	PaymentCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nestify_payments_recorded_total",
			Help: "Total number of maintenance payments recorded",
		},
	)

	// Vote counter
	VoteCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nestify_votes_cast_total",
			Help: "Total number of poll votes cast",
		},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nestify_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nestify_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)
)

func init() {
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(RegisterCounter)
	prometheus.MustRegister(OTPSendCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(BookingConflictCounter)
	prometheus.MustRegister(LateFeeCounter)
	prometheus.MustRegister(PaymentCounter)
	prometheus.MustRegister(VoteCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(RequestDuration)
}

// RecordAuthError increments the auth error counter for a given type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			HTTPRequestCounter.WithLabelValues(endpoint, method, status).Inc()
			RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)

			return err
		}
	}
}
