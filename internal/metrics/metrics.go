package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusms_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campusms_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	LedgerOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusms_ledger_operations_total",
			Help: "Total number of wallet ledger operations",
		},
		[]string{"kind", "outcome"},
	)

	WalletTopUpsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campusms_wallet_topups_total",
			Help: "Total number of gateway wallet top-ups credited",
		},
	)

	DuplicateTopUpsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campusms_wallet_duplicate_topups_total",
			Help: "Gateway callbacks suppressed by the dedup key",
		},
	)

	MealBookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusms_meal_bookings_total",
			Help: "Total number of meal bookings",
		},
		[]string{"outcome"},
	)

	RedemptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusms_redemptions_total",
			Help: "Total number of redemption token verifications",
		},
		[]string{"outcome"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusms_notifications_total",
			Help: "Total number of notifications processed",
		},
		[]string{"type", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "campusms_notification_queue_length",
			Help: "Current length of the notification queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordLedgerOp(kind, outcome string) {
	LedgerOpsTotal.WithLabelValues(kind, outcome).Inc()
}

func RecordBooking(outcome string) {
	MealBookingsTotal.WithLabelValues(outcome).Inc()
}

func RecordRedemption(outcome string) {
	RedemptionsTotal.WithLabelValues(outcome).Inc()
}

func RecordNotification(notifType, status string) {
	NotificationsTotal.WithLabelValues(notifType, status).Inc()
}
