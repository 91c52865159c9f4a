package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal counts handled API requests by route and status code.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pocket_wallet_http_requests_total",
			Help: "Total number of handled HTTP requests.",
		},
		[]string{"route", "status"},
	)

	// HTTPRequestDuration observes API request latency by route.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pocket_wallet_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// TransfersTotal counts submitted transfers by chain and final status.
	TransfersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pocket_wallet_transfers_total",
			Help: "Total number of submitted transfers by chain and status.",
		},
		[]string{"chain", "status"},
	)

	// WalletFetchesTotal counts upstream wallet data fetches by outcome.
	WalletFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pocket_wallet_data_fetches_total",
			Help: "Total number of wallet data fetch cycles by outcome.",
		},
		[]string{"chain", "outcome"},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		TransfersTotal,
		WalletFetchesTotal,
	)
}
