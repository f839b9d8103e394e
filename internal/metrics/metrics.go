package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventsphere_api_request_attempts_total",
			Help: "Total attempts made against the EventSphere backend",
		},
		[]string{"result"}, // success|network_unreachable|http|parse|request
	)

	RequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eventsphere_api_request_duration_seconds",
			Help:    "Duration of a single backend attempt",
			Buckets: prometheus.DefBuckets,
		},
	)

	FallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventsphere_api_fallbacks_total",
			Help: "Online failures that switched the client to offline data",
		},
		[]string{"operation"},
	)

	OfflineServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventsphere_api_offline_served_total",
			Help: "Calls answered by the offline data source",
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(RequestAttempts)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(FallbacksTotal)
	prometheus.MustRegister(OfflineServedTotal)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
