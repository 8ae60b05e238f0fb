package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Entity mutations
	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_mutations_total",
			Help: "Total successful entity mutations",
		},
		[]string{"entity", "action"}, // user|amenity|place|review x create|update|delete
	)

	AuthFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_failures_total",
			Help: "Total failed logins and rejected tokens",
		},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current audit worker queue depth",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(MutationsTotal)
	prometheus.MustRegister(AuthFailures)
	prometheus.MustRegister(WorkerQueueDepth)
}
