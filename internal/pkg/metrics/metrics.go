package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Count of processed HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time taken to process HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	AuthFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_failures_total",
			Help: "Count of rejected logins and bearer tokens",
		},
		[]string{"reason"}, // credentials, token, session, role
	)

	SessionsIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_issued_total",
			Help: "Count of sessions issued on login",
		},
	)
)

var once sync.Once

// Init registra os coletores no registry padrão. Pode ser chamado mais de uma vez.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			AuthFailures,
			SessionsIssued,
		)
	})
}
