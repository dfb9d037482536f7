// Package metrics registers the panel's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var Registry = prometheus.NewRegistry()

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "suket_http_requests_total",
		Help: "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "suket_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	LoginAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "suket_login_attempts_total",
		Help: "Login attempts by result.",
	}, []string{"result"})

	Searches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "suket_searches_total",
		Help: "Register searches by role and outcome.",
	}, []string{"role", "outcome"})

	Certificates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "suket_certificates_total",
		Help: "Certificate downloads by outcome.",
	}, []string{"outcome"})

	CertificatesPruned = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "suket_certificates_pruned_total",
		Help: "Generated certificates removed by the retention job.",
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequestsTotal,
		HTTPRequestDuration,
		LoginAttempts,
		Searches,
		Certificates,
		CertificatesPruned,
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
