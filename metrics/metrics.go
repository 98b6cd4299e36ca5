// Package metrics exposes Prometheus metrics for the fake backend on a
// dedicated listener, kept separate from the API port so scrapes never
// contend with API traffic.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsServer serves /metrics for one process.
type MetricsServer struct {
	srv      *http.Server
	registry *prometheus.Registry

	// TenantsCreated counts tenants accepted for provisioning.
	TenantsCreated prometheus.Counter

	// ProvisioningOutcomes counts terminal provisioning results by status.
	ProvisioningOutcomes *prometheus.CounterVec

	// ProvisioningDuration observes seconds from acceptance to a terminal
	// status.
	ProvisioningDuration prometheus.Histogram
}

// New creates a metrics server listening on addr, with the process
// collectors plus the provisioning metrics registered under namespace.
func New(namespace, addr string) (*MetricsServer, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)
	m := &MetricsServer{
		registry: registry,
		TenantsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tenants_created_total",
			Help:      "Tenants accepted for provisioning.",
		}),
		ProvisioningOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provisioning_outcomes_total",
			Help:      "Terminal provisioning results by status.",
		}, []string{"status"}),
		ProvisioningDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provisioning_duration_seconds",
			Help:      "Seconds from tenant acceptance to a terminal status.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	m.srv = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return m, nil
}

// ListenAndServe blocks serving /metrics until Shutdown or a listener error.
func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

// Shutdown gracefully stops the listener.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
