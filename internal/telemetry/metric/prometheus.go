package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "redikv"

// Command outcome labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Registry holds all application metrics.
type Registry struct {
	reg *prometheus.Registry

	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec

	connsActive   prometheus.Gauge
	connsTotal    prometheus.Counter
	connsRejected prometheus.Counter

	protocolErrors *prometheus.CounterVec
	rateLimited    prometheus.Counter

	buildInfo *prometheus.GaugeVec
}

// NewRegistry creates a registry with the redikv series plus the Go
// runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "commands_total",
			Help:      "Commands processed, by command name and outcome.",
		}, []string{"command", "status"}),
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "command_duration_seconds",
			Help:      "Time spent executing a command against the backend.",
			Buckets:   []float64{.000005, .00001, .000025, .00005, .0001, .00025, .0005, .001, .005, .01},
		}, []string{"command"}),
		connsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "connections_active",
			Help:      "Client connections currently open.",
		}),
		connsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "connections_total",
			Help:      "Client connections accepted.",
		}),
		connsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "connections_rejected_total",
			Help:      "Client connections refused because max_connections was reached.",
		}),
		protocolErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "protocol_errors_total",
			Help:      "Connections closed because of a malformed or oversized frame.",
		}, []string{"reason"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-connection rate limiter.",
		}),
		buildInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "build_info",
			Help:      "Build information, value is always 1.",
		}, []string{"version", "commit", "go"}),
	}

	r.reg.MustRegister(
		r.commandsTotal,
		r.commandDuration,
		r.connsActive,
		r.connsTotal,
		r.connsRejected,
		r.protocolErrors,
		r.rateLimited,
		r.buildInfo,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// MustRegister adds extra collectors, such as a KeyspaceCollector.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.reg.MustRegister(cs...)
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Gatherer(), promhttp.HandlerOpts{Registry: r.reg})
}

// ObserveCommand records one executed command.
func (r *Registry) ObserveCommand(name string, ok bool, d time.Duration) {
	if r == nil {
		return
	}
	status := StatusOK
	if !ok {
		status = StatusError
	}
	r.commandsTotal.WithLabelValues(name, status).Inc()
	r.commandDuration.WithLabelValues(name).Observe(d.Seconds())
}

// ConnOpened records an accepted connection.
func (r *Registry) ConnOpened() {
	if r == nil {
		return
	}
	r.connsTotal.Inc()
	r.connsActive.Inc()
}

// ConnClosed records a connection ending.
func (r *Registry) ConnClosed() {
	if r == nil {
		return
	}
	r.connsActive.Dec()
}

// ConnRejected records a connection refused at the limit.
func (r *Registry) ConnRejected() {
	if r == nil {
		return
	}
	r.connsRejected.Inc()
}

// ProtocolError records a connection dropped for a bad frame.
func (r *Registry) ProtocolError(reason string) {
	if r == nil {
		return
	}
	r.protocolErrors.WithLabelValues(reason).Inc()
}

// RateLimited records a request refused by the rate limiter.
func (r *Registry) RateLimited() {
	if r == nil {
		return
	}
	r.rateLimited.Inc()
}

// SetBuildInfo publishes the running build.
func (r *Registry) SetBuildInfo(version, commit, goVersion string) {
	if r == nil {
		return
	}
	r.buildInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
