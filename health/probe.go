// Package health exposes the pipeline's producer/consumer heartbeats, queue depth and
// drop count to the two external consumers named in spec §6: a polling health() caller and
// a Prometheus scraper, per SPEC_FULL.md §3.8.
package health

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Probe is anything that can report the pipeline's current health snapshot. cmd/adcp-ingestd
// satisfies it with a small adapter over *pipeline.Supervisor, so health never imports
// pipeline and the cmd package that wires both together stays the only place they meet.
type Probe interface {
	Health() Snapshot
}

// Snapshot mirrors pipeline.Health's shape (spec §6's health() response).
type Snapshot struct {
	ProducerHeartbeat int64
	ConsumerHeartbeat int64
	QueueDepth        int64
	DroppedFrames     int64
	Mode              string
}

// StaleAfter is the interval after which a heartbeat that hasn't advanced is considered
// stale by IsStale; it does not affect the gauges, only the convenience helper.
const StaleAfter = 10 * time.Second

// IsStale reports whether a heartbeat (unix nanoseconds, as recorded by Producer/Consumer)
// is older than StaleAfter relative to now.
func IsStale(heartbeatUnixNano int64, now time.Time) bool {
	if heartbeatUnixNano == 0 {
		return true
	}
	age := now.Sub(time.Unix(0, heartbeatUnixNano))
	return age > StaleAfter
}

// Registry wires a Probe's snapshot into five Prometheus gauges, refreshed on scrape via
// prometheus.NewGaugeFunc so there is no separate polling goroutine to manage.
type Registry struct {
	registry *prometheus.Registry
}

// NewRegistry builds a Registry that scrapes probe on demand.
func NewRegistry(probe Probe) *Registry {
	reg := prometheus.NewRegistry()

	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "adcp_ingest",
		Name:      "producer_heartbeat_unix_nanos",
		Help:      "Unix-nano timestamp of the producer's last successful read or reconnect.",
	}, func() float64 { return float64(probe.Health().ProducerHeartbeat) }))

	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "adcp_ingest",
		Name:      "consumer_heartbeat_unix_nanos",
		Help:      "Unix-nano timestamp of the consumer's last processed item.",
	}, func() float64 { return float64(probe.Health().ConsumerHeartbeat) }))

	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "adcp_ingest",
		Name:      "queue_depth",
		Help:      "Current number of items buffered in the producer/consumer queue.",
	}, func() float64 { return float64(probe.Health().QueueDepth) }))

	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "adcp_ingest",
		Name:      "dropped_frames_total",
		Help:      "Cumulative count of frames dropped because the queue was full.",
	}, func() float64 { return float64(probe.Health().DroppedFrames) }))

	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "adcp_ingest",
		Name:      "binary_mode",
		Help:      "1 if the consumer is currently in binary-blob mode, 0 if ASCII.",
	}, func() float64 {
		if probe.Health().Mode == "binary" {
			return 1
		}
		return 0
	}))

	return &Registry{registry: reg}
}

// Gatherer exposes the underlying prometheus.Gatherer for wiring into an HTTP /metrics
// handler (promhttp.HandlerFor) in cmd/adcp-ingestd.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
