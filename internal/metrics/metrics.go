// Package metrics records per-run counters for the schedule generator.
//
// Each run owns its own Prometheus registry so nothing leaks between runs or
// tests. The registry can be written in the node_exporter textfile format,
// which lets a cron-driven run be scraped without a long-lived server.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sportify"

// Recorder tracks the outcome of one generation run
type Recorder struct {
	registry      *prometheus.Registry
	candidates    prometheus.Counter
	extracted     *prometheus.CounterVec
	dropped       *prometheus.CounterVec
	fetchDuration prometheus.Gauge
	pageBytes     prometheus.Gauge
	lastSuccess   prometheus.Gauge
}

// New creates a Recorder with a fresh registry
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		candidates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_total",
			Help:      "Event nodes found on the schedule page.",
		}),
		extracted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_extracted_total",
			Help:      "Events kept for rendering, by sport.",
		}, []string{"sport"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Event nodes dropped during extraction, by reason.",
		}, []string{"reason"}),
		fetchDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time spent downloading the schedule page.",
		}),
		pageBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "page_bytes",
			Help:      "Size of the rendered page.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
	}

	r.registry.MustRegister(
		r.candidates,
		r.extracted,
		r.dropped,
		r.fetchDuration,
		r.pageBytes,
		r.lastSuccess,
	)

	return r
}

// AddCandidates counts event nodes seen on the page
func (r *Recorder) AddCandidates(n int) {
	r.candidates.Add(float64(n))
}

// Extracted counts one kept event
func (r *Recorder) Extracted(sport string) {
	r.extracted.WithLabelValues(sport).Inc()
}

// Dropped counts n dropped candidates for reason
func (r *Recorder) Dropped(reason string, n int) {
	r.dropped.WithLabelValues(reason).Add(float64(n))
}

// ObserveFetch records the download time
func (r *Recorder) ObserveFetch(d time.Duration) {
	r.fetchDuration.Set(d.Seconds())
}

// ObservePage records the rendered page size
func (r *Recorder) ObservePage(size int) {
	r.pageBytes.Set(float64(size))
}

// MarkSuccess records the completion time of the run
func (r *Recorder) MarkSuccess(t time.Time) {
	r.lastSuccess.Set(float64(t.Unix()))
}

// Gatherer exposes the underlying registry
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics to path in the Prometheus text format
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.Gatherer()); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}
