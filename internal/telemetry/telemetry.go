// Package telemetry exports evaluation runs as Prometheus metrics.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jamesainslie/go-mteval/corpus"
	"github.com/jamesainslie/go-mteval/metric"
	"github.com/jamesainslie/go-mteval/report"
)

// Metrics holds the collectors for evaluation runs. Each Metrics owns its
// registry so runs in one process do not collide.
type Metrics struct {
	registry *prometheus.Registry

	Score              *prometheus.GaugeVec
	ScoringDuration    *prometheus.HistogramVec
	SentencesTotal     *prometheus.CounterVec
	TranslationSeconds *prometheus.HistogramVec
	LastRun            *prometheus.GaugeVec
}

// New registers the evaluation collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Score: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mteval_score",
			Help: "Latest corpus-level score by direction and metric",
		}, []string{"direction", "metric"}),

		ScoringDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mteval_scoring_duration_seconds",
			Help:    "Time spent computing one corpus-level metric",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"metric"}),

		SentencesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mteval_sentences_total",
			Help: "Sentence pairs evaluated by direction",
		}, []string{"direction"}),

		TranslationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mteval_translation_duration_seconds",
			Help:    "Time spent translating one corpus",
			Buckets: prometheus.DefBuckets,
		}, []string{"direction"}),

		LastRun: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mteval_last_run_timestamp_seconds",
			Help: "Unix time the last report was generated",
		}, []string{"run_id"}),
	}
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveScore records one computed score.
func (m *Metrics) ObserveScore(dir corpus.Direction, name metric.Name, score float64, elapsed time.Duration) {
	m.Score.WithLabelValues(string(dir), string(name)).Set(score)
	m.ScoringDuration.WithLabelValues(string(name)).Observe(elapsed.Seconds())
}

// ObserveTranslation records one translated corpus.
func (m *Metrics) ObserveTranslation(dir corpus.Direction, sentences int, elapsed time.Duration) {
	m.SentencesTotal.WithLabelValues(string(dir)).Add(float64(sentences))
	m.TranslationSeconds.WithLabelValues(string(dir)).Observe(elapsed.Seconds())
}

// ObserveReport sets the gauges to the rounded report values.
func (m *Metrics) ObserveReport(r *report.Report) {
	for _, dir := range corpus.Directions {
		scores := r.Scores(dir)
		for _, name := range metric.Names {
			m.Score.WithLabelValues(string(dir), string(name)).Set(scores.Get(name))
		}
	}
	m.LastRun.Reset()
	m.LastRun.WithLabelValues(r.RunID).Set(float64(r.GeneratedAt.Unix()))
}

// WriteTextfile writes the registry in the Prometheus text format, for the
// node exporter textfile collector. Parent directories are created.
func (m *Metrics) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write textfile: %w", err)
	}
	return nil
}
