package mteval

import (
	"log/slog"
	"runtime"

	"github.com/jamesainslie/go-mteval/metric"
)

// Option configures an Evaluator.
type Option func(*config)

type config struct {
	concurrency int
	metricOpts  []metric.Option
	observer    Observer
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{
		concurrency: runtime.NumCPU(),
		observer:    nopObserver{},
		logger:      slog.Default(),
	}
}

// WithConcurrency sets how many scorers run at once (default: runtime.NumCPU()).
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithMetricOptions passes options through to every scorer, for example
// metric.WithMaxOrder or metric.WithMaxShiftSize.
func WithMetricOptions(opts ...metric.Option) Option {
	return func(c *config) {
		c.metricOpts = append(c.metricOpts, opts...)
	}
}

// WithObserver receives every corpus score as it is computed.
func WithObserver(o Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
