// Package bench runs end-to-end translator evaluations: load a fixture,
// translate it, score it, and persist the results.
package bench

import (
	"runtime"

	"github.com/jamesainslie/go-mteval/metric"
)

// Config holds evaluation run parameters.
type Config struct {
	FixturePath      string
	Translators      int // translator instances in the pool
	Concurrency      int // scorers running at once
	ReportPath       string
	TranslationsPath string // optional
	TextfilePath     string // optional Prometheus textfile
	MetricOptions    []metric.Option
}

// DefaultConfig returns the default run configuration.
func DefaultConfig() Config {
	return Config{
		FixturePath: "testdata/corpus.yaml",
		Translators: 1,
		Concurrency: runtime.NumCPU(),
		ReportPath:  "out/official-metrics.json",
	}
}

// Weights control how per-metric scores combine into one ranking score.
type Weights struct {
	ChrF   float64
	BLEU   float64
	TER    float64
	METEOR float64
}

// DefaultWeights weighs the four metrics equally.
func DefaultWeights() Weights {
	return Weights{ChrF: 1, BLEU: 1, TER: 1, METEOR: 1}
}
