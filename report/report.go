// Package report assembles metric scores for both translation directions
// into the persisted evaluation report.
package report

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/jamesainslie/go-mteval/corpus"
	"github.com/jamesainslie/go-mteval/metric"
)

// ErrInvalidReport indicates an encoded report could not be decoded.
var ErrInvalidReport = errors.New("report: invalid report")

// Decimal places kept per metric.
const (
	percentPlaces = 2
	meteorPlaces  = 4
)

// Scores holds the four corpus-level scores for one direction.
type Scores struct {
	ChrF   float64 `json:"chrF"`
	BLEU   float64 `json:"bleu"`
	TER    float64 `json:"ter"`
	METEOR float64 `json:"meteor"`
}

// Rounded returns s with BLEU, chrF and TER rounded to 2 decimals and
// METEOR to 4.
func (s Scores) Rounded() Scores {
	return Scores{
		ChrF:   Round(s.ChrF, percentPlaces),
		BLEU:   Round(s.BLEU, percentPlaces),
		TER:    Round(s.TER, percentPlaces),
		METEOR: Round(s.METEOR, meteorPlaces),
	}
}

// Get returns the score for a metric name, or 0 for an unknown name.
func (s Scores) Get(name metric.Name) float64 {
	switch name {
	case metric.NameChrF:
		return s.ChrF
	case metric.NameBLEU:
		return s.BLEU
	case metric.NameTER:
		return s.TER
	case metric.NameMETEOR:
		return s.METEOR
	default:
		return 0
	}
}

// Set stores the score for a metric name. Unknown names are ignored.
func (s *Scores) Set(name metric.Name, v float64) {
	switch name {
	case metric.NameChrF:
		s.ChrF = v
	case metric.NameBLEU:
		s.BLEU = v
	case metric.NameTER:
		s.TER = v
	case metric.NameMETEOR:
		s.METEOR = v
	}
}

// Report is the evaluation result for one run.
type Report struct {
	RunID       string    `json:"runId"`
	GeneratedAt time.Time `json:"generatedAt"`
	TestCount   int       `json:"testCount"`
	KoToEn      Scores    `json:"koToEn"`
	EnToKo      Scores    `json:"enToKo"`
}

// New builds a report stamped with a fresh run ID and the current UTC time.
// Scores are rounded.
func New(testCount int, koToEn, enToKo Scores) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		TestCount:   testCount,
		KoToEn:      koToEn.Rounded(),
		EnToKo:      enToKo.Rounded(),
	}
}

// Scores returns the scores for a direction.
func (r *Report) Scores(dir corpus.Direction) Scores {
	if dir == corpus.EnKo {
		return r.EnToKo
	}
	return r.KoToEn
}

// Round rounds x half away from zero to the given number of decimal places.
func Round(x float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(x*scale) / scale
}

// Validate checks the fields a decoded report must carry.
func (r *Report) Validate() error {
	if r.RunID == "" {
		return fmt.Errorf("%w: missing runId", ErrInvalidReport)
	}
	if _, err := uuid.Parse(r.RunID); err != nil {
		return fmt.Errorf("%w: runId: %w", ErrInvalidReport, err)
	}
	if r.GeneratedAt.IsZero() {
		return fmt.Errorf("%w: missing generatedAt", ErrInvalidReport)
	}
	if r.TestCount <= 0 {
		return fmt.Errorf("%w: testCount %d", ErrInvalidReport, r.TestCount)
	}
	return nil
}
