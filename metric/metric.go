// Package metric implements corpus-level machine translation metrics:
// BLEU, chrF, TER and METEOR.
//
// All scorers are pure functions over parallel hypothesis and reference
// slices and are safe for concurrent use. Hypothesis i is scored against
// reference i; each sentence has exactly one reference.
package metric

import (
	"errors"
	"fmt"
)

// Sentinel errors for precondition failures. No scoring is attempted when
// either is returned.
var (
	// ErrEmptyCorpus indicates there are no sentences to score.
	ErrEmptyCorpus = errors.New("metric: empty corpus")

	// ErrLengthMismatch indicates hypotheses and references are not index-aligned.
	ErrLengthMismatch = errors.New("metric: hypothesis and reference counts differ")
)

// Name identifies a metric.
type Name string

const (
	NameBLEU   Name = "bleu"
	NameChrF   Name = "chrF"
	NameTER    Name = "ter"
	NameMETEOR Name = "meteor"
)

// Names lists every metric in report order.
var Names = []Name{NameChrF, NameBLEU, NameTER, NameMETEOR}

func checkParallel(hyps, refs int) error {
	if hyps == 0 && refs == 0 {
		return ErrEmptyCorpus
	}
	if hyps != refs {
		return fmt.Errorf("%w: %d hypotheses, %d references", ErrLengthMismatch, hyps, refs)
	}
	return nil
}
