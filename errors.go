package mteval

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
// Precondition failures on the scored corpora are reported with
// metric.ErrEmptyCorpus and metric.ErrLengthMismatch.
var (
	// ErrTranslatorFailed indicates the translator could not produce a
	// hypothesis for a source sentence.
	ErrTranslatorFailed = errors.New("mteval: translator failed")
)
