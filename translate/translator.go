// Package translate defines the translator collaborator scored by the
// evaluator and the plumbing to run it over a corpus concurrently.
package translate

import (
	"context"
	"errors"
	"fmt"

	"github.com/jamesainslie/go-mteval/corpus"
)

var (
	// ErrPoolClosed is returned by Acquire after the pool is closed.
	ErrPoolClosed = errors.New("translate: pool closed")

	// ErrSessionClosed is returned by a session used after Close.
	ErrSessionClosed = errors.New("translate: session closed")

	// ErrNoTranslation indicates a static translator has no entry for a source text.
	ErrNoTranslation = errors.New("translate: no translation")
)

// Translator converts text from the direction's source language to its
// target language. Implementations that hold resources may also implement
// io.Closer; the pool closes them on shutdown.
type Translator interface {
	Translate(ctx context.Context, text string, dir corpus.Direction) (string, error)
}

// Func adapts an ordinary function to Translator.
type Func func(ctx context.Context, text string, dir corpus.Direction) (string, error)

// Translate calls f.
func (f Func) Translate(ctx context.Context, text string, dir corpus.Direction) (string, error) {
	return f(ctx, text, dir)
}

// Static answers from pre-computed hypotheses keyed by source text.
// It is safe for concurrent use once built.
type Static struct {
	entries map[corpus.Direction]map[string]string
}

// NewStatic pairs each fixture source sentence with the hypothesis at the
// same index. A source sentence that appears more than once must have the
// same hypothesis each time, since lookups are by text.
func NewStatic(f *corpus.Fixture, h *corpus.Hypotheses) (*Static, error) {
	s := &Static{entries: make(map[corpus.Direction]map[string]string, len(corpus.Directions))}

	for _, dir := range corpus.Directions {
		sources := f.Corpus(dir).Sources()
		hyps := h.For(dir)
		if len(hyps) != len(sources) {
			return nil, fmt.Errorf("%w: %s has %d sources, %d hypotheses",
				corpus.ErrInvalidFixture, dir, len(sources), len(hyps))
		}

		m := make(map[string]string, len(sources))
		for i, src := range sources {
			if prev, ok := m[src]; ok && prev != hyps[i] {
				return nil, fmt.Errorf("%w: %s sentence %d repeats source %q with a different hypothesis",
					corpus.ErrInvalidFixture, dir, i, src)
			}
			m[src] = hyps[i]
		}
		s.entries[dir] = m
	}

	return s, nil
}

// Translate returns the stored hypothesis for text.
func (s *Static) Translate(ctx context.Context, text string, dir corpus.Direction) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, ok := s.entries[dir][text]
	if !ok {
		return "", fmt.Errorf("%w: %s %q", ErrNoTranslation, dir, text)
	}
	return out, nil
}
