// Package corpus holds the bilingual test data scored by the evaluator:
// sentences, index-aligned sentence pairs, and the per-direction corpora
// built from a fixture file.
package corpus

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/text/language"

	"github.com/jamesainslie/go-mteval/tokenizer"
)

var (
	// ErrInvalidFixture indicates a fixture file is malformed or misaligned.
	ErrInvalidFixture = errors.New("corpus: invalid fixture")

	// ErrEmptyCorpus indicates a corpus with no sentence pairs.
	ErrEmptyCorpus = errors.New("corpus: empty corpus")

	// ErrUnknownDirection indicates a direction tag other than ko-en or en-ko.
	ErrUnknownDirection = errors.New("corpus: unknown direction")
)

// Direction is a translation direction tag.
type Direction string

const (
	KoEn Direction = "ko-en"
	EnKo Direction = "en-ko"
)

// Directions lists the supported directions in report order.
var Directions = []Direction{KoEn, EnKo}

// ParseDirection validates a direction tag.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case KoEn, EnKo:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// Source returns the language translated from.
func (d Direction) Source() language.Tag {
	if d == KoEn {
		return language.Korean
	}
	return language.English
}

// Target returns the language translated into.
func (d Direction) Target() language.Tag {
	if d == KoEn {
		return language.English
	}
	return language.Korean
}

// TargetScript returns the tokenization policy for the target language.
func (d Direction) TargetScript() tokenizer.Script {
	return tokenizer.ScriptFor(d.Target())
}

// Sentence is one unit of text in one language.
type Sentence struct {
	Text string
	Lang language.Tag
}

// Pair is a source sentence, its human reference translation, and the
// hypothesis produced by the translator under test.
type Pair struct {
	Source     Sentence
	Reference  Sentence
	Hypothesis Sentence
}

// Corpus is the ordered sentence pairs for one direction.
type Corpus struct {
	Direction Direction
	Pairs     []Pair
}

// Validate checks the corpus is non-empty and has a known direction.
func (c Corpus) Validate() error {
	if _, err := ParseDirection(string(c.Direction)); err != nil {
		return err
	}
	if len(c.Pairs) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyCorpus, c.Direction)
	}
	return nil
}

// Len returns the number of sentence pairs.
func (c Corpus) Len() int {
	return len(c.Pairs)
}

// Sources returns the source texts in order.
func (c Corpus) Sources() []string {
	return texts(c.Pairs, func(p Pair) Sentence { return p.Source })
}

// References returns the reference texts in order.
func (c Corpus) References() []string {
	return texts(c.Pairs, func(p Pair) Sentence { return p.Reference })
}

// Hypotheses returns the hypothesis texts in order.
func (c Corpus) Hypotheses() []string {
	return texts(c.Pairs, func(p Pair) Sentence { return p.Hypothesis })
}

// WithHypotheses returns a copy of the corpus with hypothesis i set to hyps[i].
func (c Corpus) WithHypotheses(hyps []string) (Corpus, error) {
	if len(hyps) != len(c.Pairs) {
		return Corpus{}, fmt.Errorf("%w: %s has %d pairs, got %d hypotheses",
			ErrInvalidFixture, c.Direction, len(c.Pairs), len(hyps))
	}

	out := Corpus{Direction: c.Direction, Pairs: make([]Pair, len(c.Pairs))}
	target := c.Direction.Target()
	for i, p := range c.Pairs {
		p.Hypothesis = Sentence{Text: hyps[i], Lang: target}
		out.Pairs[i] = p
	}
	return out, nil
}

func texts(pairs []Pair, pick func(Pair) Sentence) []string {
	return lo.Map(pairs, func(p Pair, _ int) string { return pick(p).Text })
}
