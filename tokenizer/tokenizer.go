// Package tokenizer splits text into the comparison units used by translation
// quality metrics: word tokens for alphabetic scripts and character tokens for
// syllabic or logographic scripts.
package tokenizer

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/language"
)

// Script selects a tokenization policy.
type Script int

const (
	// Word splits on whitespace and strips surrounding punctuation and symbols.
	Word Script = iota
	// Character drops whitespace and emits one token per grapheme cluster.
	Character
)

// String returns the policy name.
func (s Script) String() string {
	switch s {
	case Word:
		return "word"
	case Character:
		return "character"
	default:
		return "unknown"
	}
}

// characterLanguages are written without reliable word boundaries for
// comparison purposes and are scored at the character level.
var characterLanguages = map[string]bool{
	"ko": true,
	"ja": true,
	"zh": true,
}

// ScriptFor returns the tokenization policy for a language tag.
func ScriptFor(tag language.Tag) Script {
	base, _ := tag.Base()
	if characterLanguages[base.String()] {
		return Character
	}
	return Word
}

// ScriptForCode parses a BCP 47 code such as "ko" or "en-US".
// Unparseable codes fall back to Word.
func ScriptForCode(code string) Script {
	tag, err := language.Parse(code)
	if err != nil {
		return Word
	}
	return ScriptFor(tag)
}

// Tokenize splits text into case-folded tokens according to script.
// It never fails; empty or whitespace-only input yields nil.
func Tokenize(text string, script Script) []string {
	normalized := normalize(text)
	if normalized == "" {
		return nil
	}
	normalized = fold(normalized)

	if script == Character {
		return graphemes(stripSpace(normalized))
	}
	return words(normalized)
}

// Characters returns the grapheme clusters of text with all whitespace
// removed. Case is preserved.
func Characters(text string) []string {
	normalized := normalize(text)
	if normalized == "" {
		return nil
	}
	return graphemes(stripSpace(normalized))
}

func words(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, isAffix)
		if w == "" {
			continue
		}
		tokens = append(tokens, w)
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

func graphemes(text string) []string {
	if text == "" {
		return nil
	}
	var tokens []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		tokens = append(tokens, gr.Str())
	}
	return tokens
}
