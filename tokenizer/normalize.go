package tokenizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// normalize prepares text for tokenization.
// - Composes to NFC so precomposed and jamo-sequence Hangul compare equal
// - Collapses whitespace runs to a single space
// - Trims leading and trailing whitespace
func normalize(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)

	var builder strings.Builder
	builder.Grow(len(text))
	needSpace := false

	for _, r := range text {
		if unicode.IsSpace(r) {
			// Only separate once something has been written
			if builder.Len() > 0 {
				needSpace = true
			}
			continue
		}
		if needSpace {
			builder.WriteByte(' ')
			needSpace = false
		}
		builder.WriteRune(r)
	}

	return builder.String()
}

// stripSpace removes every whitespace rune from already normalized text.
func stripSpace(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

// fold applies Unicode case folding. A Caser is stateful, so one is built per call.
func fold(text string) string {
	return cases.Fold().String(text)
}

// isAffix reports whether r is stripped from the ends of a word token.
func isAffix(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
