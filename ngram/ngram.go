// Package ngram builds multisets of contiguous token n-grams.
package ngram

import "strings"

// separator joins tokens into a map key. U+241F cannot come out of the
// tokenizer as part of a word, so keys never collide.
const separator = "␟"

// Counts maps an n-gram key to its number of occurrences.
type Counts map[string]int

// Count returns the multiset of all contiguous n-grams of length n in tokens.
// n < 1 or len(tokens) < n yields an empty multiset.
func Count(tokens []string, n int) Counts {
	counts := make(Counts)
	if n < 1 || len(tokens) < n {
		return counts
	}
	for i := 0; i+n <= len(tokens); i++ {
		counts[Key(tokens[i:i+n])]++
	}
	return counts
}

// CountRange returns the multisets for orders 1..maxOrder, indexed by order-1.
func CountRange(tokens []string, maxOrder int) []Counts {
	out := make([]Counts, maxOrder)
	for n := 1; n <= maxOrder; n++ {
		out[n-1] = Count(tokens, n)
	}
	return out
}

// Key returns the map key for an n-gram.
func Key(gram []string) string {
	return strings.Join(gram, separator)
}

// Total returns the number of n-gram occurrences.
func (c Counts) Total() int {
	total := 0
	for _, v := range c {
		total += v
	}
	return total
}

// Overlap returns the clipped match count between hyp and ref:
// the sum over hyp n-grams of min(hyp count, ref count).
func Overlap(hyp, ref Counts) int {
	matches := 0
	for gram, hc := range hyp {
		if rc, ok := ref[gram]; ok {
			matches += min(hc, rc)
		}
	}
	return matches
}

// Total returns the number of n-grams of order n in a sequence of length
// length, without building the multiset.
func Total(length, n int) int {
	if n < 1 || length < n {
		return 0
	}
	return length - n + 1
}
