package metric

import (
	"github.com/jamesainslie/go-mteval/ngram"
	"github.com/jamesainslie/go-mteval/tokenizer"
)

// ChrFResult holds corpus chrF and its averaged components.
type ChrFResult struct {
	Score          float64 // 0-100
	Precision      float64 // averaged over effective orders, 0-1
	Recall         float64
	OrderPrecision []float64 // per order; 0 where the order has no hypothesis n-grams
	OrderRecall    []float64
	EffectiveOrder int // orders with both hypothesis and reference n-grams
}

// ChrF computes corpus-level chrF over raw strings. Whitespace is removed and
// every grapheme cluster is a character, whatever the script.
//
// Precision and recall are averaged over the orders for which both sides have
// n-grams, then combined as F-beta. When no order qualifies the score is 100
// if hypotheses and references are all empty and 0 otherwise.
func ChrF(hyps, refs []string, opts ...Option) (ChrFResult, error) {
	if err := checkParallel(len(hyps), len(refs)); err != nil {
		return ChrFResult{}, err
	}
	cfg := newConfig(opts)

	order := cfg.charOrder
	matches := make([]int, order)
	hypTotals := make([]int, order)
	refTotals := make([]int, order)
	var hypChars, refChars int

	for i := range hyps {
		hyp := tokenizer.Characters(hyps[i])
		ref := tokenizer.Characters(refs[i])
		hypChars += len(hyp)
		refChars += len(ref)

		for n := 1; n <= order; n++ {
			hc := ngram.Count(hyp, n)
			rc := ngram.Count(ref, n)
			matches[n-1] += ngram.Overlap(hc, rc)
			hypTotals[n-1] += ngram.Total(len(hyp), n)
			refTotals[n-1] += ngram.Total(len(ref), n)
		}
	}

	res := ChrFResult{
		OrderPrecision: make([]float64, order),
		OrderRecall:    make([]float64, order),
	}

	var pSum, rSum float64
	for n := 0; n < order; n++ {
		if hypTotals[n] > 0 {
			res.OrderPrecision[n] = float64(matches[n]) / float64(hypTotals[n])
		}
		if refTotals[n] > 0 {
			res.OrderRecall[n] = float64(matches[n]) / float64(refTotals[n])
		}
		if hypTotals[n] > 0 && refTotals[n] > 0 {
			pSum += res.OrderPrecision[n]
			rSum += res.OrderRecall[n]
			res.EffectiveOrder++
		}
	}

	if res.EffectiveOrder == 0 {
		if hypChars == 0 && refChars == 0 {
			res.Score = 100
		}
		return res, nil
	}

	res.Precision = pSum / float64(res.EffectiveOrder)
	res.Recall = rSum / float64(res.EffectiveOrder)
	res.Score = 100 * fBeta(res.Precision, res.Recall, cfg.beta)
	return res, nil
}

func fBeta(p, r, beta float64) float64 {
	if p == 0 && r == 0 {
		return 0
	}
	b2 := beta * beta
	return (1 + b2) * p * r / (b2*p + r)
}
