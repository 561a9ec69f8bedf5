package metric

import (
	"math"

	"github.com/jamesainslie/go-mteval/ngram"
)

// BLEUResult holds corpus BLEU and the statistics it was computed from.
type BLEUResult struct {
	Score          float64   // 0-100
	Precisions     []float64 // per order, smoothed, 0-1
	BrevityPenalty float64
	HypLength      int
	RefLength      int
	Matches        []int // clipped matches per order
	Totals         []int // hypothesis n-grams per order
}

// BLEU computes corpus-level BLEU over tokenized hypotheses and references.
//
// Clipped n-gram matches and hypothesis n-gram totals are summed across the
// corpus before precisions are taken. Orders above 1 use add-one smoothing,
// so an order with no hypothesis n-grams contributes a precision of 1 rather
// than zeroing the score.
func BLEU(hyps, refs [][]string, opts ...Option) (BLEUResult, error) {
	if err := checkParallel(len(hyps), len(refs)); err != nil {
		return BLEUResult{}, err
	}
	cfg := newConfig(opts)

	matches := make([]int, cfg.maxOrder)
	totals := make([]int, cfg.maxOrder)
	var hypLen, refLen int

	for i := range hyps {
		hyp, ref := hyps[i], refs[i]
		hypLen += len(hyp)
		refLen += len(ref)

		for n := 1; n <= cfg.maxOrder; n++ {
			hc := ngram.Count(hyp, n)
			matches[n-1] += ngram.Overlap(hc, ngram.Count(ref, n))
			totals[n-1] += ngram.Total(len(hyp), n)
		}
	}

	return bleuFromStats(matches, totals, hypLen, refLen), nil
}

func bleuFromStats(matches, totals []int, hypLen, refLen int) BLEUResult {
	res := BLEUResult{
		Precisions: make([]float64, len(matches)),
		HypLength:  hypLen,
		RefLength:  refLen,
		Matches:    matches,
		Totals:     totals,
	}

	logSum := 0.0
	zero := false
	for i := range matches {
		var p float64
		if i == 0 {
			if totals[0] > 0 {
				p = float64(matches[0]) / float64(totals[0])
			}
		} else {
			p = float64(matches[i]+1) / float64(totals[i]+1)
		}
		res.Precisions[i] = p
		if p == 0 {
			zero = true
			continue
		}
		logSum += math.Log(p)
	}

	res.BrevityPenalty = brevityPenalty(hypLen, refLen)

	if hypLen == 0 || zero {
		return res
	}

	geoMean := math.Exp(logSum / float64(len(matches)))
	res.Score = 100 * res.BrevityPenalty * geoMean
	return res
}

// brevityPenalty is 1 when the hypothesis is at least as long as the
// reference (or the reference is empty) and exp(1 - ref/hyp) otherwise.
func brevityPenalty(hypLen, refLen int) float64 {
	if refLen == 0 || hypLen >= refLen {
		return 1
	}
	if hypLen == 0 {
		return 0
	}
	return math.Exp(1 - float64(refLen)/float64(hypLen))
}
