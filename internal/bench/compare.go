package bench

import (
	"context"
	"fmt"
	"sort"

	"github.com/jamesainslie/go-mteval/corpus"
	"github.com/jamesainslie/go-mteval/report"
)

// CompareResult holds the report for one system.
type CompareResult struct {
	System    string
	Report    *report.Report
	Composite float64
}

// Composite folds the scores of both directions into one number in [0,100].
// TER is an error rate, so 100-TER (floored at 0) enters the mean; METEOR is
// scaled to a percentage.
func Composite(r *report.Report, w Weights) float64 {
	total := w.ChrF + w.BLEU + w.TER + w.METEOR
	if total <= 0 {
		return 0
	}

	var sum float64
	for _, dir := range corpus.Directions {
		s := r.Scores(dir)
		sum += (w.ChrF*s.ChrF +
			w.BLEU*s.BLEU +
			w.TER*max(0, 100-s.TER) +
			w.METEOR*100*s.METEOR) / total
	}
	return sum / float64(len(corpus.Directions))
}

// Compare scores each hypothesis set and returns results sorted by
// composite score, best first.
func (r *Runner) Compare(ctx context.Context, systems []*corpus.Hypotheses, w Weights) ([]CompareResult, error) {
	var results []CompareResult

	for _, h := range systems {
		res, err := r.RunHypotheses(ctx, h)
		if err != nil {
			return nil, fmt.Errorf("system %s: %w", h.System, err)
		}

		results = append(results, CompareResult{
			System:    h.System,
			Report:    res.Report,
			Composite: Composite(res.Report, w),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Composite > results[j].Composite
	})

	return results, nil
}
