package metric

import (
	"math"

	"github.com/samber/lo"
)

// METEORResult holds corpus METEOR and the per-sentence scores it averages.
type METEORResult struct {
	Score     float64 // 0-1
	Sentences []float64
}

// METEOR computes the mean sentence-level METEOR over the corpus.
//
// Alignment is exact token match only; there is no stemming or synonym
// stage.
func METEOR(hyps, refs [][]string, opts ...Option) (METEORResult, error) {
	if err := checkParallel(len(hyps), len(refs)); err != nil {
		return METEORResult{}, err
	}
	cfg := newConfig(opts)

	scores := make([]float64, len(hyps))
	for i := range hyps {
		scores[i] = sentenceMETEOR(hyps[i], refs[i], cfg)
	}

	return METEORResult{
		Score:     lo.Sum(scores) / float64(len(scores)),
		Sentences: scores,
	}, nil
}

// SentenceMETEOR scores a single tokenized hypothesis against its reference.
func SentenceMETEOR(hyp, ref []string, opts ...Option) float64 {
	return sentenceMETEOR(hyp, ref, newConfig(opts))
}

func sentenceMETEOR(hyp, ref []string, cfg config) float64 {
	if len(hyp) == 0 || len(ref) == 0 {
		return 0
	}

	matches := align(hyp, ref)
	m := len(matches)
	if m == 0 {
		return 0
	}

	p := float64(m) / float64(len(hyp))
	r := float64(m) / float64(len(ref))
	fmean := p * r / (cfg.alpha*p + (1-cfg.alpha)*r)

	chunks := countChunks(matches)
	penalty := cfg.fragWeight * math.Pow(float64(chunks)/float64(m), cfg.fragBeta)
	// One chunk spanning both sequences is not fragmented.
	if chunks == 1 && m == len(hyp) && m == len(ref) {
		penalty = 0
	}

	return fmean * (1 - penalty)
}

// link pairs a hypothesis position with the reference position it matches.
type link struct {
	hyp, ref int
}

// align matches each hypothesis token, left to right, to an unused equal
// reference token. Among candidates it takes the one closest to the position
// after the previous match so runs stay contiguous; ties go left.
// The result is ordered by hypothesis position.
func align(hyp, ref []string) []link {
	positions := make(map[string][]int, len(ref))
	for j, tok := range ref {
		positions[tok] = append(positions[tok], j)
	}

	used := make([]bool, len(ref))
	links := make([]link, 0, min(len(hyp), len(ref)))
	next := 0

	for i, tok := range hyp {
		best := -1
		for _, j := range positions[tok] {
			if used[j] {
				continue
			}
			if best < 0 || abs(j-next) < abs(best-next) {
				best = j
			}
		}
		if best < 0 {
			continue
		}
		used[best] = true
		links = append(links, link{hyp: i, ref: best})
		next = best + 1
	}

	return links
}

// countChunks counts maximal runs of links adjacent in both sequences.
func countChunks(links []link) int {
	if len(links) == 0 {
		return 0
	}
	chunks := 1
	for k := 1; k < len(links); k++ {
		prev, cur := links[k-1], links[k]
		if cur.hyp != prev.hyp+1 || cur.ref != prev.ref+1 {
			chunks++
		}
	}
	return chunks
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
