package metric

import (
	"log/slog"
	"slices"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// TERResult holds corpus TER and its edit counts.
type TERResult struct {
	Score     float64 // 100 * Edits / RefLength, unbounded above
	Edits     int     // shifts plus insertions, deletions and substitutions
	Shifts    int
	RefLength int
}

// terOptions counts every insertion, deletion and substitution as one edit.
var terOptions = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 1,
	Matches: levenshtein.IdenticalRunes,
}

// TER computes corpus-level Translation Edit Rate.
//
// Each sentence is aligned with a greedy shift search, then edits and
// reference lengths are summed across the corpus. With a total reference
// length of zero the score is 0 if there were no edits and 100 otherwise.
func TER(hyps, refs [][]string, opts ...Option) (TERResult, error) {
	if err := checkParallel(len(hyps), len(refs)); err != nil {
		return TERResult{}, err
	}
	cfg := newConfig(opts)

	var res TERResult
	for i := range hyps {
		edits, shifts := sentenceEdits(hyps[i], refs[i], cfg)
		res.Edits += edits
		res.Shifts += shifts
		res.RefLength += len(refs[i])
	}

	switch {
	case res.RefLength > 0:
		res.Score = 100 * float64(res.Edits) / float64(res.RefLength)
	case res.Edits > 0:
		res.Score = 100
	}
	return res, nil
}

// sentenceEdits returns the edits needed to turn hyp into ref, shifts included.
func sentenceEdits(hyp, ref []string, cfg config) (edits, shifts int) {
	if len(ref) == 0 {
		return len(hyp), 0
	}
	if len(hyp) == 0 {
		return len(ref), 0
	}

	v := make(vocab, len(ref))
	refIDs := v.encode(ref)
	cur := v.encode(hyp)
	dist := levenshtein.DistanceForStrings(cur, refIDs, terOptions)

	for iter := 0; dist > 0; iter++ {
		if iter >= cfg.maxShiftIterations {
			cfg.logger.Debug("ter: shift search capped",
				slog.Int("iterations", iter),
				slog.Int("distance", dist))
			break
		}

		next, nextDist, capped := bestShift(cur, refIDs, dist, cfg)
		if next == nil {
			break
		}
		cur, dist = next, nextDist
		shifts++

		if capped {
			cfg.logger.Debug("ter: shift candidates capped",
				slog.Int("candidates", cfg.maxShiftCandidates))
			break
		}
	}

	return shifts + dist, shifts
}

// bestShift finds the block move that most reduces the edit distance.
// Ties go to the longest block, then the earliest. It returns nil when no
// shift improves on dist. capped reports that the candidate budget ran out.
func bestShift(hyp, ref []rune, dist int, cfg config) (best []rune, bestDist int, capped bool) {
	ops := alignment(hyp, ref)
	anchor, inPlace := anchors(ops, len(hyp), len(ref))

	bestDist = dist
	candidates := 0

	maxLen := min(cfg.maxShiftSize, len(hyp), len(ref))
	for l := maxLen; l >= 1; l-- {
		for i := 0; i+l <= len(hyp); i++ {
			if allTrue(inPlace[i : i+l]) {
				continue
			}
			for j := 0; j+l <= len(ref); j++ {
				if !slices.Equal(hyp[i:i+l], ref[j:j+l]) {
					continue
				}
				dest := anchor[j]
				if dest >= i && dest <= i+l {
					continue
				}

				candidates++
				if candidates > cfg.maxShiftCandidates {
					return best, bestDist, true
				}

				shifted := shift(hyp, i, l, dest)
				if d := levenshtein.DistanceForStrings(shifted, ref, terOptions); d < bestDist {
					best, bestDist = shifted, d
				}
			}
		}
	}

	return best, bestDist, false
}

// shift moves hyp[i:i+l] so it starts before original position dest.
func shift(hyp []rune, i, l, dest int) []rune {
	rest := make([]rune, 0, len(hyp)-l)
	rest = append(rest, hyp[:i]...)
	rest = append(rest, hyp[i+l:]...)

	at := dest
	if dest > i {
		at = dest - l
	}

	out := make([]rune, 0, len(hyp))
	out = append(out, rest[:at]...)
	out = append(out, hyp[i:i+l]...)
	out = append(out, rest[at:]...)
	return out
}

type editOp int

const (
	opMatch editOp = iota
	opSub
	opDel // hypothesis token removed
	opIns // reference token inserted
)

// alignment backtraces the Levenshtein matrix, preferring matches so that
// anchors follow the longest common subsequence.
func alignment(hyp, ref []rune) []editOp {
	m := levenshtein.MatrixForStrings(hyp, ref, terOptions)

	var ops []editOp
	i, j := len(hyp), len(ref)
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && hyp[i-1] == ref[j-1] && m[i-1][j-1] == m[i][j]:
			ops = append(ops, opMatch)
			i--
			j--
		case i > 0 && j > 0 && m[i-1][j-1]+1 == m[i][j]:
			ops = append(ops, opSub)
			i--
			j--
		case i > 0 && m[i-1][j]+1 == m[i][j]:
			ops = append(ops, opDel)
			i--
		default:
			ops = append(ops, opIns)
			j--
		}
	}

	for a, b := 0, len(ops)-1; a < b; a, b = a+1, b-1 {
		ops[a], ops[b] = ops[b], ops[a]
	}
	return ops
}

// anchors maps each reference position to the hypothesis position aligned
// with it and marks hypothesis tokens that already match in place.
func anchors(ops []editOp, hypLen, refLen int) (anchor []int, inPlace []bool) {
	anchor = make([]int, refLen+1)
	inPlace = make([]bool, hypLen)

	h, r := 0, 0
	for _, op := range ops {
		switch op {
		case opMatch:
			anchor[r] = h
			inPlace[h] = true
			h++
			r++
		case opSub:
			anchor[r] = h
			h++
			r++
		case opDel:
			h++
		case opIns:
			anchor[r] = h
			r++
		}
	}
	anchor[refLen] = hypLen
	return anchor, inPlace
}

// vocab interns tokens as runes so the rune-based edit distance can compare
// whole tokens.
type vocab map[string]rune

func (v vocab) encode(tokens []string) []rune {
	out := make([]rune, len(tokens))
	for i, t := range tokens {
		id, ok := v[t]
		if !ok {
			id = rune(len(v) + 1)
			v[t] = id
		}
		out[i] = id
	}
	return out
}

func allTrue(bs []bool) bool {
	for _, b := range bs {
		if !b {
			return false
		}
	}
	return true
}
