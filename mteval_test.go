package mteval

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-mteval/corpus"
	"github.com/jamesainslie/go-mteval/metric"
	"github.com/jamesainslie/go-mteval/report"
	"github.com/jamesainslie/go-mteval/translate"
)

var perfect = report.Scores{ChrF: 100, BLEU: 100, TER: 0, METEOR: 1}

func quiet() Option {
	return WithLogger(slog.New(slog.DiscardHandler))
}

// translated builds both corpora of f with the given hypotheses.
func translated(t *testing.T, f *corpus.Fixture, koEn, enKo []string) (corpus.Corpus, corpus.Corpus) {
	t.Helper()
	ke, err := f.Corpus(corpus.KoEn).WithHypotheses(koEn)
	require.NoError(t, err)
	ek, err := f.Corpus(corpus.EnKo).WithHypotheses(enKo)
	require.NoError(t, err)
	return ke, ek
}

type recorder struct {
	mu    sync.Mutex
	calls map[corpus.Direction][]metric.Name
}

func (r *recorder) ObserveScore(dir corpus.Direction, name metric.Name, _ float64, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = make(map[corpus.Direction][]metric.Name)
	}
	r.calls[dir] = append(r.calls[dir], name)
}

func TestEvaluator_Score(t *testing.T) {
	tests := []struct {
		name string
		dir  corpus.Direction
		hyps []string
		refs []string
		want report.Scores
	}{
		{
			name: "identical korean",
			dir:  corpus.EnKo,
			hyps: []string{"안녕하세요.", "감사합니다."},
			refs: []string{"안녕하세요.", "감사합니다."},
			want: perfect,
		},
		{
			name: "empty hypotheses",
			dir:  corpus.EnKo,
			hyps: []string{"", ""},
			refs: []string{"안녕하세요.", "감사합니다."},
			want: report.Scores{ChrF: 0, BLEU: 0, TER: 100, METEOR: 0},
		},
		{
			// Word tokens drop punctuation, so only chrF sees the match.
			name: "identical punctuation only",
			dir:  corpus.KoEn,
			hyps: []string{"..."},
			refs: []string{"..."},
			want: report.Scores{ChrF: 100, BLEU: 0, TER: 0, METEOR: 0},
		},
	}

	ev := New(quiet())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ev.Score(context.Background(), tt.dir, tt.hyps, tt.refs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Rounded())
		})
	}
}

func TestEvaluator_Score_ShortHypothesis(t *testing.T) {
	got, err := New(quiet()).Score(context.Background(), corpus.KoEn,
		[]string{"Hello."}, []string{"Hello there."})
	require.NoError(t, err)

	assert.Greater(t, got.BLEU, 0.0)
	assert.Less(t, got.BLEU, 100.0)
	assert.InDelta(t, 36.79, report.Round(got.BLEU, 2), 1e-9)
}

func TestEvaluator_Score_Preconditions(t *testing.T) {
	ev := New(quiet())
	ctx := context.Background()

	_, err := ev.Score(ctx, corpus.KoEn, nil, nil)
	assert.ErrorIs(t, err, metric.ErrEmptyCorpus)

	_, err = ev.Score(ctx, corpus.KoEn, []string{"a"}, []string{"a", "b"})
	assert.ErrorIs(t, err, metric.ErrLengthMismatch)

	_, err = ev.Score(ctx, "ko-ja", []string{"a"}, []string{"a"})
	assert.ErrorIs(t, err, corpus.ErrUnknownDirection)
}

func TestEvaluator_Evaluate_Identity(t *testing.T) {
	f := &corpus.Fixture{
		Korean:  []string{"안녕하세요.", "감사합니다."},
		English: []string{"Hello.", "Thank you."},
	}
	koEn, enKo := translated(t, f, f.English, f.Korean)

	rec := &recorder{}
	r, err := New(quiet(), WithObserver(rec), WithConcurrency(3)).Evaluate(context.Background(), koEn, enKo)
	require.NoError(t, err)

	assert.Equal(t, 2, r.TestCount)
	assert.Equal(t, perfect, r.KoToEn)
	assert.Equal(t, perfect, r.EnToKo)
	assert.NoError(t, r.Validate())

	for _, dir := range corpus.Directions {
		assert.ElementsMatch(t, metric.Names, rec.calls[dir])
	}
}

func TestEvaluator_Evaluate_Preconditions(t *testing.T) {
	f := &corpus.Fixture{Korean: []string{"네"}, English: []string{"Yes."}}
	koEn, enKo := translated(t, f, []string{"Yes."}, []string{"네"})

	ev := New(quiet())
	ctx := context.Background()

	_, err := ev.Evaluate(ctx, corpus.Corpus{Direction: corpus.KoEn}, enKo)
	assert.ErrorIs(t, err, metric.ErrEmptyCorpus)

	_, err = ev.Evaluate(ctx, enKo, koEn)
	assert.ErrorIs(t, err, corpus.ErrUnknownDirection)
}

func TestEvaluator_Evaluate_Canceled(t *testing.T) {
	f := &corpus.Fixture{Korean: []string{"네"}, English: []string{"Yes."}}
	koEn, enKo := translated(t, f, []string{"Yes."}, []string{"네"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(quiet()).Evaluate(ctx, koEn, enKo)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluator_ConcurrencyDoesNotChangeScores(t *testing.T) {
	f, err := corpus.LoadFixture("testdata/corpus.yaml")
	require.NoError(t, err)
	h, err := corpus.LoadHypotheses("testdata/hypotheses/unpunctuated.yaml")
	require.NoError(t, err)
	koEn, enKo := translated(t, f, h.KoToEn, h.EnToKo)

	serial, err := New(quiet(), WithConcurrency(1)).Evaluate(context.Background(), koEn, enKo)
	require.NoError(t, err)
	parallel, err := New(quiet(), WithConcurrency(8)).Evaluate(context.Background(), koEn, enKo)
	require.NoError(t, err)

	assert.Equal(t, serial.KoToEn, parallel.KoToEn)
	assert.Equal(t, serial.EnToKo, parallel.EnToKo)
	assert.Less(t, serial.KoToEn.ChrF, 100.0)
	assert.Less(t, serial.EnToKo.ChrF, 100.0)
}

func TestEvaluator_MetricOptions(t *testing.T) {
	hyps := []string{"the cat sat on the mat"}
	refs := []string{"the cat sat on a mat"}

	ev4 := New(quiet())
	ev1 := New(quiet(), WithMetricOptions(metric.WithMaxOrder(1)))

	four, err := ev4.Score(context.Background(), corpus.KoEn, hyps, refs)
	require.NoError(t, err)
	one, err := ev1.Score(context.Background(), corpus.KoEn, hyps, refs)
	require.NoError(t, err)

	assert.Greater(t, one.BLEU, four.BLEU)
	assert.Equal(t, four.TER, one.TER)
}

func TestEvaluator_Translate(t *testing.T) {
	f, err := corpus.LoadFixture("testdata/corpus.yaml")
	require.NoError(t, err)
	h, err := corpus.LoadHypotheses("testdata/hypotheses/reference.yaml")
	require.NoError(t, err)

	static, err := translate.NewStatic(f, h)
	require.NoError(t, err)
	pool, err := translate.NewPool(translate.Shared(static), 4)
	require.NoError(t, err)
	defer func() { _ = pool.Close() }()

	ev := New(quiet())
	koEn, enKo, err := ev.Translate(context.Background(), f, pool)
	require.NoError(t, err)
	assert.Equal(t, f.English, koEn.Hypotheses())
	assert.Equal(t, f.Korean, enKo.Hypotheses())

	r, err := ev.Evaluate(context.Background(), koEn, enKo)
	require.NoError(t, err)
	assert.Equal(t, 30, r.TestCount)
	assert.Equal(t, perfect, r.KoToEn)
	assert.Equal(t, perfect, r.EnToKo)
}

func TestEvaluator_Translate_Failure(t *testing.T) {
	f := &corpus.Fixture{Korean: []string{"네"}, English: []string{"Yes."}}
	broken := translate.Func(func(context.Context, string, corpus.Direction) (string, error) {
		return "", errors.New("connection refused")
	})

	pool, err := translate.NewPool(translate.Shared(broken), 1)
	require.NoError(t, err)
	defer func() { _ = pool.Close() }()

	_, _, err = New(quiet()).Translate(context.Background(), f, pool)
	assert.ErrorIs(t, err, ErrTranslatorFailed)
	assert.Contains(t, err.Error(), "connection refused")
}
