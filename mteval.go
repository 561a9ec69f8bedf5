package mteval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-mteval/corpus"
	"github.com/jamesainslie/go-mteval/metric"
	"github.com/jamesainslie/go-mteval/report"
	"github.com/jamesainslie/go-mteval/tokenizer"
	"github.com/jamesainslie/go-mteval/translate"
)

// Observer receives each corpus-level score as soon as it is computed.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveScore(dir corpus.Direction, name metric.Name, score float64, elapsed time.Duration)
}

// TranslationObserver is implemented by observers that also track the
// translation step.
type TranslationObserver interface {
	ObserveTranslation(dir corpus.Direction, sentences int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveScore(corpus.Direction, metric.Name, float64, time.Duration) {}

// Evaluator scores translated corpora. It is safe for concurrent use.
type Evaluator struct {
	concurrency int
	metricOpts  []metric.Option
	observer    Observer
	logger      *slog.Logger
}

// New creates an Evaluator.
func New(opts ...Option) *Evaluator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	metricOpts := append([]metric.Option{metric.WithLogger(cfg.logger)}, cfg.metricOpts...)

	return &Evaluator{
		concurrency: cfg.concurrency,
		metricOpts:  metricOpts,
		observer:    cfg.observer,
		logger:      cfg.logger,
	}
}

// Translate runs every fixture sentence through the pool in both directions
// and returns the two corpora with hypotheses filled in.
func (e *Evaluator) Translate(ctx context.Context, f *corpus.Fixture, pool *translate.Pool) (koEn, enKo corpus.Corpus, err error) {
	out := make(map[corpus.Direction]corpus.Corpus, len(corpus.Directions))

	for _, dir := range corpus.Directions {
		start := time.Now()
		c, err := translate.Corpus(ctx, pool, f.Corpus(dir))
		if err != nil {
			return corpus.Corpus{}, corpus.Corpus{}, fmt.Errorf("%w: %w", ErrTranslatorFailed, err)
		}
		elapsed := time.Since(start)
		if o, ok := e.observer.(TranslationObserver); ok {
			o.ObserveTranslation(dir, c.Len(), elapsed)
		}
		e.logger.Info("translated corpus",
			"direction", dir,
			"sentences", c.Len(),
			"elapsed", elapsed)
		out[dir] = c
	}

	return out[corpus.KoEn], out[corpus.EnKo], nil
}

// Score computes all four metrics for one direction. Hypothesis i is scored
// against reference i.
func (e *Evaluator) Score(ctx context.Context, dir corpus.Direction, hyps, refs []string) (report.Scores, error) {
	if _, err := corpus.ParseDirection(string(dir)); err != nil {
		return report.Scores{}, err
	}
	if err := checkParallel(dir, hyps, refs); err != nil {
		return report.Scores{}, err
	}

	scores, err := e.run(ctx, e.jobs(dir, hyps, refs))
	if err != nil {
		return report.Scores{}, err
	}
	return scores[dir], nil
}

// Evaluate scores both corpora and assembles the report. Both corpora are
// checked before any scoring starts.
func (e *Evaluator) Evaluate(ctx context.Context, koEn, enKo corpus.Corpus) (*report.Report, error) {
	if koEn.Direction != corpus.KoEn || enKo.Direction != corpus.EnKo {
		return nil, fmt.Errorf("%w: got %s and %s", corpus.ErrUnknownDirection, koEn.Direction, enKo.Direction)
	}

	var jobs []job
	for _, c := range []corpus.Corpus{koEn, enKo} {
		hyps, refs := c.Hypotheses(), c.References()
		if err := checkParallel(c.Direction, hyps, refs); err != nil {
			return nil, err
		}
		jobs = append(jobs, e.jobs(c.Direction, hyps, refs)...)
	}

	start := time.Now()
	scores, err := e.run(ctx, jobs)
	if err != nil {
		return nil, err
	}

	r := report.New(koEn.Len(), scores[corpus.KoEn], scores[corpus.EnKo])
	e.logger.Info("evaluation complete",
		"run_id", r.RunID,
		"sentences", r.TestCount,
		"elapsed", time.Since(start))
	return r, nil
}

// job computes one metric for one direction.
type job struct {
	dir   corpus.Direction
	name  metric.Name
	score func() (float64, error)
}

// jobs tokenizes one direction and returns its four scorers. BLEU and TER
// compare words in both directions; METEOR uses the target language script.
func (e *Evaluator) jobs(dir corpus.Direction, hyps, refs []string) []job {
	hypWords := tokenizeAll(hyps, tokenizer.Word)
	refWords := tokenizeAll(refs, tokenizer.Word)

	hypMeteor, refMeteor := hypWords, refWords
	if script := dir.TargetScript(); script != tokenizer.Word {
		hypMeteor = tokenizeAll(hyps, script)
		refMeteor = tokenizeAll(refs, script)
	}

	opts := e.metricOpts
	return []job{
		{dir, metric.NameChrF, func() (float64, error) {
			r, err := metric.ChrF(hyps, refs, opts...)
			return r.Score, err
		}},
		{dir, metric.NameBLEU, func() (float64, error) {
			r, err := metric.BLEU(hypWords, refWords, opts...)
			return r.Score, err
		}},
		{dir, metric.NameTER, func() (float64, error) {
			r, err := metric.TER(hypWords, refWords, opts...)
			return r.Score, err
		}},
		{dir, metric.NameMETEOR, func() (float64, error) {
			r, err := metric.METEOR(hypMeteor, refMeteor, opts...)
			return r.Score, err
		}},
	}
}

// run executes jobs concurrently and collects scores by direction.
func (e *Evaluator) run(ctx context.Context, jobs []job) (map[corpus.Direction]report.Scores, error) {
	results := make([]float64, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			score, err := j.score()
			if err != nil {
				return fmt.Errorf("%s %s: %w", j.dir, j.name, err)
			}
			elapsed := time.Since(start)

			results[i] = score
			e.observer.ObserveScore(j.dir, j.name, score, elapsed)
			e.logger.Debug("scored",
				"direction", j.dir,
				"metric", j.name,
				"score", score,
				"elapsed", elapsed)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[corpus.Direction]report.Scores, len(corpus.Directions))
	for i, j := range jobs {
		s := out[j.dir]
		s.Set(j.name, results[i])
		out[j.dir] = s
	}
	return out, nil
}

func checkParallel(dir corpus.Direction, hyps, refs []string) error {
	if len(hyps) == 0 && len(refs) == 0 {
		return fmt.Errorf("%s: %w", dir, metric.ErrEmptyCorpus)
	}
	if len(hyps) != len(refs) {
		return fmt.Errorf("%s: %w: %d hypotheses, %d references",
			dir, metric.ErrLengthMismatch, len(hyps), len(refs))
	}
	return nil
}

func tokenizeAll(texts []string, script tokenizer.Script) [][]string {
	out := make([][]string, len(texts))
	for i, text := range texts {
		out[i] = tokenizer.Tokenize(text, script)
	}
	return out
}
