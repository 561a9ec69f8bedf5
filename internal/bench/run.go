package bench

import (
	"context"
	"fmt"
	"log/slog"

	mteval "github.com/jamesainslie/go-mteval"
	"github.com/jamesainslie/go-mteval/corpus"
	"github.com/jamesainslie/go-mteval/internal/telemetry"
	"github.com/jamesainslie/go-mteval/report"
	"github.com/jamesainslie/go-mteval/translate"
)

// Result holds the report of one run and the corpora it scored.
type Result struct {
	Report *report.Report
	KoToEn corpus.Corpus
	EnToKo corpus.Corpus
}

// Runner evaluates translators against one fixture.
type Runner struct {
	cfg     Config
	fixture *corpus.Fixture
	metrics *telemetry.Metrics
	eval    *mteval.Evaluator
	logger  *slog.Logger
}

// NewRunner loads the fixture named by cfg.
func NewRunner(cfg Config, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := corpus.LoadFixture(cfg.FixturePath)
	if err != nil {
		return nil, fmt.Errorf("loading fixture: %w", err)
	}
	logger.Info("loaded fixture", "path", cfg.FixturePath, "pairs", f.Len())

	m := telemetry.New()
	return &Runner{
		cfg:     cfg,
		fixture: f,
		metrics: m,
		eval: mteval.New(
			mteval.WithConcurrency(cfg.Concurrency),
			mteval.WithMetricOptions(cfg.MetricOptions...),
			mteval.WithObserver(m),
			mteval.WithLogger(logger),
		),
		logger: logger,
	}, nil
}

// Fixture returns the loaded fixture.
func (r *Runner) Fixture() *corpus.Fixture {
	return r.fixture
}

// Metrics returns the run's Prometheus collectors.
func (r *Runner) Metrics() *telemetry.Metrics {
	return r.metrics
}

// Run translates the fixture with translators from factory and scores the
// output.
func (r *Runner) Run(ctx context.Context, factory translate.Factory) (*Result, error) {
	pool, err := translate.NewPool(factory, r.cfg.Translators)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", mteval.ErrTranslatorFailed, err)
	}
	defer func() { _ = pool.Close() }()

	koEn, enKo, err := r.eval.Translate(ctx, r.fixture, pool)
	if err != nil {
		return nil, err
	}
	return r.score(ctx, koEn, enKo)
}

// RunHypotheses scores pre-computed hypotheses. Hypothesis i is paired with
// fixture sentence i, so repeated source sentences keep their own output.
func (r *Runner) RunHypotheses(ctx context.Context, h *corpus.Hypotheses) (*Result, error) {
	koEn, err := r.fixture.Corpus(corpus.KoEn).WithHypotheses(h.For(corpus.KoEn))
	if err != nil {
		return nil, err
	}
	enKo, err := r.fixture.Corpus(corpus.EnKo).WithHypotheses(h.For(corpus.EnKo))
	if err != nil {
		return nil, err
	}
	return r.score(ctx, koEn, enKo)
}

func (r *Runner) score(ctx context.Context, koEn, enKo corpus.Corpus) (*Result, error) {
	rep, err := r.eval.Evaluate(ctx, koEn, enKo)
	if err != nil {
		return nil, err
	}
	r.metrics.ObserveReport(rep)

	return &Result{Report: rep, KoToEn: koEn, EnToKo: enKo}, nil
}

// Persist writes the report, and the translations and textfile when
// configured.
func (r *Runner) Persist(res *Result) error {
	if err := res.Report.WriteFile(r.cfg.ReportPath); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	r.logger.Info("saved report", "path", r.cfg.ReportPath, "run_id", res.Report.RunID)

	if r.cfg.TranslationsPath != "" {
		t := report.NewTranslations(res.KoToEn, res.EnToKo)
		if err := t.WriteFile(r.cfg.TranslationsPath); err != nil {
			return fmt.Errorf("saving translations: %w", err)
		}
		r.logger.Info("saved translations", "path", r.cfg.TranslationsPath)
	}

	if r.cfg.TextfilePath != "" {
		if err := r.metrics.WriteTextfile(r.cfg.TextfilePath); err != nil {
			return fmt.Errorf("saving metrics: %w", err)
		}
		r.logger.Info("saved metrics", "path", r.cfg.TextfilePath)
	}

	return nil
}
