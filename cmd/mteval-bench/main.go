package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-mteval/corpus"
	"github.com/jamesainslie/go-mteval/internal/bench"
	"github.com/jamesainslie/go-mteval/internal/telemetry"
	"github.com/jamesainslie/go-mteval/metric"
	"github.com/jamesainslie/go-mteval/report"
)

// Set by -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type flags struct {
	hypotheses []string
	cfg        bench.Config
	weights    bench.Weights
	maxOrder   int
	charOrder  int
	beta       float64
	shiftSize  int
	logLevel   string
	logFormat  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := flags{cfg: bench.DefaultConfig(), weights: bench.DefaultWeights()}

	cmd := &cobra.Command{
		Use:   "mteval-bench --hypotheses FILE [--hypotheses FILE...]",
		Short: "Score Korean/English translations with BLEU, chrF, TER and METEOR",
		Long: `Scores translator output against a bilingual reference corpus in both
directions and writes the official metrics report.

With one --hypotheses file the run is scored, saved, and summarized. With
several, the systems are ranked by a weighted composite of all metrics.`,
		Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}

	fs := cmd.Flags()
	fs.StringSliceVar(&f.hypotheses, "hypotheses", nil, "Hypotheses file (YAML or JSON); repeat to compare systems (required)")
	fs.StringVar(&f.cfg.FixturePath, "fixture", f.cfg.FixturePath, "Bilingual corpus fixture (YAML or JSON)")
	fs.StringVar(&f.cfg.ReportPath, "out", f.cfg.ReportPath, "Report path (.json, .pb)")
	fs.StringVar(&f.cfg.TranslationsPath, "translations-out", "", "Write per-sentence translations to this JSON file")
	fs.StringVar(&f.cfg.TextfilePath, "textfile", "", "Write Prometheus metrics to this textfile")
	fs.IntVar(&f.cfg.Translators, "translators", f.cfg.Translators, "Translator instances")
	fs.IntVar(&f.cfg.Concurrency, "concurrency", f.cfg.Concurrency, "Metrics computed at once")
	fs.IntVar(&f.maxOrder, "max-order", 4, "BLEU maximum n-gram order")
	fs.IntVar(&f.charOrder, "char-order", 6, "chrF maximum character n-gram order")
	fs.Float64Var(&f.beta, "beta", 2, "chrF recall weight")
	fs.IntVar(&f.shiftSize, "max-shift-size", 10, "TER maximum shifted block length")
	fs.Float64Var(&f.weights.ChrF, "w-chrf", f.weights.ChrF, "chrF weight when comparing")
	fs.Float64Var(&f.weights.BLEU, "w-bleu", f.weights.BLEU, "BLEU weight when comparing")
	fs.Float64Var(&f.weights.TER, "w-ter", f.weights.TER, "TER weight when comparing")
	fs.Float64Var(&f.weights.METEOR, "w-meteor", f.weights.METEOR, "METEOR weight when comparing")
	fs.StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "text", "Log format: text or json")
	_ = cmd.MarkFlagRequired("hypotheses")

	return cmd
}

func run(cmd *cobra.Command, f flags) error {
	logger, err := telemetry.NewLogger(cmd.ErrOrStderr(), f.logLevel, f.logFormat)
	if err != nil {
		return err
	}

	f.cfg.MetricOptions = []metric.Option{
		metric.WithMaxOrder(f.maxOrder),
		metric.WithCharOrder(f.charOrder),
		metric.WithBeta(f.beta),
		metric.WithMaxShiftSize(f.shiftSize),
	}

	runner, err := bench.NewRunner(f.cfg, logger)
	if err != nil {
		return err
	}

	systems := make([]*corpus.Hypotheses, 0, len(f.hypotheses))
	for _, path := range f.hypotheses {
		h, err := corpus.LoadHypotheses(path)
		if err != nil {
			return fmt.Errorf("loading hypotheses: %w", err)
		}
		systems = append(systems, h)
	}

	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	if len(systems) > 1 {
		results, err := runner.Compare(ctx, systems, f.weights)
		if err != nil {
			return err
		}
		printComparison(cmd, results)
		return nil
	}

	res, err := runner.RunHypotheses(ctx, systems[0])
	if err != nil {
		return err
	}
	if err := runner.Persist(res); err != nil {
		return err
	}

	fmt.Fprintf(out, "Test sentences: %d pairs\n", res.Report.TestCount)
	fmt.Fprintf(out, "Results saved to: %s\n\n", f.cfg.ReportPath)
	return report.WriteSummary(out, res.Report)
}

func printComparison(cmd *cobra.Command, results []bench.CompareResult) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "System Comparison")
	fmt.Fprintln(out, strings.Repeat("-", 72))
	fmt.Fprintf(out, "%-20s %-9s %-9s %-9s %-9s %-9s\n", "System", "Composite", "chrF", "BLEU", "TER", "METEOR")
	for _, r := range results {
		for i, dir := range corpus.Directions {
			s := r.Report.Scores(dir)
			name, composite := "", ""
			if i == 0 {
				name, composite = r.System, fmt.Sprintf("%.2f", r.Composite)
			}
			fmt.Fprintf(out, "%-20s %-9s %-9.2f %-9.2f %-9.2f %-9.4f %s\n",
				name, composite, s.ChrF, s.BLEU, s.TER, s.METEOR, dir)
		}
	}
	fmt.Fprintln(out, strings.Repeat("-", 72))
	if len(results) > 0 {
		fmt.Fprintf(out, "Best: %s (Composite: %.2f)\n", results[0].System, results[0].Composite)
	}
}
