package main

import (
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	mteval "github.com/jamesainslie/go-mteval"
	"github.com/jamesainslie/go-mteval/corpus"
	"github.com/jamesainslie/go-mteval/internal/telemetry"
	"github.com/jamesainslie/go-mteval/tokenizer"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		direction string
		reference string
		format    string
		showTok   bool
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:           "mteval-cli --reference REF [flags] HYPOTHESIS",
		Short:         "Score one translation against one reference",
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := corpus.ParseDirection(direction)
			if err != nil {
				return err
			}
			logger, err := telemetry.NewLogger(cmd.ErrOrStderr(), logLevel, "text")
			if err != nil {
				return err
			}

			hyp := strings.Join(args, " ")
			scores, err := mteval.New(mteval.WithLogger(logger)).
				Score(cmd.Context(), dir, []string{hyp}, []string{reference})
			if err != nil {
				return err
			}
			scores = scores.Rounded()

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				data, err := json.MarshalIndent(scores, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			case "text":
				fmt.Fprintf(out, "Direction:  %s\n", dir)
				fmt.Fprintf(out, "Hypothesis: %q\n", hyp)
				fmt.Fprintf(out, "Reference:  %q\n", reference)
				if showTok {
					script := dir.TargetScript()
					fmt.Fprintf(out, "Tokens (%s): %q\n", script, tokenizer.Tokenize(hyp, script))
				}
				fmt.Fprintf(out, "METEOR: %.4f\n", scores.METEOR)
				fmt.Fprintf(out, "chrF:   %.2f\n", scores.ChrF)
				fmt.Fprintf(out, "BLEU:   %.2f\n", scores.BLEU)
				fmt.Fprintf(out, "TER:    %.2f\n", scores.TER)
				return nil
			default:
				return fmt.Errorf("unknown format %q: want text or json", format)
			}
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&direction, "direction", "d", string(corpus.KoEn), "Translation direction: ko-en or en-ko")
	fs.StringVarP(&reference, "reference", "r", "", "Reference translation (required)")
	fs.StringVarP(&format, "format", "f", "text", "Output format: text or json")
	fs.BoolVar(&showTok, "tokens", false, "Print the hypothesis tokens METEOR compares")
	fs.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	_ = cmd.MarkFlagRequired("reference")

	return cmd
}
