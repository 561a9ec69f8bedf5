package report

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/jamesainslie/go-mteval/corpus"
)

// summaryRows is the display order of the summary table.
var summaryRows = []struct {
	label  string
	format string
	get    func(Scores) float64
}{
	{"METEOR", "%10.4f", func(s Scores) float64 { return s.METEOR }},
	{"chrF", "%10.2f", func(s Scores) float64 { return s.ChrF }},
	{"BLEU", "%10.2f", func(s Scores) float64 { return s.BLEU }},
	{"TER", "%10.2f", func(s Scores) float64 { return s.TER }},
}

// WriteSummary prints a metric by direction table.
func WriteSummary(w io.Writer, r *Report) error {
	var b strings.Builder
	rule := strings.Repeat("-", 34)

	fmt.Fprintf(&b, "%-12s %10s %10s\n", "Metric", "Ko→En", "En→Ko")
	fmt.Fprintln(&b, rule)
	for _, row := range summaryRows {
		fmt.Fprintf(&b, "%-12s "+row.format+" "+row.format+"\n",
			row.label, row.get(r.KoToEn), row.get(r.EnToKo))
	}
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Sentences: %d  Run: %s\n", r.TestCount, r.RunID)

	_, err := io.WriteString(w, b.String())
	return err
}

// Translation is one translated sentence with its reference.
type Translation struct {
	Source     string `json:"src"`
	Hypothesis string `json:"mt"`
	Reference  string `json:"ref"`
}

// Translations records every sentence scored in a run, per direction.
type Translations struct {
	KoToEn []Translation `json:"koToEn"`
	EnToKo []Translation `json:"enToKo"`
}

// NewTranslations collects the translated pairs of both corpora.
func NewTranslations(koEn, enKo corpus.Corpus) *Translations {
	return &Translations{
		KoToEn: translations(koEn),
		EnToKo: translations(enKo),
	}
}

// WriteFile writes the translations as indented JSON.
func (t *Translations) WriteFile(path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encode translations: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

func translations(c corpus.Corpus) []Translation {
	out := make([]Translation, len(c.Pairs))
	for i, p := range c.Pairs {
		out[i] = Translation{
			Source:     p.Source.Text,
			Hypothesis: p.Hypothesis.Text,
			Reference:  p.Reference.Text,
		}
	}
	return out
}
