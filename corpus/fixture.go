package corpus

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v2"
)

// Fixture is a bilingual test set. Korean[i] and English[i] are translations
// of each other.
type Fixture struct {
	Korean  []string `yaml:"korean" json:"korean"`
	English []string `yaml:"english" json:"english"`
}

// Hypotheses holds pre-computed translations, index-aligned with a Fixture.
type Hypotheses struct {
	System string   `yaml:"system,omitempty" json:"system,omitempty"`
	KoToEn []string `yaml:"koToEn" json:"koToEn"`
	EnToKo []string `yaml:"enToKo" json:"enToKo"`
}

// LoadFixture reads a YAML, JSON or TSV fixture, chosen by file extension.
func LoadFixture(path string) (*Fixture, error) {
	var f Fixture
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		parsed, err := ParseTSV(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		f = *parsed
	} else if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

// LoadHypotheses reads a YAML or JSON hypotheses file.
func LoadHypotheses(path string) (*Hypotheses, error) {
	var h Hypotheses
	if err := decodeFile(path, &h); err != nil {
		return nil, err
	}
	if h.System == "" {
		base := filepath.Base(path)
		h.System = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return &h, nil
}

// ParseTSV reads a parallel corpus with one "korean<TAB>english" pair per
// line. Blank lines and lines starting with # are skipped.
func ParseTSV(data []byte) (*Fixture, error) {
	var f Fixture
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ko, en, ok := strings.Cut(line, "\t")
		if !ok || strings.Contains(en, "\t") {
			return nil, fmt.Errorf("%w: line %d: want 2 tab-separated columns", ErrInvalidFixture, lineNo)
		}
		f.Korean = append(f.Korean, strings.TrimSpace(ko))
		f.English = append(f.English, strings.TrimSpace(en))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan tsv: %w", err)
	}
	return &f, nil
}

// Validate checks both sides are non-empty and index-aligned.
func (f *Fixture) Validate() error {
	if len(f.Korean) == 0 || len(f.English) == 0 {
		return fmt.Errorf("%w: no sentences", ErrInvalidFixture)
	}
	if len(f.Korean) != len(f.English) {
		return fmt.Errorf("%w: %d korean sentences, %d english sentences",
			ErrInvalidFixture, len(f.Korean), len(f.English))
	}
	for i := range f.Korean {
		if strings.TrimSpace(f.Korean[i]) == "" || strings.TrimSpace(f.English[i]) == "" {
			return fmt.Errorf("%w: blank sentence at index %d", ErrInvalidFixture, i)
		}
	}
	return nil
}

// Len returns the number of sentence pairs.
func (f *Fixture) Len() int {
	return len(f.Korean)
}

// Corpus builds the corpus for a direction. Hypotheses are left empty.
func (f *Fixture) Corpus(d Direction) Corpus {
	src, ref := f.Korean, f.English
	if d == EnKo {
		src, ref = f.English, f.Korean
	}

	c := Corpus{Direction: d, Pairs: make([]Pair, len(src))}
	for i := range src {
		c.Pairs[i] = Pair{
			Source:    Sentence{Text: src[i], Lang: d.Source()},
			Reference: Sentence{Text: ref[i], Lang: d.Target()},
		}
	}
	return c
}

// For returns the hypotheses for a direction.
func (h *Hypotheses) For(d Direction) []string {
	if d == EnKo {
		return h.EnToKo
	}
	return h.KoToEn
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalStrict(data, v); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidFixture, path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidFixture, path, err)
		}
	default:
		return fmt.Errorf("%w: unsupported extension %q", ErrInvalidFixture, ext)
	}
	return nil
}
