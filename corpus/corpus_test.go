package corpus

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jamesainslie/go-mteval/tokenizer"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    Direction
		wantErr bool
	}{
		{"ko-en", KoEn, false},
		{"en-ko", EnKo, false},
		{"ko-ja", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDirection(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownDirection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirection_Languages(t *testing.T) {
	assert.Equal(t, language.Korean, KoEn.Source())
	assert.Equal(t, language.English, KoEn.Target())
	assert.Equal(t, tokenizer.Word, KoEn.TargetScript())

	assert.Equal(t, language.English, EnKo.Source())
	assert.Equal(t, language.Korean, EnKo.Target())
	assert.Equal(t, tokenizer.Character, EnKo.TargetScript())
}

func TestLoadFixture(t *testing.T) {
	for _, name := range []string{"small.yaml", "small.json"} {
		t.Run(name, func(t *testing.T) {
			f, err := LoadFixture(filepath.Join("testdata", name))
			require.NoError(t, err)
			assert.Equal(t, 3, f.Len())
			assert.Equal(t, "비가 올 것 같아요.", f.Korean[2])
			assert.Equal(t, "It looks like it will rain.", f.English[2])
		})
	}
}

func TestLoadFixture_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"misaligned", "testdata/misaligned.yaml"},
		{"unknown field", "testdata/unknown-field.yaml"},
		{"unsupported extension", "testdata/corpus.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFixture(tt.path)
			assert.Error(t, err)
		})
	}

	t.Run("invalid fixture sentinel", func(t *testing.T) {
		_, err := LoadFixture("testdata/misaligned.yaml")
		assert.ErrorIs(t, err, ErrInvalidFixture)
	})
}

func TestLoadFixture_RepoCorpus(t *testing.T) {
	f, err := LoadFixture("../testdata/corpus.yaml")
	require.NoError(t, err)
	assert.Equal(t, 30, f.Len())
	assert.Equal(t, "안녕하세요.", f.Korean[0])
	assert.Equal(t, "Hello.", f.English[0])
}

func TestFixture_Validate(t *testing.T) {
	tests := []struct {
		name    string
		fixture Fixture
		wantErr bool
	}{
		{"aligned", Fixture{Korean: []string{"네"}, English: []string{"Yes"}}, false},
		{"empty", Fixture{}, true},
		{"misaligned", Fixture{Korean: []string{"네", "아니요"}, English: []string{"Yes"}}, true},
		{"blank sentence", Fixture{Korean: []string{"  "}, English: []string{"Yes"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fixture.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFixture)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFixture_Corpus(t *testing.T) {
	f := &Fixture{
		Korean:  []string{"안녕하세요.", "감사합니다."},
		English: []string{"Hello.", "Thank you."},
	}

	koEn := f.Corpus(KoEn)
	require.NoError(t, koEn.Validate())
	assert.Equal(t, []string{"안녕하세요.", "감사합니다."}, koEn.Sources())
	assert.Equal(t, []string{"Hello.", "Thank you."}, koEn.References())
	assert.Equal(t, language.Korean, koEn.Pairs[0].Source.Lang)

	enKo := f.Corpus(EnKo)
	assert.Equal(t, []string{"Hello.", "Thank you."}, enKo.Sources())
	assert.Equal(t, []string{"안녕하세요.", "감사합니다."}, enKo.References())
	assert.Equal(t, language.Korean, enKo.Pairs[1].Reference.Lang)
}

func TestCorpus_Validate(t *testing.T) {
	assert.ErrorIs(t, Corpus{Direction: KoEn}.Validate(), ErrEmptyCorpus)
	assert.ErrorIs(t, Corpus{Direction: "fr-en", Pairs: make([]Pair, 1)}.Validate(), ErrUnknownDirection)
}

func TestCorpus_WithHypotheses(t *testing.T) {
	f := &Fixture{Korean: []string{"네", "아니요"}, English: []string{"Yes.", "No."}}
	c := f.Corpus(KoEn)

	got, err := c.WithHypotheses([]string{"Yes.", "Nope."})
	require.NoError(t, err)
	assert.Equal(t, []string{"Yes.", "Nope."}, got.Hypotheses())
	assert.Equal(t, language.English, got.Pairs[1].Hypothesis.Lang)
	assert.Equal(t, []string{"", ""}, c.Hypotheses(), "original corpus is unchanged")

	_, err = c.WithHypotheses([]string{"Yes."})
	assert.ErrorIs(t, err, ErrInvalidFixture)
}

func TestLoadHypotheses(t *testing.T) {
	h, err := LoadHypotheses("testdata/hypotheses.json")
	require.NoError(t, err)
	assert.Equal(t, "hypotheses", h.System)
	assert.Equal(t, "Thanks.", h.For(KoEn)[1])
	assert.Equal(t, "고마워요.", h.For(EnKo)[1])

	h, err = LoadHypotheses("../testdata/hypotheses/reference.yaml")
	require.NoError(t, err)
	assert.Equal(t, "reference", h.System)
	assert.Len(t, h.KoToEn, 30)
	assert.Len(t, h.EnToKo, 30)
}

func TestParseTSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *Fixture
		wantErr bool
	}{
		{
			name:  "pairs with comments and blank lines",
			input: "# header\n\n네\tYes.\r\n아니요\tNo.\n",
			want:  &Fixture{Korean: []string{"네", "아니요"}, English: []string{"Yes.", "No."}},
		},
		{
			name:    "missing column",
			input:   "네 Yes.\n",
			wantErr: true,
		},
		{
			name:    "extra column",
			input:   "네\tYes.\tOui.\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTSV([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFixture)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFixture_TSV(t *testing.T) {
	f, err := LoadFixture("testdata/small.tsv")
	require.NoError(t, err)
	assert.Equal(t, []string{"안녕하세요.", "감사합니다."}, f.Korean)
	assert.Equal(t, []string{"Hello.", "Thank you."}, f.English)
}
