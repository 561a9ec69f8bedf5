package ngram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCount(t *testing.T) {
	tokens := []string{"the", "cat", "the", "cat", "sat"}

	tests := []struct {
		name  string
		n     int
		want  Counts
		total int
	}{
		{
			name:  "unigrams",
			n:     1,
			want:  Counts{"the": 2, "cat": 2, "sat": 1},
			total: 5,
		},
		{
			name: "bigrams",
			n:    2,
			want: Counts{
				Key([]string{"the", "cat"}): 2,
				Key([]string{"cat", "the"}): 1,
				Key([]string{"cat", "sat"}): 1,
			},
			total: 4,
		},
		{
			name:  "order longer than sequence",
			n:     6,
			want:  Counts{},
			total: 0,
		},
		{
			name:  "invalid order",
			n:     0,
			want:  Counts{},
			total: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Count(tokens, tt.n)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.total, got.Total())
			assert.Equal(t, tt.total, Total(len(tokens), tt.n))
		})
	}
}

func TestCountRange(t *testing.T) {
	got := CountRange([]string{"a", "b", "c"}, 4)
	require.Len(t, got, 4)
	assert.Equal(t, 3, got[0].Total())
	assert.Equal(t, 2, got[1].Total())
	assert.Equal(t, 1, got[2].Total())
	assert.Equal(t, 0, got[3].Total())
}

func TestKey_NoCollision(t *testing.T) {
	assert.NotEqual(t, Key([]string{"a b", "c"}), Key([]string{"a", "b c"}))
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name string
		hyp  []string
		ref  []string
		want int
	}{
		{"clipped repeats", []string{"the", "the", "the"}, []string{"the", "cat"}, 1},
		{"identical", []string{"a", "b"}, []string{"a", "b"}, 2},
		{"disjoint", []string{"x"}, []string{"y"}, 0},
		{"empty hypothesis", nil, []string{"y"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlap(Count(tt.hyp, 1), Count(tt.ref, 1)))
		})
	}
}
