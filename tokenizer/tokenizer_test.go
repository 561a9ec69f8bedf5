package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestTokenize_Word(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"sentence", "Hello there.", []string{"hello", "there"}},
		{"inner apostrophe kept", "Don't stop!", []string{"don't", "stop"}},
		{"mixed case", "HeLLo WoRLD", []string{"hello", "world"}},
		{"quoted", `"Seoul," she said`, []string{"seoul", "she", "said"}},
		{"punctuation only pieces dropped", "wait ... — what?", []string{"wait", "what"}},
		{"symbols stripped", "$5 + 100% = ₩6,500", []string{"5", "100", "6,500"}},
		{"inner symbol kept", "C++ and a+b", []string{"c", "and", "a+b"}},
		{"korean words", "저는 학생입니다.", []string{"저는", "학생입니다"}},
		{"whitespace only", " \t ", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input, Word))
		})
	}
}

func TestTokenize_Character(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"greeting", "안녕하세요.", []string{"안", "녕", "하", "세", "요", "."}},
		{"spaces removed", "좋은 아침", []string{"좋", "은", "아", "침"}},
		{"decomposed jamo composed", "\u1100\u1161", []string{"가"}},
		{"latin folded", "Ab", []string{"a", "b"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input, Character))
		})
	}
}

func TestTokenize_Deterministic(t *testing.T) {
	text := "Technological advances have made our lives more convenient."
	first := Tokenize(text, Word)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Tokenize(text, Word))
	}
}

func TestCharacters(t *testing.T) {
	assert.Equal(t, []string{"H", "i", "Y", "o", "u"}, Characters("Hi You"))
	assert.Equal(t, []string{"a", "👍🏽"}, Characters("a 👍🏽"))
	assert.Nil(t, Characters("   "))
}

func TestScriptFor(t *testing.T) {
	assert.Equal(t, Character, ScriptFor(language.Korean))
	assert.Equal(t, Character, ScriptFor(language.MustParse("zh-Hant")))
	assert.Equal(t, Word, ScriptFor(language.English))
	assert.Equal(t, Word, ScriptFor(language.German))
}

func TestScriptForCode(t *testing.T) {
	tests := []struct {
		code string
		want Script
	}{
		{"ko", Character},
		{"ko-KR", Character},
		{"ja", Character},
		{"en", Word},
		{"en-US", Word},
		{"not a tag!!", Word},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ScriptForCode(tt.code))
		})
	}
}

func TestScript_String(t *testing.T) {
	assert.Equal(t, "word", Word.String())
	assert.Equal(t, "character", Character.String())
	assert.Equal(t, "unknown", Script(42).String())
}
