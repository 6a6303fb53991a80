package tokenizer

import (
	"reflect"
	"testing"

	"github.com/gcbaptista/answer-ranker/model"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"simple words", "hello world", []string{"hello", "world"}},
		{"with punctuation", "hello, world!", []string{"hello", "world"}},
		{"question", "What color is the sky?", []string{"What", "color", "is", "the", "sky"}},
		{"keeps case", "The Sky IS blue.", []string{"The", "Sky", "IS", "blue"}},
		{"with numbers", "item123 test 42", []string{"item123", "test", "42"}},
		{"leading/trailing spaces", "  hello world  ", []string{"hello", "world"}},
		{"multiple spaces between words", "hello   world", []string{"hello", "world"}},
		{"apostrophe stays inside word", "John's book", []string{"John's", "book"}},
		{"decimal number", "pi is 3.14", []string{"pi", "is", "3.14"}},
		{"hyphen splits", "state-of-the-art", []string{"state", "of", "the", "art"}},
		{"only symbols", "!@#$%^", []string{}},
		{"non-ascii letters", "Zoë naïve café", []string{"Zoë", "naïve", "café"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Texts(Tokenize(tt.input))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenize_Offsets(t *testing.T) {
	text := "Q Booth shot Lincoln?"
	tokens := Tokenize(text)

	want := []model.Span{{Begin: 0, End: 1}, {Begin: 2, End: 7}, {Begin: 8, End: 12}, {Begin: 13, End: 20}}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, tok := range tokens {
		if tok.Span != want[i] {
			t.Errorf("token %d: span = %+v, want %+v", i, tok.Span, want[i])
		}
		if text[tok.Begin:tok.End] != tok.Text {
			t.Errorf("token %d: text %q does not match buffer %q", i, tok.Text, text[tok.Begin:tok.End])
		}
	}
}

func TestTokenizeSpan(t *testing.T) {
	text := "Q What color is the sky?\nA 1 The sky is blue."
	answer := model.Span{Begin: 29, End: len(text)}

	tokens := TokenizeSpan(text, answer)
	got := Texts(tokens)
	want := []string{"The", "sky", "is", "blue"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TokenizeSpan = %v, want %v", got, want)
	}

	for _, tok := range tokens {
		if !answer.Contains(tok.Span) {
			t.Errorf("token %q span %+v escapes parent span %+v", tok.Text, tok.Span, answer)
		}
	}

	for i := 1; i < len(tokens); i++ {
		if tokens[i].Begin < tokens[i-1].End {
			t.Errorf("tokens %d and %d overlap", i-1, i)
		}
	}
}

func TestTokenizeSpan_EdgeCases(t *testing.T) {
	text := "hello world"

	tests := []struct {
		name string
		span model.Span
	}{
		{"empty span", model.Span{Begin: 3, End: 3}},
		{"inverted span", model.Span{Begin: 5, End: 2}},
		{"out of range", model.Span{Begin: 0, End: 100}},
		{"negative begin", model.Span{Begin: -1, End: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenizeSpan(text, tt.span)
			if got == nil || len(got) != 0 {
				t.Errorf("TokenizeSpan(%+v) = %v, want empty non-nil slice", tt.span, got)
			}
		})
	}
}
