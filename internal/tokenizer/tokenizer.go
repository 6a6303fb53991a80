package tokenizer

import (
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/words"

	"github.com/gcbaptista/answer-ranker/model"
)

// Tokenize splits text into word tokens.
// Segmentation follows the Unicode word boundary rules (UAX #29); a segment becomes a token
// only if its first rune is a letter or a digit, which drops whitespace and punctuation.
func Tokenize(text string) []model.Token {
	return TokenizeSpan(text, model.Span{Begin: 0, End: len(text)})
}

// TokenizeSpan tokenizes the part of text covered by span.
// Token offsets are absolute offsets into text, so every token lies inside span.
// An empty or out-of-range span yields no tokens.
func TokenizeSpan(text string, span model.Span) []model.Token {
	tokens := make([]model.Token, 0) // Initialize as empty slice, not nil
	if span.IsEmpty() || !span.Within(len(text)) {
		return tokens
	}

	segments := words.FromString(text[span.Begin:span.End])
	for segments.Next() {
		segment := segments.Value()
		if !startsWithLetterOrDigit(segment) {
			continue
		}
		tokens = append(tokens, model.Token{
			Span: model.Span{
				Begin: span.Begin + segments.Start(),
				End:   span.Begin + segments.End(),
			},
			Text: segment,
		})
	}
	return tokens
}

// Texts returns the text of each token, in order.
func Texts(tokens []model.Token) []string {
	texts := make([]string, len(tokens))
	for i, tok := range tokens {
		texts[i] = tok.Text
	}
	return texts
}

func startsWithLetterOrDigit(segment string) bool {
	r, size := utf8.DecodeRuneInString(segment)
	if size == 0 || r == utf8.RuneError {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
