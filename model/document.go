package model

import (
	"strings"
	"unicode"
)

// Span is a half-open byte range [Begin, End) into a document's text buffer.
// Spans never own text; they always refer to the buffer of the document they were created for.
type Span struct {
	Begin int `json:"begin" msgpack:"begin"`
	End   int `json:"end" msgpack:"end"`
}

// IsEmpty reports whether the span covers no text (Begin >= End).
func (s Span) IsEmpty() bool {
	return s.Begin >= s.End
}

// Len returns the number of bytes covered by the span, or 0 for an empty span.
func (s Span) Len() int {
	if s.IsEmpty() {
		return 0
	}
	return s.End - s.Begin
}

// Within reports whether s lies inside the buffer of length textLen.
func (s Span) Within(textLen int) bool {
	return s.Begin >= 0 && s.End <= textLen && s.Begin <= s.End
}

// Contains reports whether other lies completely inside s.
func (s Span) Contains(other Span) bool {
	return s.Begin <= other.Begin && other.End <= s.End
}

// Overlaps reports whether s and other share at least one byte.
func (s Span) Overlaps(other Span) bool {
	return s.Begin < other.End && other.Begin < s.End
}

// Covered returns the text covered by the span, or "" when the span falls outside text.
func (s Span) Covered(text string) string {
	if !s.Within(len(text)) {
		return ""
	}
	return text[s.Begin:s.End]
}

// Token is a word span whose first rune is a letter or digit.
// Text is a substring of the document buffer, not a copy.
type Token struct {
	Span
	Text string `json:"text" msgpack:"text"`
}

// Question is the question sentence of a document.
type Question struct {
	Span
}

// Answer is a candidate answer sentence together with its gold label.
type Answer struct {
	Span
	IsCorrect bool `json:"is_correct" msgpack:"is_correct"`
	// Index is the position of the answer within its document, used as its identity.
	Index int `json:"index" msgpack:"index"`
}

// NamedEntityMention is an entity recognized by an external recognizer.
type NamedEntityMention struct {
	Span
	Text string `json:"text" msgpack:"text"` // Covered text
}

// IsSingleToken reports whether the mention's covered text contains no whitespace.
func (m NamedEntityMention) IsSingleToken() bool {
	if m.Text == "" {
		return false
	}
	return strings.IndexFunc(m.Text, unicode.IsSpace) < 0
}

// Document is one question with its candidate answers over a shared text buffer.
type Document struct {
	ID       string               `json:"id"`
	Source   string               `json:"source,omitempty"` // Originating file name, if any
	Text     string               `json:"text"`
	Question *Question            `json:"question,omitempty"`
	Answers  []Answer             `json:"answers"`
	Mentions []NamedEntityMention `json:"mentions,omitempty"`
}

// Covered returns the text covered by span in the document buffer.
func (d *Document) Covered(span Span) string {
	return span.Covered(d.Text)
}

// QuestionText returns the covered text of the question, or "" when there is none.
func (d *Document) QuestionText() string {
	if d.Question == nil {
		return ""
	}
	return d.Covered(d.Question.Span)
}

// CorrectAnswers returns the answers labelled correct, in document order.
func (d *Document) CorrectAnswers() []Answer {
	correct := make([]Answer, 0)
	for _, a := range d.Answers {
		if a.IsCorrect {
			correct = append(correct, a)
		}
	}
	return correct
}
