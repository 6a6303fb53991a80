// Package testutil provides builders and helpers for testing the answer ranker.
package testutil

import (
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/answer-ranker/model"
)

// DocumentBuilder assembles a document in the line format read by the ingest package:
// "Q <question>" followed by "A <0|1> <answer>" lines.
type DocumentBuilder struct {
	id       string
	text     strings.Builder
	question *model.Question
	answers  []model.Answer
}

// NewDocument starts a document with the given ID.
func NewDocument(id string) *DocumentBuilder {
	return &DocumentBuilder{id: id}
}

// Question appends the question line.
func (b *DocumentBuilder) Question(text string) *DocumentBuilder {
	b.text.WriteString("Q ")
	begin := b.text.Len()
	b.text.WriteString(text)
	b.question = &model.Question{Span: model.Span{Begin: begin, End: b.text.Len()}}
	b.text.WriteString("\n")
	return b
}

// Answer appends an answer line with its gold label.
func (b *DocumentBuilder) Answer(correct bool, text string) *DocumentBuilder {
	label := "0"
	if correct {
		label = "1"
	}
	b.text.WriteString("A " + label + " ")
	begin := b.text.Len()
	b.text.WriteString(text)
	b.answers = append(b.answers, model.Answer{
		Span:      model.Span{Begin: begin, End: b.text.Len()},
		IsCorrect: correct,
		Index:     len(b.answers),
	})
	b.text.WriteString("\n")
	return b
}

// EmptyAnswer appends an answer whose span covers no text.
func (b *DocumentBuilder) EmptyAnswer(correct bool) *DocumentBuilder {
	return b.Answer(correct, "")
}

// Build returns the assembled document without named entity mentions.
func (b *DocumentBuilder) Build() *model.Document {
	return &model.Document{
		ID:       b.id,
		Text:     b.text.String(),
		Question: b.question,
		Answers:  b.answers,
	}
}

// BuildWithMentions returns the document with a mention for every whole-word
// occurrence of each entity string, ordered by position.
func (b *DocumentBuilder) BuildWithMentions(entities ...string) *model.Document {
	doc := b.Build()
	doc.Mentions = MentionsOf(doc.Text, entities...)
	return doc
}

// MentionsOf finds every whole-word occurrence of each entity in text.
func MentionsOf(text string, entities ...string) []model.NamedEntityMention {
	mentions := make([]model.NamedEntityMention, 0)
	for _, entity := range entities {
		if entity == "" {
			continue
		}
		for offset := 0; ; {
			i := strings.Index(text[offset:], entity)
			if i < 0 {
				break
			}
			begin := offset + i
			end := begin + len(entity)
			if isBoundary(text, begin-1) && isBoundary(text, end) {
				mentions = append(mentions, model.NamedEntityMention{
					Span: model.Span{Begin: begin, End: end},
					Text: entity,
				})
			}
			offset = end
		}
	}
	sort.SliceStable(mentions, func(i, j int) bool {
		return mentions[i].Begin < mentions[j].Begin
	})
	return mentions
}

func isBoundary(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return true
	}
	c := text[i]
	return !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}

// AnswerTexts returns the covered text of each ranked answer.
func AnswerTexts(ranked []model.RankedAnswer) []string {
	texts := make([]string, len(ranked))
	for i, r := range ranked {
		texts[i] = r.Text
	}
	return texts
}

// RequireScore asserts that the score for the answer at index equals want, to two decimals.
func RequireScore(t *testing.T, scores []model.AnswerScore, index int, want float64) {
	t.Helper()
	for _, s := range scores {
		if s.Answer.Index == index {
			assert.InDelta(t, want, s.Score, 1e-9, "score of answer %d", index)
			return
		}
	}
	require.Fail(t, "no score for answer "+strconv.Itoa(index))
}
