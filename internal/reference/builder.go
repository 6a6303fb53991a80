// Package reference builds the n-gram sets that candidate answers are matched against.
package reference

import (
	"fmt"

	"github.com/gcbaptista/answer-ranker/config"
	"github.com/gcbaptista/answer-ranker/internal/errors"
	"github.com/gcbaptista/answer-ranker/internal/ngram"
	"github.com/gcbaptista/answer-ranker/internal/tokenizer"
	"github.com/gcbaptista/answer-ranker/model"
)

// Builder turns text spans into reference sets of 1..maxN-grams.
type Builder struct {
	maxN int
}

// NewBuilder creates a Builder. A non-positive maxN falls back to ngram.DefaultMaxN.
func NewBuilder(maxN int) *Builder {
	if maxN <= 0 {
		maxN = ngram.DefaultMaxN
	}
	return &Builder{maxN: maxN}
}

// BuildReference tokenizes the span of text and returns all of its n-grams as a set.
func (b *Builder) BuildReference(span model.Span, text string) *ngram.Set {
	return ngram.NewSet(ngram.Build(tokenizer.TokenizeSpan(text, span), b.maxN)...)
}

// FromQuestion returns the reference set built from the document's question.
func (b *Builder) FromQuestion(doc *model.Document) (*ngram.Set, error) {
	if doc.Question == nil {
		return nil, errors.NewMissingQuestionError(doc.ID)
	}
	return b.BuildReference(doc.Question.Span, doc.Text), nil
}

// FromGold returns the union of the n-grams of every gold-correct answer in the document.
// Answers with an empty span are skipped.
func (b *Builder) FromGold(doc *model.Document) *ngram.Set {
	set := ngram.NewSet()
	for _, answer := range doc.CorrectAnswers() {
		if answer.IsEmpty() {
			continue
		}
		set.AddAll(ngram.Build(tokenizer.TokenizeSpan(doc.Text, answer.Span), b.maxN))
	}
	return set
}

// Build returns the reference set for doc under the given mode.
// Every mode requires a question, since a document without one cannot be reported.
func (b *Builder) Build(doc *model.Document, mode string) (*ngram.Set, error) {
	questionSet, err := b.FromQuestion(doc)
	if err != nil {
		return nil, err
	}

	switch mode {
	case config.ReferenceModeQuestion, "":
		return questionSet, nil
	case config.ReferenceModeGold:
		return b.FromGold(doc), nil
	case config.ReferenceModeCombined:
		return questionSet.Union(b.FromGold(doc)), nil
	default:
		return nil, errors.NewValidationError("reference_mode", fmt.Sprintf("unknown reference mode '%s'", mode))
	}
}
