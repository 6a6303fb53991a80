// Package scoring computes answer scores from n-gram overlap and named-entity proximity.
package scoring

import (
	"math"

	"github.com/gcbaptista/answer-ranker/internal/ngram"
	"github.com/gcbaptista/answer-ranker/internal/tokenizer"
	"github.com/gcbaptista/answer-ranker/model"
)

// OrderCount holds the match statistics of one n-gram order for a single answer.
type OrderCount struct {
	N       int // n-gram order
	Matched int // answer n-grams found in the reference set
	Total   int // answer n-grams generated
}

// Contribution returns N * Matched/Total, or 0 when the answer has fewer than N tokens.
func (c OrderCount) Contribution() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.N) * (float64(c.Matched) / float64(c.Total))
}

// OverlapScorer scores an answer by the order-weighted fraction of its n-grams
// present in a reference set. Longer matches weigh more than incidental single tokens.
type OverlapScorer struct {
	maxN int
}

// NewOverlapScorer creates a scorer over orders 1..maxN (ngram.DefaultMaxN when maxN <= 0).
func NewOverlapScorer(maxN int) *OverlapScorer {
	if maxN <= 0 {
		maxN = ngram.DefaultMaxN
	}
	return &OverlapScorer{maxN: maxN}
}

// Counts materializes the answer's n-grams order by order and counts reference matches.
func (s *OverlapScorer) Counts(tokens []model.Token, reference *ngram.Set) []OrderCount {
	counts := make([]OrderCount, 0, s.maxN)
	for n := 1; n <= s.maxN; n++ {
		grams := ngram.BuildOrder(tokens, n)
		count := OrderCount{N: n, Total: len(grams)}
		for _, g := range grams {
			if reference.Contains(g) {
				count.Matched++
			}
		}
		counts = append(counts, count)
	}
	return counts
}

// Raw sums the per-order contributions.
func Raw(counts []OrderCount) float64 {
	raw := 0.0
	for _, c := range counts {
		raw += c.Contribution()
	}
	return raw
}

// Normalize divides raw by 1+2+...+maxN and rounds to two decimals, so full overlap at
// every order scores exactly 1.
func (s *OverlapScorer) Normalize(raw float64) float64 {
	return roundTo2(raw / float64(ngram.WeightSum(s.maxN)))
}

// ScoreTokens scores an already tokenized answer.
func (s *OverlapScorer) ScoreTokens(tokens []model.Token, reference *ngram.Set) float64 {
	return s.Normalize(Raw(s.Counts(tokens, reference)))
}

// Score tokenizes the answer span of text and returns its normalized overlap score in [0, 1].
func (s *OverlapScorer) Score(answer model.Answer, reference *ngram.Set, text string) float64 {
	return s.ScoreTokens(tokenizer.TokenizeSpan(text, answer.Span), reference)
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
