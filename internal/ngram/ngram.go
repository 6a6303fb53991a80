// Package ngram builds contiguous token n-grams and matches them case-insensitively.
package ngram

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/gcbaptista/answer-ranker/model"
)

// DefaultMaxN is the highest n-gram order used for scoring.
const DefaultMaxN = 3

// keySeparator joins folded token texts inside a match key. Word segments never contain it.
const keySeparator = "\x1f"

// NGram is an ordered run of contiguous tokens.
// Two n-grams match when they have the same length and their tokens are equal
// position by position under Unicode case folding; spans are never compared.
type NGram struct {
	Tokens []model.Token

	// folded holds the case-folded text of each token when the n-gram came from Build.
	folded []string
}

// folders reuses casers; a Caser keeps state and cannot be shared between goroutines.
var folders = sync.Pool{New: func() any { return cases.Fold() }}

// fold returns the case-folded text of every token, using one caser for the whole sequence.
func fold(tokens []model.Token) []string {
	folder := folders.Get().(cases.Caser)
	defer folders.Put(folder)

	folded := make([]string, len(tokens))
	for i, tok := range tokens {
		folded[i] = folder.String(tok.Text)
	}
	return folded
}

// foldedTexts returns the folded token texts, computing them for hand-built n-grams.
func (g NGram) foldedTexts() []string {
	if len(g.folded) == len(g.Tokens) {
		return g.folded
	}
	return fold(g.Tokens)
}

// Len returns the order of the n-gram.
func (g NGram) Len() int {
	return len(g.Tokens)
}

// Span returns [first.Begin, last.End).
func (g NGram) Span() model.Span {
	if len(g.Tokens) == 0 {
		return model.Span{}
	}
	return model.Span{Begin: g.Tokens[0].Begin, End: g.Tokens[len(g.Tokens)-1].End}
}

// Text returns the token texts joined by single spaces.
func (g NGram) Text() string {
	parts := make([]string, len(g.Tokens))
	for i, tok := range g.Tokens {
		parts[i] = tok.Text
	}
	return strings.Join(parts, " ")
}

// Key returns the match key of the n-gram: its case-folded token texts in order.
func (g NGram) Key() string {
	return strings.Join(g.foldedTexts(), keySeparator)
}

// Equal reports whether g and other match: same length, same order, case-insensitive tokens.
func (g NGram) Equal(other NGram) bool {
	if len(g.Tokens) != len(other.Tokens) {
		return false
	}
	a, b := g.foldedTexts(), other.foldedTexts()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Build returns every contiguous window of length 1..maxN over tokens.
// Orders are emitted from maxN down to 1 and windows left to right within an order;
// callers must not depend on this order. Orders longer than the token sequence yield nothing.
func Build(tokens []model.Token, maxN int) []NGram {
	grams := make([]NGram, 0, Count(len(tokens), maxN))
	folded := fold(tokens)
	for n := maxN; n >= 1; n-- {
		grams = append(grams, buildOrder(tokens, folded, n)...)
	}
	return grams
}

// BuildOrder returns all contiguous windows of exactly n tokens.
func BuildOrder(tokens []model.Token, n int) []NGram {
	if n <= 0 || len(tokens) < n {
		return []NGram{}
	}
	return buildOrder(tokens, fold(tokens), n)
}

func buildOrder(tokens []model.Token, folded []string, n int) []NGram {
	if n <= 0 || len(tokens) < n {
		return []NGram{}
	}
	grams := make([]NGram, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		// Capacity is capped at the window so appends never write into the shared arrays.
		grams = append(grams, NGram{
			Tokens: tokens[i : i+n : i+n],
			folded: folded[i : i+n : i+n],
		})
	}
	return grams
}

// Count returns how many n-grams Build produces for a sequence of tokenCount tokens.
func Count(tokenCount, maxN int) int {
	total := 0
	for n := 1; n <= maxN; n++ {
		if tokenCount >= n {
			total += tokenCount - n + 1
		}
	}
	return total
}

// WeightSum returns 1 + 2 + ... + maxN, the largest raw overlap score.
func WeightSum(maxN int) int {
	if maxN <= 0 {
		return 0
	}
	return maxN * (maxN + 1) / 2
}
