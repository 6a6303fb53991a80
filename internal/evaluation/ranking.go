// Package evaluation ranks scored answers and measures ranking quality against gold labels.
package evaluation

import (
	"sort"

	"github.com/gcbaptista/answer-ranker/model"
)

// Rank orders the scores of a document by descending score and returns one RankedAnswer
// per score, with ranks starting at 1.
//
// With tieBreak, a gold-correct answer sorts before an incorrect one of equal score.
// Remaining ties keep document order.
func Rank(doc *model.Document, scores []model.AnswerScore, tieBreak bool) []model.RankedAnswer {
	ordered := make([]model.AnswerScore, len(scores))
	copy(ordered, scores)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if tieBreak {
			return correctnessRank(a.Answer) < correctnessRank(b.Answer)
		}
		return false
	})

	ranked := make([]model.RankedAnswer, len(ordered))
	for i, s := range ordered {
		ranked[i] = model.RankedAnswer{
			Rank:      i + 1,
			IsCorrect: s.Answer.IsCorrect,
			Score:     s.Score,
			Text:      doc.Covered(s.Answer.Span),
		}
	}
	return ranked
}

func correctnessRank(a model.Answer) int {
	if a.IsCorrect {
		return 0
	}
	return 1
}

// Precision is precision at R, where R is the number of gold-correct ranked answers.
type Precision struct {
	TotalCorrect     int
	PredictedCorrect int
	Value            float64
}

// Defined reports whether R > 0. With no gold-correct answer the ratio has no value.
func (p Precision) Defined() bool {
	return p.TotalCorrect > 0
}

// PrecisionAtR counts the gold-correct answers among the first R ranks.
func PrecisionAtR(ranked []model.RankedAnswer) Precision {
	var p Precision
	for _, r := range ranked {
		if r.IsCorrect {
			p.TotalCorrect++
		}
	}
	for i := 0; i < p.TotalCorrect; i++ {
		if ranked[i].IsCorrect {
			p.PredictedCorrect++
		}
	}
	if p.TotalCorrect > 0 {
		p.Value = float64(p.PredictedCorrect) / float64(p.TotalCorrect)
	}
	return p
}
