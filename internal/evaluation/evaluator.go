package evaluation

import (
	"sync"

	"github.com/gcbaptista/answer-ranker/config"
	"github.com/gcbaptista/answer-ranker/internal/errors"
	"github.com/gcbaptista/answer-ranker/model"
)

// Evaluator ranks documents and keeps the running precision accumulators of one batch.
// It is safe for concurrent use; accumulator updates are serialized.
type Evaluator struct {
	tieBreak   bool
	zeroPolicy string

	mu             sync.Mutex
	totalPrecision float64
	documents      int
	skipped        int
}

// NewEvaluator creates an Evaluator with empty accumulators.
func NewEvaluator(tieBreak bool, zeroPolicy string) *Evaluator {
	if zeroPolicy == "" {
		zeroPolicy = config.ZeroCorrectSkip
	}
	return &Evaluator{tieBreak: tieBreak, zeroPolicy: zeroPolicy}
}

// Evaluate ranks the scores of doc, computes precision at R and records it in the accumulators.
//
// A document without gold-correct answers is handled by the zero-correct policy: "skip"
// returns an uncounted result, "zero" counts it with precision 0 and "fail" returns a
// NoCorrectAnswersError. Accumulators are only touched when the result is counted.
func (e *Evaluator) Evaluate(doc *model.Document, scores []model.AnswerScore) (model.EvaluationResult, error) {
	if doc.Question == nil {
		return model.EvaluationResult{}, errors.NewMissingQuestionError(doc.ID)
	}

	ranked := Rank(doc, scores, e.tieBreak)
	precision := PrecisionAtR(ranked)

	result := model.EvaluationResult{
		DocumentID:       doc.ID,
		Question:         doc.QuestionText(),
		Ranked:           ranked,
		TotalCorrect:     precision.TotalCorrect,
		PredictedCorrect: precision.PredictedCorrect,
		Precision:        precision.Value,
		Counted:          true,
	}

	if !precision.Defined() {
		switch e.zeroPolicy {
		case config.ZeroCorrectFail:
			return model.EvaluationResult{}, errors.NewNoCorrectAnswersError(doc.ID)
		case config.ZeroCorrectZero:
			result.Precision = 0
		default:
			result.Counted = false
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if result.Counted {
		e.totalPrecision += result.Precision
		e.documents++
	} else {
		e.skipped++
	}
	return result, nil
}

// Summary returns the accumulated state. AveragePrecision is 0 while no document is counted.
func (e *Evaluator) Summary() model.EvaluationSummary {
	e.mu.Lock()
	defer e.mu.Unlock()

	summary := model.EvaluationSummary{
		TotalPrecision: e.totalPrecision,
		Documents:      e.documents,
		Skipped:        e.skipped,
	}
	if e.documents > 0 {
		summary.AveragePrecision = e.totalPrecision / float64(e.documents)
	}
	return summary
}

// Reset clears the accumulators.
func (e *Evaluator) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.totalPrecision = 0
	e.documents = 0
	e.skipped = 0
}
