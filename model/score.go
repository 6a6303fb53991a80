package model

// AnswerScore associates an Answer with its ranking score.
// The overlap pass creates it; the entity pass may add an adjustment once.
type AnswerScore struct {
	DocumentID string  `json:"document_id" msgpack:"document_id"`
	Answer     Answer  `json:"answer" msgpack:"answer"`
	Score      float64 `json:"score" msgpack:"score"`
	Confidence float64 `json:"confidence" msgpack:"confidence"`
	// Adjustment records the entity proximity term already folded into Score.
	Adjustment float64 `json:"adjustment,omitempty" msgpack:"adjustment,omitempty"`
}

// RankedAnswer is one line of a ranked report.
type RankedAnswer struct {
	Rank      int     `json:"rank"`
	IsCorrect bool    `json:"is_correct"`
	Score     float64 `json:"score"`
	Text      string  `json:"text"`
}

// Symbol returns "+" for gold-correct answers and "-" otherwise.
func (r RankedAnswer) Symbol() string {
	if r.IsCorrect {
		return "+"
	}
	return "-"
}

// EvaluationResult is the outcome of ranking a single document.
type EvaluationResult struct {
	DocumentID       string         `json:"document_id"`
	Question         string         `json:"question"`
	Ranked           []RankedAnswer `json:"ranked"`
	TotalCorrect     int            `json:"total_correct"`
	PredictedCorrect int            `json:"predicted_correct"`
	Precision        float64        `json:"precision"`
	// Counted is false when the document did not contribute to the running average.
	Counted bool `json:"counted"`
	// Scores are the AnswerScore records the ranking was built from, in answer order.
	Scores []AnswerScore `json:"-"`
}

// EvaluationSummary is the running state across all evaluated documents.
type EvaluationSummary struct {
	TotalPrecision   float64 `json:"total_precision"`
	Documents        int     `json:"documents"`
	AveragePrecision float64 `json:"average_precision"`
	Skipped          int     `json:"skipped"`
}
