package scoring

import (
	"github.com/gcbaptista/answer-ranker/internal/errors"
	"github.com/gcbaptista/answer-ranker/internal/ngram"
	"github.com/gcbaptista/answer-ranker/model"
)

// defaultConfidence is attached to every AnswerScore; the heuristic has no notion of uncertainty.
const defaultConfidence = 1.0

// Service scores all answers of a document.
type Service struct {
	overlap       *OverlapScorer
	entities      *EntityProximityScorer
	entityScoring bool
}

// NewService creates a scoring Service. When entityScoring is set, the entity proximity
// adjustment is added to every overlap score.
func NewService(maxN int, entityScoring bool) *Service {
	return &Service{
		overlap:       NewOverlapScorer(maxN),
		entities:      NewEntityProximityScorer(),
		entityScoring: entityScoring,
	}
}

// ScoreDocument returns one AnswerScore per answer with a non-empty span, in document order.
// Answers with empty spans are skipped without error.
func (s *Service) ScoreDocument(doc *model.Document, reference *ngram.Set) ([]model.AnswerScore, error) {
	if s.entityScoring && doc.Question == nil {
		return nil, errors.NewMissingQuestionError(doc.ID)
	}

	scores := make([]model.AnswerScore, 0, len(doc.Answers))
	for _, answer := range doc.Answers {
		if answer.IsEmpty() {
			continue
		}

		score := model.AnswerScore{
			DocumentID: doc.ID,
			Answer:     answer,
			Score:      s.overlap.Score(answer, reference, doc.Text),
			Confidence: defaultConfidence,
		}

		if s.entityScoring {
			score.Adjustment = s.entities.Adjust(*doc.Question, answer, doc.Mentions)
			score.Score += score.Adjustment
		}

		scores = append(scores, score)
	}
	return scores, nil
}
