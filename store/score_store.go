package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/gcbaptista/answer-ranker/model"
)

// answerKey identifies an answer across documents.
type answerKey struct {
	DocumentID string
	Index      int
}

// ScoreStore holds the AnswerScore records of a run, at most one per answer.
type ScoreStore struct {
	Mu     sync.RWMutex
	Scores map[answerKey]model.AnswerScore
}

// NewScoreStore creates an empty ScoreStore.
func NewScoreStore() *ScoreStore {
	return &ScoreStore{Scores: make(map[answerKey]model.AnswerScore)}
}

// Put stores score, replacing any earlier score for the same answer.
func (s *ScoreStore) Put(score model.AnswerScore) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.Scores[answerKey{DocumentID: score.DocumentID, Index: score.Answer.Index}] = score
}

// PutAll stores every score.
func (s *ScoreStore) PutAll(scores []model.AnswerScore) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	for _, score := range scores {
		s.Scores[answerKey{DocumentID: score.DocumentID, Index: score.Answer.Index}] = score
	}
}

// ReplaceDocument drops every stored score of documentID and stores scores in their place.
func (s *ScoreStore) ReplaceDocument(documentID string, scores []model.AnswerScore) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	for key := range s.Scores {
		if key.DocumentID == documentID {
			delete(s.Scores, key)
		}
	}
	for _, score := range scores {
		s.Scores[answerKey{DocumentID: documentID, Index: score.Answer.Index}] = score
	}
}

// Get returns the score of the answer at index in the given document.
func (s *ScoreStore) Get(documentID string, index int) (model.AnswerScore, bool) {
	s.Mu.RLock()
	defer s.Mu.RUnlock()
	score, ok := s.Scores[answerKey{DocumentID: documentID, Index: index}]
	return score, ok
}

// ForDocument returns the scores of a document in answer order.
func (s *ScoreStore) ForDocument(documentID string) []model.AnswerScore {
	s.Mu.RLock()
	defer s.Mu.RUnlock()

	scores := make([]model.AnswerScore, 0)
	for key, score := range s.Scores {
		if key.DocumentID == documentID {
			scores = append(scores, score)
		}
	}
	sort.Slice(scores, func(i, j int) bool {
		return scores[i].Answer.Index < scores[j].Answer.Index
	})
	return scores
}

// Len returns the number of stored scores.
func (s *ScoreStore) Len() int {
	s.Mu.RLock()
	defer s.Mu.RUnlock()
	return len(s.Scores)
}

// Clear removes every score.
func (s *ScoreStore) Clear() {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.Scores = make(map[answerKey]model.AnswerScore)
}

// EncodeMsgpack writes the scores as a flat list ordered by document and answer.
func (s *ScoreStore) EncodeMsgpack(enc *msgpack.Encoder) error {
	s.Mu.RLock()
	defer s.Mu.RUnlock()

	scores := make([]model.AnswerScore, 0, len(s.Scores))
	for _, score := range s.Scores {
		scores = append(scores, score)
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].DocumentID != scores[j].DocumentID {
			return scores[i].DocumentID < scores[j].DocumentID
		}
		return scores[i].Answer.Index < scores[j].Answer.Index
	})
	if err := enc.Encode(scores); err != nil {
		return fmt.Errorf("failed to msgpack encode score store: %w", err)
	}
	return nil
}

// DecodeMsgpack replaces the store contents with the decoded list.
func (s *ScoreStore) DecodeMsgpack(dec *msgpack.Decoder) error {
	var scores []model.AnswerScore
	if err := dec.Decode(&scores); err != nil {
		return fmt.Errorf("failed to msgpack decode score store: %w", err)
	}

	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.Scores = make(map[answerKey]model.AnswerScore, len(scores))
	for _, score := range scores {
		s.Scores[answerKey{DocumentID: score.DocumentID, Index: score.Answer.Index}] = score
	}
	return nil
}
