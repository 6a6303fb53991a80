package store

import (
	stderrors "errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/answer-ranker/internal/errors"
	"github.com/gcbaptista/answer-ranker/internal/ngram"
	"github.com/gcbaptista/answer-ranker/internal/persistence"
	"github.com/gcbaptista/answer-ranker/internal/tokenizer"
	"github.com/gcbaptista/answer-ranker/model"
)

func score(doc string, index int, value float64) model.AnswerScore {
	return model.AnswerScore{
		DocumentID: doc,
		Answer:     model.Answer{Span: model.Span{Begin: index * 10, End: index*10 + 5}, Index: index},
		Score:      value,
		Confidence: 1,
	}
}

func TestScoreStore_AtMostOnePerAnswer(t *testing.T) {
	s := NewScoreStore()
	s.Put(score("d", 0, 0.1))
	s.Put(score("d", 0, 0.7))
	s.Put(score("e", 0, 0.3))

	assert.Equal(t, 2, s.Len())
	got, ok := s.Get("d", 0)
	require.True(t, ok)
	assert.Equal(t, 0.7, got.Score)

	_, ok = s.Get("d", 1)
	assert.False(t, ok)
}

func TestScoreStore_ForDocument(t *testing.T) {
	s := NewScoreStore()
	s.PutAll([]model.AnswerScore{score("d", 2, 0.2), score("d", 0, 0.0), score("x", 1, 0.5), score("d", 1, 0.1)})

	scores := s.ForDocument("d")
	require.Len(t, scores, 3)
	for i, sc := range scores {
		assert.Equal(t, i, sc.Answer.Index)
	}
	assert.Empty(t, s.ForDocument("missing"))
}

func TestScoreStore_ReplaceDocument(t *testing.T) {
	s := NewScoreStore()
	s.PutAll([]model.AnswerScore{score("d", 0, 0.1), score("d", 1, 0.2), score("d", 2, 0.3), score("x", 0, 0.5)})

	s.ReplaceDocument("d", []model.AnswerScore{score("d", 0, 0.9)})

	scores := s.ForDocument("d")
	require.Len(t, scores, 1)
	assert.Equal(t, 0.9, scores[0].Score)
	_, ok := s.Get("d", 2)
	assert.False(t, ok)
	assert.Len(t, s.ForDocument("x"), 1, "other documents are untouched")

	s.ReplaceDocument("d", nil)
	assert.Empty(t, s.ForDocument("d"))
	assert.Equal(t, 1, s.Len())
}

func TestScoreStore_Concurrent(t *testing.T) {
	s := NewScoreStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Put(score("d", i, float64(i)))
			s.ForDocument("d")
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, s.Len())
}

func TestScoreStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.mp")
	s := NewScoreStore()
	s.PutAll([]model.AnswerScore{score("d", 0, 0.24), score("d", 1, 0.08), score("e", 0, 1)})
	require.NoError(t, persistence.Save(path, s))

	loaded := NewScoreStore()
	require.NoError(t, persistence.Load(path, loaded))
	assert.Equal(t, s.Scores, loaded.Scores)
}

func TestReferenceStore(t *testing.T) {
	s := NewReferenceStore()
	s.Put("sky", ngram.NewSet(ngram.Build(tokenizer.Tokenize("the sky is blue"), 3)...))

	set, err := s.Get("sky")
	require.NoError(t, err)
	assert.True(t, set.Contains(ngram.NGram{Tokens: tokenizer.Tokenize("Sky Is")}))

	_, err = s.Get("grass")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrDocumentNotFound))
}

func TestReferenceStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gold.mp")
	s := NewReferenceStore()
	s.Put("b", ngram.NewSet(ngram.Build(tokenizer.Tokenize("Booth shot Lincoln"), 3)...))
	s.Put("a", ngram.NewSet(ngram.Build(tokenizer.Tokenize("The sky is blue"), 3)...))
	require.NoError(t, persistence.Save(path, s))

	loaded := NewReferenceStore()
	require.NoError(t, persistence.Load(path, loaded))

	assert.Equal(t, []string{"a", "b"}, loaded.DocumentIDs())
	for _, id := range loaded.DocumentIDs() {
		want, err := s.Get(id)
		require.NoError(t, err)
		got, err := loaded.Get(id)
		require.NoError(t, err)
		assert.Equal(t, want.Keys(), got.Keys())
		assert.Equal(t, want.CountOrder(3), got.CountOrder(3))
	}
}
