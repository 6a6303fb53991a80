package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/gcbaptista/answer-ranker/internal/errors"
	"github.com/gcbaptista/answer-ranker/internal/ngram"
)

// ReferenceStore keeps one reference n-gram set per document, typically built from gold answers
// in one run and loaded for held-out scoring in a later one.
type ReferenceStore struct {
	Mu   sync.RWMutex
	Sets map[string]*ngram.Set
}

// NewReferenceStore creates an empty ReferenceStore.
func NewReferenceStore() *ReferenceStore {
	return &ReferenceStore{Sets: make(map[string]*ngram.Set)}
}

// Put stores the reference set of a document, replacing any earlier one.
func (s *ReferenceStore) Put(documentID string, set *ngram.Set) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.Sets[documentID] = set
}

// Get returns the reference set of a document.
func (s *ReferenceStore) Get(documentID string) (*ngram.Set, error) {
	s.Mu.RLock()
	defer s.Mu.RUnlock()
	set, ok := s.Sets[documentID]
	if !ok {
		return nil, errors.NewDocumentNotFoundError(documentID)
	}
	return set, nil
}

// Len returns the number of stored documents.
func (s *ReferenceStore) Len() int {
	s.Mu.RLock()
	defer s.Mu.RUnlock()
	return len(s.Sets)
}

// DocumentIDs returns the stored document IDs in sorted order.
func (s *ReferenceStore) DocumentIDs() []string {
	s.Mu.RLock()
	defer s.Mu.RUnlock()
	ids := make([]string, 0, len(s.Sets))
	for id := range s.Sets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EncodeMsgpack implements msgpack.CustomEncoder. The mutex is not encoded.
func (s *ReferenceStore) EncodeMsgpack(enc *msgpack.Encoder) error {
	s.Mu.RLock()
	defer s.Mu.RUnlock()
	if err := enc.Encode(s.Sets); err != nil {
		return fmt.Errorf("failed to msgpack encode reference store: %w", err)
	}
	return nil
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (s *ReferenceStore) DecodeMsgpack(dec *msgpack.Decoder) error {
	var sets map[string]*ngram.Set
	if err := dec.Decode(&sets); err != nil {
		return fmt.Errorf("failed to msgpack decode reference store: %w", err)
	}

	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.Sets = sets
	if s.Sets == nil {
		s.Sets = make(map[string]*ngram.Set)
	}
	return nil
}
