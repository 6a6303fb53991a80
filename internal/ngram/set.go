package ngram

import (
	"sort"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Set is a reference set of n-grams with case-insensitive, order-sensitive membership.
// A Set is not safe for concurrent mutation; once built it may be read concurrently.
type Set struct {
	keys    map[string]struct{}
	byOrder map[int]int
}

// NewSet creates a set holding the given n-grams.
func NewSet(grams ...NGram) *Set {
	s := &Set{
		keys:    make(map[string]struct{}),
		byOrder: make(map[int]int),
	}
	s.AddAll(grams)
	return s
}

// Add inserts g. Empty n-grams are ignored.
func (s *Set) Add(g NGram) {
	if g.Len() == 0 {
		return
	}
	s.addKey(g.Key(), g.Len())
}

// AddAll inserts every n-gram of grams.
func (s *Set) AddAll(grams []NGram) {
	for _, g := range grams {
		s.Add(g)
	}
}

func (s *Set) addKey(key string, order int) {
	if _, exists := s.keys[key]; exists {
		return
	}
	s.keys[key] = struct{}{}
	s.byOrder[order]++
}

// Contains reports whether some member has the same length as g and equal folded tokens.
func (s *Set) Contains(g NGram) bool {
	if s == nil || g.Len() == 0 {
		return false
	}
	_, ok := s.keys[g.Key()]
	return ok
}

// Len returns the number of distinct n-grams in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// CountOrder returns the number of distinct members of length n.
func (s *Set) CountOrder(n int) int {
	if s == nil {
		return 0
	}
	return s.byOrder[n]
}

// Union returns a new set holding the members of s and other.
func (s *Set) Union(other *Set) *Set {
	out := NewSet()
	for _, src := range []*Set{s, other} {
		if src == nil {
			continue
		}
		for key := range src.keys {
			out.addKey(key, keyOrder(key))
		}
	}
	return out
}

// Keys returns the sorted match keys of the set, with tokens separated by a single space.
func (s *Set) Keys() []string {
	if s == nil {
		return []string{}
	}
	keys := make([]string, 0, len(s.keys))
	for key := range s.keys {
		keys = append(keys, strings.ReplaceAll(key, keySeparator, " "))
	}
	sort.Strings(keys)
	return keys
}

func keyOrder(key string) int {
	return strings.Count(key, keySeparator) + 1
}

// EncodeMsgpack implements msgpack.CustomEncoder. Only the raw keys are stored.
func (s *Set) EncodeMsgpack(enc *msgpack.Encoder) error {
	keys := make([]string, 0, len(s.keys))
	for key := range s.keys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return enc.Encode(keys)
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (s *Set) DecodeMsgpack(dec *msgpack.Decoder) error {
	var keys []string
	if err := dec.Decode(&keys); err != nil {
		return err
	}
	s.keys = make(map[string]struct{}, len(keys))
	s.byOrder = make(map[int]int)
	for _, key := range keys {
		if key == "" {
			continue
		}
		s.addKey(key, keyOrder(key))
	}
	return nil
}
