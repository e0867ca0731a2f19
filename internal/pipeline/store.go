package pipeline

import (
	"sort"

	"github.com/reggap/reggap/internal/model"
)

// Store is an immutable collection of analyzed documents. Build it
// once with NewStore; reporting reads from it concurrently without
// locks.
type Store struct {
	byID  map[string]*model.DocumentAnalysis
	order []string
}

// NewStore indexes analyses by document id. Order is preserved from
// the input slice after a stable sort by id, so two stores built from
// the same set iterate identically.
func NewStore(analyses []*model.DocumentAnalysis) *Store {
	s := &Store{byID: make(map[string]*model.DocumentAnalysis, len(analyses))}
	for _, a := range analyses {
		if a == nil {
			continue
		}
		if _, dup := s.byID[a.DocID]; dup {
			continue
		}
		s.byID[a.DocID] = a
		s.order = append(s.order, a.DocID)
	}
	sort.Strings(s.order)
	return s
}

// Get returns the analysis for a document id, or nil.
func (s *Store) Get(docID string) *model.DocumentAnalysis {
	return s.byID[docID]
}

// IDs returns document ids in sorted order.
func (s *Store) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Pairs enumerates every unordered document pair once, in sorted-id
// order. For n documents this is n(n-1)/2 pairs.
func (s *Store) Pairs() [][2]string {
	var pairs [][2]string
	for i := 0; i < len(s.order); i++ {
		for j := i + 1; j < len(s.order); j++ {
			pairs = append(pairs, [2]string{s.order[i], s.order[j]})
		}
	}
	return pairs
}

// Len returns the number of stored analyses.
func (s *Store) Len() int { return len(s.byID) }
