package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/reggap/reggap/internal/model"
)

// AnalysisStore is the typed view the pipeline uses: it serializes
// DocumentAnalysis values into whatever Cache backs it.
type AnalysisStore struct {
	cache Cache
	ttl   time.Duration
}

func NewAnalysisStore(c Cache, ttl time.Duration) *AnalysisStore {
	return &AnalysisStore{cache: c, ttl: ttl}
}

// Load returns the cached analysis for doc under cfg, if present and
// still decodable. A corrupt entry reads as a miss.
func (s *AnalysisStore) Load(doc *model.NormalizedDocument, cfg *model.Config) (*model.DocumentAnalysis, bool) {
	data, found := s.cache.Get(Key(doc, cfg))
	if !found {
		return nil, false
	}
	var analysis model.DocumentAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, false
	}
	return &analysis, true
}

// Save stores the analysis keyed by document content and config.
func (s *AnalysisStore) Save(doc *model.NormalizedDocument, cfg *model.Config, analysis *model.DocumentAnalysis) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	return s.cache.Set(Key(doc, cfg), data, s.ttl)
}
