// Package cache stores serialized analysis results so batch reports
// over many documents do not re-run the pipeline for every pair. Keys
// are derived from the normalized text and the engine sections of the
// configuration: changing an analysis weight invalidates every
// affected entry, while operational settings (worker count, output
// rendering) hit the same entry.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/reggap/reggap/internal/model"
)

// Cache is a byte-level store with per-entry TTL.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for one document under one configuration.
// Only the sections that shape a document analysis enter the digest:
// ambiguity and risk tunables. Cache, concurrency and output settings
// never change what the pipeline produces for a document, so they are
// left out.
func Key(doc *model.NormalizedDocument, cfg *model.Config) string {
	h := sha256.New()
	h.Write([]byte(doc.ID))
	h.Write([]byte{0})
	h.Write([]byte(doc.Jurisdiction))
	h.Write([]byte{0})
	h.Write([]byte(doc.Text))
	h.Write([]byte{0})
	engine := struct {
		Ambiguity model.AmbiguityConfig
		Risk      model.RiskConfig
	}{cfg.Ambiguity, cfg.Risk}
	if cfgBytes, err := json.Marshal(engine); err == nil {
		h.Write(cfgBytes)
	}
	return "reggap-v1-" + hex.EncodeToString(h.Sum(nil))
}
