package cache

import (
	"testing"
	"time"

	"github.com/reggap/reggap/internal/model"
)

func TestKeyChangesWithConfig(t *testing.T) {
	doc := &model.NormalizedDocument{ID: "d1", Jurisdiction: "us", Text: "The firm shall register."}
	base := model.DefaultConfig()
	tuned := model.DefaultConfig()
	tuned.Risk.ReviewThreshold = 0.5

	k1 := Key(doc, base)
	k2 := Key(doc, tuned)
	if k1 == k2 {
		t.Error("key must change when config changes")
	}
	if k1 != Key(doc, model.DefaultConfig()) {
		t.Error("key must be stable for identical inputs")
	}
}

// Operational settings never change what the pipeline produces for a
// document; toggling them must not evict cached analyses.
func TestKeyIgnoresOperationalConfig(t *testing.T) {
	doc := &model.NormalizedDocument{ID: "d1", Jurisdiction: "us", Text: "The firm shall register."}
	base := model.DefaultConfig()
	tuned := model.DefaultConfig()
	tuned.Concurrency.Workers = 64
	tuned.Output.Verbose = true
	tuned.Cache.Dir = "/tmp/elsewhere"

	if Key(doc, base) != Key(doc, tuned) {
		t.Error("key must not depend on concurrency, output, or cache settings")
	}
}

func TestKeyChangesWithText(t *testing.T) {
	cfg := model.DefaultConfig()
	a := &model.NormalizedDocument{ID: "d1", Text: "The firm shall register."}
	b := &model.NormalizedDocument{ID: "d1", Text: "The firm may register."}
	if Key(a, cfg) == Key(b, cfg) {
		t.Error("key must change when text changes")
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	got, found := c.Get("k")
	if !found || string(got) != "v" {
		t.Fatalf("Get = (%q, %v), want (v, true)", got, found)
	}
	if err := c.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("deleted key still present")
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	if err := c.Set("k", []byte("v"), -time.Second); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expired entry still readable")
	}
}

func TestAnalysisStoreRoundTrip(t *testing.T) {
	cfg := model.DefaultConfig()
	doc := &model.NormalizedDocument{ID: "d1", Jurisdiction: "us", Text: "The firm shall register."}
	analysis := &model.DocumentAnalysis{
		DocID:        "d1",
		Jurisdiction: "us",
		Clauses:      []model.Clause{{ID: "d1-c001", Type: model.ClauseObligation}},
	}

	store := NewAnalysisStore(NewLayeredCache(time.Minute, t.TempDir(), time.Hour), time.Hour)
	if _, found := store.Load(doc, cfg); found {
		t.Fatal("unexpected hit before save")
	}
	if err := store.Save(doc, cfg, analysis); err != nil {
		t.Fatal(err)
	}
	got, found := store.Load(doc, cfg)
	if !found {
		t.Fatal("expected hit after save")
	}
	if got.Clauses[0].ID != "d1-c001" {
		t.Errorf("round trip lost clause id: %+v", got.Clauses)
	}
}
