package model

// SectionMarker marks where a numbered section begins in the
// normalized text. Supplied by the ingestion side; the engine never
// re-derives structure from raw text.
type SectionMarker struct {
	Path  string `json:"path"`  // e.g. "2.1", "12(a)(3)"
	Start int    `json:"start"` // byte offset in the normalized text
}

// NormalizedDocument is the engine's input contract: plain text with
// format-specific artifacts already stripped, plus metadata.
type NormalizedDocument struct {
	ID           string          `json:"id"`
	Jurisdiction string          `json:"jurisdiction"`
	Text         string          `json:"text"`
	Sections     []SectionMarker `json:"sections,omitempty"`
}

// DocumentStats summarizes one analyzed document.
type DocumentStats struct {
	WordCount         int `json:"word_count"`
	ClauseCount       int `json:"clause_count"`
	ObligationCount   int `json:"obligation_count"`
	ProhibitionCount  int `json:"prohibition_count"`
	PermissionCount   int `json:"permission_count"`
	ConditionCount    int `json:"condition_count"`
	UnclassifiedCount int `json:"unclassified_count"`
	DefinitionCount   int `json:"definition_count"`
	SectionCount      int `json:"section_count"`
}
