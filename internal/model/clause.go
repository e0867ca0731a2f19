package model

// ClauseType categorizes the regulatory modality of a clause
type ClauseType string

const (
	ClauseObligation   ClauseType = "obligation"   // shall, must, is required to
	ClauseProhibition  ClauseType = "prohibition"  // shall not, is prohibited
	ClausePermission   ClauseType = "permission"   // may, is permitted to
	ClauseCondition    ClauseType = "condition"    // if, when, unless
	ClauseUnclassified ClauseType = "unclassified" // no rule fired
)

// Span is a half-open byte range [Start, End) into the normalized
// document text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Condition is a conditional sub-structure extracted from a clause,
// kept in the order it appears in the text.
type Condition struct {
	Trigger string `json:"trigger"` // if, when, unless, provided that, subject to
	Text    string `json:"text"`
}

// Clause represents one legally atomic span with its extracted
// modality structure. Clauses are immutable once produced; downstream
// stages reference them by ID only.
type Clause struct {
	ID          string      `json:"id"`
	DocID       string      `json:"doc_id"`
	Span        Span        `json:"span"`
	SectionPath string      `json:"section_path,omitempty"` // e.g. "2.1", "" when no numbering present
	Text        string      `json:"text"`
	Type        ClauseType  `json:"type"`
	Subject     string      `json:"subject,omitempty"`
	Action      string      `json:"action,omitempty"`
	Conditions  []Condition `json:"conditions,omitempty"`
	Deadline    string      `json:"deadline,omitempty"`
	Confidence  float64     `json:"confidence"`         // fraction of modality slots extracted
	Trigger     string      `json:"trigger,omitempty"`  // lexical trigger that fired, e.g. "rule:prohibition:shall not"
	Warnings    []string    `json:"warnings,omitempty"` // extraction warnings, never cause for dropping
}
