package model

// Severity buckets a clause's enforcement exposure
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Interval is a confidence interval around a risk point estimate.
// Invariant: Lo <= point <= Hi, both in [0,1].
type Interval struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Width returns the interval width. Wide intervals signal that the
// contributing extractions were low-confidence.
func (i Interval) Width() float64 { return i.Hi - i.Lo }

// RiskAssessment is the conservative, maximum-plausible-interpretation
// risk estimate for one clause. NeedsLegalReview is derived from the
// other fields and cannot be tuned independently.
type RiskAssessment struct {
	ClauseID         string   `json:"clause_id"`
	Severity         Severity `json:"severity"`
	AmbiguityScore   float64  `json:"ambiguity_score"`
	RiskScore        float64  `json:"risk_score"`
	Interval         Interval `json:"confidence_interval"`
	NeedsLegalReview bool     `json:"needs_legal_review"`
	Factors          []string `json:"factors"` // ordered rationale, one entry per contributing input
}

// AmbiguitySignalKind names an independent ambiguity heuristic
type AmbiguitySignalKind string

const (
	SignalVagueQualifier      AmbiguitySignalKind = "vague_qualifier"
	SignalUndefinedTerm       AmbiguitySignalKind = "undefined_term"
	SignalUnresolvedCondition AmbiguitySignalKind = "unresolved_condition"
	SignalMissingDeadline     AmbiguitySignalKind = "missing_deadline"
)

// AmbiguitySignal is one contributing heuristic in a clause's
// ambiguity score, retained in full for transparency.
type AmbiguitySignal struct {
	Kind         AmbiguitySignalKind `json:"kind"`
	Detail       string              `json:"detail"`
	Count        int                 `json:"count"`
	Weight       float64             `json:"weight"`
	Contribution float64             `json:"contribution"`
}

// AmbiguityScore is the bounded per-clause vagueness score with its
// full signal breakdown.
type AmbiguityScore struct {
	ClauseID string            `json:"clause_id"`
	Score    float64           `json:"score"` // [0,1]
	Signals  []AmbiguitySignal `json:"signals,omitempty"`
}
