package model

// Relation classifies how an aligned clause pair diverges across
// jurisdictions.
type Relation string

const (
	RelationStricter    Relation = "stricter"
	RelationLooser      Relation = "looser"
	RelationAmbiguous   Relation = "ambiguous"
	RelationConflicting Relation = "conflicting"
	RelationUnmatched   Relation = "unmatched"
)

// ComparisonResult is the outcome of aligning one clause from document
// A against document B. Relation is Unmatched iff exactly one side is
// empty (no candidate cleared the alignment threshold).
type ComparisonResult struct {
	ClauseA    string   `json:"clause_a"`
	ClauseB    string   `json:"clause_b,omitempty"` // empty when unmatched
	Relation   Relation `json:"relation"`
	Similarity float64  `json:"similarity"`
	Rationale  []string `json:"rationale"` // ordered contributing factors
	Confidence float64  `json:"confidence"`
}

// Matched reports whether both sides of the comparison are present.
func (c ComparisonResult) Matched() bool { return c.ClauseA != "" && c.ClauseB != "" }

// Inverse returns the same comparison as seen from the other document's
// order: Stricter and Looser swap, everything else is symmetric.
func (c ComparisonResult) Inverse() ComparisonResult {
	inv := c
	inv.ClauseA, inv.ClauseB = c.ClauseB, c.ClauseA
	switch c.Relation {
	case RelationStricter:
		inv.Relation = RelationLooser
	case RelationLooser:
		inv.Relation = RelationStricter
	}
	return inv
}
