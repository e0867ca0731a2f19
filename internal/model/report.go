package model

// DocumentAnalysis is the complete structured output for one document.
// Everything the reporting side needs to build summaries, heatmaps, and
// rankings without re-deriving anything from raw text.
type DocumentAnalysis struct {
	DocID        string           `json:"doc_id"`
	Jurisdiction string           `json:"jurisdiction"`
	Stats        DocumentStats    `json:"stats"`
	Clauses      []Clause         `json:"clauses"`
	Definitions  []Definition     `json:"definitions,omitempty"`
	References   []Reference      `json:"references,omitempty"`
	Undefined    []UndefinedTerm  `json:"undefined_terms,omitempty"`
	Ambiguity    []AmbiguityScore `json:"ambiguity"`
	Risks        []RiskAssessment `json:"risks"`
}

// AmbiguityFor returns the ambiguity score for a clause id, or a zero
// score when the clause is unknown.
func (a *DocumentAnalysis) AmbiguityFor(clauseID string) AmbiguityScore {
	for _, s := range a.Ambiguity {
		if s.ClauseID == clauseID {
			return s
		}
	}
	return AmbiguityScore{ClauseID: clauseID}
}

// ClauseByID returns the clause with the given id, or nil.
func (a *DocumentAnalysis) ClauseByID(id string) *Clause {
	for i := range a.Clauses {
		if a.Clauses[i].ID == id {
			return &a.Clauses[i]
		}
	}
	return nil
}

// PairComparison is the engine output for one jurisdiction pair:
// clause alignments with divergence classification, plus the risk
// assessments re-evaluated with divergence joined in. Results are
// ordered by document order then clause id, so identical inputs render
// byte-identically.
type PairComparison struct {
	DocA          string             `json:"doc_a"`
	DocB          string             `json:"doc_b"`
	JurisdictionA string             `json:"jurisdiction_a"`
	JurisdictionB string             `json:"jurisdiction_b"`
	Results       []ComparisonResult `json:"results"`
	RisksA        []RiskAssessment   `json:"risks_a"`
	RisksB        []RiskAssessment   `json:"risks_b"`
}

// RelationsFor collects the relations of every comparison that
// involves the given clause id, in result order.
func (p *PairComparison) RelationsFor(clauseID string) []Relation {
	var out []Relation
	for _, r := range p.Results {
		if r.ClauseA == clauseID || r.ClauseB == clauseID {
			out = append(out, r.Relation)
		}
	}
	return out
}
