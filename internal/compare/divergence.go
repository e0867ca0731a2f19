package compare

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/reggap/reggap/internal/model"
)

// classifyPair labels an aligned pair. Evidence is consulted in a
// fixed order: modality contradiction, extraction quality, deadlines,
// then strictness vocabulary. Every relation except Ambiguous carries
// the rationale line that decided it, and swapping the arguments
// yields the Inverse result.
func (c *Comparator) classifyPair(a, b model.Clause, sim float64) model.ComparisonResult {
	r := model.ComparisonResult{
		ClauseA:    a.ID,
		ClauseB:    b.ID,
		Similarity: sim,
		Confidence: (a.Confidence + b.Confidence) / 2,
	}

	if contradicts(a.Type, b.Type) {
		r.Relation = model.RelationConflicting
		r.Rationale = append(r.Rationale, fmt.Sprintf("modality conflict: %s vs %s", a.Type, b.Type))
		return r
	}

	if thin(a) || thin(b) {
		r.Relation = model.RelationAmbiguous
		r.Rationale = append(r.Rationale, "aligned on weak extraction evidence; strictness not ordered")
		return r
	}

	if rel, why, ok := compareDeadlines(a, b); ok {
		r.Relation = rel
		r.Rationale = append(r.Rationale, why)
		return r
	}

	scoreA := c.strictness(a.Text)
	scoreB := c.strictness(b.Text)
	switch {
	case scoreA > scoreB:
		r.Relation = model.RelationStricter
		r.Rationale = append(r.Rationale, fmt.Sprintf("strictness vocabulary %d vs %d", scoreA, scoreB))
	case scoreA < scoreB:
		r.Relation = model.RelationLooser
		r.Rationale = append(r.Rationale, fmt.Sprintf("strictness vocabulary %d vs %d", scoreA, scoreB))
	default:
		r.Relation = model.RelationAmbiguous
		r.Rationale = append(r.Rationale, "no ordering evidence; treated as ambiguous divergence")
	}
	return r
}

// contradicts reports whether the two modalities cannot both hold for
// the same conduct.
func contradicts(a, b model.ClauseType) bool {
	if a == model.ClauseProhibition {
		return b == model.ClausePermission || b == model.ClauseObligation
	}
	if b == model.ClauseProhibition {
		return a == model.ClausePermission || a == model.ClauseObligation
	}
	return false
}

// thin means extraction produced neither subject nor action, so the
// alignment rests on raw text overlap alone.
func thin(cl model.Clause) bool {
	return cl.Subject == "" && cl.Action == ""
}

var deadlineNum = regexp.MustCompile(`(\d+)\s*(?:business\s+|calendar\s+)?(hour|day|month|year)s?`)

// deadlineHours converts a textual deadline to hours for comparison.
// Business and calendar qualifiers are ignored; a coarse unit scale is
// enough to order "10 days" against "30 days" or "3 months".
func deadlineHours(s string) (int, bool) {
	m := deadlineNum.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "hour":
		return n, true
	case "day":
		return n * 24, true
	case "month":
		return n * 24 * 30, true
	case "year":
		return n * 24 * 365, true
	}
	return 0, false
}

// compareDeadlines orders two clauses by deadline when both carry a
// comparable one, or when only one binding clause has any deadline at
// all. The side with the tighter deadline is the stricter side.
func compareDeadlines(a, b model.Clause) (model.Relation, string, bool) {
	ha, okA := deadlineHours(a.Deadline)
	hb, okB := deadlineHours(b.Deadline)
	switch {
	case okA && okB:
		if ha < hb {
			return model.RelationStricter, fmt.Sprintf("deadline %q is tighter than %q", a.Deadline, b.Deadline), true
		}
		if ha > hb {
			return model.RelationLooser, fmt.Sprintf("deadline %q is looser than %q", a.Deadline, b.Deadline), true
		}
		return "", "", false
	case okA && binding(b.Type):
		return model.RelationStricter, fmt.Sprintf("deadline %q vs none", a.Deadline), true
	case okB && binding(a.Type):
		return model.RelationLooser, fmt.Sprintf("no deadline vs %q", b.Deadline), true
	}
	return "", "", false
}

func binding(t model.ClauseType) bool {
	return t == model.ClauseObligation || t == model.ClauseProhibition
}

// strictness is the net count of strict indicators over loose ones.
func (c *Comparator) strictness(text string) int {
	score := 0
	for _, re := range c.strictRe {
		score += len(re.FindAllStringIndex(text, -1))
	}
	for _, re := range c.looseRe {
		score -= len(re.FindAllStringIndex(text, -1))
	}
	return score
}
