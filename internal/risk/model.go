// Package risk turns classified clauses and their ambiguity scores
// into conservative risk assessments. Every numeric input leaves a
// trace in Factors; the point estimate sits inside an interval whose
// width grows as extraction confidence drops, skewed upward because an
// uncertain reading of a regulation is treated as the riskier reading.
package risk

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reggap/reggap/internal/model"
)

type Model struct {
	cfg       model.RiskConfig
	penaltyRe *regexp.Regexp
}

func New(cfg model.RiskConfig) *Model {
	re := regexp.MustCompile(`\b\B`) // matches nothing
	if len(cfg.PenaltyTerms) > 0 {
		quoted := make([]string, len(cfg.PenaltyTerms))
		for i, t := range cfg.PenaltyTerms {
			quoted[i] = regexp.QuoteMeta(strings.ToLower(t))
		}
		re = regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	}
	return &Model{cfg: cfg, penaltyRe: re}
}

// Linked carries what the risk model needs from a clause's aligned
// comparison: the divergence relation and the comparator's confidence
// in it. The zero value means the clause was assessed standalone.
type Linked struct {
	Relation   model.Relation
	Confidence float64
}

// Assess scores one clause, joined with its comparison when one exists.
func (m *Model) Assess(cl model.Clause, amb model.AmbiguityScore, linked Linked) model.RiskAssessment {
	sev, sevWhy := m.severity(cl)
	sevWeight := m.cfg.Severity.For(sev)

	score := sevWeight*m.cfg.SeverityFactor + amb.Score*m.cfg.AmbiguityFactor
	factors := []string{
		sevWhy,
		fmt.Sprintf("severity weight %.2f x factor %.2f", sevWeight, m.cfg.SeverityFactor),
		fmt.Sprintf("ambiguity %.2f x factor %.2f", amb.Score, m.cfg.AmbiguityFactor),
	}
	if linked.Relation == model.RelationAmbiguous || linked.Relation == model.RelationConflicting {
		score += m.cfg.DivergencePenalty
		factors = append(factors, fmt.Sprintf("cross-jurisdiction divergence (%s): +%.2f", linked.Relation, m.cfg.DivergencePenalty))
	}
	score = clip01(score)

	return model.RiskAssessment{
		ClauseID:         cl.ID,
		Severity:         sev,
		AmbiguityScore:   amb.Score,
		RiskScore:        score,
		Interval:         m.interval(score, cl.Confidence, linked),
		NeedsLegalReview: NeedsLegalReview(cl.Type, amb.Score, linked.Relation, m.cfg.ReviewThreshold),
		Factors:          factors,
	}
}

// AssessAll assesses clauses in order, pairing each with its ambiguity
// score and its linked comparison, if any.
func (m *Model) AssessAll(clauses []model.Clause, scores []model.AmbiguityScore, linked map[string]Linked) []model.RiskAssessment {
	byID := make(map[string]model.AmbiguityScore, len(scores))
	for _, s := range scores {
		byID[s.ClauseID] = s
	}
	out := make([]model.RiskAssessment, 0, len(clauses))
	for _, cl := range clauses {
		out = append(out, m.Assess(cl, byID[cl.ID], linked[cl.ID]))
	}
	return out
}

// severity starts from the clause modality and escalates one bucket
// when enforcement vocabulary appears. Unclassified text lands on
// medium, not low: an unreadable clause is not a safe clause.
func (m *Model) severity(cl model.Clause) (model.Severity, string) {
	var base model.Severity
	switch cl.Type {
	case model.ClauseProhibition:
		base = model.SeverityHigh
	case model.ClauseObligation:
		base = model.SeverityMedium
	case model.ClausePermission, model.ClauseCondition:
		base = model.SeverityLow
	default:
		base = model.SeverityMedium
	}
	why := fmt.Sprintf("base severity %s from clause type %s", base, cl.Type)
	if hits := m.penaltyRe.FindAllString(cl.Text, -1); len(hits) > 0 {
		base = escalate(base)
		why = fmt.Sprintf("%s, escalated to %s by enforcement terms (%s)",
			why, base, strings.ToLower(strings.Join(hits, ", ")))
	}
	return base, why
}

func escalate(s model.Severity) model.Severity {
	switch s {
	case model.SeverityLow:
		return model.SeverityMedium
	case model.SeverityMedium:
		return model.SeverityHigh
	default:
		return model.SeverityCritical
	}
}

// interval places the point estimate inside bounds that widen as the
// contributing extractions lose confidence, the comparator's included.
// ConservativeBias shifts more of the width above the point than below
// it.
func (m *Model) interval(score, confidence float64, linked Linked) model.Interval {
	uncertainty := 2 - clip01(confidence)
	if linked.Relation != "" {
		uncertainty += 1 - clip01(linked.Confidence)
	}
	width := m.cfg.BaseUncertainty * uncertainty
	lo := clip01(score - width*(0.5-m.cfg.ConservativeBias*0.5))
	hi := clip01(score + width*(0.5+m.cfg.ConservativeBias*0.5))
	if lo > score {
		lo = score
	}
	if hi < score {
		hi = score
	}
	return model.Interval{Lo: lo, Hi: hi}
}

// NeedsLegalReview is a pure function of its inputs so two assessments
// of the same clause can never disagree about the flag.
func NeedsLegalReview(t model.ClauseType, ambiguity float64, relation model.Relation, threshold float64) bool {
	if ambiguity >= threshold {
		return true
	}
	if relation == model.RelationAmbiguous || relation == model.RelationConflicting {
		return true
	}
	return t == model.ClauseUnclassified
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
