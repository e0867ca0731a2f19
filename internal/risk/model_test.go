package risk

import (
	"testing"

	"github.com/reggap/reggap/internal/model"
)

func riskModel() *Model {
	return New(model.DefaultConfig().Risk)
}

func TestSeverityByType(t *testing.T) {
	cases := []struct {
		typ  model.ClauseType
		text string
		want model.Severity
	}{
		{model.ClauseProhibition, "The firm shall not trade ahead of client orders.", model.SeverityHigh},
		{model.ClauseObligation, "The firm shall maintain records.", model.SeverityMedium},
		{model.ClausePermission, "The firm may outsource record keeping.", model.SeverityLow},
		{model.ClauseUnclassified, "Records pertain to chapter 4.", model.SeverityMedium},
	}
	m := riskModel()
	for _, tc := range cases {
		got := m.Assess(model.Clause{ID: "x", Type: tc.typ, Text: tc.text}, model.AmbiguityScore{}, Linked{})
		if got.Severity != tc.want {
			t.Errorf("severity for %s = %s, want %s", tc.typ, got.Severity, tc.want)
		}
	}
}

func TestPenaltyTermsEscalate(t *testing.T) {
	m := riskModel()
	got := m.Assess(model.Clause{
		ID:   "x",
		Type: model.ClauseProhibition,
		Text: "Violations are subject to criminal penalty and license revocation.",
	}, model.AmbiguityScore{}, Linked{})
	if got.Severity != model.SeverityCritical {
		t.Fatalf("Severity = %s, want %s", got.Severity, model.SeverityCritical)
	}
	if len(got.Factors) == 0 {
		t.Fatal("Factors must record the escalation")
	}
}

func TestIntervalBracketsPoint(t *testing.T) {
	m := riskModel()
	for _, conf := range []float64{0, 0.5, 1} {
		got := m.Assess(model.Clause{ID: "x", Type: model.ClauseObligation, Confidence: conf},
			model.AmbiguityScore{Score: 0.4}, Linked{})
		iv := got.Interval
		if iv.Lo > got.RiskScore || got.RiskScore > iv.Hi {
			t.Errorf("conf %v: interval [%v, %v] does not bracket %v", conf, iv.Lo, iv.Hi, got.RiskScore)
		}
		if iv.Lo < 0 || iv.Hi > 1 {
			t.Errorf("conf %v: interval [%v, %v] out of [0,1]", conf, iv.Lo, iv.Hi)
		}
	}
}

func TestIntervalWidensAsConfidenceDrops(t *testing.T) {
	m := riskModel()
	hi := m.Assess(model.Clause{ID: "x", Type: model.ClauseObligation, Confidence: 1},
		model.AmbiguityScore{Score: 0.3}, Linked{})
	lo := m.Assess(model.Clause{ID: "x", Type: model.ClauseObligation, Confidence: 0},
		model.AmbiguityScore{Score: 0.3}, Linked{})
	if lo.Interval.Width() <= hi.Interval.Width() {
		t.Errorf("width at confidence 0 (%v) should exceed width at confidence 1 (%v)",
			lo.Interval.Width(), hi.Interval.Width())
	}
}

func TestIntervalSkewsUpward(t *testing.T) {
	got := riskModel().Assess(model.Clause{ID: "x", Type: model.ClauseObligation, Confidence: 0.5},
		model.AmbiguityScore{Score: 0.3}, Linked{})
	up := got.Interval.Hi - got.RiskScore
	down := got.RiskScore - got.Interval.Lo
	if up <= down {
		t.Errorf("upward slack %v should exceed downward slack %v", up, down)
	}
}

// A shaky alignment is itself a low-confidence extraction; the bounds
// must widen with it and collapse back when the comparator is sure.
func TestIntervalWidensWithLowComparatorConfidence(t *testing.T) {
	m := riskModel()
	cl := model.Clause{ID: "x", Type: model.ClauseObligation, Confidence: 1}
	amb := model.AmbiguityScore{Score: 0.3}

	sure := m.Assess(cl, amb, Linked{Relation: model.RelationStricter, Confidence: 1})
	shaky := m.Assess(cl, amb, Linked{Relation: model.RelationStricter, Confidence: 0.2})
	if shaky.Interval.Width() <= sure.Interval.Width() {
		t.Errorf("width at comparator confidence 0.2 (%v) should exceed width at 1 (%v)",
			shaky.Interval.Width(), sure.Interval.Width())
	}

	standalone := m.Assess(cl, amb, Linked{})
	if diff := sure.Interval.Width() - standalone.Interval.Width(); diff > 1e-9 || diff < -1e-9 {
		t.Errorf("a fully confident alignment must not widen the standalone interval: %v vs %v",
			sure.Interval.Width(), standalone.Interval.Width())
	}
}

func TestDivergencePenalty(t *testing.T) {
	m := riskModel()
	plain := m.Assess(model.Clause{ID: "x", Type: model.ClauseObligation}, model.AmbiguityScore{}, Linked{})
	diverged := m.Assess(model.Clause{ID: "x", Type: model.ClauseObligation}, model.AmbiguityScore{}, Linked{Relation: model.RelationConflicting, Confidence: 1})
	if diverged.RiskScore <= plain.RiskScore {
		t.Errorf("conflicting counterpart should raise risk: %v vs %v", diverged.RiskScore, plain.RiskScore)
	}
}

// A conflicting counterpart forces review under any threshold; the
// flag cannot be configured away.
func TestNeedsLegalReview(t *testing.T) {
	for _, threshold := range []float64{0.1, 0.6, 0.99} {
		if !NeedsLegalReview(model.ClauseObligation, 0, model.RelationConflicting, threshold) {
			t.Errorf("threshold %v: conflicting relation must force review", threshold)
		}
	}
	if !NeedsLegalReview(model.ClauseUnclassified, 0, "", 0.6) {
		t.Error("unclassified clause must force review")
	}
	if NeedsLegalReview(model.ClauseObligation, 0.59, "", 0.6) {
		t.Error("ambiguity below threshold with clean relation should not force review")
	}
	if !NeedsLegalReview(model.ClauseObligation, 0.60, "", 0.6) {
		t.Error("ambiguity at threshold must force review")
	}
}
