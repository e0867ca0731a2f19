package classify

import (
	"testing"

	"github.com/reggap/reggap/internal/model"
	"github.com/reggap/reggap/internal/segment"
)

func seg(text string) segment.Segment {
	return segment.Segment{Index: 0, Span: model.Span{Start: 0, End: len(text)}, Text: text}
}

func TestClassifyTypes(t *testing.T) {
	cases := []struct {
		text string
		want model.ClauseType
	}{
		{"The registrant shall file Form X within 10 days.", model.ClauseObligation},
		{"The issuer shall not offer securities without a prospectus.", model.ClauseProhibition},
		{"No person shall act as a broker without registration.", model.ClauseProhibition},
		{"The Commission may grant reasonable extensions as appropriate.", model.ClausePermission},
		{"If the filing is late, the applicant notifies the authority.", model.ClauseCondition},
		{"Records are retained in accordance with schedule A.", model.ClauseUnclassified},
	}
	c := New()
	for _, tc := range cases {
		got := c.Classify("doc", seg(tc.text))
		if got.Type != tc.want {
			t.Errorf("Classify(%q).Type = %s, want %s", tc.text, got.Type, tc.want)
		}
	}
}

func TestProhibitionBeatsObligation(t *testing.T) {
	// "shall not" also contains "shall"; the prohibition rule must win.
	got := New().Classify("doc", seg("The firm shall not commingle client funds."))
	if got.Type != model.ClauseProhibition {
		t.Fatalf("Type = %s, want %s", got.Type, model.ClauseProhibition)
	}
	if got.Trigger != "shall not" {
		t.Errorf("Trigger = %q, want %q", got.Trigger, "shall not")
	}
}

func TestSlotExtraction(t *testing.T) {
	got := New().Classify("sec", seg("The registrant shall file Form X within 10 days."))
	if got.Subject != "the registrant" {
		t.Errorf("Subject = %q, want %q", got.Subject, "the registrant")
	}
	if got.Action != "file form" {
		t.Errorf("Action = %q, want %q", got.Action, "file form")
	}
	if got.Deadline != "10 days" {
		t.Errorf("Deadline = %q, want %q", got.Deadline, "10 days")
	}
	if got.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", got.Confidence)
	}
	if got.ID != "sec-c001" {
		t.Errorf("ID = %q, want %q", got.ID, "sec-c001")
	}
}

func TestConditionsOrdered(t *testing.T) {
	got := New().Classify("doc", seg("The bank shall report the breach if customer data is exposed, unless the exposure was encrypted."))
	if len(got.Conditions) != 2 {
		t.Fatalf("len(Conditions) = %d, want 2", len(got.Conditions))
	}
	if got.Conditions[0].Trigger != "if" || got.Conditions[1].Trigger != "unless" {
		t.Errorf("Conditions triggers = %q, %q; want if, unless", got.Conditions[0].Trigger, got.Conditions[1].Trigger)
	}
}

func TestUnclassifiedRetained(t *testing.T) {
	plain := New().Classify("doc", seg("Annual reports were published last year."))
	if plain.Type != model.ClauseUnclassified {
		t.Fatalf("Type = %s, want %s", plain.Type, model.ClauseUnclassified)
	}
	if plain.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", plain.Confidence)
	}
	if len(plain.Warnings) == 0 {
		t.Error("expected an extraction warning on unclassified clause")
	}
}

func TestPartialExtractionConfidence(t *testing.T) {
	// A recognizable modal but no leading known subject phrase.
	got := New().Classify("doc", seg("Quarterly statements shall be delivered to holders."))
	if got.Type != model.ClauseObligation {
		t.Fatalf("Type = %s, want %s", got.Type, model.ClauseObligation)
	}
	if got.Confidence >= 1.0 {
		t.Errorf("Confidence = %v, want < 1.0 with missing subject", got.Confidence)
	}
}
