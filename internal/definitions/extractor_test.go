package definitions

import (
	"testing"

	"github.com/reggap/reggap/internal/model"
)

func clause(id, section, text string) model.Clause {
	return model.Clause{ID: id, DocID: "doc", SectionPath: section, Text: text}
}

func TestExtractPatterns(t *testing.T) {
	clauses := []model.Clause{
		clause("doc-c001", "1. Definitions", `"Covered Person" means any director, officer or employee.`),
		clause("doc-c002", "1. Definitions", `The term "Material Event" shall mean an event affecting solvency.`),
		clause("doc-c003", "2", `"Filing Window" refers to the period described in section 4.`),
		clause("doc-c004", "2", `"Net Exposure" is defined as gross exposure less hedges.`),
	}
	tbl := Extract(clauses)
	if len(tbl.Definitions) != 4 {
		t.Fatalf("len(Definitions) = %d, want 4", len(tbl.Definitions))
	}
	want := map[string]model.DefinitionScope{
		"covered person": model.ScopeDocument,
		"material event": model.ScopeDocument,
		"filing window":  model.ScopeSection,
		"net exposure":   model.ScopeSection,
	}
	for _, d := range tbl.Definitions {
		if scope, ok := want[d.Term]; !ok || d.Scope != scope {
			t.Errorf("definition %q scope = %s, want %s", d.Term, d.Scope, scope)
		}
	}
}

func TestSupersede(t *testing.T) {
	clauses := []model.Clause{
		clause("doc-c001", "1. Definitions", `"Business Day" means any weekday.`),
		clause("doc-c005", "1. Definitions", `"Business Day" means any weekday other than a federal holiday.`),
	}
	tbl := Extract(clauses)
	if len(tbl.Definitions) != 2 {
		t.Fatalf("len(Definitions) = %d, want 2", len(tbl.Definitions))
	}
	if tbl.Definitions[0].SupersededBy != "doc-c005" {
		t.Errorf("first definition SupersededBy = %q, want doc-c005", tbl.Definitions[0].SupersededBy)
	}
	if !tbl.Definitions[1].Active() {
		t.Error("later definition should remain active")
	}
	def, ok := tbl.Lookup("business day", "3")
	if !ok {
		t.Fatal("Lookup failed for superseded term")
	}
	if def.ClauseID != "doc-c005" {
		t.Errorf("Lookup resolved to %s, want doc-c005", def.ClauseID)
	}
}

func TestSectionScopeShadowsDocument(t *testing.T) {
	clauses := []model.Clause{
		clause("doc-c001", "1. Definitions", `"Client" means any person receiving advisory services.`),
		clause("doc-c002", "4", `For purposes of this section, "Client" means a retail customer.`),
	}
	tbl := Extract(clauses)
	if def, _ := tbl.Lookup("client", "4"); def.ClauseID != "doc-c002" {
		t.Errorf("Lookup in section 4 = %s, want the section-scoped doc-c002", def.ClauseID)
	}
	if def, _ := tbl.Lookup("client", "7"); def.ClauseID != "doc-c001" {
		t.Errorf("Lookup in section 7 = %s, want the document-scoped doc-c001", def.ClauseID)
	}
}

func TestReferencesAndUndefined(t *testing.T) {
	clauses := []model.Clause{
		clause("doc-c001", "1. Definitions", `"Covered Person" means any director or officer.`),
		clause("doc-c002", "3", `Each "Covered Person" shall disclose any "Conflict of Interest".`),
	}
	tbl := Extract(clauses)
	if len(tbl.References) != 1 || tbl.References[0].Term != "covered person" {
		t.Fatalf("References = %+v, want one reference to covered person", tbl.References)
	}
	und := tbl.UndefinedIn("doc-c002")
	if len(und) != 1 || und[0].Term != "conflict of interest" {
		t.Fatalf("UndefinedIn = %+v, want conflict of interest", und)
	}
}

// A term defined once in quotes is usually used bare afterwards; the
// whole-word slot match still records the Reference, while bare prose
// never produces an undefined-term entry.
func TestUnquotedSlotUsageRecordsReference(t *testing.T) {
	defClause := clause("d-c001", "1. Definitions", `"Covered Person" means any director, officer or employee.`)
	useClause := model.Clause{
		ID:          "d-c002",
		DocID:       "doc",
		SectionPath: "2",
		Text:        "Each covered person shall file an annual disclosure.",
		Subject:     "each covered person",
		Action:      "shall file",
	}
	tbl := Extract([]model.Clause{defClause, useClause})
	if len(tbl.References) != 1 {
		t.Fatalf("References = %+v, want one reference to covered person", tbl.References)
	}
	ref := tbl.References[0]
	if ref.ClauseID != "d-c002" || ref.Term != "covered person" {
		t.Errorf("Reference = %+v, want covered person in d-c002", ref)
	}
	if len(tbl.Undefined) != 0 {
		t.Errorf("Undefined = %+v, want none for unquoted prose", tbl.Undefined)
	}
}

// Whole-word means whole word: "person" must not match inside
// "personnel", and a section-scoped term is invisible outside its
// section.
func TestSlotMatchRespectsBoundariesAndScope(t *testing.T) {
	clauses := []model.Clause{
		clause("d-c001", "1. Definitions", `"Person" means a natural person or entity.`),
		clause("d-c002", "4", `For purposes of this section, "Retention Schedule" means the table in appendix B.`),
		{
			ID: "d-c003", DocID: "doc", SectionPath: "3",
			Text:    "All personnel records follow the retention schedule.",
			Subject: "all personnel",
			Action:  "follow the retention schedule",
		},
	}
	tbl := Extract(clauses)
	for _, ref := range tbl.References {
		if ref.ClauseID == "d-c003" && ref.Term == "person" {
			t.Errorf("References = %+v, person matched inside personnel", tbl.References)
		}
		if ref.ClauseID == "d-c003" && ref.Term == "retention schedule" {
			t.Errorf("References = %+v, section-scoped term leaked into section 3", tbl.References)
		}
	}
}
