// Package definitions builds the defined-term table for a document and
// resolves term references against it. A term defined twice in the
// same scope is superseded by the later definition rather than
// rejected, matching how amended regulations layer on top of older
// text.
package definitions

import (
	"regexp"
	"sort"
	"strings"

	"github.com/reggap/reggap/internal/model"
)

var definitionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"([^"]+)"\s+(?:shall\s+mean|means)\s+([^.;]+)`),
	regexp.MustCompile(`"([^"]+)"\s+refers\s+to\s+([^.;]+)`),
	regexp.MustCompile(`"([^"]+)"\s+is\s+defined\s+as\s+([^.;]+)`),
	regexp.MustCompile(`(?i)the\s+term\s+"([^"]+)"\s+(?:shall\s+mean|means|includes|refers\s+to)\s+([^.;]+)`),
}

var quotedTerm = regexp.MustCompile(`"([^"]+)"`)

// Table holds the extracted definitions of a single document and the
// references and gaps found while resolving clauses against it.
type Table struct {
	Definitions []model.Definition
	References  []model.Reference
	Undefined   []model.UndefinedTerm
}

// Extract scans clauses in document order. Definitions found in a
// section whose path mentions "definition" apply document-wide;
// everywhere else they are scoped to the section they appear in.
func Extract(clauses []model.Clause) *Table {
	t := &Table{}
	for _, cl := range clauses {
		// Patterns overlap ("the term X means" also matches the bare
		// "X means" form), so each term is recorded once per clause.
		seen := map[string]bool{}
		for _, p := range definitionPatterns {
			for _, m := range p.FindAllStringSubmatch(cl.Text, -1) {
				term := normalizeTerm(m[1])
				if seen[term] {
					continue
				}
				seen[term] = true
				def := model.Definition{
					Term:        term,
					Text:        strings.TrimSpace(m[2]),
					ClauseID:    cl.ID,
					Scope:       scopeFor(cl.SectionPath),
					SectionPath: cl.SectionPath,
					Position:    cl.Span.Start,
				}
				t.add(def)
			}
		}
	}
	t.resolve(clauses)
	return t
}

func scopeFor(sectionPath string) model.DefinitionScope {
	if strings.Contains(strings.ToLower(sectionPath), "definition") {
		return model.ScopeDocument
	}
	if sectionPath == "" {
		return model.ScopeDocument
	}
	return model.ScopeSection
}

// add appends def and marks any earlier same-scope definition of the
// same term as superseded.
func (t *Table) add(def model.Definition) {
	for i := range t.Definitions {
		prev := &t.Definitions[i]
		if prev.Term == def.Term && prev.Scope == def.Scope &&
			(def.Scope == model.ScopeDocument || prev.SectionPath == def.SectionPath) &&
			prev.Active() {
			prev.SupersededBy = def.ClauseID
		}
	}
	t.Definitions = append(t.Definitions, def)
}

// Lookup returns the active definition visible from sectionPath,
// preferring a section-scoped definition over a document-wide one.
func (t *Table) Lookup(term, sectionPath string) (model.Definition, bool) {
	term = normalizeTerm(term)
	var docHit, secHit *model.Definition
	for i := range t.Definitions {
		d := &t.Definitions[i]
		if d.Term != term || !d.Active() {
			continue
		}
		switch d.Scope {
		case model.ScopeSection:
			if sectionPath != "" && strings.HasPrefix(sectionPath, d.SectionPath) {
				secHit = d
			}
		case model.ScopeDocument:
			docHit = d
		}
	}
	if secHit != nil {
		return *secHit, true
	}
	if docHit != nil {
		return *docHit, true
	}
	return model.Definition{}, false
}

// resolve records term usage per clause. A quoted usage resolves to a
// Reference or, when nothing defines it, an UndefinedTerm. An unquoted
// whole-word usage of a known term in the extracted subject, action or
// condition text also counts as a Reference; unquoted prose never
// produces an UndefinedTerm, since any plain word would qualify.
func (t *Table) resolve(clauses []model.Clause) {
	defining := make(map[string]bool, len(t.Definitions))
	matchers := make(map[string]*regexp.Regexp, len(t.Definitions))
	for _, d := range t.Definitions {
		defining[d.ClauseID+"\x00"+d.Term] = true
		if _, ok := matchers[d.Term]; !ok {
			matchers[d.Term] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(d.Term) + `\b`)
		}
	}
	for _, cl := range clauses {
		seen := map[string]bool{}
		for _, m := range quotedTerm.FindAllStringSubmatch(cl.Text, -1) {
			term := normalizeTerm(m[1])
			if term == "" || seen[term] || defining[cl.ID+"\x00"+term] {
				continue
			}
			seen[term] = true
			if def, ok := t.Lookup(term, cl.SectionPath); ok {
				t.References = append(t.References, model.Reference{
					ClauseID: cl.ID,
					Term:     term,
					Scope:    def.Scope,
				})
			} else {
				t.Undefined = append(t.Undefined, model.UndefinedTerm{
					ClauseID: cl.ID,
					Term:     term,
				})
			}
		}
		slots := slotText(cl)
		if slots == "" {
			continue
		}
		// Definitions slice order keeps the scan deterministic.
		for _, d := range t.Definitions {
			if seen[d.Term] || defining[cl.ID+"\x00"+d.Term] || !matchers[d.Term].MatchString(slots) {
				continue
			}
			seen[d.Term] = true
			if def, ok := t.Lookup(d.Term, cl.SectionPath); ok {
				t.References = append(t.References, model.Reference{
					ClauseID: cl.ID,
					Term:     d.Term,
					Scope:    def.Scope,
				})
			}
		}
	}
	sort.SliceStable(t.Undefined, func(i, j int) bool {
		if t.Undefined[i].ClauseID != t.Undefined[j].ClauseID {
			return t.Undefined[i].ClauseID < t.Undefined[j].ClauseID
		}
		return t.Undefined[i].Term < t.Undefined[j].Term
	})
}

// UndefinedIn returns the undefined terms recorded for one clause.
func (t *Table) UndefinedIn(clauseID string) []model.UndefinedTerm {
	var out []model.UndefinedTerm
	for _, u := range t.Undefined {
		if u.ClauseID == clauseID {
			out = append(out, u)
		}
	}
	return out
}

// slotText joins the modality slots a clause exposes for term lookup.
func slotText(cl model.Clause) string {
	parts := []string{cl.Subject, cl.Action}
	for _, c := range cl.Conditions {
		parts = append(parts, c.Text)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func normalizeTerm(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
