// Package reports renders analysis output for humans. Everything here
// is a pure function of engine output; no report re-reads source text
// or re-derives a score.
package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reggap/reggap/internal/model"
)

// RenderDocument writes a markdown summary for one analyzed document.
func RenderDocument(a *model.DocumentAnalysis, includeFooter bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Analysis: %s (%s)\n\n", a.DocID, a.Jurisdiction)
	fmt.Fprintf(&b, "- Words: %d\n", a.Stats.WordCount)
	fmt.Fprintf(&b, "- Clauses: %d (obligations %d, prohibitions %d, permissions %d, conditions %d, unclassified %d)\n",
		a.Stats.ClauseCount, a.Stats.ObligationCount, a.Stats.ProhibitionCount,
		a.Stats.PermissionCount, a.Stats.ConditionCount, a.Stats.UnclassifiedCount)
	fmt.Fprintf(&b, "- Definitions: %d, sections: %d\n\n", a.Stats.DefinitionCount, a.Stats.SectionCount)

	if len(a.Definitions) > 0 {
		b.WriteString("## Defined terms\n\n")
		for _, d := range a.Definitions {
			status := ""
			if !d.Active() {
				status = fmt.Sprintf(" (superseded by %s)", d.SupersededBy)
			}
			fmt.Fprintf(&b, "- %q (%s, %s)%s\n", d.Term, d.Scope, d.ClauseID, status)
		}
		b.WriteString("\n")
	}

	if len(a.Undefined) > 0 {
		b.WriteString("## Undefined terms\n\n")
		for _, u := range a.Undefined {
			fmt.Fprintf(&b, "- %q used in %s with no definition in scope\n", u.Term, u.ClauseID)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Clauses requiring legal review\n\n")
	var flagged int
	for _, r := range a.Risks {
		if !r.NeedsLegalReview {
			continue
		}
		flagged++
		cl := a.ClauseByID(r.ClauseID)
		text := ""
		if cl != nil {
			text = excerpt(cl.Text, 90)
		}
		fmt.Fprintf(&b, "- %s [%s, risk %.2f, ambiguity %.2f]: %s\n",
			r.ClauseID, r.Severity, r.RiskScore, r.AmbiguityScore, text)
	}
	if flagged == 0 {
		b.WriteString("None.\n")
	}
	b.WriteString("\n")

	b.WriteString(AmbiguityRanking(a, 10))

	if includeFooter {
		b.WriteString("\n---\nHeuristic output. Not legal advice; divergences require counsel review.\n")
	}
	return b.String()
}

// RenderPair writes a markdown summary of a two-document comparison.
func RenderPair(p *model.PairComparison, store analysisLookup, includeFooter bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Gap analysis: %s (%s) vs %s (%s)\n\n",
		p.DocA, p.JurisdictionA, p.DocB, p.JurisdictionB)

	counts := map[model.Relation]int{}
	for _, r := range p.Results {
		counts[r.Relation]++
	}
	b.WriteString("## Relation summary\n\n")
	for _, rel := range []model.Relation{
		model.RelationStricter, model.RelationLooser, model.RelationConflicting,
		model.RelationAmbiguous, model.RelationUnmatched,
	} {
		fmt.Fprintf(&b, "- %s: %d\n", rel, counts[rel])
	}
	b.WriteString("\n## Divergences\n\n")

	var printed int
	for _, r := range p.Results {
		if r.Relation == model.RelationUnmatched {
			continue
		}
		printed++
		fmt.Fprintf(&b, "### %s vs %s: %s (similarity %.2f)\n\n", r.ClauseA, r.ClauseB, r.Relation, r.Similarity)
		writeClauseLine(&b, store, p.DocA, r.ClauseA)
		writeClauseLine(&b, store, p.DocB, r.ClauseB)
		for _, why := range r.Rationale {
			fmt.Fprintf(&b, "- %s\n", why)
		}
		b.WriteString("\n")
	}
	if printed == 0 {
		b.WriteString("No aligned clause pairs.\n\n")
	}

	b.WriteString("## Unmatched clauses\n\n")
	var unmatched int
	for _, r := range p.Results {
		if r.Relation != model.RelationUnmatched {
			continue
		}
		unmatched++
		doc, id := p.DocA, r.ClauseA
		if id == "" {
			doc, id = p.DocB, r.ClauseB
		}
		fmt.Fprintf(&b, "- %s (%s)\n", id, doc)
	}
	if unmatched == 0 {
		b.WriteString("None.\n")
	}

	if includeFooter {
		b.WriteString("\n---\nHeuristic output. Not legal advice; divergences require counsel review.\n")
	}
	return b.String()
}

// analysisLookup is the slice of Store the renderer needs: clause text
// by document and id. A nil lookup renders ids only.
type analysisLookup interface {
	Get(docID string) *model.DocumentAnalysis
}

func writeClauseLine(b *strings.Builder, store analysisLookup, docID, clauseID string) {
	if store == nil || clauseID == "" {
		return
	}
	a := store.Get(docID)
	if a == nil {
		return
	}
	if cl := a.ClauseByID(clauseID); cl != nil {
		fmt.Fprintf(b, "> %s: %s\n", clauseID, excerpt(cl.Text, 120))
	}
}

// AmbiguityRanking lists the top-n most ambiguous clauses with their
// contributing signals.
func AmbiguityRanking(a *model.DocumentAnalysis, n int) string {
	ranked := make([]model.AmbiguityScore, len(a.Ambiguity))
	copy(ranked, a.Ambiguity)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ClauseID < ranked[j].ClauseID
	})

	var b strings.Builder
	b.WriteString("## Ambiguity ranking\n\n")
	var printed int
	for _, s := range ranked {
		if s.Score == 0 || printed == n {
			break
		}
		printed++
		fmt.Fprintf(&b, "%d. %s (%.2f)\n", printed, s.ClauseID, s.Score)
		for _, sig := range s.Signals {
			fmt.Fprintf(&b, "   - %s x%d: %s (+%.2f)\n", sig.Kind, sig.Count, sig.Detail, sig.Contribution)
		}
	}
	if printed == 0 {
		b.WriteString("No ambiguous clauses.\n")
	}
	return b.String()
}

func excerpt(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
