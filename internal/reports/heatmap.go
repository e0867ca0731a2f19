package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reggap/reggap/internal/model"
)

// severityGlyph maps each bucket to one character so a document's risk
// profile reads as a single line.
func severityGlyph(s model.Severity) byte {
	switch s {
	case model.SeverityCritical:
		return '#'
	case model.SeverityHigh:
		return '*'
	case model.SeverityMedium:
		return '+'
	default:
		return '.'
	}
}

// Heatmap renders one line per document: clause severities in document
// order, flagged clauses marked beneath. Terminal-friendly, no color.
func Heatmap(analyses []*model.DocumentAnalysis) string {
	var b strings.Builder
	b.WriteString("Severity heatmap (. low, + medium, * high, # critical, ^ needs review)\n\n")

	width := 0
	for _, a := range analyses {
		if len(a.DocID) > width {
			width = len(a.DocID)
		}
	}

	for _, a := range analyses {
		row := make([]byte, len(a.Risks))
		flags := make([]byte, len(a.Risks))
		for i, r := range a.Risks {
			row[i] = severityGlyph(r.Severity)
			if r.NeedsLegalReview {
				flags[i] = '^'
			} else {
				flags[i] = ' '
			}
		}
		fmt.Fprintf(&b, "%-*s  %s\n", width, a.DocID, row)
		if strings.ContainsRune(string(flags), '^') {
			fmt.Fprintf(&b, "%-*s  %s\n", width, "", strings.TrimRight(string(flags), " "))
		}
	}
	return b.String()
}

// RelationMatrix summarizes many pairwise comparisons as a grid of
// dominant relations, docs sorted by id on both axes.
func RelationMatrix(pairs []*model.PairComparison) string {
	ids := map[string]bool{}
	for _, p := range pairs {
		ids[p.DocA] = true
		ids[p.DocB] = true
	}
	order := make([]string, 0, len(ids))
	for id := range ids {
		order = append(order, id)
	}
	sort.Strings(order)

	cell := map[[2]string]string{}
	for _, p := range pairs {
		rel := dominantRelation(p)
		cell[[2]string{p.DocA, p.DocB}] = string(rel)
		cell[[2]string{p.DocB, p.DocA}] = string(inverse(rel))
	}

	width := 12
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s", width, "")
	for _, id := range order {
		fmt.Fprintf(&b, "%-*s", width, id)
	}
	b.WriteString("\n")
	for _, row := range order {
		fmt.Fprintf(&b, "%-*s", width, row)
		for _, col := range order {
			v := "-"
			if row != col {
				if rel, ok := cell[[2]string{row, col}]; ok {
					v = rel
				}
			}
			fmt.Fprintf(&b, "%-*s", width, v)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// dominantRelation picks the most consequential relation present in a
// pair: conflicts trump strictness ordering, which trumps ambiguity.
func dominantRelation(p *model.PairComparison) model.Relation {
	counts := map[model.Relation]int{}
	for _, r := range p.Results {
		counts[r.Relation]++
	}
	for _, rel := range []model.Relation{
		model.RelationConflicting, model.RelationStricter, model.RelationLooser,
		model.RelationAmbiguous,
	} {
		if counts[rel] > 0 {
			return rel
		}
	}
	return model.RelationUnmatched
}

func inverse(r model.Relation) model.Relation {
	switch r {
	case model.RelationStricter:
		return model.RelationLooser
	case model.RelationLooser:
		return model.RelationStricter
	}
	return r
}
