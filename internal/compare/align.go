// Package compare aligns clauses across two jurisdictions and labels
// each aligned pair with a divergence relation. Alignment is mutual
// best match over a similarity matrix: a pair links only when each
// clause is the other's best candidate, which keeps the result stable
// no matter which document is passed first.
package compare

import (
	"regexp"

	"github.com/reggap/reggap/internal/model"
)

type Comparator struct {
	cfg      model.CompareConfig
	strictRe []*regexp.Regexp
	looseRe  []*regexp.Regexp
}

func New(cfg model.CompareConfig) *Comparator {
	return &Comparator{
		cfg:      cfg,
		strictRe: compileTerms(cfg.StrictIndicators),
		looseRe:  compileTerms(cfg.LooseIndicators),
	}
}

// compileTerms builds word-bounded matchers so "all" never counts
// inside "shall".
func compileTerms(terms []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(terms))
	for i, t := range terms {
		res[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(t) + `\b`)
	}
	return res
}

// Compare aligns the clauses of document A against document B and
// returns one result per clause of A plus one per unmatched clause of
// B, ordered by document position.
func (c *Comparator) Compare(a, b []model.Clause) []model.ComparisonResult {
	sim := make([][]float64, len(a))
	for i := range a {
		sim[i] = make([]float64, len(b))
		for j := range b {
			sim[i][j] = c.Similarity(a[i], b[j])
		}
	}

	bestA := bestPerRow(sim, c.cfg.AlignmentThreshold)
	bestB := bestPerCol(sim, c.cfg.AlignmentThreshold)

	matchedB := make([]bool, len(b))
	results := make([]model.ComparisonResult, 0, len(a)+len(b))
	for i := range a {
		j := bestA[i]
		if j >= 0 && bestB[j] == i {
			matchedB[j] = true
			results = append(results, c.classifyPair(a[i], b[j], sim[i][j]))
			continue
		}
		results = append(results, unmatched(a[i], ""))
	}
	for j := range b {
		if !matchedB[j] {
			results = append(results, unmatched(b[j], "right"))
		}
	}
	return results
}

// bestPerRow picks, for each row, the highest-scoring column at or
// above threshold. Ties resolve to the lower index so document order
// decides, not map iteration.
func bestPerRow(sim [][]float64, threshold float64) []int {
	best := make([]int, len(sim))
	for i := range sim {
		best[i] = -1
		for j, s := range sim[i] {
			if s < threshold {
				continue
			}
			if best[i] < 0 || s > sim[i][best[i]] {
				best[i] = j
			}
		}
	}
	return best
}

func bestPerCol(sim [][]float64, threshold float64) []int {
	if len(sim) == 0 {
		return nil
	}
	best := make([]int, len(sim[0]))
	for j := range best {
		best[j] = -1
		for i := range sim {
			s := sim[i][j]
			if s < threshold {
				continue
			}
			if best[j] < 0 || s > sim[best[j]][j] {
				best[j] = i
			}
		}
	}
	return best
}

func unmatched(cl model.Clause, side string) model.ComparisonResult {
	r := model.ComparisonResult{
		Relation:   model.RelationUnmatched,
		Similarity: 0,
		Confidence: 1,
		Rationale:  []string{"no counterpart clause at or above the alignment threshold"},
	}
	if side == "right" {
		r.ClauseB = cl.ID
	} else {
		r.ClauseA = cl.ID
	}
	return r
}
