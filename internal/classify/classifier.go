// Package classify assigns a modality type to segmented clauses and
// extracts their structural slots: subject, action, conditions and
// deadline. Classification is a first-match scan over an ordered rule
// table so results are reproducible and every outcome can be traced
// back to the lexical trigger that fired.
package classify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reggap/reggap/internal/model"
	"github.com/reggap/reggap/internal/segment"
)

// Classifier turns segments into typed clauses.
type Classifier struct {
	rules []Rule
}

func New() *Classifier {
	return &Classifier{rules: defaultRules}
}

// ClassifyAll processes segments in document order. Segments that match
// no rule are kept as Unclassified clauses with a warning rather than
// dropped, so downstream counts always reconcile with the input.
func (c *Classifier) ClassifyAll(docID string, segs []segment.Segment) []model.Clause {
	clauses := make([]model.Clause, 0, len(segs))
	for _, seg := range segs {
		clauses = append(clauses, c.Classify(docID, seg))
	}
	return clauses
}

// Classify builds a clause from a single segment. The clause ID encodes
// the document and segment index so reruns over the same input produce
// identical ids.
func (c *Classifier) Classify(docID string, seg segment.Segment) model.Clause {
	cl := model.Clause{
		ID:          fmt.Sprintf("%s-c%03d", docID, seg.Index+1),
		DocID:       docID,
		Span:        seg.Span,
		SectionPath: seg.SectionPath,
		Text:        seg.Text,
		Type:        model.ClauseUnclassified,
	}

	for _, r := range c.rules {
		if loc := r.Pattern.FindStringIndex(seg.Text); loc != nil {
			cl.Type = r.Type
			cl.Trigger = strings.ToLower(seg.Text[loc[0]:loc[1]])
			break
		}
	}

	if cl.Type == model.ClauseUnclassified {
		cl.Warnings = append(cl.Warnings, "no classification rule matched")
		return cl
	}

	slots := 0
	if subj := extractSubject(seg.Text); subj != "" {
		cl.Subject = subj
		slots++
	} else {
		cl.Warnings = append(cl.Warnings, "subject not extracted")
	}
	if act := extractAction(seg.Text); act != "" {
		cl.Action = act
		slots++
	} else {
		cl.Warnings = append(cl.Warnings, "action not extracted")
	}
	cl.Confidence = float64(slots) / 2

	cl.Conditions = extractConditions(seg.Text)
	cl.Deadline = extractDeadline(seg.Text)
	return cl
}

func extractSubject(text string) string {
	for _, p := range subjectPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return normalizeSlot(m[1])
		}
	}
	return ""
}

func extractAction(text string) string {
	if m := actionPattern.FindStringSubmatch(text); m != nil {
		return normalizeSlot(m[1])
	}
	return ""
}

// extractConditions returns conditional sub-structures ordered by their
// position in the clause text, not by trigger kind.
func extractConditions(text string) []model.Condition {
	idx := conditionPattern.FindAllStringSubmatchIndex(text, -1)
	if len(idx) == 0 {
		return nil
	}
	sort.Slice(idx, func(i, j int) bool { return idx[i][0] < idx[j][0] })
	conds := make([]model.Condition, 0, len(idx))
	for _, m := range idx {
		conds = append(conds, model.Condition{
			Trigger: strings.ToLower(text[m[2]:m[3]]),
			Text:    normalizeSlot(text[m[4]:m[5]]),
		})
	}
	return conds
}

func extractDeadline(text string) string {
	for _, p := range deadlinePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return normalizeSlot(m[1])
		}
	}
	return ""
}

func normalizeSlot(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
