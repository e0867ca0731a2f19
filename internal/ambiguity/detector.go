// Package ambiguity scores how much interpretive latitude a clause
// leaves the reader. The score is a bounded sum of weighted signals;
// each signal saturates with repeated hits (n/(n+1)) so one noisy
// category cannot dominate, and every contribution is reported so the
// score can be audited term by term.
package ambiguity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reggap/reggap/internal/definitions"
	"github.com/reggap/reggap/internal/model"
)

type Detector struct {
	cfg        model.AmbiguityConfig
	vagueRe    *regexp.Regexp
	timeVerbRe *regexp.Regexp
}

func New(cfg model.AmbiguityConfig) *Detector {
	return &Detector{
		cfg:        cfg,
		vagueRe:    wordAlternation(cfg.VagueTerms),
		timeVerbRe: wordAlternation(cfg.TimeSensitiveVerbs),
	}
}

// thresholdRe spots a quantified bound. A vague qualifier next to one
// ("reasonable records, in no event fewer than 5 years") is anchored
// to a testable criterion, so the qualifier signal stays silent.
var thresholdRe = regexp.MustCompile(`(?i)\b(?:at least|no (?:more|fewer|less) than|fewer than|less than|more than|not to exceed|no later than|within|up to|a minimum of|a maximum of|exceed(?:s|ing)?)\s+\$?\d|\b\d+(?:\.\d+)?\s*(?:%|percent|hours?|days?|weeks?|months?|years?)\b`)

func wordAlternation(terms []string) *regexp.Regexp {
	if len(terms) == 0 {
		return regexp.MustCompile(`\b\B`) // matches nothing
	}
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(t))
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// ScoreAll scores clauses in order, resolving undefined terms against
// the document's definition table.
func (d *Detector) ScoreAll(clauses []model.Clause, defs *definitions.Table) []model.AmbiguityScore {
	out := make([]model.AmbiguityScore, 0, len(clauses))
	for _, cl := range clauses {
		out = append(out, d.Score(cl, defs))
	}
	return out
}

// Score evaluates the four signal categories for one clause. Signals
// that fired zero times are omitted from the result.
func (d *Detector) Score(cl model.Clause, defs *definitions.Table) model.AmbiguityScore {
	var signals []model.AmbiguitySignal

	if hits := d.vagueRe.FindAllString(cl.Text, -1); len(hits) > 0 && !thresholdRe.MatchString(cl.Text) {
		signals = append(signals, signal(model.SignalVagueQualifier, d.cfg.WeightVagueQualifier,
			len(hits), strings.ToLower(strings.Join(hits, ", "))))
	}

	if defs != nil {
		if und := defs.UndefinedIn(cl.ID); len(und) > 0 {
			terms := make([]string, len(und))
			for i, u := range und {
				terms[i] = u.Term
			}
			signals = append(signals, signal(model.SignalUndefinedTerm, d.cfg.WeightUndefinedTerm,
				len(und), strings.Join(terms, ", ")))
		}
	}

	if n, detail := d.unresolvedConditions(cl); n > 0 {
		signals = append(signals, signal(model.SignalUnresolvedCondition, d.cfg.WeightUnresolvedCondition, n, detail))
	}

	if d.missingDeadline(cl) {
		signals = append(signals, signal(model.SignalMissingDeadline, d.cfg.WeightMissingDeadline,
			1, "time-sensitive action with no stated deadline"))
	}

	score := model.AmbiguityScore{ClauseID: cl.ID, Signals: signals}
	var sum float64
	for _, s := range signals {
		sum += s.Contribution
	}
	score.Score = clip01(sum)
	return score
}

// unresolvedConditions counts conditions that leave their trigger open:
// the condition text is itself vague, or it circles back to the
// clause's own subject without adding a testable criterion.
func (d *Detector) unresolvedConditions(cl model.Clause) (int, string) {
	var n int
	var details []string
	for _, c := range cl.Conditions {
		switch {
		case d.vagueRe.MatchString(c.Text):
			n++
			details = append(details, fmt.Sprintf("%s %s (vague)", c.Trigger, c.Text))
		case cl.Subject != "" && strings.Contains(c.Text, cl.Subject):
			n++
			details = append(details, fmt.Sprintf("%s %s (self-referential)", c.Trigger, c.Text))
		}
	}
	return n, strings.Join(details, "; ")
}

// missingDeadline only fires for binding clause types: a permission
// without a deadline is not a gap.
func (d *Detector) missingDeadline(cl model.Clause) bool {
	if cl.Type != model.ClauseObligation && cl.Type != model.ClauseProhibition {
		return false
	}
	return cl.Deadline == "" && d.timeVerbRe.MatchString(cl.Text)
}

func signal(kind model.AmbiguitySignalKind, weight float64, n int, detail string) model.AmbiguitySignal {
	return model.AmbiguitySignal{
		Kind:         kind,
		Detail:       detail,
		Count:        n,
		Weight:       weight,
		Contribution: weight * float64(n) / float64(n+1),
	}
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
