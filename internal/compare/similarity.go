package compare

import (
	"regexp"
	"strings"

	"github.com/reggap/reggap/internal/model"
)

var tokenRe = regexp.MustCompile(`[a-z0-9]+`)

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "to": true,
	"and": true, "or": true, "in": true, "on": true, "for": true,
	"by": true, "with": true, "any": true, "all": true, "be": true,
	"is": true, "are": true, "that": true, "such": true, "as": true,
}

// tokens returns the comparison vocabulary of a clause: the extracted
// subject and action when available, the full text otherwise. Falling
// back keeps unclassified clauses alignable, just on weaker evidence.
func tokens(cl model.Clause) map[string]bool {
	src := strings.TrimSpace(cl.Subject + " " + cl.Action)
	if src == "" {
		src = cl.Text
	}
	set := map[string]bool{}
	for _, tok := range tokenRe.FindAllString(strings.ToLower(src), -1) {
		if !stopwords[tok] {
			set[tok] = true
		}
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if b[tok] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// Similarity blends lexical overlap with a bonus for matching clause
// types, clipped to [0, 1] so the bonus cannot push a weak lexical
// match past a strong one of a different type.
func (c *Comparator) Similarity(a, b model.Clause) float64 {
	s := c.cfg.LexicalWeight * jaccard(tokens(a), tokens(b))
	if a.Type == b.Type && a.Type != model.ClauseUnclassified {
		s += c.cfg.TypeMatchBonus
	}
	return clip01(s)
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
