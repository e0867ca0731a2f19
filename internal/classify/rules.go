package classify

import (
	"regexp"

	"github.com/reggap/reggap/internal/model"
)

// Rule is one ordered classification predicate. The table below is
// evaluated top to bottom and the first match wins, so precedence
// lives here as data rather than scattered branching.
type Rule struct {
	Type    model.ClauseType
	Name    string
	Pattern *regexp.Regexp
}

// Prohibition rules run before obligation rules: "shall not" must not
// be claimed by a weaker "shall" match. Permission before condition
// for the same reason ("may, if ..." is a permission).
var defaultRules = []Rule{
	{model.ClauseProhibition, "shall-not", regexp.MustCompile(`(?i)\b(?:shall not|must not|may not|cannot|will not)\b`)},
	{model.ClauseProhibition, "prohibited", regexp.MustCompile(`(?i)\b(?:is|are)\s+(?:strictly\s+)?(?:prohibited|forbidden)\b`)},
	{model.ClauseProhibition, "not-permitted", regexp.MustCompile(`(?i)\b(?:is|are)\s+not\s+(?:permitted|allowed|authorized)\b`)},
	{model.ClauseProhibition, "no-person-shall", regexp.MustCompile(`(?i)\bno\s+[\w-]+(?:\s+[\w-]+)?\s+(?:shall|may)\b`)},

	{model.ClauseObligation, "shall", regexp.MustCompile(`(?i)\b(?:shall|must|is required to|are required to)\b`)},
	{model.ClauseObligation, "obligated", regexp.MustCompile(`(?i)\b(?:is|are)\s+(?:obligated|obliged)\b`)},
	{model.ClauseObligation, "mandatory", regexp.MustCompile(`(?i)\b(?:it is mandatory|mandatory requirement)\b`)},

	{model.ClausePermission, "may", regexp.MustCompile(`(?i)\b(?:may|is permitted to|are permitted to)\b`)},
	{model.ClausePermission, "allowed", regexp.MustCompile(`(?i)\b(?:is|are)\s+(?:allowed|authorized)\s+to\b`)},
	{model.ClausePermission, "right-to", regexp.MustCompile(`(?i)\b(?:has|have)\s+the\s+right\s+to\b`)},

	{model.ClauseCondition, "conditional", regexp.MustCompile(`(?i)\b(?:if|when|where|unless|provided that|subject to|in the event|in case of)\b`)},
}

var (
	subjectPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^((?:the |a |an )?(?:registrant|issuer|broker-dealer|broker|dealer|investment adviser|investment firm|fund|person|entity|company|firm|institution|bank|covered person|licensee|applicant|member|participant|customer|client|commission|authority|operator|controller|processor))\b`),
		regexp.MustCompile(`(?i)^((?:all|every|each|any)\s+(?:covered\s+)?[\w-]+(?:\s+person[s]?|\s+firm[s]?|\s+entit(?:y|ies))?)\b`),
		regexp.MustCompile(`(?i)^(no\s+[\w-]+(?:\s+[\w-]+)?)`),
	}

	actionPattern = regexp.MustCompile(`(?i)\b(?:shall|must|may|will|can|is required to|are required to)\s+(?:not\s+)?(\w+(?:\s+\w+)?)`)

	conditionPattern = regexp.MustCompile(`(?i)\b(if|when|unless|provided that|subject to)\s+([^,;.]+)`)

	deadlinePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bwithin\s+(\d+\s+(?:business\s+|calendar\s+)?(?:day|month|year|hour)s?)\b`),
		regexp.MustCompile(`(?i)\bno\s+later\s+than\s+([^,;.]+)`),
		regexp.MustCompile(`(?i)\bfor\s+a\s+(?:minimum\s+)?period\s+of\s+(?:not\s+less\s+than\s+|at\s+least\s+)?(\d+\s+(?:day|month|year)s?)\b`),
	}
)
