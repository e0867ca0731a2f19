package ingest

import (
	"regexp"
	"strings"

	"github.com/reggap/reggap/internal/model"
)

// quoteReplacer folds typographic punctuation to ASCII so quote
// tracking downstream only has one double-quote character to watch.
var quoteReplacer = strings.NewReplacer(
	"“", `"`, "”", `"`, "„", `"`,
	"‘", "'", "’", "'",
	"–", "-", "—", "-",
	" ", " ",
	"\r\n", "\n", "\r", "\n",
)

var (
	blankRuns = regexp.MustCompile(`\n{3,}`)

	headingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^§+\s*\d+[\w().-]*`),
		regexp.MustCompile(`(?i)^(?:section|article|part|chapter|title|subpart|rule)\s+[\w.()-]+`),
		regexp.MustCompile(`^\d+(?:\.\d+)*[.)]?\s+\S`),
		regexp.MustCompile(`^\([a-z]\)\s+\S`),
	}
)

// Normalize cleans raw text and records where each section heading
// starts. Offsets in the returned document are the offsets every later
// stage reports, so normalization happens exactly once.
func Normalize(id, jurisdiction, raw string) (*model.NormalizedDocument, error) {
	text := quoteReplacer.Replace(raw)
	text = stripTrailingSpace(text)
	text = blankRuns.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text) + "\n"

	if strings.TrimSpace(text) == "" {
		return nil, &model.InputError{DocID: id, Reason: "document is empty after normalization"}
	}

	return &model.NormalizedDocument{
		ID:           id,
		Jurisdiction: jurisdiction,
		Text:         text,
		Sections:     sectionMarkers(text),
	}, nil
}

func stripTrailingSpace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// sectionMarkers finds heading lines and records their byte offsets.
// A long line that happens to start with a number is prose, not a
// heading, so heading candidates are capped in length.
func sectionMarkers(text string) []model.SectionMarker {
	var markers []model.SectionMarker
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && len(trimmed) <= 100 && isHeading(trimmed) {
			markers = append(markers, model.SectionMarker{
				Path:  headingPath(trimmed),
				Start: offset,
			})
		}
		offset += len(line) + 1
	}
	return markers
}

func isHeading(line string) bool {
	for _, p := range headingPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// headingPath keeps the marker token plus a short title fragment.
func headingPath(line string) string {
	fields := strings.Fields(line)
	if len(fields) > 6 {
		fields = fields[:6]
	}
	return strings.Join(fields, " ")
}
