// Package segment splits normalized regulatory text into ordered,
// non-overlapping clause-candidate spans.
package segment

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/reggap/reggap/internal/model"
)

// Segment is one clause-candidate span. Text is the exact substring
// [Span.Start, Span.End) of the source; whatever lies between two
// consecutive spans is preserved untouched, so concatenating spans
// with the inter-span gaps reconstructs the document byte for byte.
type Segment struct {
	Index       int
	Span        model.Span
	SectionPath string
	Text        string
}

// Abbreviations whose trailing period never ends a sentence.
var abbreviations = map[string]bool{
	"no": true, "sec": true, "art": true, "para": true,
	"mr": true, "mrs": true, "dr": true, "inc": true, "ltd": true,
	"etc": true, "vs": true, "e.g": true, "i.e": true, "cf": true,
	"u.s.c": true, "c.f.r": true, "fed.reg": true, "approx": true,
}

// Numbered-item markers that open a new atomic unit: "2.", "2.1",
// "§ 12(a)(3)", "(a)", "Section 3.", "Article 4."
var itemMarker = regexp.MustCompile(`^(?:§\s*\d+(?:\([a-zA-Z0-9]+\))*|\(?[a-z0-9]\)|\d+(?:\.\d+)*[.)]?|(?:Section|Article|Rule|Part)\s+\d+(?:\.\d+)*\.?)\s`)

// Scanner walks the text producing spans one at a time. It is
// restartable: Reset returns it to the beginning, and two passes over
// the same input yield identical spans.
type Scanner struct {
	text    string
	markers []model.SectionMarker
	pos     int
	index   int
}

// NewScanner creates a scanner over normalized text with the section
// markers supplied by ingestion. Markers are sorted by offset once.
func NewScanner(text string, markers []model.SectionMarker) *Scanner {
	sorted := make([]model.SectionMarker, len(markers))
	copy(sorted, markers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	return &Scanner{text: text, markers: sorted}
}

// Reset rewinds the scanner to the start of the text.
func (s *Scanner) Reset() {
	s.pos = 0
	s.index = 0
}

// Next returns the next span, or false when the text is exhausted.
func (s *Scanner) Next() (Segment, bool) {
	for s.pos < len(s.text) {
		start := s.skipSpace(s.pos)
		if start >= len(s.text) {
			s.pos = len(s.text)
			return Segment{}, false
		}
		end := s.findBoundary(start)
		s.pos = end

		raw := s.text[start:end]
		// Trim trailing space inside the span; the gap keeps it.
		trimmed := strings.TrimRightFunc(raw, unicode.IsSpace)
		if trimmed == "" {
			continue
		}
		seg := Segment{
			Index:       s.index,
			Span:        model.Span{Start: start, End: start + len(trimmed)},
			SectionPath: s.sectionAt(start),
			Text:        trimmed,
		}
		s.index++
		return seg, true
	}
	return Segment{}, false
}

// All drains the scanner from the beginning and returns every span.
func (s *Scanner) All() []Segment {
	s.Reset()
	var out []Segment
	for {
		seg, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, seg)
	}
}

func (s *Scanner) skipSpace(from int) int {
	for from < len(s.text) {
		r := s.text[from]
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return from
		}
		from++
	}
	return from
}

// findBoundary returns the end (exclusive) of the span starting at
// start: the earlier of the next sentence terminator and the next
// numbered-item marker, whichever yields the shorter atomic unit.
func (s *Scanner) findBoundary(start int) int {
	inQuote := false
	parens := 0

	for i := start; i < len(s.text); i++ {
		c := s.text[i]
		switch c {
		case '"':
			inQuote = !inQuote
			continue
		case '(':
			parens++
			continue
		case ')':
			if parens > 0 {
				parens--
			}
			continue
		}
		if inQuote || parens > 0 {
			continue
		}

		switch c {
		case '.', '!', '?':
			if i > start && s.sentenceEndsAt(i) {
				return i + 1
			}
		case '\n':
			if i == start {
				continue
			}
			if next := s.skipSpace(i); next < len(s.text) && itemMarker.MatchString(s.text[next:]) {
				return i
			}
		}
	}
	return len(s.text)
}

// sentenceEndsAt reports whether the terminator at i really closes a
// sentence: followed by whitespace or EOF, and not part of an
// abbreviation or a numbering token like "2." or "U.S.C.".
func (s *Scanner) sentenceEndsAt(i int) bool {
	if i+1 < len(s.text) {
		next := s.text[i+1]
		if next != ' ' && next != '\t' && next != '\n' && next != '\r' {
			return false
		}
	}
	if s.text[i] != '.' {
		return true
	}
	word := precedingToken(s.text, i)
	if word == "" {
		return false
	}
	if abbreviations[strings.ToLower(word)] {
		return false
	}
	if isNumberingToken(word) {
		return false
	}
	// Single capital initials: "J." in a name.
	if len(word) == 1 && word[0] >= 'A' && word[0] <= 'Z' {
		return false
	}
	return true
}

// precedingToken returns the word (letters, digits, interior dots)
// immediately before position i.
func precedingToken(text string, i int) string {
	j := i
	for j > 0 {
		c := text[j-1]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '.' {
			j--
			continue
		}
		break
	}
	return strings.TrimPrefix(text[j:i], ".")
}

func isNumberingToken(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if c := word[i]; (c < '0' || c > '9') && c != '.' {
			return false
		}
	}
	return true
}

// sectionAt returns the path of the innermost section marker at or
// before the given offset, or "" when the document carries no
// numbering.
func (s *Scanner) sectionAt(offset int) string {
	path := ""
	for _, m := range s.markers {
		if m.Start > offset {
			break
		}
		path = m.Path
	}
	return path
}

// Split is the convenience form: one deterministic pass over the
// whole document.
func Split(doc model.NormalizedDocument) []Segment {
	return NewScanner(doc.Text, doc.Sections).All()
}
