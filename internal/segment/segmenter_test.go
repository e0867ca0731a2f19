package segment

import (
	"strings"
	"testing"

	"github.com/reggap/reggap/internal/model"
)

func texts(segs []Segment) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.Text
	}
	return out
}

func TestSplitSentences(t *testing.T) {
	doc := model.NormalizedDocument{Text: "The registrant shall file Form X within 10 days. The Commission may grant extensions. Records are kept."}
	segs := Split(doc)
	want := []string{
		"The registrant shall file Form X within 10 days.",
		"The Commission may grant extensions.",
		"Records are kept.",
	}
	if len(segs) != len(want) {
		t.Fatalf("got %d segments %q, want %d", len(segs), texts(segs), len(want))
	}
	for i, w := range want {
		if segs[i].Text != w {
			t.Errorf("segment %d = %q, want %q", i, segs[i].Text, w)
		}
		if segs[i].Index != i {
			t.Errorf("segment %d Index = %d", i, segs[i].Index)
		}
	}
}

func TestAbbreviationsDoNotSplit(t *testing.T) {
	doc := model.NormalizedDocument{Text: "Filings under 17 C.F.R. part 240 are due promptly. See Sec. 12 for details."}
	segs := Split(doc)
	if len(segs) != 2 {
		t.Fatalf("got %d segments %q, want 2", len(segs), texts(segs))
	}
	if segs[0].Text != "Filings under 17 C.F.R. part 240 are due promptly." {
		t.Errorf("first segment = %q", segs[0].Text)
	}
}

func TestQuotedPeriodDoesNotSplit(t *testing.T) {
	doc := model.NormalizedDocument{Text: `The term "Form X. Annual" means the combined filing. A second sentence follows.`}
	segs := Split(doc)
	if len(segs) != 2 {
		t.Fatalf("got %d segments %q, want 2", len(segs), texts(segs))
	}
}

func TestParentheticalPeriodDoesNotSplit(t *testing.T) {
	doc := model.NormalizedDocument{Text: "The adviser (as defined in sec. 202(a)(11) of the Act.) shall register. Next sentence."}
	segs := Split(doc)
	if len(segs) != 2 {
		t.Fatalf("got %d segments %q, want 2", len(segs), texts(segs))
	}
}

func TestItemMarkerStartsNewSegment(t *testing.T) {
	doc := model.NormalizedDocument{Text: "Each person shall comply with the following\n(a) maintain records as required\n(b) report material events"}
	segs := Split(doc)
	if len(segs) != 3 {
		t.Fatalf("got %d segments %q, want 3", len(segs), texts(segs))
	}
	if segs[1].Text != "(a) maintain records as required" {
		t.Errorf("second segment = %q", segs[1].Text)
	}
}

func TestNumberingTokenNotSentenceEnd(t *testing.T) {
	doc := model.NormalizedDocument{Text: "Section 2. Filing duties apply to every registrant."}
	segs := Split(doc)
	if len(segs) != 1 {
		t.Fatalf("got %d segments %q, want 1", len(segs), texts(segs))
	}
}

// Spans must address the exact source substring so offsets remain
// valid against the normalized text.
func TestSpansMatchSource(t *testing.T) {
	text := "First duty applies here. Second duty applies there.\n(a) a numbered item\nThird sentence ends."
	doc := model.NormalizedDocument{Text: text}
	for _, seg := range Split(doc) {
		if got := text[seg.Span.Start:seg.Span.End]; got != seg.Text {
			t.Errorf("span [%d,%d) = %q, want %q", seg.Span.Start, seg.Span.End, got, seg.Text)
		}
	}
}

func TestSpansOrderedAndNonOverlapping(t *testing.T) {
	text := "One sentence here. Another one there. And a third. Plus (a nested. parenthetical) item."
	prevEnd := -1
	for _, seg := range Split(model.NormalizedDocument{Text: text}) {
		if seg.Span.Start < prevEnd {
			t.Fatalf("span starting at %d overlaps previous ending at %d", seg.Span.Start, prevEnd)
		}
		if seg.Span.End <= seg.Span.Start {
			t.Fatalf("empty span [%d,%d)", seg.Span.Start, seg.Span.End)
		}
		prevEnd = seg.Span.End
	}
}

// Splitting is lossless: the spans plus whatever lies between them
// reassemble the source byte for byte.
func TestReconstructionIsLossless(t *testing.T) {
	text := "Section 1. Definitions\n\nTerms are defined below.  Two spaces sit between sentences.\n(a) a numbered item\n(b) another item\nThe registrant shall file Form X within 10 days.\n"
	segs := Split(model.NormalizedDocument{Text: text})
	if len(segs) == 0 {
		t.Fatal("no segments produced")
	}
	var b strings.Builder
	pos := 0
	for _, seg := range segs {
		b.WriteString(text[pos:seg.Span.Start])
		b.WriteString(text[seg.Span.Start:seg.Span.End])
		pos = seg.Span.End
	}
	b.WriteString(text[pos:])
	if b.String() != text {
		t.Errorf("reconstruction = %q, want the source text %q", b.String(), text)
	}
}

func TestSectionAttribution(t *testing.T) {
	text := "Section 1. Definitions\nTerms are defined below. Section 2 follows further on.\nSection 2. Duties\nThe registrant shall file reports."
	doc := model.NormalizedDocument{
		Text: text,
		Sections: []model.SectionMarker{
			{Path: "Section 2. Duties", Start: strings.Index(text, "Section 2. Duties")},
			{Path: "Section 1. Definitions", Start: 0},
		},
	}
	segs := Split(doc)
	if len(segs) == 0 {
		t.Fatal("no segments")
	}
	if segs[0].SectionPath != "Section 1. Definitions" {
		t.Errorf("first segment section = %q", segs[0].SectionPath)
	}
	last := segs[len(segs)-1]
	if last.SectionPath != "Section 2. Duties" {
		t.Errorf("last segment section = %q", last.SectionPath)
	}
}

func TestScannerRestartable(t *testing.T) {
	sc := NewScanner("A duty applies. Another applies.", nil)
	first := sc.All()
	second := sc.All()
	if len(first) != len(second) {
		t.Fatalf("passes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("segment %d differs across passes: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestEmptyText(t *testing.T) {
	if segs := Split(model.NormalizedDocument{Text: "   \n  "}); len(segs) != 0 {
		t.Errorf("got %d segments from blank text, want 0", len(segs))
	}
}
