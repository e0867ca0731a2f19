// Package pipeline wires the analysis stages together: segmentation,
// classification, definition extraction, ambiguity scoring, risk
// assessment, and cross-document comparison. Stages run in a fixed
// order over slices sorted by document position, so the same input
// always serializes to the same bytes.
package pipeline

import (
	"go.uber.org/zap"

	"github.com/reggap/reggap/internal/ambiguity"
	"github.com/reggap/reggap/internal/classify"
	"github.com/reggap/reggap/internal/compare"
	"github.com/reggap/reggap/internal/definitions"
	"github.com/reggap/reggap/internal/model"
	"github.com/reggap/reggap/internal/risk"
	"github.com/reggap/reggap/internal/segment"
)

type Pipeline struct {
	cfg        *model.Config
	classifier *classify.Classifier
	detector   *ambiguity.Detector
	comparator *compare.Comparator
	risks      *risk.Model
	logger     *zap.Logger
}

// New validates cfg before building anything; a bad threshold fails
// here, not halfway through a batch.
func New(cfg *model.Config, logger *zap.Logger) (*Pipeline, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cfg:        cfg,
		classifier: classify.New(),
		detector:   ambiguity.New(cfg.Ambiguity),
		comparator: compare.New(cfg.Compare),
		risks:      risk.New(cfg.Risk),
		logger:     logger,
	}, nil
}

// AnalyzeDocument runs the single-document stages. The input must
// already be normalized; a document with no extractable clauses is an
// input error, not an empty result.
func (p *Pipeline) AnalyzeDocument(doc *model.NormalizedDocument) (*model.DocumentAnalysis, error) {
	if doc == nil || doc.Text == "" {
		return nil, &model.InputError{Reason: "nil or empty document"}
	}

	segs := segment.Split(*doc)
	if len(segs) == 0 {
		return nil, &model.InputError{DocID: doc.ID, Reason: "no clauses could be segmented"}
	}

	clauses := p.classifier.ClassifyAll(doc.ID, segs)
	defs := definitions.Extract(clauses)
	scores := p.detector.ScoreAll(clauses, defs)
	assessments := p.risks.AssessAll(clauses, scores, nil)

	p.logger.Debug("analyzed document",
		zap.String("doc", doc.ID),
		zap.Int("clauses", len(clauses)),
		zap.Int("definitions", len(defs.Definitions)),
	)

	return &model.DocumentAnalysis{
		DocID:        doc.ID,
		Jurisdiction: doc.Jurisdiction,
		Stats:        stats(doc, clauses, defs),
		Clauses:      clauses,
		Definitions:  defs.Definitions,
		References:   defs.References,
		Undefined:    defs.Undefined,
		Ambiguity:    scores,
		Risks:        assessments,
	}, nil
}

// ComparePair aligns two analyzed documents and re-assesses both
// sides' risks with the divergence relations joined in.
func (p *Pipeline) ComparePair(a, b *model.DocumentAnalysis) (*model.PairComparison, error) {
	if a == nil || b == nil {
		return nil, &model.InputError{Reason: "comparison requires two analyzed documents"}
	}
	if a.DocID == b.DocID {
		return nil, &model.InputError{DocID: a.DocID, Reason: "cannot compare a document with itself"}
	}

	results := p.comparator.Compare(a.Clauses, b.Clauses)

	relA := make(map[string]risk.Linked, len(results))
	relB := make(map[string]risk.Linked, len(results))
	for _, r := range results {
		if r.ClauseA != "" {
			relA[r.ClauseA] = risk.Linked{Relation: r.Relation, Confidence: r.Confidence}
		}
		if r.ClauseB != "" {
			relB[r.ClauseB] = risk.Linked{Relation: r.Inverse().Relation, Confidence: r.Confidence}
		}
	}

	pc := &model.PairComparison{
		DocA:          a.DocID,
		DocB:          b.DocID,
		JurisdictionA: a.Jurisdiction,
		JurisdictionB: b.Jurisdiction,
		Results:       results,
		RisksA:        p.risks.AssessAll(a.Clauses, a.Ambiguity, relA),
		RisksB:        p.risks.AssessAll(b.Clauses, b.Ambiguity, relB),
	}

	p.logger.Debug("compared pair",
		zap.String("doc_a", a.DocID),
		zap.String("doc_b", b.DocID),
		zap.Int("results", len(results)),
	)
	return pc, nil
}

func stats(doc *model.NormalizedDocument, clauses []model.Clause, defs *definitions.Table) model.DocumentStats {
	s := model.DocumentStats{
		WordCount:       wordCount(doc.Text),
		ClauseCount:     len(clauses),
		DefinitionCount: len(defs.Definitions),
		SectionCount:    len(doc.Sections),
	}
	for _, cl := range clauses {
		switch cl.Type {
		case model.ClauseObligation:
			s.ObligationCount++
		case model.ClauseProhibition:
			s.ProhibitionCount++
		case model.ClausePermission:
			s.PermissionCount++
		case model.ClauseCondition:
			s.ConditionCount++
		default:
			s.UnclassifiedCount++
		}
	}
	return s
}

func wordCount(text string) int {
	n := 0
	inWord := false
	for _, r := range text {
		isSpace := r == ' ' || r == '\n' || r == '\t'
		if !isSpace && !inWord {
			n++
		}
		inWord = !isSpace
	}
	return n
}
