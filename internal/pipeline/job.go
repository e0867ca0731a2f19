package pipeline

import (
	"context"

	"github.com/reggap/reggap/internal/model"
	"github.com/reggap/reggap/internal/worker"
)

// AnalyzeJob runs one document through the pipeline on a worker pool.
type AnalyzeJob struct {
	Sequence int
	Doc      *model.NormalizedDocument
	Pipeline *Pipeline
}

// AnalyzeResult carries the analysis or the per-document error; one
// malformed document never aborts the batch.
type AnalyzeResult struct {
	Sequence int
	Analysis *model.DocumentAnalysis
	Error    error
}

func (r *AnalyzeResult) Err() error { return r.Error }
func (r *AnalyzeResult) Seq() int   { return r.Sequence }

func (j *AnalyzeJob) Execute(ctx context.Context) worker.Result {
	if err := ctx.Err(); err != nil {
		return &AnalyzeResult{Sequence: j.Sequence, Error: err}
	}
	analysis, err := j.Pipeline.AnalyzeDocument(j.Doc)
	return &AnalyzeResult{Sequence: j.Sequence, Analysis: analysis, Error: err}
}

// AnalyzeBatch fans documents out to workers and collects analyses in
// input order. Documents that fail analysis are returned in errs at
// the matching index; their analysis slot is nil.
func (p *Pipeline) AnalyzeBatch(docs []*model.NormalizedDocument, workers int) ([]*model.DocumentAnalysis, []error) {
	pool := worker.NewPool(workers)
	pool.Start()
	for i, doc := range docs {
		pool.Submit(&AnalyzeJob{Sequence: i, Doc: doc, Pipeline: p})
	}

	analyses := make([]*model.DocumentAnalysis, len(docs))
	errs := make([]error, len(docs))
	for _, res := range pool.Wait() {
		ar := res.(*AnalyzeResult)
		analyses[ar.Sequence] = ar.Analysis
		errs[ar.Sequence] = ar.Error
	}
	return analyses, errs
}
