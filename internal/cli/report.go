package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reggap/reggap/internal/cache"
	"github.com/reggap/reggap/internal/ingest"
	"github.com/reggap/reggap/internal/model"
	"github.com/reggap/reggap/internal/pipeline"
	"github.com/reggap/reggap/internal/reports"
)

var (
	concurrency int
	outputDir   string
	noCache     bool
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <dir>",
	Short: "Analyze a directory of documents and report every pairwise gap",
	Long: `Report batch-processes a corpus of regulatory texts:
- Analyze every .txt, .md, .html file in the directory in parallel
- Compare every document pair and classify the divergences
- Write per-document reports, pair reports, a severity heatmap and a
  relation matrix to the output directory

The document id and jurisdiction label are taken from the file name
without extension. Analyses are cached keyed by content and config, so
re-reporting an unchanged corpus is cheap.

Example:
  reggap report ./corpus
  reggap report ./corpus --concurrency 8 --output-dir ./gap-reports`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	reportCmd.Flags().StringVar(&outputDir, "output-dir", "./reggap-reports", "output directory for reports")
	reportCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the analysis cache")
	reportCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runReport(cmd *cobra.Command, args []string) error {
	dir := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency
	cfg.Output.IncludeFooter = !noFooter
	if noCache {
		cfg.Cache.Enabled = false
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}

	paths, err := corpusFiles(dir)
	if err != nil {
		return err
	}
	if len(paths) < 2 {
		return fmt.Errorf("need at least 2 documents in %s, found %d", dir, len(paths))
	}

	docs := make([]*model.NormalizedDocument, 0, len(paths))
	for _, path := range paths {
		id := defaultDocID(path)
		doc, err := ingest.LoadDocument(id, id, path)
		if err != nil {
			logger.Warn("skipping document", zap.String("path", path), zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}

	analyses, err := analyzeCorpus(p, cfg, docs, logger)
	if err != nil {
		return err
	}

	store := pipeline.NewStore(analyses)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, id := range store.IDs() {
		a := store.Get(id)
		md := reports.RenderDocument(a, cfg.Output.IncludeFooter)
		if err := os.WriteFile(filepath.Join(outputDir, id+".md"), []byte(md), 0o644); err != nil {
			return fmt.Errorf("write document report: %w", err)
		}
	}

	var pairs []*model.PairComparison
	for _, pr := range store.Pairs() {
		pc, err := p.ComparePair(store.Get(pr[0]), store.Get(pr[1]))
		if err != nil {
			return err
		}
		pairs = append(pairs, pc)
		name := fmt.Sprintf("%s-vs-%s.md", pr[0], pr[1])
		md := reports.RenderPair(pc, store, cfg.Output.IncludeFooter)
		if err := os.WriteFile(filepath.Join(outputDir, name), []byte(md), 0o644); err != nil {
			return fmt.Errorf("write pair report: %w", err)
		}
	}

	summary := reports.Heatmap(storeAnalyses(store)) + "\n" + reports.RelationMatrix(pairs)
	if err := os.WriteFile(filepath.Join(outputDir, "summary.txt"), []byte(summary), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %d document reports and %d pair reports to %s\n",
		store.Len(), len(pairs), outputDir)
	return nil
}

// analyzeCorpus runs the pipeline over docs, consulting the cache when
// enabled. Cache misses run on the worker pool; results come back in
// input order either way.
func analyzeCorpus(p *pipeline.Pipeline, cfg *model.Config, docs []*model.NormalizedDocument, logger *zap.Logger) ([]*model.DocumentAnalysis, error) {
	var analysisCache *cache.AnalysisStore
	if cfg.Cache.Enabled {
		var backing cache.Cache
		if cfg.Cache.Dir != "" {
			backing = cache.NewLayeredCache(time.Hour, cfg.Cache.Dir, 24*time.Hour)
		} else {
			backing = cache.NewMemoryCache(time.Hour, 10*time.Minute)
		}
		analysisCache = cache.NewAnalysisStore(backing, 24*time.Hour)
	}

	analyses := make([]*model.DocumentAnalysis, len(docs))
	var missDocs []*model.NormalizedDocument
	var missIdx []int
	for i, doc := range docs {
		if analysisCache != nil {
			if a, found := analysisCache.Load(doc, cfg); found {
				logger.Debug("cache hit", zap.String("doc", doc.ID))
				analyses[i] = a
				continue
			}
		}
		missDocs = append(missDocs, doc)
		missIdx = append(missIdx, i)
	}

	fresh, errs := p.AnalyzeBatch(missDocs, cfg.Concurrency.Workers)
	for k, a := range fresh {
		if errs[k] != nil {
			logger.Warn("analysis failed", zap.String("doc", missDocs[k].ID), zap.Error(errs[k]))
			continue
		}
		analyses[missIdx[k]] = a
		if analysisCache != nil {
			if err := analysisCache.Save(missDocs[k], cfg, a); err != nil {
				logger.Warn("cache write failed", zap.String("doc", missDocs[k].ID), zap.Error(err))
			}
		}
	}

	var out []*model.DocumentAnalysis
	for _, a := range analyses {
		if a != nil {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no documents could be analyzed")
	}
	return out, nil
}

// corpusFiles lists the analyzable files in dir, sorted for stable
// processing order.
func corpusFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".txt", ".md", ".html", ".htm":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func storeAnalyses(store *pipeline.Store) []*model.DocumentAnalysis {
	var out []*model.DocumentAnalysis
	for _, id := range store.IDs() {
		out = append(out, store.Get(id))
	}
	return out
}
