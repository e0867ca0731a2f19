package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reggap/reggap/internal/ingest"
	"github.com/reggap/reggap/internal/model"
	"github.com/reggap/reggap/internal/pipeline"
	"github.com/reggap/reggap/internal/reports"
)

var (
	jurisdictionA string
	jurisdictionB string
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <fileA> <fileB>",
	Short: "Compare two regulatory documents across jurisdictions",
	Long: `Compare aligns the clauses of two regulatory texts and classifies
each aligned pair as stricter, looser, conflicting or ambiguous, with
the rationale for every classification. Risk assessments on both sides
are re-evaluated with the divergence joined in.

Example:
  reggap compare sec-rule.txt mifid.txt --jurisdiction-a us --jurisdiction-b eu
  reggap compare a.txt b.txt --json gap.json --md gap.md`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&jurisdictionA, "jurisdiction-a", "", "jurisdiction label for the first document")
	compareCmd.Flags().StringVar(&jurisdictionB, "jurisdiction-b", "", "jurisdiction label for the second document")
	compareCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout)")
	compareCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	compareCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Output.IncludeFooter = !noFooter

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}

	docA, err := ingest.LoadDocument(defaultDocID(args[0]), jurisdictionA, args[0])
	if err != nil {
		return err
	}
	docB, err := ingest.LoadDocument(defaultDocID(args[1]), jurisdictionB, args[1])
	if err != nil {
		return err
	}
	if docA.ID == docB.ID {
		// Same base name from different directories; disambiguate.
		docA.ID += "-a"
		docB.ID += "-b"
	}

	analysisA, err := p.AnalyzeDocument(docA)
	if err != nil {
		return err
	}
	analysisB, err := p.AnalyzeDocument(docB)
	if err != nil {
		return err
	}

	pair, err := p.ComparePair(analysisA, analysisB)
	if err != nil {
		return err
	}

	logger.Info("comparison complete",
		zap.String("doc_a", pair.DocA),
		zap.String("doc_b", pair.DocB),
		zap.Int("results", len(pair.Results)),
	)

	if err := writeJSON(outJSON, pair); err != nil {
		return err
	}
	if outMD != "" {
		store := pipeline.NewStore([]*model.DocumentAnalysis{analysisA, analysisB})
		md := reports.RenderPair(pair, store, cfg.Output.IncludeFooter)
		if err := os.WriteFile(outMD, []byte(md), 0o644); err != nil {
			return fmt.Errorf("write markdown: %w", err)
		}
	}
	return nil
}
