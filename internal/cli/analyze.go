package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reggap/reggap/internal/ingest"
	"github.com/reggap/reggap/internal/pipeline"
	"github.com/reggap/reggap/internal/reports"
)

var (
	docID        string
	jurisdiction string
	outJSON      string
	outMD        string
	noFooter     bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a single regulatory document",
	Long: `Analyze extracts the clause inventory of one regulatory text:
- Segment into clause-sized units with section attribution
- Classify obligations, prohibitions, permissions and conditions
- Build the defined-term table and report undefined terms
- Score ambiguity per clause with full signal breakdown
- Assess conservative risk with confidence intervals

Example:
  reggap analyze sec-rule.txt --jurisdiction us
  reggap analyze mifid.html --jurisdiction eu --json out.json --md report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&docID, "id", "", "document id (default: file name without extension)")
	analyzeCmd.Flags().StringVar(&jurisdiction, "jurisdiction", "", "jurisdiction label for the document")
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

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

	id := docID
	if id == "" {
		id = defaultDocID(path)
	}

	doc, err := ingest.LoadDocument(id, jurisdiction, path)
	if err != nil {
		return err
	}

	analysis, err := p.AnalyzeDocument(doc)
	if err != nil {
		return err
	}

	logger.Info("analysis complete",
		zap.String("doc", id),
		zap.Int("clauses", analysis.Stats.ClauseCount),
	)

	if err := writeJSON(outJSON, analysis); err != nil {
		return err
	}
	if outMD != "" {
		md := reports.RenderDocument(analysis, cfg.Output.IncludeFooter)
		if err := os.WriteFile(outMD, []byte(md), 0o644); err != nil {
			return fmt.Errorf("write markdown: %w", err)
		}
	}
	return nil
}

// defaultDocID derives a document id from the file name.
func defaultDocID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// writeJSON marshals v deterministically: indented, keys in struct
// order, no maps. Empty path writes to stdout.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
