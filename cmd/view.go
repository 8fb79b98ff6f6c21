package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/northcutted/scanboard/pkg/renderer"
	"github.com/northcutted/scanboard/pkg/types"
	"github.com/northcutted/scanboard/pkg/view"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Render the findings board",
	Long: `Render summary counters, severity and source charts, and one paged
table per category. Filters apply to the tables; the counters and charts
always cover every non-dismissed finding.`,
	Example: `  scanboard view --severity critical
  scanboard view --category sca-image --sort package
  scanboard view --format markdown -o SECURITY.md`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	addFilterFlags(viewCmd)
	f := viewCmd.Flags()
	f.IntVar(&pageNumber, "page", 1, "Page to show")
	f.IntVar(&pageSize, "page-size", view.DefaultPageSize, "Findings per page (5, 10, 25, or 50 are typical)")
	f.StringVar(&outputFormat, "format", string(renderer.FormatText), "Output format: "+renderer.FormatNames())
	f.StringVarP(&outputFile, "output", "o", "", "Write to a file instead of stdout")
	f.BoolVar(&dryRun, "dry-run", false, "Print to stdout even when --output is set")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	format, err := renderer.ParseFormat(settings.Format)
	if err != nil {
		return err
	}
	cats, err := selectedCategories()
	if err != nil {
		return err
	}

	b, _, err := openBoard(cmd.Context())
	if err != nil {
		return err
	}
	if err := applyFilters(cmd, b, cats); err != nil {
		return err
	}

	m := view.Build(b, time.Now())
	if categoryName != "" {
		m.Tables = onlyTables(m.Tables, cats)
	}

	outPath := resolveOutputPath(settings.Output, format)
	toFile := outPath != "" && !dryRun

	var buf bytes.Buffer
	if err := renderer.Render(&buf, m, format, renderer.Options{Profile: colorProfile(toFile)}); err != nil {
		return fmt.Errorf("failed to render board: %w", err)
	}

	if !toFile {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	return writeOutput(outPath, buf.Bytes())
}

func onlyTables(tables []view.Table, cats []types.Category) []view.Table {
	var out []view.Table
	for _, t := range tables {
		for _, c := range cats {
			if t.Category == c {
				out = append(out, t)
			}
		}
	}
	return out
}
