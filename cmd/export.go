package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/northcutted/scanboard/pkg/export"
	"github.com/northcutted/scanboard/pkg/types"
	"github.com/northcutted/scanboard/pkg/view"
)

var (
	exportFormat string
	exportDir    string
	selectKeys   []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered findings as CSV or SARIF",
	Long: `Export every finding that passes the filters, across all pages. When
--select is given, only the selected keys that also pass the filters are
exported. The file is named security-findings-YYYY-MM-DD with the format's
extension.`,
	Example: `  scanboard export
  scanboard export --format sarif --out-dir reports
  scanboard export --select sast:3f2a9c0d1e4b5a67,sca-fs:91bd00aa23cc4e10`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	addFilterFlags(exportCmd)
	f := exportCmd.Flags()
	f.StringVar(&exportFormat, "format", "csv", "Export format: csv or sarif")
	f.StringVar(&exportDir, "out-dir", ".", "Directory the export is written to")
	f.StringSliceVar(&selectKeys, "select", nil, "Only export these finding keys (comma-separated or repeated)")
	f.BoolVar(&dryRun, "dry-run", false, "Print to stdout instead of writing a file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	write, name, err := exporterFor(exportFormat, time.Now())
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

	b.Selection = view.NewSelection(splitKeys(selectKeys)...)
	for _, k := range b.Selection.Keys() {
		if _, ok := b.Find(k); !ok {
			slog.Warn("selected key not found", "key", k)
		}
	}

	var findings []types.Finding
	for _, f := range b.Exportable() {
		if inCategories(f.Category, cats) {
			findings = append(findings, f)
		}
	}

	var buf bytes.Buffer
	if err := write(&buf, findings); err != nil {
		return fmt.Errorf("failed to export findings: %w", err)
	}

	if dryRun {
		_, err := stdout.Write(buf.Bytes())
		return err
	}

	path := resolveExportPath(exportDir, name)
	if err := writeOutput(path, buf.Bytes()); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Exported %d findings to %s\n", len(findings), path)
	return nil
}

type exportFunc func(w io.Writer, findings []types.Finding) error

func exporterFor(format string, now time.Time) (exportFunc, string, error) {
	switch format {
	case "csv":
		return export.CSV, export.CSVFileName(now), nil
	case "sarif":
		return export.SARIF, export.SARIFFileName(now), nil
	}
	return nil, "", fmt.Errorf("unknown export format %q (want csv or sarif)", format)
}

func inCategories(c types.Category, cats []types.Category) bool {
	for _, want := range cats {
		if c == want {
			return true
		}
	}
	return false
}
