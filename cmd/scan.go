package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/northcutted/scanboard/pkg/analysis"
	"github.com/northcutted/scanboard/pkg/loader"
	"github.com/northcutted/scanboard/pkg/runner"
	"github.com/northcutted/scanboard/pkg/types"
)

var (
	scanPath      string
	scanImage     string
	semgrepConfig string
	ignoreErrors  bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run semgrep and trivy and store their reports",
	Long: `Run the installed scanners and write their JSON reports to the configured
source paths, ready for "scanboard view":

  semgrep scan   <path>   -> --semgrep
  trivy fs       <path>   -> --trivy-fs
  trivy image    <image>  -> --trivy-image (only with --image)

Scanners that are not installed are skipped. Sources configured as URLs
cannot be written and are rejected.`,
	Example: `  scanboard scan
  scanboard scan --path ./service --image registry.example.com/service:1.4.2`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	f := scanCmd.Flags()
	f.StringVar(&scanPath, "path", ".", "Source directory to scan")
	f.StringVar(&scanImage, "image", "", "Container image to scan with trivy")
	f.StringVar(&semgrepConfig, "semgrep-config", "auto", "Semgrep rule configuration")
	f.BoolVar(&ignoreErrors, "ignore-errors", false, "Exit successfully even if a scanner fails")
	rootCmd.AddCommand(scanCmd)
}

func scanJobs() ([]analysis.Job, error) {
	jobs := []analysis.Job{
		{Category: types.CategoryStatic, Runner: &runner.SemgrepRunner{Config: semgrepConfig}, Target: scanPath},
		{Category: types.CategoryFS, Runner: &runner.TrivyRunner{Mode: runner.TrivyFilesystem}, Target: scanPath},
	}
	if scanImage != "" {
		jobs = append(jobs, analysis.Job{
			Category: types.CategoryImage,
			Runner:   &runner.TrivyRunner{Mode: runner.TrivyImage},
			Target:   scanImage,
		})
	}

	for i := range jobs {
		out := settings.Sources.Location(jobs[i].Category)
		if loader.IsURL(out) {
			return nil, fmt.Errorf("cannot write %s report to URL source %s", jobs[i].Category, out)
		}
		jobs[i].Output = out
	}
	return jobs, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	jobs, err := scanJobs()
	if err != nil {
		return err
	}

	stats, err := analysis.Scan(cmd.Context(), afero.NewOsFs(), jobs, verbose)
	printScanStats(stats)

	if err != nil {
		slog.Warn("scan finished with errors", "error", err)
		if !ignoreErrors {
			return fmt.Errorf("scan failed: %w", err)
		}
	}
	if stats.Written() == 0 {
		slog.Warn("no reports written; install semgrep or trivy")
	}
	return nil
}

func printScanStats(stats *analysis.ScanStats) {
	tw := newTable([]string{"Tool", "Target", "Report", "Findings", "Time", "Status"})
	for _, j := range stats.Jobs {
		status := "ok"
		switch {
		case j.Skipped:
			status = "skipped (not installed)"
		case j.Err != nil:
			status = "failed"
		}
		tw.Append([]string{
			j.Tool,
			j.Target,
			j.Output,
			strconv.Itoa(j.Findings),
			j.Duration.Round(time.Millisecond).String(),
			status,
		})
	}
	tw.Render()
}
