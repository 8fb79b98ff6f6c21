// Package analysis runs scanners concurrently and stores their reports
// where the loader expects them.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/northcutted/scanboard/pkg/extract"
	"github.com/northcutted/scanboard/pkg/types"
)

// Runner produces a JSON report for a target.
type Runner interface {
	Name() string
	IsAvailable() bool
	Run(ctx context.Context, target string, verbose bool) ([]byte, error)
}

// Job is one scanner invocation whose report is written to Output.
type Job struct {
	Category types.Category
	Runner   Runner
	Target   string
	Output   string
}

// Scan runs every job concurrently. Missing tools are skipped and failed
// jobs are recorded; neither stops the other jobs. The returned error
// aggregates the failures and is nil when every available tool succeeded.
func Scan(ctx context.Context, fs afero.Fs, jobs []Job, verbose bool) (*ScanStats, error) {
	stats := &ScanStats{Jobs: make([]JobStats, 0, len(jobs))}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs error

	for _, j := range jobs {
		if !j.Runner.IsAvailable() {
			slog.Warn("tool is not installed or not in PATH, skipping", "tool", j.Runner.Name())
			stats.Jobs = append(stats.Jobs, JobStats{
				Category: j.Category,
				Tool:     j.Runner.Name(),
				Target:   j.Target,
				Output:   j.Output,
				Skipped:  true,
			})
			continue
		}

		wg.Add(1)
		go func(job Job) {
			defer wg.Done()
			js := runJob(ctx, fs, job, verbose)

			mu.Lock()
			defer mu.Unlock()
			stats.Jobs = append(stats.Jobs, js)
			if js.Err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s failed: %w", job.Runner.Name(), js.Err))
			}
		}(j)
	}

	wg.Wait()

	order := make(map[types.Category]int, len(types.Categories))
	for i, c := range types.Categories {
		order[c] = i
	}
	sort.SliceStable(stats.Jobs, func(i, k int) bool {
		return order[stats.Jobs[i].Category] < order[stats.Jobs[k].Category]
	})

	return stats, errs
}

func runJob(ctx context.Context, fs afero.Fs, job Job, verbose bool) JobStats {
	js := JobStats{
		Category: job.Category,
		Tool:     job.Runner.Name(),
		Target:   job.Target,
		Output:   job.Output,
	}

	start := time.Now()
	slog.Info("running scanner", "tool", js.Tool, "target", job.Target)
	data, err := job.Runner.Run(ctx, job.Target, verbose)
	js.Duration = time.Since(start)
	if err != nil {
		js.Err = err
		return js
	}

	if !json.Valid(data) {
		js.Err = fmt.Errorf("%s produced output that is not valid JSON", js.Tool)
		return js
	}

	if job.Category == types.CategoryStatic {
		js.Findings = len(extract.Semgrep(data))
	} else {
		js.Findings = len(extract.Trivy(data, job.Category))
	}

	if dir := filepath.Dir(job.Output); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			js.Err = fmt.Errorf("failed to create report directory: %w", err)
			return js
		}
	}
	if err := afero.WriteFile(fs, job.Output, data, 0o644); err != nil {
		js.Err = fmt.Errorf("failed to write report: %w", err)
		return js
	}
	js.Bytes = len(data)
	slog.Info("wrote report", "tool", js.Tool, "path", job.Output, "findings", js.Findings, "duration", js.Duration.Round(time.Millisecond))
	return js
}
