// Package runner invokes the external scanners that produce the reports
// scanboard reads.
package runner

import (
	"context"
	"fmt"
	"os/exec"
)

// SemgrepRunner runs 'semgrep scan --json' over a source directory.
type SemgrepRunner struct {
	// Config is the rule set passed to --config. Defaults to "auto".
	Config string
	binary string
}

// Name returns the display name for this runner.
func (r *SemgrepRunner) Name() string { return "semgrep" }

// IsAvailable checks whether the semgrep binary is installed.
func (r *SemgrepRunner) IsAvailable() bool {
	if path, err := lookupTool("semgrep"); err == nil {
		r.binary = path
		return true
	}
	return false
}

func (r *SemgrepRunner) args(dir string) []string {
	config := r.Config
	if config == "" {
		config = "auto"
	}
	return []string{"scan", "--config", config, "--json", "--quiet", "--metrics", "off", dir}
}

// Run scans dir and returns the JSON report. Exit code 1 means findings
// were reported and is not an error.
func (r *SemgrepRunner) Run(ctx context.Context, dir string, verbose bool) ([]byte, error) {
	if r.binary == "" {
		if !r.IsAvailable() {
			return nil, fmt.Errorf("semgrep not found")
		}
	}
	runCtx, cancel := context.WithTimeout(ctx, TimeoutScan)
	defer cancel()
	cmd := exec.CommandContext(runCtx, r.binary, r.args(dir)...)
	return runCommand(cmd, verbose, 1)
}
