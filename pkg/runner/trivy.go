package runner

import (
	"context"
	"fmt"
	"os/exec"
)

// Trivy scan modes.
const (
	TrivyFilesystem = "fs"
	TrivyImage      = "image"
)

// TrivyRunner runs 'trivy fs' or 'trivy image' with JSON output.
type TrivyRunner struct {
	Mode   string
	binary string
}

// Name returns the display name for this runner.
func (r *TrivyRunner) Name() string { return "trivy " + r.mode() }

// IsAvailable checks whether the trivy binary is installed.
func (r *TrivyRunner) IsAvailable() bool {
	if path, err := lookupTool("trivy"); err == nil {
		r.binary = path
		return true
	}
	return false
}

func (r *TrivyRunner) mode() string {
	if r.Mode == "" {
		return TrivyFilesystem
	}
	return r.Mode
}

func (r *TrivyRunner) args(target string) []string {
	return []string{r.mode(), "--format", "json", "--quiet", "--scanners", "vuln", target}
}

// Run scans target, a directory for fs mode or an image reference for
// image mode, and returns the JSON report.
func (r *TrivyRunner) Run(ctx context.Context, target string, verbose bool) ([]byte, error) {
	if r.mode() != TrivyFilesystem && r.mode() != TrivyImage {
		return nil, fmt.Errorf("unknown trivy mode %q", r.Mode)
	}
	if r.binary == "" {
		if !r.IsAvailable() {
			return nil, fmt.Errorf("trivy not found")
		}
	}
	runCtx, cancel := context.WithTimeout(ctx, TimeoutScan)
	defer cancel()
	cmd := exec.CommandContext(runCtx, r.binary, r.args(target)...)
	return runCommand(cmd, verbose)
}
