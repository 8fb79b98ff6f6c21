package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// TimeoutScan bounds a single scanner invocation.
const TimeoutScan = 15 * time.Minute

// lookupTool resolves the path to an external tool binary on PATH.
var lookupTool = exec.LookPath

// ToolRunner runs one scanner against a target and returns its JSON report.
type ToolRunner interface {
	Name() string
	IsAvailable() bool
	Run(ctx context.Context, target string, verbose bool) ([]byte, error)
}

// runCommand executes a command and returns its stdout. okCodes lists
// non-zero exit codes that still produce a usable report.
func runCommand(cmd *exec.Cmd, verbose bool, okCodes ...int) ([]byte, error) {
	if verbose {
		slog.Debug("running command", "cmd", cmd.String())
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && acceptable(exitErr.ExitCode(), okCodes) {
			slog.Debug("command exited with accepted code", "cmd", cmd.Path, "code", exitErr.ExitCode())
		} else {
			return nil, fmt.Errorf("command failed: %w\nStderr: %s", err, strings.TrimSpace(stderr.String()))
		}
	}

	if verbose {
		slog.Debug("command finished", "cmd", cmd.Path, "bytes", len(output))
	}
	return output, nil
}

func acceptable(code int, okCodes []int) bool {
	for _, c := range okCodes {
		if c == code {
			return true
		}
	}
	return false
}
