package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/northcutted/scanboard/pkg/renderer"
)

// resolveOutputPath determines the file a rendering is written to.
// An output without an extension gets the extension of the format
// (e.g. findings -> findings.html); an explicit extension is respected.
func resolveOutputPath(output string, format renderer.Format) string {
	if output == "" {
		return ""
	}
	if filepath.Ext(output) != "" {
		return output
	}
	return output + format.Extension()
}

// resolveExportPath joins an export directory with a generated file name.
func resolveExportPath(outDir, name string) string {
	if outDir == "" {
		outDir = "."
	}
	return filepath.Join(outDir, name)
}

// writeOutput writes content to path, creating parent directories.
func writeOutput(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	slog.Info("wrote output file", "path", path)
	return nil
}

// colorProfile picks the terminal profile for text output. Colour is off
// when disabled, when writing to a file, or when stdout is not a terminal.
func colorProfile(toFile bool) termenv.Profile {
	if settings.NoColor || toFile || !stdoutIsTerminal() {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

func stdoutIsTerminal() bool {
	f, ok := stdout.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// splitKeys flattens comma-separated and repeated key arguments.
func splitKeys(values []string) []string {
	var keys []string
	for _, v := range values {
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
	}
	return keys
}
