// Package renderer formats a view.Model. It makes no decisions about what
// to show; everything it prints is already in the model.
package renderer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/northcutted/scanboard/pkg/view"
)

// Format selects an output representation.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatMarkdown, FormatHTML, FormatJSON}

// ParseFormat resolves a user-supplied format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (want %s)", s, FormatNames())
}

// FormatNames lists the supported formats for help and error text.
func FormatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Extension returns the file extension for a format, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	case FormatJSON:
		return ".json"
	}
	return ".txt"
}

// Options tunes rendering.
type Options struct {
	// Profile is the terminal colour profile for text output. The zero
	// value is termenv.TrueColor; use termenv.Ascii to disable colour.
	Profile termenv.Profile
	// BarWidth is the width of a full chart bar in text output.
	BarWidth int
}

// Render writes m to w in the given format.
func Render(w io.Writer, m *view.Model, format Format, opts Options) error {
	switch format {
	case FormatText, "":
		return RenderText(w, m, opts)
	case FormatMarkdown:
		return RenderMarkdown(w, m)
	case FormatHTML:
		return RenderHTML(w, m)
	case FormatJSON:
		return RenderJSON(w, m)
	}
	return fmt.Errorf("unknown format %q", format)
}

// RenderJSON writes the model as indented JSON.
func RenderJSON(w io.Writer, m *view.Model) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode view model: %w", err)
	}
	return nil
}

func percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
