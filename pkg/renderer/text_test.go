package renderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderText(&buf, testModel(t), Options{Profile: termenv.Ascii, BarWidth: 10}); err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}
	output := buf.String()

	if strings.Contains(output, "\x1b[") {
		t.Error("expected no escape sequences with the Ascii profile")
	}
	for _, want := range []string{
		"Total: 2",
		"Dismissed: 1",
		"█████·····",
		"*sca-fs:1",
		"Modules: src/web (1)",
		"Selected: sca-fs:1",
		"No findings.",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected text output to contain %q, got:\n%s", want, output)
		}
	}
}
