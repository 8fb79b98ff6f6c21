package renderer

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderHTML_Escapes(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, testModel(t)); err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	output := buf.String()

	if strings.Contains(output, "<script>") {
		t.Error("expected message markup to be escaped")
	}
	for _, want := range []string{
		"&lt;script&gt;",
		`<section id="sast">`,
		`class="selected" data-key="sca-fs:1"`,
		`<a href="https://avd.aquasec.com/nvd/cve-2021-23337">CVE-2021-23337</a>`,
		"width: 50.0%",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected html to contain %q", want)
		}
	}
}
