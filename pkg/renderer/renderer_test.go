package renderer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/northcutted/scanboard/pkg/types"
	"github.com/northcutted/scanboard/pkg/view"
)

type dismissedSet map[string]bool

func (d dismissedSet) IsDismissed(key string) bool { return d[key] }

func (d dismissedSet) Toggle(key string) (bool, error) {
	d[key] = !d[key]
	return d[key], nil
}

func testModel(t *testing.T) *view.Model {
	t.Helper()
	b := view.NewBoard(map[types.Category][]types.Finding{
		types.CategoryStatic: {
			{Key: "sast:1", Kind: types.KindStatic, Severity: types.SeverityHigh, ID: "js.xss", Message: "Possible XSS | <script>", Location: "src/web/view.js:3", Standards: []string{"CWE-79"}, Remediation: "Sanitize user input."},
			{Key: "sast:2", Kind: types.KindStatic, Severity: types.SeverityLow, ID: "go.weak-hash", Message: "Weak hash", Location: "pkg/hash.go:9", Remediation: "Review the code."},
		},
		types.CategoryFS: {
			{Key: "sca-fs:1", Kind: types.KindDependency, Severity: types.SeverityCritical, ID: "CVE-2021-23337", Package: "lodash", Installed: "4.17.20", Fixed: "4.17.21", URL: "https://avd.aquasec.com/nvd/cve-2021-23337", Message: "Command injection"},
		},
	}, dismissedSet{"sast:2": true})
	b.Selection.Toggle("sca-fs:1")
	return view.Build(b, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, testModel(t), FormatJSON, Options{}); err != nil {
		t.Fatalf("Render(json) error = %v", err)
	}

	var decoded view.Model
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Summary.Total != 2 || len(decoded.Tables) != 3 {
		t.Errorf("unexpected decoded model: total=%d tables=%d", decoded.Summary.Total, len(decoded.Tables))
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		ext     string
		wantErr bool
	}{
		{"", FormatText, ".txt", false},
		{"md", FormatMarkdown, ".md", false},
		{"HTML", FormatHTML, ".html", false},
		{"json", FormatJSON, ".json", false},
		{"pdf", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want || got.Extension() != tt.ext {
				t.Errorf("ParseFormat(%q) = %q (%s), want %q (%s)", tt.in, got, got.Extension(), tt.want, tt.ext)
			}
		})
	}
}

func TestParseFormat_ErrorListsFormats(t *testing.T) {
	_, err := ParseFormat("pdf")
	if err == nil {
		t.Fatal("expected an error for pdf")
	}
	for _, f := range Formats {
		if !strings.Contains(err.Error(), string(f)) {
			t.Errorf("expected error to mention %q, got %q", f, err)
		}
	}
}
