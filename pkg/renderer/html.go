package renderer

import (
	"html/template"
	"io"
	"strings"

	"github.com/northcutted/scanboard/pkg/view"
)

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Security Findings</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; color: #1f2328; }
table { border-collapse: collapse; width: 100%; margin: 0.5rem 0 1.5rem; }
th, td { border: 1px solid #d0d7de; padding: 0.3rem 0.5rem; text-align: left; vertical-align: top; }
th { background: #f6f8fa; }
.cards { display: flex; gap: 1rem; }
.card { border: 1px solid #d0d7de; border-radius: 6px; padding: 0.5rem 1rem; }
.bar { background: #d0d7de; height: 0.8rem; }
.bar span { display: block; height: 100%; }
.sev-critical { background: #8b0000; color: #fff; }
.sev-high { background: #d1242f; color: #fff; }
.sev-medium { background: #bf8700; color: #fff; }
.sev-low { background: #0969da; color: #fff; }
.sev-unknown { background: #6e7781; color: #fff; }
.src-sast { background: #8250df; }
.src-sca { background: #1a7f37; }
tr.dismissed { opacity: 0.5; }
tr.selected { outline: 2px solid #0969da; }
.active { font-weight: bold; }
</style>
</head>
<body>
<h1>Security Findings</h1>
<p><small>Generated {{ .GeneratedAt.Format "2006-01-02 15:04 MST" }}</small></p>

<div class="cards">
<div class="card">Total <strong>{{ .Summary.Total }}</strong></div>
{{- range .Summary.Levels }}
<div class="card">{{ .Label }} <strong>{{ .Count }}</strong></div>
{{- end }}
<div class="card">Dismissed <strong>{{ .Summary.Dismissed }}</strong></div>
</div>

<h2>By Severity</h2>
<table>
{{- range .SeverityChart }}
<tr><th>{{ .Label }}</th><td>{{ .Count }}</td><td style="width:60%"><div class="bar"><span class="sev-{{ lower .Key }}" style="width: {{ width .Percent }}%"></span></div></td><td>{{ pct .Percent }}</td></tr>
{{- end }}
</table>

<h2>By Source</h2>
<table>
{{- range .SourceChart }}
<tr><th>{{ .Label }}</th><td>{{ .Count }}</td><td style="width:60%"><div class="bar"><span class="src-{{ lower .Key }}" style="width: {{ width .Percent }}%"></span></div></td><td>{{ pct .Percent }}</td></tr>
{{- end }}
</table>
{{ range .Tables }}
<section id="{{ .Category }}">
<h2>{{ .Title }}</h2>
<p>Page {{ .Pagination.Page }} of {{ .Pagination.Pages }}, {{ .Pagination.Total }} findings</p>
{{- if .Modules }}
<details>
<summary>Modules (depth {{ .Filters.Depth }})</summary>
<table>
<tr><th>Module</th><th>Total</th><th>Critical</th><th>High</th><th>Medium</th><th>Low</th></tr>
{{- range .Modules }}
<tr{{ if .Active }} class="active"{{ end }}><td>{{ .Key }}</td><td>{{ .Total }}</td><td>{{ index .Counts "CRITICAL" }}</td><td>{{ index .Counts "HIGH" }}</td><td>{{ index .Counts "MEDIUM" }}</td><td>{{ index .Counts "LOW" }}</td></tr>
{{- end }}
</table>
</details>
{{- end }}
{{- if .Packages }}
<details>
<summary>Packages</summary>
<table>
<tr><th>Package</th><th>Installed</th><th>Max Severity</th><th>Findings</th><th>Recommended Fix</th></tr>
{{- range .Packages }}
<tr><td>{{ .Package }}</td><td>{{ .Installed }}</td><td><span class="sev-{{ lower .MaxSeverity }}">{{ .MaxSeverity }}</span></td><td>{{ .Count }}</td><td>{{ .RecommendedFix }}</td></tr>
{{- end }}
</table>
</details>
{{- end }}
{{- if not .Rows }}
<p><em>No findings.</em></p>
{{- else if eq .Kind "SAST" }}
<table>
<tr><th>Severity</th><th>Rule</th><th>Message</th><th>Location</th><th>Standards</th><th>Remediation</th></tr>
{{- range .Rows }}
<tr class="{{ rowClass . }}" data-key="{{ .Key }}"><td><span class="sev-{{ lower .Severity }}">{{ .Severity }}</span></td><td><code>{{ .ID }}</code></td><td>{{ .Message }}</td><td>{{ .Location }}</td><td>{{ .Standards }}</td><td>{{ .Remediation }}</td></tr>
{{- end }}
</table>
{{- else }}
<table>
<tr><th>Severity</th><th>ID</th><th>Package</th><th>Installed</th><th>Fixed</th><th>Message</th><th>Remediation</th></tr>
{{- range .Rows }}
<tr class="{{ rowClass . }}" data-key="{{ .Key }}"><td><span class="sev-{{ lower .Severity }}">{{ .Severity }}</span></td><td>{{ if .URL }}<a href="{{ .URL }}">{{ .ID }}</a>{{ else }}{{ .ID }}{{ end }}</td><td>{{ .Package }}</td><td>{{ .Installed }}</td><td>{{ .Fixed }}</td><td>{{ .Message }}</td><td>{{ .Remediation }}</td></tr>
{{- end }}
</table>
{{- end }}
</section>
{{ end }}
</body>
</html>
`

var htmlTmpl = template.Must(template.New("html").Funcs(template.FuncMap{
	"pct":      percent,
	"lower":    strings.ToLower,
	"width":    func(p float64) string { return strings.TrimSuffix(percent(p), "%") },
	"rowClass": rowClass,
}).Parse(htmlTemplate))

// RenderHTML writes the model as a standalone HTML page. All values are
// escaped by html/template.
func RenderHTML(w io.Writer, m *view.Model) error {
	return htmlTmpl.Execute(w, m)
}

func rowClass(r view.Row) string {
	var classes []string
	if r.Dismissed {
		classes = append(classes, "dismissed")
	}
	if r.Selected {
		classes = append(classes, "selected")
	}
	return strings.Join(classes, " ")
}
