package renderer

import (
	"io"
	"strings"
	"text/template"

	"github.com/northcutted/scanboard/pkg/view"
)

const markdownTemplate = `# Security Findings

_Generated {{ .GeneratedAt.Format "2006-01-02 15:04 MST" }}_

| Total | Critical | High | Medium | Low | Unknown | Dismissed |
|-------|----------|------|--------|-----|---------|-----------|
| {{ .Summary.Total }} |{{ range .Summary.Levels }} {{ .Count }} |{{ end }} {{ .Summary.Dismissed }} |

### By Severity

| Severity | Count | Share |
|----------|-------|-------|
{{- range .SeverityChart }}
| {{ .Label }} | {{ .Count }} | {{ pct .Percent }} |
{{- end }}

### By Source

| Source | Count | Share |
|--------|-------|-------|
{{- range .SourceChart }}
| {{ .Label }} | {{ .Count }} | {{ pct .Percent }} |
{{- end }}
{{ range .Tables }}
## {{ .Title }}

_Page {{ .Pagination.Page }} of {{ .Pagination.Pages }}, {{ .Pagination.Total }} findings_
{{- if .Modules }}

<details>
<summary>Modules (depth {{ .Filters.Depth }})</summary>

| Module | Total | Critical | High | Medium | Low |
|--------|-------|----------|------|--------|-----|
{{- range .Modules }}
| {{ if .Active }}**{{ cell .Key }}**{{ else }}{{ cell .Key }}{{ end }} | {{ .Total }} | {{ index .Counts "CRITICAL" }} | {{ index .Counts "HIGH" }} | {{ index .Counts "MEDIUM" }} | {{ index .Counts "LOW" }} |
{{- end }}
</details>
{{- end }}
{{- if .Packages }}

<details>
<summary>Packages</summary>

| Package | Installed | Max Severity | Findings | Recommended Fix |
|---------|-----------|--------------|----------|-----------------|
{{- range .Packages }}
| {{ cell .Package }} | {{ cell .Installed }} | {{ .MaxSeverity }} | {{ .Count }} | {{ cell .RecommendedFix }} |
{{- end }}
</details>
{{- end }}

{{ if not .Rows -}}
*No findings.*
{{- else if eq .Kind "SAST" -}}
| Severity | Rule | Message | Location | Standards | Remediation |
|----------|------|---------|----------|-----------|-------------|
{{- range .Rows }}
| {{ .Severity }} | ` + "`{{ cell .ID }}`" + ` | {{ cell .Message }} | {{ cell .Location }} | {{ cell .Standards }} | {{ cell .Remediation }} |
{{- end }}
{{- else -}}
| Severity | ID | Package | Installed | Fixed | Message | Remediation |
|----------|----|---------|-----------|-------|---------|-------------|
{{- range .Rows }}
| {{ .Severity }} | {{ if .URL }}[{{ cell .ID }}]({{ .URL }}){{ else }}{{ cell .ID }}{{ end }} | {{ cell .Package }} | {{ cell .Installed }} | {{ cell .Fixed }} | {{ cell .Message }} | {{ cell .Remediation }} |
{{- end }}
{{- end }}
{{ end }}`

var markdownTmpl = template.Must(template.New("markdown").Funcs(template.FuncMap{
	"pct":  percent,
	"cell": markdownCell,
}).Parse(markdownTemplate))

// RenderMarkdown writes the model as a Markdown document.
func RenderMarkdown(w io.Writer, m *view.Model) error {
	return markdownTmpl.Execute(w, m)
}

// markdownCell keeps a value inside a single table cell.
func markdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
