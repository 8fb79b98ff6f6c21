package renderer

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/olekukonko/tablewriter"

	"github.com/northcutted/scanboard/pkg/types"
	"github.com/northcutted/scanboard/pkg/view"
)

const defaultBarWidth = 30

var severityColors = map[string]string{
	string(types.SeverityCritical): "#8b0000",
	string(types.SeverityHigh):     "#d1242f",
	string(types.SeverityMedium):   "#bf8700",
	string(types.SeverityLow):      "#0969da",
	string(types.SeverityUnknown):  "#6e7781",
	string(types.KindStatic):       "#8250df",
	string(types.KindDependency):   "#1a7f37",
}

// RenderText writes the model for a terminal: a summary line, two bar
// charts, and one table per category.
func RenderText(w io.Writer, m *view.Model, opts Options) error {
	t := &textWriter{w: w, p: opts.Profile, width: opts.BarWidth}
	if t.width <= 0 {
		t.width = defaultBarWidth
	}

	t.summary(m.Summary)
	t.chart("By severity", m.SeverityChart)
	t.chart("By source", m.SourceChart)
	for _, tbl := range m.Tables {
		t.table(tbl)
	}
	if len(m.Selected) > 0 {
		t.printf("Selected: %s\n", strings.Join(m.Selected, ", "))
	}
	return t.err
}

type textWriter struct {
	w     io.Writer
	p     termenv.Profile
	width int
	err   error
}

func (t *textWriter) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) colour(key, s string) string {
	hex, ok := severityColors[key]
	if !ok {
		return s
	}
	return t.p.String(s).Foreground(t.p.Color(hex)).String()
}

func (t *textWriter) summary(s view.Summary) {
	t.printf("%s\n", t.p.String("Security Findings").Bold().String())
	parts := []string{fmt.Sprintf("Total: %d", s.Total)}
	for _, l := range s.Levels {
		parts = append(parts, t.colour(l.Key, fmt.Sprintf("%s: %d", l.Label, l.Count)))
	}
	parts = append(parts, fmt.Sprintf("Dismissed: %d", s.Dismissed))
	t.printf("%s\n\n", strings.Join(parts, "  "))
}

func (t *textWriter) chart(title string, buckets []view.Bucket) {
	t.printf("%s\n", title)
	labelWidth := 0
	for _, b := range buckets {
		if len(b.Label) > labelWidth {
			labelWidth = len(b.Label)
		}
	}
	for _, b := range buckets {
		n := int(math.Round(b.Percent / 100 * float64(t.width)))
		bar := t.colour(b.Key, strings.Repeat("█", n)) + strings.Repeat("·", t.width-n)
		t.printf("  %-*s %s %4d  %s\n", labelWidth, b.Label, bar, b.Count, percent(b.Percent))
	}
	t.printf("\n")
}

func (t *textWriter) table(tbl view.Table) {
	if t.err != nil {
		return
	}
	t.printf("%s  (page %d/%d, %d findings)\n", t.p.String(tbl.Title).Bold().String(),
		tbl.Pagination.Page, tbl.Pagination.Pages, tbl.Pagination.Total)

	if len(tbl.Modules) > 0 {
		mods := make([]string, 0, len(tbl.Modules))
		for _, mod := range tbl.Modules {
			label := fmt.Sprintf("%s (%d)", mod.Key, mod.Total)
			if mod.Active {
				label = "[" + label + "]"
			}
			mods = append(mods, label)
		}
		t.printf("Modules: %s\n", strings.Join(mods, "  "))
	}

	if len(tbl.Rows) == 0 {
		t.printf("No findings.\n\n")
		return
	}

	tw := tablewriter.NewWriter(t.w)
	tw.SetBorder(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)

	if tbl.Kind == types.KindStatic {
		tw.SetHeader([]string{"Key", "Severity", "Rule", "Message", "Location"})
		for _, r := range tbl.Rows {
			tw.Append([]string{t.key(r), t.colour(r.Severity, r.Severity), r.ID, truncate(r.Message, 60), r.Location})
		}
	} else {
		tw.SetHeader([]string{"Key", "Severity", "ID", "Package", "Installed", "Fixed"})
		for _, r := range tbl.Rows {
			tw.Append([]string{t.key(r), t.colour(r.Severity, r.Severity), r.ID, r.Package, r.Installed, r.Fixed})
		}
	}
	tw.Render()

	if len(tbl.Packages) > 0 {
		t.printf("\n")
		pw := tablewriter.NewWriter(t.w)
		pw.SetBorder(false)
		pw.SetAlignment(tablewriter.ALIGN_LEFT)
		pw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		pw.SetHeader([]string{"Package", "Installed", "Max", "Findings", "Recommended Fix"})
		for _, p := range tbl.Packages {
			pw.Append([]string{p.Package, p.Installed, t.colour(p.MaxSeverity, p.MaxSeverity), strconv.Itoa(p.Count), p.RecommendedFix})
		}
		pw.Render()
	}
	t.printf("\n")
}

func (t *textWriter) key(r view.Row) string {
	k := r.Key
	if r.Selected {
		k = "*" + k
	}
	if r.Dismissed {
		k += " (dismissed)"
	}
	return k
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
