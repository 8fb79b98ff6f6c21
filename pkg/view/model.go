package view

import (
	"strings"
	"time"

	"github.com/northcutted/scanboard/pkg/grouping"
	"github.com/northcutted/scanboard/pkg/types"
)

// Model is the declarative description of a rendered board. Renderers only
// format it; all filtering, grouping, and counting happens before.
type Model struct {
	GeneratedAt   time.Time `json:"generatedAt"`
	Summary       Summary   `json:"summary"`
	SeverityChart []Bucket  `json:"severityChart"`
	SourceChart   []Bucket  `json:"sourceChart"`
	Tables        []Table   `json:"tables"`
	Selected      []string  `json:"selected,omitempty"`
}

// Summary counts the active, non-dismissed findings.
type Summary struct {
	Total     int      `json:"total"`
	Dismissed int      `json:"dismissed"`
	Levels    []Bucket `json:"levels"`
}

// Count returns the count of one severity level.
func (s Summary) Count(sev types.Severity) int {
	for _, l := range s.Levels {
		if l.Key == string(sev) {
			return l.Count
		}
	}
	return 0
}

// Bucket is one bar or slice of a histogram.
type Bucket struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Table is the view of one category.
type Table struct {
	Category   types.Category `json:"category"`
	Title      string         `json:"title"`
	Kind       types.Kind     `json:"kind"`
	Filters    Filters        `json:"filters"`
	Rows       []Row          `json:"rows"`
	Pagination Pagination     `json:"pagination"`
	Modules    []ModuleView   `json:"modules,omitempty"`
	Packages   []PackageView  `json:"packages,omitempty"`
}

// Filters echoes the state a table was built with.
type Filters struct {
	Search        string `json:"search,omitempty"`
	Severity      string `json:"severity,omitempty"`
	Module        string `json:"module,omitempty"`
	Depth         int    `json:"depth,omitempty"`
	ShowDismissed bool   `json:"showDismissed,omitempty"`
	SortColumn    string `json:"sortColumn"`
	SortAsc       bool   `json:"sortAsc"`
}

// Pagination describes the page shown.
type Pagination struct {
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	Size    int  `json:"size"`
	Total   int  `json:"total"`
	HasPrev bool `json:"hasPrev"`
	HasNext bool `json:"hasNext"`
}

// Row is one finding as displayed.
type Row struct {
	Key         string `json:"key"`
	Severity    string `json:"severity"`
	ID          string `json:"id"`
	Message     string `json:"message"`
	RuleGroup   string `json:"ruleCategory,omitempty"`
	Location    string `json:"location,omitempty"`
	Package     string `json:"package,omitempty"`
	Installed   string `json:"installed,omitempty"`
	Fixed       string `json:"fixed,omitempty"`
	Standards   string `json:"standards"`
	Remediation string `json:"remediation"`
	URL         string `json:"url,omitempty"`
	Dismissed   bool   `json:"dismissed,omitempty"`
	Selected    bool   `json:"selected,omitempty"`
}

// ModuleView summarizes a module bucket for drill-down.
type ModuleView struct {
	Key    string         `json:"key"`
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
	Active bool           `json:"active,omitempty"`
}

// PackageView summarizes a package bucket.
type PackageView struct {
	Package        string `json:"package"`
	Installed      string `json:"installed"`
	MaxSeverity    string `json:"maxSeverity"`
	Count          int    `json:"count"`
	RecommendedFix string `json:"recommendedFix"`
}

// Build projects the current board state into a Model.
func Build(b *Board, now time.Time) *Model {
	active := b.Active()

	m := &Model{
		GeneratedAt:   now,
		Summary:       summarize(active, b),
		SeverityChart: severityHistogram(active),
		SourceChart:   sourceHistogram(active),
		Selected:      b.Selection.Keys(),
	}
	for _, c := range types.Categories {
		m.Tables = append(m.Tables, buildTable(b, c))
	}
	return m
}

func buildTable(b *Board, c types.Category) Table {
	st := b.State(c)
	page := b.Page(c)
	filtered := b.Filtered(c)

	t := Table{
		Category: c,
		Title:    c.Title(),
		Kind:     c.Kind(),
		Filters: Filters{
			Search:        st.Search,
			Severity:      string(st.Severity),
			Module:        st.Module,
			ShowDismissed: st.ShowDismissed,
			SortColumn:    st.SortColumn,
			SortAsc:       st.SortAsc,
		},
		Rows: make([]Row, 0, len(page.Items)),
		Pagination: Pagination{
			Page:    page.Number,
			Pages:   page.Pages,
			Size:    page.Size,
			Total:   page.Total,
			HasPrev: page.HasPrev,
			HasNext: page.HasNext,
		},
	}

	for _, f := range page.Items {
		t.Rows = append(t.Rows, Row{
			Key:         f.Key,
			Severity:    string(f.Severity),
			ID:          f.ID,
			Message:     f.Message,
			RuleGroup:   f.RuleGroup,
			Location:    f.Location,
			Package:     f.Package,
			Installed:   f.Installed,
			Fixed:       f.Fixed,
			Standards:   Standards(f),
			Remediation: f.Remediation,
			URL:         f.URL,
			Dismissed:   b.IsDismissed(f.Key),
			Selected:    b.Selection.Contains(f.Key),
		})
	}

	if t.Kind == types.KindStatic {
		t.Filters.Depth = st.Depth
		// Module buckets are computed without the module filter itself so
		// the user can switch between siblings.
		unscoped := *st
		unscoped.Module = ""
		for _, g := range grouping.ByModule(Apply(b.Data(c), &unscoped, b.dismissed()), st.Depth) {
			counts := make(map[string]int, len(g.Counts))
			for sev, n := range g.Counts {
				counts[string(sev)] = n
			}
			t.Modules = append(t.Modules, ModuleView{
				Key:    g.Key,
				Total:  g.Total(),
				Counts: counts,
				Active: g.Key == st.Module,
			})
		}
	} else {
		for _, g := range grouping.ByPackage(filtered) {
			t.Packages = append(t.Packages, PackageView{
				Package:        g.Package,
				Installed:      g.Installed,
				MaxSeverity:    string(g.MaxSeverity()),
				Count:          len(g.Findings),
				RecommendedFix: g.RecommendedFix,
			})
		}
	}
	return t
}

// Standards joins the reference tags of a finding, or "N/A" when there are none.
func Standards(f types.Finding) string {
	if len(f.Standards) == 0 {
		return types.NoFixAvailable
	}
	return strings.Join(f.Standards, ", ")
}

func summarize(active []types.Finding, b *Board) Summary {
	s := Summary{
		Total:  len(active),
		Levels: severityHistogram(active),
	}
	for _, c := range types.Categories {
		for _, f := range b.Data(c) {
			if b.IsDismissed(f.Key) {
				s.Dismissed++
			}
		}
	}
	return s
}

func severityHistogram(findings []types.Finding) []Bucket {
	counts := make(map[types.Severity]int, len(types.Severities))
	for _, f := range findings {
		sev := f.Severity
		if !sev.Valid() {
			sev = types.SeverityUnknown
		}
		counts[sev]++
	}

	buckets := make([]Bucket, 0, len(types.Severities))
	for _, sev := range types.Severities {
		buckets = append(buckets, Bucket{
			Key:     string(sev),
			Label:   sev.Label(),
			Count:   counts[sev],
			Percent: percent(counts[sev], len(findings)),
		})
	}
	return buckets
}

func sourceHistogram(findings []types.Finding) []Bucket {
	var static, deps int
	for _, f := range findings {
		if f.Kind == types.KindStatic {
			static++
		} else {
			deps++
		}
	}
	return []Bucket{
		{Key: string(types.KindStatic), Label: "SAST (Code)", Count: static, Percent: percent(static, len(findings))},
		{Key: string(types.KindDependency), Label: "SCA (Dependencies)", Count: deps, Percent: percent(deps, len(findings))},
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
