package view

import (
	"sort"
	"strings"

	"github.com/northcutted/scanboard/pkg/grouping"
	"github.com/northcutted/scanboard/pkg/types"
)

// Dismissed reports whether a finding key has been hidden by the user.
type Dismissed interface {
	IsDismissed(key string) bool
}

// Apply filters and sorts data according to st and resets st to page 1.
// The input slice is never modified.
func Apply(data []types.Finding, st *State, dismissed Dismissed) []types.Finding {
	search := strings.ToLower(st.Search)
	out := make([]types.Finding, 0, len(data))

	for _, f := range data {
		if !st.ShowDismissed && dismissed != nil && dismissed.IsDismissed(f.Key) {
			continue
		}
		if st.Module != "" && f.Kind == types.KindStatic &&
			grouping.ModuleKey(f.Location, st.Depth) != st.Module {
			continue
		}
		if st.Severity != "" && f.Severity != st.Severity {
			continue
		}
		if search != "" && !matches(f, search) {
			continue
		}
		out = append(out, f)
	}

	Sort(out, st.SortColumn, st.SortAsc)
	st.Page = 1
	return out
}

func matches(f types.Finding, needle string) bool {
	for _, field := range []string{f.ID, f.Message, f.Package, f.Location} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Sort orders findings in place by col. Severity compares by weight, every
// other column case-insensitively. Equal keys keep their relative order.
func Sort(findings []types.Finding, col string, asc bool) {
	if col == "" {
		return
	}
	compare := func(a, b types.Finding) int {
		if col == "severity" {
			return a.Severity.Weight() - b.Severity.Weight()
		}
		return strings.Compare(strings.ToLower(a.Column(col)), strings.ToLower(b.Column(col)))
	}
	sort.SliceStable(findings, func(i, j int) bool {
		c := compare(findings[i], findings[j])
		if asc {
			return c < 0
		}
		return c > 0
	})
}

// Page is one slice of a filtered result.
type Page struct {
	Items   []types.Finding
	Number  int
	Pages   int
	Size    int
	Total   int
	HasPrev bool
	HasNext bool
}

// Paginate returns items [(page-1)*size, page*size). The page count is at
// least 1 and page is clamped into [1, Pages].
func Paginate(items []types.Finding, page, size int) Page {
	if size < 1 {
		size = DefaultPageSize
	}
	total := len(items)
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:   items[start:end],
		Number:  page,
		Pages:   pages,
		Size:    size,
		Total:   total,
		HasPrev: page > 1,
		HasNext: page < pages,
	}
}
