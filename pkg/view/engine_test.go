package view

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northcutted/scanboard/pkg/grouping"
	"github.com/northcutted/scanboard/pkg/types"
)

type memStore map[string]bool

func (m memStore) IsDismissed(key string) bool { return m[key] }

func (m memStore) Toggle(key string) (bool, error) {
	m[key] = !m[key]
	return m[key], nil
}

func staticFindings() []types.Finding {
	return []types.Finding{
		{Key: "s1", Kind: types.KindStatic, Severity: types.SeverityLow, ID: "rule.b", Message: "Weak hash", Location: "src/api/auth.ts:10"},
		{Key: "s2", Kind: types.KindStatic, Severity: types.SeverityHigh, ID: "rule.a", Message: "Possible XSS", Location: "src/web/view.js:3"},
		{Key: "s3", Kind: types.KindStatic, Severity: types.SeverityHigh, ID: "rule.c", Message: "SQL injection", Location: "src/api/users.ts:20"},
		{Key: "s4", Kind: types.KindStatic, Severity: types.SeverityCritical, ID: "Rule.D", Message: "Hardcoded secret", Location: "lib/keys.go:1"},
		{Key: "s5", Kind: types.KindStatic, Severity: types.SeverityUnknown, ID: "rule.e", Message: "odd", Location: "main.go:1"},
	}
}

func keys(fs []types.Finding) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Key)
	}
	return out
}

func TestApply_DefaultSortsBySeverityDescending(t *testing.T) {
	st := NewState(types.CategoryStatic)
	got := Apply(staticFindings(), st, nil)
	assert.Equal(t, []string{"s4", "s2", "s3", "s1", "s5"}, keys(got), "stable for equal weights")
}

func TestApply_Predicates(t *testing.T) {
	data := staticFindings()
	dismissed := memStore{"s2": true}

	tests := []struct {
		name  string
		setup func(*State)
		want  []string
	}{
		{"dismissed hidden", func(s *State) {}, []string{"s4", "s3", "s1", "s5"}},
		{"show dismissed", func(s *State) { s.ShowDismissed = true }, []string{"s4", "s2", "s3", "s1", "s5"}},
		{"severity", func(s *State) { s.SetSeverity("high") }, []string{"s3"}},
		{"search id", func(s *State) { s.Search = "RULE.d" }, []string{"s4"}},
		{"search message", func(s *State) { s.Search = "xss"; s.ShowDismissed = true }, []string{"s2"}},
		{"search location", func(s *State) { s.Search = "src/api" }, []string{"s3", "s1"}},
		{"module", func(s *State) { s.Module = "src/api" }, []string{"s3", "s1"}},
		{"module and severity", func(s *State) { s.Module = "src/api"; s.SetSeverity("LOW") }, []string{"s1"}},
		{"no match", func(s *State) { s.Search = "nothing-here" }, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewState(types.CategoryStatic)
			tt.setup(st)
			got := Apply(data, st, dismissed)
			assert.Equal(t, tt.want, keys(got))

			// Subset property: every result is in the input and satisfies the predicates.
			for _, f := range got {
				assert.Contains(t, keys(data), f.Key)
				if !st.ShowDismissed {
					assert.False(t, dismissed.IsDismissed(f.Key))
				}
				if st.Severity != "" {
					assert.Equal(t, st.Severity, f.Severity)
				}
				if st.Module != "" {
					assert.Equal(t, st.Module, grouping.ModuleKey(f.Location, st.Depth))
				}
				if st.Search != "" {
					assert.True(t, matches(f, strings.ToLower(st.Search)))
				}
			}
		})
	}
}

func TestApply_SearchesPackage(t *testing.T) {
	data := []types.Finding{
		{Key: "d1", Kind: types.KindDependency, ID: "CVE-1", Message: "m", Package: "OpenSSL"},
		{Key: "d2", Kind: types.KindDependency, ID: "CVE-2", Message: "m", Package: "zlib"},
	}
	st := NewState(types.CategoryFS)
	st.Search = "openssl"
	assert.Equal(t, []string{"d1"}, keys(Apply(data, st, nil)))

	st.Search = ""
	st.Module = "src"
	assert.Len(t, Apply(data, st, nil), 2, "module filter only applies to static findings")
}

func TestApply_ResetsPageAndKeepsInput(t *testing.T) {
	data := staticFindings()
	before := keys(data)
	st := NewState(types.CategoryStatic)
	st.Page = 4
	Apply(data, st, nil)
	assert.Equal(t, 1, st.Page)
	assert.Equal(t, before, keys(data))
}

func TestSort_Columns(t *testing.T) {
	data := staticFindings()
	Sort(data, "id", true)
	assert.Equal(t, []string{"s2", "s1", "s3", "s4", "s5"}, keys(data), "case-insensitive")

	Sort(data, "id", false)
	assert.Equal(t, []string{"s5", "s4", "s3", "s1", "s2"}, keys(data))

	Sort(data, "severity", true)
	assert.Equal(t, []string{"s5", "s1", "s3", "s2", "s4"}, keys(data))
}

func TestToggleSort_IsInvolution(t *testing.T) {
	st := NewState(types.CategoryStatic)
	original := Apply(staticFindings(), st, nil)

	st.ToggleSort("severity")
	st.ToggleSort("severity")
	assert.False(t, st.SortAsc)

	again := Apply(staticFindings(), st, nil)
	assert.Equal(t, keys(original), keys(again))

	st.ToggleSort("id")
	assert.Equal(t, "id", st.SortColumn)
	assert.True(t, st.SortAsc)
}

func TestSetDepth_ClearsModule(t *testing.T) {
	st := NewState(types.CategoryStatic)
	st.Module = "src/api"
	st.SetDepth(st.Depth)
	assert.Equal(t, "src/api", st.Module)

	st.SetDepth(3)
	assert.Empty(t, st.Module)
	assert.Equal(t, 3, st.Depth)
}

func TestPaginate(t *testing.T) {
	var items []types.Finding
	for i := 0; i < 23; i++ {
		items = append(items, types.Finding{Key: fmt.Sprint(i)})
	}

	p := Paginate(items, 1, 10)
	assert.Len(t, p.Items, 10)
	assert.Equal(t, 3, p.Pages)
	assert.False(t, p.HasPrev)
	assert.True(t, p.HasNext)

	last := Paginate(items, 3, 10)
	assert.Len(t, last.Items, 3)
	assert.False(t, last.HasNext)

	clamped := Paginate(items, 99, 10)
	assert.Equal(t, 3, clamped.Number)

	empty := Paginate(nil, 1, 10)
	assert.Equal(t, 1, empty.Pages)
	assert.Empty(t, empty.Items)
}

func TestPaginate_CoversEverythingOnce(t *testing.T) {
	var items []types.Finding
	for i := 0; i < 37; i++ {
		items = append(items, types.Finding{Key: fmt.Sprint(i)})
	}
	for _, size := range append([]int{1, 7}, PageSizes...) {
		p := Paginate(items, 1, size)
		var joined []types.Finding
		for n := 1; n <= p.Pages; n++ {
			joined = append(joined, Paginate(items, n, size).Items...)
		}
		require.Equal(t, keys(items), keys(joined), "page size %d", size)
	}
}

func TestStateSetPageSize(t *testing.T) {
	st := NewState(types.CategoryFS)
	st.Page = 3
	require.NoError(t, st.SetPageSize(25))
	assert.Equal(t, 1, st.Page)
	assert.Error(t, st.SetPageSize(0))

	st.Step(-5)
	assert.Equal(t, 1, st.Page)
}
