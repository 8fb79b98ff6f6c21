package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northcutted/scanboard/pkg/types"
)

func TestModuleKey(t *testing.T) {
	tests := []struct {
		location string
		depth    int
		want     string
	}{
		{"src/api/auth.ts:10", 2, "src/api"},
		{"src/api/auth.ts:10", 1, "src"},
		{"src/api/auth.ts:10", 5, "src/api/auth.ts"},
		{"./src//api/./auth.ts:3", 2, "src/api"},
		{`src\win\file.cs:1`, 2, "src/win"},
		{"main.go:7", 2, "main.go"},
		{":0", 2, RootModule},
		{"./:1", 3, RootModule},
		{"", 2, RootModule},
		{"src/api/auth.ts:10", 0, "src"},
		{"C:/work/app.py:4", 1, "C:"},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, ModuleKey(tt.location, tt.depth))
		})
	}
}

func TestByModule(t *testing.T) {
	findings := []types.Finding{
		{Key: "1", Location: "src/web/index.js:4", Severity: types.SeverityLow},
		{Key: "2", Location: "src/api/auth.ts:10", Severity: types.SeverityHigh},
		{Key: "3", Location: "src/api/users.ts:20", Severity: types.SeverityHigh},
		{Key: "4", Location: "lib/util.go:1", Severity: types.SeverityCritical},
	}

	groups := ByModule(findings, 2)
	require.Len(t, groups, 3)

	assert.Equal(t, "lib/util.go", groups[0].Key)
	assert.Equal(t, "src/api", groups[1].Key)
	assert.Equal(t, "src/web", groups[2].Key)

	api := groups[1]
	assert.Equal(t, 2, api.Total())
	assert.Equal(t, "2", api.Findings[0].Key)
	assert.Equal(t, "3", api.Findings[1].Key)
	assert.Equal(t, 2, api.Counts[types.SeverityHigh])
	assert.Equal(t, 0, api.Counts[types.SeverityLow])
}

func TestByModule_SameDirectoryEndToEnd(t *testing.T) {
	groups := ByModule([]types.Finding{
		{Location: "src/api/auth.ts:10"},
		{Location: "src/api/users.ts:20"},
	}, 2)
	require.Len(t, groups, 1)
	assert.Equal(t, "src/api", groups[0].Key)
	assert.Len(t, groups[0].Findings, 2)
}

func TestByPackage(t *testing.T) {
	findings := []types.Finding{
		{Key: "a1", Package: "a", Installed: "1.0", Severity: types.SeverityLow, Fixed: "1.1"},
		{Key: "b1", Package: "b", Installed: "2.0", Severity: types.SeverityHigh, Fixed: types.NoFixAvailable},
		{Key: "a2", Package: "a", Installed: "1.0-other", Severity: types.SeverityCritical, Fixed: "1.3.0"},
		{Key: "c1", Package: "c", Installed: "3.0", Severity: types.SeverityHigh, Fixed: "3.1"},
		{Key: "b2", Package: "b", Installed: "2.0", Severity: types.SeverityHigh, Fixed: types.NoFixAvailable},
		{Key: "a3", Package: "a", Installed: "1.0", Severity: types.SeverityCritical, Fixed: "1.2"},
	}

	groups := ByPackage(findings)
	require.Len(t, groups, 3)

	assert.Equal(t, "a", groups[0].Package)
	assert.Equal(t, "b", groups[1].Package, "ties keep first appearance order")
	assert.Equal(t, "c", groups[2].Package)

	a := groups[0]
	assert.Equal(t, "1.0", a.Installed, "first-seen installed version")
	assert.Equal(t, types.SeverityCritical, a.MaxSeverity())
	assert.Equal(t, "a2", a.Worst.Key, "first finding reaching the max wins ties")
	assert.Len(t, a.Findings, 3)
	assert.Equal(t, "1.3.0", a.RecommendedFix)

	b := groups[1]
	assert.Equal(t, "b1", b.Worst.Key)
	assert.Equal(t, types.NoFixAvailable, b.RecommendedFix)
}

func TestByPackage_MaxSeverityMatchesMembers(t *testing.T) {
	members := []types.Finding{
		{Package: "p", Severity: types.SeverityUnknown},
		{Package: "p", Severity: types.SeverityMedium},
		{Package: "p", Severity: types.SeverityLow},
	}
	groups := ByPackage(members)
	require.Len(t, groups, 1)

	max := types.SeverityUnknown
	for _, f := range members {
		if f.Severity.Weight() > max.Weight() {
			max = f.Severity
		}
	}
	assert.Equal(t, max, groups[0].MaxSeverity())
}

func TestRecommendedFix_NonSemverFallback(t *testing.T) {
	got := recommendedFix([]types.Finding{
		{Fixed: types.NoFixAvailable},
		{Fixed: "1:2.3-4ubuntu1"},
		{Fixed: "r5"},
	})
	assert.Equal(t, "1:2.3-4ubuntu1", got)
}
