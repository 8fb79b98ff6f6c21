package grouping

import (
	"sort"

	"github.com/Masterminds/semver"

	"github.com/northcutted/scanboard/pkg/types"
)

// PackageGroup holds the dependency findings affecting one package.
type PackageGroup struct {
	Package   string
	Installed string // first-seen installed version
	Findings  []types.Finding
	// Worst is the first finding carrying the group's maximum severity.
	Worst types.Finding
	// RecommendedFix is the highest fixed version among the members, or
	// types.NoFixAvailable.
	RecommendedFix string
}

// MaxSeverity is the severity of the group's worst finding.
func (g PackageGroup) MaxSeverity() types.Severity { return g.Worst.Severity }

// ByPackage groups dependency findings by exact package name and orders the
// groups by descending maximum severity, keeping first-appearance order on ties.
func ByPackage(findings []types.Finding) []PackageGroup {
	index := make(map[string]int)
	var groups []PackageGroup

	for _, f := range findings {
		i, ok := index[f.Package]
		if !ok {
			i = len(groups)
			index[f.Package] = i
			groups = append(groups, PackageGroup{
				Package:   f.Package,
				Installed: f.Installed,
				Worst:     f,
			})
		}
		g := &groups[i]
		g.Findings = append(g.Findings, f)
		if f.Severity.Weight() > g.Worst.Severity.Weight() {
			g.Worst = f
		}
	}

	for i := range groups {
		groups[i].RecommendedFix = recommendedFix(groups[i].Findings)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Worst.Severity.Weight() > groups[j].Worst.Severity.Weight()
	})
	return groups
}

// recommendedFix picks the highest fixed version that resolves every member.
// Versions that are not semver fall back to the first one seen.
func recommendedFix(findings []types.Finding) string {
	var best *semver.Version
	bestRaw := ""
	fallback := ""

	for _, f := range findings {
		if !f.HasFix() {
			continue
		}
		if fallback == "" {
			fallback = f.Fixed
		}
		v, err := semver.NewVersion(f.Fixed)
		if err != nil {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			bestRaw = f.Fixed
		}
	}

	switch {
	case best != nil:
		return bestRaw
	case fallback != "":
		return fallback
	}
	return types.NoFixAvailable
}
