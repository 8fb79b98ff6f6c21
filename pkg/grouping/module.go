// Package grouping buckets findings for drill-down navigation: static
// findings by path prefix, dependency findings by package.
package grouping

import (
	"sort"
	"strings"

	"github.com/northcutted/scanboard/pkg/types"
)

// RootModule is the key for findings whose path has no usable segments.
const RootModule = "Root"

// ModuleGroup holds the static findings sharing a path prefix.
type ModuleGroup struct {
	Key      string
	Findings []types.Finding
	Counts   map[types.Severity]int
}

// Total is the number of findings in the group.
func (g ModuleGroup) Total() int { return len(g.Findings) }

// ModuleKey derives the module key of a location such as "src/api/auth.ts:10".
// The key is the first depth path segments joined by "/".
func ModuleKey(location string, depth int) string {
	if depth < 1 {
		depth = 1
	}
	path := stripLine(location)
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})

	kept := make([]string, 0, depth)
	for _, s := range segments {
		if s == "." {
			continue
		}
		kept = append(kept, s)
		if len(kept) == depth {
			break
		}
	}
	if len(kept) == 0 {
		return RootModule
	}
	return strings.Join(kept, "/")
}

// stripLine removes a trailing ":<line>" suffix, leaving drive letters and
// other colons intact.
func stripLine(location string) string {
	i := strings.LastIndexByte(location, ':')
	if i < 0 {
		return location
	}
	suffix := location[i+1:]
	if suffix == "" {
		return location[:i]
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return location
		}
	}
	return location[:i]
}

// ByModule groups static findings by module key. Groups are ordered by key.
func ByModule(findings []types.Finding, depth int) []ModuleGroup {
	index := make(map[string]int)
	var groups []ModuleGroup

	for _, f := range findings {
		key := ModuleKey(f.Location, depth)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, ModuleGroup{
				Key:    key,
				Counts: make(map[types.Severity]int, len(types.Severities)),
			})
		}
		groups[i].Findings = append(groups[i].Findings, f)
		groups[i].Counts[f.Severity]++
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
	return groups
}
