package types

import "strconv"

// Kind identifies which family of scanner produced a finding.
type Kind string

const (
	KindStatic     Kind = "SAST"
	KindDependency Kind = "SCA"
)

// Category is one of the three finding views. Each category owns its own
// view state and key space.
type Category string

const (
	CategoryStatic Category = "sast"
	CategoryFS     Category = "sca-fs"
	CategoryImage  Category = "sca-image"
)

const (
	// NoFixAvailable marks a dependency finding without a fixed version.
	NoFixAvailable = "N/A"
	// DefaultRuleGroup is used when a static rule carries no category.
	DefaultRuleGroup = "Security"
)

// Categories lists the views in display order.
var Categories = []Category{CategoryStatic, CategoryFS, CategoryImage}

// ParseCategory resolves a user-supplied category name.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Kind returns the scanner family a category holds.
func (c Category) Kind() Kind {
	if c == CategoryStatic {
		return KindStatic
	}
	return KindDependency
}

// Title returns the heading shown for a category.
func (c Category) Title() string {
	switch c {
	case CategoryStatic:
		return "Code Analysis (SAST)"
	case CategoryFS:
		return "Dependencies (SCA, filesystem)"
	case CategoryImage:
		return "Container Image (SCA, image)"
	}
	return string(c)
}

// Finding is a single normalized security issue from either source.
type Finding struct {
	Key      string   `json:"key"`
	Kind     Kind     `json:"type"`
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	ID       string   `json:"id"`
	Message  string   `json:"message"`

	// Static-analysis payload
	Path       string `json:"path,omitempty"`
	Line       int    `json:"line,omitempty"`
	Location   string `json:"location,omitempty"`
	RuleGroup  string `json:"ruleCategory,omitempty"`
	Confidence string `json:"confidence,omitempty"`

	// Dependency payload
	Package   string `json:"package,omitempty"`
	Installed string `json:"installed,omitempty"`
	Fixed     string `json:"fixed,omitempty"`
	Target    string `json:"target,omitempty"`

	Standards   []string `json:"standards,omitempty"`
	References  []string `json:"references,omitempty"`
	URL         string   `json:"url,omitempty"`
	Remediation string   `json:"remediation"`
}

// HasFix reports whether a dependency finding names a fixed version.
func (f Finding) HasFix() bool {
	return f.Fixed != "" && f.Fixed != NoFixAvailable
}

// Column returns the string value of a sortable column. Unknown columns
// yield the empty string so they sort as equal.
func (f Finding) Column(col string) string {
	switch col {
	case "severity":
		return string(f.Severity)
	case "id":
		return f.ID
	case "message":
		return f.Message
	case "location":
		return f.Location
	case "category", "ruleCategory":
		return f.RuleGroup
	case "package":
		return f.Package
	case "installed":
		return f.Installed
	case "fixed":
		return f.Fixed
	case "target":
		return f.Target
	case "line":
		return strconv.Itoa(f.Line)
	case "type":
		return string(f.Kind)
	}
	return ""
}

// Subject is the location for static findings and the package for
// dependency findings.
func (f Finding) Subject() string {
	if f.Kind == KindStatic {
		return f.Location
	}
	return f.Package
}
