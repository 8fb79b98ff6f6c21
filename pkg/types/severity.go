package types

import (
	"sort"
	"strings"
)

// Severity is the normalized five-level severity scale shared by all findings.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityUnknown  Severity = "UNKNOWN"
)

// Severities lists every level from most to least severe.
var Severities = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeverityUnknown,
}

var severityWeight = map[Severity]int{
	SeverityCritical: 4,
	SeverityHigh:     3,
	SeverityMedium:   2,
	SeverityLow:      1,
	SeverityUnknown:  0,
}

// NormalizeSeverity maps a scanner severity token onto the five-level scale.
// Semgrep's ERROR/WARNING/INFO become HIGH/MEDIUM/LOW; canonical levels pass
// through uppercased; anything else, including the empty string, is UNKNOWN.
func NormalizeSeverity(token string) Severity {
	s := strings.ToUpper(strings.TrimSpace(token))
	switch s {
	case "ERROR":
		return SeverityHigh
	case "WARNING":
		return SeverityMedium
	case "INFO":
		return SeverityLow
	}
	if _, ok := severityWeight[Severity(s)]; ok {
		return Severity(s)
	}
	return SeverityUnknown
}

// Weight returns the ordinal used for comparisons (CRITICAL=4 ... UNKNOWN=0).
func (s Severity) Weight() int {
	return severityWeight[s]
}

// Valid reports whether s is one of the five recognized levels.
func (s Severity) Valid() bool {
	_, ok := severityWeight[s]
	return ok
}

func (s Severity) String() string {
	return string(s)
}

// Label returns the title-cased form used in charts ("Critical", "High", ...).
func (s Severity) Label() string {
	if s == "" {
		return ""
	}
	lower := strings.ToLower(string(s))
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// SortBySeverity sorts findings by severity descending, then by ID ascending.
func SortBySeverity(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		wi, wj := findings[i].Severity.Weight(), findings[j].Severity.Weight()
		if wi != wj {
			return wi > wj
		}
		return findings[i].ID < findings[j].ID
	})
}
