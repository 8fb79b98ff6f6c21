// Package remediation derives a human-readable fix suggestion for every finding.
package remediation

import (
	"fmt"
	"strings"

	"github.com/northcutted/scanboard/pkg/types"
)

const (
	adviceXSS = "Sanitize user-controlled input and apply context-aware output encoding " +
		"(HTML, attribute, JavaScript, URL) before rendering it in templates."
	adviceSQLInjection = "Use parameterized queries or prepared statements instead of building " +
		"SQL strings from user input."
	adviceHardcoded = "Remove the hardcoded secret from source, rotate it, and load it from " +
		"environment variables or a secrets manager."
	adviceGeneric = "Review the flagged code against the rule documentation and apply secure " +
		"coding practices for this pattern."
	adviceNoFix = "No fix available yet. Monitor the advisory and consider mitigating controls " +
		"or an alternative package."
)

type keywordAdvice struct {
	keyword string
	advice  string
}

// Checked in order; the first match wins.
var staticKeywords = []keywordAdvice{
	{"xss", adviceXSS},
	{"sql injection", adviceSQLInjection},
	{"hardcoded", adviceHardcoded},
}

// ForStatic returns the remediation for a static-analysis finding. An explicit
// fix provided by the scanner is returned verbatim; otherwise the message is
// matched against known keywords, falling back to generic advice.
func ForStatic(message, category, fix string) string {
	if strings.TrimSpace(fix) != "" {
		return fix
	}

	lower := strings.ToLower(message)
	for _, k := range staticKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.advice
		}
	}

	if category != "" && category != types.DefaultRuleGroup {
		return fmt.Sprintf("%s Category: %s.", adviceGeneric, category)
	}
	return adviceGeneric
}

// ForDependency returns the remediation for a dependency finding.
func ForDependency(pkg, fixed string) string {
	fixed = strings.TrimSpace(fixed)
	if fixed == "" || fixed == types.NoFixAvailable {
		return adviceNoFix
	}
	if pkg == "" {
		return fmt.Sprintf("Upgrade to version %s or later.", fixed)
	}
	return fmt.Sprintf("Upgrade %s to version %s or later.", pkg, fixed)
}

// For dispatches on the finding's kind.
func For(f types.Finding, fix string) string {
	if f.Kind == types.KindDependency {
		return ForDependency(f.Package, f.Fixed)
	}
	return ForStatic(f.Message, f.RuleGroup, fix)
}
