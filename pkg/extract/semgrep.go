// Package extract converts raw scanner reports into normalized findings.
//
// Extraction never fails: a missing, malformed, or empty report yields no
// findings so that one unavailable source cannot break the whole board.
package extract

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/northcutted/scanboard/pkg/remediation"
	"github.com/northcutted/scanboard/pkg/types"
)

// ruleKeywords are the check_id segments recognized as a rule category when
// the rule metadata does not name one.
var ruleKeywords = map[string]bool{
	"injection":    true,
	"xss":          true,
	"cryptography": true,
	"auth":         true,
	"audit":        true,
}

type semgrepReport struct {
	Results []struct {
		CheckID string `json:"check_id"`
		Path    string `json:"path"`
		Start   struct {
			Line int `json:"line"`
		} `json:"start"`
		Extra struct {
			Message  string `json:"message"`
			Severity string `json:"severity"`
			Fix      string `json:"fix"`
			Metadata struct {
				Category   string      `json:"category"`
				Confidence string      `json:"confidence"`
				CWE        interface{} `json:"cwe"`
				OWASP      interface{} `json:"owasp"`
				References interface{} `json:"references"`
			} `json:"metadata"`
		} `json:"extra"`
	} `json:"results"`
}

// Semgrep extracts static-analysis findings from a Semgrep JSON report.
func Semgrep(data []byte) []types.Finding {
	var report semgrepReport
	if err := json.Unmarshal(data, &report); err != nil {
		slog.Debug("semgrep report unreadable, treating as empty", "error", err)
		return []types.Finding{}
	}

	keys := newKeyspace(types.CategoryStatic)
	findings := make([]types.Finding, 0, len(report.Results))
	for _, r := range report.Results {
		path := filepath.ToSlash(r.Path)
		location := fmt.Sprintf("%s:%d", path, r.Start.Line)
		group := ruleGroup(r.Extra.Metadata.Category, r.CheckID)

		standards := append(toStrings(r.Extra.Metadata.CWE), toStrings(r.Extra.Metadata.OWASP)...)

		f := types.Finding{
			Kind:       types.KindStatic,
			Category:   types.CategoryStatic,
			Severity:   types.NormalizeSeverity(r.Extra.Severity),
			ID:         r.CheckID,
			Message:    r.Extra.Message,
			Path:       path,
			Line:       r.Start.Line,
			Location:   location,
			RuleGroup:  group,
			Confidence: r.Extra.Metadata.Confidence,
			Standards:  standards,
			References: toStrings(r.Extra.Metadata.References),
		}
		if len(f.References) > 0 {
			f.URL = f.References[0]
		}
		f.Remediation = remediation.For(f, r.Extra.Fix)
		f.Key = keys.next(string(f.Kind), f.ID, f.Location)

		findings = append(findings, f)
	}
	return findings
}

// ruleGroup picks the rule category: explicit metadata first, then a known
// keyword inside a dotted check id such as "javascript.browser.security.xss.foo".
func ruleGroup(explicit, checkID string) string {
	if explicit != "" {
		return explicit
	}
	parts := strings.Split(checkID, ".")
	if len(parts) > 2 {
		for _, p := range parts {
			if ruleKeywords[p] {
				return p
			}
		}
	}
	return types.DefaultRuleGroup
}

// toStrings flattens a metadata value that may be a string or a list.
func toStrings(v interface{}) []string {
	switch t := v.(type) {
	case string:
		if t != "" {
			return []string{t}
		}
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
