package extract

import (
	"encoding/json"
	"log/slog"

	"github.com/northcutted/scanboard/pkg/remediation"
	"github.com/northcutted/scanboard/pkg/types"
)

type trivyReport struct {
	Results []struct {
		Target          string `json:"Target"`
		Vulnerabilities []struct {
			VulnerabilityID  string   `json:"VulnerabilityID"`
			PkgName          string   `json:"PkgName"`
			InstalledVersion string   `json:"InstalledVersion"`
			FixedVersion     string   `json:"FixedVersion"`
			Title            string   `json:"Title"`
			Description      string   `json:"Description"`
			Severity         string   `json:"Severity"`
			PrimaryURL       string   `json:"PrimaryURL"`
			References       []string `json:"References"`
			CweIDs           []string `json:"CweIDs"`
		} `json:"Vulnerabilities"`
	} `json:"Results"`
}

// Trivy extracts dependency findings from a Trivy JSON report. Targets are
// flattened in report order, then vulnerabilities in target order. category
// must be one of the dependency categories and scopes the generated keys.
func Trivy(data []byte, category types.Category) []types.Finding {
	var report trivyReport
	if err := json.Unmarshal(data, &report); err != nil {
		slog.Debug("trivy report unreadable, treating as empty", "category", category, "error", err)
		return []types.Finding{}
	}

	keys := newKeyspace(category)
	findings := make([]types.Finding, 0)
	for _, target := range report.Results {
		for _, v := range target.Vulnerabilities {
			fixed := v.FixedVersion
			if fixed == "" {
				fixed = types.NoFixAvailable
			}
			message := v.Title
			if message == "" {
				message = v.Description
			}
			url := v.PrimaryURL
			if url == "" && len(v.References) > 0 {
				url = v.References[0]
			}

			f := types.Finding{
				Kind:       types.KindDependency,
				Category:   category,
				Severity:   types.NormalizeSeverity(v.Severity),
				ID:         v.VulnerabilityID,
				Message:    message,
				Package:    v.PkgName,
				Installed:  v.InstalledVersion,
				Fixed:      fixed,
				Target:     target.Target,
				Standards:  v.CweIDs,
				References: v.References,
				URL:        url,
			}
			f.Remediation = remediation.For(f, "")
			f.Key = keys.next(string(f.Kind), f.ID, f.Package, f.Installed, f.Target)

			findings = append(findings, f)
		}
	}
	return findings
}
