package export

import (
	"fmt"
	"io"
	"time"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/northcutted/scanboard/pkg/types"
)

const (
	sarifError   = "error"
	sarifWarning = "warning"
	sarifNote    = "note"
	sarifNone    = "none"
)

// SARIFFileName returns the date-stamped name of a SARIF export made at t.
func SARIFFileName(t time.Time) string {
	return "security-findings-" + t.Format("2006-01-02") + ".sarif"
}

// SARIF writes findings as a SARIF 2.1.0 log with one run per scanner family.
func SARIF(w io.Writer, findings []types.Finding) error {
	report, err := sarifReport(findings)
	if err != nil {
		return err
	}
	if err := report.PrettyWrite(w); err != nil {
		return fmt.Errorf("failed to write sarif: %w", err)
	}
	return nil
}

func sarifReport(findings []types.Finding) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create sarif report: %w", err)
	}

	runs := []struct {
		kind types.Kind
		run  *sarif.Run
	}{
		{types.KindStatic, sarif.NewRunWithInformationURI("semgrep", "https://semgrep.dev")},
		{types.KindDependency, sarif.NewRunWithInformationURI("trivy", "https://trivy.dev")},
	}

	for _, r := range runs {
		ruleIndex := map[string]int{}
		for _, f := range findings {
			if f.Kind != r.kind {
				continue
			}
			idx, ok := ruleIndex[f.ID]
			if !ok {
				rule := r.run.AddRule(f.ID).WithName(f.ID)
				if f.Kind == types.KindStatic {
					rule.WithDescription(f.Message)
				} else {
					rule.WithDescription(fmt.Sprintf("%s in %s", f.ID, f.Package))
				}
				idx = len(ruleIndex)
				ruleIndex[f.ID] = idx
			}

			result := sarif.NewRuleResult(f.ID).
				WithRuleIndex(idx).
				WithMessage(sarif.NewTextMessage(sarifMessage(f))).
				WithLevel(toSarifLevel(f.Severity))
			if loc := toSarifLocation(f); loc != nil {
				result.WithLocations([]*sarif.Location{loc})
			}
			r.run.AddResult(result)
		}
		report.AddRun(r.run)
	}
	return report, nil
}

func sarifMessage(f types.Finding) string {
	msg := f.Message
	if f.Kind == types.KindDependency {
		msg = fmt.Sprintf("%s %s: %s", f.Package, f.Installed, f.Message)
	}
	if f.Remediation != "" {
		msg += " " + f.Remediation
	}
	return msg
}

func toSarifLevel(sev types.Severity) string {
	switch sev {
	case types.SeverityCritical, types.SeverityHigh:
		return sarifError
	case types.SeverityMedium:
		return sarifWarning
	case types.SeverityLow:
		return sarifNote
	default:
		return sarifNone
	}
}

func toSarifLocation(f types.Finding) *sarif.Location {
	uri := f.Path
	if f.Kind == types.KindDependency {
		uri = f.Target
	}
	if uri == "" {
		return nil
	}

	loc := sarif.NewPhysicalLocation().WithArtifactLocation(sarif.NewSimpleArtifactLocation(uri))
	if f.Line > 0 {
		loc.WithRegion(sarif.NewRegion().WithStartLine(f.Line))
	}
	return sarif.NewLocation().WithPhysicalLocation(loc)
}
