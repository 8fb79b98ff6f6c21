// Package export writes findings to files other tools consume.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/northcutted/scanboard/pkg/types"
)

// CSVHeader is the first record of every CSV export.
var CSVHeader = []string{
	"Type", "Severity", "Rule ID", "Message", "Location/Package",
	"Version Info", "Standards", "Remediation",
}

// CSVFileName returns the date-stamped name of a CSV export made at t.
func CSVFileName(t time.Time) string {
	return "security-findings-" + t.Format("2006-01-02") + ".csv"
}

// CSV writes findings as RFC 4180 CSV, one record per finding.
func CSV(w io.Writer, findings []types.Finding) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, f := range findings {
		if err := cw.Write(csvRecord(f)); err != nil {
			return fmt.Errorf("failed to write csv record %s: %w", f.Key, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(f types.Finding) []string {
	return []string{
		string(f.Kind),
		string(f.Severity),
		f.ID,
		f.Message,
		f.Subject(),
		versionInfo(f),
		strings.Join(f.Standards, "; "),
		f.Remediation,
	}
}

func versionInfo(f types.Finding) string {
	if f.Kind != types.KindDependency {
		return ""
	}
	fixed := f.Fixed
	if fixed == "" {
		fixed = types.NoFixAvailable
	}
	return f.Installed + " -> " + fixed
}
