package analysis

import (
	"time"

	"github.com/northcutted/scanboard/pkg/types"
)

// JobStats is the outcome of one scanner job.
type JobStats struct {
	Category types.Category
	Tool     string
	Target   string
	Output   string
	Findings int
	Bytes    int
	Duration time.Duration
	Skipped  bool  // tool not installed
	Err      error // run or write failure
}

// OK reports whether the job wrote a report.
func (s JobStats) OK() bool { return !s.Skipped && s.Err == nil }

// ScanStats holds the results of a scan, one entry per job in category order.
type ScanStats struct {
	Jobs []JobStats
}

// Written is the number of reports written.
func (s *ScanStats) Written() int {
	n := 0
	for _, j := range s.Jobs {
		if j.OK() {
			n++
		}
	}
	return n
}

// Findings is the total number of findings across written reports.
func (s *ScanStats) Findings() int {
	n := 0
	for _, j := range s.Jobs {
		n += j.Findings
	}
	return n
}
