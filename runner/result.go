package runner

import (
	"fmt"
	"time"

	"github.com/soltools/sol-tester/types"
)

// CaseResult captures the judged outcome of one scheduled test case.
type CaseResult struct {
	Name     string
	Mode     types.Mode
	Status   types.TestStatus
	Reason   string // Populated for skipped cases
	Err      error  // Populated for failed cases
	Output   string // Captured compiler output or diff, for failed cases
	Duration time.Duration
}

// RunnerResult captures the complete test run results
type RunnerResult struct {
	RunID    string
	Cases    []CaseResult // In suite (display-name) order
	Status   types.TestStatus
	Duration time.Duration
	Stats    ResultStats
}

// ResultStats tracks aggregate statistics for one run
type ResultStats struct {
	Total     int
	Passed    int
	Failed    int
	Skipped   int
	StartTime time.Time
	EndTime   time.Time
}

// String returns the one-line run summary.
func (r *RunnerResult) String() string {
	return fmt.Sprintf("test result: %s. %d passed; %d failed; %d ignored; finished in %.2fs",
		r.Status, r.Stats.Passed, r.Stats.Failed, r.Stats.Skipped, r.Duration.Seconds())
}

// aggregate fills stats and the overall status from the per-case results.
// Skips are a distinct class and never count as failures; an empty suite
// passes.
func (r *RunnerResult) aggregate() {
	r.Stats.Total = len(r.Cases)
	r.Stats.Passed = 0
	r.Stats.Failed = 0
	r.Stats.Skipped = 0
	for _, c := range r.Cases {
		switch c.Status {
		case types.TestStatusPass:
			r.Stats.Passed++
		case types.TestStatusFail:
			r.Stats.Failed++
		case types.TestStatusSkip:
			r.Stats.Skipped++
		}
	}
	if r.Stats.Failed > 0 {
		r.Status = types.TestStatusFail
	} else {
		r.Status = types.TestStatusPass
	}
}
