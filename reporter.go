package tester

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/soltools/sol-tester/runner"
	"github.com/soltools/sol-tester/types"
)

// printResultsTable prints the per-case results of a run to the console.
func (t *tester) printResultsTable(result *runner.RunnerResult) {
	t.config.Log.Info("Printing results...")

	w := table.NewWriter()
	w.SetOutputMirror(os.Stdout)
	w.SetTitle(fmt.Sprintf("Compiler Test Results (%s)", formatDuration(result.Duration)))

	w.AppendHeader(table.Row{
		"Case", "Duration", "Status", "Details",
	})

	w.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Case", WidthMax: 70, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Details", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
	})

	for _, c := range result.Cases {
		w.AppendRow(table.Row{
			c.Name,
			formatDuration(c.Duration),
			getResultString(c.Status),
			caseDetails(c),
		})
	}

	switch result.Status {
	case types.TestStatusPass:
		w.SetStyle(table.StyleColoredBlackOnGreenWhite)
	case types.TestStatusSkip:
		w.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		w.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	w.AppendFooter(table.Row{
		fmt.Sprintf("TOTAL: %d", result.Stats.Total),
		formatDuration(result.Duration),
		getResultString(result.Status),
		fmt.Sprintf("%d passed, %d failed, %d ignored", result.Stats.Passed, result.Stats.Failed, result.Stats.Skipped),
	})

	w.Render()
}

// caseDetails returns the most pertinent detail for one case: the skip
// reason for ignored cases, the first error line for failing ones.
func caseDetails(c runner.CaseResult) string {
	switch c.Status {
	case types.TestStatusSkip:
		return c.Reason
	case types.TestStatusFail:
		if c.Err != nil {
			return firstLine(c.Err.Error())
		}
		return "test failed"
	default:
		return ""
	}
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	if len(s) > 80 {
		return s[:70] + "..."
	}
	return s
}

// getResultString returns a decorated string representing the case result
func getResultString(status types.TestStatus) string {
	switch status {
	case types.TestStatusPass:
		return "✓ pass"
	case types.TestStatusSkip:
		return "- skip"
	default:
		return "✗ fail"
	}
}

// Helper function to format duration to seconds with 1 decimal place
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
