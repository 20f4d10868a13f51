package ui

import (
	"fmt"

	"github.com/fatih/color"

	"ctp/internal/domain"
)

// Formatter formats and displays output
type Formatter struct{}

// NewFormatter creates a new Formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// PrintFailedList prints the recovered failed-test names in order.
func (f *Formatter) PrintFailedList(names []string) {
	if len(names) == 0 {
		color.Green("No failed tests recorded.")
		return
	}
	color.Red("Failed tests (%d):\n", len(names))
	for i, name := range names {
		color.Yellow("  %d. %s", i+1, name)
	}
}

// PrintSummary displays the final statistics of a two-pass run.
func (f *Formatter) PrintSummary(summary *domain.RunSummary) {
	meta := summary.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                     Two-Pass Run Statistics                   ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	fmt.Printf("│ %-31s │ ", "Failed Tests (pass 1)")
	color.Red("%-27d │\n", meta.FailedTests)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Reruns Passed")
	color.Green("%-27d │\n", meta.RerunsPassed)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Reruns Failed")
	color.Red("%-27d │\n", meta.RerunsFailed)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Duration")
	color.White("%-27s │\n", fmt.Sprintf("%.2fs", meta.DurationSeconds))
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Timestamp")
	color.White("%-27s │\n", meta.Timestamp)

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	if meta.FailedTests == 0 {
		color.Green("✓ All tests passed!")
	} else if meta.RerunsFailed == 0 && meta.RerunsPassed > 0 {
		color.Yellow("⚠ %d test(s) failed in pass 1 but passed on verbose rerun", meta.FailedTests)
	} else {
		color.Red("✗ %d test(s) still failing after verbose rerun", meta.RerunsFailed)
	}
}
