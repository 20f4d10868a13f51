package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"ctp/internal/domain"
)

// LogViewer displays the rerun logs of a finished run in an interactive TUI
type LogViewer struct{}

// NewLogViewer creates a new LogViewer
func NewLogViewer() *LogViewer {
	return &LogViewer{}
}

// View shows the failed tests of a saved run: names on the left, rerun
// log and detected case on the right.
func (lv *LogViewer) View(summary *domain.RunSummary) error {
	if len(summary.Failures) == 0 {
		color.Green("✓ No failures recorded in the last run!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for i, failure := range summary.Failures {
		marker := "[red]✗"
		if failure.ReranGreen() {
			marker = "[green]✓"
		}
		list.AddItem(fmt.Sprintf("%s [yellow]%d.[white] %s", marker, i+1, failure.Name), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)
	detailsView.SetScrollable(true)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 4, 0, false).
		AddItem(detailsView, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" Failed tests (%d) | ↑↓ navigate, → view log, ← back, Ctrl+C exit ", len(summary.Failures)))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(summary.Failures) {
			return
		}
		failure := summary.Failures[index]
		statsView.SetText(lv.formatStats(failure))
		detailsView.SetText(lv.formatLog(failure))
		detailsView.ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})
	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})
	list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// formatStats renders the header panel for one failure.
func (lv *LogViewer) formatStats(failure domain.FailedTest) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "[cyan]test:[white] [yellow]%s[white]  [cyan]exit:[white] %d\n", failure.Name, failure.ExitCode)
	if failure.CaseID != nil {
		caseStatus := "not rerun"
		if failure.CaseExitCode != nil {
			caseStatus = fmt.Sprintf("exit %d", *failure.CaseExitCode)
		}
		fmt.Fprintf(&builder, "[cyan]case:[white] %d (%s)\n", *failure.CaseID, caseStatus)
	}
	fmt.Fprintf(&builder, "[cyan]log:[white] %s\n", failure.LogPath)
	return builder.String()
}

// formatLog loads the rerun log for display, preferring the case-only log
// when one exists.
func (lv *LogViewer) formatLog(failure domain.FailedTest) string {
	path := failure.LogPath
	if failure.CaseLogPath != "" {
		path = failure.CaseLogPath
	}
	if path == "" {
		return "[gray]No rerun log recorded (run without --no-second-pass to produce one).[white]"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("[red]Could not read log %s: %v[white]", path, err)
	}
	return tview.Escape(string(data))
}
