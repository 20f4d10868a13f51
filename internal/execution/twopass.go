package execution

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/kballard/go-shellquote"

	"ctp/internal/config"
	"ctp/internal/domain"
	"ctp/internal/parser"
	"ctp/internal/storage"
	"ctp/internal/ui"
)

// Engine drives the two-pass run: a quiet full pass to identify failures,
// then a verbose per-test rerun of each failure, optionally followed by a
// case-only rerun of the detected failing case. Everything is strictly
// sequential; parallelism is delegated to pass-through ctest flags.
type Engine struct {
	config  *config.Config
	runner  *Runner
	parser  *parser.CTestParser
	recon   *Reconstructor
	storage storage.Storage

	// ShowProgress enables the pass-1 spinner and pass-2 progress bar
	ShowProgress bool
	// In is where --pause confirmations are read from
	In io.Reader
}

// NewEngine creates a new Engine
func NewEngine(cfg *config.Config, runner *Runner, ctestParser *parser.CTestParser, recon *Reconstructor, st storage.Storage) *Engine {
	return &Engine{
		config:  cfg,
		runner:  runner,
		parser:  ctestParser,
		recon:   recon,
		storage: st,
		In:      os.Stdin,
	}
}

// Run executes both passes and returns the process exit code: 0 when pass
// 1 is green, otherwise pass 1's code (failure list unknown or second
// pass skipped) or the aggregated pass-2 code. The returned summary is
// nil when the run ended before one was recorded. The returned error is
// reserved for spawn/I-O failures of the tool itself.
func (e *Engine) Run() (int, *domain.RunSummary, error) {
	start := time.Now()
	extra := e.config.Flags.ExtraArgs

	if err := os.MkdirAll(e.config.ScratchDir(), 0755); err != nil {
		return 1, nil, fmt.Errorf("create scratch dir: %w", err)
	}

	// PASS 1: quiet run
	pass1Cmd := append([]string{e.config.CTestPath, "-Q"}, extra...)
	color.Cyan("== PASS 1: running CTest (quiet) to identify failures ==")
	fmt.Printf("$ %s\n", shellquote.Join(pass1Cmd...))

	var spinner *ui.Spinner
	if e.ShowProgress {
		spinner = ui.NewSpinner("Waiting for CTest")
		spinner.Start()
	}
	pass1, err := e.runner.RunCapture(pass1Cmd, e.config.BuildDir)
	if spinner != nil {
		spinner.Stop()
	}
	if writeErr := os.WriteFile(e.config.Pass1LogPath(), []byte(pass1.Output), 0644); writeErr != nil {
		return 1, nil, fmt.Errorf("write pass 1 log: %w", writeErr)
	}
	if err != nil {
		return 1, nil, err
	}

	if pass1.Success() {
		color.Green("\nPASS 1 succeeded: no failing tests.")
		summary := e.saveSummary(pass1.ExitCode, nil, time.Since(start))
		return 0, summary, nil
	}

	// Identify failures
	failed := e.parser.FailedFromLogFile(e.config.LastFailedLogPath())
	if len(failed) == 0 {
		failed = e.parser.FailedFromOutput(pass1.Output)
	}

	if len(failed) == 0 {
		color.Red("\nPASS 1 failed, but could not determine failed test list.")
		fmt.Fprintf(os.Stderr, "Saved PASS 1 output to: %s\n", e.config.Pass1LogPath())
		fmt.Fprintln(os.Stderr, "Tip: check Testing/Temporary/LastTest.log, or rerun with: ctest --output-on-failure -VV")
		return orOne(pass1.ExitCode), nil, nil
	}

	fmt.Println("\nFailing tests:")
	for i, name := range failed {
		color.Yellow("  %d. %s", i+1, name)
	}

	if e.config.Flags.NoSecondPass {
		nameOnly := make([]domain.FailedTest, 0, len(failed))
		for _, name := range failed {
			nameOnly = append(nameOnly, domain.FailedTest{Name: name})
		}
		summary := e.saveSummary(pass1.ExitCode, nameOnly, time.Since(start))
		fmt.Printf("\nSkipping PASS 2 (--no-second-pass). Logs: %s\n", e.config.ScratchDir())
		return orOne(pass1.ExitCode), summary, nil
	}

	// PASS 2: rerun each failed test individually with full verbosity
	overall := 0
	var details []domain.FailedTest
	var progress *ui.PassProgress
	if e.ShowProgress {
		progress = ui.NewPassProgress(len(failed))
	}
	passed, failedAgain := 0, 0
	stdin := bufio.NewReader(e.In)

	color.Cyan("\n== PASS 2: rerunning each failed test individually (-VV --output-on-failure) ==")
	for i, name := range failed {
		if e.config.Flags.Pause {
			fmt.Printf("\n[%d/%d] Press Enter to rerun: %s ", i+1, len(failed), name)
			stdin.ReadString('\n')
		} else {
			fmt.Printf("\n[%d/%d] Rerunning: %s\n", i+1, len(failed), name)
		}

		rerunCmd := append([]string{e.config.CTestPath, "-R", parser.ExactNameRegex(name), "-VV", "--output-on-failure"}, extra...)
		logPath := e.config.Pass2LogPath(name)

		detail := domain.FailedTest{Name: name, LogPath: logPath}
		code, err := e.runner.RunTee(rerunCmd, e.config.BuildDir, logPath)
		if err != nil {
			color.Red("\n[FAILED] %s: %v", name, err)
			code = orOne(code)
		}
		detail.ExitCode = code

		if code != 0 {
			overall = code
			failedAgain++
			color.Red("\n[FAILED] %s (exit=%d)", name, code)
			if err == nil && !e.config.Flags.NoCasePass {
				e.casePass(&detail)
			}
		} else {
			passed++
			color.Green("\n[OK] %s", name)
		}
		fmt.Printf("Log saved: %s\n", logPath)

		details = append(details, detail)
		if progress != nil {
			progress.Update(i+1, passed, failedAgain)
		}
	}
	if progress != nil {
		progress.Finish()
	}

	summary := e.saveSummary(pass1.ExitCode, details, time.Since(start))
	fmt.Printf("\nDone. PASS 1 log: %s\n", e.config.Pass1LogPath())
	return orOne(overall), summary, nil
}

// casePass attempts the case-only rerun for one failed test. Every
// failure mode (log read, detection, reconstruction, spawn) is reported
// as a skipped step and never alters orchestration flow.
func (e *Engine) casePass(detail *domain.FailedTest) {
	data, err := os.ReadFile(detail.LogPath)
	if err != nil {
		fmt.Printf("Case-only rerun skipped: cannot read rerun log: %v\n", err)
		return
	}

	caseID := e.parser.LastCaseID(string(data), detail.Name)
	if caseID == nil {
		fmt.Println("Could not detect failing case id from output; skipping case-only rerun.")
		return
	}
	detail.CaseID = caseID
	fmt.Printf("Detected failing case: %s case %d\n", detail.Name, *caseID)

	cmd, workingDir := e.recon.Command(detail.Name)
	caseCmd := append(cmd, "--case", strconv.Itoa(*caseID))
	caseLog := e.config.CaseLogPath(detail.Name, *caseID)
	fmt.Printf("$ %s\n", shellquote.Join(caseCmd...))

	code, err := e.runner.RunTee(caseCmd, workingDir, caseLog)
	if err != nil {
		fmt.Printf("Case-only rerun skipped due to error: %v\n", err)
		return
	}
	detail.CaseExitCode = &code
	detail.CaseLogPath = caseLog

	if code != 0 {
		color.Red("[FAILED] case-only rerun also failed: %s case %d (exit=%d)", detail.Name, *caseID, code)
	} else {
		color.Green("[OK] case-only rerun passed: %s case %d", detail.Name, *caseID)
	}
	fmt.Printf("Case log saved: %s\n", caseLog)
}

// saveSummary persists the run summary; failure to save is reported but
// never fatal.
func (e *Engine) saveSummary(pass1Code int, details []domain.FailedTest, duration time.Duration) *domain.RunSummary {
	passed, failedAgain := 0, 0
	for _, d := range details {
		if d.LogPath == "" {
			continue // --no-second-pass entry, never rerun
		}
		if d.ReranGreen() {
			passed++
		} else {
			failedAgain++
		}
	}
	summary := &domain.RunSummary{
		Meta: domain.RunSummaryMeta{
			BuildDir:        e.config.BuildDir,
			Pass1ExitCode:   pass1Code,
			FailedTests:     len(details),
			RerunsPassed:    passed,
			RerunsFailed:    failedAgain,
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Failures: details,
	}
	if err := e.storage.Save(summary); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save run summary: %v\n", err)
	}
	return summary
}

// orOne maps zero and negative exit codes to 1: a failed run never
// reports success, and a signal-killed or unspawnable rerun never leaks
// a negative code into os.Exit.
func orOne(code int) int {
	if code <= 0 {
		return 1
	}
	return code
}
