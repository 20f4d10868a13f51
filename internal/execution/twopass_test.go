package execution

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ctp/internal/config"
	"ctp/internal/parser"
	"ctp/internal/storage"
)

func newEngine(t *testing.T, cfg *config.Config, extraEnv ...string) *Engine {
	t.Helper()
	env := append(os.Environ(), extraEnv...)
	runner := NewRunner(env)
	ctestParser := parser.NewCTestParser()
	recon := NewReconstructor(cfg, runner, ctestParser)
	return NewEngine(cfg, runner, ctestParser, recon, storage.NewJSONStorage(cfg))
}

func TestEngine_Run_Pass1Green(t *testing.T) {
	script := writeScript(t, t.TempDir(), "exit 0\n")
	cfg := newTestConfig(t, script)
	engine := newEngine(t, cfg)

	code, _, err := engine.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 0 {
		t.Errorf("expected exit 0, got %d", code)
	}

	if _, err := os.Stat(cfg.Pass1LogPath()); err != nil {
		t.Errorf("expected pass 1 log to exist: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(cfg.ScratchDir(), "pass2.*"))
	if len(matches) != 0 {
		t.Errorf("expected no pass 2 logs, got %v", matches)
	}
}

func TestEngine_Run_TwoFailuresRerunInOrder(t *testing.T) {
	script := writeScript(t, t.TempDir(),
		`case "$1" in
-Q)
  mkdir -p Testing/Temporary
  printf '1:alpha\n2:beta\n' > Testing/Temporary/LastTestsFailed.log
  exit 8
  ;;
-R)
  echo "$2" >> "$CTP_RECORD"
  exit 0
  ;;
esac
exit 0
`)
	cfg := newTestConfig(t, script)
	record := filepath.Join(t.TempDir(), "record")
	engine := newEngine(t, cfg, "CTP_RECORD="+record)

	code, _, err := engine.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Reruns went green, but pass 1 still failed.
	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}

	data, err := os.ReadFile(record)
	if err != nil {
		t.Fatalf("read rerun record: %v", err)
	}
	got := strings.Fields(string(data))
	expected := []string{"^alpha$", "^beta$"}
	if len(got) != 2 || got[0] != expected[0] || got[1] != expected[1] {
		t.Errorf("expected reruns %v in order, got %v", expected, got)
	}

	for _, name := range []string{"alpha", "beta"} {
		if _, err := os.Stat(cfg.Pass2LogPath(name)); err != nil {
			t.Errorf("expected per-test log for %s: %v", name, err)
		}
	}

	summary, err := storage.NewJSONStorage(cfg).Load()
	if err != nil {
		t.Fatalf("load summary: %v", err)
	}
	if summary.Meta.FailedTests != 2 || summary.Meta.RerunsPassed != 2 || summary.Meta.RerunsFailed != 0 {
		t.Errorf("unexpected summary meta: %+v", summary.Meta)
	}
}

func TestEngine_Run_CaseOnlyRerun(t *testing.T) {
	script := writeScript(t, t.TempDir(),
		`case "$1" in
-Q)
  mkdir -p Testing/Temporary
  printf '1:alpha\n' > Testing/Temporary/LastTestsFailed.log
  exit 4
  ;;
-R)
  echo "alpha: Case 3"
  echo "alpha: Case 7"
  exit 5
  ;;
-N)
  echo "Test command: /bin/sh -c true"
  echo "Working Directory: $PWD"
  exit 0
  ;;
esac
exit 0
`)
	cfg := newTestConfig(t, script)
	engine := newEngine(t, cfg)

	code, _, err := engine.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Last failing rerun's code wins.
	if code != 5 {
		t.Errorf("expected exit 5, got %d", code)
	}

	summary, err := storage.NewJSONStorage(cfg).Load()
	if err != nil {
		t.Fatalf("load summary: %v", err)
	}
	if len(summary.Failures) != 1 {
		t.Fatalf("expected one failure, got %d", len(summary.Failures))
	}
	failure := summary.Failures[0]
	if failure.CaseID == nil || *failure.CaseID != 7 {
		t.Errorf("expected last case marker 7, got %v", failure.CaseID)
	}
	if failure.CaseExitCode == nil || *failure.CaseExitCode != 0 {
		t.Errorf("expected case-only rerun to pass, got %v", failure.CaseExitCode)
	}
	if _, err := os.Stat(cfg.CaseLogPath("alpha", 7)); err != nil {
		t.Errorf("expected case log to exist: %v", err)
	}
}

func TestEngine_Run_CasePassDisabled(t *testing.T) {
	script := writeScript(t, t.TempDir(),
		`case "$1" in
-Q)
  mkdir -p Testing/Temporary
  printf '1:alpha\n' > Testing/Temporary/LastTestsFailed.log
  exit 4
  ;;
-R)
  echo "alpha: Case 7"
  exit 5
  ;;
esac
exit 0
`)
	cfg := newTestConfig(t, script)
	cfg.Flags.NoCasePass = true
	engine := newEngine(t, cfg)

	code, _, err := engine.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 5 {
		t.Errorf("expected exit 5, got %d", code)
	}

	summary, err := storage.NewJSONStorage(cfg).Load()
	if err != nil {
		t.Fatalf("load summary: %v", err)
	}
	if summary.Failures[0].CaseID != nil {
		t.Errorf("expected no case detection, got %v", *summary.Failures[0].CaseID)
	}
}

func TestEngine_Run_RerunKilledBySignal(t *testing.T) {
	script := writeScript(t, t.TempDir(),
		`case "$1" in
-Q)
  mkdir -p Testing/Temporary
  printf '1:alpha\n' > Testing/Temporary/LastTestsFailed.log
  exit 4
  ;;
-R)
  kill -KILL $$
  ;;
esac
exit 0
`)
	cfg := newTestConfig(t, script)
	cfg.Flags.NoCasePass = true
	engine := newEngine(t, cfg)

	code, _, err := engine.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A signal-killed rerun reports -1; the final code must stay positive.
	if code != 1 {
		t.Errorf("expected exit 1 for signal-killed rerun, got %d", code)
	}
}

func TestEngine_Run_NoSecondPass(t *testing.T) {
	script := writeScript(t, t.TempDir(),
		`case "$1" in
-Q)
  mkdir -p Testing/Temporary
  printf '1:alpha\n' > Testing/Temporary/LastTestsFailed.log
  exit 4
  ;;
-R)
  echo "$2" >> "$CTP_RECORD"
  exit 0
  ;;
esac
exit 0
`)
	cfg := newTestConfig(t, script)
	cfg.Flags.NoSecondPass = true
	record := filepath.Join(t.TempDir(), "record")
	engine := newEngine(t, cfg, "CTP_RECORD="+record)

	code, _, err := engine.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 4 {
		t.Errorf("expected pass 1 exit code 4, got %d", code)
	}
	if _, err := os.Stat(record); err == nil {
		t.Error("expected no reruns with --no-second-pass")
	}
}

func TestEngine_Run_AmbiguousFailureList(t *testing.T) {
	script := writeScript(t, t.TempDir(), "echo 'something went wrong'\nexit 3\n")
	cfg := newTestConfig(t, script)
	engine := newEngine(t, cfg)

	code, _, err := engine.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 3 {
		t.Errorf("expected pass 1 exit code 3, got %d", code)
	}
}

func TestEngine_Run_FallbackToScrapedOutput(t *testing.T) {
	script := writeScript(t, t.TempDir(),
		`case "$1" in
-Q)
  echo "The following tests FAILED:"
  echo "  12 - mytest (Failed)"
  echo ""
  exit 8
  ;;
-R)
  echo "$2" >> "$CTP_RECORD"
  exit 0
  ;;
esac
exit 0
`)
	cfg := newTestConfig(t, script)
	record := filepath.Join(t.TempDir(), "record")
	engine := newEngine(t, cfg, "CTP_RECORD="+record)

	if _, _, err := engine.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(record)
	if err != nil {
		t.Fatalf("read rerun record: %v", err)
	}
	if strings.TrimSpace(string(data)) != "^mytest$" {
		t.Errorf("expected scraped failure to be rerun, got %q", string(data))
	}
}

func TestEngine_Run_ExtraArgsPassedThrough(t *testing.T) {
	script := writeScript(t, t.TempDir(),
		`echo "$@" >> "$CTP_RECORD"
exit 0
`)
	cfg := newTestConfig(t, script)
	cfg.Flags.ExtraArgs = []string{"-j8", "--timeout", "120"}
	record := filepath.Join(t.TempDir(), "record")
	engine := newEngine(t, cfg, "CTP_RECORD="+record)

	if _, _, err := engine.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(record)
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	if !strings.Contains(string(data), "-j8 --timeout 120") {
		t.Errorf("expected pass-through args in pass 1 invocation, got %q", string(data))
	}
}
