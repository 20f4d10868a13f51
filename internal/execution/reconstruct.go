package execution

import (
	"os"
	"path/filepath"

	"github.com/kballard/go-shellquote"

	"ctp/internal/config"
	"ctp/internal/parser"
)

// Reconstructor recovers the standalone invocation for a single test by
// querying `ctest -N -V` and parsing its reply. This is more reliable
// than guessing binary paths across CMake generators.
type Reconstructor struct {
	config *config.Config
	runner *Runner
	parser *parser.CTestParser
}

// NewReconstructor creates a new Reconstructor
func NewReconstructor(cfg *config.Config, runner *Runner, ctestParser *parser.CTestParser) *Reconstructor {
	return &Reconstructor{
		config: cfg,
		runner: runner,
		parser: ctestParser,
	}
}

// Command returns the argv and working directory to invoke one test
// directly, bypassing CTest's dispatch. It never fails: when no command
// is recoverable it guesses `<build-dir>/bin/<test-name>`, a weak last
// resort that only fits one fixed project layout, and callers must
// tolerate the guess being wrong.
func (rc *Reconstructor) Command(testName string) ([]string, string) {
	argv := []string{rc.config.CTestPath, "-N", "-V", "-R", parser.ExactNameRegex(testName)}

	var cmdLine, workingDir string
	if result, err := rc.runner.RunCapture(argv, rc.config.BuildDir); err == nil {
		cmdLine, workingDir = rc.parser.ParseTestCommand(result.Output)
	}

	if workingDir == "" {
		candidate := filepath.Join(rc.config.BuildDir, "test")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			workingDir = candidate
		} else {
			workingDir = rc.config.BuildDir
		}
	}

	if cmdLine != "" {
		if cmd, err := shellquote.Split(cmdLine); err == nil && len(cmd) > 0 {
			return cmd, workingDir
		}
	}
	return []string{filepath.Join(rc.config.BuildDir, "bin", testName)}, workingDir
}
