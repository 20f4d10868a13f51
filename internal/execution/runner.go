package execution

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/kballard/go-shellquote"

	"ctp/internal/domain"
)

// Runner spawns external processes with the environment constructed at
// startup. A non-zero exit code is data, not an error; errors are
// reserved for spawn and I/O failures.
type Runner struct {
	env []string
}

// NewRunner creates a new Runner
func NewRunner(env []string) *Runner {
	return &Runner{env: env}
}

// RunCapture executes argv in dir synchronously, merging stdout and
// stderr into the returned output.
func (r *Runner) RunCapture(argv []string, dir string) (domain.RunResult, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = r.env

	output, err := cmd.CombinedOutput()
	result := domain.RunResult{ExitCode: 0, Output: string(output)}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return domain.RunResult{ExitCode: -1, Output: string(output)}, fmt.Errorf("run %s: %w", argv[0], err)
		}
		result.ExitCode = exitErr.ExitCode()
	}
	return result, nil
}

// RunTee executes argv in dir, duplicating each output line to stdout and
// to logPath as it arrives. The log starts with a shell-quoted header
// line recording the exact command, and its directory is created if
// needed.
func (r *Runner) RunTee(argv []string, dir, logPath string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return -1, fmt.Errorf("create log dir: %w", err)
	}
	logFile, err := os.Create(logPath)
	if err != nil {
		return -1, fmt.Errorf("create log file: %w", err)
	}
	defer logFile.Close()

	fmt.Fprintf(logFile, "$ %s\n", shellquote.Join(argv...))

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = r.env

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return -1, fmt.Errorf("pipe %s: %w", argv[0], err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("run %s: %w", argv[0], err)
	}

	// ReadString grows its buffer as needed, so lines of any length
	// stream through intact. The pipe is always drained to EOF before
	// Wait so the child never blocks on a full pipe.
	reader := bufio.NewReader(stdout)
	var readErr error
	for {
		chunk, err := reader.ReadString('\n')
		if chunk != "" {
			os.Stdout.WriteString(chunk)
			logFile.WriteString(chunk)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				readErr = err
			}
			break
		}
	}

	waitErr := cmd.Wait()
	if readErr != nil {
		return -1, fmt.Errorf("read %s output: %w", argv[0], readErr)
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("wait %s: %w", argv[0], waitErr)
	}
	return 0, nil
}
