package domain

// RunResult is the outcome of one external process invocation.
type RunResult struct {
	ExitCode int    // Process exit code (0 means success)
	Output   string // Combined stdout and stderr
}

// Success reports whether the process exited cleanly.
func (r RunResult) Success() bool {
	return r.ExitCode == 0
}
