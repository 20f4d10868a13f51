package cli

// Exit codes of the tool. Anything else is a propagated ctest exit code.
const (
	// ExitFailure is the generic failure / ambiguous-failure-list code
	ExitFailure = 1
	// ExitUsage signals a usage or environment error; nothing was spawned
	ExitUsage = 2
)

// ExitError carries a specific process exit code out of a command. A nil
// Err means the command already reported the problem to the operator.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exitf wraps an error with an exit code.
func Exitf(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// ExitCode returns a silent ExitError for an already-reported outcome.
func ExitCode(code int) *ExitError {
	return &ExitError{Code: code}
}
