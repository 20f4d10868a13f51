package domain

// FailedTest records one failed test and what the rerun passes learned about it.
type FailedTest struct {
	Name         string `json:"name"`
	ExitCode     int    `json:"exit_code"`
	LogPath      string `json:"log_path"`
	CaseID       *int   `json:"case_id,omitempty"`        // Last "Case N" marker seen in the rerun log
	CaseExitCode *int   `json:"case_exit_code,omitempty"` // Set only when the case-only rerun actually ran
	CaseLogPath  string `json:"case_log_path,omitempty"`
}

// ReranGreen reports whether the verbose rerun passed.
func (t FailedTest) ReranGreen() bool {
	return t.ExitCode == 0
}
