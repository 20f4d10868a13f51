package domain

// RunSummaryMeta contains metadata about one two-pass run.
type RunSummaryMeta struct {
	BuildDir        string  `json:"build_dir"`
	Pass1ExitCode   int     `json:"pass1_exit_code"`
	FailedTests     int     `json:"failed_tests"`
	RerunsPassed    int     `json:"reruns_passed"`
	RerunsFailed    int     `json:"reruns_failed"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// RunSummary is the complete persisted record of a two-pass run.
type RunSummary struct {
	Meta     RunSummaryMeta `json:"meta"`
	Failures []FailedTest   `json:"failures"`
}
