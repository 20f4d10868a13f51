package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all configuration for the application
type Config struct {
	// BuildDir is the CMake build directory, resolved to an absolute path
	BuildDir string

	// CTestPath is the ctest executable to invoke
	CTestPath string

	// Env is the process environment used for every spawned command,
	// constructed once at startup (inherited vars, then env file, then
	// --env overrides)
	Env []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	BuildDir     string
	Pause        bool
	EnvVars      []string
	EnvFile      string
	NoSecondPass bool
	NoCasePass   bool
	CTestPath    string
	ExtraArgs    []string
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		BuildDir:  DefaultBuildDir,
		CTestPath: DefaultCTestPath,
	}
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags

	if flags.BuildDir != "" {
		cfg.BuildDir = flags.BuildDir
	}
	if abs, err := filepath.Abs(cfg.BuildDir); err == nil {
		cfg.BuildDir = abs
	}
	if flags.CTestPath != "" {
		cfg.CTestPath = flags.CTestPath
	}

	return cfg
}

// ValidateBuildDir checks that the build dir exists and looks like a
// CMake/CTest build directory (at least one sentinel file present).
func (c *Config) ValidateBuildDir() error {
	info, err := os.Stat(c.BuildDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("build dir does not exist: %s", c.BuildDir)
	}
	for _, sentinel := range SentinelFiles {
		if fi, err := os.Stat(filepath.Join(c.BuildDir, sentinel)); err == nil && fi.Mode().IsRegular() {
			return nil
		}
	}
	return fmt.Errorf("not a CMake/CTest build dir (missing CTestTestfile.cmake / CMakeCache.txt): %s", c.BuildDir)
}

// ScratchDir returns the directory all of this tool's logs live under.
func (c *Config) ScratchDir() string {
	return filepath.Join(c.BuildDir, ScratchDirName)
}

// Pass1LogPath returns the path of the captured quiet-pass output.
func (c *Config) Pass1LogPath() string {
	return filepath.Join(c.ScratchDir(), Pass1LogFile)
}

// Pass2LogPath returns the per-test log path for a verbose rerun.
func (c *Config) Pass2LogPath(testName string) string {
	return filepath.Join(c.ScratchDir(), fmt.Sprintf("pass2.%s.log", testName))
}

// CaseLogPath returns the log path for a case-only rerun of one test.
func (c *Config) CaseLogPath(testName string, caseID int) string {
	return filepath.Join(c.ScratchDir(), fmt.Sprintf("pass2.%s.case%d.log", testName, caseID))
}

// SummaryPath returns the path of the persisted run summary.
func (c *Config) SummaryPath() string {
	return filepath.Join(c.ScratchDir(), SummaryFile)
}

// LastFailedLogPath returns the path of the structured failure log that
// CTest writes as a side effect of an aggregate run.
func (c *Config) LastFailedLogPath() string {
	parts := append([]string{c.BuildDir}, LastFailedLogParts...)
	return filepath.Join(parts...)
}
