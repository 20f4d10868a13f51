package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_ValidateBuildDir(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		cfg := New()
		cfg.BuildDir = filepath.Join(t.TempDir(), "missing")
		if err := cfg.ValidateBuildDir(); err == nil {
			t.Error("expected error for missing build dir")
		}
	})

	t.Run("directory without sentinel files", func(t *testing.T) {
		cfg := New()
		cfg.BuildDir = t.TempDir()
		if err := cfg.ValidateBuildDir(); err == nil {
			t.Error("expected error for dir without sentinels")
		}
	})

	for _, sentinel := range SentinelFiles {
		t.Run("recognized via "+sentinel, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, sentinel), []byte(""), 0644); err != nil {
				t.Fatalf("write sentinel: %v", err)
			}
			cfg := New()
			cfg.BuildDir = dir
			if err := cfg.ValidateBuildDir(); err != nil {
				t.Errorf("expected valid build dir, got %v", err)
			}
		})
	}
}

func TestParseEnvOverrides(t *testing.T) {
	tests := []struct {
		name    string
		items   []string
		wantErr bool
		check   func(t *testing.T, env map[string]string)
	}{
		{
			name:  "simple pair",
			items: []string{"GLOG_v=2"},
			check: func(t *testing.T, env map[string]string) {
				if env["GLOG_v"] != "2" {
					t.Errorf("expected GLOG_v=2, got %q", env["GLOG_v"])
				}
			},
		},
		{
			name:  "value containing equals",
			items: []string{"A=b=c"},
			check: func(t *testing.T, env map[string]string) {
				if env["A"] != "b=c" {
					t.Errorf("expected A=b=c, got %q", env["A"])
				}
			},
		},
		{
			name:  "empty value allowed",
			items: []string{"EMPTY="},
			check: func(t *testing.T, env map[string]string) {
				if v, ok := env["EMPTY"]; !ok || v != "" {
					t.Errorf("expected EMPTY present and empty, got %q (present=%v)", v, ok)
				}
			},
		},
		{
			name:    "missing equals",
			items:   []string{"NOVALUE"},
			wantErr: true,
		},
		{
			name:    "empty key",
			items:   []string{"=value"},
			wantErr: true,
		},
		{
			name:    "whitespace key",
			items:   []string{"  =value"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := ParseEnvOverrides(tt.items)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %v", tt.items)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, env)
		})
	}
}

func TestBuildEnv(t *testing.T) {
	lookup := func(env []string, key string) (string, bool) {
		prefix := key + "="
		for _, kv := range env {
			if len(kv) >= len(prefix) && kv[:len(prefix)] == prefix {
				return kv[len(prefix):], true
			}
		}
		return "", false
	}

	t.Run("inherits the process environment", func(t *testing.T) {
		t.Setenv("CTP_TEST_INHERITED", "yes")
		env, err := BuildEnv("", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v, ok := lookup(env, "CTP_TEST_INHERITED"); !ok || v != "yes" {
			t.Errorf("expected inherited var, got %q (present=%v)", v, ok)
		}
	})

	t.Run("overrides win over inherited", func(t *testing.T) {
		t.Setenv("CTP_TEST_LAYERED", "inherited")
		env, err := BuildEnv("", []string{"CTP_TEST_LAYERED=override"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v, _ := lookup(env, "CTP_TEST_LAYERED"); v != "override" {
			t.Errorf("expected override, got %q", v)
		}
	})

	t.Run("env file layered under overrides", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(envFile, []byte("CTP_FROM_FILE=file\nCTP_BOTH=file\n"), 0644); err != nil {
			t.Fatalf("write env file: %v", err)
		}
		env, err := BuildEnv(envFile, []string{"CTP_BOTH=flag"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v, _ := lookup(env, "CTP_FROM_FILE"); v != "file" {
			t.Errorf("expected file value, got %q", v)
		}
		if v, _ := lookup(env, "CTP_BOTH"); v != "flag" {
			t.Errorf("expected flag to win over file, got %q", v)
		}
	})

	t.Run("unreadable env file errors", func(t *testing.T) {
		if _, err := BuildEnv(filepath.Join(t.TempDir(), "missing.env"), nil); err == nil {
			t.Error("expected error for missing env file")
		}
	})

	t.Run("malformed override errors", func(t *testing.T) {
		if _, err := BuildEnv("", []string{"BAD"}); err == nil {
			t.Error("expected error for malformed override")
		}
	})
}

func TestConfig_Paths(t *testing.T) {
	cfg := New()
	cfg.BuildDir = "/b"

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"scratch dir", cfg.ScratchDir(), "/b/.ctest-2pass"},
		{"pass 1 log", cfg.Pass1LogPath(), "/b/.ctest-2pass/pass1.log"},
		{"pass 2 log", cfg.Pass2LogPath("mytest"), "/b/.ctest-2pass/pass2.mytest.log"},
		{"case log", cfg.CaseLogPath("mytest", 7), "/b/.ctest-2pass/pass2.mytest.case7.log"},
		{"summary", cfg.SummaryPath(), "/b/.ctest-2pass/summary.json"},
		{"last failed log", cfg.LastFailedLogPath(), "/b/Testing/Temporary/LastTestsFailed.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != filepath.FromSlash(tt.expected) {
				t.Errorf("expected %s, got %s", tt.expected, tt.got)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("build dir resolved to absolute", func(t *testing.T) {
		cfg := Load(Flags{BuildDir: "build"})
		if !filepath.IsAbs(cfg.BuildDir) {
			t.Errorf("expected absolute build dir, got %s", cfg.BuildDir)
		}
	})

	t.Run("ctest path override", func(t *testing.T) {
		cfg := Load(Flags{CTestPath: "/opt/cmake/bin/ctest"})
		if cfg.CTestPath != "/opt/cmake/bin/ctest" {
			t.Errorf("expected ctest override, got %s", cfg.CTestPath)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		cfg := Load(Flags{})
		if cfg.CTestPath != DefaultCTestPath {
			t.Errorf("expected default ctest path, got %s", cfg.CTestPath)
		}
	})
}
