package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// ParseEnvOverrides validates and parses repeated --env KEY=VALUE items.
func ParseEnvOverrides(items []string) (map[string]string, error) {
	env := make(map[string]string, len(items))
	for _, item := range items {
		key, value, found := strings.Cut(item, "=")
		if !found {
			return nil, fmt.Errorf("invalid --env value %q: expected KEY=VALUE", item)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid --env value %q: empty KEY", item)
		}
		env[key] = value
	}
	return env, nil
}

// BuildEnv constructs the process environment for every spawned command:
// the inherited environment, then the optional env file, then --env
// overrides layered on top. Built once at startup and shared read-only.
func BuildEnv(envFile string, overrides []string) ([]string, error) {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if key, value, found := strings.Cut(kv, "="); found {
			env[key] = value
		}
	}

	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("read env file %s: %w", envFile, err)
		}
		for key, value := range fileVars {
			env[key] = value
		}
	}

	extra, err := ParseEnvOverrides(overrides)
	if err != nil {
		return nil, err
	}
	for key, value := range extra {
		env[key] = value
	}

	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, key+"="+env[key])
	}
	return out, nil
}
