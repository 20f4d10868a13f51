package parser

import (
	"os"
	"regexp"
	"strings"
)

var (
	failedSectionRe = regexp.MustCompile(`^The following tests FAILED:`)
	failedLineRe    = regexp.MustCompile(`^\s*(\d+)\s*-\s*(\S.*?)\s*\(Failed\)\s*$`)
)

// FailedFromLogFile parses CTest's LastTestsFailed.log.
//
// Typical format:
//
//	2:testsurroundingtext
//	3:testkeyhandling
//
// Rarely a line is a bare test name with no "id:" prefix. Returns nil if
// the file is absent or yields nothing.
func (p *CTestParser) FailedFromLogFile(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var names []string
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if _, name, found := strings.Cut(line, ":"); found {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		} else {
			names = append(names, line)
		}
	}
	return dedupe(names)
}

// FailedFromOutput scrapes the "The following tests FAILED:" section of a
// captured CTest run. The section is contiguous; a blank line inside it
// ends the scan.
func (p *CTestParser) FailedFromOutput(output string) []string {
	var names []string
	inSection := false
	for _, line := range strings.Split(output, "\n") {
		if failedSectionRe.MatchString(strings.TrimSpace(line)) {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		if m := failedLineRe.FindStringSubmatch(line); m != nil {
			names = append(names, strings.TrimSpace(m[2]))
		} else if strings.TrimSpace(line) == "" {
			break
		}
	}
	return dedupe(names)
}

// dedupe removes duplicates while preserving first-occurrence order.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
