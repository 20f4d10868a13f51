package parser

import "strings"

// commandScanLimit bounds how far ahead we look for a command that CTest
// printed on the line after its "Test command:" label.
const commandScanLimit = 5

// ParseTestCommand extracts the shell-quoted invocation and working
// directory from the output of `ctest -N -V -R ^name$`. Either result may
// be empty; the caller supplies fallbacks.
//
// Expected lines:
//
//	Test command: /path/to/bin/testname "arg"
//	Working Directory: /path/to/build/test
//
// Some CTest versions print the label and the command on separate lines;
// in that variant the next few non-blank lines are scanned for the value.
func (p *CTestParser) ParseTestCommand(output string) (cmdLine, workingDir string) {
	lines := strings.Split(output, "\n")

	for _, line := range lines {
		if rest, ok := labelValue(line, "Test command:"); ok && rest != "" {
			cmdLine = rest
		} else if rest, ok := labelValue(line, "Working Directory:"); ok && rest != "" {
			workingDir = rest
		}
	}

	if cmdLine == "" {
		for i, line := range lines {
			rest, ok := labelValue(line, "Test command:")
			if !ok {
				continue
			}
			if rest != "" {
				cmdLine = rest
				break
			}
			limit := min(i+1+commandScanLimit, len(lines))
			for j := i + 1; j < limit; j++ {
				if next := strings.TrimSpace(lines[j]); next != "" {
					cmdLine = next
					break
				}
			}
			break
		}
	}

	return cmdLine, workingDir
}

// labelValue returns the trimmed remainder after a line's label prefix.
func labelValue(line, label string) (string, bool) {
	if !strings.HasPrefix(line, label) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(line, label)), true
}
