package parser

import (
	"fmt"
	"regexp"
	"strconv"
)

// LastCaseID returns the last case id printed by a test's own progress
// markers, or nil if no marker appears. Markers look like:
//
//	testsurroundingtext: Case 20
//	testkeyhandling: Case 4 - ...
//
// Tests in this ecosystem abort on the first failing case, so the last
// marker is the best available guess for the case that was executing when
// the test died. This is a heuristic: a test that fails in cleanup after
// its final case will be reported with the wrong case.
func (p *CTestParser) LastCaseID(output, testName string) *int {
	rx := regexp.MustCompile(fmt.Sprintf(`\b%s:\s*Case\s+(\d+)\b`, regexp.QuoteMeta(testName)))

	var last *int
	for _, m := range rx.FindAllStringSubmatch(output, -1) {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		last = &id
	}
	return last
}
