package parser

import "regexp"

// CTestParser recovers failed test names, standalone invocations and case
// markers from CTest's logs and human-readable output. Every method is
// best-effort: a scrape that finds nothing returns an empty result, never
// an error.
type CTestParser struct{}

// NewCTestParser creates a new CTestParser
func NewCTestParser() *CTestParser {
	return &CTestParser{}
}

// ExactNameRegex returns a regex (for ctest -R) that matches only the
// given test name, never a name it is a substring of.
func ExactNameRegex(testName string) string {
	return "^" + regexp.QuoteMeta(testName) + "$"
}
