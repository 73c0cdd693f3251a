package apitest

import (
	"fmt"
	"strings"
)

// Results describes the aggregate outcome of a test run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

// TestResult describes the outcome of one test scope.
type TestResult struct {
	TestID TestID
	Errors []error
}

// OK returns true if there were no failures.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID is a hierarchical test name, one element per scope level.
type TestID []string

func (t TestID) String() string {
	return strings.Join(t, "/")
}

// Plus returns a copy of this TestID with one more name appended.
func (t TestID) Plus(name string) TestID {
	return append(append(TestID(nil), t...), name)
}

// TestFailure pairs a test ID with one of its errors, for printing.
type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
