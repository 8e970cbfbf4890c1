package entities

import "time"

// TestStatus represents the outcome of a test case
type TestStatus string

const (
	TestStatusPassed  TestStatus = "passed"
	TestStatusFailed  TestStatus = "failed"
	TestStatusAborted TestStatus = "aborted"
	TestStatusSkipped TestStatus = "skipped"
)

// TestResult is the outcome of one test case
type TestResult struct {
	Name     string        `json:"name" yaml:"name"`
	Status   TestStatus    `json:"status" yaml:"status"`
	Failures []Failure     `json:"failures,omitempty" yaml:"failures,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Passed reports whether the case ran to completion without failures.
func (r TestResult) Passed() bool {
	return r.Status == TestStatusPassed
}
