package entities

import "time"

// SuiteReport collects the results of one run in declaration order
type SuiteReport struct {
	RunID      string       `json:"run_id" yaml:"run_id"`
	BaseURL    string       `json:"base_url" yaml:"base_url"`
	Browser    string       `json:"browser" yaml:"browser"`
	StartedAt  time.Time    `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time    `json:"finished_at" yaml:"finished_at"`
	Results    []TestResult `json:"results" yaml:"results"`
}

// Counts returns how many cases passed, failed and did not complete.
func (r *SuiteReport) Counts() (passed, failed, incomplete int) {
	for _, res := range r.Results {
		switch res.Status {
		case TestStatusPassed:
			passed++
		case TestStatusFailed:
			failed++
		default:
			incomplete++
		}
	}
	return passed, failed, incomplete
}

// Passed is true only when every case passed.
func (r *SuiteReport) Passed() bool {
	_, failed, incomplete := r.Counts()
	return failed == 0 && incomplete == 0
}
