// Package assertion collects soft assertion failures for one test case.
package assertion

import (
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"navcheck/domain/entities"
)

// Collector accumulates failures without stopping the checks that produce
// them. One collector belongs to one test case.
type Collector struct {
	mu       sync.Mutex
	failures []entities.Failure
	logger   *logrus.Entry
}

// NewCollector returns an empty collector. logger may be nil.
func NewCollector(logger *logrus.Entry) *Collector {
	return &Collector{
		failures: make([]entities.Failure, 0),
		logger:   logger,
	}
}

// Record appends a failure.
func (c *Collector) Record(f entities.Failure) {
	c.mu.Lock()
	c.failures = append(c.failures, f)
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"check":    f.Check,
			"element":  f.Element,
			"kind":     f.Kind,
			"expected": f.Expected,
			"actual":   f.Actual,
		}).Warn("soft assertion failed")
	}
}

// Failures returns a copy of the recorded failures in record order.
func (c *Collector) Failures() []entities.Failure {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.failures)
}

// Failed reports whether anything was recorded.
func (c *Collector) Failed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.failures) > 0
}

// Len returns the number of recorded failures.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.failures)
}
