// Package suite declares the home page test cases and runs them against
// isolated pages.
package suite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"navcheck/application/assertion"
	"navcheck/application/catalog"
	"navcheck/application/runner"
	"navcheck/domain/entities"
	"navcheck/domain/interfaces"
)

// ErrNavigation marks a test case whose page could not be loaded.
var ErrNavigation = errors.New("navigation failed")

// CheckFunc runs the checks of one test case against a loaded page.
type CheckFunc func(ctx context.Context, page interfaces.Page, c *assertion.Collector) error

// Case is one named test case.
type Case struct {
	Name  string
	Check CheckFunc
}

// Options configures a Suite.
type Options struct {
	BaseURL string
	Workers int
	Filter  string
}

// Suite runs test cases, each on its own page.
type Suite struct {
	browser interfaces.Browser
	logger  *logrus.Logger
	opts    Options
	cases   []Case
}

// New builds the home page suite.
func New(browser interfaces.Browser, r *runner.Runner, logger *logrus.Logger, opts Options) *Suite {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	header := catalog.Header()

	return &Suite{
		browser: browser,
		logger:  logger,
		opts:    opts,
		cases: []Case{
			{
				Name: "header navigation elements are visible",
				Check: func(ctx context.Context, page interfaces.Page, c *assertion.Collector) error {
					return r.RunVisibilityCheck(ctx, header, page, c)
				},
			},
			{
				Name: "header navigation elements have names",
				Check: func(ctx context.Context, page interfaces.Page, c *assertion.Collector) error {
					return r.RunTextCheck(ctx, header, page, c)
				},
			},
			{
				Name: "header navigation elements have href attributes",
				Check: func(ctx context.Context, page interfaces.Page, c *assertion.Collector) error {
					return r.RunAttributeCheck(ctx, header, page, c)
				},
			},
			{Name: "theme toggle cycles light mode", Check: r.RunThemeToggle},
			{Name: "hero heading", Check: r.RunHeroCheck},
			{Name: "get started link", Check: r.RunCallToActionCheck},
		},
	}
}

// Cases returns the cases selected by the filter in declaration order.
func (s *Suite) Cases() []Case {
	if s.opts.Filter == "" {
		return s.cases
	}
	filter := strings.ToLower(s.opts.Filter)
	selected := make([]Case, 0, len(s.cases))
	for _, tc := range s.cases {
		if strings.Contains(strings.ToLower(tc.Name), filter) {
			selected = append(selected, tc)
		}
	}
	return selected
}

// Run executes the selected cases with at most Workers in flight and
// returns their results in declaration order. Cases not started before ctx
// is canceled are reported as skipped.
func (s *Suite) Run(ctx context.Context) *entities.SuiteReport {
	cases := s.Cases()
	report := &entities.SuiteReport{
		RunID:     uuid.NewString(),
		BaseURL:   s.opts.BaseURL,
		Browser:   s.browser.Name(),
		StartedAt: time.Now(),
		Results:   make([]entities.TestResult, len(cases)),
	}

	log := s.logger.WithField("run", report.RunID)
	log.WithFields(logrus.Fields{
		"cases":   len(cases),
		"workers": s.opts.Workers,
		"url":     s.opts.BaseURL,
	}).Info("starting suite")

	sem := make(chan struct{}, s.opts.Workers)
	var wg sync.WaitGroup

	for i, tc := range cases {
		if ctx.Err() != nil {
			report.Results[i] = entities.TestResult{Name: tc.Name, Status: entities.TestStatusSkipped}
			continue
		}
		select {
		case <-ctx.Done():
			report.Results[i] = entities.TestResult{Name: tc.Name, Status: entities.TestStatusSkipped}
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, tc Case) {
			defer wg.Done()
			defer func() { <-sem }()
			report.Results[i] = s.runCase(ctx, log.WithField("test", tc.Name), tc)
		}(i, tc)
	}
	wg.Wait()

	report.FinishedAt = time.Now()
	passed, failed, incomplete := report.Counts()
	log.WithFields(logrus.Fields{
		"passed":     passed,
		"failed":     failed,
		"incomplete": incomplete,
		"duration":   report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond),
	}).Info("suite finished")

	return report
}

// runCase - loads a fresh page and runs one case against it
func (s *Suite) runCase(ctx context.Context, log *logrus.Entry, tc Case) entities.TestResult {
	started := time.Now()
	result := entities.TestResult{Name: tc.Name}

	if ctx.Err() != nil {
		result.Status = entities.TestStatusSkipped
		return result
	}

	page, err := s.browser.NewPage(ctx)
	if err != nil {
		return s.navigationFailure(log, result, started, fmt.Errorf("%w: open page: %w", ErrNavigation, err))
	}
	defer func() {
		if err := page.Close(); err != nil {
			log.WithError(err).Warn("failed to close page")
		}
	}()

	if err := page.Navigate(ctx, s.opts.BaseURL); err != nil {
		return s.navigationFailure(log, result, started, fmt.Errorf("%w: %w", ErrNavigation, err))
	}

	c := assertion.NewCollector(log)
	checkErr := tc.Check(ctx, page, c)

	result.Failures = c.Failures()
	switch {
	case checkErr != nil:
		result.Status = entities.TestStatusAborted
		log.WithError(checkErr).Warn("test aborted")
	case c.Failed():
		result.Status = entities.TestStatusFailed
		log.WithField("failures", c.Len()).Warn("test failed")
	default:
		result.Status = entities.TestStatusPassed
		log.Info("test passed")
	}
	result.Duration = time.Since(started)
	return result
}

func (s *Suite) navigationFailure(log *logrus.Entry, result entities.TestResult, started time.Time, err error) entities.TestResult {
	log.WithError(err).Error("navigation failed")
	result.Status = entities.TestStatusFailed
	result.Failures = []entities.Failure{{
		Kind:     entities.FailureNavigation,
		Check:    "navigation",
		Element:  s.opts.BaseURL,
		Expected: "page loaded",
		Actual:   "load failed",
		Detail:   err.Error(),
	}}
	result.Duration = time.Since(started)
	return result
}
