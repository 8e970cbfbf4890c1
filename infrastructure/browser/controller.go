package browser

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"navcheck/domain/entities"
	"navcheck/domain/interfaces"
)

// Options controls how the browser is launched and how long assertions poll
type Options struct {
	Engine            string
	Headless          bool
	Timeout           time.Duration
	NavigationTimeout time.Duration
}

type browserController struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	expect  playwright.PlaywrightAssertions
	opts    Options
	logger  *logrus.Logger
}

// NewBrowserController - starts playwright and launches the configured engine
func NewBrowserController(opts Options, logger *logrus.Logger) (interfaces.Browser, error) {
	pw, err := playwright.Run(&playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browserType, err := engine(pw, opts.Engine)
	if err != nil {
		pw.Stop()
		return nil, err
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--disable-dev-shm-usage",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"engine":   opts.Engine,
		"version":  browser.Version(),
		"headless": opts.Headless,
	}).Info("browser launched")

	return &browserController{
		pw:      pw,
		browser: browser,
		expect:  playwright.NewPlaywrightAssertions(milliseconds(opts.Timeout)),
		opts:    opts,
		logger:  logger,
	}, nil
}

// engine - picks the browser type by name
func engine(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch strings.ToLower(name) {
	case "", "chromium":
		return pw.Chromium, nil
	case "firefox":
		return pw.Firefox, nil
	case "webkit":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unknown browser engine: %s", name)
	}
}

// Name - returns the engine name
func (b *browserController) Name() string {
	if b.opts.Engine == "" {
		return "chromium"
	}
	return strings.ToLower(b.opts.Engine)
}

// NewPage - opens a page in a fresh browser context
func (b *browserController) NewPage(ctx context.Context) (interfaces.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bctx, err := b.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
		ColorScheme: playwright.ColorSchemeDark,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(milliseconds(b.opts.Timeout))
	page.SetDefaultNavigationTimeout(milliseconds(b.opts.NavigationTimeout))

	return &pageHandle{
		page:    page,
		context: bctx,
		expect:  b.expect,
		timeout: milliseconds(b.opts.Timeout),
		navTime: milliseconds(b.opts.NavigationTimeout),
		logger:  b.logger,
	}, nil
}

// Close - closes the browser and stops the driver
func (b *browserController) Close() error {
	var closeErr error

	if b.browser != nil {
		if err := b.browser.Close(); err != nil && !isClosedError(err) {
			closeErr = fmt.Errorf("failed to close browser: %w", err)
		}
		b.browser = nil
	}

	if b.pw != nil {
		if err := b.pw.Stop(); err != nil {
			if closeErr != nil {
				closeErr = fmt.Errorf("%v; failed to stop playwright: %w", closeErr, err)
			} else {
				closeErr = fmt.Errorf("failed to stop playwright: %w", err)
			}
		}
		b.pw = nil
	}

	return closeErr
}

type pageHandle struct {
	page    playwright.Page
	context playwright.BrowserContext
	expect  playwright.PlaywrightAssertions
	timeout float64
	navTime float64
	logger  *logrus.Logger
}

// Navigate - loads url and fails on transport errors or error statuses
func (p *pageHandle) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	resp, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(p.navTime),
	})
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if resp != nil && resp.Status() >= 400 {
		return fmt.Errorf("navigation failed: %s returned status %d", url, resp.Status())
	}

	p.logger.WithField("url", p.page.URL()).Debug("page loaded")
	return nil
}

// Locate - turns a target into a playwright locator
func (p *pageHandle) Locate(target entities.Target) interfaces.Locator {
	var loc playwright.Locator
	if target.CSS != "" {
		loc = p.page.Locator(target.CSS)
	} else {
		loc = p.page.GetByRole(playwright.AriaRole(target.Role), playwright.PageGetByRoleOptions{
			Name:  target.Name,
			Exact: playwright.Bool(target.Exact),
		})
	}

	return &locatorHandle{
		loc:     loc,
		expect:  p.expect.Locator(loc),
		timeout: p.timeout,
	}
}

// Close - closes the page together with its context
func (p *pageHandle) Close() error {
	if err := p.context.Close(); err != nil && !isClosedError(err) {
		return fmt.Errorf("failed to close context: %w", err)
	}
	return nil
}

type locatorHandle struct {
	loc     playwright.Locator
	expect  playwright.LocatorAssertions
	timeout float64
}

func (l *locatorHandle) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return l.loc.Count()
}

func (l *locatorHandle) ExpectVisible(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.expect.ToBeVisible(playwright.LocatorAssertionsToBeVisibleOptions{
		Timeout: playwright.Float(l.timeout),
	})
}

func (l *locatorHandle) ExpectText(ctx context.Context, substring string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.expect.ToContainText(substring, playwright.LocatorAssertionsToContainTextOptions{
		Timeout: playwright.Float(l.timeout),
	})
}

func (l *locatorHandle) ExpectAttribute(ctx context.Context, name, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.expect.ToHaveAttribute(name, value, playwright.LocatorAssertionsToHaveAttributeOptions{
		Timeout: playwright.Float(l.timeout),
	})
}

func (l *locatorHandle) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return l.loc.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(l.timeout),
	})
}

func (l *locatorHandle) Attribute(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return l.loc.GetAttribute(name, playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(l.timeout),
	})
}

func (l *locatorHandle) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.loc.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(l.timeout),
	})
}

// isClosedError - playwright reports already closed targets as errors
func isClosedError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "closed") || strings.Contains(errStr, "target closed")
}

// milliseconds - converts a duration into playwright's float milliseconds
func milliseconds(d time.Duration) float64 {
	return float64(d / time.Millisecond)
}
