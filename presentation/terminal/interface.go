package terminal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"navcheck/application/catalog"
	"navcheck/application/runner"
	"navcheck/application/suite"
	"navcheck/domain/entities"
	"navcheck/domain/interfaces"
	"navcheck/infrastructure/browser"
	"navcheck/infrastructure/config"
	"navcheck/infrastructure/storage"
)

// ErrSuiteFailed is returned by the run command when any case did not pass.
var ErrSuiteFailed = errors.New("suite failed")

// BrowserFactory launches the browser used by a run.
type BrowserFactory func(opts browser.Options, logger *logrus.Logger) (interfaces.Browser, error)

type TerminalInterface struct {
	getenv     func(string) string
	newBrowser BrowserFactory
	stdout     io.Writer
	stderr     io.Writer
}

// NewTerminalInterface - wires the command line to the environment
func NewTerminalInterface(getenv func(string) string, newBrowser BrowserFactory, stdout, stderr io.Writer) *TerminalInterface {
	if newBrowser == nil {
		newBrowser = browser.NewBrowserController
	}
	return &TerminalInterface{
		getenv:     getenv,
		newBrowser: newBrowser,
		stdout:     stdout,
		stderr:     stderr,
	}
}

// App - builds the navcheck command line application
func (t *TerminalInterface) App(version string) *cli.App {
	return &cli.App{
		Name:      "navcheck",
		Usage:     "Check the navigation header, theme toggle and hero of a documentation site",
		Version:   version,
		Writer:    t.stdout,
		ErrWriter: t.stderr,
		Commands: []*cli.Command{
			t.runCommand(),
			t.catalogCommand(),
		},
	}
}

func (t *TerminalInterface) runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the home page checks",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Usage: "page to load for every test case"},
			&cli.StringFlag{Name: "browser", Usage: "chromium, firefox or webkit"},
			&cli.BoolFlag{Name: "headed", Usage: "show the browser window"},
			&cli.DurationFlag{Name: "timeout", Usage: "assertion polling window"},
			&cli.IntFlag{Name: "workers", Usage: "test cases run concurrently"},
			&cli.StringFlag{Name: "filter", Usage: "only run cases whose name contains this"},
			&cli.StringFlag{Name: "report", Usage: "write the report to this file"},
			&cli.StringFlag{Name: "format", Usage: "report format: text, json or yaml"},
			&cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn or error"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := t.loadConfig(c)
			if err != nil {
				return err
			}
			return t.Run(c.Context, cfg)
		},
	}
}

func (t *TerminalInterface) catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Print the elements checked in the navigation header",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Value: "text", Usage: "text, json or yaml"},
		},
		Action: func(c *cli.Context) error {
			return t.PrintCatalog(c.String("format"))
		},
	}
}

// loadConfig - environment first, then flags that were set explicitly
func (t *TerminalInterface) loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(t.getenv)
	if err != nil {
		return nil, err
	}

	if c.IsSet("url") {
		cfg.BaseURL = c.String("url")
	}
	if c.IsSet("browser") {
		cfg.Browser = c.String("browser")
	}
	if c.IsSet("headed") {
		cfg.Headless = !c.Bool("headed")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("filter") {
		cfg.Filter = c.String("filter")
	}
	if c.IsSet("report") {
		cfg.ReportPath = c.String("report")
	}
	if c.IsSet("format") {
		cfg.ReportFormat = c.String("format")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Run - launches the browser, runs the suite and saves the report
func (t *TerminalInterface) Run(ctx context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg.LogLevel, t.stderr)
	if err != nil {
		return err
	}

	if err := catalog.Validate(catalog.Header()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	browserCtrl, err := t.newBrowser(browser.Options{
		Engine:            cfg.Browser,
		Headless:          cfg.Headless,
		Timeout:           cfg.Timeout,
		NavigationTimeout: cfg.NavigationTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize browser: %w", err)
	}
	defer func() {
		if err := browserCtrl.Close(); err != nil {
			logger.WithError(err).Warn("failed to close browser")
		}
	}()

	s := suite.New(browserCtrl, runner.NewRunner(logger), logger, suite.Options{
		BaseURL: cfg.BaseURL,
		Workers: cfg.Workers,
		Filter:  cfg.Filter,
	})
	if len(s.Cases()) == 0 {
		return fmt.Errorf("no test case matches filter %q", cfg.Filter)
	}

	report := s.Run(ctx)

	store := storage.NewReportStore(cfg.ReportPath, storage.Format(cfg.ReportFormat), t.stdout)
	if err := store.Save(report); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	if cfg.ReportPath != "" {
		logger.WithField("path", cfg.ReportPath).Info("report saved")
	}

	if !report.Passed() {
		return ErrSuiteFailed
	}
	return nil
}

// PrintCatalog - writes the header catalog in the requested format
func (t *TerminalInterface) PrintCatalog(format string) error {
	header := catalog.Header()

	switch storage.Format(format) {
	case storage.FormatJSON:
		enc := json.NewEncoder(t.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(header)
	case storage.FormatYAML:
		return yaml.NewEncoder(t.stdout).Encode(header)
	case storage.FormatText:
		for _, spec := range header {
			fmt.Fprintf(t.stdout, "%-22s %s%s\n", spec.Name, spec.Target, describeExpectations(spec))
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func describeExpectations(spec entities.ElementSpec) string {
	var out string
	if spec.HasText() {
		out += fmt.Sprintf(" text~%q", spec.ExpectedText)
	}
	if spec.HasAttribute() {
		out += fmt.Sprintf(" %s=%q", spec.ExpectedAttribute.Name, spec.ExpectedAttribute.Value)
	}
	return out
}

// newLogger - text logger with full timestamps
func newLogger(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return logger, nil
}
