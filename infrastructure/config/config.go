package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds everything needed to run the suite
type Config struct {
	BaseURL           string        `validate:"required,url"`
	Browser           string        `validate:"oneof=chromium firefox webkit"`
	Headless          bool
	Timeout           time.Duration `validate:"gt=0"`
	NavigationTimeout time.Duration `validate:"gt=0"`
	Workers           int           `validate:"min=1,max=16"`
	Filter            string
	ReportPath        string
	ReportFormat      string `validate:"oneof=text json yaml"`
	LogLevel          string `validate:"oneof=trace debug info warn warning error"`
}

const (
	DefaultBaseURL           = "https://playwright.dev/"
	DefaultBrowser           = "chromium"
	DefaultTimeout           = 5 * time.Second
	DefaultNavigationTimeout = 30 * time.Second
)

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		BaseURL:           DefaultBaseURL,
		Browser:           DefaultBrowser,
		Headless:          true,
		Timeout:           DefaultTimeout,
		NavigationTimeout: DefaultNavigationTimeout,
		Workers:           1,
		ReportFormat:      "text",
		LogLevel:          "info",
	}
}

// Load reads configuration from environment variables through getenv.
// Unset variables keep their defaults.
func Load(getenv func(string) string) (*Config, error) {
	config := Default()
	var errs []error

	if v := getenv("NAVCHECK_BASE_URL"); v != "" {
		config.BaseURL = v
	}
	if v := getenv("NAVCHECK_BROWSER"); v != "" {
		config.Browser = v
	}
	if v := getenv("NAVCHECK_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("NAVCHECK_HEADLESS: %w", err))
		}
		config.Headless = headless
	}
	if v := getenv("NAVCHECK_TIMEOUT_MS"); v != "" {
		d, err := parseMillis(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("NAVCHECK_TIMEOUT_MS: %w", err))
		}
		config.Timeout = d
	}
	if v := getenv("NAVCHECK_NAVIGATION_TIMEOUT_MS"); v != "" {
		d, err := parseMillis(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("NAVCHECK_NAVIGATION_TIMEOUT_MS: %w", err))
		}
		config.NavigationTimeout = d
	}
	if v := getenv("NAVCHECK_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("NAVCHECK_WORKERS: %w", err))
		}
		config.Workers = n
	}
	config.Filter = getenv("NAVCHECK_FILTER")
	config.ReportPath = getenv("NAVCHECK_REPORT_PATH")
	if v := getenv("NAVCHECK_REPORT_FORMAT"); v != "" {
		config.ReportFormat = v
	}
	if v := getenv("NAVCHECK_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks field values
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]error, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Errorf("%s: invalid value %v (%s)", fe.Field(), fe.Value(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %w", errors.Join(msgs...))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func parseMillis(v string) (time.Duration, error) {
	ms, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}
