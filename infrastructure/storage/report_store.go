package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"navcheck/domain/entities"
	"navcheck/domain/interfaces"
)

// Format is a report encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

type reportStore struct {
	path   string
	format Format
	out    io.Writer
}

// NewReportStore - creates a store writing to path, or to out when path is empty
func NewReportStore(path string, format Format, out io.Writer) interfaces.ReportStore {
	return &reportStore{
		path:   path,
		format: format,
		out:    out,
	}
}

// Save - encodes the report to its destination
func (s *reportStore) Save(report *entities.SuiteReport) error {
	if s.path == "" {
		return Write(s.out, report, s.format)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if err := Write(f, report, s.format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write - encodes report to w in the given format
func Write(w io.Writer, report *entities.SuiteReport, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode json report: %w", err)
		}
		return nil

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode yaml report: %w", err)
		}
		return enc.Close()

	case FormatText, "":
		_, err := io.WriteString(w, renderText(report))
		return err

	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

// Load - reads a json or yaml report back
func Load(path string) (*entities.SuiteReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var report entities.SuiteReport
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &report)
	default:
		err = json.Unmarshal(data, &report)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", path, err)
	}
	return &report, nil
}

func renderText(report *entities.SuiteReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "run %s: %s on %s\n\n", report.RunID, report.BaseURL, report.Browser)
	for _, res := range report.Results {
		fmt.Fprintf(&b, "%-5s %s (%s)\n", statusLabel(res.Status), res.Name, res.Duration.Round(time.Millisecond))
		for _, f := range res.Failures {
			fmt.Fprintf(&b, "      - %s\n", f)
			if f.Detail != "" {
				fmt.Fprintf(&b, "        %s\n", firstLine(f.Detail))
			}
		}
	}

	passed, failed, incomplete := report.Counts()
	fmt.Fprintf(&b, "\n%d passed, %d failed, %d not completed\n", passed, failed, incomplete)
	return b.String()
}

func statusLabel(status entities.TestStatus) string {
	switch status {
	case entities.TestStatusPassed:
		return "PASS"
	case entities.TestStatusFailed:
		return "FAIL"
	case entities.TestStatusAborted:
		return "ABORT"
	default:
		return "SKIP"
	}
}

// firstLine - playwright assertion errors carry a multi-line call log
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
