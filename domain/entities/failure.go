package entities

import "fmt"

// FailureKind classifies a failed check
type FailureKind string

const (
	FailureNotVisible        FailureKind = "not_visible"
	FailureTextMismatch      FailureKind = "text_mismatch"
	FailureAttributeMismatch FailureKind = "attribute_mismatch"
	FailureNavigation        FailureKind = "navigation"
)

// Failure is one recorded soft assertion failure (or the hard navigation failure)
type Failure struct {
	Kind     FailureKind `json:"kind" yaml:"kind"`
	Check    string      `json:"check" yaml:"check"`
	Element  string      `json:"element" yaml:"element"`
	Expected string      `json:"expected" yaml:"expected"`
	Actual   string      `json:"actual" yaml:"actual"`
	Detail   string      `json:"detail,omitempty" yaml:"detail,omitempty"`
}

func (f Failure) String() string {
	return fmt.Sprintf("[%s] %s: expected %q, got %q", f.Kind, f.Element, f.Expected, f.Actual)
}
