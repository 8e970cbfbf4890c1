package entities

import "fmt"

// AriaRole names an accessible role used to resolve a Target.
type AriaRole string

const (
	RoleLink    AriaRole = "link"
	RoleButton  AriaRole = "button"
	RoleHeading AriaRole = "heading"
)

// Target describes how to find an element on a page. Either Role and Name
// are set (accessible role lookup) or CSS is set. A Target is plain data;
// the page turns it into a live locator every time it is asked.
type Target struct {
	Role  AriaRole `json:"role,omitempty" yaml:"role,omitempty"`
	Name  string   `json:"name,omitempty" yaml:"name,omitempty"`
	Exact bool     `json:"exact,omitempty" yaml:"exact,omitempty"`
	CSS   string   `json:"css,omitempty" yaml:"css,omitempty"`
}

// ByRole returns a Target resolved through accessible role and name.
func ByRole(role AriaRole, name string) Target {
	return Target{Role: role, Name: name}
}

// ByCSS returns a Target resolved through a CSS selector.
func ByCSS(selector string) Target {
	return Target{CSS: selector}
}

// String renders the target the way it shows up in logs and reports.
func (t Target) String() string {
	if t.CSS != "" {
		return "css=" + t.CSS
	}
	return fmt.Sprintf("role=%s[name=%q]", t.Role, t.Name)
}

// Attribute is an expected name/value pair on an element.
type Attribute struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// ElementSpec describes one page element under test.
type ElementSpec struct {
	Name              string     `json:"name" yaml:"name"`
	Target            Target     `json:"target" yaml:"target"`
	ExpectedText      string     `json:"expected_text,omitempty" yaml:"expected_text,omitempty"`
	ExpectedAttribute *Attribute `json:"expected_attribute,omitempty" yaml:"expected_attribute,omitempty"`
}

// HasText reports whether the spec asks for a text check.
func (s ElementSpec) HasText() bool {
	return s.ExpectedText != ""
}

// HasAttribute reports whether the spec asks for an attribute check.
func (s ElementSpec) HasAttribute() bool {
	return s.ExpectedAttribute != nil && s.ExpectedAttribute.Name != ""
}
