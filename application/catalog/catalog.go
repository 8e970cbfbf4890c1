// Package catalog holds the fixed set of elements checked on the
// documentation home page.
package catalog

import (
	"errors"
	"fmt"
	"slices"

	"navcheck/domain/entities"
)

// ErrInvalidCatalog is returned by Validate for malformed catalogs.
var ErrInvalidCatalog = errors.New("invalid catalog")

var (
	// ThemeToggle is the control that cycles the color theme.
	ThemeToggle = entities.ByRole(entities.RoleButton, "Switch between dark and light")

	// DocumentRoot is where the site stores the active theme.
	DocumentRoot = entities.ByCSS("html")
)

// The third click switches to the system preference and the site reports
// it under data-theme-choice, not data-theme.
var themeCycle = []entities.ThemeStep{
	{Attribute: "data-theme", Value: "light"},
	{Attribute: "data-theme", Value: "dark"},
	{Attribute: "data-theme-choice", Value: "system"},
}

var header = []entities.ElementSpec{
	{
		Name:              "Playwright logo link",
		Target:            entities.ByRole(entities.RoleLink, "Playwright logo Playwright"),
		ExpectedText:      "Playwright",
		ExpectedAttribute: &entities.Attribute{Name: "href", Value: "/"},
	},
	{
		Name:              "Docs link",
		Target:            entities.ByRole(entities.RoleLink, "Docs"),
		ExpectedText:      "Docs",
		ExpectedAttribute: &entities.Attribute{Name: "href", Value: "/docs/intro"},
	},
	{
		Name:              "API link",
		Target:            entities.ByRole(entities.RoleLink, "API"),
		ExpectedText:      "API",
		ExpectedAttribute: &entities.Attribute{Name: "href", Value: "/docs/api/class-playwright"},
	},
	{
		Name:         "Node.js link",
		Target:       entities.ByRole(entities.RoleButton, "Node.js"),
		ExpectedText: "Node.js",
	},
	{
		Name:              "Community link",
		Target:            entities.ByRole(entities.RoleLink, "Community"),
		ExpectedText:      "Community",
		ExpectedAttribute: &entities.Attribute{Name: "href", Value: "/community/welcome"},
	},
	{
		Name:              "GitHub icon",
		Target:            entities.ByRole(entities.RoleLink, "GitHub repository"),
		ExpectedAttribute: &entities.Attribute{Name: "href", Value: "https://github.com/microsoft/playwright"},
	},
	{
		Name:              "Discord icon",
		Target:            entities.ByRole(entities.RoleLink, "Discord server"),
		ExpectedAttribute: &entities.Attribute{Name: "href", Value: "https://aka.ms/playwright/discord"},
	},
	{
		Name:   "Theme switch button",
		Target: ThemeToggle,
	},
	{
		Name:   "Search button",
		Target: entities.ByRole(entities.RoleButton, "Search (Command+K)"),
	},
}

var hero = entities.ElementSpec{
	Name:         "Hero heading",
	Target:       entities.ByRole(entities.RoleHeading, "Playwright enables reliable"),
	ExpectedText: "Playwright enables reliable end-to-end testing for modern web apps.",
}

var getStarted = entities.ElementSpec{
	Name:              "Get started link",
	Target:            entities.ByRole(entities.RoleLink, "Get started"),
	ExpectedText:      "Get started",
	ExpectedAttribute: &entities.Attribute{Name: "href", Value: "/docs/intro"},
}

// Header returns the navigation header entries in catalog order. The
// returned slice is a copy; the package-level catalog is never modified.
func Header() []entities.ElementSpec {
	out := slices.Clone(header)
	for i := range out {
		if out[i].ExpectedAttribute != nil {
			attr := *out[i].ExpectedAttribute
			out[i].ExpectedAttribute = &attr
		}
	}
	return out
}

// Hero returns the hero heading entry.
func Hero() entities.ElementSpec {
	return hero
}

// GetStarted returns the call to action entry.
func GetStarted() entities.ElementSpec {
	spec := getStarted
	attr := *getStarted.ExpectedAttribute
	spec.ExpectedAttribute = &attr
	return spec
}

// ThemeCycle lists the root attribute expected after each toggle click,
// starting from the dark theme.
func ThemeCycle() []entities.ThemeStep {
	return slices.Clone(themeCycle)
}

// Validate checks that every entry has a non-empty, unique name and a
// resolvable target.
func Validate(specs []entities.ElementSpec) error {
	var errs []error
	seen := make(map[string]int, len(specs))

	for i, spec := range specs {
		if spec.Name == "" {
			errs = append(errs, fmt.Errorf("entry %d: empty name", i))
		} else if prev, ok := seen[spec.Name]; ok {
			errs = append(errs, fmt.Errorf("entry %d: name %q already used by entry %d", i, spec.Name, prev))
		} else {
			seen[spec.Name] = i
		}

		if spec.Target.CSS == "" && (spec.Target.Role == "" || spec.Target.Name == "") {
			errs = append(errs, fmt.Errorf("entry %d (%s): target needs a role and name or a css selector", i, spec.Name))
		}

		if spec.ExpectedAttribute != nil && spec.ExpectedAttribute.Name == "" {
			errs = append(errs, fmt.Errorf("entry %d (%s): expected attribute has no name", i, spec.Name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}
	return nil
}
