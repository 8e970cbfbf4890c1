package runner

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"navcheck/application/assertion"
	"navcheck/application/catalog"
	"navcheck/domain/entities"
	"navcheck/domain/interfaces"
)

// Check names used in failure records.
const (
	CheckVisibility = "visibility"
	CheckText       = "text"
	CheckAttribute  = "attribute"
	CheckTheme      = "theme"
)

type Runner struct {
	logger *logrus.Logger
}

// NewRunner - creates new assertion runner
func NewRunner(logger *logrus.Logger) *Runner {
	return &Runner{logger: logger}
}

// RunVisibilityCheck - asserts every catalog entry is visible
func (r *Runner) RunVisibilityCheck(ctx context.Context, specs []entities.ElementSpec, page interfaces.Page, c *assertion.Collector) error {
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("visibility check canceled: %w", err)
		}
		r.checkVisible(ctx, c, spec.Name, page.Locate(spec.Target))
	}
	return nil
}

// RunTextCheck - asserts text for every entry that expects some
func (r *Runner) RunTextCheck(ctx context.Context, specs []entities.ElementSpec, page interfaces.Page, c *assertion.Collector) error {
	for _, spec := range specs {
		if !spec.HasText() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("text check canceled: %w", err)
		}
		r.checkText(ctx, c, spec.Name, page.Locate(spec.Target), spec.ExpectedText)
	}
	return nil
}

// RunAttributeCheck - asserts the expected attribute for every entry that has one
func (r *Runner) RunAttributeCheck(ctx context.Context, specs []entities.ElementSpec, page interfaces.Page, c *assertion.Collector) error {
	for _, spec := range specs {
		if !spec.HasAttribute() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("attribute check canceled: %w", err)
		}
		r.checkAttribute(ctx, c, CheckAttribute, spec.Name, page.Locate(spec.Target), *spec.ExpectedAttribute)
	}
	return nil
}

// RunThemeToggle - clicks the theme toggle through its cycle and asserts the
// document root after every click
func (r *Runner) RunThemeToggle(ctx context.Context, page interfaces.Page, c *assertion.Collector) error {
	toggle := page.Locate(catalog.ThemeToggle)
	root := page.Locate(catalog.DocumentRoot)

	for i, step := range catalog.ThemeCycle() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("theme toggle canceled: %w", err)
		}

		click := i + 1
		r.logger.WithFields(logrus.Fields{
			"click":     click,
			"attribute": step.Attribute,
			"value":     step.Value,
		}).Debug("toggling theme")

		if err := toggle.Click(ctx); err != nil {
			// Without the click the remaining states cannot be reached.
			c.Record(entities.Failure{
				Kind:     entities.FailureNotVisible,
				Check:    CheckTheme,
				Element:  "Theme switch button",
				Expected: fmt.Sprintf("clickable (click %d)", click),
				Actual:   r.describeMatches(ctx, toggle),
				Detail:   err.Error(),
			})
			return nil
		}

		name := fmt.Sprintf("document root after click %d", click)
		r.checkAttribute(ctx, c, CheckTheme, name, root, entities.Attribute{Name: step.Attribute, Value: step.Value})
	}
	return nil
}

// RunHeroCheck - asserts the hero heading is visible and carries its text
func (r *Runner) RunHeroCheck(ctx context.Context, page interfaces.Page, c *assertion.Collector) error {
	return r.checkElement(ctx, page, c, catalog.Hero())
}

// RunCallToActionCheck - asserts the get started link is visible, has its
// text and points at the docs
func (r *Runner) RunCallToActionCheck(ctx context.Context, page interfaces.Page, c *assertion.Collector) error {
	return r.checkElement(ctx, page, c, catalog.GetStarted())
}

// checkElement - runs every check an entry asks for against one element
func (r *Runner) checkElement(ctx context.Context, page interfaces.Page, c *assertion.Collector, spec entities.ElementSpec) error {
	specs := []entities.ElementSpec{spec}
	if err := r.RunVisibilityCheck(ctx, specs, page, c); err != nil {
		return err
	}
	if err := r.RunTextCheck(ctx, specs, page, c); err != nil {
		return err
	}
	return r.RunAttributeCheck(ctx, specs, page, c)
}

func (r *Runner) checkVisible(ctx context.Context, c *assertion.Collector, name string, loc interfaces.Locator) {
	r.logger.WithFields(logrus.Fields{"check": CheckVisibility, "element": name}).Debug("checking element")

	err := loc.ExpectVisible(ctx)
	if err == nil {
		return
	}

	c.Record(entities.Failure{
		Kind:     entities.FailureNotVisible,
		Check:    CheckVisibility,
		Element:  name,
		Expected: "visible",
		Actual:   r.describeMatches(ctx, loc),
		Detail:   err.Error(),
	})
}

func (r *Runner) checkText(ctx context.Context, c *assertion.Collector, name string, loc interfaces.Locator, expected string) {
	r.logger.WithFields(logrus.Fields{"check": CheckText, "element": name}).Debug("checking element")

	err := loc.ExpectText(ctx, expected)
	if err == nil {
		return
	}

	failure := entities.Failure{
		Kind:     entities.FailureTextMismatch,
		Check:    CheckText,
		Element:  name,
		Expected: expected,
		Detail:   err.Error(),
	}

	if n, ok := r.singleMatch(ctx, loc); !ok {
		failure.Kind = entities.FailureNotVisible
		failure.Actual = matchCount(n)
	} else if text, textErr := loc.Text(ctx); textErr != nil {
		failure.Actual = "unreadable: " + textErr.Error()
	} else {
		failure.Actual = text
	}

	c.Record(failure)
}

func (r *Runner) checkAttribute(ctx context.Context, c *assertion.Collector, check, name string, loc interfaces.Locator, attr entities.Attribute) {
	r.logger.WithFields(logrus.Fields{"check": check, "element": name, "attribute": attr.Name}).Debug("checking element")

	err := loc.ExpectAttribute(ctx, attr.Name, attr.Value)
	if err == nil {
		return
	}

	failure := entities.Failure{
		Kind:     entities.FailureAttributeMismatch,
		Check:    check,
		Element:  name,
		Expected: attr.Name + "=" + attr.Value,
		Detail:   err.Error(),
	}

	if n, ok := r.singleMatch(ctx, loc); !ok {
		failure.Kind = entities.FailureNotVisible
		failure.Actual = matchCount(n)
	} else if value, attrErr := loc.Attribute(ctx, attr.Name); attrErr != nil {
		failure.Actual = "unreadable: " + attrErr.Error()
	} else {
		failure.Actual = attr.Name + "=" + value
	}

	c.Record(failure)
}

// describeMatches - explains why a locator did not produce one visible element
func (r *Runner) describeMatches(ctx context.Context, loc interfaces.Locator) string {
	n, ok := r.singleMatch(ctx, loc)
	if !ok {
		return matchCount(n)
	}
	return "hidden"
}

// singleMatch - counts matches; n is -1 when the count itself failed
func (r *Runner) singleMatch(ctx context.Context, loc interfaces.Locator) (int, bool) {
	n, err := loc.Count(ctx)
	if err != nil {
		r.logger.WithError(err).Debug("failed to count matches")
		return -1, false
	}
	return n, n == 1
}

func matchCount(n int) string {
	switch n {
	case -1:
		return "unknown"
	case 0:
		return "not found"
	default:
		return fmt.Sprintf("%d matching elements", n)
	}
}
