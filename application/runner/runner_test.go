package runner

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navcheck/application/assertion"
	"navcheck/application/catalog"
	"navcheck/domain/entities"
	"navcheck/infrastructure/browser/browsertest"
)

func newTestRunner() *Runner {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewRunner(logger)
}

func homePage() *browsertest.Page {
	return browsertest.NewPage(browsertest.HomePage())
}

func TestRunner_HomePagePasses(t *testing.T) {
	r := newTestRunner()
	ctx := context.Background()
	header := catalog.Header()

	checks := map[string]func(c *assertion.Collector) error{
		"visibility": func(c *assertion.Collector) error { return r.RunVisibilityCheck(ctx, header, homePage(), c) },
		"text":       func(c *assertion.Collector) error { return r.RunTextCheck(ctx, header, homePage(), c) },
		"attribute":  func(c *assertion.Collector) error { return r.RunAttributeCheck(ctx, header, homePage(), c) },
		"theme":      func(c *assertion.Collector) error { return r.RunThemeToggle(ctx, homePage(), c) },
		"hero":       func(c *assertion.Collector) error { return r.RunHeroCheck(ctx, homePage(), c) },
		"cta":        func(c *assertion.Collector) error { return r.RunCallToActionCheck(ctx, homePage(), c) },
	}

	for name, check := range checks {
		t.Run(name, func(t *testing.T) {
			c := assertion.NewCollector(nil)
			require.NoError(t, check(c))
			assert.Empty(t, c.Failures())
		})
	}
}

func TestRunner_VisibilityContinuesPastFailures(t *testing.T) {
	r := newTestRunner()
	site := browsertest.HomePage()
	header := catalog.Header()

	site.Remove(header[1].Target)
	site.Element(header[4].Target).Visible = false

	c := assertion.NewCollector(nil)
	require.NoError(t, r.RunVisibilityCheck(context.Background(), header, browsertest.NewPage(site), c))

	failures := c.Failures()
	require.Len(t, failures, 2)

	assert.Equal(t, entities.FailureNotVisible, failures[0].Kind)
	assert.Equal(t, "Docs link", failures[0].Element)
	assert.Equal(t, "visible", failures[0].Expected)
	assert.Equal(t, "not found", failures[0].Actual)

	assert.Equal(t, entities.FailureNotVisible, failures[1].Kind)
	assert.Equal(t, "Community link", failures[1].Element)
	assert.Equal(t, "hidden", failures[1].Actual)
}

func TestRunner_VisibilityAmbiguousMatch(t *testing.T) {
	r := newTestRunner()
	site := browsertest.HomePage()
	docs := catalog.Header()[1]
	site.Add(docs.Target, &browsertest.Element{Visible: true, Text: "Docs"})

	c := assertion.NewCollector(nil)
	require.NoError(t, r.RunVisibilityCheck(context.Background(), []entities.ElementSpec{docs}, browsertest.NewPage(site), c))

	require.Len(t, c.Failures(), 1)
	assert.Equal(t, "2 matching elements", c.Failures()[0].Actual)
}

func TestRunner_TextMismatch(t *testing.T) {
	r := newTestRunner()
	site := browsertest.HomePage()
	header := catalog.Header()
	site.Element(header[2].Target).Text = "Reference"

	c := assertion.NewCollector(nil)
	require.NoError(t, r.RunTextCheck(context.Background(), header, browsertest.NewPage(site), c))

	failures := c.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, entities.FailureTextMismatch, failures[0].Kind)
	assert.Equal(t, CheckText, failures[0].Check)
	assert.Equal(t, "API link", failures[0].Element)
	assert.Equal(t, "API", failures[0].Expected)
	assert.Equal(t, "Reference", failures[0].Actual)
	assert.NotEmpty(t, failures[0].Detail)
}

func TestRunner_TextMissingElement(t *testing.T) {
	r := newTestRunner()
	site := browsertest.HomePage()
	header := catalog.Header()
	site.Remove(header[0].Target)

	c := assertion.NewCollector(nil)
	require.NoError(t, r.RunTextCheck(context.Background(), header, browsertest.NewPage(site), c))

	require.Len(t, c.Failures(), 1)
	assert.Equal(t, entities.FailureNotVisible, c.Failures()[0].Kind)
	assert.Equal(t, "not found", c.Failures()[0].Actual)
}

func TestRunner_EntriesWithoutExpectationsAreSkipped(t *testing.T) {
	r := newTestRunner()
	site := browsertest.HomePage()

	var bare []entities.ElementSpec
	for _, spec := range catalog.Header() {
		if !spec.HasText() && !spec.HasAttribute() {
			bare = append(bare, spec)
			// nothing on the page matches, so any lookup would fail
			site.Remove(spec.Target)
		}
	}
	require.NotEmpty(t, bare)

	c := assertion.NewCollector(nil)
	require.NoError(t, r.RunTextCheck(context.Background(), bare, browsertest.NewPage(site), c))
	require.NoError(t, r.RunAttributeCheck(context.Background(), bare, browsertest.NewPage(site), c))
	assert.False(t, c.Failed())

	require.NoError(t, r.RunVisibilityCheck(context.Background(), bare, browsertest.NewPage(site), c))
	assert.Equal(t, len(bare), c.Len())
}

func TestRunner_AttributeMismatch(t *testing.T) {
	r := newTestRunner()
	site := browsertest.HomePage()
	header := catalog.Header()
	site.SetAttribute(header[5].Target, "href", "https://github.com/microsoft/playwright-go")

	c := assertion.NewCollector(nil)
	require.NoError(t, r.RunAttributeCheck(context.Background(), header, browsertest.NewPage(site), c))

	failures := c.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, entities.FailureAttributeMismatch, failures[0].Kind)
	assert.Equal(t, "GitHub icon", failures[0].Element)
	assert.Equal(t, "href=https://github.com/microsoft/playwright", failures[0].Expected)
	assert.Equal(t, "href=https://github.com/microsoft/playwright-go", failures[0].Actual)
}

func TestRunner_ChecksAreIdempotent(t *testing.T) {
	r := newTestRunner()
	site := browsertest.HomePage()
	header := catalog.Header()
	site.Element(header[3].Target).Text = "Python"
	page := browsertest.NewPage(site)
	ctx := context.Background()

	run := func() []entities.Failure {
		c := assertion.NewCollector(nil)
		require.NoError(t, r.RunVisibilityCheck(ctx, header, page, c))
		require.NoError(t, r.RunTextCheck(ctx, header, page, c))
		require.NoError(t, r.RunAttributeCheck(ctx, header, page, c))
		return c.Failures()
	}

	first := run()
	second := run()
	assert.Len(t, first, 1)
	assert.Equal(t, first, second)
	assert.Equal(t, 0, site.Clicks())
}

func TestRunner_ThemeToggleCycle(t *testing.T) {
	r := newTestRunner()
	site := browsertest.HomePage()

	c := assertion.NewCollector(nil)
	require.NoError(t, r.RunThemeToggle(context.Background(), browsertest.NewPage(site), c))

	assert.Empty(t, c.Failures())
	assert.Equal(t, 3, site.Clicks())
	root := site.Element(catalog.DocumentRoot)
	assert.Equal(t, "system", root.Attributes["data-theme-choice"])
}

func TestRunner_ThemeToggleStuck(t *testing.T) {
	r := newTestRunner()
	site := browsertest.HomePage()
	site.Element(catalog.ThemeToggle).OnClick = func(s *browsertest.Site) {
		s.SetAttribute(catalog.DocumentRoot, "data-theme", "light")
		s.SetAttribute(catalog.DocumentRoot, "data-theme-choice", "light")
	}

	c := assertion.NewCollector(nil)
	require.NoError(t, r.RunThemeToggle(context.Background(), browsertest.NewPage(site), c))

	failures := c.Failures()
	require.Len(t, failures, 2)
	assert.Equal(t, "document root after click 2", failures[0].Element)
	assert.Equal(t, entities.FailureAttributeMismatch, failures[0].Kind)
	assert.Equal(t, "data-theme=dark", failures[0].Expected)
	assert.Equal(t, "data-theme=light", failures[0].Actual)
	assert.Equal(t, "document root after click 3", failures[1].Element)
	assert.Equal(t, "data-theme-choice=system", failures[1].Expected)
	assert.Equal(t, "data-theme-choice=light", failures[1].Actual)
	assert.Equal(t, 3, site.Clicks())
}

func TestRunner_ThemeToggleMissing(t *testing.T) {
	r := newTestRunner()
	site := browsertest.HomePage()
	site.Remove(catalog.ThemeToggle)

	c := assertion.NewCollector(nil)
	require.NoError(t, r.RunThemeToggle(context.Background(), browsertest.NewPage(site), c))

	failures := c.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, CheckTheme, failures[0].Check)
	assert.Equal(t, entities.FailureNotVisible, failures[0].Kind)
	assert.Equal(t, "not found", failures[0].Actual)
}

func TestRunner_HeroCheck(t *testing.T) {
	r := newTestRunner()
	site := browsertest.HomePage()
	hero := catalog.Hero()
	site.Element(hero.Target).Text = "Playwright enables reliable testing"

	c := assertion.NewCollector(nil)
	require.NoError(t, r.RunHeroCheck(context.Background(), browsertest.NewPage(site), c))

	failures := c.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, entities.FailureTextMismatch, failures[0].Kind)
	assert.Equal(t, "Playwright enables reliable end-to-end testing for modern web apps.", failures[0].Expected)
}

func TestRunner_CallToActionCollectsEveryFailure(t *testing.T) {
	r := newTestRunner()
	site := browsertest.HomePage()
	cta := catalog.GetStarted()
	el := site.Element(cta.Target)
	el.Visible = false
	el.Text = "Start"
	el.Attributes["href"] = "/docs/installation"

	c := assertion.NewCollector(nil)
	require.NoError(t, r.RunCallToActionCheck(context.Background(), browsertest.NewPage(site), c))

	failures := c.Failures()
	require.Len(t, failures, 3)
	assert.Equal(t, entities.FailureNotVisible, failures[0].Kind)
	assert.Equal(t, entities.FailureTextMismatch, failures[1].Kind)
	assert.Equal(t, entities.FailureAttributeMismatch, failures[2].Kind)
	assert.Equal(t, "href=/docs/installation", failures[2].Actual)
}

func TestRunner_Canceled(t *testing.T) {
	r := newTestRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := assertion.NewCollector(nil)
	err := r.RunVisibilityCheck(ctx, catalog.Header(), homePage(), c)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, c.Failed())

	site := browsertest.HomePage()
	err = r.RunThemeToggle(ctx, browsertest.NewPage(site), c)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, site.Clicks())
}
