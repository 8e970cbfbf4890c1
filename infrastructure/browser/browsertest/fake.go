// Package browsertest provides an in-memory browser for exercising checks
// without launching a real engine.
package browsertest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"navcheck/application/catalog"
	"navcheck/domain/entities"
	"navcheck/domain/interfaces"
)

// Element is one node on a fake page.
type Element struct {
	Visible    bool
	Text       string
	Attributes map[string]string
	OnClick    func(s *Site)
}

// Site is the document a fake page shows. Elements are looked up by target
// on every locator call, so edits made by OnClick are seen by later checks.
type Site struct {
	mu       sync.Mutex
	elements map[entities.Target][]*Element
	clicks   int
}

// NewSite returns an empty site.
func NewSite() *Site {
	return &Site{elements: make(map[entities.Target][]*Element)}
}

// Add registers el under target. Adding twice to the same target makes the
// locator ambiguous.
func (s *Site) Add(target entities.Target, el *Element) *Site {
	s.mu.Lock()
	defer s.mu.Unlock()
	if el.Attributes == nil {
		el.Attributes = make(map[string]string)
	}
	s.elements[target] = append(s.elements[target], el)
	return s
}

// Remove drops every element under target.
func (s *Site) Remove(target entities.Target) *Site {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.elements, target)
	return s
}

// Element returns the first element under target or nil.
func (s *Site) Element(target entities.Target) *Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	if els := s.elements[target]; len(els) > 0 {
		return els[0]
	}
	return nil
}

// SetAttribute sets an attribute on the first element under target.
func (s *Site) SetAttribute(target entities.Target, name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if els := s.elements[target]; len(els) > 0 {
		els[0].Attributes[name] = value
	}
}

// Clicks returns how many clicks landed on the site.
func (s *Site) Clicks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clicks
}

func (s *Site) match(target entities.Target) []Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	els := s.elements[target]
	out := make([]Element, 0, len(els))
	for _, el := range els {
		cp := *el
		cp.Attributes = make(map[string]string, len(el.Attributes))
		for k, v := range el.Attributes {
			cp.Attributes[k] = v
		}
		out = append(out, cp)
	}
	return out
}

// HomePage models the documentation home page following a dark system
// preference.
func HomePage() *Site {
	s := NewSite()
	for _, spec := range catalog.Header() {
		el := &Element{Visible: true, Text: spec.ExpectedText}
		if el.Text == "" {
			el.Text = spec.Target.Name
		}
		if spec.HasAttribute() {
			el.Attributes = map[string]string{spec.ExpectedAttribute.Name: spec.ExpectedAttribute.Value}
		}
		s.Add(spec.Target, el)
	}

	hero := catalog.Hero()
	s.Add(hero.Target, &Element{Visible: true, Text: hero.ExpectedText})

	cta := catalog.GetStarted()
	s.Add(cta.Target, &Element{
		Visible:    true,
		Text:       cta.ExpectedText,
		Attributes: map[string]string{"href": cta.ExpectedAttribute.Value},
	})

	s.Add(catalog.DocumentRoot, &Element{
		Visible:    true,
		Attributes: map[string]string{"data-theme": "dark", "data-theme-choice": "system"},
	})

	s.Element(catalog.ThemeToggle).OnClick = themeCycler()
	return s
}

// themeStates is what the root carries after each click: an explicit
// light, an explicit dark, then the system preference (dark here).
var themeStates = []map[string]string{
	{"data-theme": "light", "data-theme-choice": "light"},
	{"data-theme": "dark", "data-theme-choice": "dark"},
	{"data-theme": "dark", "data-theme-choice": "system"},
}

func themeCycler() func(s *Site) {
	next := 0
	return func(s *Site) {
		for name, value := range themeStates[next%len(themeStates)] {
			s.SetAttribute(catalog.DocumentRoot, name, value)
		}
		next++
	}
}

// Browser hands out pages backed by a fresh site from NewSite.
type Browser struct {
	NewSite     func() *Site
	NewPageErr  error
	NavigateErr error

	opened atomic.Int32
	closed atomic.Int32
	mu     sync.Mutex
	pages  []*Page
}

var _ interfaces.Browser = (*Browser)(nil)

// NewBrowser returns a browser whose pages show the home page.
func NewBrowser() *Browser {
	return &Browser{NewSite: HomePage}
}

func (b *Browser) NewPage(ctx context.Context) (interfaces.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.NewPageErr != nil {
		return nil, b.NewPageErr
	}
	b.opened.Add(1)
	p := &Page{site: b.NewSite(), navigateErr: b.NavigateErr, browser: b}

	b.mu.Lock()
	b.pages = append(b.pages, p)
	b.mu.Unlock()
	return p, nil
}

func (b *Browser) Name() string { return "fake" }

func (b *Browser) Close() error { return nil }

// Opened returns how many pages were opened.
func (b *Browser) Opened() int { return int(b.opened.Load()) }

// Closed returns how many pages were closed.
func (b *Browser) Closed() int { return int(b.closed.Load()) }

// Page is a fake page over a Site.
type Page struct {
	site        *Site
	navigateErr error
	browser     *Browser
	url         string
	closed      bool
}

var _ interfaces.Page = (*Page)(nil)

// NewPage returns a page over site that is already loaded.
func NewPage(site *Site) *Page {
	return &Page{site: site, url: "about:fake"}
}

// Site returns the document behind the page.
func (p *Page) Site() *Site { return p.site }

// URL returns the last navigated URL.
func (p *Page) URL() string { return p.url }

func (p *Page) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.navigateErr != nil {
		return fmt.Errorf("navigation failed: %w", p.navigateErr)
	}
	p.url = url
	return nil
}

func (p *Page) Locate(target entities.Target) interfaces.Locator {
	return &Locator{site: p.site, target: target}
}

func (p *Page) Close() error {
	if p.closed {
		return errors.New("page already closed")
	}
	p.closed = true
	if p.browser != nil {
		p.browser.closed.Add(1)
	}
	return nil
}

// Locator resolves its target against the site on every call.
type Locator struct {
	site   *Site
	target entities.Target
}

var _ interfaces.Locator = (*Locator)(nil)

func (l *Locator) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(l.site.match(l.target)), nil
}

func (l *Locator) single() (Element, error) {
	els := l.site.match(l.target)
	switch len(els) {
	case 0:
		return Element{}, fmt.Errorf("locator %s: no element found", l.target)
	case 1:
		return els[0], nil
	default:
		return Element{}, fmt.Errorf("strict mode violation: %s resolved to %d elements", l.target, len(els))
	}
}

func (l *Locator) ExpectVisible(ctx context.Context) error {
	el, err := l.single()
	if err != nil {
		return err
	}
	if !el.Visible {
		return fmt.Errorf("locator %s: element is not visible", l.target)
	}
	return nil
}

func (l *Locator) ExpectText(ctx context.Context, substring string) error {
	el, err := l.single()
	if err != nil {
		return err
	}
	if !strings.Contains(el.Text, substring) {
		return fmt.Errorf("locator %s: expected text to contain %q, got %q", l.target, substring, el.Text)
	}
	return nil
}

func (l *Locator) ExpectAttribute(ctx context.Context, name, value string) error {
	el, err := l.single()
	if err != nil {
		return err
	}
	if got := el.Attributes[name]; got != value {
		return fmt.Errorf("locator %s: expected %s=%q, got %q", l.target, name, value, got)
	}
	return nil
}

func (l *Locator) Text(ctx context.Context) (string, error) {
	el, err := l.single()
	if err != nil {
		return "", err
	}
	return el.Text, nil
}

func (l *Locator) Attribute(ctx context.Context, name string) (string, error) {
	el, err := l.single()
	if err != nil {
		return "", err
	}
	return el.Attributes[name], nil
}

func (l *Locator) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	el, err := l.single()
	if err != nil {
		return err
	}
	if !el.Visible {
		return fmt.Errorf("locator %s: element is not visible", l.target)
	}

	l.site.mu.Lock()
	l.site.clicks++
	l.site.mu.Unlock()

	if el.OnClick != nil {
		el.OnClick(l.site)
	}
	return nil
}
