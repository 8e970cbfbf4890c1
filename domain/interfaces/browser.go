package interfaces

import (
	"context"

	"navcheck/domain/entities"
)

// Browser hands out isolated pages, one per test case
type Browser interface {
	// NewPage opens a page in its own browser context
	NewPage(ctx context.Context) (Page, error)

	// Name returns the engine name (chromium, firefox, webkit)
	Name() string

	// Close closes the browser and stops the driver
	Close() error
}

// Page is a single loaded document owned by one test case
type Page interface {
	// Navigate loads url and waits for the document to be ready
	Navigate(ctx context.Context, url string) error

	// Locate returns a lazy locator for target. Nothing is looked up
	// until one of the Locator methods is called.
	Locate(target entities.Target) Locator

	// Close releases the page and its browser context
	Close() error
}

// Locator is a lazy reference to zero or more elements. The Expect methods
// poll until the condition holds or the assertion timeout elapses.
type Locator interface {
	// Count returns the number of elements currently matched
	Count(ctx context.Context) (int, error)

	// ExpectVisible waits for exactly one visible match
	ExpectVisible(ctx context.Context) error

	// ExpectText waits until the rendered text contains substring
	ExpectText(ctx context.Context, substring string) error

	// ExpectAttribute waits until attribute name equals value
	ExpectAttribute(ctx context.Context, name, value string) error

	// Text returns the current rendered text
	Text(ctx context.Context) (string, error)

	// Attribute returns the current value of attribute name
	Attribute(ctx context.Context, name string) (string, error)

	// Click clicks the matched element
	Click(ctx context.Context) error
}
