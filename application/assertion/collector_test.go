package assertion

import (
	"bytes"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"navcheck/domain/entities"
)

func TestCollector_Empty(t *testing.T) {
	c := NewCollector(nil)
	assert.False(t, c.Failed())
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Failures())
}

func TestCollector_RecordKeepsOrder(t *testing.T) {
	c := NewCollector(nil)
	c.Record(entities.Failure{Kind: entities.FailureNotVisible, Element: "a"})
	c.Record(entities.Failure{Kind: entities.FailureTextMismatch, Element: "b"})

	assert.True(t, c.Failed())
	failures := c.Failures()
	assert.Len(t, failures, 2)
	assert.Equal(t, "a", failures[0].Element)
	assert.Equal(t, "b", failures[1].Element)

	failures[0].Element = "mutated"
	assert.Equal(t, "a", c.Failures()[0].Element)
}

func TestCollector_LogsWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	c := NewCollector(logrus.NewEntry(logger))
	c.Record(entities.Failure{
		Kind:     entities.FailureAttributeMismatch,
		Check:    "attribute",
		Element:  "Docs link",
		Expected: "href=/docs/intro",
		Actual:   "href=/docs",
	})

	out := buf.String()
	assert.Contains(t, out, "level=warning")
	assert.Contains(t, out, "soft assertion failed")
	assert.Contains(t, out, `element="Docs link"`)
}

func TestCollector_ConcurrentRecord(t *testing.T) {
	c := NewCollector(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Record(entities.Failure{Kind: entities.FailureNotVisible})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, c.Len())
}
