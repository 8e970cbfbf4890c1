package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navcheck/domain/entities"
)

func TestHeader_IsValid(t *testing.T) {
	require.NoError(t, Validate(Header()))
	require.NoError(t, Validate([]entities.ElementSpec{Hero(), GetStarted()}))
}

func TestHeader_Order(t *testing.T) {
	names := make([]string, 0, len(header))
	for _, spec := range Header() {
		names = append(names, spec.Name)
	}
	assert.Equal(t, []string{
		"Playwright logo link",
		"Docs link",
		"API link",
		"Node.js link",
		"Community link",
		"GitHub icon",
		"Discord icon",
		"Theme switch button",
		"Search button",
	}, names)
}

func TestHeader_ReturnsCopy(t *testing.T) {
	first := Header()
	first[0].Name = "changed"
	first[1].ExpectedAttribute.Value = "/elsewhere"

	second := Header()
	assert.Equal(t, "Playwright logo link", second[0].Name)
	assert.Equal(t, "/docs/intro", second[1].ExpectedAttribute.Value)

	cta := GetStarted()
	cta.ExpectedAttribute.Value = "/nowhere"
	assert.Equal(t, "/docs/intro", GetStarted().ExpectedAttribute.Value)

	cycle := ThemeCycle()
	cycle[0].Value = "sepia"
	assert.Equal(t, "light", ThemeCycle()[0].Value)
}

func TestHeader_KnownEntries(t *testing.T) {
	byName := map[string]entities.ElementSpec{}
	for _, spec := range Header() {
		byName[spec.Name] = spec
	}

	docs := byName["Docs link"]
	assert.Equal(t, entities.ByRole(entities.RoleLink, "Docs"), docs.Target)
	assert.Equal(t, "Docs", docs.ExpectedText)
	require.NotNil(t, docs.ExpectedAttribute)
	assert.Equal(t, entities.Attribute{Name: "href", Value: "/docs/intro"}, *docs.ExpectedAttribute)

	github := byName["GitHub icon"]
	assert.False(t, github.HasText())
	require.True(t, github.HasAttribute())
	assert.Equal(t, "https://github.com/microsoft/playwright", github.ExpectedAttribute.Value)

	search := byName["Search button"]
	assert.False(t, search.HasText())
	assert.False(t, search.HasAttribute())
}

func TestThemeCycle(t *testing.T) {
	assert.Equal(t, []entities.ThemeStep{
		{Attribute: "data-theme", Value: "light"},
		{Attribute: "data-theme", Value: "dark"},
		{Attribute: "data-theme-choice", Value: "system"},
	}, ThemeCycle())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		specs   []entities.ElementSpec
		wantErr string
	}{
		{
			name:  "empty catalog",
			specs: nil,
		},
		{
			name: "empty name",
			specs: []entities.ElementSpec{
				{Target: entities.ByRole(entities.RoleLink, "Docs")},
			},
			wantErr: "entry 0: empty name",
		},
		{
			name: "duplicate name",
			specs: []entities.ElementSpec{
				{Name: "Docs", Target: entities.ByRole(entities.RoleLink, "Docs")},
				{Name: "Docs", Target: entities.ByRole(entities.RoleLink, "API")},
			},
			wantErr: `entry 1: name "Docs" already used by entry 0`,
		},
		{
			name: "target without name",
			specs: []entities.ElementSpec{
				{Name: "Docs", Target: entities.Target{Role: entities.RoleLink}},
			},
			wantErr: "target needs a role and name or a css selector",
		},
		{
			name: "attribute without name",
			specs: []entities.ElementSpec{
				{Name: "Root", Target: DocumentRoot, ExpectedAttribute: &entities.Attribute{Value: "dark"}},
			},
			wantErr: "expected attribute has no name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.specs)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCatalog))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
