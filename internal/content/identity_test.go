package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveIdentityRootShape(t *testing.T) {
	doc := RawDocument{"slug": "tower", "builder": "alpha"}

	id, ok := ResolveIdentity(doc)
	require.True(t, ok)
	assert.Equal(t, "tower", id.Slug)
	assert.Equal(t, "alpha", id.Builder)
	assert.Equal(t, "alpha-tower", id.PublicSlug)
}

func TestResolveIdentityNestedShape(t *testing.T) {
	doc := RawDocument{
		"project": map[string]any{"slug": "heights", "builder": "beta"},
	}

	id, ok := ResolveIdentity(doc)
	require.True(t, ok)
	assert.Equal(t, "beta-heights", id.PublicSlug)
}

func TestResolveIdentityNestedWinsOverRoot(t *testing.T) {
	doc := RawDocument{
		"slug":    "root-slug",
		"builder": "root-builder",
		"project": map[string]any{"slug": "nested-slug", "builder": "nested-builder"},
	}

	id, ok := ResolveIdentity(doc)
	require.True(t, ok)
	assert.Equal(t, "nested-builder-nested-slug", id.PublicSlug)
}

func TestResolveIdentityFallsBackToRootWhenNestedIncomplete(t *testing.T) {
	doc := RawDocument{
		"slug":    "tower",
		"builder": "alpha",
		"project": map[string]any{"slug": "tower"}, // builder missing in nested shape
	}

	id, ok := ResolveIdentity(doc)
	require.True(t, ok)
	assert.Equal(t, "alpha-tower", id.PublicSlug)
}

func TestResolveIdentityAbsence(t *testing.T) {
	cases := map[string]RawDocument{
		"nil document":      nil,
		"empty document":    {},
		"missing slug":      {"builder": "alpha"},
		"missing builder":   {"slug": "tower"},
		"empty strings":     {"slug": "", "builder": "alpha"},
		"whitespace slug":   {"slug": "   ", "builder": "alpha"},
		"non-string slug":   {"slug": 42, "builder": "alpha"},
		"nested incomplete": {"project": map[string]any{"slug": "tower"}},
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := ResolveIdentity(doc)
			assert.False(t, ok)
		})
	}
}

func TestResolveIdentityTrimsFields(t *testing.T) {
	doc := RawDocument{"slug": " tower ", "builder": " alpha "}

	id, ok := ResolveIdentity(doc)
	require.True(t, ok)
	assert.Equal(t, "alpha-tower", id.PublicSlug)
}
