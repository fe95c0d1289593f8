package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sgerrors "git.home.luguber.info/inful/sitegen/internal/errors"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestResolveEntry(t *testing.T) {
	path := writeManifest(t, `{
		"src/main.tsx": {"file": "assets/main-C3ks9.js", "css": ["assets/main-B2x.css"]},
		"src/other.tsx": {"file": "assets/other.js"}
	}`)

	assets, err := ResolveEntry(path, "src/main.tsx")
	require.NoError(t, err)
	assert.Equal(t, "assets/main-C3ks9.js", assets.Script)
	assert.Equal(t, []string{"assets/main-B2x.css"}, assets.CSS)
}

func TestResolveEntryMissingManifestIsFatal(t *testing.T) {
	_, err := ResolveEntry(filepath.Join(t.TempDir(), "absent.json"), "src/main.tsx")
	require.Error(t, err)
	assert.True(t, sgerrors.IsCategory(err, sgerrors.CategoryConfig))
}

func TestResolveEntryMissingEntryIsFatal(t *testing.T) {
	path := writeManifest(t, `{"src/other.tsx": {"file": "assets/other.js"}}`)

	_, err := ResolveEntry(path, "src/main.tsx")
	require.Error(t, err)

	var sge *sgerrors.SiteGenError
	require.ErrorAs(t, err, &sge)
	assert.Equal(t, "src/main.tsx", sge.Context["entry"])
}

func TestResolveEntryMalformedManifestIsFatal(t *testing.T) {
	path := writeManifest(t, `not json`)
	_, err := ResolveEntry(path, "src/main.tsx")
	require.Error(t, err)
}

func TestEntryAssetsTags(t *testing.T) {
	assets := &EntryAssets{Script: "assets/main.js", CSS: []string{"assets/main.css"}}
	tags := assets.Tags()
	assert.Contains(t, tags, `<link rel="stylesheet" href="/assets/main.css">`)
	assert.Contains(t, tags, `<script type="module" src="/assets/main.js"></script>`)
}
