package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sgerrors "git.home.luguber.info/inful/sitegen/internal/errors"
)

const validTemplate = `<!doctype html>
<html>
<head>
<!--sitegen:seo-->
</head>
<body>
<div id="root"><!--sitegen:related--></div>
<!--sitegen:payload-->
<!--sitegen:entry-->
</body>
</html>`

func writeTemplate(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadShellValid(t *testing.T) {
	shell, err := LoadShell(writeTemplate(t, validTemplate))
	require.NoError(t, err)
	require.NotNil(t, shell)
}

func TestLoadShellMissingFile(t *testing.T) {
	_, err := LoadShell(filepath.Join(t.TempDir(), "absent.html"))
	require.Error(t, err)
	assert.True(t, sgerrors.IsCategory(err, sgerrors.CategoryConfig))
}

func TestLoadShellMissingMarkerIsFatal(t *testing.T) {
	for _, marker := range []string{SeoMarker, PayloadMarker, EntryMarker} {
		t.Run(marker, func(t *testing.T) {
			body := validTemplate
			path := writeTemplate(t, strings.Replace(body, marker, "", 1))

			_, err := LoadShell(path)
			require.Error(t, err)

			var sge *sgerrors.SiteGenError
			require.ErrorAs(t, err, &sge)
			assert.Equal(t, marker, sge.Context["marker"])
		})
	}
}

func TestLoadShellDuplicatedMarkerIsFatal(t *testing.T) {
	_, err := LoadShell(writeTemplate(t, validTemplate+PayloadMarker))
	require.Error(t, err)
}

func TestShellRenderSubstitutesEachMarkerOnce(t *testing.T) {
	shell, err := LoadShell(writeTemplate(t, validTemplate))
	require.NoError(t, err)

	out := shell.Render("<title>T</title>", "<script>payload</script>", "<script src=x></script>")
	assert.Contains(t, out, "<title>T</title>")
	assert.Contains(t, out, "<script>payload</script>")
	assert.Contains(t, out, "<script src=x></script>")
	assert.NotContains(t, out, SeoMarker)
	assert.NotContains(t, out, PayloadMarker)
	assert.NotContains(t, out, EntryMarker)
	// The related marker is left for the post-emit injection pass.
	assert.Contains(t, out, RelatedMarker)
}
