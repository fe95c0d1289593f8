package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/seo"
)

func testEmitter(t *testing.T) (*Emitter, string) {
	t.Helper()
	shell, err := LoadShell(writeTemplate(t, validTemplate))
	require.NoError(t, err)

	out := t.TempDir()
	synth := seo.NewSynthesizer(seo.Site{Origin: "https://www.example.com", Name: "Example Homes"})
	e := NewEmitter(out, shell, &EntryAssets{Script: "assets/main.js"}, synth)
	e.now = func() time.Time { return time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC) }
	return e, out
}

func emitterRecord(builder, slug string) content.ProjectRecord {
	return content.ProjectRecord{
		ProjectIdentity: content.ProjectIdentity{
			Slug:       slug,
			Builder:    builder,
			PublicSlug: builder + "-" + slug,
		},
		Name:    strings.ToUpper(slug[:1]) + slug[1:],
		Payload: json.RawMessage(`{"slug":"` + slug + `","builder":"` + builder + `"}`),
	}
}

func TestEmitProjectPage(t *testing.T) {
	e, out := testEmitter(t)
	rec := emitterRecord("alpha", "tower")
	block := seo.Block{Title: "T", Description: "D", Canonical: "https://www.example.com/alpha-tower/"}

	require.NoError(t, e.EmitProjectPage(rec, block))

	data, err := os.ReadFile(filepath.Join(out, "alpha-tower", "index.html"))
	require.NoError(t, err)
	doc := string(data)
	assert.Contains(t, doc, "<title>T</title>")
	assert.Contains(t, doc, `<script id="sitegen-data" type="application/json">`)
	assert.Contains(t, doc, `"builder":"alpha"`)
	assert.Contains(t, doc, `<script type="module" src="/assets/main.js"></script>`)
	assert.Contains(t, doc, RelatedMarker)
}

func TestEmitProjectPageIsByteIdempotent(t *testing.T) {
	e, out := testEmitter(t)
	rec := emitterRecord("alpha", "tower")
	block := seo.Block{Title: "T"}

	require.NoError(t, e.EmitProjectPage(rec, block))
	first, err := os.ReadFile(filepath.Join(out, "alpha-tower", "index.html"))
	require.NoError(t, err)

	require.NoError(t, e.EmitProjectPage(rec, block))
	second, err := os.ReadFile(filepath.Join(out, "alpha-tower", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEmitHubPage(t *testing.T) {
	e, out := testEmitter(t)
	projects := []content.ProjectRecord{
		emitterRecord("alpha", "tower"),
		emitterRecord("alpha", "park"),
	}
	block := seo.Block{Title: "Alpha Projects"}

	require.NoError(t, e.EmitHubPage("alpha", projects, block))

	data, err := os.ReadFile(filepath.Join(out, "alpha", "index.html"))
	require.NoError(t, err)
	doc := string(data)
	assert.Contains(t, doc, `"builder":"alpha"`)
	assert.Contains(t, doc, `"publicSlug":"alpha-tower"`)
	assert.Contains(t, doc, `"publicSlug":"alpha-park"`)
}

func TestEmitSitemapCompleteness(t *testing.T) {
	e, out := testEmitter(t)
	records := []content.ProjectRecord{
		emitterRecord("alpha", "tower"),
		emitterRecord("beta", "heights"),
	}
	policy := SitemapPolicy{ChangeFreq: "weekly", Priority: "0.8"}

	require.NoError(t, e.EmitSitemap(records, policy))

	data, err := os.ReadFile(filepath.Join(out, "sitemap.xml"))
	require.NoError(t, err)
	doc := string(data)
	assert.Equal(t, 2, strings.Count(doc, "<url>"))
	assert.Contains(t, doc, "<loc>https://www.example.com/alpha-tower</loc>")
	assert.Contains(t, doc, "<loc>https://www.example.com/beta-heights</loc>")
	assert.Contains(t, doc, "<lastmod>2026-08-28</lastmod>")
	assert.Contains(t, doc, "<changefreq>weekly</changefreq>")
	assert.Contains(t, doc, "<priority>0.8</priority>")
}

func TestEmitSitemapRerunsGuard(t *testing.T) {
	e, out := testEmitter(t)
	records := []content.ProjectRecord{
		emitterRecord("x", "a"),
		emitterRecord("x", "a"),
	}

	err := e.EmitSitemap(records, SitemapPolicy{ChangeFreq: "weekly", Priority: "0.8"})
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(out, "sitemap.xml"))
}

func TestEmitSitemapRefusesEmptySet(t *testing.T) {
	e, out := testEmitter(t)

	err := e.EmitSitemap(nil, SitemapPolicy{ChangeFreq: "weekly", Priority: "0.8"})
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(out, "sitemap.xml"))
}

func TestPayloadScriptEscapesClosingTags(t *testing.T) {
	payload, err := payloadScript(json.RawMessage(`{"about":"</script><script>alert(1)</script>"}`))
	require.NoError(t, err)
	// Only the wrapping tag's own closer survives; embedded ones are escaped.
	assert.Equal(t, 1, strings.Count(payload, "</script>"))
	assert.Contains(t, payload, `</script>`)
}

func TestPayloadScriptRejectsInvalidJSON(t *testing.T) {
	_, err := payloadScript(json.RawMessage(`{"broken":`))
	assert.Error(t, err)
}
