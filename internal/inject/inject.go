// Package inject is the post-emit link injection pass: it rewrites emitted
// HTML in place to add breadcrumb and sibling-project navigation. It never
// touches authored content files.
package inject

import (
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/content"
	sgerrors "git.home.luguber.info/inful/sitegen/internal/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/site"
)

// maxSiblings bounds the sibling-project list injected into each page.
const maxSiblings = 4

// Injector rewrites already-emitted project pages. Emission is someone
// else's job: a missing page is skipped silently, and a page without the
// marker was already injected (or opted out) and is left untouched, which
// makes re-runs no-ops.
type Injector struct {
	outputRoot string
	recorder   metrics.Recorder
}

func NewInjector(outputRoot string) *Injector {
	return &Injector{
		outputRoot: filepath.Clean(outputRoot),
		recorder:   metrics.NoopRecorder{},
	}
}

// SetRecorder injects a metrics recorder (optional). Returns the injector for chaining.
func (in *Injector) SetRecorder(r metrics.Recorder) *Injector {
	if r != nil {
		in.recorder = r
	}
	return in
}

// Run injects navigation into every project page that still carries the
// marker. Returns the number of pages rewritten.
func (in *Injector) Run(records []content.ProjectRecord) (int, error) {
	groups := content.GroupByBuilder(records)
	injected := 0
	for _, rec := range records {
		ok, err := in.injectPage(rec, groups[rec.Builder])
		if err != nil {
			return injected, err
		}
		if ok {
			injected++
		}
	}
	in.recorder.IncLinkInjections(injected)
	slog.Info("Link injection pass complete", logfields.Count(injected))
	return injected, nil
}

func (in *Injector) injectPage(rec content.ProjectRecord, siblings []content.ProjectRecord) (bool, error) {
	path := filepath.Join(in.outputRoot, rec.PublicSlug, "index.html")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("No emitted page for project, skipping", logfields.PublicSlug(rec.PublicSlug))
			return false, nil
		}
		return false, sgerrors.Wrap(err, sgerrors.CategoryFileSystem, sgerrors.SeverityFatal, "failed to read emitted page").
			WithContext("path", path)
	}

	doc := string(data)
	if !strings.Contains(doc, site.RelatedMarker) {
		return false, nil
	}

	doc = strings.Replace(doc, site.RelatedMarker, in.navigationMarkup(rec, siblings), 1)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return false, sgerrors.EmitFailed(path, err)
	}
	return true, nil
}

// navigationMarkup renders the breadcrumb trail and a bounded list of
// sibling projects from the same builder, excluding the page itself.
func (in *Injector) navigationMarkup(rec content.ProjectRecord, siblings []content.ProjectRecord) string {
	esc := html.EscapeString
	var sb strings.Builder

	sb.WriteString(`<nav class="breadcrumb" aria-label="Breadcrumb"><ol>`)
	fmt.Fprintf(&sb, `<li><a href="/">Home</a></li>`)
	fmt.Fprintf(&sb, `<li><a href="/%s/">%s</a></li>`, esc(rec.Builder), esc(content.BuilderDisplayName(rec.Builder)))
	fmt.Fprintf(&sb, `<li aria-current="page">%s</li>`, esc(rec.DisplayName()))
	sb.WriteString(`</ol></nav>`)

	related := make([]content.ProjectRecord, 0, maxSiblings)
	for _, sib := range siblings {
		if sib.PublicSlug == rec.PublicSlug {
			continue
		}
		related = append(related, sib)
		if len(related) == maxSiblings {
			break
		}
	}
	if len(related) > 0 {
		sb.WriteString(`<aside class="related-projects"><h2>More from `)
		sb.WriteString(esc(content.BuilderDisplayName(rec.Builder)))
		sb.WriteString(`</h2><ul>`)
		for _, sib := range related {
			fmt.Fprintf(&sb, `<li><a href="/%s/">%s</a></li>`, esc(sib.PublicSlug), esc(sib.DisplayName()))
		}
		sb.WriteString(`</ul></aside>`)
	}

	return sb.String()
}
