// Package site resolves the HTML shell and bundler manifest, and emits the
// static site: one page per project, one hub page per builder, and the
// sitemap.
package site

import (
	"os"
	"strings"

	sgerrors "git.home.luguber.info/inful/sitegen/internal/errors"
)

// Literal markers the shell template must contain. Substitution targets each
// must appear exactly once; RelatedMarker is left in place for the
// post-emit link injection pass.
const (
	SeoMarker     = "<!--sitegen:seo-->"
	PayloadMarker = "<!--sitegen:payload-->"
	EntryMarker   = "<!--sitegen:entry-->"
	RelatedMarker = "<!--sitegen:related-->"
)

// Shell is a validated HTML template ready for marker substitution.
type Shell struct {
	html string
}

// LoadShell reads and validates the HTML template. A missing file or a
// missing/duplicated substitution marker is a fatal configuration error,
// reported before any output file is written.
func LoadShell(templatePath string) (*Shell, error) {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.CategoryConfig, sgerrors.SeverityFatal, "failed to read shell template").
			WithContext("template", templatePath)
	}
	html := string(data)

	for _, marker := range []string{SeoMarker, PayloadMarker, EntryMarker} {
		if strings.Count(html, marker) != 1 {
			return nil, sgerrors.TemplateMarkerMissing(templatePath, marker)
		}
	}
	return &Shell{html: html}, nil
}

// Render performs the three documented substitutions. The shell was
// validated at load time, so each marker is present exactly once.
func (s *Shell) Render(seoHead, payload, entryTags string) string {
	out := strings.Replace(s.html, SeoMarker, seoHead, 1)
	out = strings.Replace(out, PayloadMarker, payload, 1)
	out = strings.Replace(out, EntryMarker, entryTags, 1)
	return out
}
