package site

import (
	"encoding/xml"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/content"
	sgerrors "git.home.luguber.info/inful/sitegen/internal/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
)

// SitemapPolicy carries the fixed per-URL values applied to every entry.
type SitemapPolicy struct {
	ChangeFreq string
	Priority   string
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []*urlNode `xml:"url"`
}

type urlNode struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// EmitSitemap writes outputRoot/sitemap.xml with one <url> per project.
//
// The guard is re-run on the record set first: a sitemap with duplicate or
// inconsistent URLs must never be produced, and an empty set aborts before
// anything is written.
func (e *Emitter) EmitSitemap(records []content.ProjectRecord, policy SitemapPolicy) error {
	if len(records) == 0 {
		return sgerrors.New(sgerrors.CategoryValidation, sgerrors.SeverityFatal, "refusing to write an empty sitemap")
	}
	if err := content.Guard(records); err != nil {
		return err
	}

	lastMod := e.now().UTC().Format("2006-01-02")
	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]*urlNode, 0, len(records)),
	}
	for _, rec := range records {
		// Sitemap locs carry no trailing slash, unlike the canonical URLs.
		set.URLs = append(set.URLs, &urlNode{
			Loc:        strings.TrimSuffix(e.synth.PageURL(rec.PublicSlug), "/"),
			LastMod:    lastMod,
			ChangeFreq: policy.ChangeFreq,
			Priority:   policy.Priority,
		})
	}

	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return sgerrors.InternalError("failed to marshal sitemap", err)
	}
	doc := append([]byte(xml.Header), data...)
	doc = append(doc, '\n')

	if err := e.writeFile("sitemap.xml", doc); err != nil {
		return err
	}
	e.recorder.AddPagesEmitted("sitemap", 1)
	slog.Info("Emitted sitemap", logfields.Count(len(records)))
	return nil
}
