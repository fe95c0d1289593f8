// Package content reads authored project documents and resolves their
// canonical identities. All state is rebuilt on every invocation; there is no
// cross-run cache.
package content

import (
	"strings"
)

// RawDocument is an arbitrary JSON object read from a content file. Identity
// fields may live at the document root or nested under a "project" key.
// Treated as untrusted input throughout.
type RawDocument map[string]any

// ProjectIdentity is the canonical identity derived from a RawDocument.
// PublicSlug is the single public-URL key used everywhere downstream
// (sitemap entries, output directory names, cross-links).
type ProjectIdentity struct {
	Slug       string
	Builder    string
	PublicSlug string
}

// ResolveIdentity derives a ProjectIdentity from a raw document.
//
// The nested "project" shape is tried first, then the document root. A
// missing or empty slug/builder yields (zero, false), never an error; callers
// decide whether absence is fatal. Pure function, no I/O.
func ResolveIdentity(doc RawDocument) (ProjectIdentity, bool) {
	if doc == nil {
		return ProjectIdentity{}, false
	}
	if nested, ok := doc["project"].(map[string]any); ok {
		if id, ok := identityFrom(nested); ok {
			return id, true
		}
	}
	return identityFrom(doc)
}

func identityFrom(fields map[string]any) (ProjectIdentity, bool) {
	slug := stringField(fields, "slug")
	builder := stringField(fields, "builder")
	if slug == "" || builder == "" {
		return ProjectIdentity{}, false
	}
	return ProjectIdentity{
		Slug:       slug,
		Builder:    builder,
		PublicSlug: builder + "-" + slug,
	}, true
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return strings.TrimSpace(s)
}

// section returns the map descriptive fields should be read from: the nested
// "project" object when present, else the document root.
func (d RawDocument) section() map[string]any {
	if nested, ok := d["project"].(map[string]any); ok {
		return nested
	}
	return d
}

// lookup reads a key from the nested project object first, then the root.
func (d RawDocument) lookup(key string) any {
	sec := d.section()
	if v, ok := sec[key]; ok {
		return v
	}
	if v, ok := d[key]; ok {
		return v
	}
	return nil
}

func (d RawDocument) stringValue(key string) string {
	s, _ := d.lookup(key).(string)
	return strings.TrimSpace(s)
}
