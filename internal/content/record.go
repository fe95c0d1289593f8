package content

import (
	"encoding/json"

	"git.home.luguber.info/inful/sitegen/internal/faq"
)

// Hero holds the hero media references of a project.
type Hero struct {
	VideoID string
	Images  []string
}

// UnitPlan is one priced floor-plan entry.
type UnitPlan struct {
	Title string
	Size  string
	Price float64
}

// ProjectRecord is a resolved project: its identity, the originating file
// name (flat-file layout only) and the descriptive fields the downstream
// stages need. Payload keeps the full authored document for page embedding.
type ProjectRecord struct {
	ProjectIdentity

	// FileName is the base name of the source file when the flat-file layout
	// was used; empty for the legacy folder layout, which bypasses the
	// filename consistency check.
	FileName string

	Name     string
	City     string
	Zone     string
	Locality string
	Address  string
	About    string

	Hero  Hero
	Units []UnitPlan
	Faqs  []faq.FaqItem

	Payload json.RawMessage
}

// DisplayName returns the marketing name of the project, falling back to the
// public slug when the author did not provide one.
func (r ProjectRecord) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.PublicSlug
}

// newRecord extracts the descriptive fields out of a resolved raw document.
func newRecord(id ProjectIdentity, doc RawDocument, payload []byte) ProjectRecord {
	rec := ProjectRecord{
		ProjectIdentity: id,
		Name:            doc.stringValue("name"),
		City:            doc.stringValue("city"),
		Zone:            doc.stringValue("zone"),
		Locality:        doc.stringValue("locality"),
		Address:         doc.stringValue("address"),
		About:           doc.stringValue("about"),
		Hero:            heroFrom(doc),
		Units:           unitsFrom(doc),
		Faqs:            projectFaqsFrom(doc),
		Payload:         json.RawMessage(payload),
	}
	return rec
}

func heroFrom(doc RawDocument) Hero {
	raw, _ := doc.lookup("hero").(map[string]any)
	if raw == nil {
		return Hero{}
	}
	h := Hero{}
	if v, ok := raw["videoId"].(string); ok {
		h.VideoID = v
	}
	if imgs, ok := raw["images"].([]any); ok {
		for _, img := range imgs {
			if s, ok := img.(string); ok && s != "" {
				h.Images = append(h.Images, s)
			}
		}
	}
	return h
}

func unitsFrom(doc RawDocument) []UnitPlan {
	var rawUnits []any
	if pricing, ok := doc.lookup("pricing").(map[string]any); ok {
		rawUnits, _ = pricing["units"].([]any)
	}
	if rawUnits == nil {
		rawUnits, _ = doc.lookup("units").([]any)
	}

	var units []UnitPlan
	for _, ru := range rawUnits {
		fields, ok := ru.(map[string]any)
		if !ok {
			continue
		}
		u := UnitPlan{}
		u.Title, _ = fields["title"].(string)
		u.Size, _ = fields["size"].(string)
		switch p := fields["price"].(type) {
		case float64:
			u.Price = p
		case int:
			u.Price = float64(p)
		}
		units = append(units, u)
	}
	return units
}

func projectFaqsFrom(doc RawDocument) []faq.FaqItem {
	section, ok := doc.lookup("faq").(map[string]any)
	if !ok {
		return nil
	}
	rawItems, _ := section["faqs"].([]any)
	var items []faq.FaqItem
	for _, ri := range rawItems {
		fields, ok := ri.(map[string]any)
		if !ok {
			continue
		}
		item := faq.FaqItem{}
		item.Question, _ = fields["question"].(string)
		item.Answer, _ = fields["answer"].(string)
		item.Category, _ = fields["category"].(string)
		if item.Question != "" {
			items = append(items, item)
		}
	}
	return items
}
