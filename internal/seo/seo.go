// Package seo synthesizes per-page SEO metadata and JSON-LD structured data
// from resolved project content.
package seo

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/faq"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
)

const descriptionMaxRunes = 160

// Site carries the site-level fields every synthesized block depends on.
type Site struct {
	Origin      string // no trailing slash
	Name        string
	Description string
	Logo        string
}

// Block is a synthesized SEO head section for one page: meta strings plus
// zero or more JSON-LD documents, each already marshaled.
type Block struct {
	Title       string
	Description string
	Canonical   string
	Image       string
	JSONLD      []json.RawMessage
}

// Synthesizer builds SEO blocks. Construct once per run; all methods are
// pure functions of their inputs.
type Synthesizer struct {
	site Site
}

func NewSynthesizer(site Site) *Synthesizer {
	return &Synthesizer{site: site}
}

// PageURL returns the canonical URL for a public slug or builder id.
func (s *Synthesizer) PageURL(slug string) string {
	return s.site.Origin + "/" + slug + "/"
}

// ProjectBlock synthesizes the SEO block for one project page.
func (s *Synthesizer) ProjectBlock(rec content.ProjectRecord, merged []faq.ResolvedFaqItem) Block {
	b := Block{
		Title:       s.projectTitle(rec),
		Description: s.projectDescription(rec),
		Canonical:   s.PageURL(rec.PublicSlug),
		Image:       AbsoluteURL(s.site.Origin, PreviewImage(rec.Hero.VideoID, rec.Hero.Images, rec.PublicSlug)),
	}

	b.appendJSONLD(s.projectBreadcrumbs(rec))

	if rec.PublicSlug != "" && rec.DisplayName() != "" {
		b.appendJSONLD(ApartmentComplex{
			Context:     schemaContext,
			Type:        "ApartmentComplex",
			Name:        rec.DisplayName(),
			URL:         b.Canonical,
			Image:       b.Image,
			Description: b.Description,
			Address:     postalAddress(rec),
		})
	}

	if offers := s.offers(rec); len(offers) > 0 {
		b.appendJSONLD(Product{
			Context:     schemaContext,
			Type:        "Product",
			Name:        rec.DisplayName(),
			Image:       b.Image,
			Description: b.Description,
			Offers:      offers,
		})
	}

	if len(merged) > 0 {
		b.appendJSONLD(faqPage(merged))
	}

	return b
}

// HubBlock synthesizes the SEO block for a builder hub page.
func (s *Synthesizer) HubBlock(builder string, projects []content.ProjectRecord) Block {
	name := content.BuilderDisplayName(builder)
	b := Block{
		Title:       fmt.Sprintf("%s Projects | %s", name, s.site.Name),
		Description: fmt.Sprintf("Explore residential projects by %s.", name),
		Canonical:   s.PageURL(builder),
		Image:       AbsoluteURL(s.site.Origin, s.hubImage(projects)),
	}

	b.appendJSONLD(Organization{
		Context:     schemaContext,
		Type:        "Organization",
		Name:        name,
		URL:         b.Canonical,
		Logo:        AbsoluteURL(s.site.Origin, s.site.Logo),
		Description: b.Description,
	})

	b.appendJSONLD(BreadcrumbList{
		Context: schemaContext,
		Type:    "BreadcrumbList",
		ItemListElement: []BreadcrumbItem{
			{Type: "ListItem", Position: 1, Name: "Home", Item: s.site.Origin + "/"},
			{Type: "ListItem", Position: 2, Name: name},
		},
	})

	if len(projects) > 0 {
		items := make([]ListItem, 0, len(projects))
		for i, p := range projects {
			items = append(items, ListItem{
				Type:     "ListItem",
				Position: i + 1,
				Name:     p.DisplayName(),
				URL:      s.PageURL(p.PublicSlug),
			})
		}
		b.appendJSONLD(ItemList{
			Context:         schemaContext,
			Type:            "ItemList",
			Name:            name + " Projects",
			ItemListElement: items,
		})
	}

	return b
}

// projectTitle combines name and location fields, omitting empty ones.
func (s *Synthesizer) projectTitle(rec content.ProjectRecord) string {
	parts := []string{rec.DisplayName()}
	if loc := joinNonEmpty(", ", rec.Locality, rec.City); loc != "" {
		parts = append(parts, loc)
	}
	parts = append(parts, s.site.Name)
	return strings.Join(parts, " | ")
}

func (s *Synthesizer) projectDescription(rec content.ProjectRecord) string {
	if rec.About != "" {
		return markdown.Excerpt(rec.About, descriptionMaxRunes)
	}
	where := joinNonEmpty(", ", rec.Locality, rec.Zone, rec.City)
	if where == "" {
		return fmt.Sprintf("%s by %s. Floor plans, pricing and FAQs.", rec.DisplayName(), content.BuilderDisplayName(rec.Builder))
	}
	return fmt.Sprintf("%s in %s by %s. Floor plans, pricing and FAQs.", rec.DisplayName(), where, content.BuilderDisplayName(rec.Builder))
}

// projectBreadcrumbs builds the trail Home → [city] → [city zone] → project.
// City entries appear only when the fields are non-empty; the final entry is
// the current page and carries no URL.
func (s *Synthesizer) projectBreadcrumbs(rec content.ProjectRecord) BreadcrumbList {
	items := []BreadcrumbItem{
		{Type: "ListItem", Position: 1, Name: "Home", Item: s.site.Origin + "/"},
	}
	if rec.City != "" {
		items = append(items, BreadcrumbItem{
			Type: "ListItem", Position: len(items) + 1,
			Name: rec.City,
			Item: s.site.Origin + "/" + slugify(rec.City) + "/",
		})
		if rec.Zone != "" {
			items = append(items, BreadcrumbItem{
				Type: "ListItem", Position: len(items) + 1,
				Name: rec.City + " " + rec.Zone,
				Item: s.site.Origin + "/" + slugify(rec.City+" "+rec.Zone) + "/",
			})
		}
	}
	last := rec.Locality
	if last == "" {
		last = rec.DisplayName()
	}
	items = append(items, BreadcrumbItem{Type: "ListItem", Position: len(items) + 1, Name: last})
	return BreadcrumbList{Context: schemaContext, Type: "BreadcrumbList", ItemListElement: items}
}

// offers maps priced unit plans to schema offers. Unpriced units are
// skipped; availability is fixed (see Product).
func (s *Synthesizer) offers(rec content.ProjectRecord) []Offer {
	var offers []Offer
	for _, u := range rec.Units {
		if u.Price <= 0 {
			continue
		}
		offers = append(offers, Offer{
			Type:          "Offer",
			Name:          u.Title,
			Price:         u.Price,
			PriceCurrency: "INR",
			Availability:  "https://schema.org/InStock",
			URL:           s.PageURL(rec.PublicSlug),
		})
	}
	return offers
}

func (s *Synthesizer) hubImage(projects []content.ProjectRecord) string {
	if len(projects) > 0 {
		p := projects[0]
		return PreviewImage(p.Hero.VideoID, p.Hero.Images, p.PublicSlug)
	}
	return genericPlaceholder
}

func faqPage(merged []faq.ResolvedFaqItem) FAQPage {
	questions := make([]Question, 0, len(merged))
	for _, item := range merged {
		questions = append(questions, Question{
			Type: "Question",
			Name: item.Question,
			AcceptedAnswer: Answer{
				Type: "Answer",
				Text: markdown.Render(item.Answer),
			},
		})
	}
	return FAQPage{Context: schemaContext, Type: "FAQPage", MainEntity: questions}
}

func postalAddress(rec content.ProjectRecord) *PostalAddress {
	if rec.Address == "" && rec.Locality == "" && rec.City == "" {
		return nil
	}
	return &PostalAddress{
		Type:            "PostalAddress",
		StreetAddress:   rec.Address,
		AddressLocality: joinNonEmpty(", ", rec.Locality, rec.City),
		AddressRegion:   rec.Zone,
		AddressCountry:  "IN",
	}
}

// appendJSONLD marshals a schema document into the block. Marshaling these
// struct types cannot fail; encoding/json's default HTML escaping keeps the
// output safe inside <script> bodies.
func (b *Block) appendJSONLD(doc any) {
	data, err := json.Marshal(doc)
	if err != nil {
		return
	}
	b.JSONLD = append(b.JSONLD, data)
}

// RenderHead renders the block as the HTML fragment substituted into the
// shell template's SEO slot.
func (b Block) RenderHead() string {
	esc := html.EscapeString
	var sb strings.Builder
	fmt.Fprintf(&sb, "<title>%s</title>\n", esc(b.Title))
	fmt.Fprintf(&sb, `<meta name="description" content="%s">`+"\n", esc(b.Description))
	fmt.Fprintf(&sb, `<link rel="canonical" href="%s">`+"\n", esc(b.Canonical))
	fmt.Fprintf(&sb, `<meta property="og:type" content="website">`+"\n")
	fmt.Fprintf(&sb, `<meta property="og:title" content="%s">`+"\n", esc(b.Title))
	fmt.Fprintf(&sb, `<meta property="og:description" content="%s">`+"\n", esc(b.Description))
	fmt.Fprintf(&sb, `<meta property="og:url" content="%s">`+"\n", esc(b.Canonical))
	fmt.Fprintf(&sb, `<meta property="og:image" content="%s">`+"\n", esc(b.Image))
	fmt.Fprintf(&sb, `<meta name="twitter:card" content="summary_large_image">`+"\n")
	fmt.Fprintf(&sb, `<meta name="twitter:title" content="%s">`+"\n", esc(b.Title))
	fmt.Fprintf(&sb, `<meta name="twitter:description" content="%s">`+"\n", esc(b.Description))
	fmt.Fprintf(&sb, `<meta name="twitter:image" content="%s">`+"\n", esc(b.Image))
	for _, doc := range b.JSONLD {
		fmt.Fprintf(&sb, `<script type="application/ld+json">%s</script>`+"\n", doc)
	}
	return sb.String()
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// slugify lowercases and hyphenates a free-text field for URL use.
func slugify(s string) string {
	var sb strings.Builder
	prevHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			prevHyphen = false
		case !prevHyphen && sb.Len() > 0:
			sb.WriteByte('-')
			prevHyphen = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
