package seo

// Schema.org document types emitted as JSON-LD. Each block is optional and
// independently present depending on available content; blocks are always
// produced via json.Marshal, never by string concatenation.

const schemaContext = "https://schema.org"

// Organization describes the builder on hub pages.
type Organization struct {
	Context     string `json:"@context"`
	Type        string `json:"@type"`
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Description string `json:"description,omitempty"`
}

// BreadcrumbList locates the page in the site hierarchy. The final element
// is the current page and carries no item URL.
type BreadcrumbList struct {
	Context         string           `json:"@context"`
	Type            string           `json:"@type"`
	ItemListElement []BreadcrumbItem `json:"itemListElement"`
}

type BreadcrumbItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
}

// ItemList enumerates a hub page's child projects, 1-based and sequential.
type ItemList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	Name            string     `json:"name,omitempty"`
	ItemListElement []ListItem `json:"itemListElement"`
}

type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	URL      string `json:"url"`
}

// ApartmentComplex is the primary per-project entity.
type ApartmentComplex struct {
	Context     string         `json:"@context"`
	Type        string         `json:"@type"`
	Name        string         `json:"name"`
	URL         string         `json:"url"`
	Image       string         `json:"image,omitempty"`
	Description string         `json:"description,omitempty"`
	Address     *PostalAddress `json:"address,omitempty"`
}

type PostalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress,omitempty"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	AddressCountry  string `json:"addressCountry"`
}

// Product carries the priced unit plans as offers. Availability is always
// "InStock" regardless of real inventory state; an accepted content
// simplification carried over from the authored data model.
type Product struct {
	Context     string  `json:"@context"`
	Type        string  `json:"@type"`
	Name        string  `json:"name"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
	Offers      []Offer `json:"offers"`
}

type Offer struct {
	Type          string  `json:"@type"`
	Name          string  `json:"name,omitempty"`
	Price         float64 `json:"price"`
	PriceCurrency string  `json:"priceCurrency"`
	Availability  string  `json:"availability"`
	URL           string  `json:"url,omitempty"`
}

// FAQPage carries the merged FAQ set, one Question/Answer per item in merged
// order.
type FAQPage struct {
	Context    string     `json:"@context"`
	Type       string     `json:"@type"`
	MainEntity []Question `json:"mainEntity"`
}

type Question struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer Answer `json:"acceptedAnswer"`
}

type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}
