// Package linkverify checks that internal links in emitted HTML resolve to
// emitted pages or known static asset prefixes.
package linkverify

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	sgerrors "git.home.luguber.info/inful/sitegen/internal/errors"
)

// Link is one extracted link from an emitted page.
type Link struct {
	URL       string // the raw href/src value
	Tag       string // a, img, script, link
	Attribute string // href or src
	Internal  bool   // true when the link targets this site
}

// BrokenLink pairs an unresolvable internal link with the page it came from.
type BrokenLink struct {
	Page string
	Link Link
}

// Asset prefixes the bundler and content tooling own; links under these are
// not expected to correspond to emitted pages.
var assetPrefixes = []string{"/assets/", "/images/"}

// ExtractLinks parses an HTML document and extracts link-like attributes.
func ExtractLinks(r io.Reader, origin string) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.CategoryValidation, sgerrors.SeverityError, "failed to parse emitted HTML")
	}
	base, err := url.Parse(origin)
	if err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.CategoryConfig, sgerrors.SeverityFatal, "invalid site origin").
			WithContext("origin", origin)
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if l, ok := elementLink(n, base); ok {
				links = append(links, l)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func elementLink(n *html.Node, base *url.URL) (Link, bool) {
	var attrName string
	switch n.Data {
	case "a", "link":
		attrName = "href"
	case "img", "script":
		attrName = "src"
	default:
		return Link{}, false
	}
	val := attrValue(n, attrName)
	if val == "" {
		return Link{}, false
	}
	return Link{
		URL:       val,
		Tag:       n.Data,
		Attribute: attrName,
		Internal:  isInternal(val, base),
	}, true
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func isInternal(raw string, base *url.URL) bool {
	if strings.HasPrefix(raw, "#") || strings.HasPrefix(raw, "mailto:") || strings.HasPrefix(raw, "tel:") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Host == "" {
		return true
	}
	return u.Host == base.Host
}

// VerifyOutput walks every index.html under the output root and reports
// internal page links that do not resolve to an emitted page.
func VerifyOutput(outputRoot, origin string) ([]BrokenLink, error) {
	var broken []BrokenLink
	err := filepath.WalkDir(outputRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != "index.html" {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		links, perr := ExtractLinks(f, origin)
		_ = f.Close()
		if perr != nil {
			return perr
		}
		for _, l := range links {
			if !l.Internal || l.Tag != "a" {
				continue
			}
			if !resolves(outputRoot, origin, l.URL) {
				broken = append(broken, BrokenLink{Page: path, Link: l})
			}
		}
		return nil
	})
	if err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.CategoryFileSystem, sgerrors.SeverityFatal, "failed to walk output directory").
			WithContext("path", outputRoot)
	}
	return broken, nil
}

// resolves reports whether an internal link maps to an emitted page or a
// known asset prefix.
func resolves(outputRoot, origin, raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	p := u.Path
	if p == "" || p == "/" {
		return true
	}
	for _, prefix := range assetPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	rel := strings.Trim(p, "/")
	if _, err := os.Stat(filepath.Join(outputRoot, rel, "index.html")); err == nil {
		return true
	}
	_, err = os.Stat(filepath.Join(outputRoot, rel))
	return err == nil
}
