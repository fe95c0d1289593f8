// Package markdown renders authored Markdown fields (project about sections,
// FAQ answers) for embedding in emitted pages, and reduces them to plain text
// for meta descriptions.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// Render converts a Markdown body to HTML. Returns the input unchanged on a
// conversion failure; authored content is untrusted but never fatal.
func Render(body string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return body
	}
	return buf.String()
}

// PlainText strips Markdown structure from a body, returning the raw text
// content with collapsed whitespace. Used for meta descriptions, which must
// not contain markup.
func PlainText(body string) string {
	source := []byte(body)
	root := md.Parser().Parse(text.NewReader(source))

	var sb strings.Builder
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if t, ok := n.(*gmast.Text); ok {
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		}
		return gmast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(sb.String()), " ")
}

// Excerpt returns a plain-text excerpt of at most max runes, cut on a word
// boundary with a trailing ellipsis when truncated.
func Excerpt(body string, max int) string {
	plain := PlainText(body)
	runes := []rune(plain)
	if len(runes) <= max {
		return plain
	}
	cut := string(runes[:max])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}
