package trustpilot

import (
	"bytes"
	"fmt"
	"net/url"
	"trustpilot-collector/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// Element is a parsed document or a node inside one. Lookups on an Element only ever
// search its descendants, so a review card never sees another card's markup.
//
// The zero Element matches nothing.
type Element struct {
	sel *goquery.Selection
}

// ParseDocument parses raw markup, malformed html is accepted on a best-effort basis.
func ParseDocument(raw []byte) (Element, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return Element{}, fmt.Errorf("%w: read markup: %w", ErrParseDefect, err)
	}
	return Element{sel: doc.Selection}, nil
}

func (e Element) Exists() bool {
	return e.sel != nil && e.sel.Length() > 0
}

// First returns the first descendant matching selector.
func (e Element) First(selector string) Element {
	if !e.Exists() {
		return Element{}
	}
	return Element{sel: e.sel.Find(selector).First()}
}

// All returns every descendant matching selector in document order.
func (e Element) All(selector string) []Element {
	if !e.Exists() {
		return nil
	}
	found := e.sel.Find(selector)
	out := make([]Element, found.Length())
	for i := range out {
		out[i] = Element{sel: found.Eq(i)}
	}
	return out
}

// Attr returns the value of the attribute on the first node, or the empty string.
func (e Element) Attr(name string) string {
	if !e.Exists() {
		return ""
	}
	return e.sel.First().AttrOr(name, "")
}

// Text returns the whitespace normalized text content of the first node.
func (e Element) Text() string {
	if !e.Exists() {
		return ""
	}
	return htmlutil.SelectionText(e.sel.First())
}

// Anchor reads the first node as a link, resolving its href against base.
func (e Element) Anchor(base *url.URL) (htmlutil.Anchor, bool) {
	if !e.Exists() {
		return htmlutil.Anchor{}, false
	}
	return htmlutil.GetAnchor(base, e.sel)
}
