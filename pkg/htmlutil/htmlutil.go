package htmlutil

import (
	"bytes"
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	// script and style contents are never visible text
	if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// NormalizeText collapses every run of unicode whitespace into a single space, trims
// the ends and drops non-printable characters.
func NormalizeText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return removeNonPrintable(s)
}

// SelectionText returns the normalized text of all nodes in the selection.
func SelectionText(sel *goquery.Selection) string {
	var buffer bytes.Buffer
	for _, n := range sel.Nodes {
		getTextRecursive(n, &buffer)
	}
	return NormalizeText(buffer.String())
}

type Anchor struct {
	Name string
	Url  *url.URL
}

// GetAnchor reads the first node of the selection as an anchor, the href is resolved
// relative to base when base is not nil. ok is false if there is no node or no href.
func GetAnchor(base *url.URL, sel *goquery.Selection) (anchor Anchor, ok bool) {
	if sel.Length() == 0 {
		return Anchor{}, false
	}
	first := sel.First()
	href, exists := first.Attr("href")
	if !exists || href == "" {
		return Anchor{}, false
	}

	link, err := url.Parse(href)
	if err != nil {
		return Anchor{}, false
	}
	if base != nil {
		link = base.ResolveReference(link)
	}

	return Anchor{
		Name: SelectionText(first),
		Url:  link,
	}, true
}
