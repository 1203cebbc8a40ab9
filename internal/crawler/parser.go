package crawler

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Anchor is a hyperlink found on a page.
type Anchor struct {
	// Href is the raw href attribute, unresolved.
	Href string

	// Text is the anchor's visible text, trimmed.
	Text string
}

// Document is a parsed HTML page.
// It never fails on malformed markup; missing parts read as empty.
type Document struct {
	doc *goquery.Document
}

// hiddenElements hold text that is not rendered as page content.
// noscript is not among them: its content is fallback markup and counts.
var hiddenElements = map[string]bool{
	"script":   true,
	"style":    true,
	"template": true,
}

// ParseDocument parses HTML from r. Scripting is disabled while parsing so
// that <noscript> content becomes ordinary elements instead of raw text.
func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, err
	}
	return &Document{doc: goquery.NewDocumentFromNode(root)}, nil
}

// NewDocument parses body. A body the HTML parser rejects yields an empty
// document rather than an error.
func NewDocument(body string) *Document {
	d, err := ParseDocument(strings.NewReader(body))
	if err != nil {
		empty, _ := goquery.NewDocumentFromReader(strings.NewReader("")) //nolint:errcheck // empty input always parses
		return &Document{doc: empty}
	}
	return d
}

// Text returns the visible text of the page: every text node trimmed, empty
// ones dropped, joined by a single space. Comments and the contents of
// hiddenElements are excluded.
func (d *Document) Text() string {
	parts := make([]string, 0)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if hiddenElements[n.Data] {
				return
			}
		case html.TextNode:
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		case html.CommentNode, html.DoctypeNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range d.doc.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

// MetaProperty returns the content of the first meta tag whose property
// attribute equals name. ok is false if there is no such tag or it lacks a
// content attribute.
func (d *Document) MetaProperty(name string) (string, bool) {
	return d.metaBy("property", name)
}

// MetaName returns the content of the first meta tag whose name attribute
// equals name.
func (d *Document) MetaName(name string) (string, bool) {
	return d.metaBy("name", name)
}

func (d *Document) metaBy(attr, value string) (string, bool) {
	var (
		content string
		found   bool
	)
	d.doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, ok := s.Attr(attr); !ok || v != value {
			return true
		}
		content, found = s.Attr("content")
		return false
	})
	return content, found
}

// Title returns the text of the first title element.
func (d *Document) Title() (string, bool) {
	title := d.doc.Find("title").First()
	if title.Length() == 0 {
		return "", false
	}
	return title.Text(), true
}

// Anchors returns every <a> element that has an href attribute, in document
// order. Empty hrefs are kept.
func (d *Document) Anchors() []Anchor {
	anchors := make([]Anchor, 0)
	d.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		anchors = append(anchors, Anchor{
			Href: href,
			Text: strings.TrimSpace(s.Text()),
		})
	})
	return anchors
}
