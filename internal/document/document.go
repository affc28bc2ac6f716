package document

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Document is a queryable element tree built from a fetched page body.
//
// Design decision: We build on goquery rather than walking x/net/html
// nodes by hand because:
//  1. Its selector engine covers the tag/attribute lookups the finders need
//  2. It shares x/net/html's tolerance of malformed markup
//  3. Selections carry document order, which the ranking relies on
type Document struct {
	doc   *goquery.Document
	empty bool
}

// Parse builds a Document from a response body. It never fails: any input
// that cannot produce an element tree (empty body, binary garbage, plain
// text) yields an empty Document whose Empty method reports true.
//
// The contentType is used for charset detection so non-UTF-8 pages are
// transcoded before parsing; when detection fails the raw bytes are parsed
// as-is.
func Parse(body []byte, contentType string) *Document {
	if len(bytes.TrimSpace(body)) == 0 {
		return emptyDocument()
	}

	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		reader = bytes.NewReader(body)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return emptyDocument()
	}

	d := &Document{doc: doc}
	d.empty = !d.hasElements()
	return d
}

// emptyDocument returns a Document with a valid but contentless tree, so
// Find never has to nil-check.
func emptyDocument() *Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(""))
	if err != nil {
		// Parsing the empty string cannot fail with x/net/html.
		panic(err)
	}
	return &Document{doc: doc, empty: true}
}

// hasElements reports whether parsing recovered any real elements. The
// HTML parser synthesizes html/head/body for any input, so an input that
// produced nothing inside either is not a usable document.
func (d *Document) hasElements() bool {
	return d.doc.Find("head").Children().Length() > 0 ||
		d.doc.Find("body").Children().Length() > 0
}

// Empty reports whether the document carries no usable element tree.
// The strategy chain maps an empty document to a parse-error outcome.
func (d *Document) Empty() bool {
	return d.empty
}

// Find returns the selection matching the given selector, in document
// order. Safe to call on an empty Document (returns an empty selection).
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// AttrContains reports whether the named attribute of the selection's
// first node contains the token, case-insensitively. Missing attributes
// simply do not match.
func AttrContains(s *goquery.Selection, attr, token string) bool {
	v, ok := s.Attr(attr)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(v), strings.ToLower(token))
}

// AttrHasExactToken reports whether the named attribute, split on
// whitespace, contains a field exactly equal to the token
// (case-insensitive). Distinguishes class="logo" from class="logo-footer".
func AttrHasExactToken(s *goquery.Selection, attr, token string) bool {
	v, ok := s.Attr(attr)
	if !ok {
		return false
	}
	token = strings.ToLower(token)
	for _, field := range strings.Fields(strings.ToLower(v)) {
		if field == token {
			return true
		}
	}
	return false
}

// Render serializes the first node of the selection back to markup.
// Used to turn inline SVG subtrees into data URIs.
func Render(s *goquery.Selection) (string, error) {
	if len(s.Nodes) == 0 {
		return "", nil
	}
	var sb strings.Builder
	if err := html.Render(&sb, s.Nodes[0]); err != nil {
		return "", err
	}
	return sb.String(), nil
}
