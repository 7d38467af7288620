// Package goquery implements pagesnap.Parser and pagesnap.Document on top of
// github.com/PuerkitoBio/goquery and golang.org/x/net/html.
package goquery

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagesnap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Compile-time interface verification.
var (
	_ pagesnap.Parser   = (*Parser)(nil)
	_ pagesnap.Document = (*Document)(nil)
)

// selectors maps each resource kind to the elements that reference it.
// A link counts as a stylesheet when "stylesheet" is one of its rel tokens.
var selectors = map[pagesnap.ResourceKind]string{
	pagesnap.ResourceImage:      "img[src]",
	pagesnap.ResourceStylesheet: "link[rel~=stylesheet][href]",
	pagesnap.ResourceScript:     "script[src]",
}

// Parser parses HTML documents with the HTML5 parsing algorithm.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes body to UTF-8 and parses it into a Document.
// The encoding comes from a BOM, the contentType charset parameter or a
// <meta> declaration, in that order, defaulting to UTF-8 for valid input.
// Charset declarations in the document are rewritten to UTF-8 to match.
func (p *Parser) Parse(body []byte, contentType string) (pagesnap.Document, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, pagesnap.Errorf(pagesnap.EINVALID, "failed to decode HTML: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, pagesnap.Errorf(pagesnap.EINVALID, "failed to parse HTML: %v", err)
	}

	declareUTF8(doc)
	return &Document{doc: doc}, nil
}

// declareUTF8 points <meta charset> and <meta http-equiv="content-type">
// at UTF-8. Declarations already naming UTF-8 are left as written.
func declareUTF8(doc *goquery.Document) {
	doc.Find("meta[charset]").Each(func(_ int, sel *goquery.Selection) {
		if v, _ := sel.Attr("charset"); !isUTF8(v) {
			sel.SetAttr("charset", "utf-8")
		}
	})
	doc.Find("meta[http-equiv][content]").Each(func(_ int, sel *goquery.Selection) {
		if v, _ := sel.Attr("http-equiv"); !strings.EqualFold(strings.TrimSpace(v), "content-type") {
			return
		}
		content, _ := sel.Attr("content")
		if rewritten, ok := replaceCharset(content); ok {
			sel.SetAttr("content", rewritten)
		}
	})
}

// replaceCharset swaps the charset parameter of a content type for utf-8.
// It reports false when there is no charset parameter or it is UTF-8 already.
func replaceCharset(content string) (string, bool) {
	const param = "charset="
	start := -1
	for i := 0; i+len(param) <= len(content); i++ {
		if strings.EqualFold(content[i:i+len(param)], param) {
			start = i + len(param)
			break
		}
	}
	if start < 0 {
		return content, false
	}
	end := strings.IndexByte(content[start:], ';')
	if end < 0 {
		end = len(content)
	} else {
		end += start
	}
	if isUTF8(strings.Trim(content[start:end], ` "'`)) {
		return content, false
	}
	return content[:start] + "utf-8" + content[end:], true
}

func isUTF8(label string) bool {
	label = strings.TrimSpace(label)
	return strings.EqualFold(label, "utf-8") || strings.EqualFold(label, "utf8")
}

// Document is a parsed HTML tree whose references can be rewritten in place.
type Document struct {
	doc *goquery.Document
}

// References returns the elements referencing resources of the given kind.
func (d *Document) References(kind pagesnap.ResourceKind) []*pagesnap.Reference {
	selector, ok := selectors[kind]
	if !ok {
		return nil
	}
	attr := kind.Attr()

	var refs []*pagesnap.Reference
	d.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		value, _ := sel.Attr(attr)
		refs = append(refs, pagesnap.NewReference(kind, value, func(v string) {
			sel.SetAttr(attr, v)
		}))
	})
	return refs
}

// BaseHref returns the href of the first <base> element.
func (d *Document) BaseHref() string {
	href, _ := d.doc.Find("base[href]").First().Attr("href")
	return strings.TrimSpace(href)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	for _, n := range d.doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}
