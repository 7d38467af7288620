package mock

import (
	"io"

	"github.com/fwojciec/pagesnap"
)

// Compile-time interface verification.
var (
	_ pagesnap.Document = (*Document)(nil)
	_ pagesnap.Parser   = (*Parser)(nil)
)

// Document is a mock implementation of pagesnap.Document.
type Document struct {
	ReferencesFn func(kind pagesnap.ResourceKind) []*pagesnap.Reference
	BaseHrefFn   func() string
	RenderFn     func(w io.Writer) error
}

func (d *Document) References(kind pagesnap.ResourceKind) []*pagesnap.Reference {
	return d.ReferencesFn(kind)
}

func (d *Document) BaseHref() string {
	return d.BaseHrefFn()
}

func (d *Document) Render(w io.Writer) error {
	return d.RenderFn(w)
}

// Parser is a mock implementation of pagesnap.Parser.
type Parser struct {
	ParseFn func(body []byte, contentType string) (pagesnap.Document, error)
}

func (p *Parser) Parse(body []byte, contentType string) (pagesnap.Document, error) {
	return p.ParseFn(body, contentType)
}
