package pagesnap

import (
	"context"
	"io"
)

// Document is a parsed, mutable HTML page.
type Document interface {
	// References returns the references of the given kind in document order.
	// Elements whose attribute is empty are included; callers decide
	// whether to skip them.
	References(kind ResourceKind) []*Reference

	// BaseHref returns the href of the document's <base> element,
	// or an empty string if there is none.
	BaseHref() string

	// Render serializes the document, including any rewritten references.
	Render(w io.Writer) error
}

// Parser builds a Document from a response body.
type Parser interface {
	// Parse parses body as HTML. The contentType is the declared
	// Content-Type header and is used to pick the character encoding.
	// Parsing is lenient: malformed markup never produces an error.
	Parse(body []byte, contentType string) (Document, error)
}

// Store persists a downloaded page and its resources.
type Store interface {
	// Init creates the output directory and its resources subdirectory.
	// Existing directories and files are reused, never cleared.
	Init(ctx context.Context) error

	// SaveResource writes a resource under ResourceDir and returns the
	// path relative to the output directory, e.g. "resources/<name>".
	SaveResource(ctx context.Context, name string, body []byte) (string, error)

	// SaveDocument renders doc to IndexFile and returns the path written.
	SaveDocument(ctx context.Context, doc Document) (string, error)
}
