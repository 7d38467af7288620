package pagesnap

// ResourceKind identifies the kind of resource a Reference points at.
type ResourceKind int

// Resource kinds, in the order they are localized.
const (
	ResourceImage ResourceKind = iota
	ResourceStylesheet
	ResourceScript
)

// ResourceKinds lists every kind in processing order.
var ResourceKinds = []ResourceKind{ResourceImage, ResourceStylesheet, ResourceScript}

// String returns the kind's name as used in log output.
func (k ResourceKind) String() string {
	switch k {
	case ResourceImage:
		return "image"
	case ResourceStylesheet:
		return "stylesheet"
	case ResourceScript:
		return "script"
	}
	return "unknown"
}

// Prefix returns the local file name prefix for the kind.
func (k ResourceKind) Prefix() string {
	switch k {
	case ResourceImage:
		return "img"
	case ResourceStylesheet:
		return "style"
	case ResourceScript:
		return "script"
	}
	return "res"
}

// Attr returns the element attribute holding the resource URL.
func (k ResourceKind) Attr() string {
	if k == ResourceStylesheet {
		return "href"
	}
	return "src"
}

// Binary reports whether the resource is stored byte for byte.
// Text resources are normalized to UTF-8.
func (k ResourceKind) Binary() bool {
	return k == ResourceImage
}

// Reference is an element attribute in a Document that names a resource URL.
type Reference struct {
	Kind ResourceKind

	// Value is the attribute value as found in the document.
	Value string

	set func(string)
}

// NewReference returns a Reference whose Rewrite calls set.
func NewReference(kind ResourceKind, value string, set func(value string)) *Reference {
	return &Reference{Kind: kind, Value: value, set: set}
}

// Rewrite replaces the attribute value in the owning document.
// Value keeps the original attribute value.
func (r *Reference) Rewrite(value string) {
	if r.set != nil {
		r.set(value)
	}
}
