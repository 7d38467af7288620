// Package pagesnap saves a single web page for offline viewing. It fetches
// the page, downloads the images, stylesheets and scripts it references,
// rewrites those references to local copies and writes the result to a
// self-contained directory.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, fs/).
package pagesnap

// Output directory layout.
const (
	// IndexFile is the name of the serialized page inside the output directory.
	IndexFile = "index.html"

	// ResourceDir is the subdirectory holding downloaded resources.
	// Rewritten references are relative to the output directory and always
	// use forward slashes, e.g. "resources/img_0123456789abcdef.png".
	ResourceDir = "resources"
)
