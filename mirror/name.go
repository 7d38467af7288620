package mirror

import (
	"fmt"
	"mime"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagesnap"
)

// DefaultImageExtension is used when an image's content type is missing
// or unknown.
const DefaultImageExtension = ".jpg"

// imageExtensions pins the extension for common image types. The system MIME
// table is platform dependent and lists several extensions for some types.
var imageExtensions = map[string]string{
	"image/avif":               ".avif",
	"image/bmp":                ".bmp",
	"image/gif":                ".gif",
	"image/jpeg":               ".jpg",
	"image/jpg":                ".jpg",
	"image/pjpeg":              ".jpg",
	"image/png":                ".png",
	"image/svg+xml":            ".svg",
	"image/tiff":               ".tif",
	"image/vnd.microsoft.icon": ".ico",
	"image/webp":               ".webp",
	"image/x-icon":             ".ico",
}

// URLHash returns a stable 64-bit hash of an absolute URL as 16 hex digits.
func URLHash(absURL string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(absURL))
}

// LocalName returns the file name a resource is saved under:
// <prefix>_<hash><ext>. The same URL always maps to the same name.
func LocalName(kind pagesnap.ResourceKind, absURL, contentType string) string {
	return kind.Prefix() + "_" + URLHash(absURL) + Extension(kind, contentType)
}

// Extension returns the file extension for a resource of the given kind.
// Stylesheets and scripts have fixed extensions; images are named after
// their declared content type.
func Extension(kind pagesnap.ResourceKind, contentType string) string {
	switch kind {
	case pagesnap.ResourceStylesheet:
		return ".css"
	case pagesnap.ResourceScript:
		return ".js"
	}
	return imageExtension(contentType)
}

func imageExtension(contentType string) string {
	if contentType == "" {
		return DefaultImageExtension
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return DefaultImageExtension
	}
	if ext, ok := imageExtensions[mediaType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return DefaultImageExtension
}
