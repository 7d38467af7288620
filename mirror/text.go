package mirror

import (
	"mime"
	"strings"

	"golang.org/x/net/html/charset"
)

// decodeText converts a text resource to UTF-8 using the charset declared
// in contentType. Bodies without a declared charset, or declared as UTF-8,
// are returned unchanged.
func decodeText(body []byte, contentType string) ([]byte, error) {
	if contentType == "" {
		return body, nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body, nil
	}
	label := strings.TrimSpace(params["charset"])
	if label == "" {
		return body, nil
	}

	enc, name := charset.Lookup(label)
	if enc == nil || name == "utf-8" {
		return body, nil
	}
	return enc.NewDecoder().Bytes(body)
}
