package catalog

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

// ErrEmptyIcon is returned when an icon file has no content.
var ErrEmptyIcon = errors.New("icon data is empty")

// IconDataURI encodes raw image bytes as a base64 data URI. The MIME type is
// sniffed from the content.
func IconDataURI(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyIcon
	}
	mime := http.DetectContentType(data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
