package storage

import (
	"mime"
	"net/http"
	"path/filepath"
)

// MIMEOctetStream is returned when nothing better is known.
const MIMEOctetStream = "application/octet-stream"

// ContentType guesses the MIME type of a file from its extension,
// falling back to sniffing the first 512 bytes of data.
func ContentType(path string, data []byte) string {
	if ext := filepath.Ext(path); ext != "" {
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
	}
	if len(data) == 0 {
		return MIMEOctetStream
	}
	return http.DetectContentType(data)
}
