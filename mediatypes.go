package quell

import (
	"mime"
	"path/filepath"
	"strings"
)

// fallbackType is used when no mapping matches the file extension.
const fallbackType = "application/octet-stream"

// defaultMediaTypes covers the extensions common in static asset trees. The
// table takes precedence over the platform mime database so that identical
// configuration yields identical headers on every host.
var defaultMediaTypes = map[string]string{
	".css":   "text/css",
	".csv":   "text/csv",
	".eot":   "application/vnd.ms-fontobject",
	".gif":   "image/gif",
	".htm":   "text/html",
	".html":  "text/html",
	".ico":   "image/x-icon",
	".jpeg":  "image/jpeg",
	".jpg":   "image/jpeg",
	".js":    "application/javascript",
	".json":  "application/json",
	".map":   "application/json",
	".md":    "text/markdown",
	".mjs":   "application/javascript",
	".mp3":   "audio/mpeg",
	".mp4":   "video/mp4",
	".otf":   "font/otf",
	".pdf":   "application/pdf",
	".png":   "image/png",
	".svg":   "image/svg+xml",
	".ttf":   "font/ttf",
	".txt":   "text/plain",
	".wasm":  "application/wasm",
	".webm":  "video/webm",
	".webp":  "image/webp",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".xml":   "application/xml",
}

// mediaTypes resolves content types from file extensions. Extra mappings
// supplied at construction override the defaults.
type mediaTypes struct {
	types map[string]string
}

func newMediaTypes(extra map[string]string) *mediaTypes {
	types := make(map[string]string, len(defaultMediaTypes)+len(extra))
	for ext, typ := range defaultMediaTypes {
		types[ext] = typ
	}
	for ext, typ := range extra {
		types[strings.ToLower(ext)] = typ
	}
	return &mediaTypes{types: types}
}

// lookup returns the media type for path without any parameters.
func (m *mediaTypes) lookup(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if typ, ok := m.types[ext]; ok {
		return typ
	}
	if typ := mime.TypeByExtension(ext); typ != "" {
		if mediaType, _, err := mime.ParseMediaType(typ); err == nil {
			return mediaType
		}
	}
	return fallbackType
}
