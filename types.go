package quell

import (
	"net/http"
	"time"
)

// Header is a single response header name/value pair.
type Header struct {
	Name  string
	Value string
}

// HeaderSet is an ordered collection of response headers. Unlike http.Header
// it preserves insertion order and permits duplicate names, so the header set
// computed for a file is byte-for-byte reproducible.
type HeaderSet struct {
	pairs []Header
}

// Add appends a header, keeping any existing values for the same name.
func (h *HeaderSet) Add(name, value string) {
	h.pairs = append(h.pairs, Header{Name: http.CanonicalHeaderKey(name), Value: value})
}

// Set replaces all values for name with a single value. If the name is not
// present the header is appended.
func (h *HeaderSet) Set(name, value string) {
	name = http.CanonicalHeaderKey(name)
	kept := h.pairs[:0]
	replaced := false
	for _, p := range h.pairs {
		if p.Name == name {
			if !replaced {
				kept = append(kept, Header{Name: name, Value: value})
				replaced = true
			}
			continue
		}
		kept = append(kept, p)
	}
	if !replaced {
		kept = append(kept, Header{Name: name, Value: value})
	}
	h.pairs = kept
}

// Get returns the first value for name, or "" if absent.
func (h *HeaderSet) Get(name string) string {
	name = http.CanonicalHeaderKey(name)
	for _, p := range h.pairs {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

// Del removes all values for name.
func (h *HeaderSet) Del(name string) {
	name = http.CanonicalHeaderKey(name)
	kept := h.pairs[:0]
	for _, p := range h.pairs {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	h.pairs = kept
}

// Pairs returns a copy of the headers in insertion order.
func (h *HeaderSet) Pairs() []Header {
	out := make([]Header, len(h.pairs))
	copy(out, h.pairs)
	return out
}

// WriteTo adds every header in order to dst.
func (h *HeaderSet) WriteTo(dst http.Header) {
	for _, p := range h.pairs {
		dst.Add(p.Name, p.Value)
	}
}

// File is a resolved static file entry. Once constructed its headers are
// final; autorefresh mode produces a brand-new File per resolution rather
// than mutating an old one.
type File struct {
	// Path is the absolute filesystem path of the file.
	Path string
	// URL is the canonical request path, always beginning with "/".
	URL string
	// Headers is the full response header set computed at construction.
	Headers HeaderSet
	// ModTime and Size are the stat snapshot taken at construction.
	ModTime time.Time
	Size    int64
	// ETag is the quoted content validator, empty unless hashed validators
	// are enabled.
	ETag string
	// Immutable reports whether the cache policy classified the file as
	// immutable (content-hashed filename).
	Immutable bool
	// GzipPath and GzipSize describe a precompressed sibling variant
	// (<Path>.gz) when one exists on disk.
	GzipPath string
	GzipSize int64
}

// Mount pairs a filesystem root directory with the URL prefix its files are
// exposed under.
type Mount struct {
	Root   string
	Prefix string
}
