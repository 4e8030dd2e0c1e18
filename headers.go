package quell

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// gzipSuffix names the sibling file consulted for a precompressed variant.
const gzipSuffix = ".gz"

// headerStep is one stage of the header-computation pipeline. Steps run in
// order and may populate both the header set and the entry itself.
type headerStep func(f *File) error

// headerComputer derives the complete response header set for a file. The
// pipeline is assembled once at construction, so the plain and
// hashed-validator variants are the same type with different step lists.
// Identical (content, stat, configuration) inputs yield identical headers.
type headerComputer struct {
	opts  Options
	media *mediaTypes
	steps []headerStep
}

func newHeaderComputer(opts Options) *headerComputer {
	hc := &headerComputer{
		opts:  opts,
		media: newMediaTypes(opts.MediaTypes),
	}
	hc.steps = []headerStep{
		hc.statHeaders,
		hc.variantHeaders,
		hc.mimeHeaders,
		hc.cacheHeaders,
		hc.corsHeaders,
	}
	if opts.HashedETags {
		hc.steps = append(hc.steps, hc.etagHeaders)
	}
	hc.steps = append(hc.steps, hc.extraHeaders)
	return hc
}

// build constructs the entry for path exposed at url. It returns
// ErrMissingFile when path does not resolve to a regular file.
func (hc *headerComputer) build(path, url string) (*File, error) {
	f := &File{Path: path, URL: url}
	for _, step := range hc.steps {
		if err := step(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// statHeaders snapshots the file's stat info and sets Last-Modified and
// Content-Length from it.
func (hc *headerComputer) statHeaders(f *File) error {
	info, err := os.Stat(f.Path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", f.Path, ErrMissingFile)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("stat %s: not a regular file: %w", f.Path, ErrMissingFile)
	}
	f.ModTime = info.ModTime()
	f.Size = info.Size()
	f.Headers.Set("Last-Modified", f.ModTime.UTC().Format(http.TimeFormat))
	f.Headers.Set("Content-Length", strconv.FormatInt(f.Size, 10))
	return nil
}

// variantHeaders records a precompressed sibling (<path>.gz) when one exists
// on disk. Entries with a variant are content negotiated, so they always
// carry Vary.
func (hc *headerComputer) variantHeaders(f *File) error {
	info, err := os.Stat(f.Path + gzipSuffix)
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}
	f.GzipPath = f.Path + gzipSuffix
	f.GzipSize = info.Size()
	f.Headers.Set("Vary", "Accept-Encoding")
	return nil
}

func (hc *headerComputer) mimeHeaders(f *File) error {
	mediaType := hc.media.lookup(f.Path)
	if charset := hc.charsetFor(mediaType); charset != "" {
		mediaType += `; charset="` + charset + `"`
	}
	f.Headers.Add("Content-Type", mediaType)
	return nil
}

// charsetFor returns the configured charset for textual and scriptable media
// types and "" for everything else.
func (hc *headerComputer) charsetFor(mediaType string) string {
	if strings.HasPrefix(mediaType, "text/") || mediaType == "application/javascript" {
		if hc.opts.Charset != "" {
			return hc.opts.Charset
		}
		return "utf-8"
	}
	return ""
}

func (hc *headerComputer) cacheHeaders(f *File) error {
	if hc.opts.IsImmutable != nil && hc.opts.IsImmutable(f.Path, f.URL) {
		f.Immutable = true
		f.Headers.Set("Cache-Control", fmt.Sprintf("max-age=%d, public, immutable", ForeverMaxAge))
		return nil
	}
	if hc.opts.MaxAge >= 0 {
		f.Headers.Set("Cache-Control", fmt.Sprintf("max-age=%d, public", hc.opts.MaxAge))
	}
	return nil
}

func (hc *headerComputer) corsHeaders(f *File) error {
	if hc.opts.AllowAllOrigins {
		f.Headers.Set("Access-Control-Allow-Origin", "*")
	}
	return nil
}

// etagHeaders computes the content validator: the base64 of the SHA-256
// digest of the full file bytes, as a quoted string. It runs once per
// registration (static mode) or resolution (autorefresh), never per request.
func (hc *headerComputer) etagHeaders(f *File) error {
	file, err := os.Open(f.Path)
	if err != nil {
		// the file vanished between stat and hashing
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("hash %s: %w", f.Path, ErrMissingFile)
		}
		return fmt.Errorf("hash %s: %w", f.Path, err)
	}
	defer func() { _ = file.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return fmt.Errorf("hash %s: %w", f.Path, err)
	}
	f.ETag = `"` + base64.StdEncoding.EncodeToString(h.Sum(nil)) + `"`
	f.Headers.Set("ETag", f.ETag)
	return nil
}

func (hc *headerComputer) extraHeaders(f *File) error {
	if hc.opts.AddHeaders != nil {
		hc.opts.AddHeaders(&f.Headers, f.Path, f.URL)
	}
	return nil
}
