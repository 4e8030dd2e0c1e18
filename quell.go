package quell

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
)

// Quell is the request dispatcher: an http.Handler that serves registered
// static files itself and delegates every other request, unmodified, to the
// wrapped handler.
type Quell struct {
	next     http.Handler
	opts     Options
	hc       *headerComputer
	registry *registry
	resolver *resolver
	log      *slog.Logger
}

// New wraps next with a static file layer configured by opts. A nil next
// handler responds 404 to non-matching requests.
func New(next http.Handler, opts Options) *Quell {
	if next == nil {
		next = http.NotFoundHandler()
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	q := &Quell{
		next: next,
		opts: opts,
		hc:   newHeaderComputer(opts),
		log:  log,
	}
	if opts.Autorefresh {
		q.resolver = &resolver{}
	} else {
		q.registry = newRegistry()
	}
	return q
}

// AddDirectory exposes the files under root at the given url prefix. The
// prefix gets leading and trailing slashes enforced; "" exposes files at the
// site root. In static mode the directory is walked immediately; in
// autorefresh mode the mount is recorded and consulted per request, shadowing
// previously added mounts for overlapping urls. AddDirectory must not be
// called once the handler is serving traffic.
func (q *Quell) AddDirectory(root, prefix string) error {
	prefix = ensureLeadingTrailingSlash(prefix)
	if q.opts.Autorefresh {
		q.resolver.add(root, prefix)
		return nil
	}
	return q.registry.addDirectory(q.hc, root, prefix, q.log)
}

// ServeHTTP implements http.Handler.
func (q *Quell) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f := q.find(r.URL.Path)
	if f == nil {
		q.next.ServeHTTP(w, r)
		return
	}
	q.serve(w, r, f)
}

func (q *Quell) find(url string) *File {
	if q.opts.Autorefresh {
		return q.resolver.resolve(q.hc, url, q.log)
	}
	return q.registry.lookup(url)
}

func (q *Quell) serve(w http.ResponseWriter, r *http.Request, f *File) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if evaluateConditional(r, f) == notModified {
		q.writeNotModified(w, f)
		return
	}
	q.writeFresh(w, r, f)
}

// writeNotModified sends a bodyless 304 carrying only the validator and
// cache headers.
func (q *Quell) writeNotModified(w http.ResponseWriter, f *File) {
	hdr := w.Header()
	for _, name := range []string{"ETag", "Last-Modified", "Cache-Control", "Vary"} {
		if v := f.Headers.Get(name); v != "" {
			hdr.Set(name, v)
		}
	}
	w.WriteHeader(http.StatusNotModified)
}

// writeFresh sends the full header set and streams the file body. When the
// client accepts gzip and a precompressed variant exists it is served
// instead, with the variant's length. HEAD gets identical headers and no
// body.
func (q *Quell) writeFresh(w http.ResponseWriter, r *http.Request, f *File) {
	hdr := w.Header()
	f.Headers.WriteTo(hdr)

	body := f.Path
	if f.GzipPath != "" && acceptsGzip(r.Header.Get("Accept-Encoding")) {
		body = f.GzipPath
		hdr.Set("Content-Encoding", "gzip")
		hdr.Set("Content-Length", strconv.FormatInt(f.GzipSize, 10))
	}

	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}

	file, err := os.Open(body)
	if err != nil {
		// headers are already out; the transport closes the stream short
		q.log.Error("could not open file for body", "path", body, "err", err)
		return
	}
	defer func() { _ = file.Close() }()

	if _, err := io.Copy(w, file); err != nil {
		q.log.Debug("body copy interrupted", "path", body, "err", err)
	}
}
