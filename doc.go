// Package quell serves a known set of static files directly from within an
// HTTP middleware layer, computing cache headers and evaluating conditional
// request validators, and falls through to a wrapped handler for everything
// else.
//
// Files are exposed through mounts, each pairing a filesystem root with a URL
// prefix. In the default static mode the mounts are walked once up front into
// an immutable registry that is safe for unsynchronized concurrent lookups.
// In autorefresh mode every request resolves against the filesystem directly,
// which picks up changes immediately but is only intended for development.
//
// Basic usage:
//
//	q := quell.New(app, quell.DefaultOptions())
//	if err := q.AddDirectory("/srv/static", "/assets"); err != nil {
//	    log.Fatal(err)
//	}
//	http.ListenAndServe(":8080", q)
package quell
