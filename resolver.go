package quell

import (
	"errors"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
)

// resolver implements autorefresh-mode resolution. Mounts are held most
// recently registered first, so later registrations shadow earlier ones for
// overlapping urls. The mount list is populated during configuration only;
// concurrent mutation after traffic starts is unsupported.
type resolver struct {
	mounts []Mount
}

// add registers a mount ahead of all existing ones.
func (rs *resolver) add(root, prefix string) {
	rs.mounts = append([]Mount{{Root: root, Prefix: prefix}}, rs.mounts...)
}

// resolve builds a fresh entry for url from the first mount that contains
// it, or returns nil when no mount matches. Urls that cannot denote a file
// or whose cleaned form differs from the raw url never match; the exactness
// of that comparison is the sole traversal defense, so any deviation is
// treated as non-matching, never as an error.
func (rs *resolver) resolve(hc *headerComputer, url string, log *slog.Logger) *File {
	if url == "" || strings.HasSuffix(url, "/") {
		return nil
	}
	if path.Clean(url) != url {
		return nil
	}
	for _, m := range rs.mounts {
		if !strings.HasPrefix(url, m.Prefix) {
			continue
		}
		candidate := filepath.Join(m.Root, filepath.FromSlash(url[len(m.Prefix):]))
		f, err := hc.build(candidate, url)
		if err != nil {
			if !errors.Is(err, ErrMissingFile) {
				log.Warn("could not build entry", "path", candidate, "err", err)
			}
			continue
		}
		return f
	}
	return nil
}
