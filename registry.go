package quell

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// registry is the static-mode url → entry mapping. It is populated during
// configuration and read-only afterwards, so concurrent lookups need no
// synchronization.
type registry struct {
	files map[string]*File
}

func newRegistry() *registry {
	return &registry{files: make(map[string]*File)}
}

// lookup returns the entry registered for url, or nil.
func (r *registry) lookup(url string) *File {
	return r.files[url]
}

// addDirectory walks root, following symlinked directories, and registers an
// entry for every regular file at prefix + its slash-separated relative path.
// Later registrations overwrite earlier ones for the same url. A file that
// vanishes between the walk and header computation is skipped, not fatal.
func (r *registry) addDirectory(hc *headerComputer, root, prefix string, log *slog.Logger) error {
	return r.walk(hc, root, root, prefix, log)
}

func (r *registry) walk(hc *headerComputer, root, dir, prefix string, log *slog.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("walk %s: %w", dir, err)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		// stat rather than entry.Info so symlinks are followed
		info, err := os.Stat(path)
		if err != nil {
			log.Debug("skipping unstatable path", "path", path, "err", err)
			continue
		}
		if info.IsDir() {
			if err := r.walk(hc, root, path, prefix, log); err != nil {
				return err
			}
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
		url := prefix + filepath.ToSlash(rel)
		f, err := hc.build(path, url)
		if err != nil {
			if errors.Is(err, ErrMissingFile) {
				log.Debug("skipping vanished file", "path", path)
				continue
			}
			return err
		}
		r.files[url] = f
	}
	return nil
}
