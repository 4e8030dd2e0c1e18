package quell

import "log/slog"

// ForeverMaxAge is the max-age applied to immutable files: ten years, the
// value nginx uses for "expires max".
const ForeverMaxAge = 10 * 365 * 24 * 60 * 60

// Options configures a Quell instance. All fields are read once at
// construction; the resulting configuration is immutable.
//
// The zero value is usable but differs from the documented defaults: use
// DefaultOptions as the starting point to get max-age 60, open CORS and a
// UTF-8 charset.
type Options struct {
	// MaxAge is the Cache-Control max-age in seconds for files not
	// classified as immutable. A negative value disables the Cache-Control
	// header entirely.
	MaxAge int

	// AllowAllOrigins sets "Access-Control-Allow-Origin: *" on every file.
	// Static assets are public, so this is safe and keeps webfonts working
	// when assets are served from another domain.
	AllowAllOrigins bool

	// Charset is appended as a Content-Type parameter for text/* and
	// application/javascript responses. Empty means "utf-8".
	Charset string

	// MediaTypes maps file extensions (including the leading dot) to media
	// types, overriding or extending the built-in table.
	MediaTypes map[string]string

	// HashedETags enables content validators: each file gets an ETag
	// computed as the base64 of the SHA-256 digest of its full content,
	// and If-None-Match is honored against it.
	HashedETags bool

	// Autorefresh selects dynamic resolution: the filesystem is re-checked
	// on every request instead of building a registry up front. For
	// development only, not supported in production.
	Autorefresh bool

	// IsImmutable classifies files whose content never changes for a given
	// URL (typically content-hashed filenames). Immutable files are served
	// with a ten-year max-age. Nil means nothing is immutable.
	IsImmutable func(path, url string) bool

	// AddHeaders runs after all built-in header computation and may add or
	// override any header.
	AddHeaders func(headers *HeaderSet, path, url string)

	// Logger receives skipped-file and serve-time diagnostics. The default
	// slog logger is used if nil.
	Logger *slog.Logger
}

// DefaultOptions returns the documented default configuration.
func DefaultOptions() Options {
	return Options{
		MaxAge:          60,
		AllowAllOrigins: true,
		Charset:         "utf-8",
	}
}
