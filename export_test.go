package quell

// Internal helpers exposed to the external test package.
var (
	EnsureLeadingTrailingSlash = ensureLeadingTrailingSlash
	AcceptsGzip                = acceptsGzip
)
