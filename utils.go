package quell

import "strings"

// ensureLeadingTrailingSlash normalizes a mount prefix so that it always
// begins and ends with "/". The empty prefix becomes "/".
func ensureLeadingTrailingSlash(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return "/"
	}
	return "/" + prefix + "/"
}

// acceptsGzip reports whether an Accept-Encoding header value lists gzip as
// an acceptable coding. Quality values are not weighed beyond an explicit
// q=0 rejection.
func acceptsGzip(acceptEncoding string) bool {
	for _, part := range strings.Split(acceptEncoding, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		coding = strings.TrimSpace(coding)
		if coding != "gzip" && coding != "*" {
			continue
		}
		if q, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if q := strings.TrimSpace(q); q == "0" || q == "0.0" || q == "0.00" || q == "0.000" {
				continue
			}
		}
		return true
	}
	return false
}
