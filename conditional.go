package quell

import (
	"net/http"
	"strings"
	"time"
)

// freshness is the outcome of conditional-request evaluation.
type freshness int

const (
	// fresh means the full response must be sent.
	fresh freshness = iota
	// notModified means the client copy is current and a 304 suffices.
	notModified
)

// evaluateConditional decides between fresh and notModified for a GET/HEAD
// request against a resolved entry. If-None-Match always takes priority over
// If-Modified-Since; the modification timestamp is a fallback validator used
// only when no content validator is configured.
func evaluateConditional(r *http.Request, f *File) freshness {
	if inm, ok := r.Header["If-None-Match"]; ok {
		if anyETagMatches(strings.Join(inm, ","), f.ETag) {
			return notModified
		}
		return fresh
	}
	if f.ETag == "" {
		if ims := r.Header.Get("If-Modified-Since"); ims != "" {
			return evaluateModifiedSince(ims, f.ModTime)
		}
	}
	return fresh
}

// anyETagMatches parses header as a comma-separated entity-tag list and
// reports whether any tag equals etag or is the "*" wildcard. The wildcard
// matches unconditionally, even when no validator is configured; tag
// comparisons require one. Weak prefixes are stripped before comparison, and
// malformed tokens are skipped silently; parsing never fails.
func anyETagMatches(header, etag string) bool {
	want := trimETag(etag)
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "*" {
			return true
		}
		if want == "" {
			continue
		}
		token = strings.TrimPrefix(token, "W/")
		token = trimETag(token)
		if token != "" && token == want {
			return true
		}
	}
	return false
}

func trimETag(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}

// evaluateModifiedSince compares the client timestamp against the entry's
// modification time at one-second granularity. A client time at or after the
// modification time means the copy is current; timestamps in the future also
// qualify, tolerating clock skew in either direction. An unparseable value
// is treated as absent.
func evaluateModifiedSince(value string, modTime time.Time) freshness {
	clientTime, err := http.ParseTime(value)
	if err != nil {
		return fresh
	}
	if clientTime.Unix() >= modTime.Unix() {
		return notModified
	}
	return fresh
}
