package quell_test

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmattson/quell"
)

func etagFor(content string) string {
	sum := sha256.Sum256([]byte(content))
	return `"` + base64.StdEncoding.EncodeToString(sum[:]) + `"`
}

func newETagHandler(t *testing.T) *quell.Quell {
	t.Helper()
	opts := quell.DefaultOptions()
	opts.HashedETags = true
	q, _, _ := newTestHandler(t, opts)
	return q
}

func TestETag_HeaderValue(t *testing.T) {
	q := newETagHandler(t)

	rec := get(q, "/subdir/app.js", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, etagFor(jsContent), rec.Header().Get("ETag"))
}

func TestETag_IfNoneMatchVariants(t *testing.T) {
	q := newETagHandler(t)
	etag := etagFor(jsContent)

	notModified := []struct {
		name   string
		header string
	}{
		{"exact", etag},
		{"weak prefix", "W/" + etag},
		{"wildcard", "*"},
		{"list first", fmt.Sprintf(`%s, "random", "whatever"`, etag)},
		{"list middle", fmt.Sprintf(`"something", "weird", %s, "random"`, etag)},
		{"list last", fmt.Sprintf(`"randomvalue", "somevalue", %s`, etag)},
		{"weak in list", fmt.Sprintf(`W/"randomvalue", "somevalue", %s`, etag)},
		{"dangling comma", fmt.Sprintf(`W/"randomvalue", "somevalue", %s, what,`, etag)},
		{"surrounding whitespace", fmt.Sprintf(`  %s  `, etag)},
	}
	for _, tc := range notModified {
		t.Run("304 "+tc.name, func(t *testing.T) {
			rec := get(q, "/subdir/app.js", map[string]string{"If-None-Match": tc.header})
			assert.Equal(t, http.StatusNotModified, rec.Code)
			assert.Empty(t, rec.Body.String())
			assert.Equal(t, etag, rec.Header().Get("ETag"))
		})
	}

	stillFresh := []struct {
		name   string
		header string
	}{
		{"bare garbage", "invalid"},
		{"quoted garbage", `"invalid"`},
		{"weak garbage", `W/"randomstuff"`},
		{"garbage list", `W/,,"random,stuff",`},
		{"empty value", ""},
	}
	for _, tc := range stillFresh {
		t.Run("200 "+tc.name, func(t *testing.T) {
			rec := get(q, "/subdir/app.js", map[string]string{"If-None-Match": tc.header})
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, jsContent, rec.Body.String())
			assert.Equal(t, etag, rec.Header().Get("ETag"))
		})
	}
}

func TestETag_IfNoneMatchTakesPriorityOverIfModifiedSince(t *testing.T) {
	q := newETagHandler(t)

	lastMod := get(q, "/subdir/app.js", nil).Header().Get("Last-Modified")
	require.NotEmpty(t, lastMod)

	// the timestamp alone would yield 304, but the non-matching tag wins
	rec := get(q, "/subdir/app.js", map[string]string{
		"If-None-Match":     `"unrelated"`,
		"If-Modified-Since": lastMod,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestETag_IfModifiedSinceIgnoredWhenValidatorConfigured(t *testing.T) {
	q := newETagHandler(t)

	lastMod := get(q, "/subdir/app.js", nil).Header().Get("Last-Modified")
	require.NotEmpty(t, lastMod)

	// the timestamp is only a fallback validator; with a content validator
	// configured and no If-None-Match the response stays fresh
	rec := get(q, "/subdir/app.js", map[string]string{"If-Modified-Since": lastMod})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestETag_HeadNotModified(t *testing.T) {
	q := newETagHandler(t)
	etag := etagFor(jsContent)

	rec := request(q, http.MethodHead, "/subdir/app.js", map[string]string{"If-None-Match": etag})

	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, etag, rec.Header().Get("ETag"))
}

func TestETag_NotModifiedCarriesOnlyValidatorAndCacheHeaders(t *testing.T) {
	q := newETagHandler(t)

	rec := get(q, "/subdir/app.js", map[string]string{"If-None-Match": etagFor(jsContent)})

	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("ETag"))
	assert.NotEmpty(t, rec.Header().Get("Last-Modified"))
	assert.NotEmpty(t, rec.Header().Get("Cache-Control"))
	assert.Empty(t, rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("Content-Length"))
}
