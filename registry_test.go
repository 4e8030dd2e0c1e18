package quell_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmattson/quell"
)

func TestRegistry_FollowsSymlinkedDirectories(t *testing.T) {
	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "linked.txt"), []byte("via symlink"), 0o644))

	root := t.TempDir()
	if err := os.Symlink(target, filepath.Join(root, "linkdir")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	q := quell.New(passThroughApp(), quell.DefaultOptions())
	require.NoError(t, q.AddDirectory(root, ""))

	rec := get(q, "/linkdir/linked.txt", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "via symlink", rec.Body.String())
}

func TestRegistry_SkipsBrokenSymlinks(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "real.txt"), []byte("real"), 0o644))
	if err := os.Symlink(filepath.Join(root, "gone.txt"), filepath.Join(root, "broken.txt")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	q := quell.New(passThroughApp(), quell.DefaultOptions())
	require.NoError(t, q.AddDirectory(root, ""))

	rec := get(q, "/real.txt", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(q, "/broken.txt", nil)
	assert.Equal(t, "yes", rec.Header().Get("X-Fallthrough"))
}

func TestRegistry_MissingRootFails(t *testing.T) {
	q := quell.New(passThroughApp(), quell.DefaultOptions())

	err := q.AddDirectory(filepath.Join(t.TempDir(), "nope"), "")

	assert.Error(t, err)
}

func TestRegistry_IgnoresFilesystemChangesAfterBuild(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.js"), []byte("original"), 0o644))

	q := quell.New(passThroughApp(), quell.DefaultOptions())
	require.NoError(t, q.AddDirectory(root, ""))

	require.NoError(t, os.WriteFile(filepath.Join(root, "added.js"), []byte("new"), 0o644))

	rec := get(q, "/added.js", nil)
	assert.Equal(t, "yes", rec.Header().Get("X-Fallthrough"))
}
