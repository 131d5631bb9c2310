package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func png(payload string) []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), payload...)
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "verification")
	store := NewScreenshotStore(dir)
	assert.Equal(t, dir, store.Dir())

	path, err := store.Save("cart.png", png("one"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cart.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, png("one"), data)
}

func TestSaveOverwritesPreviousFile(t *testing.T) {
	dir := t.TempDir()
	store := NewScreenshotStore(dir)

	_, err := store.Save("menu.png", png("a much longer first capture"))
	require.NoError(t, err)
	path, err := store.Save("menu.png", png("second"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, png("second"), data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files may be left behind")
}

func TestSaveAddsExtension(t *testing.T) {
	store := NewScreenshotStore(t.TempDir())

	path, err := store.Save("history", png("x"))
	require.NoError(t, err)
	assert.Equal(t, "history.png", filepath.Base(path))
}

func TestSaveRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	store := NewScreenshotStore(dir)

	for _, name := range []string{"", "../escape.png", "nested/view.png", `nested\view.png`} {
		_, err := store.Save(name, png("x"))
		assert.Error(t, err, name)
	}

	_, err := store.Save("view.png", []byte("<html>not an image</html>"))
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
