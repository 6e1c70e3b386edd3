package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUploadStorageOpenStoredFile(t *testing.T) {
	base := t.TempDir()
	store, err := NewUploadStorage(base, 0, nil)
	require.NoError(t, err)

	require.NoError(t, store.write("documents/report.pdf", []byte("contents")))

	f, err := store.Open("documents/report.pdf")
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "contents", string(data))
}

func TestUploadStorageRejectsEscapingPaths(t *testing.T) {
	parent := t.TempDir()
	base := filepath.Join(parent, "uploads")
	store, err := NewUploadStorage(base, 0, nil)
	require.NoError(t, err)

	outside := filepath.Join(parent, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o600))

	_, err = store.Open("../secret.txt")
	require.Error(t, err)

	_, err = store.Open(outside)
	require.Error(t, err)

	_, err = store.Open("documents/../../secret.txt")
	require.Error(t, err)

	require.Error(t, store.write("../smuggled.txt", []byte("x")))
}

func TestUploadStorageDeleteRejectsEscapingPaths(t *testing.T) {
	parent := t.TempDir()
	base := filepath.Join(parent, "uploads")
	store, err := NewUploadStorage(base, 0, nil)
	require.NoError(t, err)

	outside := filepath.Join(parent, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o600))

	require.Error(t, store.Delete("../secret.txt"))

	_, statErr := os.Stat(outside)
	require.NoError(t, statErr)
}
