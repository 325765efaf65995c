package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestZipExtracts(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "tool-1.0.zip")
	buildZip(t, archive, map[string]string{
		"bin/tool.exe": "binary",
		"readme.md":    "docs",
	})

	require.NoError(t, Zip(archive, dir))

	got, err := os.ReadFile(filepath.Join(dir, "bin", "tool.exe"))
	require.NoError(t, err)
	assert.Equal(t, "binary", string(got))
	assert.FileExists(t, filepath.Join(dir, "readme.md"))
}

func TestZipRejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	buildZip(t, archive, map[string]string{
		"../evil.txt": "outside",
	})

	dest := filepath.Join(dir, "dest")
	require.NoError(t, os.MkdirAll(dest, 0755))
	err := Zip(archive, dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes destination")
}

func TestNormalizeCollapsesWrapper(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "tool-1.0.zip")
	buildZip(t, archive, map[string]string{
		"tool-1.0/bin/tool.exe": "binary",
		"tool-1.0/readme.md":    "docs",
	})

	require.NoError(t, Zip(archive, dir))
	require.NoError(t, Normalize(dir, ".zip"))

	assert.FileExists(t, filepath.Join(dir, "bin", "tool.exe"))
	assert.FileExists(t, filepath.Join(dir, "readme.md"))
	assert.FileExists(t, archive)
	assert.NoDirExists(t, filepath.Join(dir, "tool-1.0"))
}

func TestNormalizeIdempotent(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "tool-1.0.zip")
	buildZip(t, archive, map[string]string{
		"tool-1.0/bin/tool.exe": "binary",
		"tool-1.0/readme.md":    "docs",
	})

	require.NoError(t, Zip(archive, dir))
	require.NoError(t, Normalize(dir, ".zip"))
	require.NoError(t, Normalize(dir, ".zip"))

	assert.FileExists(t, filepath.Join(dir, "bin", "tool.exe"))
	assert.FileExists(t, filepath.Join(dir, "readme.md"))
}

func TestNormalizeNoPayload(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tool-1.0.zip"), []byte("x"), 0644))
	require.NoError(t, Normalize(dir, ".zip"))
}
