package download

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineFilenamePriority(t *testing.T) {
	// Content-Disposition wins over everything.
	got := DetermineFilename(`attachment; filename="tool-1.0.zip"`,
		"https://example.com/other.zip", "*.zip", "default.zip")
	assert.Equal(t, "tool-1.0.zip", got)

	// Unquoted filename parameter.
	got = DetermineFilename(`attachment; filename=tool-1.0.zip`,
		"https://example.com/other.zip", "*.zip", "default.zip")
	assert.Equal(t, "tool-1.0.zip", got)

	// Next, the final URL's tail when it matches the pattern.
	got = DetermineFilename("", "https://example.com/path/tool-2.0.zip", "*.zip", "default.zip")
	assert.Equal(t, "tool-2.0.zip", got)

	// A tail that misses the pattern falls through to the default.
	got = DetermineFilename("", "https://example.com/download?id=7", "*.zip", "default.zip")
	assert.Equal(t, "default.zip", got)

	got = DetermineFilename("", "", "*.zip", "default.zip")
	assert.Equal(t, "default.zip", got)
}

func TestFileUsesContentDisposition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="payload-1.0.zip"`)
		fmt.Fprint(w, "payload-bytes")
	}))
	defer srv.Close()

	dir := t.TempDir()
	require.NoError(t, File(srv.URL+"/ignored", dir, "*.zip", "default.zip"))

	got, err := os.ReadFile(filepath.Join(dir, "payload-1.0.zip"))
	require.NoError(t, err)
	assert.Equal(t, "payload-bytes", string(got))
}

func TestFileReplacesExisting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "fresh")
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "default.zip")
	require.NoError(t, os.WriteFile(dest, []byte("stale"), 0644))

	require.NoError(t, File(srv.URL+"/x", dir, "*.zip", "default.zip"))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(got))
}

func TestFileClientErrorDoesNotRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	err := File(srv.URL+"/missing", t.TempDir(), "*.zip", "default.zip")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFileRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, "eventually")
	}))
	defer srv.Close()

	dir := t.TempDir()
	require.NoError(t, File(srv.URL+"/x", dir, "*.zip", "default.zip"))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestExtensionURL(t *testing.T) {
	url := ExtensionURL("ibm", "zopendebug", "5.4.0")
	assert.Equal(t,
		"https://marketplace.visualstudio.com/_apis/public/gallery/publishers/ibm/vsextensions/zopendebug/5.4.0/vspackage",
		url)
}

func TestExtensionFileName(t *testing.T) {
	assert.Equal(t, "ibm.zopendebug-5.4.0.vsix", ExtensionFileName("IBM", "ZOpenDebug", "5.4.0"))
}
