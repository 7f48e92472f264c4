package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomicReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "index.html")

	require.NoError(t, WriteFileAtomic(path, []byte("one"), 0644))
	require.NoError(t, WriteFileAtomic(path, []byte("two"), 0644))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))
	assert.NoFileExists(t, path+".tmp")
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.webp")
	dst := filepath.Join(dir, "b.webp")
	require.NoError(t, os.WriteFile(src, []byte("RIFFdata"), 0644))

	n, err := CopyFile(src, dst)
	require.NoError(t, err)
	assert.EqualValues(t, 8, n)
	assert.True(t, Exists(dst))
	assert.EqualValues(t, 8, FileSize(dst))
	assert.False(t, Exists(dir))
}

func TestCleanupTempFiles(t *testing.T) {
	dir := t.TempDir()
	keep := filepath.Join(dir, "x-400.webp")
	drop := filepath.Join(dir, "manifest.json.tmp")
	require.NoError(t, os.WriteFile(keep, nil, 0644))
	require.NoError(t, os.WriteFile(drop, nil, 0644))

	CleanupTempFiles(dir)

	assert.FileExists(t, keep)
	assert.NoFileExists(t, drop)
}

func TestHumanAndPercent(t *testing.T) {
	assert.Equal(t, "512 B", Human(512))
	assert.Equal(t, "1.50 KB", Human(1536))
	assert.Equal(t, "2.00 MB", Human(2<<20))
	assert.Equal(t, "50.0%", Percent(1, 2))
	assert.Equal(t, "0.0%", Percent(3, 0))
}

func TestDoWithRetryRecoversFrom5xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		assert.Equal(t, "landingkit-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "a=1", r.Header.Get("Cookie"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(HTTPClientOptions{
		Timeout:   5 * time.Second,
		UserAgent: "landingkit-test",
		Cookie:    "a=1",
	})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodHead, srv.URL, nil)
	require.NoError(t, err)

	resp, err := DoWithRetry(client, req, 3, time.Millisecond)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, calls.Load())
}

func TestDoWithRetryReturns4xxImmediately(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := DoWithRetry(srv.Client(), req, 3, time.Millisecond)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.EqualValues(t, 1, calls.Load())
}

func TestJoinCookiesReadsFirstLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n  session=abc \nother=1\n"), 0644))

	assert.Equal(t, "a=1; session=abc", joinCookies("a=1", path))
	assert.Equal(t, "session=abc", joinCookies("", path))
}
