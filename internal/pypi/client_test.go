package pypi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMetadata = `{
	"info": {
		"name": "foobar",
		"version": "1.0",
		"summary": "A sample package",
		"home_page": "http://www.foo.com",
		"license": "MIT",
		"classifiers": ["License :: OSI Approved :: MIT License"],
		"requires_dist": ["requests (>=2.0)"]
	},
	"urls": [
		{
			"url": "https://files.example.org/foobar-1.0-py3-none-any.whl",
			"filename": "foobar-1.0-py3-none-any.whl",
			"packagetype": "bdist_wheel",
			"size": 1234
		},
		{
			"url": "https://files.example.org/foobar-1.0.tar.gz",
			"filename": "foobar-1.0.tar.gz",
			"packagetype": "sdist",
			"size": 4321,
			"digests": {"md5": "d41d8cd98f00b204e9800998ecf8427e"}
		}
	]
}`

// TestReleaseMetadata tests fetching and decoding a release document.
func TestReleaseMetadata(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleMetadata))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	meta, err := client.ReleaseMetadata(context.Background(), "foobar", "")
	require.NoError(t, err)
	assert.Equal(t, "/foobar/json", requested)
	assert.Equal(t, "foobar", meta.Info.Name)
	assert.Equal(t, "1.0", meta.Info.Version)
	assert.Equal(t, "http://www.foo.com", meta.Info.HomePage)
	assert.Equal(t, []string{"requests (>=2.0)"}, meta.Info.RequiresDist)

	_, err = client.ReleaseMetadata(context.Background(), "foobar", "1.0")
	require.NoError(t, err)
	assert.Equal(t, "/foobar/1.0/json", requested)
}

// TestReleaseMetadataNotFound tests the 404 error path.
func TestReleaseMetadataNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.ReleaseMetadata(context.Background(), "no-such-package", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found on index")
}

// TestReleaseMetadataServerError tests non-200 statuses.
func TestReleaseMetadataServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.ReleaseMetadata(context.Background(), "foobar", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

// TestNewClientDefaults tests base URL and timeout defaulting.
func TestNewClientDefaults(t *testing.T) {
	client := NewClient("", 0)
	assert.Equal(t, DefaultIndexURL, client.baseURL)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)

	trimmed := NewClient("https://index.example.org/pypi/", time.Second)
	assert.Equal(t, "https://index.example.org/pypi", trimmed.baseURL)
}

// TestDownloadFile tests streaming a release file to disk.
func TestDownloadFile(t *testing.T) {
	payload := []byte("archive bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	dest := filepath.Join(t.TempDir(), "foobar-1.0.tar.gz")

	err := client.DownloadFile(context.Background(), server.URL+"/foobar-1.0.tar.gz", dest)
	require.NoError(t, err)

	body, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, body)
}

// TestDownloadFileNotFound tests the error path for missing files.
func TestDownloadFileNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	dest := filepath.Join(t.TempDir(), "foobar-1.0.tar.gz")

	err := client.DownloadFile(context.Background(), server.URL+"/gone.tar.gz", dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

// TestSDistURL tests source distribution selection.
func TestSDistURL(t *testing.T) {
	meta := &Metadata{URLs: []ReleaseFile{
		{URL: "https://files.example.org/foobar-1.0-py3-none-any.whl", PackageType: "bdist_wheel"},
		{URL: "https://files.example.org/foobar-1.0.tar.gz", PackageType: "sdist"},
	}}
	assert.Equal(t, "https://files.example.org/foobar-1.0.tar.gz", meta.SDistURL())

	empty := &Metadata{}
	assert.Equal(t, "", empty.SDistURL())
}
