// Package pypi provides a client for the PyPI JSON API.
package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultIndexURL is the canonical PyPI JSON API base.
const DefaultIndexURL = "https://pypi.org/pypi"

// Metadata is a release metadata document returned by the index.
type Metadata struct {
	Info Info          `json:"info"`
	URLs []ReleaseFile `json:"urls"`
}

// Info holds the descriptive part of release metadata.
type Info struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Summary      string   `json:"summary"`
	HomePage     string   `json:"home_page"`
	License      string   `json:"license"`
	Classifiers  []string `json:"classifiers"`
	RequiresDist []string `json:"requires_dist"`
}

// ReleaseFile describes one downloadable file of a release.
type ReleaseFile struct {
	URL         string            `json:"url"`
	Filename    string            `json:"filename"`
	PackageType string            `json:"packagetype"`
	Size        int64             `json:"size"`
	Digests     map[string]string `json:"digests"`
}

// Client queries a package index for release metadata. It is constructed
// explicitly and passed to collaborators; there is no package-level
// instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the given index base URL. An empty
// baseURL selects DefaultIndexURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultIndexURL
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ReleaseMetadata fetches metadata for a package release. An empty version
// selects the latest release.
func (c *Client) ReleaseMetadata(ctx context.Context, name, version string) (*Metadata, error) {
	url := fmt.Sprintf("%s/%s/json", c.baseURL, name)
	if version != "" {
		url = fmt.Sprintf("%s/%s/%s/json", c.baseURL, name, version)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build index request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("package %s (version %q) not found on index", name, version)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index returned status %d", resp.StatusCode)
	}

	var metadata Metadata
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode index response: %w", err)
	}
	return &metadata, nil
}

// DownloadFile streams url into the file at dest.
func (c *Client) DownloadFile(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download of %s returned status %d", url, resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}

// SDistURL returns the download URL of the release's source distribution,
// or an empty string when the release ships none.
func (m *Metadata) SDistURL() string {
	for _, file := range m.URLs {
		if file.PackageType == "sdist" {
			return file.URL
		}
	}
	return ""
}
