package images

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Some webcam servers reject requests without a browser-like User-Agent.
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"

// Fetcher retrieves webcam images and pages over HTTP.
type Fetcher struct {
	HTTPClient *http.Client
	UserAgent  string
}

// NewFetcher creates a new image fetcher with a bounded timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		UserAgent: defaultUserAgent,
	}
}

// Download fetches raw image bytes from a URL.
func (f *Fetcher) Download(ctx context.Context, url string) ([]byte, error) {
	body, err := f.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty image body from %s", url)
	}
	return body, nil
}

// DownloadBase64 fetches an image and returns it base64-encoded, for sources
// that must be inlined rather than referenced by URL.
func (f *Fetcher) DownloadBase64(ctx context.Context, url string) (string, error) {
	data, err := f.Download(ctx, url)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// FetchPage fetches an HTML page as a string.
func (f *Fetcher) FetchPage(ctx context.Context, url string) (string, error) {
	body, err := f.get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	return string(body), nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
