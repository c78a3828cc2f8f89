// Package covers fetches cover image bytes from the vendor CDN during
// catalog sync.
package covers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	catalogapp "github.com/shelfbridge/backend/internal/application/catalog"
)

// maxImageSize limits cover downloads to prevent memory exhaustion
const maxImageSize = 5 * 1024 * 1024 // 5MB

// HTTPFetcher downloads cover images over HTTP
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a cover fetcher with the given timeout
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads the image at url and returns its bytes and content type
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("cover fetch returned HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return data, contentType, nil
}

// Ensure HTTPFetcher implements CoverFetcher
var _ catalogapp.CoverFetcher = (*HTTPFetcher)(nil)
