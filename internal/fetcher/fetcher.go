// Package fetcher downloads list pages over HTTP with per-host rate limiting
// and bounded retries.
package fetcher

import (
	"context"
	"io"
)

// Fetcher defines the interface for downloading remote pages.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadText fetches the URL and returns the body as text. A body over
	// maxBytes is an error. maxBytes <= 0 means no limit.
	DownloadText(ctx context.Context, url string, maxBytes int64) (string, error)
}
