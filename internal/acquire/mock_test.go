package acquire

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// --- Fetcher Mock ---

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *mockFetcher) DownloadText(ctx context.Context, url string, maxBytes int64) (string, error) {
	args := m.Called(ctx, url, maxBytes)
	return args.String(0), args.Error(1)
}
