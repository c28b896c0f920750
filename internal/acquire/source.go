// Package acquire obtains raw list payload text from captured files or from
// the list page itself.
package acquire

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/savedlist-cli/internal/fetcher"
)

// maxPageBytes bounds a downloaded list page.
const maxPageBytes = 32 << 20

// Source produces raw payload text for the parser.
type Source interface {
	// Fetch returns the payload text.
	Fetch(ctx context.Context) (string, error)
	// Name describes where the payload came from, for logs and the archive.
	Name() string
}

// FileSource reads a captured payload, script, or saved page from disk.
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Fetch reads the file and, for saved pages, extracts the payload script.
func (s *FileSource) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", eris.Wrapf(err, "acquire: read %s", s.Path)
	}
	return FromDocument(string(data))
}

// Name returns the file path.
func (s *FileSource) Name() string { return "file:" + s.Path }

// HTTPSource downloads the list page and extracts the payload script. Lists
// that lazy-load more places than the first page carries are only partially
// captured this way; FileSource is the reliable path.
type HTTPSource struct {
	URL     string
	Fetcher fetcher.Fetcher
}

// NewHTTPSource creates an HTTPSource that downloads url through f.
func NewHTTPSource(url string, f fetcher.Fetcher) *HTTPSource {
	return &HTTPSource{URL: url, Fetcher: f}
}

// Fetch downloads the page and returns the sliced payload.
func (s *HTTPSource) Fetch(ctx context.Context) (string, error) {
	log := zap.L().With(zap.String("component", "acquire.http"), zap.String("url", s.URL))

	page, err := s.Fetcher.DownloadText(ctx, s.URL, maxPageBytes)
	if err != nil {
		return "", eris.Wrap(err, "acquire: download list page")
	}
	log.Debug("downloaded list page", zap.Int("bytes", len(page)))

	script, err := ExtractScript(page)
	if err != nil {
		return "", err
	}
	return SlicePayload(script), nil
}

// Name returns the list URL.
func (s *HTTPSource) Name() string { return s.URL }

// TextSource serves payload text that is already in memory, such as an HTTP
// request body or an archived snapshot.
type TextSource struct {
	Label string
	Text  string
}

// Fetch returns the text unchanged.
func (s TextSource) Fetch(context.Context) (string, error) { return s.Text, nil }

// Name returns the label.
func (s TextSource) Name() string { return s.Label }
