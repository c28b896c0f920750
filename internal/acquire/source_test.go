package acquire

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFileSource_BarePayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(path, []byte(`[["Trip"]]`), 0o644))

	src := NewFileSource(path)
	text, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `[["Trip"]]`, text)
	assert.Equal(t, "file:"+path, src.Name())
}

func TestFileSource_SavedPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.html")
	require.NoError(t, os.WriteFile(path, []byte(listPage), 0o644))

	text, err := NewFileSource(path).Fetch(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "Cafe Trip")
}

func TestFileSource_Missing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.json")).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acquire: read")
}

func TestHTTPSource_Fetch(t *testing.T) {
	f := new(mockFetcher)
	f.On("DownloadText", mock.Anything, "https://maps.example/list/1", int64(maxPageBytes)).
		Return(listPage, nil)

	src := NewHTTPSource("https://maps.example/list/1", f)
	text, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "Cafe Trip")
	assert.Equal(t, "https://maps.example/list/1", src.Name())
	f.AssertExpectations(t)
}

func TestHTTPSource_DownloadError(t *testing.T) {
	f := new(mockFetcher)
	f.On("DownloadText", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("http 404 from https://maps.example/list/1"))

	_, err := NewHTTPSource("https://maps.example/list/1", f).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "download list page")
}

func TestHTTPSource_NoPayloadScript(t *testing.T) {
	f := new(mockFetcher)
	f.On("DownloadText", mock.Anything, mock.Anything, mock.Anything).
		Return("<html><head></head><body>consent wall</body></html>", nil)

	_, err := NewHTTPSource("https://maps.example/list/1", f).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrScriptNotFound)
}

func TestTextSource(t *testing.T) {
	src := TextSource{Label: "request", Text: "[1]"}
	text, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[1]", text)
	assert.Equal(t, "request", src.Name())
}
