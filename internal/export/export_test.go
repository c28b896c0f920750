package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/savedlist-cli/internal/model"
)

func TestLookup(t *testing.T) {
	e, err := Lookup(" KML ")
	require.NoError(t, err)
	assert.Equal(t, "kml", e.Format())

	_, err = Lookup("gpx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "gpx"`)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"csv", "geojson", "kml", "shp", "xlsx"}, Formats())
}

func TestDefaultTargets(t *testing.T) {
	targets, err := DefaultTargets(sampleList(), []string{"csv", "KML", "csv"}, "out")
	require.NoError(t, err)
	assert.Equal(t, []Target{
		{Format: "csv", Path: filepath.Join("out", "Lisbon-Coffee.csv")},
		{Format: "kml", Path: filepath.Join("out", "Lisbon-Coffee.kml")},
	}, targets)

	_, err = DefaultTargets(sampleList(), []string{"pdf"}, "out")
	assert.Error(t, err)
}

func TestDefaultTargets_UnnamedList(t *testing.T) {
	targets, err := DefaultTargets(&model.SavedList{}, []string{"geojson"}, ".")
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "Google-Maps-Saved-List.geojson", targets[0].Path)
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	list := sampleList()
	targets, err := DefaultTargets(list, Formats(), dir)
	require.NoError(t, err)

	outputs, err := WriteAll(context.Background(), list, targets)
	require.NoError(t, err)
	require.Len(t, outputs, len(targets))

	for i, out := range outputs {
		assert.Equal(t, targets[i].Format, out.Format)
		assert.Equal(t, targets[i].Path, out.Path)
		assert.Equal(t, 2, out.Places)
		info, err := os.Stat(out.Path)
		require.NoError(t, err, out.Format)
		assert.Greater(t, info.Size(), int64(0), out.Format)
	}
}

func TestWriteAll_UnknownFormat(t *testing.T) {
	_, err := WriteAll(context.Background(), sampleList(), []Target{{Format: "pdf", Path: filepath.Join(t.TempDir(), "x.pdf")}})
	assert.Error(t, err)
}

func TestWriteAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WriteAll(ctx, sampleList(), []Target{{Format: "csv", Path: filepath.Join(t.TempDir(), "x.csv")}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteAll_NilList(t *testing.T) {
	_, err := WriteAll(context.Background(), nil, nil)
	assert.Error(t, err)
}
