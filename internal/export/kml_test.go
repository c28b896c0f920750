package export

import (
	"context"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/savedlist-cli/internal/model"
)

func TestKMLWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.kml")
	require.NoError(t, KML{}.Write(context.Background(), sampleList(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, text, `<kml xmlns="http://www.opengis.net/kml/2.2">`)
	assert.Contains(t, text, "<coordinates>-9.153,38.7139,0</coordinates>")
	assert.Contains(t, text, "&#34;cardamom&#34;")

	var doc kmlRoot
	require.NoError(t, xml.Unmarshal(data, &doc))
	assert.Equal(t, "Lisbon Coffee", doc.Document.Name)
	assert.Equal(t, "Best flat whites", doc.Document.Description)
	require.NotNil(t, doc.Document.ExtendedData)
	assert.Equal(t, kmlData{Name: "Creator", Value: "Ana"}, doc.Document.ExtendedData.Data[0])

	require.Len(t, doc.Document.Placemarks, 2)
	first := doc.Document.Placemarks[0]
	assert.Equal(t, "Copenhagen Coffee Lab", first.Name)
	assert.Equal(t,
		"R. Nova da Piedade 10, Lisboa\nGo early, \"cardamom\" buns\nImage: https://lh5.googleusercontent.com/p/abc=w400",
		first.Description)
	require.NotNil(t, first.ExtendedData)
	assert.Len(t, first.ExtendedData.Data, 3)

	second := doc.Document.Placemarks[1]
	assert.Empty(t, second.Description)
	assert.Nil(t, second.ExtendedData)
	assert.Equal(t, "-9.1428,38.7168,0", second.Point.Coordinates)
}

func TestKMLWrite_NoCreatorNoPlaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.kml")
	list := &model.SavedList{Header: model.Header{Name: model.DefaultListName}}
	require.NoError(t, KML{}.Write(context.Background(), list, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<name>Google Maps Saved List</name>")
	assert.NotContains(t, string(data), "Placemark")
	assert.NotContains(t, string(data), "ExtendedData")
}

func TestExtendedData(t *testing.T) {
	assert.Nil(t, extendedData("Address", "", "Note", ""))

	ed := extendedData("Address", "Rua 1", "Note", "")
	require.NotNil(t, ed)
	assert.Equal(t, []kmlData{{Name: "Address", Value: "Rua 1"}}, ed.Data)
}
