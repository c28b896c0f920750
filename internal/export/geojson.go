package export

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/savedlist-cli/internal/model"
)

// GeoJSON writes a FeatureCollection of WGS84 points.
type GeoJSON struct{}

// Format implements Exporter.
func (GeoJSON) Format() string { return "geojson" }

// Extension implements Exporter.
func (GeoJSON) Extension() string { return ".geojson" }

// Write implements Exporter.
func (GeoJSON) Write(ctx context.Context, list *model.SavedList, path string) error {
	fc := buildFeatureCollection(list)
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return eris.Wrap(err, "geojson export: marshal")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	if _, err := f.Write(append(data, '\n')); err != nil {
		return eris.Wrap(err, "geojson export: write")
	}
	return f.Close()
}

func buildFeatureCollection(list *model.SavedList) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(list.Places))}
	if len(list.Places) == 0 {
		return fc
	}

	bounds := geom.NewBounds(geom.XY)
	for i, p := range list.Places {
		pt := geom.NewPointFlat(geom.XY, []float64{p.Longitude, p.Latitude}).SetSRID(4326)
		bounds.Extend(pt)
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         strconv.Itoa(i + 1),
			Geometry:   pt,
			Properties: featureProperties(list.Header.Name, p),
		})
	}
	fc.BBox = bounds
	return fc
}

func featureProperties(listName string, p model.Place) map[string]any {
	props := map[string]any{
		"list": listName,
		"name": p.Name,
	}
	if p.Address != "" {
		props["address"] = p.Address
	}
	if p.Note != "" {
		props["note"] = p.Note
	}
	if p.ImageURL != "" {
		props["image_url"] = p.ImageURL
	}
	return props
}
