package export

import (
	"context"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/sells-group/savedlist-cli/internal/model"
)

// dbfTextLen is the widest character field a DBF record can hold.
const dbfTextLen = 254

var shapeFields = []shp.Field{
	shp.StringField("NAME", dbfTextLen),
	shp.StringField("ADDRESS", dbfTextLen),
	shp.StringField("NOTE", dbfTextLen),
	shp.StringField("IMAGE", dbfTextLen),
}

// Shapefile writes an ESRI POINT shapefile (.shp, .shx, .dbf) with place
// attributes. Text attributes are cut to the DBF field width.
type Shapefile struct{}

// Format implements Exporter.
func (Shapefile) Format() string { return "shp" }

// Extension implements Exporter.
func (Shapefile) Extension() string { return ".shp" }

// Write implements Exporter.
func (Shapefile) Write(ctx context.Context, list *model.SavedList, path string) error {
	base := strings.TrimSuffix(path, ".shp")

	w, err := shp.Create(base+".shp", shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "shapefile export: create %s", path)
	}
	if err := w.SetFields(shapeFields); err != nil {
		w.Close()
		return eris.Wrap(err, "shapefile export: set fields")
	}

	for _, p := range list.Places {
		if err := ctx.Err(); err != nil {
			w.Close()
			return err
		}
		row := int(w.Write(&shp.Point{X: p.Longitude, Y: p.Latitude}))
		for i, v := range []string{p.Name, p.Address, p.Note, p.ImageURL} {
			if err := w.WriteAttribute(row, i, truncateBytes(v, dbfTextLen)); err != nil {
				w.Close()
				return eris.Wrapf(err, "shapefile export: write attribute %d", i)
			}
		}
	}
	w.Close()

	// go-shp v0.1.1 names the attribute table "<base>dbf".
	if err := os.Rename(base+"dbf", base+".dbf"); err != nil {
		return eris.Wrap(err, "shapefile export: rename dbf")
	}
	return nil
}

// truncateBytes cuts s to at most n bytes without splitting a rune.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
