package export

import (
	"context"
	"encoding/csv"
	"strconv"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/sells-group/savedlist-cli/internal/model"
)

// csvRow is one CSV record. Coordinates are pre-formatted so the output is
// culture-invariant and never uses exponent notation.
type csvRow struct {
	ListName  string `csv:"ListName"`
	PlaceName string `csv:"PlaceName"`
	Address   string `csv:"Address"`
	Latitude  string `csv:"Latitude"`
	Longitude string `csv:"Longitude"`
	Note      string `csv:"Note"`
	ImageURL  string `csv:"ImageUrl"`
}

// CSV writes one row per place with a header row, even for empty lists.
type CSV struct{}

// Format implements Exporter.
func (CSV) Format() string { return "csv" }

// Extension implements Exporter.
func (CSV) Extension() string { return ".csv" }

// Write implements Exporter.
func (CSV) Write(ctx context.Context, list *model.SavedList, path string) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)
	if err := enc.EncodeHeader(csvRow{}); err != nil {
		return eris.Wrap(err, "csv export: write header")
	}

	for _, p := range list.Places {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := enc.Encode(newCSVRow(list.Header.Name, p)); err != nil {
			return eris.Wrap(err, "csv export: write row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "csv export: flush")
	}
	return f.Close()
}

func newCSVRow(listName string, p model.Place) csvRow {
	return csvRow{
		ListName:  listName,
		PlaceName: p.Name,
		Address:   p.Address,
		Latitude:  formatCoord(p.Latitude),
		Longitude: formatCoord(p.Longitude),
		Note:      p.Note,
		ImageURL:  p.ImageURL,
	}
}

// formatCoord renders a coordinate with the shortest exact decimal form.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
