package export

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/savedlist-cli/internal/model"
)

// xlsxSheet is the name of the single worksheet.
const xlsxSheet = "Places"

// xlsxColumns mirrors the CSV header.
var xlsxColumns = []string{"ListName", "PlaceName", "Address", "Latitude", "Longitude", "Note", "ImageUrl"}

// XLSX writes a workbook with one "Places" sheet. Coordinates are numeric cells.
type XLSX struct{}

// Format implements Exporter.
func (XLSX) Format() string { return "xlsx" }

// Extension implements Exporter.
func (XLSX) Extension() string { return ".xlsx" }

// Write implements Exporter.
func (XLSX) Write(ctx context.Context, list *model.SavedList, path string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(xlsxSheet)
	if err != nil {
		return eris.Wrap(err, "xlsx export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range xlsxColumns {
		header.AddCell().SetString(col)
	}

	for _, p := range list.Places {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := sheet.AddRow()
		row.AddCell().SetString(list.Header.Name)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Address)
		row.AddCell().SetFloat(p.Latitude)
		row.AddCell().SetFloat(p.Longitude)
		row.AddCell().SetString(p.Note)
		row.AddCell().SetString(p.ImageURL)
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "xlsx export: save %s", path)
	}
	return nil
}
