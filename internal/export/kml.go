package export

import (
	"context"
	"encoding/xml"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/savedlist-cli/internal/model"
)

const kmlNamespace = "http://www.opengis.net/kml/2.2"

type kmlRoot struct {
	XMLName  xml.Name    `xml:"kml"`
	Xmlns    string      `xml:"xmlns,attr"`
	Document kmlDocument `xml:"Document"`
}

type kmlDocument struct {
	Name         string           `xml:"name"`
	Description  string           `xml:"description,omitempty"`
	ExtendedData *kmlExtendedData `xml:"ExtendedData,omitempty"`
	Placemarks   []kmlPlacemark   `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name         string           `xml:"name"`
	Description  string           `xml:"description,omitempty"`
	ExtendedData *kmlExtendedData `xml:"ExtendedData,omitempty"`
	Point        kmlPoint         `xml:"Point"`
}

type kmlExtendedData struct {
	Data []kmlData `xml:"Data"`
}

type kmlData struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

type kmlPoint struct {
	Coordinates string `xml:"coordinates"`
}

// KML writes a KML 2.2 document with one Placemark per place.
type KML struct{}

// Format implements Exporter.
func (KML) Format() string { return "kml" }

// Extension implements Exporter.
func (KML) Extension() string { return ".kml" }

// Write implements Exporter.
func (KML) Write(ctx context.Context, list *model.SavedList, path string) error {
	doc := buildKML(list)
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	if _, err := f.WriteString(xml.Header); err != nil {
		return eris.Wrap(err, "kml export: write header")
	}
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return eris.Wrap(err, "kml export: encode")
	}
	if err := enc.Close(); err != nil {
		return eris.Wrap(err, "kml export: flush")
	}
	if _, err := f.WriteString("\n"); err != nil {
		return eris.Wrap(err, "kml export: write trailer")
	}
	return f.Close()
}

func buildKML(list *model.SavedList) kmlRoot {
	doc := kmlDocument{
		Name:        list.Header.Name,
		Description: list.Header.Description,
		Placemarks:  make([]kmlPlacemark, 0, len(list.Places)),
	}
	if list.Header.HasCreator() {
		doc.ExtendedData = extendedData(
			"Creator", list.Header.CreatorName,
			"CreatorImageUrl", list.Header.CreatorImageURL,
		)
	}

	for _, p := range list.Places {
		doc.Placemarks = append(doc.Placemarks, kmlPlacemark{
			Name:        p.Name,
			Description: placeDescription(p),
			ExtendedData: extendedData(
				"Address", p.Address,
				"Note", p.Note,
				"ImageUrl", p.ImageURL,
			),
			Point: kmlPoint{Coordinates: formatCoord(p.Longitude) + "," + formatCoord(p.Latitude) + ",0"},
		})
	}

	return kmlRoot{Xmlns: kmlNamespace, Document: doc}
}

// placeDescription joins the non-empty address, note and image lines.
func placeDescription(p model.Place) string {
	var lines []string
	if p.Address != "" {
		lines = append(lines, p.Address)
	}
	if p.Note != "" {
		lines = append(lines, p.Note)
	}
	if p.ImageURL != "" {
		lines = append(lines, "Image: "+p.ImageURL)
	}
	return strings.Join(lines, "\n")
}

// extendedData builds Data elements from name/value pairs, skipping empty
// values. It returns nil when every value is empty.
func extendedData(pairs ...string) *kmlExtendedData {
	var ed kmlExtendedData
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		ed.Data = append(ed.Data, kmlData{Name: pairs[i], Value: pairs[i+1]})
	}
	if len(ed.Data) == 0 {
		return nil
	}
	return &ed
}
