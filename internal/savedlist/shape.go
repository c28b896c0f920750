package savedlist

import (
	"math"
	"path"
	"strings"

	"github.com/sells-group/savedlist-cli/internal/jsonval"
	"github.com/sells-group/savedlist-cli/internal/model"
)

// Positions inside a place entry and its metadata block.
const (
	entryMetadata = 1
	entryName     = 2
	entryNote     = 3

	metadataAddress = 2
	metadataCoords  = 5

	coordsLat = 2
	coordsLon = 3
)

// creator is the extraction produced by matchCreator.
type creator struct {
	name     string
	imageURL string
}

// matchCreator matches [name, "http…", id, ...].
func matchCreator(v jsonval.Value) (creator, bool) {
	if !v.IsArray() || v.Len() < 3 {
		return creator{}, false
	}
	name, ok := v.Index(0).Str()
	if !ok {
		return creator{}, false
	}
	img, ok := v.Index(1).Str()
	if !ok || !hasHTTPPrefix(img) {
		return creator{}, false
	}
	if !v.Index(2).IsString() {
		return creator{}, false
	}
	return creator{name: name, imageURL: img}, true
}

// matchPlace applies the place-entry shape: len >= 3, [1] is a metadata
// array of len >= 6 whose [5] is an array of len >= 4 with numbers at 2 and
// 3, and [2] is a string. On match the entry is mapped to a Place; callers
// still filter blank names and missing coordinates.
func matchPlace(v jsonval.Value) (model.Place, bool) {
	if !v.IsArray() || v.Len() < 3 {
		return model.Place{}, false
	}
	meta := v.Index(entryMetadata)
	if !meta.IsArray() || meta.Len() < 6 {
		return model.Place{}, false
	}
	coords := meta.Index(metadataCoords)
	if !coords.IsArray() || coords.Len() < 4 {
		return model.Place{}, false
	}
	lat, ok := coords.Index(coordsLat).Num()
	if !ok {
		return model.Place{}, false
	}
	lon, ok := coords.Index(coordsLon).Num()
	if !ok {
		return model.Place{}, false
	}
	name, ok := v.Index(entryName).Str()
	if !ok {
		return model.Place{}, false
	}

	p := model.Place{
		Name:      strings.TrimSpace(name),
		Latitude:  lat,
		Longitude: lon,
		Address:   strings.TrimSpace(meta.Index(metadataAddress).StrOr("")),
		Note:      strings.TrimSpace(v.Index(entryNote).StrOr("")),
	}
	if img, found := jsonval.FindMatch(v, matchImageURL); found {
		p.ImageURL = img
	}
	return p, true
}

// isContainer reports whether any direct child of v is place-shaped.
func isContainer(v jsonval.Value) bool {
	for _, child := range v.Items() {
		if _, ok := matchPlace(child); ok {
			return true
		}
	}
	return false
}

// usableCoordinates rejects non-finite values, out-of-range degrees and the
// (0,0) pair, which the payload uses when a place has no position.
func usableCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return false
	}
	return lat != 0 || lon != 0
}

var imageHostFragments = []string{
	"googleusercontent.com",
	"ggpht.com",
	"gstatic.com",
	"//img.",
	".img.",
	"/images/",
	"/photos/",
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".svg":  true,
}

func matchImageURL(v jsonval.Value) (string, bool) {
	s, ok := v.Str()
	if !ok || !looksLikeImageURL(s) {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// looksLikeImageURL requires an http(s) URL that either points at a known
// image host or ends in a common image extension.
func looksLikeImageURL(s string) bool {
	s = strings.TrimSpace(s)
	if !hasHTTPPrefix(s) {
		return false
	}
	lower := strings.ToLower(s)
	for _, frag := range imageHostFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	return imageExtensions[path.Ext(lower)]
}

func hasHTTPPrefix(s string) bool {
	return len(s) >= 4 && strings.EqualFold(s[:4], "http")
}
