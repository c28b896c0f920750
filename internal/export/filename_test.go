package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		base string
		ext  string
		want string
	}{
		{"spaces become hyphens", "Lisbon Coffee Trip", "csv", "Lisbon-Coffee-Trip.csv"},
		{"whitespace runs collapse", "Lisbon \t  Coffee", ".kml", "Lisbon-Coffee.kml"},
		{"invalid characters dropped", `Trips: 2024/25 <best>?`, "csv", "Trips-202425-best.csv"},
		{"leading and trailing hyphens trimmed", "  - Tapas -  ", "csv", "Tapas.csv"},
		{"nfkc normalization", "Ｃａｆｅ ﬁne", "csv", "Cafe-fine.csv"},
		{"blank falls back", "   ", "csv", "output.csv"},
		{"only invalid falls back", `<>:"/\|?*`, "geojson", "output.geojson"},
		{"dots only falls back", "..", "csv", "output.csv"},
		{"extension gets one dot", "List", "..xlsx", "List.xlsx"},
		{"unicode kept", "Cafés à Paris", "kml", "Cafés-à-Paris.kml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.base, tt.ext))
		})
	}
}
