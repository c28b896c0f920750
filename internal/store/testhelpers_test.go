package store

import (
	"time"

	"github.com/sells-group/savedlist-cli/internal/model"
)

func sampleExtraction() model.Extraction {
	return model.Extraction{
		Source:  "file:list.json",
		Payload: `)]}'` + "\n" + `[["Tapas"]]`,
		List: &model.SavedList{
			Header: model.Header{Name: "Tapas"},
			Places: []model.Place{
				{Name: "Bar Tomas", Latitude: 41.39, Longitude: 2.13},
				{Name: "El Xampanyet", Latitude: 41.38, Longitude: 2.18},
			},
		},
		Status:    model.ExtractionStatusOK,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}
