package export

import (
	"github.com/sells-group/savedlist-cli/internal/model"
)

func sampleList() *model.SavedList {
	return &model.SavedList{
		Header: model.Header{
			Name:            "Lisbon Coffee",
			Description:     "Best flat whites",
			CreatorName:     "Ana",
			CreatorImageURL: "https://lh3.googleusercontent.com/a/ana",
		},
		Places: []model.Place{
			{
				Name:      "Copenhagen Coffee Lab",
				Address:   "R. Nova da Piedade 10, Lisboa",
				Latitude:  38.7139,
				Longitude: -9.1530,
				Note:      "Go early, \"cardamom\" buns",
				ImageURL:  "https://lh5.googleusercontent.com/p/abc=w400",
			},
			{
				Name:      "Fábrica Coffee Roasters",
				Latitude:  38.7168,
				Longitude: -9.1428,
			},
		},
	}
}
