package savedlist

import (
	"github.com/sells-group/savedlist-cli/internal/jsonval"
	"github.com/sells-group/savedlist-cli/internal/model"
	"github.com/sells-group/savedlist-cli/internal/payload"
)

// ExtractPlaces locates the places container anywhere in the tree and maps
// each place-shaped child, in source order. Children that are not
// place-shaped are skipped, as are entries with a blank name or without
// usable coordinates. Duplicates are kept.
func ExtractPlaces(root jsonval.Value) ([]model.Place, error) {
	if !root.IsArray() {
		return nil, payload.NewFormatError("root is a "+root.Kind().String()+", want array", "", nil)
	}

	container, ok := jsonval.Find(root, func(v jsonval.Value) bool {
		return v.IsArray() && isContainer(v)
	})
	if !ok {
		return nil, &MissingContainerError{Nodes: countNodes(root)}
	}

	places := make([]model.Place, 0, container.Len())
	for _, child := range container.Items() {
		p, ok := matchPlace(child)
		if !ok || p.Name == "" || !usableCoordinates(p.Latitude, p.Longitude) {
			continue
		}
		places = append(places, p)
	}
	return places, nil
}

func countNodes(root jsonval.Value) int {
	n := 0
	jsonval.Walk(root, func(jsonval.Value, int) jsonval.Action {
		n++
		return jsonval.Continue
	})
	return n
}
