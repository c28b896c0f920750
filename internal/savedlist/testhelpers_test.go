package savedlist

import (
	"fmt"
	"strings"
)

// scenarioPayload is the reference payload: creator block, title,
// description and one place with an image.
const scenarioPayload = `[["Creator","https://ex/avatar.png","id"],"My List","Desc",[[null,[null,null,"123 St",null,"",[null,null,51.5,-0.1]],"Place A","note",[],[],[],[],[],[],[],["https://img.example/p.jpg"]]]]`

// placeEntry renders a minimal place-shaped entry.
func placeEntry(name, address string, lat, lon float64) string {
	return fmt.Sprintf(`[null,[null,null,%q,null,"",[null,null,%v,%v]],%q,null]`, address, lat, lon, name)
}

func arr(items ...string) string {
	return "[" + strings.Join(items, ",") + "]"
}
