package model

import "strings"

// DefaultListName is used when a payload carries no recognizable list title.
const DefaultListName = "Google Maps Saved List"

// SavedList is a user-curated collection of places plus its header metadata.
// Places keep the order in which they appear in the source payload.
type SavedList struct {
	Header Header  `json:"header" yaml:"header"`
	Places []Place `json:"places" yaml:"places"`
}

// Header holds the title, description and creator of a saved list.
type Header struct {
	Name            string `json:"name" yaml:"name"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
	CreatorName     string `json:"creator_name,omitempty" yaml:"creator_name,omitempty"`
	CreatorImageURL string `json:"creator_image_url,omitempty" yaml:"creator_image_url,omitempty"`
}

// Place is a single entry of a saved list. Latitude and Longitude are in
// degrees; entries without a usable pair never become a Place.
type Place struct {
	Name      string  `json:"name" yaml:"name"`
	Address   string  `json:"address,omitempty" yaml:"address,omitempty"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Note      string  `json:"note,omitempty" yaml:"note,omitempty"`
	ImageURL  string  `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// HasCreator reports whether creator metadata was recovered.
func (h Header) HasCreator() bool {
	return strings.TrimSpace(h.CreatorName) != ""
}

// Len returns the number of places in the list.
func (l *SavedList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Places)
}
