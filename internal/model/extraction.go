package model

import "time"

// ExtractionStatus represents the outcome of one extraction run.
type ExtractionStatus string

const (
	ExtractionStatusOK     ExtractionStatus = "ok"
	ExtractionStatusFailed ExtractionStatus = "failed"
)

// Extraction is an archived parse of a single payload snapshot. The raw
// payload is kept so the snapshot can be parsed again once the heuristics
// are recalibrated against newer payload shapes.
type Extraction struct {
	ID         string           `json:"id"`
	Source     string           `json:"source"`
	Payload    string           `json:"-"`
	List       *SavedList       `json:"list,omitempty"`
	PlaceCount int              `json:"place_count"`
	Status     ExtractionStatus `json:"status"`
	Error      string           `json:"error,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}
