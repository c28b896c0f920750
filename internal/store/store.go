// Package store archives extraction runs: the raw payload snapshot plus the
// parsed list, so snapshots can be parsed again later.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/savedlist-cli/internal/db"
	"github.com/sells-group/savedlist-cli/internal/model"
)

// ErrNotFound is returned when an extraction ID is unknown.
var ErrNotFound = errors.New("store: extraction not found")

// ListFilter specifies criteria for listing extractions.
type ListFilter struct {
	Status model.ExtractionStatus `json:"status,omitempty"`
	Source string                 `json:"source,omitempty"`
	Limit  int                    `json:"limit,omitempty"`
	Offset int                    `json:"offset,omitempty"`
}

// Store defines the persistence interface for the extraction archive.
type Store interface {
	// SaveExtraction inserts e, or updates the parse outcome when e.ID
	// already exists. Missing ID and CreatedAt are filled in.
	SaveExtraction(ctx context.Context, e model.Extraction) (*model.Extraction, error)
	// GetExtraction returns the full record including payload and list.
	GetExtraction(ctx context.Context, id string) (*model.Extraction, error)
	// ListExtractions returns summaries, newest first, without payload or list.
	ListExtractions(ctx context.Context, filter ListFilter) ([]model.Extraction, error)

	Migrate(ctx context.Context) error
	Close() error
}

const defaultListLimit = 50

var extractionColumns = []string{"id", "source", "payload", "list", "place_count", "status", "error", "created_at"}

// extractionUpsert keeps the original snapshot and creation time on conflict.
var extractionUpsert = db.UpsertConfig{
	Table:        "extractions",
	Columns:      extractionColumns,
	ConflictKeys: []string{"id"},
	UpdateCols:   []string{"list", "place_count", "status", "error"},
}

// IsNotFound reports whether err means the extraction does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// prepare fills defaults and encodes the list for storage.
func prepare(e model.Extraction) (model.Extraction, []byte, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.Status == "" {
		e.Status = model.ExtractionStatusOK
	}
	e.PlaceCount = e.List.Len()

	if e.List == nil {
		return e, nil, nil
	}
	listJSON, err := json.Marshal(e.List)
	if err != nil {
		return e, nil, eris.Wrap(err, "store: marshal list")
	}
	return e, listJSON, nil
}

func decodeList(data []byte) (*model.SavedList, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var list model.SavedList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal list")
	}
	return &list, nil
}

func listLimit(filter ListFilter) int {
	if filter.Limit <= 0 {
		return defaultListLimit
	}
	return filter.Limit
}
