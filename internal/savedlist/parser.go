// Package savedlist recovers a typed saved list from the positional,
// schema-less array payload embedded in a Google Maps list page.
//
// The payload has no public schema and drifts over time, so extraction is
// heuristic: small shape predicates recognize the creator block and place
// entries, and a generic depth-first search locates them at any depth.
package savedlist

import (
	"go.uber.org/zap"

	"github.com/sells-group/savedlist-cli/internal/jsonval"
	"github.com/sells-group/savedlist-cli/internal/model"
	"github.com/sells-group/savedlist-cli/internal/payload"
)

// Parser turns raw payload text into a SavedList. It holds no mutable
// state and is safe for concurrent use.
type Parser struct {
	log *zap.Logger
}

// NewParser returns a Parser that logs diagnostics to log (nil uses the
// global logger).
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.L()
	}
	return &Parser{log: log.With(zap.String("component", "savedlist.parser"))}
}

// Parse normalizes, decodes and extracts raw. Structural failures are
// returned as *payload.FormatError or *MissingContainerError and no partial
// list is produced.
func (p *Parser) Parse(raw string) (*model.SavedList, error) {
	text, strategy, err := payload.NormalizeWithStrategy(raw)
	if err != nil {
		return nil, err
	}

	root, err := jsonval.Decode(text)
	if err != nil {
		return nil, payload.NewFormatError("decode normalized payload", text, err)
	}

	list, err := p.ParseValue(root)
	if err != nil {
		return nil, err
	}

	p.log.Debug("parsed saved list",
		zap.String("strategy", strategy),
		zap.String("name", list.Header.Name),
		zap.Int("places", len(list.Places)),
	)
	return list, nil
}

// ParseValue extracts a SavedList from an already decoded tree.
func (p *Parser) ParseValue(root jsonval.Value) (*model.SavedList, error) {
	header, err := ExtractHeader(root)
	if err != nil {
		return nil, err
	}
	places, err := ExtractPlaces(root)
	if err != nil {
		return nil, err
	}
	return &model.SavedList{Header: header, Places: places}, nil
}

// Parse is a convenience wrapper around a Parser using the global logger.
func Parse(raw string) (*model.SavedList, error) {
	return NewParser(nil).Parse(raw)
}
