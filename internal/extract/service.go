// Package extract runs one extraction end to end: acquire the payload,
// parse it, archive the snapshot, and write the requested exports.
package extract

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/savedlist-cli/internal/acquire"
	"github.com/sells-group/savedlist-cli/internal/export"
	"github.com/sells-group/savedlist-cli/internal/model"
	"github.com/sells-group/savedlist-cli/internal/savedlist"
	"github.com/sells-group/savedlist-cli/internal/store"
)

// Options selects the exports written after a successful parse. Targets
// with explicit paths are written as given; Formats are written to OutDir
// under a name derived from the list.
type Options struct {
	Formats []string
	OutDir  string
	Targets []export.Target
}

// Result is the outcome of a successful run.
type Result struct {
	List         *model.SavedList `json:"list" yaml:"list"`
	Outputs      []export.Output  `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	ExtractionID string           `json:"extraction_id,omitempty" yaml:"extraction_id,omitempty"`
}

// Service wires the parser to the archive and exporters. A nil store
// disables archiving.
type Service struct {
	parser *savedlist.Parser
	store  store.Store
	log    *zap.Logger
}

// NewService creates a Service. st may be nil.
func NewService(st store.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.L()
	}
	return &Service{
		parser: savedlist.NewParser(log),
		store:  st,
		log:    log.With(zap.String("component", "extract")),
	}
}

// Run acquires the payload from src and processes it. Parse failures are
// archived as failed before being returned. Acquisition failures are not
// archived since there is no snapshot to keep. A failed archive write is
// logged and leaves Result.ExtractionID empty.
func (s *Service) Run(ctx context.Context, src acquire.Source, opts Options) (*Result, error) {
	log := s.log.With(zap.String("source", src.Name()))
	start := time.Now()
	log.Info("extract: starting")

	raw, err := src.Fetch(ctx)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: acquire %s", src.Name())
	}

	result, err := s.process(ctx, model.Extraction{Source: src.Name(), Payload: raw}, opts)
	if err != nil {
		return nil, err
	}

	log.Info("extract: complete",
		zap.String("name", result.List.Header.Name),
		zap.Int("places", result.List.Len()),
		zap.Int("outputs", len(result.Outputs)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// Reparse loads an archived snapshot, parses it again with the current
// heuristics, and updates the archived outcome in place.
func (s *Service) Reparse(ctx context.Context, id string, opts Options) (*Result, error) {
	if s.store == nil {
		return nil, eris.New("extract: reparse requires a store")
	}
	prev, err := s.store.GetExtraction(ctx, id)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: load extraction %s", id)
	}
	s.log.Info("extract: reparsing",
		zap.String("id", prev.ID),
		zap.String("previous_status", string(prev.Status)),
	)

	return s.process(ctx, model.Extraction{
		ID:        prev.ID,
		Source:    prev.Source,
		Payload:   prev.Payload,
		CreatedAt: prev.CreatedAt,
	}, opts)
}

func (s *Service) process(ctx context.Context, rec model.Extraction, opts Options) (*Result, error) {
	list, parseErr := s.parser.Parse(rec.Payload)
	if parseErr != nil {
		rec.Status = model.ExtractionStatusFailed
		rec.Error = parseErr.Error()
		s.archive(ctx, rec)
		return nil, eris.Wrapf(parseErr, "extract: parse %s", rec.Source)
	}

	rec.Status = model.ExtractionStatusOK
	rec.List = list
	result := &Result{List: list}
	if saved := s.archive(ctx, rec); saved != nil {
		result.ExtractionID = saved.ID
	}

	targets := append([]export.Target(nil), opts.Targets...)
	if len(opts.Formats) > 0 {
		defaults, err := export.DefaultTargets(list, opts.Formats, opts.OutDir)
		if err != nil {
			return nil, eris.Wrap(err, "extract: resolve outputs")
		}
		targets = append(targets, defaults...)
	}
	if len(targets) == 0 {
		return result, nil
	}

	outputs, err := export.WriteAll(ctx, list, targets)
	if err != nil {
		return nil, eris.Wrap(err, "extract: write outputs")
	}
	result.Outputs = outputs
	return result, nil
}

// archive saves rec and returns the stored row, or nil when there is no
// store or the write failed. Store failures are logged and never fail the
// extraction.
func (s *Service) archive(ctx context.Context, rec model.Extraction) *model.Extraction {
	if s.store == nil {
		return nil
	}
	saved, err := s.store.SaveExtraction(ctx, rec)
	if err != nil {
		s.log.Warn("extract: failed to archive extraction",
			zap.String("source", rec.Source),
			zap.String("status", string(rec.Status)),
			zap.Error(err),
		)
		return nil
	}
	s.log.Debug("extract: archived",
		zap.String("id", saved.ID),
		zap.String("status", string(saved.Status)),
	)
	return saved
}
