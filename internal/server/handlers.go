package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/savedlist-cli/internal/acquire"
	"github.com/sells-group/savedlist-cli/internal/extract"
	"github.com/sells-group/savedlist-cli/internal/model"
	"github.com/sells-group/savedlist-cli/internal/payload"
	"github.com/sells-group/savedlist-cli/internal/savedlist"
	"github.com/sells-group/savedlist-cli/internal/store"
)

const extractionIDHeader = "X-Extraction-Id"

// Error kinds reported in 4xx bodies.
const (
	kindBadRequest       = "bad_request"
	kindTooLarge         = "payload_too_large"
	kindPayloadFormat    = "payload_format"
	kindMissingContainer = "missing_places_container"
	kindNotFound         = "not_found"
	kindArchiveDisabled  = "archive_disabled"
	kindInternal         = "internal"
)

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parse accepts a raw payload body and responds with the parsed list.
func (s *Server) parse(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes()))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abort(w, http.StatusRequestEntityTooLarge, kindTooLarge, "payload exceeds size limit")
			return
		}
		abort(w, http.StatusBadRequest, kindBadRequest, "could not read request body")
		return
	}
	if len(body) == 0 {
		abort(w, http.StatusBadRequest, kindBadRequest, "request body is empty")
		return
	}

	src := acquire.TextSource{Label: "http:" + clientAddr(r), Text: string(body)}
	res, err := s.svc.Run(r.Context(), src, extract.Options{})
	if err != nil {
		switch {
		case payload.IsFormatError(err):
			abort(w, http.StatusUnprocessableEntity, kindPayloadFormat, err.Error())
		case savedlist.IsMissingContainer(err):
			abort(w, http.StatusUnprocessableEntity, kindMissingContainer, err.Error())
		default:
			s.log.Error("server: parse failed", zap.Error(err))
			abort(w, http.StatusInternalServerError, kindInternal, "extraction failed")
		}
		return
	}

	if res.ExtractionID != "" {
		w.Header().Set(extractionIDHeader, res.ExtractionID)
	}
	writeJSON(w, http.StatusOK, res.List)
}

func (s *Server) listExtractions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		abort(w, http.StatusServiceUnavailable, kindArchiveDisabled, "extraction archive is disabled")
		return
	}

	q := r.URL.Query()
	filter := store.ListFilter{
		Status: model.ExtractionStatus(q.Get("status")),
		Source: q.Get("source"),
	}
	var err error
	if filter.Limit, err = intParam(q.Get("limit")); err != nil {
		abort(w, http.StatusBadRequest, kindBadRequest, "invalid limit")
		return
	}
	if filter.Offset, err = intParam(q.Get("offset")); err != nil {
		abort(w, http.StatusBadRequest, kindBadRequest, "invalid offset")
		return
	}
	switch filter.Status {
	case "", model.ExtractionStatusOK, model.ExtractionStatusFailed:
	default:
		abort(w, http.StatusBadRequest, kindBadRequest, "invalid status")
		return
	}

	runs, err := s.store.ListExtractions(r.Context(), filter)
	if err != nil {
		s.log.Error("server: list extractions failed", zap.Error(err))
		abort(w, http.StatusInternalServerError, kindInternal, "could not list extractions")
		return
	}
	if runs == nil {
		runs = []model.Extraction{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) getExtraction(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		abort(w, http.StatusServiceUnavailable, kindArchiveDisabled, "extraction archive is disabled")
		return
	}

	id := chi.URLParam(r, "id")
	rec, err := s.store.GetExtraction(r.Context(), id)
	if err != nil {
		if store.IsNotFound(err) {
			abort(w, http.StatusNotFound, kindNotFound, "extraction not found")
			return
		}
		s.log.Error("server: get extraction failed", zap.String("id", id), zap.Error(err))
		abort(w, http.StatusInternalServerError, kindInternal, "could not load extraction")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// intParam parses an optional non-negative integer query parameter.
func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

func clientAddr(r *http.Request) string {
	if r.RemoteAddr == "" {
		return "unknown"
	}
	return r.RemoteAddr
}
