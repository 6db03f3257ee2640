package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cverad/connectome/pkg/bgraph"
	"github.com/cverad/connectome/pkg/bgraph/transform"
	"github.com/cverad/connectome/pkg/errors"
	"github.com/cverad/connectome/pkg/pipeline"
	"github.com/cverad/connectome/pkg/render"
	"github.com/cverad/connectome/pkg/store"
)

// analyzeRequest is the POST /v1/analyze body.
type analyzeRequest struct {
	// Name labels the stored result (e.g. a subject or session id).
	Name string `json:"name,omitempty"`

	// Matrix is the connectivity matrix as whitespace- or comma-separated
	// text, one row per line.
	Matrix string `json:"matrix"`

	Atlas           string `json:"atlas,omitempty"`
	CommunityMethod string `json:"community_method,omitempty"`
	Transform       string `json:"transform,omitempty"`
	Directed        bool   `json:"directed,omitempty"`
	Binarize        bool   `json:"binarize,omitempty"`
	Seed            int64  `json:"seed,omitempty"`
	Refresh         bool   `json:"refresh,omitempty"`
}

// analyzeResponse wraps the stored result id with the analysis outcome.
type analyzeResponse struct {
	ID        string           `json:"id"`
	GraphHash string           `json:"graph_hash"`
	Method    string           `json:"method"`
	Warnings  []errors.Warning `json:"warnings,omitempty"`
	Vertices  int              `json:"vertices"`
	Edges     int              `json:"edges"`
	Cached    bool             `json:"cached"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body: %v", err))
		return
	}

	start := time.Now()
	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Raw:             []byte(req.Matrix),
		Atlas:           req.Atlas,
		CommunityMethod: req.CommunityMethod,
		Transform:       transform.Kind(req.Transform),
		Directed:        req.Directed,
		Binarize:        req.Binarize,
		Seed:            req.Seed,
		Refresh:         req.Refresh,
		Formats:         []string{pipeline.FormatJSON},
		Logger:          s.logger,
	})
	if err != nil {
		s.metrics.analyses.WithLabelValues("error").Inc()
		writeError(w, err)
		return
	}
	s.metrics.analyses.WithLabelValues("ok").Inc()
	s.metrics.analysisDuration.Observe(time.Since(start).Seconds())

	rec := store.New(req.Name, res.GraphHash)
	if m, ok := res.Graph.GraphAttr("comm.method"); ok {
		rec.Method, _ = m.(string)
	}
	rec.Atlas = req.Atlas
	rec.Transform = req.Transform
	rec.Warnings = res.Warnings
	rec.Graph = res.Artifacts[pipeline.FormatJSON]
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, analyzeResponse{
		ID:        rec.ID,
		GraphHash: rec.GraphHash,
		Method:    rec.Method,
		Warnings:  res.Warnings,
		Vertices:  res.Stats.VertexCount,
		Edges:     res.Stats.EdgeCount,
		Cached:    res.CacheInfo.AnalysisHit,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidArgument, "invalid limit %q", q))
			return
		}
		limit = n
	}
	list, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	g, err := bgraph.Read(bytes.NewReader(rec.Graph))
	if err != nil {
		writeError(w, err)
		return
	}

	partition := r.URL.Query().Get("partition")
	if partition == "" {
		partition = pipeline.DefaultPartition
	}
	dot := render.ToDOT(g, render.Options{
		Partition:     partition,
		Labels:        r.URL.Query().Get("labels") == "true",
		WeightedEdges: g.Weighted(),
	})
	if r.URL.Query().Get("format") == "dot" {
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		_, _ = w.Write([]byte(dot))
		return
	}
	svg, err := render.RenderSVG(r.Context(), dot)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

// apiError is the JSON error body.
type apiError struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidArgument,
		errors.ErrCodeInvalidGraphType, errors.ErrCodeInvalidTransform,
		errors.ErrCodeInvalidMethod, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidMatrix:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeAtlasNotFound,
		errors.ErrCodeRegionNotFound, errors.ErrCodeFileNotFound,
		errors.ErrCodeResultNotFound:
		status = http.StatusNotFound
	case "":
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, apiError{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
