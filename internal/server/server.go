// Package server exposes the search engine over HTTP: one-shot and batch
// searches, a step-by-step session for visualizers, and Prometheus metrics.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pdrpinto/gridpath"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxExtent bounds both grid dimensions accepted over HTTP.
const MaxExtent = 512

type point = [2]int

func toPoint(c gridpath.Coordinate) point { return point{c.X, c.Y} }
func toCoord(p point) gridpath.Coordinate { return gridpath.Coordinate{X: p[0], Y: p[1]} }

func toPoints(cs []gridpath.Coordinate) []point {
	out := make([]point, len(cs))
	for i, c := range cs {
		out[i] = toPoint(c)
	}
	return out
}

type gridRequest struct {
	W     int     `json:"w"`
	H     int     `json:"h"`
	Walls []point `json:"walls"`
}

type searchRequest struct {
	gridRequest
	Start point `json:"start"`
	Goal  point `json:"goal"`
}

type queryRequest struct {
	Start point `json:"start"`
	Goal  point `json:"goal"`
}

type batchRequest struct {
	gridRequest
	Queries []queryRequest `json:"queries"`
}

type searchResponse struct {
	Found    bool    `json:"found"`
	Path     []point `json:"path"`
	Cost     int     `json:"cost"`
	Expanded int     `json:"expanded"`
	Error    string  `json:"error,omitempty"`
}

type batchResponse struct {
	Results []searchResponse `json:"results"`
}

type snapshot struct {
	Step     int     `json:"step"`
	W        int     `json:"w"`
	H        int     `json:"h"`
	Walls    []point `json:"walls"`
	Open     []point `json:"open,omitempty"`
	Expanded []point `json:"expanded,omitempty"`
	Current  point   `json:"current"`
	Start    point   `json:"start"`
	Goal     point   `json:"goal"`
	State    string  `json:"state"`
	Done     bool    `json:"done"`
	Found    bool    `json:"found"`
	Path     []point `json:"path,omitempty"`
}

type session struct {
	grid        *gridpath.Grid
	start, goal gridpath.Coordinate
	stepper     *gridpath.Stepper
}

// Server holds the engine options and the current stepping session.
type Server struct {
	logger   *slog.Logger
	gatherer prometheus.Gatherer
	options  []gridpath.Option

	mu      sync.Mutex
	session *session
}

// New creates a server. gatherer may be nil, in which case /metrics is not mounted.
func New(logger *slog.Logger, gatherer prometheus.Gatherer, options ...gridpath.Option) *Server {
	return &Server{logger: logger, gatherer: gatherer, options: options}
}

// Handler returns the chi router for all endpoints.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/search", s.handleSearch)
	r.Post("/batch", s.handleBatch)
	r.Post("/init", s.handleInit)
	r.Get("/next", s.handleNext)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func buildGrid(req gridRequest) (*gridpath.Grid, error) {
	if req.W > MaxExtent || req.H > MaxExtent {
		return nil, fmt.Errorf("grid %dx%d exceeds %dx%d", req.W, req.H, MaxExtent, MaxExtent)
	}
	g, err := gridpath.NewGrid(req.H, req.W)
	if err != nil {
		return nil, err
	}
	for _, w := range req.Walls {
		if err := g.Set(toCoord(w), gridpath.Wall); err != nil {
			return nil, fmt.Errorf("wall: %w", err)
		}
	}
	return g, nil
}

func toResponse(result gridpath.Result) searchResponse {
	return searchResponse{
		Found:    result.Found,
		Path:     toPoints(result.Path),
		Cost:     result.TotalCost,
		Expanded: result.ExpandedNodes,
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var body searchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	g, err := buildGrid(body.gridRequest)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	result, err := gridpath.Search(r.Context(), g, toCoord(body.Start), toCoord(body.Goal), s.options...)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, toResponse(result))
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var body batchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	g, err := buildGrid(body.gridRequest)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	queries := make([]gridpath.Query, len(body.Queries))
	for i, q := range body.Queries {
		queries[i] = gridpath.Query{Start: toCoord(q.Start), Goal: toCoord(q.Goal)}
	}
	results, err := gridpath.SearchBatch(r.Context(), g, queries, s.options...)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	resp := batchResponse{Results: make([]searchResponse, len(results))}
	for i, res := range results {
		if res.Err != nil {
			resp.Results[i] = searchResponse{Path: []point{}, Error: res.Err.Error()}
			continue
		}
		resp.Results[i] = toResponse(res.Result)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func intParam(r *http.Request, name string, fallback int, valid func(int) bool) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(name)); err == nil && valid(v) {
		return v
	}
	return fallback
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := WallParams{
		Width:    intParam(r, "w", 40, func(v int) bool { return v > 4 && v <= MaxExtent }),
		Height:   intParam(r, "h", 25, func(v int) bool { return v > 4 && v <= MaxExtent }),
		Clusters: intParam(r, "clusters", 12, func(v int) bool { return v > 0 }),
		Steps:    intParam(r, "steps", 60, func(v int) bool { return v > 0 }),
		Density:  0.6,
		Seed:     time.Now().UnixNano(),
	}
	if v, err := strconv.ParseFloat(q.Get("density"), 64); err == nil && v >= 0 && v <= 1 {
		params.Density = v
	}
	if v, err := strconv.ParseInt(q.Get("seed"), 10, 64); err == nil {
		params.Seed = v
	}

	g, start, goal, err := RandomGrid(r.Context(), params)
	if err != nil {
		if r.Context().Err() != nil {
			s.logger.Debug("init abandoned", "error", err)
			return
		}
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	stepper, err := gridpath.NewStepper(g, start, goal, s.options...)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	s.mu.Lock()
	s.session = &session{grid: g, start: start, goal: goal, stepper: stepper}
	s.mu.Unlock()

	s.logger.Info("session initialized", "w", params.Width, "h", params.Height, "seed", params.Seed)
	s.writeJSON(w, http.StatusOK, map[string]any{"ok": true, "w": params.Width, "h": params.Height})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		s.writeError(w, http.StatusBadRequest, errors.New("engine not initialized"))
		return
	}
	st := s.session.stepper.Step()
	s.writeJSON(w, http.StatusOK, snapshot{
		Step:     st.StepIndex,
		W:        s.session.grid.Cols(),
		H:        s.session.grid.Rows(),
		Walls:    toPoints(s.session.grid.Walls()),
		Open:     toPoints(st.Open),
		Expanded: toPoints(st.Expanded),
		Current:  toPoint(st.Current),
		Start:    toPoint(s.session.start),
		Goal:     toPoint(s.session.goal),
		State:    st.State.String(),
		Done:     st.State.Terminal(),
		Found:    st.State == gridpath.StateFound,
		Path:     toPoints(st.Path),
	})
}

func statusFor(err error) int {
	if errors.Is(err, gridpath.ErrInvalidQuery) || errors.Is(err, gridpath.ErrOutOfBounds) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	} else {
		s.logger.Debug("request rejected", "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
