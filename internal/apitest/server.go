// SPDX-License-Identifier: MIT

// Package apitest runs an in-process fake of the graph service for tests.
//
// The fake mirrors the real routes, status codes and JSON shapes, emits
// timestamps in the HTTP-date form the real service uses, and records
// every request it receives.
package apitest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/katalvlaran/tourcanvas/api"
	"github.com/katalvlaran/tourcanvas/tour"
)

// Token is the bearer credential the fake accepts.
const Token = "test-token"

// Request is one recorded call.
type Request struct {
	Method    string
	Path      string
	Query     string
	RequestID string
	Auth      string
	Body      []byte
}

// Solver computes a tour for a stored graph.
type Solver func(g api.GraphData, algo string) (path []string, cost float64)

type storedGraph struct {
	name      string
	data      json.RawMessage
	createdAt time.Time
	updatedAt time.Time
}

type storedRun struct {
	id        int64
	algorithm string
	path      []string
	cost      float64
	seconds   float64
	createdAt time.Time
}

// Server is the fake service.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	graphs    map[int64]*storedGraph
	runs      map[int64][]storedRun
	nextGraph int64
	nextRun   int64
	clock     time.Time
	requests  []Request
	failures  map[string]int
	solver    Solver
}

// NewServer starts a fake and registers its shutdown with t.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		graphs:   map[int64]*storedGraph{},
		runs:     map[int64][]storedRun{},
		clock:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		failures: map[string]int{},
		solver:   NodeOrderSolver,
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)

	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.Use(s.authenticate)

	r.Route("/api/graphs", func(r chi.Router) {
		r.Get("/", s.listGraphs)
		r.Post("/", s.createGraph)
		r.Route("/{graphID}", func(r chi.Router) {
			r.Get("/", s.getGraph)
			r.Put("/", s.updateGraph)
			r.Delete("/", s.deleteGraph)
			r.Get("/tsp", s.runTSP)
			r.Get("/tsp/runs", s.listRuns)
			r.Delete("/tsp/runs", s.deleteAllRuns)
			r.Get("/tsp/runs/{runID}", s.getRun)
			r.Delete("/tsp/runs/{runID}", s.deleteRun)
		})
	})

	return r
}

// NodeOrderSolver visits nodes in stored order and closes the tour.
// Its cost sums stored forward edges, skipping hops with none.
func NodeOrderSolver(g api.GraphData, _ string) ([]string, float64) {
	var path []string
	for _, n := range g.Nodes {
		path = append(path, n.Label)
	}
	if len(path) > 0 {
		path = append(path, path[0])
	}
	weight := map[string]float64{}
	for _, e := range g.Edges {
		weight[e.From+"\x00"+e.To] = e.Weight
	}
	var cost float64
	for i := 0; i+1 < len(path); i++ {
		cost += weight[path[i]+"\x00"+path[i+1]]
	}

	return path, cost
}

// SetSolver replaces the solver.
func (s *Server) SetSolver(fn Solver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.solver = fn
}

// FailNext makes the next request matching method and path answer status.
func (s *Server) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = status
}

// Requests returns a copy of every recorded request.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request, or the zero value.
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

// Count returns how many requests matched method and path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// GraphIDs returns the stored graph IDs, ascending.
func (s *Server) GraphIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedIDs()
}

// RunCount returns how many runs are stored for graphID.
func (s *Server) RunCount(graphID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.runs[graphID])
}

// SeedGraph stores data under name directly and returns its ID.
func (s *Server) SeedGraph(name string, data api.GraphData) int64 {
	raw, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertGraph(name, raw)
}

// SeedRun stores a run for graphID directly and returns its ID.
func (s *Server) SeedRun(graphID int64, algorithm string, path []string, cost float64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRun++
	s.runs[graphID] = append(s.runs[graphID], storedRun{
		id: s.nextRun, algorithm: algorithm, path: path, cost: cost, seconds: 0.25, createdAt: s.tick(),
	})
	return s.nextRun
}

func (s *Server) insertGraph(name string, raw json.RawMessage) int64 {
	s.nextGraph++
	now := s.tick()
	s.graphs[s.nextGraph] = &storedGraph{name: name, data: raw, createdAt: now, updatedAt: now}
	return s.nextGraph
}

// tick advances the fake clock by one minute.
func (s *Server) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *Server) sortedIDs() []int64 {
	ids := make([]int64, 0, len(s.graphs))
	for id := range s.graphs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.RawQuery,
			RequestID: r.Header.Get(api.HeaderRequestID),
			Auth:      r.Header.Get("Authorization"),
			Body:      body,
		})
		status, forced := s.failures[r.Method+" "+r.URL.Path]
		delete(s.failures, r.Method+" "+r.URL.Path)
		s.mu.Unlock()

		if forced {
			writeError(w, status, "forced failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+Token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": "Missing Authorization Header"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listGraphs(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	ids := s.sortedIDs()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string][]int64{"graph_ids": ids})
}

func (s *Server) createGraph(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name *string         `json:"name"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == nil || body.Data == nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	s.mu.Lock()
	id := s.insertGraph(*body.Name, body.Data)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Graph created successfully", "graph_id": id})
}

// lookup resolves {graphID} or writes 404. The caller must hold s.mu.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (int64, *storedGraph, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "graphID"), 10, 64)
	g := s.graphs[id]
	if err != nil || g == nil {
		writeError(w, http.StatusNotFound, "Graph not found")
		return 0, nil, false
	}
	return id, g, true
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":         id,
		"name":       g.name,
		"user_id":    1,
		"graph":      g.data,
		"created_at": g.createdAt.Format(http.TimeFormat),
		"updated_at": g.updatedAt.Format(http.TimeFormat),
	})
}

func (s *Server) updateGraph(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var body struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Data == nil {
		writeError(w, http.StatusBadRequest, "Missing 'data' field")
		return
	}
	var named struct {
		Name *string `json:"name"`
	}
	if err := json.Unmarshal(body.Data, &named); err == nil && named.Name != nil {
		g.name = *named.Name
	}
	g.data = body.Data
	g.updatedAt = s.tick()
	delete(s.runs, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Graph and associated TSP runs updated successfully"})
}

func (s *Server) deleteGraph(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	delete(s.graphs, id)
	delete(s.runs, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Graph deleted successfully"})
}

func (s *Server) runTSP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	algo := r.URL.Query().Get("algo")
	if algo == "" {
		algo = string(api.Asadpour)
	}

	var data api.GraphData
	if err := json.Unmarshal(g.data, &data); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	doc, err := (&api.Graph{ID: id, Name: g.name, Graph: data}).Document()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	switch err := tour.CheckSolvable(doc); {
	case err == nil:
	case errors.Is(err, tour.ErrTooFewNodes):
		writeError(w, http.StatusBadRequest, "Graph must have at least 3 nodes")
		return
	default:
		writeError(w, http.StatusBadRequest, "Graph must be strongly connected")
		return
	}

	path, cost := s.solver(data, algo)
	s.nextRun++
	s.runs[id] = append(s.runs[id], storedRun{
		id: s.nextRun, algorithm: algo, path: path, cost: cost, seconds: 0.5, createdAt: s.tick(),
	})
	writeJSON(w, http.StatusOK, map[string]any{"tsp_path": path, "cost": cost, "time_to_calculate": 0.5})
}

func runJSON(run storedRun) map[string]any {
	return map[string]any{
		"id":                run.id,
		"algorithm":         run.algorithm,
		"path":              run.path,
		"cost":              run.cost,
		"time_to_calculate": run.seconds,
		"created_at":        run.createdAt.Format(http.TimeFormat),
	}
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	out := make([]map[string]any, 0, len(s.runs[id]))
	for _, run := range s.runs[id] {
		out = append(out, runJSON(run))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteAllRuns(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	delete(s.runs, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "All TSP runs deleted successfully"})
}

// findRun resolves {runID} within graph id. The caller must hold s.mu.
func (s *Server) findRun(w http.ResponseWriter, r *http.Request, id int64) (int, bool) {
	runID, err := strconv.ParseInt(chi.URLParam(r, "runID"), 10, 64)
	if err == nil {
		for i, run := range s.runs[id] {
			if run.id == runID {
				return i, true
			}
		}
	}
	writeError(w, http.StatusNotFound, "TSP run not found")
	return 0, false
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	i, ok := s.findRun(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, runJSON(s.runs[id][i]))
}

func (s *Server) deleteRun(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	i, ok := s.findRun(w, r, id)
	if !ok {
		return
	}
	s.runs[id] = append(s.runs[id][:i], s.runs[id][i+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"message": "TSP run deleted successfully"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(fmt.Sprintf("apitest: encode: %v", err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
