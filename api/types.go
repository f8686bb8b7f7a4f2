// SPDX-License-Identifier: MIT

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Algorithm names an optimization strategy the service implements.
type Algorithm string

// The closed set of algorithms.
const (
	SimulatedAnnealing Algorithm = "simulated_annealing"
	ThresholdAccepting Algorithm = "threshold_accepting"
	Greedy             Algorithm = "greedy"
	Asadpour           Algorithm = "asadpour"
)

const algorithmTag = "required,oneof=simulated_annealing threshold_accepting greedy asadpour"

var validate = validator.New()

// Algorithms lists every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{SimulatedAnnealing, ThresholdAccepting, Greedy, Asadpour}
}

// Validate reports ErrUnknownAlgorithm unless a is in the closed set.
func (a Algorithm) Validate() error {
	if err := validate.Var(string(a), algorithmTag); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(a))
	}

	return nil
}

// ParseAlgorithm trims s and validates it.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.TrimSpace(s))
	if err := a.Validate(); err != nil {
		return "", err
	}

	return a, nil
}

// Node is a node on the wire. ID is omitted in create requests.
type Node struct {
	ID    string `json:"id,omitempty"`
	Label string `json:"label"`
}

// Edge is a directed weighted edge on the wire.
type Edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// GraphData is the node and edge payload of a graph.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// CreateGraphRequest is the body of a create call.
type CreateGraphRequest struct {
	Name string    `json:"name"`
	Data GraphData `json:"data"`
}

// CreateGraphResponse carries the identifier the service assigned.
type CreateGraphResponse struct {
	Message string `json:"message"`
	GraphID int64  `json:"graph_id"`
}

// UpdateGraphData is the payload of an update call; the name travels next
// to the nodes and edges.
type UpdateGraphData struct {
	Name  string `json:"name"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// UpdateGraphRequest is the body of an update call.
type UpdateGraphRequest struct {
	Data UpdateGraphData `json:"data"`
}

// Graph is a stored graph as the service returns it.
type Graph struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	UserID    int64     `json:"user_id,omitempty"`
	Graph     GraphData `json:"graph"`
	CreatedAt Time      `json:"created_at"`
	UpdatedAt Time      `json:"updated_at"`
}

// GraphSummary is the listing view of a stored graph.
type GraphSummary struct {
	ID        int64
	Name      string
	Nodes     int
	Edges     int
	UpdatedAt Time
}

// Run is one stored optimization run. Path is a closed tour of node IDs.
type Run struct {
	ID              int64    `json:"id"`
	Algorithm       string   `json:"algorithm"`
	Cost            float64  `json:"cost"`
	TimeToCalculate float64  `json:"time_to_calculate"`
	CreatedAt       Time     `json:"created_at"`
	Path            []string `json:"path"`
}

// Duration returns TimeToCalculate as a time.Duration.
func (r Run) Duration() time.Duration {
	return time.Duration(r.TimeToCalculate * float64(time.Second))
}

// RunResult is the immediate answer to a run request.
type RunResult struct {
	Path            []string `json:"tsp_path"`
	Cost            float64  `json:"cost"`
	TimeToCalculate float64  `json:"time_to_calculate"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type graphIDsResponse struct {
	GraphIDs []int64 `json:"graph_ids"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Time is a timestamp that decodes from RFC 3339, the HTTP-date form and
// zone-less ISO 8601. Null and empty strings give the zero time.
// It encodes as RFC 3339.
type Time struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	http.TimeFormat,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTime tries every accepted layout in turn. Zone-less values are UTC.
func ParseTime(s string) (Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Time{t.UTC()}, nil
		}
	}

	return Time{}, fmt.Errorf("api: unrecognized timestamp %q", s)
}

func (t *Time) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("api: timestamp: %w", err)
	}
	if s == "" {
		*t = Time{}
		return nil
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = parsed

	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}
