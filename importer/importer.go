// SPDX-License-Identifier: MIT

// Package importer merges tabular (source, target, cost) rows into a
// document, replacing its contents in one batch.
//
// Import always supersedes the current document and is not recorded in
// history. Rows with a missing endpoint are skipped with a warning; repeated
// (source,target) pairs keep their first occurrence; an absent or unusable
// cost becomes weight 1.
package importer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/katalvlaran/tourcanvas/core"
)

// DefaultWeight is the weight given to rows without a usable cost.
const DefaultWeight = 1.0

// ErrMalformed is returned when the row source cannot be read at all.
// The document is left untouched.
var ErrMalformed = errors.New("importer: malformed input")

// Row is one tabular record. Empty strings mean the field is absent.
type Row struct {
	Source string `validate:"required"`
	Target string `validate:"required"`
	Cost   string
}

// RowSource yields every row of an input, or an error if the input cannot
// be parsed.
type RowSource interface {
	Rows() ([]Row, error)
}

// Warning describes a row that was skipped or altered. Index is zero-based
// over data rows.
type Warning struct {
	Index  int
	Reason string
}

// Report summarizes one merge.
type Report struct {
	Rows       int       // data rows seen
	Nodes      int       // nodes installed
	Edges      int       // edges installed
	Duplicates int       // rows dropped as repeated (source,target)
	Defaulted  int       // edges that fell back to DefaultWeight
	Skipped    []Warning // rows not imported
	Adjusted   []Warning // rows imported with a change
}

// Option configures Merge and Import.
type Option func(*config)

type config struct {
	log *zap.Logger
}

// WithLogger logs every warning to l.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.log = l }
}

var validate = validator.New()

// Import reads every row from src, then merges them into doc. If src fails,
// the error wraps ErrMalformed and doc is not modified.
func Import(src RowSource, doc *core.Document, opts ...Option) (*Report, error) {
	rows, err := src.Rows()
	if err != nil {
		if errors.Is(err, ErrMalformed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return Merge(rows, doc, opts...), nil
}

// Merge replaces doc's nodes and edges with those described by rows.
//
// Steps:
//  1. Walk rows in order; skip rows missing Source or Target.
//  2. Stage both endpoints as nodes, first-seen order, no duplicates.
//  3. Stage edge EdgeKey(source,target) unless already staged by an earlier row.
//  4. Install staged nodes, then staged edges, with one doc.Replace.
//
// Title and external ID of doc are kept.
func Merge(rows []Row, doc *core.Document, opts ...Option) *Report {
	cfg := config{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	rep := &Report{Rows: len(rows)}
	seenNode := make(map[string]bool)
	seenEdge := make(map[string]bool)
	var (
		nodes []core.Node
		edges []core.Edge
	)

	skip := func(i int, reason string) {
		rep.Skipped = append(rep.Skipped, Warning{Index: i, Reason: reason})
		cfg.log.Warn("importer: row skipped", zap.Int("row", i), zap.String("reason", reason))
	}
	adjust := func(i int, reason string) {
		rep.Adjusted = append(rep.Adjusted, Warning{Index: i, Reason: reason})
		cfg.log.Warn("importer: row adjusted", zap.Int("row", i), zap.String("reason", reason))
	}

	for i, raw := range rows {
		row := Row{
			Source: strings.TrimSpace(raw.Source),
			Target: strings.TrimSpace(raw.Target),
			Cost:   strings.TrimSpace(raw.Cost),
		}
		if err := validate.Struct(row); err != nil {
			skip(i, missingFields(err))
			continue
		}

		for _, id := range [2]string{row.Source, row.Target} {
			if !seenNode[id] {
				seenNode[id] = true
				nodes = append(nodes, core.Node{ID: id, Label: id})
			}
		}

		if row.Source == row.Target {
			adjust(i, "self-loop edge dropped, node kept")
			continue
		}
		key := core.EdgeKey(row.Source, row.Target)
		if seenEdge[key] {
			rep.Duplicates++
			continue
		}
		seenEdge[key] = true

		w, ok := parseCost(row.Cost)
		if !ok {
			rep.Defaulted++
			if row.Cost != "" {
				adjust(i, fmt.Sprintf("cost %q is not a non-negative number, using %v", row.Cost, DefaultWeight))
			}
		}
		edges = append(edges, core.Edge{ID: key, From: row.Source, To: row.Target, Weight: w})
	}

	doc.Replace(nodes, edges)
	rep.Nodes, rep.Edges = len(nodes), len(edges)

	return rep
}

// parseCost returns the weight a cost cell denotes, or DefaultWeight and
// false when the cell is absent or not a finite, non-negative number.
func parseCost(s string) (float64, bool) {
	if s == "" {
		return DefaultWeight, false
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return DefaultWeight, false
	}

	return w, true
}

// missingFields renders which required columns a row lacks.
func missingFields(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		names = append(names, fe.Field())
	}

	return "missing " + strings.Join(names, " and ")
}
