// SPDX-License-Identifier: MIT

package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Header names recognized by the CSV source. Matching is exact.
const (
	ColumnFrom = "From"
	ColumnTo   = "To"
	ColumnCost = "Cost"
)

// CSVSource reads rows from a CSV stream whose first record is a header
// naming the From, To and (optionally) Cost columns. Other columns are
// ignored, blank lines are skipped and short records leave trailing fields
// empty.
type CSVSource struct {
	r io.Reader
}

// NewCSVSource returns a RowSource over r.
func NewCSVSource(r io.Reader) *CSVSource { return &CSVSource{r: r} }

// Rows parses the whole stream. Any parse failure, an empty stream, or a
// header without From or To yields an error wrapping ErrMalformed.
func (s *CSVSource) Rows() ([]Row, error) {
	cr := csv.NewReader(s.r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformed, err)
	}

	col := map[string]int{}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, dup := col[name]; !dup {
			col[name] = i
		}
	}
	for _, required := range []string{ColumnFrom, ColumnTo} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w: header lacks %q column", ErrMalformed, required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		rows = append(rows, Row{
			Source: field(rec, ColumnFrom),
			Target: field(rec, ColumnTo),
			Cost:   field(rec, ColumnCost),
		})
	}

	return rows, nil
}
