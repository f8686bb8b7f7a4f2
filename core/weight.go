// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidateWeight reports ErrInvalidWeight unless w is finite and ≥ 0.
func ValidateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, w)
	}

	return nil
}

// ParseWeight converts user-entered text into an edge weight.
// Surrounding whitespace is ignored; anything that is not a finite,
// non-negative decimal number yields ErrInvalidWeight.
func ParseWeight(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidWeight)
	}
	w, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeight, s)
	}
	if err = ValidateWeight(w); err != nil {
		return 0, err
	}

	return w, nil
}

// FormatWeight renders a weight the way edge labels show it:
// shortest decimal form, no exponent for ordinary magnitudes ("2", "0.5", "12.75").
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
