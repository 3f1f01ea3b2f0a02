// Package filter holds the per-session filter state: one range sync unit
// per continuous metric, the categorical selections, and the conjunctive
// predicate applied to the dataset.
package filter

import (
	"strconv"
	"strings"
)

// Bound names one end of a range.
type Bound string

const (
	BoundMin Bound = "min"
	BoundMax Bound = "max"
)

// RangeState holds the three synchronized representations of one
// metric's bounds: the dual-handle range control and its two text
// mirrors. Every update leaves all three consistent.
type RangeState struct {
	RangeMin float64 `json:"range_min"`
	RangeMax float64 `json:"range_max"`
	TextMin  string  `json:"text_min"`
	TextMax  string  `json:"text_max"`
}

// NewRangeState returns a consistent state for [min, max].
func NewRangeState(min, max float64) RangeState {
	return reconciled(min, max)
}

// ApplyRange reacts to a range-control update. The range control is
// authoritative: both text mirrors are overwritten to match it.
func (s RangeState) ApplyRange(min, max float64) RangeState {
	if min > max {
		max = min
	}
	return reconciled(min, max)
}

// ApplyText reacts to a text-field update on one bound. An empty or
// unparseable value falls back to the current range bound; when the
// resulting min exceeds max, max is forced up to min. The range control
// and both mirrors are then overwritten to the reconciled pair.
func (s RangeState) ApplyText(which Bound, raw string) RangeState {
	min, max := s.RangeMin, s.RangeMax

	switch which {
	case BoundMin:
		if v, ok := parseBound(raw); ok {
			min = v
		}
	case BoundMax:
		if v, ok := parseBound(raw); ok {
			max = v
		}
	default:
		return s
	}

	// Min wins ties: a crossing update pushes max up, never min down.
	if min > max {
		max = min
	}
	return reconciled(min, max)
}

func reconciled(min, max float64) RangeState {
	return RangeState{
		RangeMin: min,
		RangeMax: max,
		TextMin:  formatBound(min),
		TextMax:  formatBound(max),
	}
}

func parseBound(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
