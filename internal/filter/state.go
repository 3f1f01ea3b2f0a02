package filter

import (
	"github.com/sells-group/location-explorer/internal/dataset"
	"github.com/sells-group/location-explorer/internal/model"
)

// EventKind tags a filter event with its trigger origin.
type EventKind string

const (
	// EventRange is a dual-handle range-control move.
	EventRange EventKind = "range"
	// EventText is an edit of one bound's text field.
	EventText EventKind = "text"
	// EventCategory replaces a categorical multi-select.
	EventCategory EventKind = "category"
)

// Event is the tagged union of filter updates. Kind selects which
// payload fields are meaningful.
type Event struct {
	Kind EventKind `json:"kind"`

	// Range and text events.
	Metric model.Metric `json:"metric,omitempty"`
	Min    float64      `json:"min,omitempty"`
	Max    float64      `json:"max,omitempty"`
	Bound  Bound        `json:"bound,omitempty"`
	Raw    string       `json:"raw,omitempty"`

	// Category events. An empty value set means match-all.
	Dimension model.Dimension `json:"dimension,omitempty"`
	Values    []string        `json:"values,omitempty"`
}

// State is the per-session filter state: one RangeState per continuous
// metric plus the categorical selections. It is not safe for concurrent
// use; the owning session serializes mutations.
type State struct {
	Ranges     map[model.Metric]RangeState  `json:"ranges"`
	Categories map[model.Dimension][]string `json:"categories"`
}

// NewState initializes every metric's range to the dataset's observed
// [min, max] — the only point where bounds are clamped to the data — and
// every categorical selection to match-all.
func NewState(ds *dataset.Store) *State {
	s := &State{
		Ranges:     make(map[model.Metric]RangeState, len(model.FilterMetrics())),
		Categories: make(map[model.Dimension][]string, len(model.Dimensions())),
	}
	for _, m := range model.FilterMetrics() {
		rng, ok := ds.GlobalRange(m)
		if !ok {
			rng = dataset.Range{}
		}
		s.Ranges[m] = NewRangeState(rng.Min, rng.Max)
	}
	return s
}

// Apply reacts to one filter event. Events carrying an unknown metric or
// dimension are ignored.
func (s *State) Apply(ev Event) {
	switch ev.Kind {
	case EventRange:
		rs, ok := s.Ranges[ev.Metric]
		if !ok {
			return
		}
		s.Ranges[ev.Metric] = rs.ApplyRange(ev.Min, ev.Max)
	case EventText:
		rs, ok := s.Ranges[ev.Metric]
		if !ok {
			return
		}
		s.Ranges[ev.Metric] = rs.ApplyText(ev.Bound, ev.Raw)
	case EventCategory:
		switch ev.Dimension {
		case model.DimensionCounty, model.DimensionState:
			if len(ev.Values) == 0 {
				delete(s.Categories, ev.Dimension)
				return
			}
			values := make([]string, len(ev.Values))
			copy(values, ev.Values)
			s.Categories[ev.Dimension] = values
		}
	}
}

// Clone returns a deep copy, used to hand a consistent snapshot to
// readers without holding the session lock.
func (s *State) Clone() *State {
	out := &State{
		Ranges:     make(map[model.Metric]RangeState, len(s.Ranges)),
		Categories: make(map[model.Dimension][]string, len(s.Categories)),
	}
	for m, rs := range s.Ranges {
		out.Ranges[m] = rs
	}
	for d, values := range s.Categories {
		cp := make([]string, len(values))
		copy(cp, values)
		out.Categories[d] = cp
	}
	return out
}
