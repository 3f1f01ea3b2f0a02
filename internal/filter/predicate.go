package filter

import (
	"github.com/sells-group/location-explorer/internal/model"
)

// Apply evaluates the conjunctive predicate over the dataset and returns
// a fresh filtered view preserving source order. A record passes iff it
// matches every active categorical selection (empty selection matches
// all) and falls inside every metric's range, both ends inclusive.
func Apply(records []model.TownRecord, s *State) []model.TownRecord {
	out := make([]model.TownRecord, 0, len(records))
	for _, r := range records {
		if matches(r, s) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r model.TownRecord, s *State) bool {
	for d, selected := range s.Categories {
		if len(selected) == 0 {
			continue
		}
		if !contains(selected, r.DimensionValue(d)) {
			return false
		}
	}
	for m, rs := range s.Ranges {
		v, ok := r.MetricValue(m)
		if !ok {
			return false
		}
		if v < rs.RangeMin || v > rs.RangeMax {
			return false
		}
	}
	return true
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
