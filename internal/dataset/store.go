// Package dataset loads the immutable town table once at startup and
// serves per-metric global ranges and distinct dimension values.
package dataset

import (
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/location-explorer/internal/model"
)

// Range is the observed [min, max] of a metric across the dataset.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Store holds the loaded town table. It is read-only after construction
// and safe to share across concurrent consumers without locking.
type Store struct {
	records  []model.TownRecord
	byKey    map[string]int
	ranges   map[model.Metric]Range
	counties []string
	states   []string
	keys     []string
}

// NewStore indexes the given records. Duplicate town keys keep the first
// occurrence; global ranges are computed over non-null metric values only.
func NewStore(records []model.TownRecord) *Store {
	s := &Store{
		byKey:  make(map[string]int, len(records)),
		ranges: make(map[model.Metric]Range, len(model.DetailMetrics())),
	}

	for _, r := range records {
		key := r.Key()
		if _, dup := s.byKey[key]; dup {
			zap.L().Warn("dataset: duplicate town key, keeping first", zap.String("town_key", key))
			continue
		}
		s.byKey[key] = len(s.records)
		s.records = append(s.records, r)
	}

	for _, m := range model.DetailMetrics() {
		first := true
		var rng Range
		for _, r := range s.records {
			v, ok := r.MetricValue(m)
			if !ok {
				continue
			}
			if first {
				rng = Range{Min: v, Max: v}
				first = false
				continue
			}
			if v < rng.Min {
				rng.Min = v
			}
			if v > rng.Max {
				rng.Max = v
			}
		}
		if !first {
			s.ranges[m] = rng
		}
	}

	s.counties = distinct(s.records, model.DimensionCounty)
	s.states = distinct(s.records, model.DimensionState)
	s.keys = make([]string, 0, len(s.records))
	for _, r := range s.records {
		s.keys = append(s.keys, r.Key())
	}
	sort.Strings(s.keys)

	return s
}

func distinct(records []model.TownRecord, d model.Dimension) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, r := range records {
		v := r.DimensionValue(d)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Records returns the full table in source order. Callers must not
// mutate the returned slice.
func (s *Store) Records() []model.TownRecord {
	return s.records
}

// Len returns the number of loaded records.
func (s *Store) Len() int {
	return len(s.records)
}

// GlobalRange returns the observed [min, max] for a metric. The second
// return is false when no record carries the metric.
func (s *Store) GlobalRange(m model.Metric) (Range, bool) {
	rng, ok := s.ranges[m]
	return rng, ok
}

// DistinctValues returns the sorted distinct values of a categorical
// dimension.
func (s *Store) DistinctValues(d model.Dimension) []string {
	switch d {
	case model.DimensionCounty:
		return s.counties
	case model.DimensionState:
		return s.states
	}
	return nil
}

// AllTownKeys returns every town key, sorted.
func (s *Store) AllTownKeys() []string {
	return s.keys
}

// Lookup returns the record for a town key. The second return is false
// when the key is not in the dataset.
func (s *Store) Lookup(key string) (model.TownRecord, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return model.TownRecord{}, false
	}
	return s.records[i], true
}
