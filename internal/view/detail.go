package view

import (
	"github.com/sells-group/location-explorer/internal/dataset"
	"github.com/sells-group/location-explorer/internal/model"
)

// DetailRow is one metric of the town detail chart, normalized against
// the dataset-wide range.
type DetailRow struct {
	Metric     model.Metric `json:"metric"`
	Label      string       `json:"label"`
	RawValue   float64      `json:"raw_value"`
	RawText    string       `json:"raw_text"`
	Normalized float64      `json:"normalized"`
}

// DetailView is the normalized single-town detail chart specification.
type DetailView struct {
	TownKey string      `json:"town_key"`
	Rows    []DetailRow `json:"rows"`
}

// Detail normalizes the composite score and the seven continuous metrics
// of one town against the global ranges: (value - min) / (max - min),
// defined as 0 for a degenerate metric where min == max. The second
// return is false when the key resolves to no record, which consumers
// render as an empty view rather than an error.
func Detail(ds *dataset.Store, townKey string) (DetailView, bool) {
	r, ok := ds.Lookup(townKey)
	if !ok {
		return DetailView{}, false
	}

	rows := make([]DetailRow, 0, len(model.DetailMetrics()))
	for _, m := range model.DetailMetrics() {
		v, ok := r.MetricValue(m)
		if !ok {
			continue
		}
		rng, ok := ds.GlobalRange(m)
		if !ok {
			continue
		}
		normalized := 0.0
		if rng.Max > rng.Min {
			normalized = (v - rng.Min) / (rng.Max - rng.Min)
		}
		rows = append(rows, DetailRow{
			Metric:     m,
			Label:      Label(m),
			RawValue:   v,
			RawText:    FormatValue(m, v),
			Normalized: normalized,
		})
	}

	return DetailView{TownKey: townKey, Rows: rows}, true
}

// ComparisonPair applies Detail independently to two optionally-chosen
// town keys. Either side is nil when no town is chosen or the key
// resolves to no record.
func ComparisonPair(ds *dataset.Store, leftKey, rightKey string) (left, right *DetailView) {
	if leftKey != "" {
		if v, ok := Detail(ds, leftKey); ok {
			left = &v
		}
	}
	if rightKey != "" {
		if v, ok := Detail(ds, rightKey); ok {
			right = &v
		}
	}
	return left, right
}
