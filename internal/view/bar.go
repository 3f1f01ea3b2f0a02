package view

import (
	"sort"

	"github.com/sells-group/location-explorer/internal/model"
)

// BarDatum is one bar of the ranking chart. RankID and TownKey together
// form the click-identity payload attached to the bar.
type BarDatum struct {
	RankID    int     `json:"rank_id"`
	TownKey   string  `json:"town_key"`
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	ValueText string  `json:"value_text"`
}

// BarView is the bar ranking chart specification.
type BarView struct {
	Metric      model.Metric `json:"metric"`
	MetricLabel string       `json:"metric_label"`
	Bars        []BarDatum   `json:"bars"`
}

// BarRanking sorts the filtered records descending by the chosen metric
// and assigns stable 0-based rank ids in sorted order. Ties keep source
// order. Records missing the metric (null composite score) are omitted
// from the ranking.
func BarRanking(records []model.TownRecord, metric model.Metric) BarView {
	type ranked struct {
		key   string
		value float64
	}

	rows := make([]ranked, 0, len(records))
	for _, r := range records {
		v, ok := r.MetricValue(metric)
		if !ok {
			continue
		}
		rows = append(rows, ranked{key: r.Key(), value: v})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].value > rows[j].value
	})

	bars := make([]BarDatum, len(rows))
	for i, row := range rows {
		bars[i] = BarDatum{
			RankID:    i,
			TownKey:   row.key,
			Label:     row.key,
			Value:     row.value,
			ValueText: FormatValue(metric, row.value),
		}
	}

	return BarView{
		Metric:      metric,
		MetricLabel: Label(metric),
		Bars:        bars,
	}
}
