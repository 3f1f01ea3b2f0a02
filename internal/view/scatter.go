package view

import (
	"github.com/sells-group/location-explorer/internal/model"
)

// ScatterPoint is one plotted town; TownKey is the click-identity
// payload.
type ScatterPoint struct {
	TownKey string  `json:"town_key"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// ScatterView is the scatter projection chart specification.
type ScatterView struct {
	XMetric model.Metric   `json:"x_metric"`
	YMetric model.Metric   `json:"y_metric"`
	XLabel  string         `json:"x_label"`
	YLabel  string         `json:"y_label"`
	Points  []ScatterPoint `json:"points"`
}

// ScatterProjection maps every filtered record to the two chosen axes.
// No sampling: all filtered rows are plotted. Records missing either
// axis value are omitted.
func ScatterProjection(records []model.TownRecord, xMetric, yMetric model.Metric) ScatterView {
	points := make([]ScatterPoint, 0, len(records))
	for _, r := range records {
		x, okX := r.MetricValue(xMetric)
		y, okY := r.MetricValue(yMetric)
		if !okX || !okY {
			continue
		}
		points = append(points, ScatterPoint{TownKey: r.Key(), X: x, Y: y})
	}

	return ScatterView{
		XMetric: xMetric,
		YMetric: yMetric,
		XLabel:  Label(xMetric),
		YLabel:  Label(yMetric),
		Points:  points,
	}
}
