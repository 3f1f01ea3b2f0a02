// Package view builds renderer-agnostic chart view models from the
// filtered dataset and the current selection.
package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/location-explorer/internal/model"
)

var printer = message.NewPrinter(language.AmericanEnglish)

var metricLabels = map[model.Metric]string{
	model.MetricPopulation:          "Population",
	model.MetricMedianAge:           "Median Age",
	model.MetricHouseholdIncome:     "Median Household Income",
	model.MetricSalePrice:           "Median Sale Price",
	model.MetricPctBachelor:         "% Bachelor's Degree",
	model.MetricIntersectionDensity: "Intersection Density",
	model.MetricPopulationDensity:   "Population Density",
	model.MetricCompositeScore:      "Composite Score",
}

// Label returns the human-readable name of a metric.
func Label(m model.Metric) string {
	if label, ok := metricLabels[m]; ok {
		return label
	}
	return string(m)
}

// FormatValue renders a metric value for chart text labels: currency and
// count metrics as grouped integers, continuous rates to two decimals.
func FormatValue(m model.Metric, v float64) string {
	switch m {
	case model.MetricPopulation, model.MetricMedianAge,
		model.MetricHouseholdIncome, model.MetricSalePrice:
		return printer.Sprintf("%d", int64(v+0.5))
	default:
		return printer.Sprintf("%.2f", v)
	}
}
