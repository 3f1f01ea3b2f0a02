// Package model defines the town dataset schema and the event payloads
// exchanged between the dashboard components.
package model

// Metric identifies one continuous town metric.
type Metric string

const (
	MetricPopulation          Metric = "population"
	MetricMedianAge           Metric = "median_age"
	MetricHouseholdIncome     Metric = "median_household_income"
	MetricSalePrice           Metric = "median_sale_price"
	MetricPctBachelor         Metric = "pct_bachelor"
	MetricIntersectionDensity Metric = "intersection_density"
	MetricPopulationDensity   Metric = "population_density"
	MetricCompositeScore      Metric = "composite_score"
)

// FilterMetrics returns the seven continuous metrics that carry a range
// filter, in schema order.
func FilterMetrics() []Metric {
	return []Metric{
		MetricPopulation,
		MetricMedianAge,
		MetricHouseholdIncome,
		MetricSalePrice,
		MetricPctBachelor,
		MetricIntersectionDensity,
		MetricPopulationDensity,
	}
}

// DetailMetrics returns the metric set shown in the town detail view:
// the composite score followed by the seven filterable metrics.
func DetailMetrics() []Metric {
	return append([]Metric{MetricCompositeScore}, FilterMetrics()...)
}

// ValidMetric reports whether m names a known metric.
func ValidMetric(m Metric) bool {
	for _, known := range DetailMetrics() {
		if m == known {
			return true
		}
	}
	return false
}

// Dimension identifies a categorical filter dimension.
type Dimension string

const (
	DimensionCounty Dimension = "county"
	DimensionState  Dimension = "state_name"
)

// Dimensions returns the categorical filter dimensions.
func Dimensions() []Dimension {
	return []Dimension{DimensionCounty, DimensionState}
}

// TownRecord is one immutable row of the town dataset. Rows are loaded
// once at startup and never mutated; composite_score is the only field
// that may be absent.
type TownRecord struct {
	StateName           string   `csv:"state_name" json:"state_name"`
	County              string   `csv:"county" json:"county"`
	Town                string   `csv:"town" json:"town"`
	Population          int      `csv:"population" json:"population"`
	MedianAge           int      `csv:"median_age" json:"median_age"`
	HouseholdIncome     float64  `csv:"median_household_income" json:"median_household_income"`
	SalePrice           float64  `csv:"median_sale_price" json:"median_sale_price"`
	PctBachelor         float64  `csv:"pct_bachelor" json:"pct_bachelor"`
	IntersectionDensity float64  `csv:"intersection_density" json:"intersection_density"`
	PopulationDensity   float64  `csv:"population_density" json:"population_density"`
	CompositeScore      *float64 `csv:"composite_score,omitempty" json:"composite_score,omitempty"`
}

// Key returns the unique town key, "<state_name>, <town>".
func (r TownRecord) Key() string {
	return r.StateName + ", " + r.Town
}

// MetricValue returns the record's value for m. The second return is
// false when the metric is absent on this row (nil composite score) or
// when m is unknown.
func (r TownRecord) MetricValue(m Metric) (float64, bool) {
	switch m {
	case MetricPopulation:
		return float64(r.Population), true
	case MetricMedianAge:
		return float64(r.MedianAge), true
	case MetricHouseholdIncome:
		return r.HouseholdIncome, true
	case MetricSalePrice:
		return r.SalePrice, true
	case MetricPctBachelor:
		return r.PctBachelor, true
	case MetricIntersectionDensity:
		return r.IntersectionDensity, true
	case MetricPopulationDensity:
		return r.PopulationDensity, true
	case MetricCompositeScore:
		if r.CompositeScore == nil {
			return 0, false
		}
		return *r.CompositeScore, true
	}
	return 0, false
}

// DimensionValue returns the record's value for a categorical dimension.
func (r TownRecord) DimensionValue(d Dimension) string {
	switch d {
	case DimensionCounty:
		return r.County
	case DimensionState:
		return r.StateName
	}
	return ""
}
