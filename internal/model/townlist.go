package model

// TownListEntry is an owned snapshot of a TownRecord taken at the moment
// it is added to the town list. Later dataset or filter changes never
// alter an already-added entry. Field order matches the CSV export.
type TownListEntry struct {
	TownKey             string   `csv:"town_key" json:"town_key"`
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

// Snapshot copies a TownRecord into a TownListEntry.
func Snapshot(r TownRecord) TownListEntry {
	e := TownListEntry{
		TownKey:             r.Key(),
		StateName:           r.StateName,
		County:              r.County,
		Town:                r.Town,
		Population:          r.Population,
		MedianAge:           r.MedianAge,
		HouseholdIncome:     r.HouseholdIncome,
		SalePrice:           r.SalePrice,
		PctBachelor:         r.PctBachelor,
		IntersectionDensity: r.IntersectionDensity,
		PopulationDensity:   r.PopulationDensity,
	}
	if r.CompositeScore != nil {
		score := *r.CompositeScore
		e.CompositeScore = &score
	}
	return e
}
