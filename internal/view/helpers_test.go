package view

import (
	"github.com/sells-group/location-explorer/internal/model"
)

func score(v float64) *float64 { return &v }

func viewRecords() []model.TownRecord {
	return []model.TownRecord{
		{
			StateName: "Connecticut", County: "Hartford", Town: "Avon",
			Population: 1000, MedianAge: 40, HouseholdIncome: 50000,
			SalePrice: 300000, PctBachelor: 0.3, IntersectionDensity: 5,
			PopulationDensity: 100, CompositeScore: score(0.2),
		},
		{
			StateName: "Connecticut", County: "Fairfield", Town: "Wilton",
			Population: 5000, MedianAge: 35, HouseholdIncome: 80000,
			SalePrice: 500000, PctBachelor: 0.5, IntersectionDensity: 8,
			PopulationDensity: 200, CompositeScore: score(0.9),
		},
		{
			StateName: "New York", County: "Westchester", Town: "Rye",
			Population: 9000, MedianAge: 42, HouseholdIncome: 120000,
			SalePrice: 900000, PctBachelor: 0.6, IntersectionDensity: 9,
			PopulationDensity: 400, CompositeScore: score(0.9),
		},
	}
}
