package dataset

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/location-explorer/internal/model"
)

// LoadSQLite reads the town dataset from a SQLite database file. The
// table must carry the full required schema; a missing column fails the
// load.
func LoadSQLite(ctx context.Context, path, table string) ([]model.TownRecord, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: open sqlite")
	}
	defer db.Close() //nolint:errcheck

	rows, err := db.QueryContext(ctx, selectTownsQuery(table))
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: query sqlite table %s", table)
	}
	defer rows.Close() //nolint:errcheck

	var records []model.TownRecord
	line := 0
	for rows.Next() {
		line++
		raw, err := scanTownRow(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "dataset: scan sqlite row")
		}
		rec, ok := raw.toRecord()
		if !ok {
			dropRow("sqlite", line)
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "dataset: iterate sqlite rows")
	}

	return records, nil
}

// selectTownsQuery builds the fixed-schema SELECT for a towns table.
// Selecting the columns explicitly makes a missing column a load error.
func selectTownsQuery(table string) string {
	return fmt.Sprintf(`SELECT
		state_name, county, town,
		population, median_age,
		median_household_income, median_sale_price,
		pct_bachelor, intersection_density, population_density,
		composite_score
	FROM %s`, table)
}

// scanTownRow scans one row of the fixed schema into a rawRow using the
// given Scan function, shared by the sqlite and postgres loaders.
func scanTownRow(scan func(dest ...any) error) (rawRow, error) {
	var (
		stateName, county, town                          sql.NullString
		population, medianAge                            sql.NullFloat64
		income, salePrice, pctBachelor                   sql.NullFloat64
		intersectionDensity, populationDensity, composit sql.NullFloat64
	)
	err := scan(
		&stateName, &county, &town,
		&population, &medianAge,
		&income, &salePrice,
		&pctBachelor, &intersectionDensity, &populationDensity,
		&composit,
	)
	if err != nil {
		return rawRow{}, err
	}

	return rawRow{
		StateName:           nullString(stateName),
		County:              nullString(county),
		Town:                nullString(town),
		Population:          nullFloat(population),
		MedianAge:           nullFloat(medianAge),
		HouseholdIncome:     nullFloat(income),
		SalePrice:           nullFloat(salePrice),
		PctBachelor:         nullFloat(pctBachelor),
		IntersectionDensity: nullFloat(intersectionDensity),
		PopulationDensity:   nullFloat(populationDensity),
		CompositeScore:      nullFloat(composit),
	}, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
