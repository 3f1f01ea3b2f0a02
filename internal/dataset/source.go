package dataset

import (
	"context"
	"math"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/location-explorer/internal/config"
	"github.com/sells-group/location-explorer/internal/model"
)

// requiredColumns are the dataset columns that must be present in every
// source. composite_score is optional.
var requiredColumns = []string{
	"state_name",
	"county",
	"town",
	"population",
	"median_age",
	"median_household_income",
	"median_sale_price",
	"pct_bachelor",
	"intersection_density",
	"population_density",
}

// Open loads the town dataset from the configured source. A missing
// required column is fatal; rows missing a required metric are dropped
// and logged.
func Open(ctx context.Context, cfg config.DatasetConfig) (*Store, error) {
	var (
		records []model.TownRecord
		err     error
	)

	switch cfg.Driver {
	case "csv", "":
		var f *os.File
		f, err = os.Open(cfg.Path)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: open %s", cfg.Path)
		}
		defer f.Close() //nolint:errcheck
		records, err = LoadCSV(f)
	case "xlsx":
		records, err = LoadXLSX(cfg.Path, cfg.Sheet)
	case "sqlite":
		records, err = LoadSQLite(ctx, cfg.Path, cfg.Table)
	case "postgres":
		var pool *pgxpool.Pool
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, eris.Wrap(err, "dataset: connect postgres")
		}
		defer pool.Close()
		records, err = LoadPostgres(ctx, pool, cfg.Table)
	default:
		return nil, eris.Errorf("dataset: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	store := NewStore(records)
	zap.L().Info("dataset loaded",
		zap.String("driver", cfg.Driver),
		zap.Int("towns", store.Len()),
	)
	return store, nil
}

// validateColumns checks a source header against the required schema.
func validateColumns(header []string) error {
	present := make(map[string]struct{}, len(header))
	for _, col := range header {
		present[col] = struct{}{}
	}
	for _, col := range requiredColumns {
		if _, ok := present[col]; !ok {
			return eris.Errorf("dataset: required column %q missing", col)
		}
	}
	return nil
}

// rawRow holds one unvalidated source row. Pointer fields distinguish
// absent values from zeros.
type rawRow struct {
	StateName           *string  `csv:"state_name"`
	County              *string  `csv:"county"`
	Town                *string  `csv:"town"`
	Population          *float64 `csv:"population"`
	MedianAge           *float64 `csv:"median_age"`
	HouseholdIncome     *float64 `csv:"median_household_income"`
	SalePrice           *float64 `csv:"median_sale_price"`
	PctBachelor         *float64 `csv:"pct_bachelor"`
	IntersectionDensity *float64 `csv:"intersection_density"`
	PopulationDensity   *float64 `csv:"population_density"`
	CompositeScore      *float64 `csv:"composite_score"`
}

// toRecord validates a raw row. The second return is false when a
// required field is absent or not a finite number.
func (row rawRow) toRecord() (model.TownRecord, bool) {
	if row.StateName == nil || *row.StateName == "" ||
		row.Town == nil || *row.Town == "" ||
		row.County == nil {
		return model.TownRecord{}, false
	}
	required := []*float64{
		row.Population, row.MedianAge, row.HouseholdIncome, row.SalePrice,
		row.PctBachelor, row.IntersectionDensity, row.PopulationDensity,
	}
	for _, v := range required {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			return model.TownRecord{}, false
		}
	}

	r := model.TownRecord{
		StateName:           *row.StateName,
		County:              *row.County,
		Town:                *row.Town,
		Population:          int(*row.Population),
		MedianAge:           int(*row.MedianAge),
		HouseholdIncome:     *row.HouseholdIncome,
		SalePrice:           *row.SalePrice,
		PctBachelor:         *row.PctBachelor,
		IntersectionDensity: *row.IntersectionDensity,
		PopulationDensity:   *row.PopulationDensity,
	}
	if row.CompositeScore != nil && !math.IsNaN(*row.CompositeScore) && !math.IsInf(*row.CompositeScore, 0) {
		score := *row.CompositeScore
		r.CompositeScore = &score
	}
	return r, true
}

func dropRow(source string, line int) {
	zap.L().Warn("dataset: dropping row with missing required metric",
		zap.String("source", source),
		zap.Int("row", line),
	)
}
