package dataset

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/sells-group/location-explorer/internal/model"
)

// PgxQuerier is the subset of pgxpool.Pool the postgres loader needs.
// pgxmock satisfies it in tests.
type PgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadPostgres reads the town dataset from a Postgres table. The table
// must carry the full required schema; a missing column fails the load.
func LoadPostgres(ctx context.Context, pool PgxQuerier, table string) ([]model.TownRecord, error) {
	rows, err := pool.Query(ctx, selectTownsQuery(table))
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: query postgres table %s", table)
	}
	defer rows.Close()

	var records []model.TownRecord
	line := 0
	for rows.Next() {
		line++
		raw, err := scanTownRow(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "dataset: scan postgres row")
		}
		rec, ok := raw.toRecord()
		if !ok {
			dropRow("postgres", line)
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "dataset: iterate postgres rows")
	}

	return records, nil
}
