package dataset

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var townColumns = []string{
	"state_name", "county", "town",
	"population", "median_age",
	"median_household_income", "median_sale_price",
	"pct_bachelor", "intersection_density", "population_density",
	"composite_score",
}

func TestLoadPostgres(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(townColumns).
		AddRow("Connecticut", "Hartford", "Avon", 1000.0, 40.0, 50000.0, 300000.0, 0.3, 5.0, 100.0, 0.42).
		AddRow("Connecticut", "Fairfield", "Wilton", 5000.0, 35.0, 80000.0, 500000.0, 0.5, 8.0, 200.0, nil)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	records, err := LoadPostgres(context.Background(), mock, "towns")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Connecticut, Avon", records[0].Key())
	require.NotNil(t, records[0].CompositeScore)
	assert.Equal(t, 0.42, *records[0].CompositeScore)
	assert.Nil(t, records[1].CompositeScore)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadPostgres_DropsRowsMissingRequiredMetric(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(townColumns).
		AddRow("Connecticut", "Hartford", "Avon", nil, 40.0, 50000.0, 300000.0, 0.3, 5.0, 100.0, 0.42).
		AddRow("New York", "Westchester", "Rye", 9000.0, 42.0, 120000.0, 900000.0, 0.6, 9.0, 400.0, 0.9)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	records, err := LoadPostgres(context.Background(), mock, "towns")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Rye", records[0].Town)
}

func TestLoadPostgres_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)

	_, err = LoadPostgres(context.Background(), mock, "towns")
	assert.Error(t, err)
}
