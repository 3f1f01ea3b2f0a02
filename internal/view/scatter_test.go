package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/location-explorer/internal/model"
)

func TestScatterProjection_PlotsAllRows(t *testing.T) {
	v := ScatterProjection(viewRecords(), model.MetricHouseholdIncome, model.MetricPopulation)

	require.Len(t, v.Points, 3)
	assert.Equal(t, "Connecticut, Avon", v.Points[0].TownKey)
	assert.Equal(t, 50000.0, v.Points[0].X)
	assert.Equal(t, 1000.0, v.Points[0].Y)
	assert.Equal(t, "Median Household Income", v.XLabel)
	assert.Equal(t, "Population", v.YLabel)
}

func TestScatterProjection_OmitsRowsMissingAxis(t *testing.T) {
	records := viewRecords()
	records[0].CompositeScore = nil

	v := ScatterProjection(records, model.MetricCompositeScore, model.MetricPopulation)
	require.Len(t, v.Points, 2)
}

func TestScatterProjection_Empty(t *testing.T) {
	v := ScatterProjection(nil, model.MetricPopulation, model.MetricMedianAge)
	assert.Empty(t, v.Points)
}
