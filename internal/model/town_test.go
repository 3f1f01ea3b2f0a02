package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTownRecord_Key(t *testing.T) {
	r := TownRecord{StateName: "Connecticut", Town: "Avon"}
	assert.Equal(t, "Connecticut, Avon", r.Key())
}

func TestTownRecord_MetricValue(t *testing.T) {
	score := 0.42
	r := TownRecord{
		Population:      1000,
		MedianAge:       40,
		HouseholdIncome: 50000,
		CompositeScore:  &score,
	}

	v, ok := r.MetricValue(MetricPopulation)
	require.True(t, ok)
	assert.Equal(t, 1000.0, v)

	v, ok = r.MetricValue(MetricCompositeScore)
	require.True(t, ok)
	assert.Equal(t, 0.42, v)

	r.CompositeScore = nil
	_, ok = r.MetricValue(MetricCompositeScore)
	assert.False(t, ok)

	_, ok = r.MetricValue(Metric("bogus"))
	assert.False(t, ok)
}

func TestTownRecord_DimensionValue(t *testing.T) {
	r := TownRecord{StateName: "Connecticut", County: "Hartford"}
	assert.Equal(t, "Hartford", r.DimensionValue(DimensionCounty))
	assert.Equal(t, "Connecticut", r.DimensionValue(DimensionState))
	assert.Empty(t, r.DimensionValue(Dimension("bogus")))
}

func TestValidMetric(t *testing.T) {
	for _, m := range DetailMetrics() {
		assert.True(t, ValidMetric(m), "metric %s", m)
	}
	assert.False(t, ValidMetric(Metric("bogus")))
}

func TestSnapshot_CopiesCompositeScore(t *testing.T) {
	score := 0.5
	r := TownRecord{StateName: "Connecticut", Town: "Avon", CompositeScore: &score}

	e := Snapshot(r)
	assert.Equal(t, "Connecticut, Avon", e.TownKey)
	require.NotNil(t, e.CompositeScore)

	score = 9.9
	assert.Equal(t, 0.5, *e.CompositeScore)
}
