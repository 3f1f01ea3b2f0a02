package townlist

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/location-explorer/internal/model"
)

func fullEntry() model.TownListEntry {
	score := 0.42
	return model.TownListEntry{
		TownKey:             "Connecticut, Avon",
		StateName:           "Connecticut",
		County:              "Hartford",
		Town:                "Avon",
		Population:          1000,
		MedianAge:           40,
		HouseholdIncome:     50000,
		SalePrice:           300000,
		PctBachelor:         0.3,
		IntersectionDensity: 5,
		PopulationDensity:   100,
		CompositeScore:      &score,
	}
}

func TestExportCSV_HeaderAndColumnOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, []model.TownListEntry{fullEntry()}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t,
		"town_key,state_name,county,town,population,median_age,median_household_income,median_sale_price,pct_bachelor,intersection_density,population_density,composite_score",
		lines[0],
	)
	assert.Equal(t,
		`"Connecticut, Avon",Connecticut,Hartford,Avon,1000,40,50000,300000,0.3,5,100,0.42`,
		lines[1],
	)
}

func TestExportCSV_NullCompositeIsEmptyCell(t *testing.T) {
	e := fullEntry()
	e.CompositeScore = nil

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, []model.TownListEntry{e}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[1], ","), "null composite should export as an empty trailing cell")
}

func TestExportCSV_EmptyListIsNoOp(t *testing.T) {
	var buf bytes.Buffer
	err := ExportCSV(&buf, nil)

	assert.ErrorIs(t, err, ErrNothingToExport)
	assert.Zero(t, buf.Len(), "no output at all, not an empty file")
}

func TestExportCoordinatesCSV_LatLngTrailing(t *testing.T) {
	row := CoordinateRow{TownListEntry: fullEntry(), Lat: 41.8098, Lng: -72.8301}

	var buf bytes.Buffer
	require.NoError(t, ExportCoordinatesCSV(&buf, []CoordinateRow{row}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], ",lat,lng"))
	assert.True(t, strings.HasSuffix(lines[1], ",41.8098,-72.8301"))
}

func TestExportCoordinatesCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, ExportCoordinatesCSV(&buf, nil), ErrNothingToExport)
	assert.Zero(t, buf.Len())
}
