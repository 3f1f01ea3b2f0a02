package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeXLSX(t *testing.T, sheetName string, rows [][]string) string {
	t.Helper()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	require.NoError(t, err)
	for _, row := range rows {
		r := sheet.AddRow()
		for _, v := range row {
			r.AddCell().SetString(v)
		}
	}

	path := filepath.Join(t.TempDir(), "towns.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func xlsxHeader() []string {
	return []string{
		"state_name", "county", "town", "population", "median_age",
		"median_household_income", "median_sale_price", "pct_bachelor",
		"intersection_density", "population_density", "composite_score",
	}
}

func TestLoadXLSX(t *testing.T) {
	path := writeXLSX(t, "towns", [][]string{
		xlsxHeader(),
		{"Connecticut", "Hartford", "Avon", "1000", "40", "50000", "300000", "0.3", "5", "100", "0.42"},
		{"Connecticut", "Fairfield", "Wilton", "5000", "35", "80000", "500000", "0.5", "8", "200", ""},
	})

	records, err := LoadXLSX(path, "towns")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Connecticut, Avon", records[0].Key())
	assert.Equal(t, 1000, records[0].Population)
	require.NotNil(t, records[0].CompositeScore)
	assert.Equal(t, 0.42, *records[0].CompositeScore)
	assert.Nil(t, records[1].CompositeScore)
}

func TestLoadXLSX_FirstSheetByDefault(t *testing.T) {
	path := writeXLSX(t, "anything", [][]string{
		xlsxHeader(),
		{"Connecticut", "Hartford", "Avon", "1000", "40", "50000", "300000", "0.3", "5", "100", "0.42"},
	})

	records, err := LoadXLSX(path, "")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLoadXLSX_UnknownSheet(t *testing.T) {
	path := writeXLSX(t, "towns", [][]string{xlsxHeader()})

	_, err := LoadXLSX(path, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestLoadXLSX_MissingRequiredColumn(t *testing.T) {
	path := writeXLSX(t, "towns", [][]string{
		{"state_name", "county", "town"},
		{"Connecticut", "Hartford", "Avon"},
	})

	_, err := LoadXLSX(path, "towns")
	assert.Error(t, err)
}

func TestLoadXLSX_DropsBadRows(t *testing.T) {
	path := writeXLSX(t, "towns", [][]string{
		xlsxHeader(),
		{"Connecticut", "Hartford", "Avon", "not-a-number", "40", "50000", "300000", "0.3", "5", "100", "0.42"},
		{"Connecticut", "Fairfield", "Wilton", "5000", "35", "80000", "500000", "0.5", "8", "200", "0.9"},
	})

	records, err := LoadXLSX(path, "towns")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Wilton", records[0].Town)
}
