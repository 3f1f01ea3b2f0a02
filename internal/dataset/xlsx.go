package dataset

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/location-explorer/internal/model"
)

// LoadXLSX parses the town dataset from an XLSX sheet. When sheetName is
// empty the first sheet is used. The first row is the header and must
// contain every required column.
func LoadXLSX(path, sheetName string) ([]model.TownRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open xlsx %s", path)
	}

	var sheet *xlsx.Sheet
	if sheetName != "" {
		var ok bool
		sheet, ok = f.Sheet[sheetName]
		if !ok {
			return nil, eris.Errorf("dataset: xlsx sheet %q not found", sheetName)
		}
	} else {
		if len(f.Sheets) == 0 {
			return nil, eris.New("dataset: xlsx file has no sheets")
		}
		sheet = f.Sheets[0]
	}

	if len(sheet.Rows) == 0 {
		return nil, eris.New("dataset: xlsx sheet is empty")
	}

	header := cellStrings(sheet.Rows[0])
	if err := validateColumns(header); err != nil {
		return nil, err
	}
	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[col] = i
	}

	var records []model.TownRecord
	for i, row := range sheet.Rows[1:] {
		cells := cellStrings(row)
		raw := rawRow{
			StateName:           cellString(cells, colIndex, "state_name"),
			County:              cellString(cells, colIndex, "county"),
			Town:                cellString(cells, colIndex, "town"),
			Population:          cellFloat(cells, colIndex, "population"),
			MedianAge:           cellFloat(cells, colIndex, "median_age"),
			HouseholdIncome:     cellFloat(cells, colIndex, "median_household_income"),
			SalePrice:           cellFloat(cells, colIndex, "median_sale_price"),
			PctBachelor:         cellFloat(cells, colIndex, "pct_bachelor"),
			IntersectionDensity: cellFloat(cells, colIndex, "intersection_density"),
			PopulationDensity:   cellFloat(cells, colIndex, "population_density"),
			CompositeScore:      cellFloat(cells, colIndex, "composite_score"),
		}
		rec, ok := raw.toRecord()
		if !ok {
			dropRow("xlsx", i+2)
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

func cellStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		cells[i] = strings.TrimSpace(cell.String())
	}
	return cells
}

func cellString(cells []string, colIndex map[string]int, col string) *string {
	i, ok := colIndex[col]
	if !ok || i >= len(cells) || cells[i] == "" {
		return nil
	}
	return &cells[i]
}

func cellFloat(cells []string, colIndex map[string]int, col string) *float64 {
	i, ok := colIndex[col]
	if !ok || i >= len(cells) || cells[i] == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cells[i], 64)
	if err != nil {
		return nil
	}
	return &v
}
