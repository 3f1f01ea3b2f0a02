package dataset

import (
	"encoding/csv"
	"errors"
	"io"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/sells-group/location-explorer/internal/model"
)

// LoadCSV parses the town dataset from CSV. The header row is required
// and must contain every required column; rows failing validation are
// dropped and logged.
func LoadCSV(r io.Reader) ([]model.TownRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, eris.New("dataset: csv source is empty")
		}
		return nil, eris.Wrap(err, "dataset: read csv header")
	}
	if err := validateColumns(dec.Header()); err != nil {
		return nil, err
	}

	var records []model.TownRecord
	line := 0
	for {
		line++
		var row rawRow
		err := dec.Decode(&row)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			dropRow("csv", line)
			continue
		}
		rec, ok := row.toRecord()
		if !ok {
			dropRow("csv", line)
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}
