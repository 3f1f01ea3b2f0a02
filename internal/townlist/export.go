package townlist

import (
	"encoding/csv"
	"io"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/sells-group/location-explorer/internal/model"
)

// ErrNothingToExport is returned when an export is requested for an
// empty list. Callers produce no output in that case, not an empty file.
var ErrNothingToExport = eris.New("townlist: nothing to export")

// CoordinateRow is one row of the coordinates export: the town list
// columns with lat and lng trailing.
type CoordinateRow struct {
	model.TownListEntry
	Lat float64 `csv:"lat" json:"lat"`
	Lng float64 `csv:"lng" json:"lng"`
}

// ExportCSV writes the town list as CSV, header included, columns in
// the fixed schema order.
func ExportCSV(w io.Writer, entries []model.TownListEntry) error {
	if len(entries) == 0 {
		return ErrNothingToExport
	}
	return encodeCSV(w, entries)
}

// ExportCoordinatesCSV writes the coordinates export as CSV.
func ExportCoordinatesCSV(w io.Writer, rows []CoordinateRow) error {
	if len(rows) == 0 {
		return ErrNothingToExport
	}
	return encodeCSV(w, rows)
}

func encodeCSV[T any](w io.Writer, rows []T) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return eris.Wrap(err, "townlist: encode csv row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "townlist: flush csv")
	}
	return nil
}
