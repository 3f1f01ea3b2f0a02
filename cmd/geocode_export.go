package main

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/location-explorer/internal/dataset"
	"github.com/sells-group/location-explorer/internal/model"
	"github.com/sells-group/location-explorer/internal/townlist"
	"github.com/sells-group/location-explorer/pkg/geocode"
)

var (
	geocodeOut    string
	geocodeStates []string
)

var geocodeExportCmd = &cobra.Command{
	Use:   "geocode-export",
	Short: "Geocode dataset towns and write the coordinates CSV",
	Long:  "Resolves coordinates for every town in the dataset (optionally limited to given states) and writes town_coordinates.csv. Towns that fail to geocode are skipped.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ds, err := dataset.Open(ctx, cfg.Dataset)
		if err != nil {
			return err
		}

		records := ds.Records()
		var entries []model.TownListEntry
		for _, r := range records {
			if len(geocodeStates) > 0 && !containsString(geocodeStates, r.StateName) {
				continue
			}
			entries = append(entries, model.Snapshot(r))
		}
		if len(entries) == 0 {
			return eris.New("geocode-export: no towns match the given states")
		}

		geocoder := newGeocoder(nil)
		keys := make([]string, len(entries))
		for i, e := range entries {
			keys[i] = e.TownKey
		}

		start := time.Now()
		resolved := geocode.ResolveAll(ctx, geocoder, keys, cfg.Geocode.Concurrency)
		zap.L().Info("geocoding complete",
			zap.Int("towns", len(entries)),
			zap.Int("resolved", len(resolved)),
			zap.Duration("elapsed", time.Since(start)),
		)

		rows := make([]townlist.CoordinateRow, 0, len(resolved))
		for _, e := range entries {
			coords, ok := resolved[e.TownKey]
			if !ok {
				continue
			}
			rows = append(rows, townlist.CoordinateRow{TownListEntry: e, Lat: coords.Lat, Lng: coords.Lng})
		}
		if len(rows) == 0 {
			return eris.New("geocode-export: no towns resolved, nothing to write")
		}

		f, err := os.Create(geocodeOut)
		if err != nil {
			return eris.Wrapf(err, "geocode-export: create %s", geocodeOut)
		}
		defer f.Close() //nolint:errcheck

		if err := townlist.ExportCoordinatesCSV(f, rows); err != nil {
			return err
		}

		zap.L().Info("coordinates written",
			zap.String("path", geocodeOut),
			zap.Int("rows", len(rows)),
		)
		return nil
	},
}

func containsString(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func init() {
	geocodeExportCmd.Flags().StringVar(&geocodeOut, "out", "town_coordinates.csv", "output CSV path")
	geocodeExportCmd.Flags().StringSliceVar(&geocodeStates, "state", nil, "limit to the given state names")
	rootCmd.AddCommand(geocodeExportCmd)
}
