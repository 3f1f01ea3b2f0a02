package server

import (
	"context"

	"github.com/twpayne/go-geom"

	"github.com/sells-group/location-explorer/internal/model"
	"github.com/sells-group/location-explorer/internal/townlist"
	"github.com/sells-group/location-explorer/pkg/geocode"
)

// Viewport is the bounding box enclosing every map marker.
type Viewport struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// MapView is the map specification: one marker per listed town that
// geocoded successfully, plus the viewport enclosing them.
type MapView struct {
	Markers  []townlist.CoordinateRow `json:"markers"`
	Viewport *Viewport                `json:"viewport,omitempty"`
}

// buildMapView geocodes the listed towns concurrently and keeps
// insertion order for the markers. Towns that fail to geocode are
// omitted; a slow or failing lookup never fails the view.
func (s *Server) buildMapView(ctx context.Context, entries []model.TownListEntry) MapView {
	rows := s.coordinateRows(ctx, entries)
	return MapView{Markers: rows, Viewport: viewportOf(rows)}
}

// coordinateRows resolves coordinates for the given entries, preserving
// insertion order and dropping entries that fail to geocode.
func (s *Server) coordinateRows(ctx context.Context, entries []model.TownListEntry) []townlist.CoordinateRow {
	if len(entries) == 0 {
		return nil
	}

	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.TownKey
	}
	resolved := geocode.ResolveAll(ctx, s.geocoder, keys, s.opts.GeocodeConcurrency)

	rows := make([]townlist.CoordinateRow, 0, len(entries))
	for _, e := range entries {
		coords, ok := resolved[e.TownKey]
		if !ok {
			continue
		}
		rows = append(rows, townlist.CoordinateRow{
			TownListEntry: e,
			Lat:           coords.Lat,
			Lng:           coords.Lng,
		})
	}
	return rows
}

func viewportOf(rows []townlist.CoordinateRow) *Viewport {
	if len(rows) == 0 {
		return nil
	}

	bounds := geom.NewBounds(geom.XY)
	for _, row := range rows {
		bounds.Extend(geom.NewPointFlat(geom.XY, []float64{row.Lng, row.Lat}))
	}

	return &Viewport{
		MinLat: bounds.Min(1),
		MinLng: bounds.Min(0),
		MaxLat: bounds.Max(1),
		MaxLng: bounds.Max(0),
	}
}
