package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/location-explorer/internal/dataset"
	"github.com/sells-group/location-explorer/internal/filter"
	"github.com/sells-group/location-explorer/internal/model"
	"github.com/sells-group/location-explorer/internal/selection"
	"github.com/sells-group/location-explorer/internal/session"
	"github.com/sells-group/location-explorer/internal/townlist"
	"github.com/sells-group/location-explorer/internal/view"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// withSession resolves the session from the URL, responding 404 when it
// does not exist.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	sess, ok := s.sessions.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// metricMeta describes one metric for building filter controls.
type metricMeta struct {
	Metric model.Metric   `json:"metric"`
	Label  string         `json:"label"`
	Range  *dataset.Range `json:"range,omitempty"`
}

func (s *Server) handleDatasetMeta(w http.ResponseWriter, _ *http.Request) {
	metrics := make([]metricMeta, 0, len(model.DetailMetrics()))
	for _, m := range model.DetailMetrics() {
		meta := metricMeta{Metric: m, Label: view.Label(m)}
		if rng, ok := s.ds.GlobalRange(m); ok {
			r := rng
			meta.Range = &r
		}
		metrics = append(metrics, meta)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"towns":    s.ds.Len(),
		"metrics":  metrics,
		"counties": s.ds.DistinctValues(model.DimensionCounty),
		"states":   s.ds.DistinctValues(model.DimensionState),
		"keys":     s.ds.AllTownKeys(),
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Create()
	respondJSON(w, http.StatusCreated, map[string]any{
		"id":         sess.ID,
		"created_at": sess.CreatedAt.Format(time.RFC3339),
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}

	selected, hasSelection := sess.SelectedKey()
	respondJSON(w, http.StatusOK, map[string]any{
		"id":           sess.ID,
		"filters":      sess.FilterState(),
		"selected":     selected,
		"has_selected": hasSelection,
		"town_list":    sess.ListEntries(),
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.withSession(w, r); !ok {
		return
	}
	s.sessions.Delete(chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFilterEvent(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}

	var ev filter.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		respondError(w, http.StatusBadRequest, "invalid filter event")
		return
	}

	sess.ApplyFilterEvent(ev)
	respondJSON(w, http.StatusOK, map[string]any{"filters": sess.FilterState()})
}

func (s *Server) handleSelectionEvent(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}

	var ev selection.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		respondError(w, http.StatusBadRequest, "invalid selection event")
		return
	}

	sess.ApplySelectionEvent(ev)
	selected, hasSelection := sess.SelectedKey()
	respondJSON(w, http.StatusOK, map[string]any{
		"selected":     selected,
		"has_selected": hasSelection,
	})
}

// queryMetric reads a metric query parameter, falling back to def when
// absent. Unknown metric names are rejected.
func queryMetric(r *http.Request, name string, def model.Metric) (model.Metric, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	m := model.Metric(raw)
	return m, model.ValidMetric(m)
}

func (s *Server) handleBarView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}

	metric, ok := queryMetric(r, "metric", model.MetricCompositeScore)
	if !ok {
		respondError(w, http.StatusBadRequest, "unknown metric")
		return
	}

	respondJSON(w, http.StatusOK, view.BarRanking(sess.FilteredRecords(), metric))
}

func (s *Server) handleScatterView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}

	xMetric, okX := queryMetric(r, "x", model.MetricHouseholdIncome)
	yMetric, okY := queryMetric(r, "y", model.MetricPopulation)
	if !okX || !okY {
		respondError(w, http.StatusBadRequest, "unknown metric")
		return
	}

	respondJSON(w, http.StatusOK, view.ScatterProjection(sess.FilteredRecords(), xMetric, yMetric))
}

func (s *Server) handleDetailView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}

	key, hasSelection := sess.SelectedKey()
	if !hasSelection {
		respondJSON(w, http.StatusOK, map[string]any{"visible": false})
		return
	}

	detail, found := view.Detail(s.ds, key)
	if !found {
		// Selected key not in the dataset: render nothing, keep the key.
		respondJSON(w, http.StatusOK, map[string]any{"visible": false})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"visible": true, "detail": detail})
}

func (s *Server) handleComparisonView(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.withSession(w, r); !ok {
		return
	}

	left, right := view.ComparisonPair(s.ds, r.URL.Query().Get("left"), r.URL.Query().Get("right"))
	respondJSON(w, http.StatusOK, map[string]any{"left": left, "right": right})
}

// listMutation is the request body shared by the add and remove
// endpoints. Source distinguishes the explicit buttons from the table's
// inline delete affordance.
type listMutation struct {
	TownKey string `json:"town_key,omitempty"`
	Source  string `json:"source,omitempty"` // "button" (default) or "table"
}

func (s *Server) handleListAdd(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}

	var req listMutation
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req) // empty body adds the selected town
	}

	var added bool
	if req.TownKey != "" {
		added = sess.AddTown(req.TownKey)
	} else {
		added = sess.AddSelected()
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"added":     added,
		"town_list": sess.ListEntries(),
	})
}

func (s *Server) handleListRemove(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}

	var req listMutation
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TownKey == "" {
		respondError(w, http.StatusBadRequest, "town_key is required")
		return
	}

	// Inline table deletes only reach the accumulator when configured to;
	// otherwise the table snaps back on the next read.
	removed := false
	if req.Source != "table" || s.opts.InlineDeleteRemoves {
		removed = sess.RemoveTown(req.TownKey)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"removed":   removed,
		"town_list": sess.ListEntries(),
	})
}

func (s *Server) handleListClear(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	sess.ClearList()
	respondJSON(w, http.StatusOK, map[string]any{"town_list": sess.ListEntries()})
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"town_list": sess.ListEntries()})
}

func (s *Server) handleExportList(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}

	entries := sess.ListEntries()
	if len(entries) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="town_list.csv"`)
	if err := townlist.ExportCSV(w, entries); err != nil && !errors.Is(err, townlist.ErrNothingToExport) {
		zap.L().Error("export town list", zap.Error(err))
	}
}

func (s *Server) handleExportCoordinates(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}

	rows := s.coordinateRows(r.Context(), sess.ListEntries())
	if len(rows) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="town_coordinates.csv"`)
	if err := townlist.ExportCoordinatesCSV(w, rows); err != nil && !errors.Is(err, townlist.ErrNothingToExport) {
		zap.L().Error("export coordinates", zap.Error(err))
	}
}

func (s *Server) handleMapView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, s.buildMapView(r.Context(), sess.ListEntries()))
}
