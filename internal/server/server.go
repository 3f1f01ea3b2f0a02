// Package server exposes the dashboard engine over HTTP: session
// lifecycle, filter and selection events, derived chart view models,
// the town list with its CSV exports, and the map view.
package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sells-group/location-explorer/internal/dataset"
	"github.com/sells-group/location-explorer/internal/observability"
	"github.com/sells-group/location-explorer/internal/session"
	"github.com/sells-group/location-explorer/pkg/geocode"
)

// Options configures server behavior.
type Options struct {
	AllowedOrigins []string

	// InlineDeleteRemoves controls whether a table-originated row delete
	// is applied to the backing town list accumulator.
	InlineDeleteRemoves bool

	// GeocodeConcurrency bounds the fan-out of map-view and coordinate
	// export lookups.
	GeocodeConcurrency int
}

// Server holds the shared collaborators behind the HTTP API.
type Server struct {
	ds       *dataset.Store
	sessions *session.Manager
	geocoder geocode.Client
	metrics  *observability.Metrics
	opts     Options
}

// New creates a Server. metrics may be nil.
func New(ds *dataset.Store, sessions *session.Manager, geocoder geocode.Client, metrics *observability.Metrics, opts Options) *Server {
	if opts.GeocodeConcurrency <= 0 {
		opts.GeocodeConcurrency = 8
	}
	return &Server{
		ds:       ds,
		sessions: sessions,
		geocoder: geocoder,
		metrics:  metrics,
		opts:     opts,
	}
}

// Router builds the chi router for the API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.Use(s.countRequests)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/dataset", s.handleDatasetMeta)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)

			r.Post("/filters", s.handleFilterEvent)
			r.Post("/selection", s.handleSelectionEvent)

			r.Get("/views/bar", s.handleBarView)
			r.Get("/views/scatter", s.handleScatterView)
			r.Get("/views/detail", s.handleDetailView)
			r.Get("/views/comparison", s.handleComparisonView)
			r.Get("/views/map", s.handleMapView)

			r.Get("/list", s.handleGetList)
			r.Post("/list/add", s.handleListAdd)
			r.Post("/list/remove", s.handleListRemove)
			r.Post("/list/clear", s.handleListClear)
			r.Get("/list/export.csv", s.handleExportList)
			r.Get("/list/coordinates.csv", s.handleExportCoordinates)
		})
	})

	return r
}

// countRequests records one counter increment per request, labeled by
// the matched route pattern.
func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		s.metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
	})
}
