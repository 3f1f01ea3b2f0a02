package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/location-explorer/internal/dataset"
	"github.com/sells-group/location-explorer/internal/observability"
	"github.com/sells-group/location-explorer/internal/server"
	"github.com/sells-group/location-explorer/internal/session"
	"github.com/sells-group/location-explorer/pkg/geocode"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ds, err := dataset.Open(ctx, cfg.Dataset)
		if err != nil {
			return err
		}

		metrics := observability.NewMetrics()
		geocoder := newGeocoder(metrics)
		sessions := session.NewManager(ds, metrics)

		srv := server.New(ds, sessions, geocoder, metrics, server.Options{
			AllowedOrigins:      cfg.Server.AllowedOrigins,
			InlineDeleteRemoves: cfg.Session.InlineDeleteRemoves,
			GeocodeConcurrency:  cfg.Geocode.Concurrency,
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: srv.Router(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				zap.L().Error("server shutdown", zap.Error(err))
			}
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.Int("towns", ds.Len()),
			zap.Bool("geocoding", cfg.Geocode.GoogleAPIKey != ""),
		)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newGeocoder builds the cached geocode client. A missing API key is not
// fatal: lookups simply fail until one is configured.
func newGeocoder(metrics *observability.Metrics) geocode.Client {
	if cfg.Geocode.GoogleAPIKey == "" {
		zap.L().Warn("geocode: no google api key configured, map lookups will fail")
	}
	inner := geocode.NewClient(cfg.Geocode.GoogleAPIKey,
		geocode.WithRateLimit(cfg.Geocode.RateLimitRPS),
		geocode.WithTimeout(time.Duration(cfg.Geocode.TimeoutSecs)*time.Second),
	)
	if !cfg.Geocode.CacheEnabled {
		return inner
	}
	return geocode.NewCachedClient(inner, geocode.NewCache(), geocode.WithMetrics(metrics))
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
