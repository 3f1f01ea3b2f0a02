// Package geocode resolves town keys to coordinates via the Google
// Geocoding API, behind a process-lifetime cache that never stores
// failures.
package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Coordinates is a resolved latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Client resolves a town key ("<state_name>, <town>") to coordinates.
// Any failure (non-OK API status, network error, malformed payload) is
// returned as an error and must not be treated as fatal by callers.
type Client interface {
	Resolve(ctx context.Context, townKey string) (Coordinates, error)
}

// ErrNoAPIKey is returned by every lookup when the client was built
// without an API key. The adapter degrades to always-failure rather
// than crashing the process.
var ErrNoAPIKey = eris.New("geocode: google api key not configured")

// Option configures the Google client.
type Option func(*googleClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *googleClient) {
		g.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second limit for API calls.
func WithRateLimit(rps float64) Option {
	return func(g *googleClient) {
		if rps > 0 {
			g.limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(g *googleClient) {
		g.httpClient.Timeout = d
	}
}

type googleClient struct {
	httpClient *http.Client
	apiKey     string
	limiter    *rate.Limiter
	baseURL    string
}

// NewClient creates a Google geocoding client. An empty apiKey is
// accepted; such a client fails every lookup with ErrNoAPIKey.
func NewClient(apiKey string, opts ...Option) Client {
	g := &googleClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(10, 10),
		baseURL:    googleGeocodeURL,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// googleResponse is the JSON response from the Google Geocoding API.
type googleResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status string `json:"status"`
}

// Resolve implements Client. The town key doubles as the address string.
func (g *googleClient) Resolve(ctx context.Context, townKey string) (Coordinates, error) {
	if g.apiKey == "" {
		return Coordinates{}, ErrNoAPIKey
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return Coordinates{}, eris.Wrap(err, "geocode: rate limit")
	}

	params := url.Values{
		"address": {townKey},
		"key":     {g.apiKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Coordinates{}, eris.Wrap(err, "geocode: build request")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Coordinates{}, eris.Wrap(err, "geocode: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, eris.Errorf("geocode: google returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Coordinates{}, eris.Wrap(err, "geocode: read body")
	}

	var parsed googleResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Coordinates{}, eris.Wrap(err, "geocode: parse response")
	}

	if parsed.Status != "OK" || len(parsed.Results) == 0 {
		return Coordinates{}, eris.Errorf("geocode: no match for %q (status %s)", townKey, parsed.Status)
	}

	loc := parsed.Results[0].Geometry.Location
	return Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}
