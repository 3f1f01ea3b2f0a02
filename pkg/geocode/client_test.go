package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func testClient(srv *httptest.Server) *googleClient {
	return &googleClient{
		httpClient: srv.Client(),
		apiKey:     "test-key",
		limiter:    rate.NewLimiter(rate.Inf, 1),
		baseURL:    srv.URL,
	}
}

func TestResolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Connecticut, Avon", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{"geometry": {"location": {"lat": 41.8098, "lng": -72.8301}}}]
		}`))
	}))
	defer srv.Close()

	coords, err := testClient(srv).Resolve(context.Background(), "Connecticut, Avon")
	require.NoError(t, err)
	assert.Equal(t, 41.8098, coords.Lat)
	assert.Equal(t, -72.8301, coords.Lng)
}

func TestResolve_ZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).Resolve(context.Background(), "Atlantis, Lost City")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZERO_RESULTS")
}

func TestResolve_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv).Resolve(context.Background(), "Connecticut, Avon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestResolve_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OK", "results": [`))
	}))
	defer srv.Close()

	_, err := testClient(srv).Resolve(context.Background(), "Connecticut, Avon")
	assert.Error(t, err)
}

func TestResolve_MissingAPIKey(t *testing.T) {
	c := NewClient("")

	_, err := c.Resolve(context.Background(), "Connecticut, Avon")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestNewClient_Options(t *testing.T) {
	hc := &http.Client{}
	c := NewClient("key", WithHTTPClient(hc), WithTimeout(5*time.Second), WithRateLimit(2))

	g, ok := c.(*googleClient)
	require.True(t, ok)
	assert.Same(t, hc, g.httpClient)
	assert.Equal(t, 5*time.Second, g.httpClient.Timeout)
	assert.Equal(t, rate.Limit(2), g.limiter.Limit())
}
