package geocode

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/location-explorer/internal/observability"
)

// stubClient returns canned results per key and counts calls.
type stubClient struct {
	mu     sync.Mutex
	coords map[string]Coordinates
	calls  int
}

func (s *stubClient) Resolve(_ context.Context, townKey string) (Coordinates, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	coords, ok := s.coords[townKey]
	if !ok {
		return Coordinates{}, eris.Errorf("no match for %q", townKey)
	}
	return coords, nil
}

func TestCachedClient_HitSkipsInner(t *testing.T) {
	stub := &stubClient{coords: map[string]Coordinates{
		"Connecticut, Avon": {Lat: 41.8, Lng: -72.8},
	}}
	c := NewCachedClient(stub, NewCache())

	first, err := c.Resolve(context.Background(), "Connecticut, Avon")
	require.NoError(t, err)

	second, err := c.Resolve(context.Background(), "Connecticut, Avon")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, stub.calls)
}

func TestCachedClient_FailureIsNotCached(t *testing.T) {
	stub := &stubClient{coords: map[string]Coordinates{}}
	cache := NewCache()
	c := NewCachedClient(stub, cache)

	_, err := c.Resolve(context.Background(), "Atlantis, Lost City")
	require.Error(t, err)
	assert.Zero(t, cache.Len())

	// The key becomes resolvable; the next call retries instead of
	// replaying the failure.
	stub.coords["Atlantis, Lost City"] = Coordinates{Lat: 1, Lng: 2}
	coords, err := c.Resolve(context.Background(), "Atlantis, Lost City")
	require.NoError(t, err)
	assert.Equal(t, Coordinates{Lat: 1, Lng: 2}, coords)
	assert.Equal(t, 2, stub.calls)
}

func TestCachedClient_RecordsMetrics(t *testing.T) {
	stub := &stubClient{coords: map[string]Coordinates{
		"Connecticut, Avon": {Lat: 41.8, Lng: -72.8},
	}}
	m := observability.NewMetricsForTesting()
	c := NewCachedClient(stub, NewCache(), WithMetrics(m))

	_, err := c.Resolve(context.Background(), "Connecticut, Avon")
	require.NoError(t, err)
	_, err = c.Resolve(context.Background(), "Connecticut, Avon")
	require.NoError(t, err)
	_, _ = c.Resolve(context.Background(), "Atlantis, Lost City")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeCache.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.GeocodeCache.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeRequests.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeRequests.WithLabelValues("failure")))
}

func TestCache_PutGet(t *testing.T) {
	cache := NewCache()

	_, ok := cache.Get("Connecticut, Avon")
	assert.False(t, ok)

	cache.Put("Connecticut, Avon", Coordinates{Lat: 41.8, Lng: -72.8})
	coords, ok := cache.Get("Connecticut, Avon")
	require.True(t, ok)
	assert.Equal(t, 41.8, coords.Lat)
	assert.Equal(t, 1, cache.Len())
}
