package weather

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testService(t *testing.T, forecastHits *atomic.Int32, opts ...Option) *Service {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/location", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "success", "lat": 43.65, "lon": -79.38}`))
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		if forecastHits != nil {
			forecastHits.Add(1)
		}
		w.Write([]byte(`{"current_weather": {"temperature": 21.5, "windspeed": 12.0, "weathercode": 3}}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	opts = append(opts, WithEndpoints(
		server.URL+"/location",
		server.URL+"/forecast?latitude=%f&longitude=%f",
	))
	return NewService(quietLogger(), opts...)
}

func TestRefreshPopulatesCache(t *testing.T) {
	svc := testService(t, nil)

	require.NoError(t, svc.Refresh(context.Background()))

	obs, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, 21.5, obs.Temperature)
	assert.Equal(t, 3, obs.WeatherCode)
	assert.WithinDuration(t, time.Now(), obs.FetchedAt, 5*time.Second)
}

func TestCurrentBeforeFirstFetch(t *testing.T) {
	svc := testService(t, nil)

	// No reading yet; must not block.
	_, ok := svc.Current()
	assert.False(t, ok)

	// The triggered background refresh eventually lands.
	require.Eventually(t, func() bool {
		_, ok := svc.Current()
		return ok
	}, 5*time.Second, 10*time.Millisecond)
}

func TestCurrentServesCacheWithoutRefetch(t *testing.T) {
	var hits atomic.Int32
	svc := testService(t, &hits, WithCacheDuration(time.Hour))

	require.NoError(t, svc.Refresh(context.Background()))
	for i := 0; i < 10; i++ {
		_, ok := svc.Current()
		assert.True(t, ok)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestPinnedLocationSkipsGeolocation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "latitude=51.5")
		w.Write([]byte(`{"current_weather": {"temperature": 9, "weathercode": 61}}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := NewService(quietLogger(),
		WithLocation(51.5, -0.12),
		WithEndpoints("http://invalid.test/never-called", server.URL+"/forecast?latitude=%f&longitude=%f"))

	require.NoError(t, svc.Refresh(context.Background()))
	obs, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, 61, obs.WeatherCode)
}

func TestGeolocationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "fail"}`))
	}))
	defer server.Close()

	svc := NewService(quietLogger(),
		WithEndpoints(server.URL, server.URL+"?latitude=%f&longitude=%f"))

	err := svc.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "location")
}
