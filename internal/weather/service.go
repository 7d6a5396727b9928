// Package weather fetches current conditions from the Open-Meteo API with
// IP-based geolocation and a non-blocking cache. Readers always get the
// last good observation; refreshes happen in the background so the display
// loop never stalls on the network.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

const (
	locationURL = "http://ip-api.com/json/"
	forecastURL = "https://api.open-meteo.com/v1/forecast?latitude=%f&longitude=%f&current_weather=true"

	// DefaultCacheDuration is how long an observation stays fresh.
	DefaultCacheDuration = 30 * time.Minute
)

// Observation is one current-weather reading.
type Observation struct {
	Temperature float64   `json:"temperature"`
	WindSpeed   float64   `json:"windspeed"`
	WeatherCode int       `json:"weathercode"`
	FetchedAt   time.Time `json:"-"`
}

// Service caches weather observations and refreshes them in the background.
type Service struct {
	client        *http.Client
	logger        *slog.Logger
	cacheDuration time.Duration
	locationURL   string
	forecastURL   string

	cached   atomic.Pointer[Observation]
	updating atomic.Bool

	mu  sync.Mutex
	lat float64
	lon float64
	loc bool
}

// Option configures a Service.
type Option func(*Service)

// WithCacheDuration overrides how long observations stay fresh.
func WithCacheDuration(d time.Duration) Option {
	return func(s *Service) { s.cacheDuration = d }
}

// WithLocation pins the coordinates, skipping IP geolocation.
func WithLocation(lat, lon float64) Option {
	return func(s *Service) {
		s.lat, s.lon, s.loc = lat, lon, true
	}
}

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) { s.client = c }
}

// WithEndpoints redirects the geolocation and forecast requests, mainly
// for tests. The forecast URL must keep the two latitude and longitude
// format verbs.
func WithEndpoints(location, forecast string) Option {
	return func(s *Service) {
		s.locationURL = location
		s.forecastURL = forecast
	}
}

// NewService creates a weather service.
func NewService(logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		client:        &http.Client{Timeout: 10 * time.Second},
		logger:        logger,
		cacheDuration: DefaultCacheDuration,
		locationURL:   locationURL,
		forecastURL:   forecastURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the cached observation, kicking off a background refresh
// when it is stale. It never blocks on the network; before the first fetch
// completes it returns ok=false.
func (s *Service) Current() (Observation, bool) {
	obs := s.cached.Load()
	stale := obs == nil || time.Since(obs.FetchedAt) > s.cacheDuration

	if stale && s.updating.CompareAndSwap(false, true) {
		go func() {
			defer s.updating.Store(false)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.refresh(ctx); err != nil {
				s.logger.Error("weather update failed", "error", err)
			}
		}()
	}

	if obs == nil {
		return Observation{}, false
	}
	return *obs, true
}

// Refresh fetches an observation synchronously, used at startup to warm the
// cache before the first frame.
func (s *Service) Refresh(ctx context.Context) error {
	return s.refresh(ctx)
}

func (s *Service) refresh(ctx context.Context) error {
	lat, lon, err := s.location(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve location: %w", err)
	}

	var payload struct {
		CurrentWeather Observation `json:"current_weather"`
	}
	if err := s.getJSON(ctx, fmt.Sprintf(s.forecastURL, lat, lon), &payload); err != nil {
		return fmt.Errorf("failed to fetch forecast: %w", err)
	}

	obs := payload.CurrentWeather
	obs.FetchedAt = time.Now()
	s.cached.Store(&obs)
	s.logger.Debug("weather updated",
		"temperature", obs.Temperature, "code", obs.WeatherCode)
	return nil
}

// location returns the coordinates to query, resolving them once through
// ip-api.com when none were pinned.
func (s *Service) location(ctx context.Context) (float64, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loc {
		return s.lat, s.lon, nil
	}

	var payload struct {
		Status string  `json:"status"`
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
	}
	if err := s.getJSON(ctx, s.locationURL, &payload); err != nil {
		return 0, 0, err
	}
	if payload.Status != "success" {
		return 0, 0, fmt.Errorf("geolocation returned status %q", payload.Status)
	}

	s.lat, s.lon, s.loc = payload.Lat, payload.Lon, true
	return s.lat, s.lon, nil
}

func (s *Service) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
