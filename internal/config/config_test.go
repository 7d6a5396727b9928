package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelmat/pixelmat/internal/widget"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 80, cfg.Port)
	assert.Equal(t, 64, cfg.ScreenSize)
	assert.Equal(t, 80, cfg.Brightness)
	assert.Equal(t, "24", cfg.TimeFormat)
	assert.Equal(t, 60, cfg.UpdateInterval)
	assert.True(t, cfg.ShowWeather)
	assert.Equal(t, 1800, cfg.WeatherInterval)
	assert.Equal(t, 5, cfg.ConnectionRetries)
	assert.Empty(t, cfg.Validate())
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"ip_address": "192.168.1.50",
		"brightness": 40,
		"time_format": "12",
		"text_color": [0, 255, 0]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.50", cfg.IPAddress)
	assert.Equal(t, 40, cfg.Brightness)
	assert.Equal(t, "12", cfg.TimeFormat)
	assert.Equal(t, widget.RGB{0, 255, 0}, cfg.TextColor)
	// Untouched fields keep defaults.
	assert.Equal(t, 64, cfg.ScreenSize)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "ip_address: 10.0.0.7\nscreen_size: 32\nshow_weather: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", cfg.IPAddress)
	assert.Equal(t, 32, cfg.ScreenSize)
	assert.False(t, cfg.ShowWeather)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/no/such/config.json")
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"config.json", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			cfg := Default()
			cfg.IPAddress = "192.168.1.99"
			cfg.Brightness = 33
			cfg.TextColor = widget.RGB{1, 2, 3}
			require.NoError(t, cfg.Save(path))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PIXOO_IP", "172.16.0.5")
	t.Setenv("PIXOO_BRIGHTNESS", "55")
	t.Setenv("PIXOO_TIME_FORMAT", "12")
	t.Setenv("PIXOO_DEBUG", "true")
	t.Setenv("PIXOO_SHOW_WEATHER", "false")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "172.16.0.5", cfg.IPAddress)
	assert.Equal(t, 55, cfg.Brightness)
	assert.Equal(t, "12", cfg.TimeFormat)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.ShowWeather)
}

func TestApplyEnvBadIntIgnored(t *testing.T) {
	t.Setenv("PIXOO_PORT", "not-a-port")

	cfg := Default()
	cfg.ApplyEnv()
	assert.Equal(t, 80, cfg.Port)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Port = 0
	cfg.TimeFormat = "25"
	cfg.Brightness = 150
	cfg.UpdateInterval = 0
	cfg.ScreenSize = 48
	cfg.TextColor = widget.RGB{-1, 0, 0}

	errs := cfg.Validate()
	assert.Len(t, errs, 6)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("255, 128, 0")
	require.NoError(t, err)
	assert.Equal(t, widget.RGB{255, 128, 0}, c)

	_, err = ParseColor("255,128")
	assert.Error(t, err)
	_, err = ParseColor("255,128,abc")
	assert.Error(t, err)
	_, err = ParseColor("300,0,0")
	assert.Error(t, err)
}
