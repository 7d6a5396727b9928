// Package config holds the application configuration with JSON and YAML
// file support plus environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pixelmat/pixelmat/internal/widget"
)

// Config represents the application configuration.
type Config struct {
	// Device settings
	IPAddress  string `json:"ip_address" yaml:"ip_address"`
	Port       int    `json:"port" yaml:"port"`
	ScreenSize int    `json:"screen_size" yaml:"screen_size"`
	Brightness int    `json:"brightness" yaml:"brightness"`

	// Time settings
	TimeFormat     string `json:"time_format" yaml:"time_format"`
	UpdateInterval int    `json:"update_interval" yaml:"update_interval"`

	// Display settings
	TextColor       widget.RGB `json:"text_color" yaml:"text_color,flow"`
	BackgroundColor widget.RGB `json:"background_color" yaml:"background_color,flow"`
	ShowWeather     bool       `json:"show_weather" yaml:"show_weather"`
	WeatherInterval int        `json:"weather_interval" yaml:"weather_interval"`

	// Layout settings
	LayoutConfig string `json:"layout_config" yaml:"layout_config"`
	PluginDir    string `json:"plugin_dir" yaml:"plugin_dir"`

	// Advanced settings
	Debug             bool `json:"debug" yaml:"debug"`
	AutoDiscover      bool `json:"auto_discover" yaml:"auto_discover"`
	ConnectionRetries int  `json:"connection_retries" yaml:"connection_retries"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Port:              80,
		ScreenSize:        64,
		Brightness:        80,
		TimeFormat:        "24",
		UpdateInterval:    60,
		TextColor:         widget.RGB{255, 255, 255},
		BackgroundColor:   widget.RGB{0, 0, 0},
		ShowWeather:       true,
		WeatherInterval:   1800,
		ConnectionRetries: 5,
	}
}

// Load reads a configuration file on top of the defaults. The format is
// chosen by extension: .yaml/.yml parses as YAML, anything else as JSON.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to a file, format chosen by extension as
// in Load.
func (c *Config) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv overlays PIXOO_* environment variables onto the configuration.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PIXOO_IP"); v != "" {
		c.IPAddress = v
	}
	if v, ok := envInt("PIXOO_PORT"); ok {
		c.Port = v
	}
	if v, ok := envInt("PIXOO_SCREEN_SIZE"); ok {
		c.ScreenSize = v
	}
	if v, ok := envInt("PIXOO_BRIGHTNESS"); ok {
		c.Brightness = v
	}
	if v := os.Getenv("PIXOO_TIME_FORMAT"); v != "" {
		c.TimeFormat = v
	}
	if v, ok := envInt("PIXOO_UPDATE_INTERVAL"); ok {
		c.UpdateInterval = v
	}
	if v := os.Getenv("PIXOO_DEBUG"); v != "" {
		c.Debug = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("PIXOO_SHOW_WEATHER"); v != "" {
		c.ShowWeather = strings.EqualFold(v, "true")
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() []string {
	var errs []string

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, "port must be between 1 and 65535")
	}
	if c.TimeFormat != "12" && c.TimeFormat != "24" {
		errs = append(errs, "time_format must be '12' or '24'")
	}
	if c.Brightness < 0 || c.Brightness > 100 {
		errs = append(errs, "brightness must be between 0 and 100")
	}
	if c.UpdateInterval < 1 {
		errs = append(errs, "update_interval must be at least 1 second")
	}
	if c.ScreenSize != 16 && c.ScreenSize != 32 && c.ScreenSize != 64 {
		errs = append(errs, "screen_size must be 16, 32, or 64")
	}
	if !c.TextColor.Valid() {
		errs = append(errs, "text_color must be RGB values between 0 and 255")
	}
	if !c.BackgroundColor.Valid() {
		errs = append(errs, "background_color must be RGB values between 0 and 255")
	}

	return errs
}

// ParseColor parses a command line "R,G,B" color triple.
func ParseColor(s string) (widget.RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return widget.RGB{}, fmt.Errorf("color must be in format R,G,B (e.g., 255,255,255)")
	}
	var c widget.RGB
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return widget.RGB{}, fmt.Errorf("color must be in format R,G,B (e.g., 255,255,255)")
		}
		c[i] = n
	}
	if !c.Valid() {
		return widget.RGB{}, fmt.Errorf("color values must be between 0 and 255")
	}
	return c, nil
}
