// Command pixelmat drives a Divoom Pixoo display with a configurable
// widget layout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pixelmat/pixelmat/internal/app"
	"github.com/pixelmat/pixelmat/internal/config"
	"github.com/pixelmat/pixelmat/internal/device"
	"github.com/pixelmat/pixelmat/internal/discovery"
)

func main() {
	os.Exit(run())
}

func run() int {
	ip := flag.String("ip", "", "IP address of Pixoo device")
	port := flag.Int("port", 0, "Port of Pixoo device (default: 80)")
	discover := flag.Bool("discover", false, "Auto-discover Pixoo devices on network")
	format := flag.String("format", "", "Time format: 12 or 24 (default: 24)")
	brightness := flag.Int("brightness", -1, "Screen brightness, 0-100 (default: 80)")
	color := flag.String("color", "", "Text color as R,G,B (e.g., 255,255,255)")
	screenSize := flag.Int("screen-size", 0, "Screen size: 16, 32, or 64 (default: 64)")
	noWeather := flag.Bool("no-weather", false, "Disable weather display")
	interval := flag.Int("interval", 0, "Update interval in seconds (default: 60)")
	configPath := flag.String("config", "", "Path to configuration file (.json or .yaml)")
	debug := flag.Bool("debug", false, "Enable debug output")
	saveConfig := flag.String("save-config", "", "Save current settings to config file and exit")
	layoutConfig := flag.String("layout-config", "", "Path to widget layout configuration file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	// Command line flags win over file and environment.
	if *ip != "" {
		cfg.IPAddress = *ip
	}
	if *port > 0 {
		cfg.Port = *port
	}
	if *format != "" {
		cfg.TimeFormat = *format
	}
	if *brightness >= 0 {
		cfg.Brightness = *brightness
	}
	if *screenSize > 0 {
		cfg.ScreenSize = *screenSize
	}
	if *interval > 0 {
		cfg.UpdateInterval = *interval
	}
	if *noWeather {
		cfg.ShowWeather = false
	}
	if *discover {
		cfg.AutoDiscover = true
	}
	if *debug {
		cfg.Debug = true
	}
	if *layoutConfig != "" {
		cfg.LayoutConfig = *layoutConfig
	}
	if *color != "" {
		c, err := config.ParseColor(*color)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		cfg.TextColor = c
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			logger.Error("invalid configuration", "detail", e)
		}
		return 1
	}

	if *saveConfig != "" {
		if err := cfg.Save(*saveConfig); err != nil {
			logger.Error("failed to save config", "path", *saveConfig, "error", err)
			return 1
		}
		logger.Info("configuration saved", "path", *saveConfig)
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.IPAddress == "" && cfg.AutoDiscover {
		scanner := discovery.NewScanner(cfg.Port, 2*time.Second, logger)
		devices, err := scanner.Scan(ctx)
		if err != nil {
			logger.Error("discovery failed", "error", err)
			return 1
		}
		if len(devices) == 0 {
			logger.Error("no Pixoo devices found on the network")
			return 1
		}
		for _, d := range devices {
			logger.Info("discovered device", "name", d.Name, "ip", d.IP)
		}
		cfg.IPAddress = devices[0].IP
	}
	if cfg.IPAddress == "" {
		logger.Error("no device address; pass --ip or --discover")
		return 1
	}

	pixoo := device.New(cfg.IPAddress, cfg.ScreenSize,
		device.WithPort(cfg.Port), device.WithLogger(logger))

	application, err := app.New(cfg, pixoo, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return 1
	}

	if err := application.Connect(ctx); err != nil {
		logger.Error("cannot reach device", "ip", cfg.IPAddress, "error", err)
		return 1
	}

	logger.Info("display running", "ip", cfg.IPAddress, "screen_size", cfg.ScreenSize)
	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("display loop failed", "error", err)
		return 1
	}
	logger.Info("shutting down")
	return 0
}
