// Package app wires configuration, widgets, layout, weather, and the device
// client into the display loop.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pixelmat/pixelmat/internal/config"
	"github.com/pixelmat/pixelmat/internal/layout"
	"github.com/pixelmat/pixelmat/internal/render"
	"github.com/pixelmat/pixelmat/internal/weather"
	"github.com/pixelmat/pixelmat/internal/widget"
)

// Display is the device contract the loop drives: the drawing sink plus a
// connectivity check.
type Display interface {
	render.Sink
	Probe() error
}

// App runs the widget display loop against one device.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *widget.Registry
	layout   *layout.Layout
	display  Display
	weather  *weather.Service
}

// New assembles an application: registers widget plugins, builds or loads
// the layout, and wires the weather source into weather widgets.
func New(cfg *config.Config, display Display, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		cfg:      cfg,
		logger:   logger,
		display:  display,
		registry: widget.NewRegistry(logger),
	}

	if cfg.PluginDir != "" {
		if err := a.registry.LoadDirectory(cfg.PluginDir); err != nil {
			logger.Warn("plugin directory load failed", "dir", cfg.PluginDir, "error", err)
		}
	}

	if cfg.ShowWeather {
		a.weather = weather.NewService(logger,
			weather.WithCacheDuration(time.Duration(cfg.WeatherInterval)*time.Second))
	}

	lay, err := a.buildLayout()
	if err != nil {
		return nil, err
	}
	a.setLayout(lay)

	return a, nil
}

// Registry exposes the widget plugin registry.
func (a *App) Registry() *widget.Registry { return a.registry }

// Layout exposes the active layout.
func (a *App) Layout() *layout.Layout { return a.layout }

func (a *App) buildLayout() (*layout.Layout, error) {
	if a.cfg.LayoutConfig != "" {
		lay, err := layout.Load(a.cfg.LayoutConfig, a.registry, a.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load layout %s: %w", a.cfg.LayoutConfig, err)
		}
		a.logger.Info("loaded layout", "path", a.cfg.LayoutConfig, "widgets", lay.Len())
		return lay, nil
	}
	return a.defaultLayout(), nil
}

// defaultLayout is a centered clock, with current conditions in the bottom
// right corner when weather is enabled.
func (a *App) defaultLayout() *layout.Layout {
	size := a.cfg.ScreenSize
	lay := layout.New(size)
	lay.SetLogger(a.logger)
	lay.SetBackground(a.cfg.BackgroundColor)

	clock := widget.NewClock(widget.Options{ScreenSize: size})
	clock.SetProperty("time_format", a.cfg.TimeFormat)
	clock.SetProperty("text_color", a.cfg.TextColor)
	cw, ch := clock.Size()
	clock.SetPosition((size-cw)/2, (size-ch)/2)
	clock.SetUpdateInterval(a.cfg.UpdateInterval)
	lay.Add(clock)

	if a.cfg.ShowWeather {
		w := widget.NewWeather(widget.Options{ScreenSize: size})
		ww, wh := w.Size()
		w.SetPosition(size-ww-2, size-wh-2)
		w.SetZIndex(1)
		w.SetUpdateInterval(a.cfg.WeatherInterval)
		lay.Add(w)
	}

	return lay
}

// setLayout swaps the active layout and rewires weather widgets to the
// shared weather service.
func (a *App) setLayout(lay *layout.Layout) {
	if a.weather != nil {
		source := func() (float64, int, bool) {
			obs, ok := a.weather.Current()
			return obs.Temperature, obs.WeatherCode, ok
		}
		for _, w := range lay.Widgets() {
			if ww, ok := w.(*widget.Weather); ok {
				ww.SetSource(source)
			}
		}
	}
	a.layout = lay
}

// Connect verifies the device is reachable, retrying with exponential
// backoff, then applies the configured brightness.
func (a *App) Connect(ctx context.Context) error {
	var lastErr error
	for attempt := 0; attempt < a.cfg.ConnectionRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			a.logger.Warn("connection failed, retrying",
				"attempt", attempt, "backoff", backoff, "error", lastErr)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if lastErr = a.display.Probe(); lastErr == nil {
			if err := a.display.SetBrightness(a.cfg.Brightness); err != nil {
				a.logger.Warn("failed to set brightness", "error", err)
			}
			a.logger.Info("connected to device")
			return nil
		}
	}
	return fmt.Errorf("device unreachable after %d attempts: %w",
		a.cfg.ConnectionRetries, lastErr)
}

// Run drives the display loop until the context is cancelled. It ticks
// every second and re-renders once the global update interval has elapsed,
// advancing widget state and marking due widgets on each render cycle.
// Push failures are logged and the loop continues.
func (a *App) Run(ctx context.Context) error {
	if errs := a.layout.Validate(); len(errs) > 0 {
		for _, e := range errs {
			a.logger.Warn("layout problem", "detail", e)
		}
	}

	if a.weather != nil {
		warmCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		if err := a.weather.Refresh(warmCtx); err != nil {
			a.logger.Warn("initial weather fetch failed", "error", err)
		}
		cancel()
	}

	reload := a.watchLayout(ctx)

	// First frame immediately, then gated on the global interval.
	lastRender := time.Now()
	a.renderFrame()

	interval := time.Duration(a.cfg.UpdateInterval) * time.Second
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.shutdown()
			return ctx.Err()
		case lay := <-reload:
			a.setLayout(lay)
			a.renderFrame()
			lastRender = time.Now()
		case now := <-ticker.C:
			if now.Sub(lastRender) < interval {
				continue
			}
			a.layout.Advance(now)
			a.layout.UpdateDue(now)
			a.renderFrame()
			lastRender = now
		}
	}
}

func (a *App) renderFrame() {
	render.Frame(a.display, a.layout.RenderData())
	if err := a.display.Push(); err != nil {
		a.logger.Error("frame push failed", "error", err)
	}
}

// watchLayout hot-reloads the layout file on change. A file that fails to
// parse keeps the previous layout running.
func (a *App) watchLayout(ctx context.Context) <-chan *layout.Layout {
	reload := make(chan *layout.Layout, 1)
	if a.cfg.LayoutConfig == "" {
		return reload
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		a.logger.Warn("layout watcher unavailable", "error", err)
		return reload
	}
	if err := watcher.Add(a.cfg.LayoutConfig); err != nil {
		a.logger.Warn("cannot watch layout file", "path", a.cfg.LayoutConfig, "error", err)
		watcher.Close()
		return reload
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				lay, err := layout.Load(a.cfg.LayoutConfig, a.registry, a.logger)
				if err != nil {
					a.logger.Error("layout reload failed, keeping previous",
						"path", a.cfg.LayoutConfig, "error", err)
					continue
				}
				a.logger.Info("layout reloaded", "widgets", lay.Len())
				select {
				case reload <- lay:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				a.logger.Warn("layout watcher error", "error", err)
			}
		}
	}()

	return reload
}

// shutdown blanks the display on a best-effort basis.
func (a *App) shutdown() {
	a.display.Fill(widget.RGB{0, 0, 0})
	if err := a.display.Push(); err != nil {
		a.logger.Debug("final clear failed", "error", err)
	}
}
