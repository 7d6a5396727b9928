package layout

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/pixelmat/pixelmat/internal/widget"
)

// ToMap converts the layout to its file representation. Persisted
// positions are clamped onto the screen: dragging can leave a widget
// transiently outside, but layout files never record that.
func (l *Layout) ToMap() map[string]any {
	widgets := make([]map[string]any, 0, len(l.widgets))
	for _, w := range l.Widgets() {
		m := w.ToMap()
		x, y := w.Position()
		width, height := w.Size()
		m["x"] = min(max(x, 0), max(l.screenSize-width, 0))
		m["y"] = min(max(y, 0), max(l.screenSize-height, 0))
		widgets = append(widgets, m)
	}
	return map[string]any{
		"screen_size":      l.screenSize,
		"background_color": []int{l.background[0], l.background[1], l.background[2]},
		"widgets":          widgets,
	}
}

// FromMap reconstructs a layout from its file representation. Widget
// entries whose type resolves through neither the built-in factories nor
// the registry are skipped with a logged warning: one bad entry never
// aborts loading the rest. Malformed fields coerce to defaults rather
// than failing the load.
func FromMap(data map[string]any, reg *widget.Registry, logger *slog.Logger) *Layout {
	screenSize := intValue(data["screen_size"], 64)
	l := New(screenSize)
	l.SetLogger(logger)

	if bg, ok := colorValue(data["background_color"]); ok {
		l.background = bg
	}

	rawWidgets, _ := data["widgets"].([]any)
	for _, raw := range rawWidgets {
		entry, ok := raw.(map[string]any)
		if !ok {
			l.logger.Warn("skipping malformed widget entry in layout")
			continue
		}
		w := widget.FromMap(entry, screenSize, reg)
		if w == nil {
			typ, _ := entry["type"].(string)
			l.logger.Warn("skipping widget with unknown type", "type", typ)
			continue
		}
		l.Add(w)
	}

	return l
}

// Save writes the layout to path as indented JSON.
func (l *Layout) Save(path string) error {
	data, err := json.MarshalIndent(l.ToMap(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write layout file: %w", err)
	}
	return nil
}

// Load reads a layout file written by Save.
func Load(path string, reg *widget.Registry, logger *slog.Logger) (*Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse layout file %s: %w", path, err)
	}
	return FromMap(data, reg, logger), nil
}

func intValue(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return def
}

func colorValue(v any) (widget.RGB, bool) {
	switch c := v.(type) {
	case []int:
		if len(c) == 3 {
			return widget.RGB{c[0], c[1], c[2]}, true
		}
	case []any:
		if len(c) == 3 {
			return widget.RGB{intValue(c[0], 0), intValue(c[1], 0), intValue(c[2], 0)}, true
		}
	case widget.RGB:
		return c, true
	}
	return widget.RGB{}, false
}
