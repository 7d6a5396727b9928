package widget

import "fmt"

// TypeWeather is the registered type name of the weather widget.
const TypeWeather = "Weather"

// WeatherFunc supplies the last-known-good weather reading. Implementations
// must return immediately (possibly with stale data); ok is false when no
// reading has been obtained yet.
type WeatherFunc func() (temperature float64, weatherCode int, ok bool)

// Weather displays the current temperature and, when available, a condition
// icon. The reading comes from an injected WeatherFunc so the widget stays
// decoupled from the fetching service.
type Weather struct {
	*Base
	source WeatherFunc
}

// NewWeather creates a weather widget with default properties and no data
// source; without a source it renders a placeholder.
func NewWeather(opts Options) *Weather {
	w := &Weather{Base: newBase(TypeWeather, opts)}
	w.SetProperty("temperature_unit", "C")
	w.SetProperty("show_icon", true)
	w.SetProperty("font_size", 3)
	w.SetProperty("text_color", RGB{255, 255, 255})
	w.SetProperty("background_color", nil)
	w.SetProperty("api_provider", "open-meteo")
	resolveSize(w, w.Base, opts)
	// Weather changes slowly; default to a 30 minute cadence.
	w.updateInterval = 1800
	return w
}

// SetSource wires the widget to a weather reading supplier.
func (w *Weather) SetSource(source WeatherFunc) { w.source = source }

func (w *Weather) DefaultSize(screenSize int) (int, int) {
	fontSize := asInt(w.Property("font_size", 3), 3)
	width := 6 * fontSize
	height := fontSize + 2
	return min(width, screenSize), min(height, screenSize)
}

// FormatTemperature renders a Celsius reading in the configured unit.
func (w *Weather) FormatTemperature(celsius float64) string {
	if asString(w.Property("temperature_unit", "C"), "C") == "F" {
		return fmt.Sprintf("%.0f°F", celsius*9/5+32)
	}
	return fmt.Sprintf("%.0f°C", celsius)
}

func (w *Weather) RenderData() Record {
	rec := Record{
		Type:       RecordText,
		X:          w.x,
		Y:          w.y,
		Color:      asColor(w.Property("text_color", nil), RGB{255, 255, 255}),
		Background: asColorPtr(w.Property("background_color", nil)),
		ShowIcon:   asBool(w.Property("show_icon", true), true),
	}

	if w.source == nil {
		rec.Text = "--°C"
		return rec
	}
	temp, code, ok := w.source()
	if !ok {
		rec.Text = "--°C"
		return rec
	}

	rec.Text = w.FormatTemperature(temp)
	rec.WeatherCode = &code
	return rec
}

func (w *Weather) Validate() []string {
	errs := w.validateBase()

	unit := asString(w.Property("temperature_unit", "C"), "C")
	if unit != "C" && unit != "F" {
		errs = append(errs, "temperature unit must be 'C' or 'F'")
	}

	color := w.Property("text_color", RGB{255, 255, 255})
	if !isColorLike(color) || !asColor(color, RGB{}).Valid() {
		errs = append(errs, "text color must be RGB values between 0 and 255")
	}

	return errs
}

func (w *Weather) PropertySchema() Schema {
	return Schema{
		"temperature_unit": {
			Type:    PropSelect,
			Label:   "Temperature Unit",
			Default: "C",
			Options: []string{"C", "F"},
		},
		"show_icon": {
			Type:    PropBoolean,
			Label:   "Show Icon",
			Default: true,
		},
		"font_size": {
			Type:    PropInteger,
			Label:   "Font Size",
			Default: 3,
		},
		"text_color": {
			Type:    PropColor,
			Label:   "Text Color",
			Default: RGB{255, 255, 255},
		},
	}
}
