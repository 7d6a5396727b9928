package widget

import (
	"time"
)

// TypeClock is the registered type name of the clock widget.
const TypeClock = "Clock"

// Clock displays the current time in 12- or 24-hour format.
type Clock struct {
	*Base
	now func() time.Time
}

// NewClock creates a clock widget with default properties.
func NewClock(opts Options) *Clock {
	c := &Clock{Base: newBase(TypeClock, opts), now: time.Now}
	c.SetProperty("time_format", "24")
	c.SetProperty("show_seconds", false)
	c.SetProperty("font_size", 4)
	c.SetProperty("text_color", RGB{255, 255, 255})
	c.SetProperty("background_color", nil)
	resolveSize(c, c.Base, opts)
	return c
}

// DefaultSize estimates the rendered time string's footprint from the
// configured format and font size.
func (c *Clock) DefaultSize(screenSize int) (int, int) {
	format := asString(c.Property("time_format", "24"), "24")
	showSeconds := asBool(c.Property("show_seconds", false), false)

	var textLength int
	if format == "12" {
		textLength = 8 // HH:MM AM
		if showSeconds {
			textLength = 11 // HH:MM:SS AM
		}
	} else {
		textLength = 5 // HH:MM
		if showSeconds {
			textLength = 8 // HH:MM:SS
		}
	}

	fontSize := asInt(c.Property("font_size", 4), 4)
	width := textLength * fontSize
	height := fontSize + 2
	return min(width, screenSize), min(height, screenSize)
}

// FormatTime renders the current time according to the widget settings.
func (c *Clock) FormatTime() string {
	now := c.now()
	format := asString(c.Property("time_format", "24"), "24")
	showSeconds := asBool(c.Property("show_seconds", false), false)

	switch {
	case format == "12" && showSeconds:
		return now.Format("03:04:05 PM")
	case format == "12":
		return now.Format("03:04 PM")
	case showSeconds:
		return now.Format("15:04:05")
	default:
		return now.Format("15:04")
	}
}

func (c *Clock) RenderData() Record {
	return Record{
		Type:       RecordText,
		Text:       c.FormatTime(),
		X:          c.x,
		Y:          c.y,
		Color:      asColor(c.Property("text_color", nil), RGB{255, 255, 255}),
		Background: asColorPtr(c.Property("background_color", nil)),
	}
}

func (c *Clock) Validate() []string {
	errs := c.validateBase()

	format := asString(c.Property("time_format", "24"), "24")
	if format != "12" && format != "24" {
		errs = append(errs, "time format must be '12' or '24'")
	}

	color := c.Property("text_color", RGB{255, 255, 255})
	if !isColorLike(color) || !asColor(color, RGB{}).Valid() {
		errs = append(errs, "text color must be RGB values between 0 and 255")
	}

	if asBool(c.Property("show_seconds", false), false) && c.updateInterval > 1 {
		errs = append(errs, "update interval should be 1 second or less when showing seconds")
	}

	return errs
}

func (c *Clock) PropertySchema() Schema {
	return Schema{
		"time_format": {
			Type:    PropString,
			Label:   "Time Format",
			Default: "24",
		},
		"show_seconds": {
			Type:    PropBoolean,
			Label:   "Show Seconds",
			Default: false,
		},
		"font_size": {
			Type:    PropInteger,
			Label:   "Font Size",
			Default: 4,
			Min:     limit(2),
			Max:     limit(8),
		},
		"text_color": {
			Type:    PropColor,
			Label:   "Text Color",
			Default: RGB{255, 255, 255},
		},
	}
}
