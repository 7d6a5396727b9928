package widget

import (
	"strings"
	"time"
)

// TypeDate is the registered type name of the date widget.
const TypeDate = "Date"

// Date displays the current date in a configurable strftime-style format,
// optionally prefixed with the day of week.
type Date struct {
	*Base
	now func() time.Time
}

// NewDate creates a date widget with default properties.
func NewDate(opts Options) *Date {
	d := &Date{Base: newBase(TypeDate, opts), now: time.Now}
	d.SetProperty("format", "%m/%d/%y")
	d.SetProperty("color", RGB{255, 255, 255})
	d.SetProperty("show_day_of_week", true)
	resolveSize(d, d.Base, opts)
	// Short interval so the date rolls over promptly at midnight.
	d.updateInterval = 60
	return d
}

func (d *Date) DefaultSize(screenSize int) (int, int) {
	scale := float64(screenSize) / 64.0
	return int(48 * scale), int(12 * scale)
}

// strftimeToLayout maps the strftime directives the date format property
// uses onto Go reference-time layout fragments. Layout files written by the
// original configuration tooling carry strftime formats, so they are
// honored rather than replaced with Go layouts.
var strftimeToLayout = strings.NewReplacer(
	"%a", "Mon",
	"%A", "Monday",
	"%b", "Jan",
	"%B", "January",
	"%d", "02",
	"%m", "01",
	"%y", "06",
	"%Y", "2006",
	"%H", "15",
	"%I", "03",
	"%M", "04",
	"%S", "05",
	"%p", "PM",
	"%%", "%",
)

func (d *Date) RenderData() Record {
	now := d.now()
	format := asString(d.Property("format", "%m/%d/%y"), "%m/%d/%y")
	text := now.Format(strftimeToLayout.Replace(format))

	if asBool(d.Property("show_day_of_week", true), true) {
		text = now.Format("Monday") + " " + text
	}

	return Record{
		Type:  RecordText,
		Text:  text,
		X:     d.x,
		Y:     d.y,
		Color: asColor(d.Property("color", nil), RGB{255, 255, 255}),
	}
}

func (d *Date) Validate() []string {
	errs := d.validateBase()

	color := d.Property("color", RGB{255, 255, 255})
	if !isColorLike(color) || !asColor(color, RGB{}).Valid() {
		errs = append(errs, "color must be RGB values between 0 and 255")
	}

	return errs
}

func (d *Date) PropertySchema() Schema {
	return Schema{
		"format": {
			Type:        PropString,
			Label:       "Date Format",
			Default:     "%m/%d/%y",
			Description: "strftime-style date format",
		},
		"show_day_of_week": {
			Type:    PropBoolean,
			Label:   "Show Day of Week",
			Default: true,
		},
		"color": {
			Type:    PropColor,
			Label:   "Text Color",
			Default: RGB{255, 255, 255},
		},
	}
}
