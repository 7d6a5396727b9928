package widget

import (
	"fmt"
	"time"
)

// TypeCountdown is the registered type name of the countdown widget.
const TypeCountdown = "Countdown"

// targetDateLayout is the accepted target_date format.
const targetDateLayout = "2006-01-02 15:04:05"

// Countdown counts down to a target date, displaying the remaining time as
// DD:HH:MM:SS. An unparsable target date produces an in-band error record
// rather than failing the render pass.
type Countdown struct {
	*Base
	now func() time.Time
}

// NewCountdown creates a countdown widget targeting next New Year by
// default.
func NewCountdown(opts Options) *Countdown {
	c := &Countdown{Base: newBase(TypeCountdown, opts), now: time.Now}
	nextYear := time.Date(time.Now().Year()+1, time.January, 1, 0, 0, 0, 0, time.Local)
	c.SetProperty("target_date", nextYear.Format(targetDateLayout))
	c.SetProperty("label", "Countdown")
	c.SetProperty("color", RGB{255, 255, 255})
	resolveSize(c, c.Base, opts)
	// Per-second updates keep the countdown accurate.
	c.updateInterval = 1
	return c
}

func (c *Countdown) DefaultSize(screenSize int) (int, int) {
	scale := float64(screenSize) / 64.0
	return int(50 * scale), int(20 * scale)
}

func (c *Countdown) RenderData() Record {
	targetStr := asString(c.Property("target_date", ""), "")
	label := asString(c.Property("label", "Countdown"), "Countdown")
	color := asColor(c.Property("color", nil), RGB{255, 255, 255})

	target, err := time.ParseInLocation(targetDateLayout, targetStr, time.Local)
	if err != nil {
		return Record{
			Type:  RecordText,
			Text:  "Invalid date format",
			X:     c.x,
			Y:     c.y,
			Color: RGB{255, 0, 0},
		}
	}

	now := c.now()
	var text string
	if !now.Before(target) {
		text = "00:00:00:00"
	} else {
		delta := target.Sub(now)
		days := int(delta.Hours()) / 24
		hours := int(delta.Hours()) % 24
		minutes := int(delta.Minutes()) % 60
		seconds := int(delta.Seconds()) % 60
		text = fmt.Sprintf("%02d:%02d:%02d:%02d", days, hours, minutes, seconds)
	}

	return Record{
		Type:  RecordText,
		Text:  label + "\n" + text,
		X:     c.x,
		Y:     c.y,
		Color: color,
	}
}

func (c *Countdown) Validate() []string {
	errs := c.validateBase()

	color := c.Property("color", RGB{255, 255, 255})
	if !isColorLike(color) || !asColor(color, RGB{}).Valid() {
		errs = append(errs, "color must be RGB values between 0 and 255")
	}

	return errs
}

func (c *Countdown) PropertySchema() Schema {
	return Schema{
		"target_date": {
			Type:        PropString,
			Label:       "Target Date",
			Default:     "2024-01-01 00:00:00",
			Description: "Target date and time in YYYY-MM-DD HH:MM:SS format",
		},
		"label": {
			Type:        PropString,
			Label:       "Label",
			Default:     "Countdown",
			Description: "Label to display above the countdown",
		},
		"color": {
			Type:        PropColor,
			Label:       "Text Color",
			Default:     RGB{255, 255, 255},
			Description: "The color of the countdown text",
		},
	}
}
