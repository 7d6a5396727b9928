package widget

import (
	"fmt"
	"time"
)

// TypeStopwatch is the registered type name of the stopwatch widget.
const TypeStopwatch = "Stopwatch"

// Stopwatch states, driven externally via the "state" property.
const (
	StopwatchStopped = "stopped"
	StopwatchRunning = "running"
	StopwatchReset   = "reset"
)

// Stopwatch displays elapsed time with start/stop/reset semantics. The
// state machine moves in Advance, which the application loop invokes once
// per render cycle; RenderData only reads. Setting the "state" property to
// "reset" is one-shot: the next Advance zeroes the elapsed time and
// persists state "stopped".
type Stopwatch struct {
	*Base
	now func() time.Time
}

// NewStopwatch creates a stopped stopwatch widget.
func NewStopwatch(opts Options) *Stopwatch {
	s := &Stopwatch{Base: newBase(TypeStopwatch, opts), now: time.Now}
	s.SetProperty("state", StopwatchStopped)
	s.SetProperty("start_time", nil)
	s.SetProperty("elapsed_seconds", 0.0)
	s.SetProperty("label", "Stopwatch")
	s.SetProperty("color", RGB{255, 255, 255})
	resolveSize(s, s.Base, opts)
	return s
}

func (s *Stopwatch) DefaultSize(screenSize int) (int, int) {
	scale := float64(screenSize) / 64.0
	return int(60 * scale), int(20 * scale)
}

// Advance moves the stopwatch state machine and adjusts the refresh
// cadence: per-second while running, relaxed while stopped.
func (s *Stopwatch) Advance(now time.Time) {
	switch asString(s.Property("state", StopwatchStopped), StopwatchStopped) {
	case StopwatchRunning:
		if asString(s.Property("start_time", ""), "") == "" {
			s.SetProperty("start_time", now.Format(time.RFC3339Nano))
		}
		s.updateInterval = 1
	case StopwatchReset:
		s.SetProperty("elapsed_seconds", 0.0)
		s.SetProperty("start_time", nil)
		s.SetProperty("state", StopwatchStopped)
		s.updateInterval = 60
	default:
		s.updateInterval = 60
	}
}

// elapsed returns the total accumulated seconds, including the live span
// since start_time when running.
func (s *Stopwatch) elapsed(now time.Time) float64 {
	total := asFloat(s.Property("elapsed_seconds", 0.0), 0)
	if asString(s.Property("state", ""), "") != StopwatchRunning {
		return total
	}
	startStr := asString(s.Property("start_time", ""), "")
	if startStr == "" {
		return total
	}
	start, err := time.Parse(time.RFC3339Nano, startStr)
	if err != nil {
		return total
	}
	return total + now.Sub(start).Seconds()
}

// FormatSeconds renders a duration in seconds as HH:MM:SS.
func FormatSeconds(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func (s *Stopwatch) RenderData() Record {
	label := asString(s.Property("label", "Stopwatch"), "Stopwatch")
	return Record{
		Type:  RecordText,
		Text:  label + "\n" + FormatSeconds(s.elapsed(s.now())),
		X:     s.x,
		Y:     s.y,
		Color: asColor(s.Property("color", nil), RGB{255, 255, 255}),
	}
}

func (s *Stopwatch) Validate() []string {
	errs := s.validateBase()

	switch asString(s.Property("state", StopwatchStopped), StopwatchStopped) {
	case StopwatchStopped, StopwatchRunning, StopwatchReset:
	default:
		errs = append(errs, "state must be 'stopped', 'running' or 'reset'")
	}

	color := s.Property("color", RGB{255, 255, 255})
	if !isColorLike(color) || !asColor(color, RGB{}).Valid() {
		errs = append(errs, "color must be RGB values between 0 and 255")
	}

	return errs
}

func (s *Stopwatch) PropertySchema() Schema {
	return Schema{
		"state": {
			Type:        PropSelect,
			Label:       "State",
			Default:     StopwatchStopped,
			Options:     []string{StopwatchStopped, StopwatchRunning, StopwatchReset},
			Description: "Current state of the stopwatch",
		},
		"label": {
			Type:        PropString,
			Label:       "Label",
			Default:     "Stopwatch",
			Description: "Label to display above the stopwatch",
		},
		"color": {
			Type:        PropColor,
			Label:       "Text Color",
			Default:     RGB{255, 255, 255},
			Description: "The color of the stopwatch text",
		},
	}
}
