package widget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestClockFormatTime(t *testing.T) {
	afternoon := time.Date(2025, 6, 15, 14, 30, 45, 0, time.Local)

	tests := []struct {
		name        string
		format      string
		showSeconds bool
		want        string
	}{
		{"24 hour", "24", false, "14:30"},
		{"24 hour with seconds", "24", true, "14:30:45"},
		{"12 hour", "12", false, "02:30 PM"},
		{"12 hour with seconds", "12", true, "02:30:45 PM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClock(Options{ScreenSize: 64})
			c.now = fixedTime(afternoon)
			c.SetProperty("time_format", tt.format)
			c.SetProperty("show_seconds", tt.showSeconds)
			assert.Equal(t, tt.want, c.FormatTime())
		})
	}
}

func TestClockRenderData(t *testing.T) {
	c := NewClock(Options{X: 12, Y: 28, ScreenSize: 64})
	c.now = fixedTime(time.Date(2025, 6, 15, 9, 5, 0, 0, time.Local))
	c.SetProperty("text_color", RGB{0, 255, 0})

	rec := c.RenderData()
	assert.Equal(t, RecordText, rec.Type)
	assert.Equal(t, "09:05", rec.Text)
	assert.Equal(t, 12, rec.X)
	assert.Equal(t, 28, rec.Y)
	assert.Equal(t, RGB{0, 255, 0}, rec.Color)
	assert.Nil(t, rec.Background)
}

func TestClockSecondsIntervalWarning(t *testing.T) {
	c := NewClock(Options{ScreenSize: 64})
	c.SetProperty("show_seconds", true)
	c.SetUpdateInterval(60)

	errs := c.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "update interval")

	c.SetUpdateInterval(1)
	assert.Empty(t, c.Validate())
}
