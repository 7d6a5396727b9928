package widget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateFormats(t *testing.T) {
	// A Saturday.
	day := time.Date(2025, 6, 14, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		format  string
		showDay bool
		want    string
	}{
		{"default with day", "%m/%d/%y", true, "Saturday 06/14/25"},
		{"default without day", "%m/%d/%y", false, "06/14/25"},
		{"long form", "%B %d, %Y", false, "June 14, 2025"},
		{"abbreviated", "%a %b %d", false, "Sat Jun 14"},
		{"literal percent", "%d%%", false, "14%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDate(Options{ScreenSize: 64})
			d.now = fixedTime(day)
			d.SetProperty("format", tt.format)
			d.SetProperty("show_day_of_week", tt.showDay)
			assert.Equal(t, tt.want, d.RenderData().Text)
		})
	}
}

func TestSystemStatsRenderData(t *testing.T) {
	s := NewSystemStats(Options{X: 2, Y: 2, Width: 60, Height: 40, ScreenSize: 64})
	s.gather = func() map[string]float64 {
		return map[string]float64{"cpu": 42.5, "memory": 61.2, "disk": 80.0}
	}

	rec := s.RenderData()
	assert.Equal(t, RecordSystemStats, rec.Type)
	assert.Equal(t, []Stat{
		{Label: "CPU", Value: 42.5},
		{Label: "MEM", Value: 61.2},
		{Label: "DSK", Value: 80.0},
	}, rec.Stats)
}

func TestSystemStatsMetricSelection(t *testing.T) {
	s := NewSystemStats(Options{ScreenSize: 64})
	s.gather = func() map[string]float64 {
		return map[string]float64{"cpu": 10, "memory": 20, "disk": 30}
	}
	// Mixed case and an unknown metric, as a layout file might carry.
	s.SetProperty("metrics", []any{"cpu", "Disk", "GPU"})

	rec := s.RenderData()
	assert.Equal(t, []Stat{
		{Label: "CPU", Value: 10},
		{Label: "DSK", Value: 30},
	}, rec.Stats)
}
