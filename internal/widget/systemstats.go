package widget

import (
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

// TypeSystemStats is the registered type name of the system stats widget.
const TypeSystemStats = "SystemStats"

// SystemStats displays host CPU, memory and disk usage as labeled bars.
type SystemStats struct {
	*Base
	// gather is swappable for tests; the default reads live host stats.
	gather func() map[string]float64
}

// NewSystemStats creates a system stats widget monitoring CPU, memory and
// disk by default.
func NewSystemStats(opts Options) *SystemStats {
	s := &SystemStats{Base: newBase(TypeSystemStats, opts), gather: hostStats}
	s.SetProperty("metrics", []string{"CPU", "Memory", "Disk"})
	s.SetProperty("color", RGB{144, 238, 144})
	resolveSize(s, s.Base, opts)
	s.updateInterval = 5
	return s
}

// hostStats samples current usage percentages. Failures degrade to zero
// values rather than erroring; a stats widget should never take down a
// render pass.
func hostStats() map[string]float64 {
	stats := map[string]float64{"cpu": 0, "memory": 0, "disk": 0}

	// Interval 0 returns usage since the previous call without blocking.
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats["cpu"] = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats["memory"] = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		stats["disk"] = du.UsedPercent
	}

	return stats
}

func (s *SystemStats) DefaultSize(screenSize int) (int, int) {
	scale := float64(screenSize) / 64.0
	metrics := asStrings(s.Property("metrics", nil), []string{"CPU", "Memory", "Disk"})

	width := max(int(60*scale), len(metrics)*20)
	height := max(int(30*scale), 15)
	return width, height
}

// statLabels maps a configured metric name to its bar label and stats key.
var statLabels = map[string][2]string{
	"cpu":    {"CPU", "cpu"},
	"memory": {"MEM", "memory"},
	"disk":   {"DSK", "disk"},
}

func (s *SystemStats) RenderData() Record {
	stats := s.gather()
	metrics := asStrings(s.Property("metrics", nil), []string{"CPU", "Memory", "Disk"})

	var out []Stat
	for _, metric := range metrics {
		entry, ok := statLabels[strings.ToLower(metric)]
		if !ok {
			continue
		}
		out = append(out, Stat{Label: entry[0], Value: stats[entry[1]]})
	}

	return Record{
		Type:   RecordSystemStats,
		X:      s.x,
		Y:      s.y,
		Width:  s.width,
		Height: s.height,
		Color:  asColor(s.Property("color", nil), RGB{144, 238, 144}),
		Stats:  out,
	}
}

func (s *SystemStats) Validate() []string {
	errs := s.validateBase()

	color := s.Property("color", RGB{144, 238, 144})
	if !isColorLike(color) || !asColor(color, RGB{}).Valid() {
		errs = append(errs, "color must be RGB values between 0 and 255")
	}

	return errs
}

func (s *SystemStats) PropertySchema() Schema {
	return Schema{
		"metrics": {
			Type:        PropMultiSelect,
			Label:       "Metrics to Display",
			Default:     []string{"CPU", "Memory", "Disk"},
			Options:     []string{"CPU", "Memory", "Disk"},
			Description: "Select which system metrics to display",
		},
		"update_interval": {
			Type:        PropInteger,
			Label:       "Update Interval",
			Default:     5,
			Min:         limit(1),
			Max:         limit(60),
			Description: "Update interval in seconds",
		},
		"color": {
			Type:        PropColor,
			Label:       "Bar Color",
			Default:     RGB{144, 238, 144},
			Description: "Color for the usage bars",
		},
	}
}
