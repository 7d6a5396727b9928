package widget

// TypeProgressBar is the registered type name of the progress bar widget.
const TypeProgressBar = "ProgressBar"

// ProgressBar displays a horizontal bar filled to a fractional progress
// value, with an optional centered percentage readout.
type ProgressBar struct {
	*Base
}

// NewProgressBar creates a progress bar at 50% by default.
func NewProgressBar(opts Options) *ProgressBar {
	p := &ProgressBar{Base: newBase(TypeProgressBar, opts)}
	p.SetProperty("progress", 0.5)
	p.SetProperty("foreground_color", RGB{0, 255, 0})
	p.SetProperty("background_color", RGB{64, 64, 64})
	p.SetProperty("border_color", RGB{128, 128, 128})
	p.SetProperty("show_percentage", false)
	resolveSize(p, p.Base, opts)
	return p
}

func (p *ProgressBar) DefaultSize(screenSize int) (int, int) {
	scale := float64(screenSize) / 64.0
	return min(int(80*scale), screenSize), int(8 * scale)
}

// SetProgress stores a progress value clamped to [0, 1].
func (p *ProgressBar) SetProgress(progress float64) {
	p.SetProperty("progress", clamp01(progress))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (p *ProgressBar) RenderData() Record {
	return Record{
		Type:           RecordProgressBar,
		X:              p.x,
		Y:              p.y,
		Width:          p.width,
		Height:         p.height,
		Progress:       clamp01(asFloat(p.Property("progress", 0.5), 0.5)),
		Foreground:     asColor(p.Property("foreground_color", nil), RGB{0, 255, 0}),
		Color:          asColor(p.Property("background_color", nil), RGB{64, 64, 64}),
		BorderColor:    asColor(p.Property("border_color", nil), RGB{128, 128, 128}),
		ShowPercentage: asBool(p.Property("show_percentage", false), false),
	}
}

func (p *ProgressBar) Validate() []string {
	errs := p.validateBase()

	progress := asFloat(p.Property("progress", 0.5), 0.5)
	if progress < 0 || progress > 1 {
		errs = append(errs, "progress must be between 0.0 and 1.0")
	}

	for _, key := range []string{"foreground_color", "background_color", "border_color"} {
		color := p.Property(key, nil)
		if color == nil {
			continue
		}
		if !isColorLike(color) || !asColor(color, RGB{}).Valid() {
			errs = append(errs, key+" must be RGB values between 0 and 255")
		}
	}

	return errs
}

func (p *ProgressBar) PropertySchema() Schema {
	return Schema{
		"progress": {
			Type:        PropFloat,
			Label:       "Progress",
			Default:     0.5,
			Min:         limit(0),
			Max:         limit(1),
			Step:        0.01,
			Description: "Progress value (0.0 to 1.0)",
		},
		"foreground_color": {
			Type:        PropColor,
			Label:       "Progress Color",
			Default:     RGB{0, 255, 0},
			Description: "RGB color for the progress fill",
		},
		"background_color": {
			Type:        PropColor,
			Label:       "Background Color",
			Default:     RGB{64, 64, 64},
			Description: "RGB color for the background",
		},
		"border_color": {
			Type:        PropColor,
			Label:       "Border Color",
			Default:     RGB{128, 128, 128},
			Description: "RGB color for the border",
		},
		"show_percentage": {
			Type:        PropBoolean,
			Label:       "Show Percentage",
			Default:     false,
			Description: "Show percentage text on the progress bar",
		},
	}
}
