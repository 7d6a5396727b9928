package widget

// TypeSimpleText is the registered type name of the text widget.
const TypeSimpleText = "SimpleText"

// SimpleText displays a fixed string with configurable color and font size.
type SimpleText struct {
	*Base
}

// NewSimpleText creates a text widget displaying "Hello" by default.
func NewSimpleText(opts Options) *SimpleText {
	t := &SimpleText{Base: newBase(TypeSimpleText, opts)}
	t.SetProperty("text", "Hello")
	t.SetProperty("color", RGB{255, 255, 255})
	t.SetProperty("font_size", 12)
	t.SetProperty("background_color", nil)
	resolveSize(t, t.Base, opts)
	// Static text rarely needs refreshing.
	t.updateInterval = 3600
	return t
}

// DefaultSize estimates the text footprint from its length and font size.
func (t *SimpleText) DefaultSize(screenSize int) (int, int) {
	text := asString(t.Property("text", "Hello"), "Hello")
	fontSize := asInt(t.Property("font_size", 12), 12)

	width := int(float64(len(text)) * float64(fontSize) * 0.6)
	height := int(float64(fontSize) * 1.2)
	return min(max(width, 1), screenSize), min(max(height, 1), screenSize)
}

func (t *SimpleText) RenderData() Record {
	return Record{
		Type:       RecordText,
		Text:       asString(t.Property("text", ""), ""),
		X:          t.x,
		Y:          t.y,
		Color:      asColor(t.Property("color", nil), RGB{255, 255, 255}),
		Background: asColorPtr(t.Property("background_color", nil)),
	}
}

func (t *SimpleText) Validate() []string {
	errs := t.validateBase()

	color := t.Property("color", RGB{255, 255, 255})
	if !isColorLike(color) || !asColor(color, RGB{}).Valid() {
		errs = append(errs, "color must be RGB values between 0 and 255")
	}

	return errs
}

func (t *SimpleText) PropertySchema() Schema {
	return Schema{
		"text": {
			Type:        PropString,
			Label:       "Text",
			Default:     "Hello",
			Description: "Text to display",
		},
		"color": {
			Type:    PropColor,
			Label:   "Text Color",
			Default: RGB{255, 255, 255},
		},
		"font_size": {
			Type:    PropInteger,
			Label:   "Font Size",
			Default: 12,
			Min:     limit(4),
			Max:     limit(24),
		},
	}
}
