package widget

import (
	"fmt"
	"time"
)

// RGB represents a color as red, green, blue components in the 0-255 range.
// It serializes to a JSON array, matching the layout file format.
type RGB [3]int

// Valid reports whether all components are within the 0-255 range.
func (c RGB) Valid() bool {
	for _, v := range c {
		if v < 0 || v > 255 {
			return false
		}
	}
	return true
}

// Widget is the contract every renderable unit satisfies. Concrete widgets
// embed *Base for the positional, visibility and property-bag state and
// implement the type-specific methods (DefaultSize, RenderData,
// PropertySchema, Validate).
type Widget interface {
	// Type returns the registered type name used for serialization.
	Type() string

	Position() (x, y int)
	SetPosition(x, y int)
	Size() (width, height int)
	SetSize(width, height int)
	ContainsPoint(x, y int) bool
	Bounds() (x1, y1, x2, y2 int)

	Visible() bool
	SetVisible(visible bool)
	ZIndex() int
	SetZIndex(z int)
	UpdateInterval() int
	SetUpdateInterval(seconds int)
	ShouldUpdate(now time.Time) bool
	MarkUpdated(now time.Time)

	// Property returns the value stored under key, or def when absent.
	// SetProperty is an untyped pass-through store; the schema returned by
	// PropertySchema is advisory and never enforced on write.
	Property(key string, def any) any
	SetProperty(key string, value any)
	Properties() map[string]any

	// DefaultSize computes the widget's natural size for the given screen
	// size. It is consulted only when no explicit size was supplied.
	DefaultSize(screenSize int) (width, height int)

	// RenderData produces the tagged record consumed by the render
	// pipeline. It must not block.
	RenderData() Record

	// Validate returns every configuration violation found. It never
	// panics; an empty slice means the widget is valid.
	Validate() []string

	PropertySchema() Schema

	// ToMap serializes the widget to its layout-file representation.
	ToMap() map[string]any
}

// Advancer is implemented by widgets whose internal state machine moves on
// render cycles (e.g. the stopwatch). The application loop calls Advance
// once per cycle before collecting render data, so RenderData itself stays
// read-only.
type Advancer interface {
	Advance(now time.Time)
}

// Options carries the positional arguments common to all widget
// constructors. Zero Width/Height means "use the widget's default size";
// zero ScreenSize means 64.
type Options struct {
	X, Y          int
	Width, Height int
	ScreenSize    int
}

func (o Options) screenSize() int {
	if o.ScreenSize <= 0 {
		return 64
	}
	return o.ScreenSize
}

// Base holds the state shared by every widget. Concrete widgets embed it by
// pointer and gain the common Widget methods.
type Base struct {
	typ        string
	screenSize int

	x, y          int
	width, height int

	visible        bool
	zIndex         int
	updateInterval int
	lastUpdate     time.Time

	props map[string]any
}

func newBase(typ string, opts Options) *Base {
	return &Base{
		typ:            typ,
		screenSize:     opts.screenSize(),
		x:              opts.X,
		y:              opts.Y,
		width:          opts.Width,
		height:         opts.Height,
		visible:        true,
		updateInterval: 60,
		props:          make(map[string]any),
	}
}

// resolveSize fills in unset dimensions from the widget's default size.
// Called by constructors after default properties are in place, because
// default sizes may depend on them.
func resolveSize(w Widget, b *Base, opts Options) {
	if opts.Width > 0 && opts.Height > 0 {
		return
	}
	dw, dh := w.DefaultSize(b.screenSize)
	if opts.Width <= 0 {
		b.width = dw
	}
	if opts.Height <= 0 {
		b.height = dh
	}
}

// Type returns the registered type name used for serialization.
func (b *Base) Type() string { return b.typ }

// ScreenSize returns the screen size the widget was created for.
func (b *Base) ScreenSize() int { return b.screenSize }

func (b *Base) Position() (int, int) { return b.x, b.y }
func (b *Base) SetPosition(x, y int) { b.x, b.y = x, y }
func (b *Base) Size() (int, int) { return b.width, b.height }
func (b *Base) SetSize(w, h int) { b.width, b.height = w, h }

// Bounds returns the widget's bounding box as (x1, y1, x2, y2).
func (b *Base) Bounds() (int, int, int, int) {
	return b.x, b.y, b.x + b.width, b.y + b.height
}

// ContainsPoint reports whether (x, y) lies within the widget's bounds.
// Bounds are inclusive on all four edges.
func (b *Base) ContainsPoint(x, y int) bool {
	return b.x <= x && x <= b.x+b.width &&
		b.y <= y && y <= b.y+b.height
}

func (b *Base) Visible() bool { return b.visible }
func (b *Base) SetVisible(v bool) { b.visible = v }
func (b *Base) ZIndex() int { return b.zIndex }
func (b *Base) SetZIndex(z int) { b.zIndex = z }
func (b *Base) UpdateInterval() int { return b.updateInterval }
func (b *Base) SetUpdateInterval(s int) { b.updateInterval = s }

// ShouldUpdate reports whether the widget's update interval has elapsed
// since it was last marked updated.
func (b *Base) ShouldUpdate(now time.Time) bool {
	return now.Sub(b.lastUpdate) >= time.Duration(b.updateInterval)*time.Second
}

// MarkUpdated resets the widget's update timer.
func (b *Base) MarkUpdated(now time.Time) { b.lastUpdate = now }

// Property returns the value stored under key, or def when absent.
func (b *Base) Property(key string, def any) any {
	if v, ok := b.props[key]; ok {
		return v
	}
	return def
}

// SetProperty stores value under key. Values are kept verbatim so that
// plugin-defined state survives serialization round-trips untouched.
func (b *Base) SetProperty(key string, value any) { b.props[key] = value }

// Properties exposes the underlying property map.
func (b *Base) Properties() map[string]any { return b.props }

// validateBase checks the structural constraints common to all widgets.
func (b *Base) validateBase() []string {
	var errs []string
	if b.width <= 0 || b.height <= 0 {
		errs = append(errs, "widget dimensions must be positive")
	}
	if b.updateInterval <= 0 {
		errs = append(errs, "update interval must be positive")
	}
	return errs
}

// ToMap serializes the widget to its layout-file representation.
func (b *Base) ToMap() map[string]any {
	return map[string]any{
		"type":            b.typ,
		"x":               b.x,
		"y":               b.y,
		"width":           b.width,
		"height":          b.height,
		"visible":         b.visible,
		"z_index":         b.zIndex,
		"update_interval": b.updateInterval,
		"properties":      b.props,
	}
}

// Describe returns a short identity string used to prefix validation
// messages, e.g. "Clock(x=10, y=4, w=20, h=6)".
func Describe(w Widget) string {
	x, y := w.Position()
	width, height := w.Size()
	return fmt.Sprintf("%s(x=%d, y=%d, w=%d, h=%d)", w.Type(), x, y, width, height)
}
