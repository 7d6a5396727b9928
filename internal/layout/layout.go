// Package layout manages an ordered, z-sorted collection of widgets over a
// fixed-size square canvas, and owns the layout file round-trip.
package layout

import (
	"log/slog"
	"sort"
	"time"

	"github.com/pixelmat/pixelmat/internal/widget"
)

// Layout is an ordered collection of widgets over a screenSize x screenSize
// canvas. The widget slice is kept z-sorted ascending (stable, so equal
// z-indexes keep insertion order) before any read.
type Layout struct {
	screenSize int
	background widget.RGB
	widgets    []widget.Widget
	logger     *slog.Logger
}

// New creates an empty layout with a black background.
func New(screenSize int) *Layout {
	return &Layout{
		screenSize: screenSize,
		background: widget.RGB{0, 0, 0},
		logger:     slog.Default(),
	}
}

// SetLogger replaces the logger used for load warnings.
func (l *Layout) SetLogger(logger *slog.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// ScreenSize returns the canvas edge length in pixels.
func (l *Layout) ScreenSize() int { return l.screenSize }

// Background returns the canvas background color.
func (l *Layout) Background() widget.RGB { return l.background }

// SetBackground sets the canvas background color.
func (l *Layout) SetBackground(c widget.RGB) { l.background = c }

// Add appends a widget and restores z-order.
func (l *Layout) Add(w widget.Widget) {
	l.widgets = append(l.widgets, w)
	l.sortWidgets()
}

// Remove deletes a widget by identity. Absent widgets are a no-op.
func (l *Layout) Remove(w widget.Widget) {
	for i, existing := range l.widgets {
		if existing == w {
			l.widgets = append(l.widgets[:i], l.widgets[i+1:]...)
			return
		}
	}
}

// Widgets returns the widgets in ascending z-order. Callers must not
// reorder the returned slice.
func (l *Layout) Widgets() []widget.Widget {
	l.sortWidgets()
	return l.widgets
}

// Len returns the number of widgets in the layout.
func (l *Layout) Len() int { return len(l.widgets) }

// sortWidgets restores ascending z-order. The sort is stable so widgets
// with equal z-index keep their insertion order; it runs before every read
// because z-indexes can be mutated in place between reads.
func (l *Layout) sortWidgets() {
	sort.SliceStable(l.widgets, func(i, j int) bool {
		return l.widgets[i].ZIndex() < l.widgets[j].ZIndex()
	})
}

// WidgetAt returns the topmost visible widget whose bounds contain (x, y),
// or nil. Widgets are probed in descending z-order so overlapping widgets
// resolve deterministically to the one painted last.
func (l *Layout) WidgetAt(x, y int) widget.Widget {
	l.sortWidgets()
	for i := len(l.widgets) - 1; i >= 0; i-- {
		w := l.widgets[i]
		if w.Visible() && w.ContainsPoint(x, y) {
			return w
		}
	}
	return nil
}

// WidgetsIn returns the visible widgets whose bounds intersect the given
// rectangle, in ascending z-order. Intersection is closed-interval:
// touching edges count.
func (l *Layout) WidgetsIn(x, y, width, height int) []widget.Widget {
	var out []widget.Widget
	ax2, ay2 := x+width, y+height
	for _, w := range l.Widgets() {
		if !w.Visible() {
			continue
		}
		wx1, wy1, wx2, wy2 := w.Bounds()
		if wx2 < x || ax2 < wx1 || wy2 < y || ay2 < wy1 {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Validate aggregates every widget's own validation output (prefixed by
// widget identity) with layout-level bound checks. The two checks are
// independent; a widget can contribute errors to both.
func (l *Layout) Validate() []string {
	var errs []string

	for _, w := range l.widgets {
		for _, msg := range w.Validate() {
			errs = append(errs, widget.Describe(w)+": "+msg)
		}
	}

	for _, w := range l.widgets {
		x, y := w.Position()
		width, height := w.Size()
		if x < 0 || y < 0 {
			errs = append(errs, widget.Describe(w)+": position cannot be negative")
		}
		if x+width > l.screenSize || y+height > l.screenSize {
			errs = append(errs, widget.Describe(w)+": extends beyond screen bounds")
		}
	}

	return errs
}

// Background describes the canvas fill in aggregated render data.
type Background struct {
	Color  widget.RGB
	Width  int
	Height int
}

// Entry is one widget's render record in aggregated render data. ID is the
// widget's position in z-order for this aggregation pass; it is never
// persisted.
type Entry struct {
	widget.Record
	ID     int
	ZIndex int
}

// RenderData is the complete composition for one frame: background first,
// then visible widgets in ascending z-order so later entries paint over
// earlier ones.
type RenderData struct {
	Background Background
	Widgets    []Entry
}

// RenderData aggregates render records from all visible widgets.
func (l *Layout) RenderData() RenderData {
	data := RenderData{
		Background: Background{
			Color:  l.background,
			Width:  l.screenSize,
			Height: l.screenSize,
		},
	}
	for i, w := range l.Widgets() {
		if !w.Visible() {
			continue
		}
		data.Widgets = append(data.Widgets, Entry{
			Record: w.RenderData(),
			ID:     i,
			ZIndex: w.ZIndex(),
		})
	}
	return data
}

// UpdateDue marks and returns the widgets whose update interval has
// elapsed.
func (l *Layout) UpdateDue(now time.Time) []widget.Widget {
	var due []widget.Widget
	for _, w := range l.widgets {
		if w.ShouldUpdate(now) {
			w.MarkUpdated(now)
			due = append(due, w)
		}
	}
	return due
}

// Advance steps every widget with read-cycle state (stopwatches) exactly
// once. Called by the application loop before collecting render data.
func (l *Layout) Advance(now time.Time) {
	for _, w := range l.widgets {
		if a, ok := w.(widget.Advancer); ok {
			a.Advance(now)
		}
	}
}
