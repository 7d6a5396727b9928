package layout

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelmat/pixelmat/internal/widget"
)

func textAt(x, y, w, h int) *widget.SimpleText {
	return widget.NewSimpleText(widget.Options{X: x, Y: y, Width: w, Height: h, ScreenSize: 64})
}

func TestWidgetsSortedByZIndex(t *testing.T) {
	lay := New(64)

	a := textAt(0, 0, 10, 10)
	a.SetZIndex(5)
	b := textAt(0, 0, 10, 10)
	b.SetZIndex(1)
	c := textAt(0, 0, 10, 10)
	c.SetZIndex(3)

	lay.Add(a)
	lay.Add(b)
	lay.Add(c)

	got := lay.Widgets()
	require.Len(t, got, 3)
	assert.Same(t, b, got[0])
	assert.Same(t, c, got[1])
	assert.Same(t, a, got[2])
}

func TestEqualZIndexKeepsInsertionOrder(t *testing.T) {
	lay := New(64)

	first := textAt(0, 0, 10, 10)
	second := textAt(0, 0, 10, 10)
	third := textAt(0, 0, 10, 10)
	lay.Add(first)
	lay.Add(second)
	lay.Add(third)

	got := lay.Widgets()
	assert.Same(t, first, got[0])
	assert.Same(t, second, got[1])
	assert.Same(t, third, got[2])
}

func TestWidgetAtPrefersTopmost(t *testing.T) {
	lay := New(64)

	bottom := textAt(5, 5, 20, 20)
	bottom.SetZIndex(0)
	top := textAt(10, 10, 20, 20)
	top.SetZIndex(1)

	lay.Add(bottom)
	lay.Add(top)

	// Overlap region resolves to the widget painted last.
	assert.Same(t, top, lay.WidgetAt(15, 15))
	// Only the bottom widget covers its top-left corner.
	assert.Same(t, bottom, lay.WidgetAt(5, 5))
	assert.Nil(t, lay.WidgetAt(60, 60))
}

func TestWidgetAtSkipsHidden(t *testing.T) {
	lay := New(64)

	w := textAt(5, 5, 20, 20)
	w.SetVisible(false)
	lay.Add(w)

	assert.Nil(t, lay.WidgetAt(10, 10))
}

func TestWidgetsInTouchingEdgesCount(t *testing.T) {
	lay := New(64)

	w := textAt(10, 10, 10, 10)
	lay.Add(w)

	// Query rectangle ending exactly where the widget starts.
	assert.Len(t, lay.WidgetsIn(0, 0, 10, 10), 1)
	// Clearly disjoint.
	assert.Empty(t, lay.WidgetsIn(40, 40, 5, 5))
}

func TestRemoveByIdentity(t *testing.T) {
	lay := New(64)

	a := textAt(0, 0, 10, 10)
	b := textAt(0, 0, 10, 10)
	lay.Add(a)
	lay.Add(b)

	lay.Remove(a)
	require.Equal(t, 1, lay.Len())
	assert.Same(t, b, lay.Widgets()[0])

	// Removing again is a no-op.
	lay.Remove(a)
	assert.Equal(t, 1, lay.Len())
}

func TestValidateAggregatesWidgetAndBoundErrors(t *testing.T) {
	lay := New(64)

	// Invalid property and out of bounds at the same time.
	c := widget.NewClock(widget.Options{X: 60, Y: 60, Width: 20, Height: 6, ScreenSize: 64})
	c.SetProperty("time_format", "25")
	lay.Add(c)

	errs := lay.Validate()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "time format")
	assert.Contains(t, errs[1], "beyond screen bounds")
	for _, e := range errs {
		assert.True(t, strings.HasPrefix(e, "Clock("), e)
	}
}

func TestValidateFlagsEachOffendingWidget(t *testing.T) {
	lay := New(64)

	offscreen := textAt(-3, 5, 10, 10)
	lay.Add(offscreen)

	badColor := widget.NewSimpleText(widget.Options{X: 0, Y: 20, Width: 10, Height: 10, ScreenSize: 64})
	badColor.SetProperty("color", widget.RGB{0, 0, 999})
	lay.Add(badColor)

	errs := lay.Validate()
	require.GreaterOrEqual(t, len(errs), 2)
	joined := strings.Join(errs, "\n")
	assert.Contains(t, joined, "negative")
	assert.Contains(t, joined, "color")
}

func TestRenderDataOrdersAndSkipsHidden(t *testing.T) {
	lay := New(64)
	lay.SetBackground(widget.RGB{10, 20, 30})

	visible := textAt(0, 0, 10, 10)
	visible.SetZIndex(1)
	hidden := textAt(0, 0, 10, 10)
	hidden.SetVisible(false)
	under := textAt(0, 0, 10, 10)

	lay.Add(visible)
	lay.Add(hidden)
	lay.Add(under)

	data := lay.RenderData()
	assert.Equal(t, widget.RGB{10, 20, 30}, data.Background.Color)
	assert.Equal(t, 64, data.Background.Width)

	require.Len(t, data.Widgets, 2)
	assert.Equal(t, 0, data.Widgets[0].ZIndex)
	assert.Equal(t, 1, data.Widgets[1].ZIndex)
}

func TestComposedSceneOrdersWeatherAboveClock(t *testing.T) {
	lay := New(64)
	lay.SetBackground(widget.RGB{0, 0, 0})

	clock := widget.NewClock(widget.Options{ScreenSize: 64})
	clock.SetProperty("time_format", "24")
	cw, ch := clock.Size()
	clock.SetPosition((64-cw)/2, (64-ch)/2)
	lay.Add(clock)

	weather := widget.NewWeather(widget.Options{ScreenSize: 64})
	ww, wh := weather.Size()
	weather.SetPosition(64-ww-2, 64-wh-2)
	weather.SetZIndex(1)
	lay.Add(weather)

	data := lay.RenderData()
	require.Len(t, data.Widgets, 2)

	// The weather record paints after the clock's.
	assert.Equal(t, 0, data.Widgets[0].ZIndex)
	assert.Equal(t, 1, data.Widgets[1].ZIndex)
	assert.Contains(t, data.Widgets[1].Text, "°")
}

func TestUpdateDueMarksWidgets(t *testing.T) {
	lay := New(64)

	fast := textAt(0, 0, 10, 10)
	fast.SetUpdateInterval(1)
	slow := textAt(0, 20, 10, 10)
	slow.SetUpdateInterval(3600)

	now := time.Now()
	fast.MarkUpdated(now)
	slow.MarkUpdated(now)

	lay.Add(fast)
	lay.Add(slow)

	due := lay.UpdateDue(now.Add(2 * time.Second))
	require.Len(t, due, 1)
	assert.Same(t, fast, due[0].(*widget.SimpleText))

	// Marked updated, so immediately re-querying finds nothing due.
	assert.Empty(t, lay.UpdateDue(now.Add(2*time.Second)))
}

func TestAdvanceStepsStopwatches(t *testing.T) {
	lay := New(64)

	s := widget.NewStopwatch(widget.Options{ScreenSize: 64})
	s.SetProperty("state", widget.StopwatchRunning)
	lay.Add(s)

	lay.Advance(time.Now())
	assert.Equal(t, 1, s.UpdateInterval())
	assert.NotEmpty(t, s.Property("start_time", ""))
}
