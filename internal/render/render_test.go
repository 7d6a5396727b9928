package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelmat/pixelmat/internal/layout"
	"github.com/pixelmat/pixelmat/internal/widget"
)

var (
	black = widget.RGB{0, 0, 0}
	white = widget.RGB{255, 255, 255}
	red   = widget.RGB{255, 0, 0}
)

func TestTextExtent(t *testing.T) {
	w, h := TextExtent("12:34")
	assert.Equal(t, 5*GlyphWidth-1, w)
	assert.Equal(t, GlyphHeight, h)

	w, h = TextExtent("AB\nLONGER")
	assert.Equal(t, 6*GlyphWidth-1, w)
	assert.Equal(t, 2*GlyphHeight+LineSpacing, h)
}

func TestFrameFillsBackground(t *testing.T) {
	canvas := NewCanvas(64)

	Frame(canvas, layout.RenderData{
		Background: layout.Background{Color: widget.RGB{12, 34, 56}, Width: 64, Height: 64},
	})

	assert.Equal(t, widget.RGB{12, 34, 56}, canvas.At(0, 0))
	assert.Equal(t, widget.RGB{12, 34, 56}, canvas.At(63, 63))
}

func TestFrameDrawsTextRecord(t *testing.T) {
	canvas := NewCanvas(64)

	Frame(canvas, layout.RenderData{
		Background: layout.Background{Color: black, Width: 64, Height: 64},
		Widgets: []layout.Entry{
			{Record: widget.Record{Type: widget.RecordText, Text: "1", X: 10, Y: 10, Color: white}},
		},
	})

	// Glyph '1' lights its middle column over the full glyph height.
	lit := 0
	for y := 10; y < 10+GlyphHeight; y++ {
		for x := 10; x < 10+GlyphWidth; x++ {
			if canvas.At(x, y) == white {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 5)
}

func TestTextRecordBackgroundBox(t *testing.T) {
	canvas := NewCanvas(64)
	bg := widget.RGB{0, 0, 128}

	Record(canvas, widget.Record{
		Type: widget.RecordText, Text: "HI", X: 10, Y: 10,
		Color: white, Background: &bg,
	})

	// Box extends one pixel past the text on each side.
	assert.Equal(t, bg, canvas.At(9, 9))
	w, h := TextExtent("HI")
	assert.Equal(t, bg, canvas.At(10+w+1, 10+h+1))
	assert.Equal(t, black, canvas.At(8, 8))
}

func TestRectangleRecords(t *testing.T) {
	canvas := NewCanvas(64)

	Record(canvas, widget.Record{
		Type: widget.RecordRectangle, X: 5, Y: 5, X2: 15, Y2: 10, Color: red,
	})
	assert.Equal(t, red, canvas.At(5, 5))
	assert.Equal(t, red, canvas.At(15, 10))
	assert.Equal(t, black, canvas.At(8, 7)) // outline only

	Record(canvas, widget.Record{
		Type: widget.RecordRectangle, X: 20, Y: 20, X2: 30, Y2: 25, Color: red, Filled: true,
	})
	assert.Equal(t, red, canvas.At(25, 22))
}

func TestCircleRecords(t *testing.T) {
	canvas := NewCanvas(64)

	Record(canvas, widget.Record{
		Type: widget.RecordCircle, X: 32, Y: 32, Radius: 10, Color: red, Filled: true,
	})
	assert.Equal(t, red, canvas.At(32, 32))
	assert.Equal(t, red, canvas.At(32, 42))
	assert.Equal(t, black, canvas.At(32, 44))
}

func TestProgressBarRecord(t *testing.T) {
	canvas := NewCanvas(64)
	fg := widget.RGB{0, 255, 0}
	bg := widget.RGB{64, 64, 64}
	border := widget.RGB{128, 128, 128}

	Record(canvas, widget.Record{
		Type: widget.RecordProgressBar,
		X:    2, Y: 50, Width: 60, Height: 8,
		Progress: 0.5, Foreground: fg, Color: bg, BorderColor: border,
	})

	assert.Equal(t, border, canvas.At(2, 50)) // border corner
	assert.Equal(t, fg, canvas.At(5, 54)) // inside the filled half
	assert.Equal(t, bg, canvas.At(55, 54)) // unfilled half keeps background
}

func TestUnknownRecordTypeIgnored(t *testing.T) {
	canvas := NewCanvas(64)

	Record(canvas, widget.Record{Type: "hologram", X: 5, Y: 5, Color: red})

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			require.Equal(t, black, canvas.At(x, y))
		}
	}
}

func TestSystemStatsRecord(t *testing.T) {
	canvas := NewCanvas(64)
	green := widget.RGB{144, 238, 144}

	Record(canvas, widget.Record{
		Type: widget.RecordSystemStats,
		X:    0, Y: 0, Width: 60, Height: 40,
		Color: green,
		Stats: []widget.Stat{
			{Label: "CPU", Value: 50},
			{Label: "MEM", Value: 10},
		},
	})

	// Label text pixels near the origin.
	found := false
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < 4*GlyphWidth; x++ {
			if canvas.At(x, y) == green {
				found = true
			}
		}
	}
	assert.True(t, found)
}

func TestWeatherIconMapping(t *testing.T) {
	tests := []struct {
		code   int
		hasArt bool
	}{
		{0, true},   // clear
		{3, true},   // overcast
		{45, true},  // fog
		{61, true},  // rain
		{71, true},  // snow
		{95, true},  // thunderstorm
		{40, false}, // unassigned code
	}
	for _, tt := range tests {
		img := WeatherIcon(tt.code, 9)
		if tt.hasArt {
			require.NotNil(t, img, "code %d", tt.code)
			assert.Equal(t, 9, img.Bounds().Dx())
		} else {
			assert.Nil(t, img, "code %d", tt.code)
		}
	}
}

func TestWeatherIconCached(t *testing.T) {
	a := WeatherIcon(0, 12)
	b := WeatherIcon(1, 12) // same art bucket
	require.NotNil(t, a)
	assert.Same(t, a, b)
}

func TestCanvasWritePNG(t *testing.T) {
	canvas := NewCanvas(16)
	canvas.Fill(widget.RGB{255, 0, 0})

	var buf bytes.Buffer
	require.NoError(t, canvas.WritePNG(&buf, 4))
	assert.Greater(t, buf.Len(), 0)
	// PNG magic header.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, buf.Bytes()[:4])
}

func TestCanvasPushCounts(t *testing.T) {
	canvas := NewCanvas(16)
	require.NoError(t, canvas.Push())
	require.NoError(t, canvas.Push())
	assert.Equal(t, 2, canvas.Pushes())
}
