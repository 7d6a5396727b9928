// Package render turns aggregated layout render data into drawing calls
// against a device sink.
package render

import (
	"fmt"
	"image"
	"strings"

	"github.com/pixelmat/pixelmat/internal/layout"
	"github.com/pixelmat/pixelmat/internal/widget"
)

// Text cell metrics of the 5x7 matrix font, used to estimate text extents
// for background boxes and percentage centering. Sinks draw with the same
// metrics.
const (
	GlyphWidth  = 6 // 5 pixel glyph + 1 pixel spacing
	GlyphHeight = 7
	LineSpacing = 1
)

// Sink is the device-side drawing contract. Coordinates are device pixels
// with the origin at the top left; colors are RGB 0-255. Drawing calls
// mutate a local frame buffer; Push transmits the composed frame.
type Sink interface {
	Fill(c widget.RGB)
	DrawText(text string, x, y int, c widget.RGB)
	DrawRectangle(x1, y1, x2, y2 int, c widget.RGB)
	DrawFilledRectangle(x1, y1, x2, y2 int, c widget.RGB)
	DrawCircle(x, y, r int, c widget.RGB)
	DrawFilledCircle(x, y, r int, c widget.RGB)
	SetBrightness(percent int) error
	Push() error
}

// ImageSink is optionally implemented by sinks that can blit a pre-rendered
// image, used for rasterized weather icons. Sinks without it simply skip
// icons.
type ImageSink interface {
	DrawImage(x, y int, img *image.RGBA)
}

// Frame draws one complete composition: background fill, then every record
// in the order the layout aggregated them (ascending z, so later records
// paint over earlier ones).
func Frame(sink Sink, data layout.RenderData) {
	sink.Fill(data.Background.Color)
	for _, entry := range data.Widgets {
		Record(sink, entry.Record)
	}
}

// Record dispatches one render record to the sink by its tag. Unknown tags
// are ignored so newer widgets degrade gracefully on older pipelines.
func Record(sink Sink, rec widget.Record) {
	switch rec.Type {
	case widget.RecordText:
		drawText(sink, rec)
	case widget.RecordRectangle:
		if rec.Filled {
			sink.DrawFilledRectangle(rec.X, rec.Y, rec.X2, rec.Y2, rec.Color)
		} else {
			sink.DrawRectangle(rec.X, rec.Y, rec.X2, rec.Y2, rec.Color)
		}
	case widget.RecordCircle:
		if rec.Filled {
			sink.DrawFilledCircle(rec.X, rec.Y, rec.Radius, rec.Color)
		} else {
			sink.DrawCircle(rec.X, rec.Y, rec.Radius, rec.Color)
		}
	case widget.RecordProgressBar:
		drawProgressBar(sink, rec)
	case widget.RecordSystemStats:
		drawSystemStats(sink, rec)
	}
}

// TextExtent returns the pixel width and height of a (possibly multi-line)
// string in the matrix font.
func TextExtent(text string) (int, int) {
	lines := strings.Split(text, "\n")
	var widest int
	for _, line := range lines {
		if len(line) > widest {
			widest = len(line)
		}
	}
	width := widest * GlyphWidth
	if width > 0 {
		width-- // no trailing glyph spacing
	}
	height := len(lines)*(GlyphHeight+LineSpacing) - LineSpacing
	return width, height
}

func drawText(sink Sink, rec widget.Record) {
	if rec.Background != nil {
		w, h := TextExtent(rec.Text)
		sink.DrawFilledRectangle(rec.X-1, rec.Y-1, rec.X+w+1, rec.Y+h+1, *rec.Background)
	}

	sink.DrawText(rec.Text, rec.X, rec.Y, rec.Color)

	if rec.ShowIcon && rec.WeatherCode != nil {
		imgSink, ok := sink.(ImageSink)
		if !ok {
			return
		}
		icon := WeatherIcon(*rec.WeatherCode, GlyphHeight+2)
		if icon != nil {
			w, _ := TextExtent(rec.Text)
			imgSink.DrawImage(rec.X+w+2, rec.Y-1, icon)
		}
	}
}

func drawProgressBar(sink Sink, rec widget.Record) {
	x2, y2 := rec.X+rec.Width-1, rec.Y+rec.Height-1

	// Record.Color carries the bar background for progress records.
	sink.DrawFilledRectangle(rec.X, rec.Y, x2, y2, rec.Color)
	sink.DrawRectangle(rec.X, rec.Y, x2, y2, rec.BorderColor)

	if rec.Progress > 0 {
		fill := int(float64(rec.Width-2) * rec.Progress)
		if fill > 0 {
			sink.DrawFilledRectangle(rec.X+1, rec.Y+1, rec.X+fill, y2-1, rec.Foreground)
		}
	}

	if rec.ShowPercentage && rec.Height >= GlyphHeight+1 {
		text := fmt.Sprintf("%d%%", int(rec.Progress*100))
		tw, th := TextExtent(text)
		tx := rec.X + (rec.Width-tw)/2
		ty := rec.Y + (rec.Height-th)/2
		sink.DrawText(text, tx, ty, contrastColor(rec.Color))
	}
}

func drawSystemStats(sink Sink, rec widget.Record) {
	if len(rec.Stats) == 0 {
		return
	}

	barHeight := max(3, rec.Height/(len(rec.Stats)+1))
	barSpacing := barHeight + 2
	barX := rec.X + 25
	barWidth := max(30, rec.Width-30)

	y := rec.Y
	for _, stat := range rec.Stats {
		sink.DrawText(stat.Label+":", rec.X, y, rec.Color)

		barY := y + barHeight/4
		sink.DrawFilledRectangle(barX, barY, barX+barWidth, barY+barHeight, widget.RGB{50, 50, 50})

		filled := int(float64(barWidth) * stat.Value / 100.0)
		if filled > 0 {
			sink.DrawFilledRectangle(barX, barY, barX+filled, barY+barHeight, rec.Color)
		}

		percent := fmt.Sprintf("%.0f%%", stat.Value)
		pw, _ := TextExtent(percent)
		sink.DrawText(percent, barX+barWidth-pw-2, y, rec.Color)

		y += barSpacing
	}
}

// contrastColor picks white or black text for readability over c.
func contrastColor(c widget.RGB) widget.RGB {
	if c[0]+c[1]+c[2] < 384 {
		return widget.RGB{255, 255, 255}
	}
	return widget.RGB{0, 0, 0}
}
