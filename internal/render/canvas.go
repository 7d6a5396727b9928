package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/pixelmat/pixelmat/internal/widget"
)

// Canvas is an in-memory sink backed by an RGBA image. It serves as a
// preview target and as a test double for the device client; Push only
// counts frames.
type Canvas struct {
	size       int
	img        *image.RGBA
	brightness int
	pushes     int
}

// NewCanvas returns a canvas for a square matrix of the given pixel size.
func NewCanvas(size int) *Canvas {
	return &Canvas{
		size:       size,
		img:        image.NewRGBA(image.Rect(0, 0, size, size)),
		brightness: 100,
	}
}

func rgba(c widget.RGB) color.RGBA {
	return color.RGBA{uint8(c[0]), uint8(c[1]), uint8(c[2]), 255}
}

func (c *Canvas) set(x, y int, col widget.RGB) {
	if x < 0 || y < 0 || x >= c.size || y >= c.size {
		return
	}
	c.img.SetRGBA(x, y, rgba(col))
}

func (c *Canvas) Fill(col widget.RGB) {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{rgba(col)}, image.Point{}, draw.Src)
}

func (c *Canvas) DrawText(text string, x, y int, col widget.RGB) {
	DrawString(text, x, y, func(px, py int) {
		c.set(px, py, col)
	})
}

func (c *Canvas) DrawRectangle(x1, y1, x2, y2 int, col widget.RGB) {
	for x := x1; x <= x2; x++ {
		c.set(x, y1, col)
		c.set(x, y2, col)
	}
	for y := y1; y <= y2; y++ {
		c.set(x1, y, col)
		c.set(x2, y, col)
	}
}

func (c *Canvas) DrawFilledRectangle(x1, y1, x2, y2 int, col widget.RGB) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			c.set(x, y, col)
		}
	}
}

func (c *Canvas) DrawCircle(cx, cy, r int, col widget.RGB) {
	forCirclePoints(cx, cy, r, func(x, y int) {
		c.set(x, y, col)
	})
}

func (c *Canvas) DrawFilledCircle(cx, cy, r int, col widget.RGB) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				c.set(cx+x, cy+y, col)
			}
		}
	}
}

func (c *Canvas) DrawImage(x, y int, img *image.RGBA) {
	r := img.Bounds().Add(image.Pt(x, y))
	draw.Draw(c.img, r, img, img.Bounds().Min, draw.Over)
}

func (c *Canvas) SetBrightness(percent int) error {
	c.brightness = min(max(percent, 0), 100)
	return nil
}

func (c *Canvas) Push() error {
	c.pushes++
	return nil
}

// Pushes reports how many frames were pushed since creation.
func (c *Canvas) Pushes() int { return c.pushes }

// At returns the color of one pixel, or black outside the canvas.
func (c *Canvas) At(x, y int) widget.RGB {
	if x < 0 || y < 0 || x >= c.size || y >= c.size {
		return widget.RGB{}
	}
	r, g, b, _ := c.img.At(x, y).RGBA()
	return widget.RGB{int(r >> 8), int(g >> 8), int(b >> 8)}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// WritePNG encodes the frame as PNG, upscaled by the given integer factor
// with nearest-neighbor sampling so matrix pixels stay sharp.
func (c *Canvas) WritePNG(w io.Writer, scale int) error {
	img := c.img
	if scale > 1 {
		scaled := image.NewRGBA(image.Rect(0, 0, c.size*scale, c.size*scale))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), c.img, c.img.Bounds(), xdraw.Src, nil)
		img = scaled
	}
	return png.Encode(w, img)
}

// SavePNG writes the frame to a file, see WritePNG.
func (c *Canvas) SavePNG(path string, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.WritePNG(f, scale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// forCirclePoints walks the midpoint circle outline.
func forCirclePoints(cx, cy, r int, plot func(x, y int)) {
	x, y := r, 0
	err := 1 - r
	for x >= y {
		plot(cx+x, cy+y)
		plot(cx+y, cy+x)
		plot(cx-y, cy+x)
		plot(cx-x, cy+y)
		plot(cx-x, cy-y)
		plot(cx-y, cy-x)
		plot(cx+y, cy-x)
		plot(cx+x, cy-y)
		if err < 0 {
			err += 2*y + 3
		} else {
			err += 2*(y-x) + 3
			x--
		}
		y++
	}
}
