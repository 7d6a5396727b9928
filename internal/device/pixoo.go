// Package device talks to Divoom Pixoo displays over their local HTTP API.
// Drawing calls paint a local RGB frame buffer; Push encodes the buffer and
// sends it to the device in a single request.
package device

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pixelmat/pixelmat/internal/render"
	"github.com/pixelmat/pixelmat/internal/widget"
)

const (
	// DefaultPort is the HTTP port Pixoo devices listen on.
	DefaultPort = 80

	// maxPicID is where the device animation counter wraps; past it the
	// counter must be reset or the device ignores frames.
	maxPicID = 1000
)

// Pixoo is an HTTP client for one Pixoo device.
type Pixoo struct {
	addr    string
	port    int
	size    int
	baseURL string
	client  *http.Client
	logger  *slog.Logger

	buffer []byte // size*size*3 RGB
	picID  int
}

// Option configures a Pixoo client.
type Option func(*Pixoo)

// WithPort overrides the device HTTP port.
func WithPort(port int) Option {
	return func(p *Pixoo) { p.port = port }
}

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Pixoo) { p.client = c }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pixoo) { p.logger = l }
}

// New creates a client for the device at addr with a square screen of the
// given pixel size.
func New(addr string, size int, opts ...Option) *Pixoo {
	p := &Pixoo{
		addr:   addr,
		port:   DefaultPort,
		size:   size,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: slog.Default(),
		buffer: make([]byte, size*size*3),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.baseURL = fmt.Sprintf("http://%s:%d/post", p.addr, p.port)
	return p
}

// Address returns the device host address.
func (p *Pixoo) Address() string { return p.addr }

// Size returns the screen size in pixels.
func (p *Pixoo) Size() int { return p.size }

func (p *Pixoo) set(x, y int, c widget.RGB) {
	if x < 0 || y < 0 || x >= p.size || y >= p.size {
		return
	}
	i := (y*p.size + x) * 3
	p.buffer[i] = byte(c[0])
	p.buffer[i+1] = byte(c[1])
	p.buffer[i+2] = byte(c[2])
}

// Fill paints the whole frame buffer one color.
func (p *Pixoo) Fill(c widget.RGB) {
	for i := 0; i < len(p.buffer); i += 3 {
		p.buffer[i] = byte(c[0])
		p.buffer[i+1] = byte(c[1])
		p.buffer[i+2] = byte(c[2])
	}
}

// Clear blanks the frame buffer.
func (p *Pixoo) Clear() {
	p.Fill(widget.RGB{0, 0, 0})
}

// DrawText rasterizes text into the frame buffer at (x, y).
func (p *Pixoo) DrawText(text string, x, y int, c widget.RGB) {
	render.DrawString(text, x, y, func(px, py int) {
		p.set(px, py, c)
	})
}

// DrawRectangle draws a rectangle outline with inclusive corners.
func (p *Pixoo) DrawRectangle(x1, y1, x2, y2 int, c widget.RGB) {
	for x := x1; x <= x2; x++ {
		p.set(x, y1, c)
		p.set(x, y2, c)
	}
	for y := y1; y <= y2; y++ {
		p.set(x1, y, c)
		p.set(x2, y, c)
	}
}

// DrawFilledRectangle fills a rectangle with inclusive corners.
func (p *Pixoo) DrawFilledRectangle(x1, y1, x2, y2 int, c widget.RGB) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			p.set(x, y, c)
		}
	}
}

// DrawCircle draws a circle outline centered at (cx, cy).
func (p *Pixoo) DrawCircle(cx, cy, r int, c widget.RGB) {
	x, y := r, 0
	err := 1 - r
	for x >= y {
		p.set(cx+x, cy+y, c)
		p.set(cx+y, cy+x, c)
		p.set(cx-y, cy+x, c)
		p.set(cx-x, cy+y, c)
		p.set(cx-x, cy-y, c)
		p.set(cx-y, cy-x, c)
		p.set(cx+y, cy-x, c)
		p.set(cx+x, cy-y, c)
		if err < 0 {
			err += 2*y + 3
		} else {
			err += 2*(y-x) + 3
			x--
		}
		y++
	}
}

// DrawFilledCircle fills a circle centered at (cx, cy).
func (p *Pixoo) DrawFilledCircle(cx, cy, r int, c widget.RGB) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				p.set(cx+dx, cy+dy, c)
			}
		}
	}
}

// DrawImage blits an RGBA image into the frame buffer, skipping fully
// transparent pixels.
func (p *Pixoo) DrawImage(x, y int, img *image.RGBA) {
	b := img.Bounds()
	for dy := 0; dy < b.Dy(); dy++ {
		for dx := 0; dx < b.Dx(); dx++ {
			r, g, bl, a := img.At(b.Min.X+dx, b.Min.Y+dy).RGBA()
			if a == 0 {
				continue
			}
			p.set(x+dx, y+dy, widget.RGB{int(r >> 8), int(g >> 8), int(bl >> 8)})
		}
	}
}

// Push sends the frame buffer to the device as a single-frame animation.
func (p *Pixoo) Push() error {
	if p.picID >= maxPicID {
		if err := p.ResetCounter(); err != nil {
			p.logger.Warn("counter reset failed", "error", err)
		}
	}
	p.picID++

	payload := map[string]any{
		"Command":   "Draw/SendHttpGif",
		"PicNum":    1,
		"PicWidth":  p.size,
		"PicOffset": 0,
		"PicID":     p.picID,
		"PicSpeed":  1000,
		"PicData":   base64.StdEncoding.EncodeToString(p.buffer),
	}
	return p.post(payload)
}

// ResetCounter resets the device's animation frame counter.
func (p *Pixoo) ResetCounter() error {
	err := p.post(map[string]any{"Command": "Draw/ResetHttpGifId"})
	if err == nil {
		p.picID = 0
	}
	return err
}

// SetBrightness sets the panel brightness, 0-100 percent.
func (p *Pixoo) SetBrightness(percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("brightness must be between 0 and 100, got %d", percent)
	}
	return p.post(map[string]any{
		"Command":    "Channel/SetBrightness",
		"Brightness": percent,
	})
}

// Probe checks that the device answers its configuration endpoint, used to
// verify connectivity before entering the display loop.
func (p *Pixoo) Probe() error {
	return p.post(map[string]any{"Command": "Channel/GetAllConf"})
}

func (p *Pixoo) post(payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode command: %w", err)
	}

	resp, err := p.client.Post(p.baseURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("device request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("device returned status %d", resp.StatusCode)
	}

	var result struct {
		ErrorCode int `json:"error_code"`
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read device response: %w", err)
	}
	if err := json.Unmarshal(data, &result); err == nil && result.ErrorCode != 0 {
		return fmt.Errorf("device rejected command: error_code=%d", result.ErrorCode)
	}
	return nil
}
