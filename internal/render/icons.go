package render

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Condition icon art, rasterized on demand from inline SVG so the matrix
// can show weather glyphs at whatever cell size the text row uses.
const (
	svgSun = `<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg">
<circle cx="12" cy="12" r="6" fill="#FFD23F"/>
<rect x="11" y="1" width="2" height="4" fill="#FFD23F"/>
<rect x="11" y="19" width="2" height="4" fill="#FFD23F"/>
<rect x="1" y="11" width="4" height="2" fill="#FFD23F"/>
<rect x="19" y="11" width="4" height="2" fill="#FFD23F"/>
</svg>`

	svgCloud = `<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg">
<circle cx="8" cy="13" r="5" fill="#C8C8C8"/>
<circle cx="15" cy="11" r="6" fill="#C8C8C8"/>
<rect x="6" y="12" width="13" height="6" fill="#C8C8C8"/>
</svg>`

	svgRain = `<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg">
<circle cx="8" cy="9" r="5" fill="#C8C8C8"/>
<circle cx="15" cy="8" r="5" fill="#C8C8C8"/>
<rect x="6" y="8" width="12" height="5" fill="#C8C8C8"/>
<rect x="7" y="16" width="2" height="5" fill="#4FA3E3"/>
<rect x="12" y="16" width="2" height="5" fill="#4FA3E3"/>
<rect x="17" y="16" width="2" height="5" fill="#4FA3E3"/>
</svg>`

	svgSnow = `<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg">
<circle cx="8" cy="9" r="5" fill="#C8C8C8"/>
<circle cx="15" cy="8" r="5" fill="#C8C8C8"/>
<rect x="6" y="8" width="12" height="5" fill="#C8C8C8"/>
<circle cx="8" cy="18" r="1.5" fill="#FFFFFF"/>
<circle cx="13" cy="20" r="1.5" fill="#FFFFFF"/>
<circle cx="18" cy="18" r="1.5" fill="#FFFFFF"/>
</svg>`

	svgThunder = `<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg">
<circle cx="8" cy="8" r="5" fill="#969696"/>
<circle cx="15" cy="7" r="5" fill="#969696"/>
<rect x="6" y="7" width="12" height="5" fill="#969696"/>
<path d="M13 12 L9 18 L12 18 L10 23 L16 16 L13 16 Z" fill="#FFD23F"/>
</svg>`

	svgFog = `<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg">
<rect x="3" y="8" width="18" height="2" fill="#B4B4B4"/>
<rect x="5" y="12" width="16" height="2" fill="#B4B4B4"/>
<rect x="3" y="16" width="18" height="2" fill="#B4B4B4"/>
</svg>`
)

var iconCache = struct {
	sync.Mutex
	m map[string]*image.RGBA
}{m: make(map[string]*image.RGBA)}

// WeatherIcon rasterizes the icon for a WMO weather interpretation code at
// the given pixel size. Returns nil when the code has no icon or the SVG
// fails to parse. Rendered icons are cached per name and size.
func WeatherIcon(code, size int) *image.RGBA {
	name, svg := iconForCode(code)
	if svg == "" {
		return nil
	}

	key := fmt.Sprintf("%s-%d", name, size)
	iconCache.Lock()
	defer iconCache.Unlock()
	if img, ok := iconCache.m[key]; ok {
		return img
	}

	img := rasterize(svg, size)
	if img != nil {
		iconCache.m[key] = img
	}
	return img
}

// iconForCode maps WMO weather interpretation codes to icon art.
func iconForCode(code int) (string, string) {
	switch {
	case code == 0 || code == 1:
		return "sun", svgSun
	case code == 2 || code == 3:
		return "cloud", svgCloud
	case code >= 45 && code <= 48:
		return "fog", svgFog
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return "rain", svgRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return "snow", svgSnow
	case code >= 95:
		return "thunder", svgThunder
	}
	return "", ""
}

func rasterize(svg string, size int) *image.RGBA {
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)
	return img
}
