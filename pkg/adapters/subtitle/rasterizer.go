// Package subtitle provides a CPU-side ports.SubtitleRasterizer built
// on github.com/fogleman/gg, grounded on the teacher's ggrenderer
// adapter and on original_source/src/renderers.py's SubtitleRenderer:
// the outline is drawn by repeating the glyph pass at a ring of offsets
// in the outline color before the foreground pass, and the last
// rendered string is memoized to skip redundant work.
package subtitle

import (
	"fmt"

	"github.com/fogleman/gg"

	"github.com/user/autovlog/pkg/ports"
)

// bottomMargin is the gap below the subtitle on a 1080-pixel-tall
// frame, which keeps the text in the lower third there; Render scales
// it in proportion to the frame height, so shorter frames keep the
// text on the canvas.
const bottomMargin = 160

// Rasterizer implements ports.SubtitleRasterizer.
type Rasterizer struct {
	width, height int
	fontPath      string
	fontSize      float64

	lastText string
	lastRGBA []byte
}

// New creates a Rasterizer that draws at (width, height) using the
// font at fontPath/fontSize.
func New(width, height int, fontPath string, fontSize float64) *Rasterizer {
	return &Rasterizer{width: width, height: height, fontPath: fontPath, fontSize: fontSize}
}

// Render returns a Width*Height*4 RGBA buffer with the outlined text
// drawn in the lower third, or the memoized buffer from the previous
// call if text is unchanged.
func (r *Rasterizer) Render(text string, color, outlineColor ports.RGBA, outlineWidth int) ([]byte, error) {
	if text == r.lastText && r.lastRGBA != nil {
		return r.lastRGBA, nil
	}

	dc := gg.NewContext(r.width, r.height)
	if r.fontPath != "" {
		if err := dc.LoadFontFace(r.fontPath, r.fontSize); err != nil {
			return nil, fmt.Errorf("subtitle: load font: %w", err)
		}
	}

	tw, th := dc.MeasureString(text)
	x := (float64(r.width) - tw) / 2
	y := float64(r.height) - th - bottomMargin*float64(r.height)/1080

	if outlineWidth > 0 {
		dc.SetRGBA255(int(outlineColor.R), int(outlineColor.G), int(outlineColor.B), int(outlineColor.A))
		for dy := -outlineWidth; dy <= outlineWidth; dy++ {
			for dx := -outlineWidth; dx <= outlineWidth; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				dc.DrawStringAnchored(text, x+float64(dx), y+float64(dy), 0, 0)
			}
		}
	}

	dc.SetRGBA255(int(color.R), int(color.G), int(color.B), int(color.A))
	dc.DrawStringAnchored(text, x, y, 0, 0)

	rgba := dc.Image()
	buf := make([]byte, r.width*r.height*4)
	idx := 0
	for py := 0; py < r.height; py++ {
		for px := 0; px < r.width; px++ {
			rr, gg_, bb, aa := rgba.At(px, py).RGBA()
			buf[idx+0] = byte(rr >> 8)
			buf[idx+1] = byte(gg_ >> 8)
			buf[idx+2] = byte(bb >> 8)
			buf[idx+3] = byte(aa >> 8)
			idx += 4
		}
	}

	r.lastText = text
	r.lastRGBA = buf
	return buf, nil
}

var _ ports.SubtitleRasterizer = (*Rasterizer)(nil)
