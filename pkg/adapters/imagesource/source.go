// Package imagesource provides a ports.FrameSource for the cover image
// phase: load once, resize once, return the identical buffer for every
// pull until the configured frame count is reached.
package imagesource

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/user/autovlog/pkg/ports"
	"github.com/user/autovlog/pkg/render"
)

// Source implements ports.FrameSource for a still image.
type Source struct {
	width, height int
	terminal      int
	frameCount    int
	rgb           []byte
}

// New loads the image at path and places it within the frame at pos
// (full-bleed when pos is the zero value), per spec.md §12's optional
// image_position sub-rectangle.
func New(path string, width, height int, pos render.ImagePosition, terminalFrames int) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, render.NewInputError("imagesource.New", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, render.NewDecodeError("imagesource.New: decode", err)
	}

	destX, destY, destW, destH := 0, 0, width, height
	if pos.Width > 0 && pos.Height > 0 {
		destX, destY, destW, destH = pos.X, pos.Y, pos.Width, pos.Height
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	target := image.Rect(destX, destY, destX+destW, destY+destH)
	draw.CatmullRom.Scale(dst, target, img, img.Bounds(), draw.Src, nil)

	rgb := make([]byte, render.Size(width, height))
	for y := 0; y < height; y++ {
		srcRow := dst.Pix[y*dst.Stride : y*dst.Stride+width*4]
		dstRow := rgb[y*width*3 : (y+1)*width*3]
		for x := 0; x < width; x++ {
			dstRow[x*3+0] = srcRow[x*4+0]
			dstRow[x*3+1] = srcRow[x*4+1]
			dstRow[x*3+2] = srcRow[x*4+2]
		}
	}

	return &Source{width: width, height: height, terminal: terminalFrames, rgb: rgb}, nil
}

// Pull returns the identical resized buffer until the terminal frame
// count is reached.
func (s *Source) Pull() (render.Frame, error) {
	if s.frameCount >= s.terminal {
		return render.Frame{}, fmt.Errorf("imagesource: pulled past terminal frame count")
	}
	s.frameCount++
	return render.Frame{Width: s.width, Height: s.height, Pix: s.rgb}, nil
}

// FramesRemaining reports how many more frames Pull will produce.
func (s *Source) FramesRemaining() int {
	return s.terminal - s.frameCount
}

// Close is a no-op: an image source holds no process or file handle.
func (s *Source) Close() error { return nil }

var _ ports.FrameSource = (*Source)(nil)
