// Package overlay loads static RGBA textures (borders) from PNG/JPEG
// files, resizing to the output dimensions and falling back to a fully
// transparent buffer when the asset is missing, grounded on
// original_source/src/renderers.py's BorderRenderer.load_border.
package overlay

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// LoadRGBA loads the image at path and resizes it to (width, height),
// returning a packed RGBA byte slice. An empty path, or one that
// cannot be opened, yields a fully transparent buffer instead of an
// error, matching load_border's "missing border -> empty overlay"
// behavior.
func LoadRGBA(path string, width, height int) []byte {
	buf := make([]byte, width*height*4)
	if path == "" {
		return buf
	}

	f, err := os.Open(path)
	if err != nil {
		return buf
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return buf
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	copy(buf, dst.Pix)
	return buf
}
