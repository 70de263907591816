package imagesource

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/autovlog/pkg/render"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "cover.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return path
}

func TestSourcePullReturnsIdenticalFrameUntilTerminal(t *testing.T) {
	path := writeTestPNG(t, 20, 10)

	src, err := New(path, 20, 10, render.ImagePosition{}, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer src.Close()

	var frames []render.Frame
	for src.FramesRemaining() > 0 {
		f, err := src.Pull()
		if err != nil {
			t.Fatalf("Pull failed: %v", err)
		}
		frames = append(frames, f)
	}
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	for i := 1; i < len(frames); i++ {
		if string(frames[i].Pix) != string(frames[0].Pix) {
			t.Errorf("frame %d differs from frame 0, want identical buffers", i)
		}
	}
}

func TestSourcePullPastTerminalFails(t *testing.T) {
	path := writeTestPNG(t, 8, 8)

	src, err := New(path, 8, 8, render.ImagePosition{}, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer src.Close()

	if _, err := src.Pull(); err != nil {
		t.Fatalf("first Pull failed: %v", err)
	}
	if _, err := src.Pull(); err == nil {
		t.Fatal("expected an error pulling past the terminal frame count, got nil")
	}
}

func TestSourceResizesToFrameDimensions(t *testing.T) {
	path := writeTestPNG(t, 50, 20)

	src, err := New(path, 12, 12, render.ImagePosition{}, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer src.Close()

	f, err := src.Pull()
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	if f.Width != 12 || f.Height != 12 {
		t.Errorf("frame dims = %dx%d, want 12x12", f.Width, f.Height)
	}
	if len(f.Pix) != render.Size(12, 12) {
		t.Errorf("pix length = %d, want %d", len(f.Pix), render.Size(12, 12))
	}
}

func TestSourceHonorsImagePositionSubRect(t *testing.T) {
	path := writeTestPNG(t, 10, 10)

	fullBleed, err := New(path, 40, 40, render.ImagePosition{}, 1)
	if err != nil {
		t.Fatalf("New (full-bleed) failed: %v", err)
	}
	defer fullBleed.Close()

	inset, err := New(path, 40, 40, render.ImagePosition{X: 5, Y: 5, Width: 10, Height: 10}, 1)
	if err != nil {
		t.Fatalf("New (inset) failed: %v", err)
	}
	defer inset.Close()

	full, _ := fullBleed.Pull()
	ins, _ := inset.Pull()
	if string(full.Pix) == string(ins.Pix) {
		t.Error("inset placement produced the same buffer as full-bleed, want different framing")
	}
}

func TestSourceRejectsMissingFile(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing.png"), 8, 8, render.ImagePosition{}, 1); err == nil {
		t.Fatal("expected an error for a missing file, got nil")
	}
}

func TestSourceCloseIsNoop(t *testing.T) {
	path := writeTestPNG(t, 4, 4)
	src, err := New(path, 4, 4, render.ImagePosition{}, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close returned %v, want nil", err)
	}
}
