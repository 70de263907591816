package driver

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/user/autovlog/pkg/mocks"
	"github.com/user/autovlog/pkg/ports"
	"github.com/user/autovlog/pkg/render"
)

func writeFixturePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 64, A: 255})
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

func generateFixtureClip(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	cmd := exec.Command("ffmpeg", "-y",
		"-f", "lavfi", "-i", "testsrc=duration=1:size=16x12:rate=10",
		"-pix_fmt", "yuv420p", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Skipf("could not generate test clip with ffmpeg: %v\n%s", err, out)
	}
	return path
}

func TestRenderImageSegmentWritesOneFramePerCount(t *testing.T) {
	imagePath := writeFixturePNG(t, 16, 12)

	compositor := &mocks.Compositor{}
	subtitle := &mocks.SubtitleRasterizer{
		RenderFunc: func(text string, color, outlineColor ports.RGBA, outlineWidth int) ([]byte, error) {
			return make([]byte, 16*12*4), nil
		},
	}
	encoder := &mocks.EncoderSink{}

	d := New(compositor, subtitle, 16, 12, 10, "ffmpeg")

	tmpl := render.Template{
		TextColor:        color.RGBA{R: 255, G: 255, B: 255, A: 255},
		OutlineColor:     color.RGBA{A: 255},
		SubtitleTemplate: "hello",
		SubtitleDuration: 0.3,
		TypewriterSpeed:  1,
	}
	counts := render.FrameCounts{ImageFrames: 5}

	last, err := d.RenderImageSegment(imagePath, render.ImagePosition{}, counts, tmpl, encoder)
	if err != nil {
		t.Fatalf("RenderImageSegment failed: %v", err)
	}
	if len(encoder.WrittenFrames) != 5 {
		t.Fatalf("wrote %d frames, want 5", len(encoder.WrittenFrames))
	}
	if compositor.DrawSoloCalls != 5 {
		t.Errorf("DrawSoloCalls = %d, want 5", compositor.DrawSoloCalls)
	}
	if last.Width != 16 || last.Height != 12 {
		t.Errorf("returned frame dims = %dx%d, want 16x12", last.Width, last.Height)
	}
}

func TestRenderImageSegmentClearsSubtitleAfterDuration(t *testing.T) {
	imagePath := writeFixturePNG(t, 8, 8)

	var renderCalls, clearCalls int
	compositor := &mocks.Compositor{
		SetSubtitleFunc: func(rgba []byte) error {
			allZero := true
			for _, b := range rgba {
				if b != 0 {
					allZero = false
					break
				}
			}
			if allZero {
				clearCalls++
			}
			return nil
		},
	}
	subtitle := &mocks.SubtitleRasterizer{
		RenderFunc: func(text string, color, outlineColor ports.RGBA, outlineWidth int) ([]byte, error) {
			renderCalls++
			buf := make([]byte, 8*8*4)
			buf[3] = 255 // one opaque pixel, so an upload of it is not counted as a clear
			return buf, nil
		},
	}
	encoder := &mocks.EncoderSink{}

	d := New(compositor, subtitle, 8, 8, 10, "ffmpeg")
	tmpl := render.Template{
		SubtitleTemplate: "hi",
		SubtitleDuration: 0.2, // 2 frames at 10fps
		TypewriterSpeed:  1,
	}
	counts := render.FrameCounts{ImageFrames: 6}

	if _, err := d.RenderImageSegment(imagePath, render.ImagePosition{}, counts, tmpl, encoder); err != nil {
		t.Fatalf("RenderImageSegment failed: %v", err)
	}
	if renderCalls != 2 {
		t.Errorf("subtitle render calls = %d, want 2", renderCalls)
	}
	if clearCalls != 1 {
		t.Errorf("subtitle clear calls = %d, want 1 (cleared exactly once)", clearCalls)
	}
}

func TestRenderImageSegmentRevealsTypewriterTextByRuneNotByte(t *testing.T) {
	imagePath := writeFixturePNG(t, 8, 8)

	var seenTexts []string
	compositor := &mocks.Compositor{}
	subtitle := &mocks.SubtitleRasterizer{
		RenderFunc: func(text string, color, outlineColor ports.RGBA, outlineWidth int) ([]byte, error) {
			seenTexts = append(seenTexts, text)
			return make([]byte, 8*8*4), nil
		},
	}
	encoder := &mocks.EncoderSink{}

	d := New(compositor, subtitle, 8, 8, 10, "ffmpeg")
	tmpl := render.Template{
		SubtitleTemplate: "2026年8月6日",
		SubtitleDuration: 0.9, // 9 frames at 10fps, one per rune
		TypewriterSpeed:  1,
	}
	counts := render.FrameCounts{ImageFrames: 9}

	if _, err := d.RenderImageSegment(imagePath, render.ImagePosition{}, counts, tmpl, encoder); err != nil {
		t.Fatalf("RenderImageSegment failed: %v", err)
	}

	wantRunes := []rune("2026年8月6日")
	if len(seenTexts) != len(wantRunes) {
		t.Fatalf("got %d subtitle renders, want %d", len(seenTexts), len(wantRunes))
	}
	for i, text := range seenTexts {
		if !utf8.ValidString(text) {
			t.Fatalf("frame %d rendered invalid UTF-8: %q", i, text)
		}
		want := string(wantRunes[:i+1])
		if text != want {
			t.Errorf("frame %d text = %q, want %q", i, text, want)
		}
	}
}

func TestRenderClipSegmentWritesTransitionThenSoloFrames(t *testing.T) {
	if testing.Short() {
		t.Skip("spawns a real ffmpeg process")
	}
	clip := generateFixtureClip(t)

	compositor := &mocks.Compositor{}
	subtitle := &mocks.SubtitleRasterizer{}
	encoder := &mocks.EncoderSink{}

	d := New(compositor, subtitle, 16, 12, 10, "ffmpeg")
	effect := render.TransitionEffect{Name: "fade", Source: "vec4 transition(vec2 uv) { return texture(tex1, uv); }"}
	counts := render.FrameCounts{VideoFrames: 6, TransFrames: 3, SoloFrames: 3}
	lastFrame := render.Frame{Width: 16, Height: 12, Pix: make([]byte, render.Size(16, 12))}

	if _, err := d.RenderClipSegment(lastFrame, clip, effect, counts, encoder); err != nil {
		t.Fatalf("RenderClipSegment failed: %v", err)
	}
	if len(encoder.WrittenFrames) != 6 {
		t.Fatalf("wrote %d frames, want 6", len(encoder.WrittenFrames))
	}
	if compositor.DrawTransitionCalls != 3 {
		t.Errorf("DrawTransitionCalls = %d, want 3", compositor.DrawTransitionCalls)
	}
	if compositor.DrawSoloCalls != 3 {
		t.Errorf("DrawSoloCalls = %d, want 3", compositor.DrawSoloCalls)
	}
}

func TestRenderClipSegmentInstallsTransitionBeforeDrawing(t *testing.T) {
	if testing.Short() {
		t.Skip("spawns a real ffmpeg process")
	}
	clip := generateFixtureClip(t)

	var installed bool
	compositor := &mocks.Compositor{
		InstallTransitionFunc: func(effect render.TransitionEffect) error {
			installed = true
			return nil
		},
		DrawTransitionFunc: func(from, to render.Frame, effect render.TransitionEffect, progress float64) (render.Frame, error) {
			if !installed {
				t.Error("DrawTransition called before InstallTransition")
			}
			return to, nil
		},
	}
	subtitle := &mocks.SubtitleRasterizer{}
	encoder := &mocks.EncoderSink{}

	d := New(compositor, subtitle, 16, 12, 10, "ffmpeg")
	effect := render.TransitionEffect{Name: "fade"}
	counts := render.FrameCounts{VideoFrames: 4, TransFrames: 2, SoloFrames: 2}
	lastFrame := render.Frame{Width: 16, Height: 12, Pix: make([]byte, render.Size(16, 12))}

	if _, err := d.RenderClipSegment(lastFrame, clip, effect, counts, encoder); err != nil {
		t.Fatalf("RenderClipSegment failed: %v", err)
	}
	if !installed {
		t.Error("InstallTransition was never called")
	}
}
