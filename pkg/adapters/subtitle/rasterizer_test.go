package subtitle

import (
	"testing"

	"github.com/user/autovlog/pkg/ports"
)

func TestRenderReturnsFullFrameBuffer(t *testing.T) {
	r := New(64, 48, "", 20)

	buf, err := r.Render("hello", ports.RGBA{R: 255, G: 255, B: 255, A: 255}, ports.RGBA{A: 255}, 2)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(buf) != 64*48*4 {
		t.Fatalf("buffer length = %d, want %d", len(buf), 64*48*4)
	}
}

func TestRenderMemoizesIdenticalText(t *testing.T) {
	r := New(64, 48, "", 20)

	first, err := r.Render("same text", ports.RGBA{A: 255}, ports.RGBA{A: 255}, 1)
	if err != nil {
		t.Fatalf("first Render failed: %v", err)
	}
	second, err := r.Render("same text", ports.RGBA{A: 255}, ports.RGBA{A: 255}, 1)
	if err != nil {
		t.Fatalf("second Render failed: %v", err)
	}
	if &first[0] != &second[0] {
		t.Error("expected the memoized buffer to be returned for unchanged text")
	}
}

func TestRenderProducesDifferentBuffersForDifferentText(t *testing.T) {
	r := New(64, 48, "", 20)

	a, err := r.Render("aaa", ports.RGBA{R: 255, A: 255}, ports.RGBA{A: 255}, 0)
	if err != nil {
		t.Fatalf("Render(a) failed: %v", err)
	}
	b, err := r.Render("bbbbbbbbbb", ports.RGBA{R: 255, A: 255}, ports.RGBA{A: 255}, 0)
	if err != nil {
		t.Fatalf("Render(b) failed: %v", err)
	}
	if string(a) == string(b) {
		t.Error("expected different text to produce different buffers")
	}
}

func TestRenderWithoutOutlineWidthSkipsOutlinePass(t *testing.T) {
	r := New(32, 32, "", 16)

	if _, err := r.Render("x", ports.RGBA{R: 1, G: 2, B: 3, A: 255}, ports.RGBA{R: 9, G: 9, B: 9, A: 255}, 0); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
}

func TestRenderRejectsUnreadableFont(t *testing.T) {
	r := New(32, 32, "/nonexistent/font.ttf", 16)

	if _, err := r.Render("x", ports.RGBA{A: 255}, ports.RGBA{A: 255}, 0); err == nil {
		t.Fatal("expected an error for a missing font file, got nil")
	}
}
