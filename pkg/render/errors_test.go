package render

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatsKindOpAndWrappedMessage(t *testing.T) {
	err := NewGpuError("glcompositor.compileProgram", fmt.Errorf("link failed"))

	got := err.Error()
	want := "gpu: glcompositor.compileProgram: link failed"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorUnwrapsToUnderlyingCause(t *testing.T) {
	cause := errors.New("boom")
	err := NewMuxError("ffmpegmux.Concat", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestKindOfExtractsKindFromWrappedError(t *testing.T) {
	err := fmt.Errorf("context: %w", NewSessionError("session.Append", ErrTooManyClips))

	kind, ok := KindOf(err)
	if !ok {
		t.Fatal("expected KindOf to find an *Error in the chain")
	}
	if kind != KindSession {
		t.Errorf("kind = %q, want %q", kind, KindSession)
	}
}

func TestKindOfReturnsFalseForPlainErrors(t *testing.T) {
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("expected KindOf to return false for a non-render.Error")
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrSessionNotFound, ErrSessionAlreadyExists, ErrSessionConflict,
		ErrSessionCompleted, ErrEmptySession, ErrNoTransitions,
		ErrTooManyClips, ErrTransitionExceedsClip,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %d and %d compare equal, want distinct errors", i, j)
			}
		}
	}
}
