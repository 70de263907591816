package pipeline

import (
	"context"
	"errors"
	"testing"
)

func TestStageFuncExecutePassesInputAndContextThrough(t *testing.T) {
	var gotCtx context.Context
	var gotInput int

	stage := StageFunc[int, string](func(ctx context.Context, input int) (string, error) {
		gotCtx = ctx
		gotInput = input
		return "ok", nil
	})

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "v")
	out, err := stage.Execute(ctx, 42)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if out != "ok" {
		t.Errorf("output = %q, want %q", out, "ok")
	}
	if gotInput != 42 {
		t.Errorf("input = %d, want 42", gotInput)
	}
	if gotCtx != ctx {
		t.Error("expected the same context to be passed through")
	}
}

func TestStageFuncExecutePropagatesError(t *testing.T) {
	wantErr := errors.New("stage failed")
	stage := StageFunc[int, int](func(ctx context.Context, input int) (int, error) {
		return 0, wantErr
	})

	_, err := stage.Execute(context.Background(), 1)
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestStageFuncSatisfiesStageInterface(t *testing.T) {
	var _ Stage[int, int] = StageFunc[int, int](func(ctx context.Context, input int) (int, error) {
		return input, nil
	})
}
