package queue

import (
	"context"
	"testing"

	"github.com/pbanos/ripeness/dataset"
)

func task(i int) *Task {
	return &Task{Algorithm: "knn", Fold: dataset.Fold{Index: i}}
}

func TestFIFOAcrossWraparound(t *testing.T) {
	ctx := context.Background()
	q := New()
	for i := 0; i < 3; i++ {
		if err := q.Push(ctx, task(i)); err != nil {
			t.Fatal(err)
		}
	}
	first, _ := q.Pull(ctx)
	second, _ := q.Pull(ctx)
	if first.Fold.Index != 0 || second.Fold.Index != 1 {
		t.Fatalf("got %v then %v", first, second)
	}
	for i := 3; i < 7; i++ {
		q.Push(ctx, task(i))
	}
	for want := 2; want < 7; want++ {
		got, err := q.Pull(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if got == nil || got.Fold.Index != want {
			t.Fatalf("got %v, want fold %d", got, want)
		}
	}
	got, err := q.Pull(ctx)
	if got != nil || err != nil {
		t.Errorf("expected empty queue, got %v, %v", got, err)
	}
}

func TestComplete(t *testing.T) {
	ctx := context.Background()
	q := New()
	q.Push(ctx, task(0))
	q.Push(ctx, task(1))
	tk, _ := q.Pull(ctx)
	pending, running, _ := q.Count(ctx)
	if pending != 1 || running != 1 {
		t.Fatalf("got %d pending %d running", pending, running)
	}
	q.Complete(ctx, tk.ID())
	q.Complete(ctx, "unknown/9")
	pending, running, _ = q.Count(ctx)
	if pending != 1 || running != 0 {
		t.Errorf("after complete got %d pending %d running", pending, running)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := New().Push(ctx, task(0)); err == nil {
		t.Error("expected error")
	}
}
