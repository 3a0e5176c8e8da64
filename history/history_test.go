package history

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStoreWithClock(func() time.Time { return now })
	if _, err := s.Latest(ctx, "knn"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	for _, r := range []struct {
		algorithm string
		daysAgo   int
		accuracy  float64
	}{
		{"knn", 40, 70},
		{"knn", 10, 80},
		{"knn", 1, 90},
		{"random_forest", 0, 88},
	} {
		rec := NewRecord(r.algorithm, now.AddDate(0, 0, -r.daysAgo))
		rec.Accuracy = r.accuracy
		if err := s.Save(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}
	latest, err := s.Latest(ctx, "knn")
	if err != nil {
		t.Fatal(err)
	}
	if latest.Accuracy != 90 {
		t.Errorf("latest accuracy %v, want 90", latest.Accuracy)
	}
	recent, err := s.Since(ctx, "knn", 30)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].Accuracy != 90 || recent[1].Accuracy != 80 {
		t.Errorf("unexpected records %+v", recent)
	}
	if recent[0].ID == recent[1].ID {
		t.Error("records share an ID")
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewMemoryStore().Save(ctx, NewRecord("knn", time.Now())); err == nil {
		t.Error("expected error on cancelled context")
	}
}
