package rediscache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/pbanos/ripeness/evaluation"
	"gopkg.in/redis.v5"
)

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("RIPENESS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("RIPENESS_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rc := redis.NewClient(&redis.Options{Addr: addr})
	defer rc.Close()
	c := New(rc, fmt.Sprintf("ripeness-test-%d", time.Now().UnixNano()))
	defer c.Invalidate(ctx)
	r, err := c.Get(ctx, evaluation.KNN)
	if err != nil || r != nil {
		t.Fatalf("expected miss, got %v, %v", r, err)
	}
	want := &evaluation.Result{
		Algorithm:       evaluation.KNN,
		Accuracy:        87.5,
		ConfusionMatrix: evaluation.NewConfusionMatrix(),
		SampleCount:     40,
	}
	if err = c.Set(ctx, want, time.Minute); err != nil {
		t.Fatal(err)
	}
	r, err = c.Get(ctx, evaluation.KNN)
	if err != nil {
		t.Fatal(err)
	}
	if r == nil || r.Accuracy != 87.5 || r.SampleCount != 40 || len(r.ConfusionMatrix.Counts) != 4 {
		t.Errorf("got %+v", r)
	}
	if err = c.Invalidate(ctx); err != nil {
		t.Fatal(err)
	}
	if r, _ = c.Get(ctx, evaluation.KNN); r != nil {
		t.Errorf("expected miss after invalidation, got %+v", r)
	}
}
