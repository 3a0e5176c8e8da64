package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/evaluation"
	"github.com/pbanos/ripeness/feature"
	biosql "github.com/pbanos/ripeness/pkg/bio/sql"
	"github.com/pbanos/ripeness/pkg/bio/sql/sqlite3adapter"
)

func openTestStore(t *testing.T) store {
	a, err := sqlite3adapter.New(filepath.Join(t.TempDir(), "ripeness.db"))
	if err != nil {
		t.Fatal(err)
	}
	s, err := biosql.Open(context.Background(), a)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

func cachedCache(t *testing.T) evaluation.Cache {
	c := evaluation.NewMemoryCache(nil)
	err := c.Set(context.Background(), &evaluation.Result{Algorithm: evaluation.KNN, Accuracy: 82}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func isCached(t *testing.T, c evaluation.Cache) bool {
	r, err := c.Get(context.Background(), evaluation.KNN)
	if err != nil {
		t.Fatal(err)
	}
	return r != nil
}

func TestNewDataInvalidatesEvaluations(t *testing.T) {
	ctx := context.Background()
	color := dataset.Color{Red: 220, Green: 55, Blue: 45}
	tests := []struct {
		name       string
		add        func(store, evaluation.Cache) error
		invalidate bool
	}{
		{
			"training samples",
			func(s store, c evaluation.Cache) error {
				_, err := addTrainingSamples(ctx, s, c, []dataset.LabeledSample{{Color: color, Label: feature.Ripe}})
				return err
			},
			true,
		},
		{
			"no training samples",
			func(s store, c evaluation.Cache) error {
				_, err := addTrainingSamples(ctx, s, c, nil)
				return err
			},
			false,
		},
		{
			"verified classification",
			func(s store, c evaluation.Cache) error {
				return addClassification(ctx, s, c, color, feature.Ripe, true)
			},
			true,
		},
		{
			"unverified classification",
			func(s store, c evaluation.Cache) error {
				return addClassification(ctx, s, c, color, feature.Ripe, false)
			},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTestStore(t)
			c := cachedCache(t)
			err := tt.add(s, c)
			if err != nil {
				t.Fatal(err)
			}
			if isCached(t, c) == tt.invalidate {
				t.Errorf("cached evaluation kept: %v, want %v", isCached(t, c), !tt.invalidate)
			}
		})
	}
}
