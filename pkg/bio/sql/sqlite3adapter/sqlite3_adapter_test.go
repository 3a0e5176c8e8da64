package sqlite3adapter

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/feature"
	"github.com/pbanos/ripeness/history"
	biosql "github.com/pbanos/ripeness/pkg/bio/sql"
	"github.com/pbanos/ripeness/rule"
)

func openStore(t *testing.T) *biosql.Store {
	a, err := New(filepath.Join(t.TempDir(), "ripeness.db"))
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

func TestSamples(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	training := []dataset.LabeledSample{
		{Color: dataset.Color{Red: 220, Green: 55, Blue: 45}, Label: feature.Ripe},
		{Color: dataset.Color{Red: 70, Green: 145, Blue: 55}, Label: feature.Unripe},
	}
	n, err := s.AddTrainingSamples(ctx, training)
	if err != nil || n != 2 {
		t.Fatalf("got %d, %v", n, err)
	}
	if err = s.AddClassification(ctx, dataset.Color{Red: 90, Green: 95, Blue: 90}, feature.Rotten, true); err != nil {
		t.Fatal(err)
	}
	if err = s.AddClassification(ctx, dataset.Color{Red: 1, Green: 2, Blue: 3}, feature.Ripe, false); err != nil {
		t.Fatal(err)
	}
	ds, err := dataset.Collect(ctx, s)
	if err != nil {
		t.Fatal(err)
	}
	got := ds.Samples()
	if len(got) != 3 || got[0] != training[0] || got[1] != training[1] || got[2].Label != feature.Rotten {
		t.Errorf("got %v", got)
	}
}

func TestNodes(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	nodes := []rule.Node{
		{Order: 2, Kind: rule.Leaf, Label: feature.Unripe, Active: true},
		{
			Order:     1,
			Kind:      rule.Condition,
			Criterion: feature.Criterion{Field: feature.RatioRedGreen, Operator: feature.GreaterThan, Threshold: 1.7},
			OnTrue:    rule.ClassifyAs(feature.Ripe),
			OnFalse:   rule.JumpTo(2),
			Active:    true,
		},
		{Order: 3, Kind: rule.Leaf, Label: feature.Rotten},
	}
	for _, n := range nodes {
		if err := s.Put(ctx, n); err != nil {
			t.Fatal(err)
		}
	}
	active, err := s.ActiveNodes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 2 || active[0] != nodes[1] || active[1] != nodes[0] {
		t.Fatalf("got %v", active)
	}
	replaced := nodes[0]
	replaced.Label = feature.HalfRipe
	if err = s.Put(ctx, replaced); err != nil {
		t.Fatal(err)
	}
	if err = s.Delete(ctx, 1); err != nil {
		t.Fatal(err)
	}
	active, _ = s.ActiveNodes(ctx)
	if len(active) != 1 || active[0].Label != feature.HalfRipe {
		t.Errorf("got %v", active)
	}
	err = s.Put(ctx, rule.Node{Order: 4, Kind: rule.Leaf, Label: "matng", Active: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err = s.ActiveNodes(ctx); err == nil {
		t.Error("expected error reading a leaf with an unknown label")
	}
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	if _, err := s.Latest(ctx, "knn"); err != history.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	now := time.Now()
	old := history.NewRecord("knn", now.AddDate(0, 0, -40))
	old.Accuracy = 70
	recent := history.NewRecord("knn", now.Add(-time.Hour))
	recent.Accuracy = 91.25
	recent.SampleCount = 40
	recent.ConfusionMatrix = [][]int{{10, 0, 0, 0}, {0, 9, 1, 0}, {0, 0, 10, 0}, {0, 0, 0, 10}}
	recent.Metrics = map[feature.Label]history.Metrics{feature.Ripe: {Precision: 90.91, Recall: 100, F1: 95.24}}
	for _, r := range []history.Record{old, recent} {
		if err := s.Save(ctx, r); err != nil {
			t.Fatal(err)
		}
	}
	latest, err := s.Latest(ctx, "knn")
	if err != nil {
		t.Fatal(err)
	}
	if latest.ID != recent.ID || latest.Accuracy != 91.25 || latest.ConfusionMatrix[1][2] != 1 || latest.Metrics[feature.Ripe].F1 != 95.24 {
		t.Errorf("got %+v", latest)
	}
	window, err := s.Since(ctx, "knn", 30)
	if err != nil {
		t.Fatal(err)
	}
	if len(window) != 1 || window[0].ID != recent.ID {
		t.Errorf("got %+v", window)
	}
}
