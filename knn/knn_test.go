package knn

import (
	"math"
	"testing"

	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/feature"
)

func TestSeedSet(t *testing.T) {
	s := SeedSamples()
	if len(s) != 8 {
		t.Fatalf("got %d seed samples, want 8", len(s))
	}
	counts := dataset.New(s).CountLabels()
	for _, l := range feature.Labels() {
		if counts[l] != 2 {
			t.Errorf("%s: %d seed samples, want 2", l, counts[l])
		}
	}
}

func TestEmptyTrainingUsesSeed(t *testing.T) {
	c := New(nil)
	if !c.UsesSeed() {
		t.Fatal("expected seed samples to be used")
	}
	p, err := c.Predict(dataset.Color{Red: 180, Green: 80, Blue: 70})
	if err != nil {
		t.Fatal(err)
	}
	if p.Label != feature.Ripe {
		t.Errorf("got %q, want matang", p.Label)
	}
	if p.Neighbors[0].Distance != 0 || p.Neighbors[0].Label != feature.Ripe {
		t.Errorf("closest neighbor should be the matching seed, got %+v", p.Neighbors[0])
	}
	if !p.UsedSeed {
		t.Error("prediction should report seed use")
	}
}

func TestSingleSampleAlwaysWins(t *testing.T) {
	c := New([]dataset.LabeledSample{{Color: dataset.Color{Red: 10, Green: 200, Blue: 10}, Label: feature.Rotten}})
	for _, q := range []dataset.Color{{Red: 0, Green: 0, Blue: 0}, {Red: 255, Green: 255, Blue: 255}, {Red: 220, Green: 55, Blue: 45}} {
		p, err := c.Predict(q)
		if err != nil {
			t.Fatal(err)
		}
		if p.Label != feature.Rotten {
			t.Errorf("%v: got %q, want busuk", q, p.Label)
		}
		if p.Confidence != 33.33 {
			t.Errorf("%v: confidence %v, want 33.33", q, p.Confidence)
		}
		if len(p.Neighbors) != 1 {
			t.Errorf("%v: %d neighbors", q, len(p.Neighbors))
		}
	}
}

func TestMajorityVote(t *testing.T) {
	training := []dataset.LabeledSample{
		{Color: dataset.Color{Red: 200, Green: 50, Blue: 50}, Label: feature.Ripe},
		{Color: dataset.Color{Red: 201, Green: 50, Blue: 50}, Label: feature.Ripe},
		{Color: dataset.Color{Red: 199, Green: 52, Blue: 50}, Label: feature.HalfRipe},
		{Color: dataset.Color{Red: 50, Green: 200, Blue: 50}, Label: feature.Unripe},
	}
	p, err := New(training).Predict(dataset.Color{Red: 200, Green: 51, Blue: 50})
	if err != nil {
		t.Fatal(err)
	}
	if p.Label != feature.Ripe || p.Votes[feature.Ripe] != 2 || p.Confidence != 66.67 {
		t.Errorf("got %+v", p)
	}
}

func TestVoteTieBreaksLexically(t *testing.T) {
	training := []dataset.LabeledSample{
		{Color: dataset.Color{Red: 100, Green: 100, Blue: 100}, Label: feature.Unripe},
		{Color: dataset.Color{Red: 100, Green: 100, Blue: 100}, Label: feature.HalfRipe},
		{Color: dataset.Color{Red: 100, Green: 100, Blue: 100}, Label: feature.Ripe},
	}
	p, err := New(training).Predict(dataset.Color{Red: 100, Green: 100, Blue: 100})
	if err != nil {
		t.Fatal(err)
	}
	if p.Label != feature.Ripe {
		t.Errorf("got %q, want matang", p.Label)
	}
}

func TestStableDistanceOrder(t *testing.T) {
	training := []dataset.LabeledSample{
		{Color: dataset.Color{Red: 10}, Label: feature.Unripe},
		{Color: dataset.Color{Red: 30}, Label: feature.Rotten},
		{Color: dataset.Color{Red: 30}, Label: feature.Ripe},
		{Color: dataset.Color{Red: 10, Green: 1}, Label: feature.HalfRipe},
	}
	c := New(training)
	c.K = 2
	p, err := c.Predict(dataset.Color{Red: 20})
	if err != nil {
		t.Fatal(err)
	}
	if p.Neighbors[0].Label != feature.Unripe || p.Neighbors[1].Label != feature.Rotten {
		t.Errorf("equidistant neighbors should keep training order, got %+v", p.Neighbors)
	}
}

func TestDistance(t *testing.T) {
	d := Distance(dataset.Color{Red: 0, Green: 0, Blue: 0}, dataset.Color{Red: 3, Green: 4, Blue: 12})
	if math.Abs(d-13) > 1e-9 {
		t.Errorf("got %v, want 13", d)
	}
}

func TestInvalidK(t *testing.T) {
	c := New(nil)
	c.K = 0
	if _, err := c.Predict(dataset.Color{}); err == nil {
		t.Error("expected error with K=0")
	}
}
