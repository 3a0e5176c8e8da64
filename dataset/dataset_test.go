package dataset

import (
	"context"
	"math/rand"
	"testing"

	"github.com/pbanos/ripeness/feature"
)

func TestNewColor(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b int
		wantErr bool
	}{
		{"black", 0, 0, 0, false},
		{"white", 255, 255, 255, false},
		{"negative-red", -1, 10, 10, true},
		{"green-overflow", 10, 256, 10, true},
		{"blue-overflow", 10, 10, 300, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewColor(tt.r, tt.g, tt.b)
			if (err != nil) != tt.wantErr {
				t.Errorf("got error %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor(" 220, 55,45")
	if err != nil {
		t.Fatal(err)
	}
	if c != (Color{220, 55, 45}) {
		t.Errorf("got %v", c)
	}
	for _, in := range []string{"", "1,2", "1,2,3,4", "a,2,3", "1,2,256"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q): expected error", in)
		}
	}
}

func TestRatiosWithZeroDenominator(t *testing.T) {
	for r := 0; r <= 255; r += 15 {
		c := Color{Red: r, Green: 0, Blue: 0}
		if c.RedToGreen() != 0 || c.ValueFor(feature.RatioRedGreen) != 0 {
			t.Fatalf("%v: red_to_green should be 0", c)
		}
		if c.RedToBlue() != 0 || c.GreenToBlue() != 0 {
			t.Fatalf("%v: blue ratios should be 0", c)
		}
	}
	c := Color{220, 55, 44}
	if c.ValueFor(feature.RatioRedGreen) != 4 {
		t.Errorf("red_to_green: got %v, want 4", c.RedToGreen())
	}
	if c.ValueFor(feature.RatioRedBlue) != 5 {
		t.Errorf("red_to_blue: got %v, want 5", c.RedToBlue())
	}
	if c.ValueFor(feature.Green) != 55 {
		t.Errorf("green: got %v", c.ValueFor(feature.Green))
	}
}

func samplesOf(n int) []LabeledSample {
	labels := feature.Labels()
	samples := make([]LabeledSample, n)
	for i := range samples {
		samples[i] = LabeledSample{Color{i, i, i}, labels[i%len(labels)]}
	}
	return samples
}

func TestFolds(t *testing.T) {
	tests := []struct {
		n, k      int
		wantSizes []int
	}{
		{10, 5, []int{2, 2, 2, 2, 2}},
		{12, 5, []int{3, 3, 2, 2, 2}},
		{5, 5, []int{1, 1, 1, 1, 1}},
	}
	for _, tt := range tests {
		ds := New(samplesOf(tt.n))
		folds, err := ds.Folds(tt.k)
		if err != nil {
			t.Fatalf("n=%d k=%d: %v", tt.n, tt.k, err)
		}
		seen := make(map[int]int)
		for i, f := range folds {
			if f.Test.Count() != tt.wantSizes[i] {
				t.Errorf("n=%d k=%d fold %d: test size %d, want %d", tt.n, tt.k, i, f.Test.Count(), tt.wantSizes[i])
			}
			if f.Train.Count()+f.Test.Count() != tt.n {
				t.Errorf("n=%d k=%d fold %d: train+test = %d", tt.n, tt.k, i, f.Train.Count()+f.Test.Count())
			}
			for _, s := range f.Test.Samples() {
				seen[s.Red]++
			}
		}
		if len(seen) != tt.n {
			t.Errorf("n=%d k=%d: %d distinct test samples, want %d", tt.n, tt.k, len(seen), tt.n)
		}
		for v, c := range seen {
			if c != 1 {
				t.Errorf("sample %d tested %d times", v, c)
			}
		}
	}
	if _, err := New(samplesOf(3)).Folds(5); err == nil {
		t.Error("expected error with fewer samples than folds")
	}
	if _, err := New(samplesOf(3)).Folds(1); err == nil {
		t.Error("expected error with a single fold")
	}
}

func TestFoldsDoNotShareBackingArrays(t *testing.T) {
	folds, err := New(samplesOf(10)).Folds(5)
	if err != nil {
		t.Fatal(err)
	}
	train := folds[0].Train.Samples()
	_ = append(train, LabeledSample{Color{200, 200, 200}, feature.Rotten})
	if folds[1].Test.Samples()[0].Red == 200 {
		t.Error("appending to a training set modified a test set")
	}
}

func TestShuffleKeepsSamples(t *testing.T) {
	ds := New(samplesOf(40))
	shuffled := ds.Shuffle(rand.New(rand.NewSource(1)))
	if shuffled.Count() != 40 {
		t.Fatalf("got %d samples", shuffled.Count())
	}
	want := ds.CountLabels()
	got := shuffled.CountLabels()
	for _, l := range feature.Labels() {
		if got[l] != want[l] {
			t.Errorf("%s: got %d, want %d", l, got[l], want[l])
		}
	}
	if ds.Samples()[0].Red != 0 || ds.Samples()[39].Red != 39 {
		t.Error("shuffle modified the original dataset")
	}
}

func TestClassStats(t *testing.T) {
	ds := New([]LabeledSample{
		{Color{200, 50, 40}, feature.Ripe},
		{Color{180, 70, 60}, feature.Ripe},
		{Color{80, 150, 50}, feature.Unripe},
	})
	stats := ds.ClassStats()
	ripe := stats[feature.Ripe]
	if ripe.Count != 2 || ripe.MinRed != 180 || ripe.AvgRed != 190 || ripe.MinBlue != 40 || ripe.AvgBlue != 50 {
		t.Errorf("unexpected ripe stats %+v", ripe)
	}
	if _, ok := stats[feature.Rotten]; ok {
		t.Error("absent labels should have no stats")
	}
}

func TestCollect(t *testing.T) {
	training := samplesOf(3)
	verified := []LabeledSample{{Color{1, 2, 3}, feature.Rotten}}
	ds, err := Collect(context.Background(), NewMemorySource(training, verified))
	if err != nil {
		t.Fatal(err)
	}
	if ds.Count() != 4 {
		t.Fatalf("got %d samples, want 4", ds.Count())
	}
	if ds.Samples()[3].Label != feature.Rotten {
		t.Error("verified samples should follow training samples")
	}
	ds, err = Collect(context.Background(), nil)
	if err != nil || ds.Count() != 0 {
		t.Errorf("nil source: got %v, %v", ds, err)
	}
}
