package forest

import (
	"testing"

	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/feature"
)

func TestFixedProfiles(t *testing.T) {
	want := map[string][2]float64{
		"standard":     {150, 1.5},
		"conservative": {160, 1.7},
		"liberal":      {140, 1.3},
	}
	ps := FixedProfiles()
	if len(ps) != 3 {
		t.Fatalf("got %d profiles", len(ps))
	}
	for _, p := range ps {
		w, ok := want[p.Name]
		if !ok {
			t.Fatalf("unexpected profile %q", p.Name)
		}
		if p.RedThreshold != w[0] || p.RatioThreshold != w[1] || p.SpoilageBlue != 80 {
			t.Errorf("%s: got %+v", p.Name, p)
		}
	}
}

func TestClassify(t *testing.T) {
	standard := FixedProfiles()[0]
	tests := []struct {
		name  string
		color dataset.Color
		want  feature.Label
	}{
		{"rotten", dataset.Color{Red: 90, Green: 95, Blue: 90}, feature.Rotten},
		{"ripe", dataset.Color{Red: 220, Green: 55, Blue: 45}, feature.Ripe},
		{"half-ripe", dataset.Color{Red: 180, Green: 140, Blue: 60}, feature.HalfRipe},
		{"unripe", dataset.Color{Red: 70, Green: 145, Blue: 55}, feature.Unripe},
		{"zero-green", dataset.Color{Red: 200, Green: 0, Blue: 0}, feature.Unripe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(standard, tt.color); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPredictAgreement(t *testing.T) {
	f := NewFixed()
	tests := []struct {
		name       string
		color      dataset.Color
		want       feature.Label
		agreement  Agreement
		confidence float64
	}{
		// ratio 1.6, red 160: standard and liberal say matang, conservative half-ripe
		{"split", dataset.Color{Red: 160, Green: 100, Blue: 40}, feature.Ripe, StrongMajority, 53.33},
		{"unanimous", dataset.Color{Red: 220, Green: 55, Blue: 45}, feature.Ripe, Unanimous, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := f.Predict(tt.color)
			if err != nil {
				t.Fatal(err)
			}
			if p.Label != tt.want || p.Agreement != tt.agreement || p.Confidence != tt.confidence {
				t.Errorf("got %+v", p)
			}
			if len(p.Trees) != 3 {
				t.Errorf("got %d tree votes", len(p.Trees))
			}
		})
	}
}

func TestAgreementFor(t *testing.T) {
	tests := []struct {
		share float64
		want  Agreement
	}{
		{1, Unanimous},
		{2.0 / 3.0, StrongMajority},
		{0.5, SimpleMajority},
		{1.0 / 3.0, SimpleMajority},
		{0.25, NoClearConsensus},
	}
	for _, tt := range tests {
		if got := AgreementFor(tt.share); got != tt.want {
			t.Errorf("share %v: got %q, want %q", tt.share, got, tt.want)
		}
	}
}

func TestDynamicProfiles(t *testing.T) {
	ds := dataset.New([]dataset.LabeledSample{
		{Color: dataset.Color{Red: 200, Green: 60, Blue: 50}, Label: feature.Ripe},
		{Color: dataset.Color{Red: 180, Green: 70, Blue: 40}, Label: feature.Ripe},
		{Color: dataset.Color{Red: 80, Green: 90, Blue: 95}, Label: feature.Rotten},
		{Color: dataset.Color{Red: 85, Green: 92, Blue: 85}, Label: feature.Rotten},
	})
	ps := ProfilesFor(Dynamic, ds)
	if ps[0].RedThreshold != 190 || ps[1].RedThreshold != 200 || ps[2].RedThreshold != 180 {
		t.Errorf("unexpected red thresholds %+v", ps)
	}
	for _, p := range ps {
		if p.SpoilageBlue != 85 {
			t.Errorf("%s: spoilage blue %v, want 85", p.Name, p.SpoilageBlue)
		}
	}
	fixed := ProfilesFor(Dynamic, dataset.New(nil))
	if fixed[0] != FixedProfiles()[0] {
		t.Errorf("empty training should keep fixed profiles, got %+v", fixed)
	}
	if ProfilesFor(Fixed, ds)[0] != FixedProfiles()[0] {
		t.Error("fixed mode should ignore training data")
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": Fixed, "fixed": Fixed, "dynamic": Dynamic} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q): got %q, %v", in, got, err)
		}
	}
	if _, err := ParseMode("random"); err == nil {
		t.Error("expected error")
	}
}

func TestEmptyForest(t *testing.T) {
	if _, err := New(nil).Predict(dataset.Color{}); err == nil {
		t.Error("expected error")
	}
}
