package recommendation

import (
	"testing"

	"github.com/pbanos/ripeness/feature"
)

func TestDefaultBookCoversEveryLabel(t *testing.T) {
	b := DefaultBook()
	for _, l := range feature.Labels() {
		recs := b.Lookup(l)
		if len(recs) != len(Categories()) {
			t.Errorf("%s: got %d recommendations", l, len(recs))
		}
	}
	if err := b.Validate(); err != nil {
		t.Error(err)
	}
}

func TestLookupFallsBackToDefaults(t *testing.T) {
	b := Book{feature.Ripe: {Usage: "Make sambal."}}
	recs := b.Lookup(feature.Ripe)
	if recs[Usage] != "Make sambal." {
		t.Errorf("got usage %q", recs[Usage])
	}
	if recs[Storage] != DefaultBook()[feature.Ripe][Storage] {
		t.Errorf("got storage %q", recs[Storage])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		book Book
	}{
		{"unknown-label", Book{"hijau": {Usage: "x"}}},
		{"unknown-category", Book{feature.Ripe: {"price": "x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.book.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
