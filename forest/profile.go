package forest

import (
	"fmt"

	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/feature"
)

/*
Profile holds the thresholds of one tree of the forest
*/
type Profile struct {
	Name           string  `json:"name" yaml:"name"`
	RedThreshold   float64 `json:"redThreshold" yaml:"red_threshold"`
	RatioThreshold float64 `json:"ratioThreshold" yaml:"ratio_threshold"`
	// SpoilageBlue is the blue level over which a greenish-blue
	// dull reading is considered spoiled.
	SpoilageBlue float64 `json:"spoilageBlue" yaml:"spoilage_blue"`
}

const (
	// DefaultSpoilageBlue is the fixed spoilage blue level
	DefaultSpoilageBlue = 80
	conservativeMargin  = 10
)

// Mode selects where the forest takes its thresholds from
type Mode string

const (
	// Fixed uses the FixedProfiles table
	Fixed Mode = "fixed"
	// Dynamic derives thresholds from training data with DynamicProfiles
	Dynamic Mode = "dynamic"
)

/*
ParseMode takes a string and returns the Mode it names or an error.
The empty string is Fixed.
*/
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", Fixed:
		return Fixed, nil
	case Dynamic:
		return Dynamic, nil
	}
	return "", fmt.Errorf("unknown forest mode %q", s)
}

/*
FixedProfiles returns the standard, conservative and liberal profiles
*/
func FixedProfiles() []Profile {
	return []Profile{
		{Name: "standard", RedThreshold: 150, RatioThreshold: 1.5, SpoilageBlue: DefaultSpoilageBlue},
		{Name: "conservative", RedThreshold: 160, RatioThreshold: 1.7, SpoilageBlue: DefaultSpoilageBlue},
		{Name: "liberal", RedThreshold: 140, RatioThreshold: 1.3, SpoilageBlue: DefaultSpoilageBlue},
	}
}

/*
DynamicProfiles takes per-class statistics of a training set and returns
three profiles with thresholds derived from them:
  * the red thresholds come from the matang samples: their average red for
  the standard tree, the average plus conservativeMargin for the
  conservative one and their minimum red for the liberal one
  * the spoilage blue level is the minimum blue of the busuk samples
Ratio thresholds keep the fixed table values. Thresholds without samples to
derive them from keep their fixed values too.
*/
func DynamicProfiles(stats map[feature.Label]dataset.ClassStats) []Profile {
	profiles := FixedProfiles()
	if ripe, ok := stats[feature.Ripe]; ok && ripe.Count > 0 {
		profiles[0].RedThreshold = ripe.AvgRed
		profiles[1].RedThreshold = ripe.AvgRed + conservativeMargin
		profiles[2].RedThreshold = ripe.MinRed
	}
	if rotten, ok := stats[feature.Rotten]; ok && rotten.Count > 0 {
		for i := range profiles {
			profiles[i].SpoilageBlue = rotten.MinBlue
		}
	}
	return profiles
}

/*
ProfilesFor takes a mode and a training dataset and returns the profiles
the forest should use.
*/
func ProfilesFor(m Mode, training dataset.Dataset) []Profile {
	if m == Dynamic && training != nil {
		return DynamicProfiles(training.ClassStats())
	}
	return FixedProfiles()
}
