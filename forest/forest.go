/*
Package forest implements a small ensemble of rule-based trees that share
the same shape but use different thresholds, combined by majority vote.
*/
package forest

import (
	"fmt"
	"math"

	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/feature"
)

// Agreement describes how strongly the trees of the forest agree
type Agreement string

const (
	// Unanimous means every tree voted the winning label
	Unanimous Agreement = "Unanimous"
	// StrongMajority means at least 67% of the trees voted the winning label
	StrongMajority Agreement = "Strong Majority"
	// SimpleMajority means at least 34% of the trees voted the winning label
	SimpleMajority Agreement = "Simple Majority"
	// NoClearConsensus means less than 34% of the trees voted the winning label
	NoClearConsensus Agreement = "No Clear Consensus"
)

// ConfidenceFactor caps the confidence of the forest below that of a single tree
const ConfidenceFactor = 0.8

/*
Classifier is a forest of rule-based trees, one per profile
*/
type Classifier struct {
	Profiles []Profile
}

/*
TreeVote is the label voted by one tree of the forest
*/
type TreeVote struct {
	Tree  string        `json:"tree"`
	Label feature.Label `json:"label"`
}

/*
Prediction is the outcome of the forest vote. Confidence is a percentage:
the share of trees voting the winner scaled by ConfidenceFactor.
*/
type Prediction struct {
	Label      feature.Label `json:"label"`
	Confidence float64       `json:"confidence"`
	Trees      []TreeVote    `json:"trees"`
	Agreement  Agreement     `json:"agreement"`
}

// New returns a Classifier with the given profiles
func New(profiles []Profile) *Classifier {
	return &Classifier{Profiles: profiles}
}

// NewFixed returns a Classifier with the fixed profiles
func NewFixed() *Classifier {
	return New(FixedProfiles())
}

/*
Classify takes a profile and a color and returns the label the tree with
that profile assigns to the color. The tree applies in order:
  * blue > SpoilageBlue and green > 80 and red < 100 => busuk
  * red/green > RatioThreshold and red > RedThreshold => matang
  * red/green > 1.1 and red > 100 => setengah_matang
  * mentah otherwise
*/
func Classify(p Profile, c dataset.Color) feature.Label {
	r, g, b := float64(c.Red), float64(c.Green), float64(c.Blue)
	ratio := c.RedToGreen()
	switch {
	case b > p.SpoilageBlue && g > 80 && r < 100:
		return feature.Rotten
	case ratio > p.RatioThreshold && r > p.RedThreshold:
		return feature.Ripe
	case ratio > 1.1 && r > 100:
		return feature.HalfRipe
	}
	return feature.Unripe
}

/*
Predict takes a color and returns the forest prediction for it: every tree
votes and the label with most votes wins, ties resolved with
feature.BreakTie.
*/
func (f *Classifier) Predict(c dataset.Color) (*Prediction, error) {
	if len(f.Profiles) == 0 {
		return nil, fmt.Errorf("forest: no trees to vote")
	}
	votes := make(map[feature.Label]int)
	trees := make([]TreeVote, 0, len(f.Profiles))
	for _, p := range f.Profiles {
		l := Classify(p, c)
		votes[l]++
		trees = append(trees, TreeVote{p.Name, l})
	}
	label, count := feature.Winner(votes)
	share := float64(count) / float64(len(f.Profiles))
	return &Prediction{
		Label:      label,
		Confidence: math.Round(share*ConfidenceFactor*100*100) / 100,
		Trees:      trees,
		Agreement:  AgreementFor(share),
	}, nil
}

/*
AgreementFor takes the share of trees voting the winner, in [0,1], and
returns the agreement level. The share is compared as a whole percentage,
so two trees out of three (66.67%) count as 67%.
*/
func AgreementFor(share float64) Agreement {
	pct := math.Round(share * 100)
	switch {
	case pct >= 100:
		return Unanimous
	case pct >= 67:
		return StrongMajority
	case pct >= 34:
		return SimpleMajority
	}
	return NoClearConsensus
}
