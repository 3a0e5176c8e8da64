/*
Package knn implements a k-nearest-neighbors classifier of color readings
under euclidean distance in RGB space.
*/
package knn

import (
	"fmt"
	"math"
	"sort"

	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/feature"
)

// DefaultK is the number of neighbors taking part in a vote
const DefaultK = 3

/*
Classifier predicts the label of a color with a majority vote among the K
training samples closest to it.
*/
type Classifier struct {
	K        int
	training []dataset.LabeledSample
	usedSeed bool
}

/*
Neighbor is a training sample taking part in a vote
*/
type Neighbor struct {
	dataset.Color
	Label    feature.Label `json:"label"`
	Distance float64       `json:"distance"`
}

/*
Prediction is the outcome of a KNN vote. Confidence is the percentage of the
K votes obtained by the winning label.
*/
type Prediction struct {
	Label      feature.Label         `json:"label"`
	Confidence float64               `json:"confidence"`
	Neighbors  []Neighbor            `json:"neighbors"`
	Votes      map[feature.Label]int `json:"votes"`
	UsedSeed   bool                  `json:"usedSeed"`
}

/*
New takes a slice of labeled samples and returns a Classifier with DefaultK
that uses them as training data. When the slice is empty the classifier
uses the built-in seed samples instead.
*/
func New(training []dataset.LabeledSample) *Classifier {
	c := &Classifier{K: DefaultK, training: training}
	if len(training) == 0 {
		c.training = SeedSamples()
		c.usedSeed = true
	}
	return c
}

// UsesSeed returns whether the classifier fell back to the seed samples
func (c *Classifier) UsesSeed() bool {
	return c.usedSeed
}

/*
Distance returns the euclidean distance between two colors in RGB space
*/
func Distance(a, b dataset.Color) float64 {
	dr := float64(a.Red - b.Red)
	dg := float64(a.Green - b.Green)
	db := float64(a.Blue - b.Blue)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

/*
Predict takes a color and returns the prediction of the classifier for it.
Training samples are sorted by distance keeping the training order among
equidistant ones, the K closest vote and ties between labels are resolved
with feature.BreakTie. Confidence is votes for the winner divided by K, as
a percentage, even when fewer than K training samples exist.
*/
func (c *Classifier) Predict(q dataset.Color) (*Prediction, error) {
	if c.K < 1 {
		return nil, fmt.Errorf("knn: invalid K %d", c.K)
	}
	neighbors := make([]Neighbor, 0, len(c.training))
	for _, s := range c.training {
		neighbors = append(neighbors, Neighbor{Color: s.Color, Label: s.Label, Distance: Distance(q, s.Color)})
	}
	sort.SliceStable(neighbors, func(i, j int) bool { return neighbors[i].Distance < neighbors[j].Distance })
	if len(neighbors) > c.K {
		neighbors = neighbors[:c.K]
	}
	votes := make(map[feature.Label]int)
	for _, n := range neighbors {
		votes[n.Label]++
	}
	label, count := feature.Winner(votes)
	return &Prediction{
		Label:      label,
		Confidence: round2(float64(count) / float64(c.K) * 100),
		Neighbors:  neighbors,
		Votes:      votes,
		UsedSeed:   c.usedSeed,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
