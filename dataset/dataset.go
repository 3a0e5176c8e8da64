/*
Package dataset provides the color readings the classifiers work on: single
RGB samples, labeled samples and read-only collections of them that can be
shuffled and split into cross-validation folds.
*/
package dataset

import (
	"fmt"
	"math/rand"

	"github.com/pbanos/ripeness/feature"
)

/*
Dataset represents a read-only collection of labeled samples.

Its Samples method returns the samples it contains. Callers must not modify
the returned slice.

Its Count method returns the number of samples.

Its CountLabels method returns the number of samples for each label.

Its Shuffle method returns a new dataset with the same samples in an order
determined by the given random source.

Its Folds method splits the dataset into k contiguous folds.

Its ClassStats method returns per-label statistics of the red and blue
channels.
*/
type Dataset interface {
	Samples() []LabeledSample
	Count() int
	CountLabels() map[feature.Label]int
	Shuffle(*rand.Rand) Dataset
	Folds(k int) ([]Fold, error)
	ClassStats() map[feature.Label]ClassStats
}

/*
Fold is a train/test split of a dataset for cross-validation
*/
type Fold struct {
	Index int
	Train Dataset
	Test  Dataset
}

/*
ClassStats holds the statistics of the samples of a class used to derive
thresholds from training data.
*/
type ClassStats struct {
	Count   int
	MinRed  float64
	AvgRed  float64
	MinBlue float64
	AvgBlue float64
}

type memoryDataset struct {
	samples []LabeledSample
}

/*
New takes a slice of labeled samples and returns a dataset built with them.
The slice is copied.
*/
func New(samples []LabeledSample) Dataset {
	return &memoryDataset{append([]LabeledSample(nil), samples...)}
}

func (ds *memoryDataset) Samples() []LabeledSample {
	return ds.samples
}

func (ds *memoryDataset) Count() int {
	return len(ds.samples)
}

func (ds *memoryDataset) CountLabels() map[feature.Label]int {
	result := make(map[feature.Label]int)
	for _, s := range ds.samples {
		result[s.Label]++
	}
	return result
}

func (ds *memoryDataset) Shuffle(r *rand.Rand) Dataset {
	samples := append([]LabeledSample(nil), ds.samples...)
	r.Shuffle(len(samples), func(i, j int) {
		samples[i], samples[j] = samples[j], samples[i]
	})
	return &memoryDataset{samples}
}

/*
Folds takes a number of folds k and splits the dataset in k contiguous
slices of near-equal size: every fold gets n/k samples and the first n%k
folds one more. For each slice it returns a Fold that uses the slice as test
set and the union of the rest as training set. It returns an error if k is
lower than 2 or greater than the number of samples.
*/
func (ds *memoryDataset) Folds(k int) ([]Fold, error) {
	n := len(ds.samples)
	if k < 2 {
		return nil, fmt.Errorf("splitting %d samples in %d folds: at least 2 folds are needed", n, k)
	}
	if k > n {
		return nil, fmt.Errorf("splitting %d samples in %d folds: not enough samples", n, k)
	}
	folds := make([]Fold, 0, k)
	start := 0
	for i := 0; i < k; i++ {
		size := n / k
		if i < n%k {
			size++
		}
		end := start + size
		train := make([]LabeledSample, 0, n-size)
		train = append(train, ds.samples[:start]...)
		train = append(train, ds.samples[end:]...)
		folds = append(folds, Fold{
			Index: i,
			Train: &memoryDataset{train},
			Test:  &memoryDataset{ds.samples[start:end:end]},
		})
		start = end
	}
	return folds, nil
}

func (ds *memoryDataset) ClassStats() map[feature.Label]ClassStats {
	result := make(map[feature.Label]ClassStats)
	for _, s := range ds.samples {
		cs, ok := result[s.Label]
		r, b := float64(s.Red), float64(s.Blue)
		if !ok || r < cs.MinRed {
			cs.MinRed = r
		}
		if !ok || b < cs.MinBlue {
			cs.MinBlue = b
		}
		cs.AvgRed += r
		cs.AvgBlue += b
		cs.Count++
		result[s.Label] = cs
	}
	for l, cs := range result {
		cs.AvgRed /= float64(cs.Count)
		cs.AvgBlue /= float64(cs.Count)
		result[l] = cs
	}
	return result
}

func (ds *memoryDataset) String() string {
	return fmt.Sprintf("[ %v ]", len(ds.samples))
}
