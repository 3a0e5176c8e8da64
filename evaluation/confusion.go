package evaluation

import (
	"fmt"
	"math"

	"github.com/pbanos/ripeness/feature"
)

/*
ConfusionMatrix counts predictions per actual label (rows) and predicted
label (columns), both in the order of Labels.
*/
type ConfusionMatrix struct {
	Labels []feature.Label `json:"labels"`
	Counts [][]int         `json:"matrix"`
}

// NewConfusionMatrix returns an empty matrix over feature.Labels()
func NewConfusionMatrix() *ConfusionMatrix {
	labels := feature.Labels()
	counts := make([][]int, len(labels))
	for i := range counts {
		counts[i] = make([]int, len(labels))
	}
	return &ConfusionMatrix{Labels: labels, Counts: counts}
}

/*
Add takes the actual and predicted labels of a sample and counts it. It
returns an error if any of the labels is not a ripeness label.
*/
func (cm *ConfusionMatrix) Add(actual, predicted feature.Label) error {
	a, p := actual.Index(), predicted.Index()
	if a < 0 {
		return fmt.Errorf("%v %q as actual label", feature.ErrUnknownLabel, actual)
	}
	if p < 0 {
		return fmt.Errorf("%v %q as predicted label", feature.ErrUnknownLabel, predicted)
	}
	cm.Counts[a][p]++
	return nil
}

// Merge adds the counts of other to the matrix
func (cm *ConfusionMatrix) Merge(other *ConfusionMatrix) {
	for i := range cm.Counts {
		for j := range cm.Counts[i] {
			cm.Counts[i][j] += other.Counts[i][j]
		}
	}
}

// Count returns the number of samples of actual label predicted as predicted
func (cm *ConfusionMatrix) Count(actual, predicted feature.Label) int {
	a, p := actual.Index(), predicted.Index()
	if a < 0 || p < 0 {
		return 0
	}
	return cm.Counts[a][p]
}

// RowSum returns the number of samples with the actual label
func (cm *ConfusionMatrix) RowSum(actual feature.Label) int {
	a := actual.Index()
	if a < 0 {
		return 0
	}
	var sum int
	for _, c := range cm.Counts[a] {
		sum += c
	}
	return sum
}

// ColumnSum returns the number of samples predicted as the label
func (cm *ConfusionMatrix) ColumnSum(predicted feature.Label) int {
	p := predicted.Index()
	if p < 0 {
		return 0
	}
	var sum int
	for _, row := range cm.Counts {
		sum += row[p]
	}
	return sum
}

// Total returns the number of samples counted
func (cm *ConfusionMatrix) Total() int {
	var sum int
	for _, l := range cm.Labels {
		sum += cm.RowSum(l)
	}
	return sum
}

// Correct returns the number of samples on the diagonal
func (cm *ConfusionMatrix) Correct() int {
	var sum int
	for i := range cm.Counts {
		sum += cm.Counts[i][i]
	}
	return sum
}

/*
ClassMetrics are the precision, recall and F1 score of a label, as
percentages rounded to 2 decimals.
*/
type ClassMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

/*
Metrics takes a confusion matrix and returns the metrics of every label.
Precision is TP over the column sum, recall TP over the row sum and F1 their
harmonic mean. Any of them is 0 when its denominator is 0.
*/
func Metrics(cm *ConfusionMatrix) map[feature.Label]ClassMetrics {
	result := make(map[feature.Label]ClassMetrics, len(cm.Labels))
	for _, l := range cm.Labels {
		tp := float64(cm.Count(l, l))
		precision := ratio(tp, float64(cm.ColumnSum(l)))
		recall := ratio(tp, float64(cm.RowSum(l)))
		result[l] = ClassMetrics{
			Precision: round2(precision * 100),
			Recall:    round2(recall * 100),
			F1:        round2(ratio(2*precision*recall, precision+recall) * 100),
		}
	}
	return result
}

func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
