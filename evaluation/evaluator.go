/*
Package evaluation measures the accuracy of the ripeness classifiers with
k-fold cross-validation over the available labeled data, and caches and
records the results.
*/
package evaluation

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/feature"
	"github.com/pbanos/ripeness/queue"
	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultFolds is the number of cross-validation folds
	DefaultFolds = 5
	// DefaultMinSamples is the minimum number of samples to cross-validate
	DefaultMinSamples = 10
)

/*
DefaultAccuracies holds the accuracy reported for every algorithm when
there is not enough data to cross-validate it.
*/
var DefaultAccuracies = map[string]float64{
	DecisionTree: 85.0,
	KNN:          82.0,
	RandomForest: 88.0,
	Ensemble:     92.0,
}

/*
Result is the outcome of evaluating an algorithm.

When Insufficient is set there were fewer samples than needed and Accuracy
holds the default accuracy of the algorithm instead of a measured one.
*/
type Result struct {
	Algorithm       string                         `json:"algorithm"`
	Accuracy        float64                        `json:"accuracy"`
	FoldAccuracies  []float64                      `json:"foldAccuracies,omitempty"`
	ConfusionMatrix *ConfusionMatrix               `json:"confusionMatrix"`
	Metrics         map[feature.Label]ClassMetrics `json:"metrics,omitempty"`
	SampleCount     int                            `json:"sampleCount"`
	Insufficient    bool                           `json:"insufficientData"`
	CalculatedAt    time.Time                      `json:"calculatedAt"`
	Cached          bool                           `json:"cached"`
}

/*
Outcome is the result of an algorithm on EvaluateAll, or the error that
prevented evaluating it.
*/
type Outcome struct {
	Result *Result
	Err    error
}

/*
Evaluator cross-validates models. The zero value is not usable, use
NewEvaluator.
*/
type Evaluator struct {
	// Folds is the number of cross-validation folds
	Folds int
	// MinSamples is the minimum dataset size to cross-validate, smaller
	// datasets get the default accuracy
	MinSamples int
	// Rand is the source used to shuffle datasets before splitting them.
	// It must not be shared with concurrent users.
	Rand *rand.Rand
	// Workers is the number of folds evaluated concurrently
	Workers int
	// Now returns the calculation time set on results
	Now func() time.Time
}

/*
NewEvaluator takes a random source and returns an Evaluator with
DefaultFolds, DefaultMinSamples and a single worker. A nil source is
replaced by one seeded with the current time.
*/
func NewEvaluator(r *rand.Rand) *Evaluator {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Evaluator{
		Folds:      DefaultFolds,
		MinSamples: DefaultMinSamples,
		Rand:       r,
		Workers:    1,
		Now:        time.Now,
	}
}

// DefaultAccuracy returns the default accuracy of the algorithm or 0 if it has none
func DefaultAccuracy(algorithm string) float64 {
	return DefaultAccuracies[algorithm]
}

type foldResult struct {
	matrix   *ConfusionMatrix
	accuracy float64
}

/*
Evaluate takes a context, a model and a dataset and returns the
cross-validation result of the model on the dataset.

The dataset is shuffled with the Evaluator Rand and split into Folds
folds. For every fold the model is fitted on the training part and asked
to predict every test sample. The accuracy is the mean of the fold
accuracies and the confusion matrix accumulates all folds. Folds are
pulled from a queue by Workers concurrent workers.

An error is returned if a fold cannot be fitted or predicted, including a
panic on the model, or if the context is cancelled.
*/
func (e *Evaluator) Evaluate(ctx context.Context, m Model, data dataset.Dataset) (*Result, error) {
	n := data.Count()
	result := &Result{
		Algorithm:       m.Name(),
		ConfusionMatrix: NewConfusionMatrix(),
		SampleCount:     n,
		CalculatedAt:    e.Now(),
	}
	if n < e.MinSamples {
		result.Accuracy = DefaultAccuracy(m.Name())
		result.Insufficient = true
		return result, nil
	}
	folds, err := data.Shuffle(e.Rand).Folds(e.Folds)
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %v", m.Name(), err)
	}
	foldResults, err := e.runFolds(ctx, m, folds)
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %v", m.Name(), err)
	}
	accuracies := make([]float64, 0, len(foldResults))
	for _, fr := range foldResults {
		result.ConfusionMatrix.Merge(fr.matrix)
		accuracies = append(accuracies, fr.accuracy)
	}
	result.FoldAccuracies = accuracies
	result.Accuracy = round2(stat.Mean(accuracies, nil))
	result.Metrics = Metrics(result.ConfusionMatrix)
	return result, nil
}

func (e *Evaluator) runFolds(ctx context.Context, m Model, folds []dataset.Fold) ([]foldResult, error) {
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	q := queue.New()
	for _, f := range folds {
		err := q.Push(wctx, &queue.Task{Algorithm: m.Name(), Fold: f})
		if err != nil {
			return nil, err
		}
	}
	workers := e.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(folds) {
		workers = len(folds)
	}
	results := make([]foldResult, len(folds))
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := work(wctx, q, m, results)
			if err != nil {
				errs <- err
				cancel()
			}
		}()
	}
	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

/*
work pulls fold tasks from the queue until it is empty, storing the result
of every fold on its index of results. All tasks are pushed before workers
start, so an empty pull means there is nothing left to do.
*/
func work(ctx context.Context, q queue.Queue, m Model, results []foldResult) error {
	for {
		task, err := q.Pull(ctx)
		if err != nil {
			return err
		}
		if task == nil {
			return nil
		}
		fr, err := evaluateFold(ctx, m, task.Fold)
		if err != nil {
			return fmt.Errorf("fold %d: %v", task.Fold.Index, err)
		}
		results[task.Fold.Index] = *fr
		err = q.Complete(ctx, task.ID())
		if err != nil {
			return err
		}
	}
}

func evaluateFold(ctx context.Context, m Model, f dataset.Fold) (fr *foldResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			fr, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	p, err := m.Fit(ctx, f.Train)
	if err != nil {
		return nil, fmt.Errorf("fitting: %v", err)
	}
	fr = &foldResult{matrix: NewConfusionMatrix()}
	for _, s := range f.Test.Samples() {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		l, err := p.Predict(ctx, s.Color)
		if err != nil {
			return nil, fmt.Errorf("predicting %v: %v", s.Color, err)
		}
		err = fr.matrix.Add(s.Label, l)
		if err != nil {
			return nil, err
		}
	}
	if total := fr.matrix.Total(); total > 0 {
		fr.accuracy = float64(fr.matrix.Correct()) / float64(total) * 100
	}
	return fr, nil
}

/*
EvaluateAll takes a context, a slice of models and a dataset and evaluates
every model on the dataset. The failure of a model, even a panic, does not
prevent the evaluation of the rest: it is reported as the Err of its
Outcome.
*/
func (e *Evaluator) EvaluateAll(ctx context.Context, models []Model, data dataset.Dataset) map[string]*Outcome {
	result := make(map[string]*Outcome, len(models))
	for _, m := range models {
		r, err := e.safeEvaluate(ctx, m, data)
		result[m.Name()] = &Outcome{r, err}
	}
	return result
}

func (e *Evaluator) safeEvaluate(ctx context.Context, m Model, data dataset.Dataset) (r *Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("evaluating %s: panic: %v", m.Name(), p)
		}
	}()
	return e.Evaluate(ctx, m, data)
}
