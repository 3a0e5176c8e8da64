package evaluation

import (
	"context"

	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/ensemble"
	"github.com/pbanos/ripeness/feature"
	"github.com/pbanos/ripeness/forest"
	"github.com/pbanos/ripeness/knn"
	"github.com/pbanos/ripeness/rule"
)

// Algorithm names
const (
	DecisionTree = ensemble.RuleVoter
	KNN          = ensemble.KNNVoter
	RandomForest = ensemble.ForestVoter
	Ensemble     = "ensemble"
)

/*
Predictor is a fitted model.

Its Predict method takes a context and a color and returns the label
predicted for it or an error.
*/
type Predictor interface {
	Predict(context.Context, dataset.Color) (feature.Label, error)
}

// PredictorFunc adapts a function to the Predictor interface
type PredictorFunc func(context.Context, dataset.Color) (feature.Label, error)

// Predict calls f
func (f PredictorFunc) Predict(ctx context.Context, c dataset.Color) (feature.Label, error) {
	return f(ctx, c)
}

/*
Model is an algorithm that can be evaluated.

Its Name method returns the algorithm name, used to look up default
accuracies, cache entries and history records.

Its Fit method takes a training dataset and returns a Predictor trained on
it or an error.
*/
type Model interface {
	Name() string
	Fit(ctx context.Context, train dataset.Dataset) (Predictor, error)
}

/*
RuleModel evaluates a snapshot of the configured rule set. Its predictions
do not depend on the training data.
*/
type RuleModel struct {
	Engine *rule.Engine
	Nodes  []rule.Node
}

// Name returns DecisionTree
func (m *RuleModel) Name() string {
	return DecisionTree
}

// Fit returns a Predictor evaluating the rule set snapshot
func (m *RuleModel) Fit(ctx context.Context, train dataset.Dataset) (Predictor, error) {
	e := m.Engine
	if e == nil {
		e = rule.NewEngine()
	}
	return PredictorFunc(func(ctx context.Context, c dataset.Color) (feature.Label, error) {
		return e.Evaluate(c, m.Nodes).Label, nil
	}), nil
}

/*
KNNModel is the nearest neighbor classifier with K neighbors, knn.DefaultK
if K is not positive.
*/
type KNNModel struct {
	K int
}

// Name returns KNN
func (m *KNNModel) Name() string {
	return KNN
}

// Fit returns a KNN classifier using the training samples
func (m *KNNModel) Fit(ctx context.Context, train dataset.Dataset) (Predictor, error) {
	c := knn.New(train.Samples())
	if m.K > 0 {
		c.K = m.K
	}
	return PredictorFunc(func(ctx context.Context, col dataset.Color) (feature.Label, error) {
		p, err := c.Predict(col)
		if err != nil {
			return "", err
		}
		return p.Label, nil
	}), nil
}

/*
ForestModel is the forest classifier with profiles selected by Mode
*/
type ForestModel struct {
	Mode forest.Mode
}

// Name returns RandomForest
func (m *ForestModel) Name() string {
	return RandomForest
}

// Fit returns a forest with profiles for the mode and training data
func (m *ForestModel) Fit(ctx context.Context, train dataset.Dataset) (Predictor, error) {
	f := forest.New(forest.ProfilesFor(m.Mode, train))
	return PredictorFunc(func(ctx context.Context, c dataset.Color) (feature.Label, error) {
		p, err := f.Predict(c)
		if err != nil {
			return "", err
		}
		return p.Label, nil
	}), nil
}

/*
EnsembleModel fits the rule, KNN and forest models and combines their
predictions with ensemble.Vote.
*/
type EnsembleModel struct {
	Rule   Model
	KNN    Model
	Forest Model
}

// Name returns Ensemble
func (m *EnsembleModel) Name() string {
	return Ensemble
}

// Fit fits the three voters on the training data
func (m *EnsembleModel) Fit(ctx context.Context, train dataset.Dataset) (Predictor, error) {
	var voters [3]Predictor
	for i, vm := range []Model{m.Rule, m.KNN, m.Forest} {
		p, err := vm.Fit(ctx, train)
		if err != nil {
			return nil, err
		}
		voters[i] = p
	}
	return PredictorFunc(func(ctx context.Context, c dataset.Color) (feature.Label, error) {
		var labels [3]feature.Label
		for i, v := range voters {
			l, err := v.Predict(ctx, c)
			if err != nil {
				return "", err
			}
			labels[i] = l
		}
		return ensemble.Vote(labels[0], labels[1], labels[2]).Label, nil
	}), nil
}

/*
DefaultModels takes a rule set snapshot and a forest mode and returns the
four models in the order they are reported: decision_tree, knn,
random_forest and ensemble.
*/
func DefaultModels(nodes []rule.Node, mode forest.Mode) []Model {
	rm := &RuleModel{Engine: rule.NewEngine(), Nodes: nodes}
	km := &KNNModel{K: knn.DefaultK}
	fm := &ForestModel{Mode: mode}
	return []Model{rm, km, fm, &EnsembleModel{Rule: rm, KNN: km, Forest: fm}}
}
