/*
Package ripeness classifies tomatoes by ripeness from RGB color readings,
combining a configurable rule engine, a nearest neighbor classifier and a
forest of threshold trees with a majority vote.
*/
package ripeness

import (
	"context"
	"fmt"

	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/ensemble"
	"github.com/pbanos/ripeness/feature"
	"github.com/pbanos/ripeness/forest"
	"github.com/pbanos/ripeness/knn"
	"github.com/pbanos/ripeness/recommendation"
	"github.com/pbanos/ripeness/rule"
)

/*
Classifier runs a full classification of a color reading. Rules and Data
are optional: without rules the built-in fallback rules are used and
without training data the KNN classifier uses its seed samples.
*/
type Classifier struct {
	Rules           rule.NodeStore
	Data            dataset.Source
	Engine          *rule.Engine
	K               int
	Forest          forest.Mode
	Recommendations recommendation.Book
}

/*
Result is the outcome of a classification: the final label with the
ensemble confidence and consensus, the prediction of every classifier and
the recommendations for the final label.
*/
type Result struct {
	Color           dataset.Color                      `json:"color"`
	Label           feature.Label                      `json:"label"`
	Confidence      float64                            `json:"confidence"`
	Consensus       ensemble.Consensus                 `json:"consensus"`
	Rule            *rule.Prediction                   `json:"decisionTree"`
	KNN             *knn.Prediction                    `json:"knn"`
	Forest          *forest.Prediction                 `json:"randomForest"`
	Ensemble        *ensemble.Prediction               `json:"ensemble"`
	Recommendations map[recommendation.Category]string `json:"recommendations"`
}

// New returns a Classifier with the given rule store and data source
func New(rules rule.NodeStore, data dataset.Source) *Classifier {
	return &Classifier{
		Rules:           rules,
		Data:            data,
		Engine:          rule.NewEngine(),
		K:               knn.DefaultK,
		Forest:          forest.Fixed,
		Recommendations: recommendation.DefaultBook(),
	}
}

/*
Classify takes a context and a color and returns the classification result
for it. The rule set and the training data are read once at the start, so
changes on them while classifying are not seen. It returns an error if
they cannot be read or a classifier fails.
*/
func (c *Classifier) Classify(ctx context.Context, col dataset.Color) (*Result, error) {
	var nodes []rule.Node
	if c.Rules != nil {
		var err error
		nodes, err = c.Rules.ActiveNodes(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading rules: %v", err)
		}
	}
	training, err := dataset.Collect(ctx, c.Data)
	if err != nil {
		return nil, err
	}
	engine := c.Engine
	if engine == nil {
		engine = rule.NewEngine()
	}
	rp := engine.Evaluate(col, nodes)
	kc := knn.New(training.Samples())
	if c.K > 0 {
		kc.K = c.K
	}
	kp, err := kc.Predict(col)
	if err != nil {
		return nil, err
	}
	fp, err := forest.New(forest.ProfilesFor(c.Forest, training)).Predict(col)
	if err != nil {
		return nil, err
	}
	ep := ensemble.Vote(rp.Label, kp.Label, fp.Label)
	book := c.Recommendations
	if book == nil {
		book = recommendation.DefaultBook()
	}
	return &Result{
		Color:           col,
		Label:           ep.Label,
		Confidence:      ep.Confidence,
		Consensus:       ep.Consensus,
		Rule:            rp,
		KNN:             kp,
		Forest:          fp,
		Ensemble:        ep,
		Recommendations: book.Lookup(ep.Label),
	}, nil
}
