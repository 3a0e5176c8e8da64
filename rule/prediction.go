package rule

import (
	"fmt"
	"strings"

	"github.com/pbanos/ripeness/feature"
)

// Source tells which rules produced a prediction
type Source string

const (
	// Configured rules come from the node store
	Configured Source = "dynamic"
	// Fallback rules are the built-in ones used when no condition node is active
	Fallback Source = "fallback"
)

/*
Step is one evaluated condition on the decision path of a prediction.
*/
type Step struct {
	Order     int               `json:"order"`
	Criterion feature.Criterion `json:"-"`
	Rule      string            `json:"rule"`
	Value     float64           `json:"value"`
	Satisfied bool              `json:"satisfied"`
	Outcome   string            `json:"outcome"`
}

/*
Prediction is the outcome of evaluating a rule set on a sample. It keeps the
decision path so callers can explain or audit it.
*/
type Prediction struct {
	Label feature.Label `json:"label"`
	Path  []Step        `json:"decisionPath"`
	// RulesUsed tells whether configured or fallback rules were used
	RulesUsed Source `json:"rulesUsed"`
	// FallbackReason is set when the configured rules could not reach a
	// classification and the default label was returned instead.
	FallbackReason string `json:"fallbackReason,omitempty"`
}

// Defaulted returns whether the prediction is the default label returned on a malformed rule set
func (p *Prediction) Defaulted() bool {
	return p.FallbackReason != ""
}

func (p *Prediction) String() string {
	steps := make([]string, 0, len(p.Path))
	for _, s := range p.Path {
		steps = append(steps, fmt.Sprintf("#%d %s (%.4g) %s", s.Order, s.Rule, s.Value, s.Outcome))
	}
	result := fmt.Sprintf("%s via %s rules [%s]", p.Label, p.RulesUsed, strings.Join(steps, "; "))
	if p.FallbackReason != "" {
		result = fmt.Sprintf("%s (%s)", result, p.FallbackReason)
	}
	return result
}
