/*
Package rule implements the evaluation of decision trees configured as an
ordered list of condition and leaf nodes, as well as the stores those
nodes are read from.
*/
package rule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pbanos/ripeness/feature"
)

const (
	// DefaultMaxSteps is the maximum number of nodes visited by an evaluation
	DefaultMaxSteps = 10
	// DefaultLabel is returned when the configured rules cannot classify a sample
	DefaultLabel = feature.Unripe
)

/*
Engine evaluates rule sets on samples. The zero value is not usable, use
NewEngine.
*/
type Engine struct {
	// MaxSteps caps the number of nodes visited on an evaluation so
	// cycles on the configuration always terminate.
	MaxSteps int
	// Default is the label returned when the configured rules end on
	// a missing node or exceed MaxSteps.
	Default feature.Label
}

// NewEngine returns an Engine with DefaultMaxSteps and DefaultLabel
func NewEngine() *Engine {
	return &Engine{MaxSteps: DefaultMaxSteps, Default: DefaultLabel}
}

/*
arena holds the active nodes of a rule set sorted by order together with an
index from order to position, so jumps do not scan the node list.
*/
type arena struct {
	nodes []Node
	index map[int]int
}

func newArena(nodes []Node) *arena {
	a := &arena{index: make(map[int]int)}
	for _, n := range nodes {
		if n.Active {
			a.nodes = append(a.nodes, n)
		}
	}
	sort.SliceStable(a.nodes, func(i, j int) bool { return a.nodes[i].Order < a.nodes[j].Order })
	for i, n := range a.nodes {
		if _, ok := a.index[n.Order]; !ok {
			a.index[n.Order] = i
		}
	}
	return a
}

func (a *arena) hasConditions() bool {
	for _, n := range a.nodes {
		if n.Kind == Condition {
			return true
		}
	}
	return false
}

/*
Evaluate takes a sample and a rule set and returns the prediction of the
rule set for the sample.

Only active nodes are considered and the one with the lowest order is the
root. When no active condition node exists the built-in fallback rules are
evaluated instead. Evaluation ends on a classify branch or a leaf node; a
malformed visited node, a jump to a missing node or reaching MaxSteps
visited nodes ends it with the engine Default label and a FallbackReason on
the prediction. Only labels in feature.Labels() are ever returned.
*/
func (e *Engine) Evaluate(s feature.Sample, nodes []Node) *Prediction {
	a := newArena(nodes)
	if !a.hasConditions() {
		return evaluateFallback(s)
	}
	p := &Prediction{RulesUsed: Configured}
	current := 0
	for step := 0; ; step++ {
		if step >= e.MaxSteps {
			return e.defaulted(p, fmt.Sprintf("step limit of %d reached", e.MaxSteps))
		}
		n := a.nodes[current]
		if err := n.Validate(); err != nil {
			return e.defaulted(p, err.Error())
		}
		if n.Kind == Leaf {
			p.Path = append(p.Path, Step{Order: n.Order, Rule: "leaf", Outcome: ClassifyAs(n.Label).String()})
			p.Label = n.Label
			return p
		}
		v, ok := n.Criterion.SatisfiedBy(s)
		b := n.OnFalse
		if ok {
			b = n.OnTrue
		}
		p.Path = append(p.Path, Step{
			Order:     n.Order,
			Criterion: n.Criterion,
			Rule:      n.Criterion.String(),
			Value:     v,
			Satisfied: ok,
			Outcome:   b.String(),
		})
		if b.Action != Jump {
			p.Label = b.Label
			return p
		}
		next, found := a.index[b.Target]
		if !found {
			return e.defaulted(p, fmt.Sprintf("node #%d jumps to missing node #%d", n.Order, b.Target))
		}
		current = next
	}
}

func (e *Engine) defaulted(p *Prediction, reason string) *Prediction {
	p.Label = e.Default
	p.FallbackReason = reason
	return p
}

type fallbackRule struct {
	criteria []feature.Criterion
	label    feature.Label
}

var fallbackRules = []fallbackRule{
	{
		criteria: []feature.Criterion{
			{Field: feature.Blue, Operator: feature.GreaterThan, Threshold: 80},
			{Field: feature.Green, Operator: feature.GreaterThan, Threshold: 80},
			{Field: feature.Red, Operator: feature.LessThan, Threshold: 100},
		},
		label: feature.Rotten,
	},
	{
		criteria: []feature.Criterion{
			{Field: feature.RatioRedGreen, Operator: feature.GreaterThan, Threshold: 1.7},
			{Field: feature.Red, Operator: feature.GreaterThan, Threshold: 150},
		},
		label: feature.Ripe,
	},
	{
		criteria: []feature.Criterion{
			{Field: feature.RatioRedGreen, Operator: feature.GreaterThan, Threshold: 1.1},
			{Field: feature.Red, Operator: feature.GreaterThan, Threshold: 100},
		},
		label: feature.HalfRipe,
	},
}

/*
evaluateFallback applies the built-in rules in order, each a conjunction of
criteria evaluated until the first unsatisfied one, and classifies as
mentah when none holds.
*/
func evaluateFallback(s feature.Sample) *Prediction {
	p := &Prediction{RulesUsed: Fallback}
	for i, r := range fallbackRules {
		matched := true
		for _, c := range r.criteria {
			v, ok := c.SatisfiedBy(s)
			outcome := "continue"
			if !ok {
				outcome = "next rule"
			}
			p.Path = append(p.Path, Step{Order: i + 1, Criterion: c, Rule: c.String(), Value: v, Satisfied: ok, Outcome: outcome})
			if !ok {
				matched = false
				break
			}
		}
		if matched {
			p.Path[len(p.Path)-1].Outcome = ClassifyAs(r.label).String()
			p.Label = r.label
			return p
		}
	}
	p.Label = feature.Unripe
	return p
}

/*
Validate takes a rule set and returns a slice with the problems found on its
active nodes: malformed nodes, duplicated orders and jumps to missing nodes.
An empty slice means the rule set is well formed. Cycles are not reported as
evaluation is bounded anyway.
*/
func Validate(nodes []Node) []error {
	var errs []error
	seen := make(map[int]bool)
	for _, n := range nodes {
		if !n.Active {
			continue
		}
		if seen[n.Order] {
			errs = append(errs, fmt.Errorf("order #%d is used by more than one active node", n.Order))
		}
		seen[n.Order] = true
	}
	for _, n := range nodes {
		if !n.Active {
			continue
		}
		if err := n.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if n.Kind != Condition {
			continue
		}
		for _, b := range []Branch{n.OnTrue, n.OnFalse} {
			if b.Action == Jump && !seen[b.Target] {
				errs = append(errs, fmt.Errorf("node #%d jumps to missing node #%d", n.Order, b.Target))
			}
		}
	}
	return errs
}

/*
Render returns a human readable representation of the active nodes of a
rule set, one per line in evaluation order, or a note that the fallback
rules are in use.
*/
func Render(nodes []Node) string {
	a := newArena(nodes)
	if !a.hasConditions() {
		var lines []string
		lines = append(lines, "no active condition nodes, using fallback rules:")
		for i, r := range fallbackRules {
			conds := make([]string, 0, len(r.criteria))
			for _, c := range r.criteria {
				conds = append(conds, c.String())
			}
			lines = append(lines, fmt.Sprintf("  %d. if %s => %s", i+1, strings.Join(conds, " and "), r.label))
		}
		lines = append(lines, fmt.Sprintf("  %d. else => %s", len(fallbackRules)+1, feature.Unripe))
		return strings.Join(lines, "\n") + "\n"
	}
	var result string
	for i := range a.nodes {
		result = fmt.Sprintf("%s%v\n", result, &a.nodes[i])
	}
	return result
}
