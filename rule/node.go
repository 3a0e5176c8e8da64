package rule

import (
	"fmt"

	"github.com/pbanos/ripeness/feature"
)

// Kind tells condition nodes from leaf nodes
type Kind string

const (
	// Condition nodes evaluate a criterion and follow one of two branches
	Condition Kind = "condition"
	// Leaf nodes classify every sample reaching them
	Leaf Kind = "leaf"
)

// Action tells what a branch does when followed
type Action string

const (
	// Classify ends the evaluation with the branch label
	Classify Action = "classify"
	// Jump continues the evaluation on the node with the branch target order
	Jump Action = "jump"
)

/*
Branch is an outcome of a condition node: either classify as Label or jump
to the node with order Target.
*/
type Branch struct {
	Action Action        `json:"action" yaml:"action"`
	Label  feature.Label `json:"label,omitempty" yaml:"label,omitempty"`
	Target int           `json:"target,omitempty" yaml:"target,omitempty"`
}

/*
Node is a node of a configured decision tree
*/
type Node struct {
	// The evaluation sequence index of the node. Among active nodes
	// it must be unique. The node with the lowest order is the root.
	Order int
	// Whether the node is a condition or a leaf
	Kind Kind
	// The constraint a condition node evaluates on the sample
	Criterion feature.Criterion
	// The branch followed when the criterion is satisfied
	OnTrue Branch
	// The branch followed when the criterion is not satisfied
	OnFalse Branch
	// The classification of a leaf node
	Label feature.Label
	// Inactive nodes are ignored by the engine
	Active bool
}

// ClassifyAs returns a branch classifying as the given label
func ClassifyAs(l feature.Label) Branch {
	return Branch{Action: Classify, Label: l}
}

// JumpTo returns a branch jumping to the node with the given order
func JumpTo(order int) Branch {
	return Branch{Action: Jump, Target: order}
}

func (b Branch) String() string {
	if b.Action == Jump {
		return fmt.Sprintf("-> #%d", b.Target)
	}
	return fmt.Sprintf("=> %s", b.Label)
}

/*
Validate returns an error describing the first problem found on the node
definition, or nil if it is well formed.
*/
func (n *Node) Validate() error {
	switch n.Kind {
	case Leaf:
		if !n.Label.Valid() {
			return fmt.Errorf("leaf node #%d: invalid label %q", n.Order, n.Label)
		}
	case Condition:
		if _, err := feature.ParseField(string(n.Criterion.Field)); err != nil {
			return fmt.Errorf("condition node #%d: %v", n.Order, err)
		}
		if _, err := feature.ParseOperator(string(n.Criterion.Operator)); err != nil {
			return fmt.Errorf("condition node #%d: %v", n.Order, err)
		}
		for _, b := range []Branch{n.OnTrue, n.OnFalse} {
			if err := b.validate(); err != nil {
				return fmt.Errorf("condition node #%d: %v", n.Order, err)
			}
		}
	default:
		return fmt.Errorf("node #%d: unknown kind %q", n.Order, n.Kind)
	}
	return nil
}

func (b Branch) validate() error {
	switch b.Action {
	case Classify:
		if !b.Label.Valid() {
			return fmt.Errorf("branch classifies as invalid label %q", b.Label)
		}
	case Jump:
	default:
		return fmt.Errorf("unknown branch action %q", b.Action)
	}
	return nil
}

func (n *Node) String() string {
	if n.Kind == Leaf {
		return fmt.Sprintf("#%d leaf => %s", n.Order, n.Label)
	}
	return fmt.Sprintf("#%d if %v %v else %v", n.Order, n.Criterion, n.OnTrue, n.OnFalse)
}
