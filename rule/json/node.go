/*
Package json provides the encoding of rule nodes and rule sets as JSON
documents.
*/
package json

import (
	"encoding/json"
	"fmt"

	"github.com/pbanos/ripeness/feature"
	"github.com/pbanos/ripeness/rule"
)

/*
NodeEncodeDecoder is an interface for objects
that allow encoding nodes into slices of
bytes and decoding them back to nodes.
*/
type NodeEncodeDecoder interface {

	//Encode receives a *rule.Node
	//and returns a slice of bytes with the node
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*rule.Node) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *rule.Node decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*rule.Node, error)
}

type nodeEncodeDecoder struct{}

type node struct {
	Order     int          `json:"order"`
	Kind      rule.Kind    `json:"type"`
	Field     string       `json:"field,omitempty"`
	Operator  string       `json:"operator,omitempty"`
	Threshold float64      `json:"threshold,omitempty"`
	OnTrue    *rule.Branch `json:"onTrue,omitempty"`
	OnFalse   *rule.Branch `json:"onFalse,omitempty"`
	Label     string       `json:"label,omitempty"`
	Active    bool         `json:"active"`
}

/*
NewNodeEncodeDecoder returns a NodeEncodeDecoder that
encodes nodes as JSON objects with the following fields:
  * "order": the evaluation order of the node
  * "type": "condition" or "leaf"
  * "field", "operator", "threshold": the criterion of a condition node
  * "onTrue", "onFalse": the branches of a condition node, objects with
  an "action" ("classify" or "jump") and a "label" or a "target" order
  * "label": the classification of a leaf node
  * "active": whether the node is active
*/
func NewNodeEncodeDecoder() NodeEncodeDecoder {
	return &nodeEncodeDecoder{}
}

func (ned *nodeEncodeDecoder) Encode(n *rule.Node) ([]byte, error) {
	jn := &node{
		Order:  n.Order,
		Kind:   n.Kind,
		Active: n.Active,
	}
	switch n.Kind {
	case rule.Condition:
		jn.Field = string(n.Criterion.Field)
		jn.Operator = string(n.Criterion.Operator)
		jn.Threshold = n.Criterion.Threshold
		onTrue, onFalse := n.OnTrue, n.OnFalse
		jn.OnTrue = &onTrue
		jn.OnFalse = &onFalse
	case rule.Leaf:
		jn.Label = string(n.Label)
	default:
		return nil, fmt.Errorf("encoding node #%d: unknown kind %q", n.Order, n.Kind)
	}
	return json.Marshal(jn)
}

func (ned *nodeEncodeDecoder) Decode(data []byte) (*rule.Node, error) {
	jn := &node{}
	err := json.Unmarshal(data, jn)
	if err != nil {
		return nil, err
	}
	return jn.toNode()
}

func (jn *node) toNode() (*rule.Node, error) {
	n := &rule.Node{Order: jn.Order, Kind: jn.Kind, Active: jn.Active}
	switch jn.Kind {
	case rule.Condition:
		c, err := feature.NewCriterion(jn.Field, jn.Operator, jn.Threshold)
		if err != nil {
			return nil, fmt.Errorf("decoding node #%d: %v", jn.Order, err)
		}
		if jn.OnTrue == nil || jn.OnFalse == nil {
			return nil, fmt.Errorf("decoding node #%d: condition nodes need onTrue and onFalse branches", jn.Order)
		}
		n.Criterion = c
		n.OnTrue = *jn.OnTrue
		n.OnFalse = *jn.OnFalse
	case rule.Leaf:
		l, err := feature.ParseLabel(jn.Label)
		if err != nil {
			return nil, fmt.Errorf("decoding node #%d: %v", jn.Order, err)
		}
		n.Label = l
	default:
		return nil, fmt.Errorf("decoding node #%d: unknown type %q", jn.Order, jn.Kind)
	}
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("decoding node: %v", err)
	}
	return n, nil
}
