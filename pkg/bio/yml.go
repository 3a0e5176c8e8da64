package bio

import (
	"fmt"
	"io/ioutil"

	"github.com/pbanos/ripeness/feature"
	"github.com/pbanos/ripeness/recommendation"
	"github.com/pbanos/ripeness/rule"
	yaml "gopkg.in/yaml.v2"
)

type ymlBranch struct {
	Action string `yaml:"action"`
	Label  string `yaml:"label,omitempty"`
	Target int    `yaml:"target,omitempty"`
}

type ymlNode struct {
	Order     int        `yaml:"order"`
	Kind      string     `yaml:"type"`
	Field     string     `yaml:"field,omitempty"`
	Operator  string     `yaml:"operator,omitempty"`
	Threshold float64    `yaml:"threshold,omitempty"`
	OnTrue    *ymlBranch `yaml:"on_true,omitempty"`
	OnFalse   *ymlBranch `yaml:"on_false,omitempty"`
	Label     string     `yaml:"label,omitempty"`
	Active    *bool      `yaml:"active,omitempty"`
}

/*
ReadYMLRules takes a slice of bytes with a rule set in YML and returns the
nodes parsed from it or an error.
The YML is expected to be an object containing a rules property with a list
of nodes. Every node has an order, a type ("condition" or "leaf") and, for
conditions, a field, an operator, a threshold and on_true and on_false
branches, each with an action ("classify" or "jump") and a label or a
target order. Leaves have a label. Nodes are active unless active is false.

Every node is checked with its Validate method, use rule.Validate to check
the resulting rule set as a whole.
*/
func ReadYMLRules(md []byte) ([]rule.Node, error) {
	doc := struct {
		Rules []ymlNode `yaml:"rules"`
	}{}
	err := yaml.Unmarshal(md, &doc)
	if err != nil {
		return nil, fmt.Errorf("parsing yml rules: %v", err)
	}
	if doc.Rules == nil {
		return nil, fmt.Errorf("rules file has no rules property")
	}
	nodes := make([]rule.Node, 0, len(doc.Rules))
	for _, yn := range doc.Rules {
		n := rule.Node{
			Order:  yn.Order,
			Kind:   rule.Kind(yn.Kind),
			Label:  feature.Label(yn.Label),
			Active: yn.Active == nil || *yn.Active,
		}
		if n.Kind == rule.Condition {
			if yn.OnTrue == nil || yn.OnFalse == nil {
				return nil, fmt.Errorf("condition node #%d: on_true and on_false are required", yn.Order)
			}
			n.Criterion = feature.Criterion{
				Field:     feature.Field(yn.Field),
				Operator:  feature.Operator(yn.Operator),
				Threshold: yn.Threshold,
			}
			n.OnTrue = yn.OnTrue.branch()
			n.OnFalse = yn.OnFalse.branch()
		}
		if err := n.Validate(); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (yb *ymlBranch) branch() rule.Branch {
	return rule.Branch{Action: rule.Action(yb.Action), Label: feature.Label(yb.Label), Target: yb.Target}
}

/*
ReadYMLRulesFromFile takes a filepath string, reads its contents and uses
ReadYMLRules to parse it and return the nodes or an error.
*/
func ReadYMLRulesFromFile(filepath string) ([]rule.Node, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading rules yml file %s: %v", filepath, err)
	}
	nodes, err := ReadYMLRules(md)
	if err != nil {
		err = fmt.Errorf("parsing rules yml file %s: %v", filepath, err)
	}
	return nodes, err
}

/*
WriteYMLRules takes a slice of nodes and returns their YML representation
in the format read by ReadYMLRules.
*/
func WriteYMLRules(nodes []rule.Node) ([]byte, error) {
	doc := struct {
		Rules []ymlNode `yaml:"rules"`
	}{Rules: make([]ymlNode, 0, len(nodes))}
	for _, n := range nodes {
		active := n.Active
		yn := ymlNode{Order: n.Order, Kind: string(n.Kind), Active: &active}
		if n.Kind == rule.Condition {
			yn.Field = string(n.Criterion.Field)
			yn.Operator = string(n.Criterion.Operator)
			yn.Threshold = n.Criterion.Threshold
			yn.OnTrue = &ymlBranch{string(n.OnTrue.Action), string(n.OnTrue.Label), n.OnTrue.Target}
			yn.OnFalse = &ymlBranch{string(n.OnFalse.Action), string(n.OnFalse.Label), n.OnFalse.Target}
		} else {
			yn.Label = string(n.Label)
		}
		doc.Rules = append(doc.Rules, yn)
	}
	return yaml.Marshal(doc)
}

/*
ReadYMLRecommendations takes a slice of bytes with recommendations in YML
and returns the recommendation.Book parsed from it or an error.
The YML is expected to be an object containing a recommendations property
with an object per label, each with storage, handling and usage texts.
*/
func ReadYMLRecommendations(md []byte) (recommendation.Book, error) {
	doc := struct {
		Recommendations map[string]map[string]string `yaml:"recommendations"`
	}{}
	err := yaml.Unmarshal(md, &doc)
	if err != nil {
		return nil, fmt.Errorf("parsing yml recommendations: %v", err)
	}
	if doc.Recommendations == nil {
		return nil, fmt.Errorf("recommendations file has no recommendations property")
	}
	book := make(recommendation.Book)
	for l, entries := range doc.Recommendations {
		label, err := feature.ParseLabel(l)
		if err != nil {
			return nil, err
		}
		book[label] = make(map[recommendation.Category]string)
		for c, text := range entries {
			book[label][recommendation.Category(c)] = text
		}
	}
	err = book.Validate()
	if err != nil {
		return nil, err
	}
	return book, nil
}

/*
ReadYMLRecommendationsFromFile takes a filepath string, reads its contents
and uses ReadYMLRecommendations to parse it.
*/
func ReadYMLRecommendationsFromFile(filepath string) (recommendation.Book, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading recommendations yml file %s: %v", filepath, err)
	}
	book, err := ReadYMLRecommendations(md)
	if err != nil {
		err = fmt.Errorf("parsing recommendations yml file %s: %v", filepath, err)
	}
	return book, err
}
