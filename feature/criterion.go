package feature

import (
	"fmt"
	"strconv"
)

/*
Operator is a comparison between an observed value and a threshold
*/
type Operator string

const (
	// GreaterThan is satisfied when value > threshold
	GreaterThan Operator = ">"
	// LessThan is satisfied when value < threshold
	LessThan Operator = "<"
	// GreaterOrEqual is satisfied when value >= threshold
	GreaterOrEqual Operator = ">="
	// LessOrEqual is satisfied when value <= threshold
	LessOrEqual Operator = "<="
	// Equal is satisfied when value == threshold
	Equal Operator = "=="
)

var operators = []Operator{GreaterThan, LessThan, GreaterOrEqual, LessOrEqual, Equal}

/*
ParseOperator takes a string and returns the Operator it represents or an
error wrapping ErrUnknownOperator.
*/
func ParseOperator(s string) (Operator, error) {
	for _, o := range operators {
		if string(o) == s {
			return o, nil
		}
	}
	return "", fmt.Errorf("%v %q", ErrUnknownOperator, s)
}

/*
Apply takes a value and a threshold and returns whether the comparison
the operator represents holds. Unknown operators never hold.
*/
func (o Operator) Apply(value, threshold float64) bool {
	switch o {
	case GreaterThan:
		return value > threshold
	case LessThan:
		return value < threshold
	case GreaterOrEqual:
		return value >= threshold
	case LessOrEqual:
		return value <= threshold
	case Equal:
		return value == threshold
	}
	return false
}

/*
Criterion represents a constraint on a field: the observed value for the
field compared with Operator against Threshold.
*/
type Criterion struct {
	Field     Field
	Operator  Operator
	Threshold float64
}

/*
NewCriterion takes the string representations of a field and an operator
and a threshold and returns a Criterion or an error if the field or the
operator are unknown.
*/
func NewCriterion(field, operator string, threshold float64) (Criterion, error) {
	f, err := ParseField(field)
	if err != nil {
		return Criterion{}, err
	}
	o, err := ParseOperator(operator)
	if err != nil {
		return Criterion{}, err
	}
	return Criterion{f, o, threshold}, nil
}

/*
SatisfiedBy receives a sample and returns the value observed for the
criterion field and whether it satisfies the criterion.
*/
func (c Criterion) SatisfiedBy(s Sample) (float64, bool) {
	v := s.ValueFor(c.Field)
	return v, c.Operator.Apply(v, c.Threshold)
}

func (c Criterion) String() string {
	return fmt.Sprintf("%s %s %s", c.Field, c.Operator, strconv.FormatFloat(c.Threshold, 'f', -1, 64))
}
