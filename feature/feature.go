/*
Package feature defines the vocabulary shared by every ripeness classifier:
the closed set of ripeness labels, the observable fields of a color reading
and the criteria that can be evaluated on them.
*/
package feature

import (
	"fmt"
	"sort"
)

/*
Label is a ripeness class. Only the values returned by Labels are valid.
*/
type Label string

const (
	// Unripe is the label for green tomatoes
	Unripe Label = "mentah"
	// HalfRipe is the label for tomatoes turning red
	HalfRipe Label = "setengah_matang"
	// Ripe is the label for red tomatoes
	Ripe Label = "matang"
	// Rotten is the label for spoiled tomatoes
	Rotten Label = "busuk"
)

// Error represents an error on the feature vocabulary
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrUnknownLabel is returned when parsing a label outside the ripeness vocabulary
	ErrUnknownLabel = Error("unknown ripeness label")
	// ErrUnknownField is returned when parsing an unknown field name
	ErrUnknownField = Error("unknown field")
	// ErrUnknownOperator is returned when parsing an unknown comparison operator
	ErrUnknownOperator = Error("unknown operator")
)

var labels = []Label{Unripe, HalfRipe, Ripe, Rotten}

/*
Labels returns the ripeness labels in their canonical order:
mentah, setengah_matang, matang, busuk. The returned slice is a copy.
*/
func Labels() []Label {
	return append([]Label(nil), labels...)
}

/*
ParseLabel takes a string and returns the Label it names or an error
wrapping ErrUnknownLabel.
*/
func ParseLabel(s string) (Label, error) {
	for _, l := range labels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%v %q", ErrUnknownLabel, s)
}

// Valid returns whether the label belongs to the ripeness vocabulary
func (l Label) Valid() bool {
	for _, vl := range labels {
		if vl == l {
			return true
		}
	}
	return false
}

// Index returns the position of the label in Labels() or -1
func (l Label) Index() int {
	for i, vl := range labels {
		if vl == l {
			return i
		}
	}
	return -1
}

func (l Label) String() string {
	return string(l)
}

/*
BreakTie takes a slice of labels that obtained the same number of votes
and returns the one that wins the tie: the first one in lexical order of
the label name. It returns the empty label when given no candidates.
*/
func BreakTie(candidates []Label) Label {
	if len(candidates) == 0 {
		return ""
	}
	sorted := append([]Label(nil), candidates...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[0]
}

/*
Winner takes a count of votes per label and returns the label with the most
votes and its count. Ties are resolved with BreakTie.
*/
func Winner(votes map[Label]int) (Label, int) {
	var (
		best       int
		candidates []Label
	)
	for l, c := range votes {
		switch {
		case c > best:
			best = c
			candidates = []Label{l}
		case c == best && c > 0:
			candidates = append(candidates, l)
		}
	}
	return BreakTie(candidates), best
}

/*
Field represents an observable property of a color reading: one of its
channels or a ratio between two of them.
*/
type Field string

const (
	// Red is the red channel
	Red Field = "red"
	// Green is the green channel
	Green Field = "green"
	// Blue is the blue channel
	Blue Field = "blue"
	// RatioRedGreen is red divided by green, 0 when green is 0
	RatioRedGreen Field = "ratio_red_green"
	// RatioRedBlue is red divided by blue, 0 when blue is 0
	RatioRedBlue Field = "ratio_red_blue"
	// RatioGreenBlue is green divided by blue, 0 when blue is 0
	RatioGreenBlue Field = "ratio_green_blue"
)

var fields = []Field{Red, Green, Blue, RatioRedGreen, RatioRedBlue, RatioGreenBlue}

// Fields returns all the available fields
func Fields() []Field {
	return append([]Field(nil), fields...)
}

/*
ParseField takes a string and returns the Field it names or an error
wrapping ErrUnknownField.
*/
func ParseField(s string) (Field, error) {
	for _, f := range fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%v %q", ErrUnknownField, s)
}

func (f Field) String() string {
	return string(f)
}

/*
Sample is something on which fields can be observed.

Its ValueFor method returns the value of the sample for the given field.
*/
type Sample interface {
	ValueFor(Field) float64
}
