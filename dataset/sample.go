package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pbanos/ripeness/feature"
)

const (
	// MaxChannelValue is the highest value a color channel may take
	MaxChannelValue = 255

	// ErrChannelOutOfRange is returned when building a color with a channel outside [0,255]
	ErrChannelOutOfRange = feature.Error("color channel out of range")
)

/*
Color is an RGB reading from a sensor. Channels are integers in [0,255].
It implements feature.Sample.
*/
type Color struct {
	Red   int `json:"red" yaml:"red" bson:"red"`
	Green int `json:"green" yaml:"green" bson:"green"`
	Blue  int `json:"blue" yaml:"blue" bson:"blue"`
}

/*
NewColor takes the three channel values and returns a Color or an error
if any of them falls outside [0,255].
*/
func NewColor(r, g, b int) (Color, error) {
	for _, ch := range []struct {
		name  string
		value int
	}{{"red", r}, {"green", g}, {"blue", b}} {
		if ch.value < 0 || ch.value > MaxChannelValue {
			return Color{}, fmt.Errorf("%v: %s=%d", ErrChannelOutOfRange, ch.name, ch.value)
		}
	}
	return Color{r, g, b}, nil
}

/*
ParseColor takes a string with three comma separated integers ("r,g,b")
and returns the Color they represent or an error if the string is
malformed or a channel is out of range.
*/
func ParseColor(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("parsing color %q: expected 3 comma separated channels, got %d", s, len(parts))
	}
	var channels [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Color{}, fmt.Errorf("parsing color %q: %v", s, err)
		}
		channels[i] = v
	}
	return NewColor(channels[0], channels[1], channels[2])
}

// RedToGreen returns red/green or 0 if green is 0
func (c Color) RedToGreen() float64 {
	return ratio(c.Red, c.Green)
}

// RedToBlue returns red/blue or 0 if blue is 0
func (c Color) RedToBlue() float64 {
	return ratio(c.Red, c.Blue)
}

// GreenToBlue returns green/blue or 0 if blue is 0
func (c Color) GreenToBlue() float64 {
	return ratio(c.Green, c.Blue)
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

/*
ValueFor returns the value of the color for the given field. Unknown
fields have value 0.
*/
func (c Color) ValueFor(f feature.Field) float64 {
	switch f {
	case feature.Red:
		return float64(c.Red)
	case feature.Green:
		return float64(c.Green)
	case feature.Blue:
		return float64(c.Blue)
	case feature.RatioRedGreen:
		return c.RedToGreen()
	case feature.RatioRedBlue:
		return c.RedToBlue()
	case feature.RatioGreenBlue:
		return c.GreenToBlue()
	}
	return 0
}

func (c Color) String() string {
	return fmt.Sprintf("RGB(%d,%d,%d)", c.Red, c.Green, c.Blue)
}

/*
LabeledSample is a color reading with a known ripeness label, coming from
training data or verified classifications.
*/
type LabeledSample struct {
	Color `yaml:",inline" bson:",inline"`
	Label feature.Label `json:"label" yaml:"label" bson:"label"`
}

func (ls LabeledSample) String() string {
	return fmt.Sprintf("[%v %s]", ls.Color, ls.Label)
}
