/*
Package recommendation provides the storage, handling and usage advice
shown to operators for every ripeness label.
*/
package recommendation

import (
	"fmt"

	"github.com/pbanos/ripeness/feature"
)

// Category groups recommendations
type Category string

const (
	// Storage recommendations tell how to keep the tomatoes
	Storage Category = "storage"
	// Handling recommendations tell how to move and sort the tomatoes
	Handling Category = "handling"
	// Usage recommendations tell what the tomatoes are good for
	Usage Category = "usage"
)

// Categories returns the recommendation categories in display order
func Categories() []Category {
	return []Category{Storage, Handling, Usage}
}

/*
Book holds a recommendation text per label and category
*/
type Book map[feature.Label]map[Category]string

/*
DefaultBook returns the built-in recommendations
*/
func DefaultBook() Book {
	return Book{
		feature.Unripe: {
			Storage:  "Keep at room temperature (18-24°C) away from direct sunlight until it turns color.",
			Handling: "Handle gently, store stem side down and check every 2-3 days.",
			Usage:    "Not ready for fresh consumption, can be used for green tomato recipes or pickles.",
		},
		feature.HalfRipe: {
			Storage:  "Keep at room temperature, it should ripen within 2-4 days.",
			Handling: "Separate from unripe tomatoes and check daily.",
			Usage:    "Good for cooking, sauces and dishes that need firm tomatoes.",
		},
		feature.Ripe: {
			Storage:  "Refrigerate (10-13°C) if not consumed within 1-2 days.",
			Handling: "Consume or ship soon, avoid stacking to prevent bruising.",
			Usage:    "Ready for fresh consumption, salads and juice.",
		},
		feature.Rotten: {
			Storage:  "Do not store, remove immediately to keep spoilage from spreading.",
			Handling: "Discard or compost and clean the container before reuse.",
			Usage:    "Not suitable for consumption.",
		},
	}
}

/*
Lookup takes a label and returns the recommendations for it, falling back
to the DefaultBook for categories the book does not define.
*/
func (b Book) Lookup(l feature.Label) map[Category]string {
	result := make(map[Category]string)
	defaults := DefaultBook()[l]
	for _, c := range Categories() {
		if text, ok := b[l][c]; ok && text != "" {
			result[c] = text
		} else if text, ok := defaults[c]; ok {
			result[c] = text
		}
	}
	return result
}

/*
Validate returns an error if the book has entries for unknown labels or
categories.
*/
func (b Book) Validate() error {
	for l, entries := range b {
		if !l.Valid() {
			return fmt.Errorf("recommendations for %v %q", feature.ErrUnknownLabel, l)
		}
		for c := range entries {
			if !c.valid() {
				return fmt.Errorf("recommendations for %s: unknown category %q", l, c)
			}
		}
	}
	return nil
}

func (c Category) valid() bool {
	for _, vc := range Categories() {
		if vc == c {
			return true
		}
	}
	return false
}
