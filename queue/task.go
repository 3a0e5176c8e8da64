package queue

import (
	"fmt"

	"github.com/pbanos/ripeness/dataset"
)

// Task represents a cross-validation fold to be
// evaluated for an algorithm.
type Task struct {
	// The name of the algorithm under evaluation
	Algorithm string
	// The train/test split to fit and score the
	// algorithm on.
	Fold dataset.Fold
}

// ID returns a string that identifies the
// task, its algorithm and fold index.
func (t *Task) ID() string {
	return fmt.Sprintf("%s/%d", t.Algorithm, t.Fold.Index)
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task %s}", t.ID())
}
