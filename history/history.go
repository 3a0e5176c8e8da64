/*
Package history keeps the record of the evaluations calculated for every
algorithm so accuracy can be tracked over time.
*/
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pbanos/ripeness/feature"
)

// Error represents an error on a history store
type Error string

func (e Error) Error() string {
	return string(e)
}

// ErrNotFound is returned when no record exists for an algorithm
const ErrNotFound = Error("no evaluation record found")

/*
Metrics are the precision, recall and F1 score of a class, as percentages
*/
type Metrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

/*
Record is the outcome of an evaluation of an algorithm at a point in time.

ConfusionMatrix rows are actual labels and columns predicted labels, both
in the order of feature.Labels().
*/
type Record struct {
	ID              uuid.UUID                 `json:"id"`
	Algorithm       string                    `json:"algorithm"`
	Accuracy        float64                   `json:"accuracy"`
	ConfusionMatrix [][]int                   `json:"confusionMatrix"`
	Metrics         map[feature.Label]Metrics `json:"metrics"`
	SampleCount     int                       `json:"sampleCount"`
	Insufficient    bool                      `json:"insufficientData"`
	CalculatedAt    time.Time                 `json:"calculatedAt"`
}

/*
NewRecord takes an algorithm name and a calculation time and returns a
Record for them with a fresh random ID.
*/
func NewRecord(algorithm string, at time.Time) Record {
	return Record{ID: uuid.New(), Algorithm: algorithm, CalculatedAt: at}
}

/*
Store is an interface to a backend where evaluation records are kept.

All its methods take a context that may allow cancelling the operation if
the implementation allows it.
*/
type Store interface {
	// Save takes a record and stores it, returning an error if it cannot
	Save(ctx context.Context, r Record) error
	// Latest returns the most recent record for the algorithm or
	// ErrNotFound if there is none
	Latest(ctx context.Context, algorithm string) (*Record, error)
	// Since returns the records of the algorithm calculated within the
	// last days, newest first
	Since(ctx context.Context, algorithm string, days int) ([]Record, error)
	// Close frees any resources used by the store
	Close(ctx context.Context) error
}

// Cutoff returns the earliest calculation time within the last days from now
func Cutoff(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}
