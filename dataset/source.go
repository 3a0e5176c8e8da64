package dataset

import (
	"context"
	"fmt"
)

/*
Source provides the labeled samples the classifiers learn from.

Its TrainingSamples method returns the active training data records.

Its VerifiedSamples method returns the classification records that have
been verified by an operator and can be used as training data too.

Both methods take a context that implementations may use to cancel or
time out queries on their backends.
*/
type Source interface {
	TrainingSamples(context.Context) ([]LabeledSample, error)
	VerifiedSamples(context.Context) ([]LabeledSample, error)
}

type memorySource struct {
	training []LabeledSample
	verified []LabeledSample
}

/*
NewMemorySource takes slices of training and verified samples and returns a
Source that serves them from memory.
*/
func NewMemorySource(training, verified []LabeledSample) Source {
	return &memorySource{training, verified}
}

func (ms *memorySource) TrainingSamples(ctx context.Context) ([]LabeledSample, error) {
	return ms.training, ctx.Err()
}

func (ms *memorySource) VerifiedSamples(ctx context.Context) ([]LabeledSample, error) {
	return ms.verified, ctx.Err()
}

/*
Collect takes a context and a Source and returns a Dataset with the
training samples of the source followed by its verified samples, or an
error if any of them cannot be retrieved. A nil source yields an empty
dataset.
*/
func Collect(ctx context.Context, s Source) (Dataset, error) {
	if s == nil {
		return New(nil), nil
	}
	training, err := s.TrainingSamples(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting training samples: %v", err)
	}
	verified, err := s.VerifiedSamples(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting verified samples: %v", err)
	}
	samples := make([]LabeledSample, 0, len(training)+len(verified))
	samples = append(samples, training...)
	samples = append(samples, verified...)
	return &memoryDataset{samples}, nil
}
