package main

import (
	"context"
	"fmt"

	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/evaluation"
	"github.com/pbanos/ripeness/feature"
)

/*
addTrainingSamples stores the samples on the store and, when any was
added, drops the cached evaluations as they were computed on older data.
*/
func addTrainingSamples(ctx context.Context, s store, c evaluation.Cache, samples []dataset.LabeledSample) (int, error) {
	n, err := s.AddTrainingSamples(ctx, samples)
	if err != nil || n == 0 {
		return n, err
	}
	return n, invalidateEvaluations(ctx, c)
}

/*
addClassification stores a classification on the store. Verified
classifications are training data, so they drop the cached evaluations.
*/
func addClassification(ctx context.Context, s store, c evaluation.Cache, col dataset.Color, l feature.Label, verified bool) error {
	err := s.AddClassification(ctx, col, l, verified)
	if err != nil || !verified {
		return err
	}
	return invalidateEvaluations(ctx, c)
}

func invalidateEvaluations(ctx context.Context, c evaluation.Cache) error {
	if c == nil {
		return nil
	}
	err := c.Invalidate(ctx)
	if err != nil {
		return fmt.Errorf("invalidating cached evaluations: %v", err)
	}
	return nil
}
