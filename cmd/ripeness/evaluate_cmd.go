package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pbanos/ripeness/evaluation"
	"github.com/pbanos/ripeness/pkg/bio"
	"github.com/spf13/cobra"
)

type evaluateCmdConfig struct {
	*rootCmdConfig
	algorithm  string
	json       bool
	invalidate bool
}

func evaluateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &evaluateCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate the accuracy of the classifiers",
		Long:  `Cross-validate the classifiers on the training data, record the results on the evaluation history and print their accuracy, confusion matrix and per class metrics`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Load(cmd)
			if err != nil {
				fail(loadExitCode(err), err)
			}
			defer config.ContextCancelFunc()()
			b := newBackends(config.rootCmdConfig)
			defer b.Close()
			service, models, err := config.service(b)
			if err != nil {
				fail(exitBackend, err)
			}
			if config.invalidate {
				config.Logf("Invalidating cached evaluations...")
				err = service.Invalidate(config.Context())
				if err != nil {
					fail(exitBackend, err)
				}
			}
			config.Logf("Evaluating %d algorithms...", len(models))
			outcomes, err := service.EvaluateAll(config.Context(), models)
			if err != nil {
				fail(exitOperation, err)
			}
			results := make([]*evaluation.Result, 0, len(models))
			failed := false
			for _, m := range models {
				o := outcomes[m.Name()]
				if o.Err != nil {
					fmt.Fprintf(os.Stderr, "evaluating %s: %v\n", m.Name(), o.Err)
					failed = true
					continue
				}
				if o.Result.Insufficient {
					config.Warnf("%s: only %d samples available, reporting its default accuracy", m.Name(), o.Result.SampleCount)
				}
				results = append(results, o.Result)
			}
			if config.json {
				err = bio.WriteJSON(os.Stdout, results)
			} else {
				err = writeEvaluations(results)
			}
			if err != nil {
				fail(exitOutput, err)
			}
			if failed {
				os.Exit(exitOperation)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.algorithm), "algorithm", "a", "", "evaluate only this algorithm: decision_tree, knn, random_forest or ensemble")
	cmd.Flags().BoolVar(&(config.json), "json", false, "print the results as JSON")
	cmd.Flags().BoolVar(&(config.invalidate), "refresh", false, "ignore cached evaluations")
	return cmd
}

func (ecc *evaluateCmdConfig) service(b *backends) (*evaluation.Service, []evaluation.Model, error) {
	ctx := ecc.Context()
	nodes, err := b.Nodes(ctx)
	if err != nil {
		return nil, nil, err
	}
	models := evaluation.DefaultModels(nodes, ecc.forestMode)
	if ecc.algorithm != "" {
		models, err = selectModel(models, ecc.algorithm)
		if err != nil {
			return nil, nil, err
		}
	}
	data, err := b.Source(ctx)
	if err != nil {
		return nil, nil, err
	}
	h, err := b.HistoryStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	seed := ecc.Evaluation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e := evaluation.NewEvaluator(rand.New(rand.NewSource(seed)))
	e.Folds = ecc.Evaluation.Folds
	e.MinSamples = ecc.Evaluation.MinSamples
	if ecc.Evaluation.Workers > 0 {
		e.Workers = ecc.Evaluation.Workers
	}
	return evaluation.NewService(e, data, b.EvaluationCache(), h), models, nil
}

func selectModel(models []evaluation.Model, name string) ([]evaluation.Model, error) {
	for _, m := range models {
		if m.Name() == name {
			return []evaluation.Model{m}, nil
		}
	}
	return nil, fmt.Errorf("unknown algorithm %q", name)
}

func writeEvaluations(results []*evaluation.Result) error {
	for _, r := range results {
		_, err := fmt.Print(formatEvaluation(r))
		if err != nil {
			return err
		}
	}
	return nil
}

func formatEvaluation(r *evaluation.Result) string {
	source := "measured"
	if r.Insufficient {
		source = "default"
	}
	if r.Cached {
		source += ", cached"
	}
	result := fmt.Sprintf("%s: %.2f%% accuracy (%s) on %d samples at %s\n", r.Algorithm, r.Accuracy, source, r.SampleCount, r.CalculatedAt.Format(time.RFC3339))
	if r.Insufficient || r.ConfusionMatrix == nil {
		return result
	}
	labels := r.ConfusionMatrix.Labels
	result += fmt.Sprintf("  %-16s", "actual\\predicted")
	for _, l := range labels {
		result += fmt.Sprintf(" %16s", l)
	}
	result += "\n"
	for i, l := range labels {
		result += fmt.Sprintf("  %-16s", l)
		for j := range labels {
			result += fmt.Sprintf(" %16d", r.ConfusionMatrix.Counts[i][j])
		}
		result += "\n"
	}
	for _, l := range labels {
		m := r.Metrics[l]
		result += fmt.Sprintf("  %-16s precision %.2f recall %.2f f1 %.2f\n", l, m.Precision, m.Recall, m.F1)
	}
	return result
}
