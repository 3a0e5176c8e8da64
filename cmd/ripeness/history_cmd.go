package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pbanos/ripeness/evaluation"
	"github.com/pbanos/ripeness/history"
	"github.com/pbanos/ripeness/pkg/bio"
	"github.com/spf13/cobra"
)

type historyCmdConfig struct {
	*rootCmdConfig
	algorithm string
	days      int
	json      bool
}

func historyCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &historyCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past evaluations",
		Long:  `Show the evaluations of the classifiers recorded on the history store within the last days, newest first`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Load(cmd)
			if err != nil {
				fail(loadExitCode(err), err)
			}
			err = config.Validate()
			if err != nil {
				fail(exitInvalidFlags, err)
			}
			defer config.ContextCancelFunc()()
			b := newBackends(config.rootCmdConfig)
			defer b.Close()
			h, err := b.HistoryStore(config.Context())
			if err != nil {
				fail(exitBackend, err)
			}
			var records []history.Record
			for _, alg := range config.algorithms() {
				rs, err := h.Since(config.Context(), alg, config.days)
				if err != nil {
					fail(exitBackend, err)
				}
				records = append(records, rs...)
			}
			history.SortNewestFirst(records)
			if config.json {
				err = bio.WriteJSON(os.Stdout, records)
			} else {
				err = writeRecords(records)
			}
			if err != nil {
				fail(exitOutput, err)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.algorithm), "algorithm", "a", "", "show only this algorithm: decision_tree, knn, random_forest or ensemble")
	cmd.Flags().IntVarP(&(config.days), "days", "d", 30, "number of days to look back")
	cmd.Flags().BoolVar(&(config.json), "json", false, "print the records as JSON")
	return cmd
}

func (hcc *historyCmdConfig) Validate() error {
	if hcc.days <= 0 {
		return fmt.Errorf("days must be positive, got %d", hcc.days)
	}
	if hcc.algorithm == "" {
		return nil
	}
	for _, alg := range allAlgorithms {
		if alg == hcc.algorithm {
			return nil
		}
	}
	return fmt.Errorf("unknown algorithm %q", hcc.algorithm)
}

var allAlgorithms = []string{evaluation.DecisionTree, evaluation.KNN, evaluation.RandomForest, evaluation.Ensemble}

func (hcc *historyCmdConfig) algorithms() []string {
	if hcc.algorithm != "" {
		return []string{hcc.algorithm}
	}
	return allAlgorithms
}

func writeRecords(records []history.Record) error {
	if len(records) == 0 {
		_, err := fmt.Println("No evaluations recorded")
		return err
	}
	for _, r := range records {
		note := ""
		if r.Insufficient {
			note = " (default, insufficient data)"
		}
		_, err := fmt.Printf("%s %-14s %6.2f%%%s on %d samples [%s]\n", r.CalculatedAt.Format(time.RFC3339), r.Algorithm, r.Accuracy, note, r.SampleCount, r.ID)
		if err != nil {
			return err
		}
	}
	return nil
}
