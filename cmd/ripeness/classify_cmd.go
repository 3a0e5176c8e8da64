package main

import (
	"fmt"
	"os"

	"github.com/pbanos/ripeness"
	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/feature"
	"github.com/pbanos/ripeness/pkg/bio"
	"github.com/pbanos/ripeness/recommendation"
	"github.com/spf13/cobra"
)

type classifyCmdConfig struct {
	*rootCmdConfig
	rgb    string
	json   bool
	record bool
	label  string
}

type stdoutChannelValueRequester struct{}

func classifyCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &classifyCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a tomato by its color",
		Long:  `Classify a tomato from its RGB reading with the rule engine, the nearest neighbor classifier and the forest, and combine them with a majority vote`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Load(cmd)
			if err != nil {
				fail(loadExitCode(err), err)
			}
			defer config.ContextCancelFunc()()
			b := newBackends(config.rootCmdConfig)
			defer b.Close()
			classifier, err := config.classifier(b)
			if err != nil {
				fail(exitBackend, err)
			}
			color, err := config.color()
			if err != nil {
				fail(exitInvalidFlags, err)
			}
			config.Logf("Classifying %v...", color)
			result, err := classifier.Classify(config.Context(), color)
			if err != nil {
				fail(exitOperation, err)
			}
			if result.Rule.Defaulted() {
				config.Warnf("rules could not classify the sample: %s", result.Rule.FallbackReason)
			}
			if result.KNN.UsedSeed {
				config.Warnf("no training data available, nearest neighbors were searched among the seed samples")
			}
			if config.record {
				err = config.recordClassification(b, result)
				if err != nil {
					fail(exitBackend, err)
				}
			}
			if config.json {
				err = bio.WriteJSON(os.Stdout, result)
			} else {
				err = writeClassification(result)
			}
			if err != nil {
				fail(exitOutput, err)
			}
		},
	}
	cmd.Flags().StringVar(&(config.rgb), "rgb", "", "color to classify as R,G,B (asked interactively when not set)")
	cmd.Flags().BoolVar(&(config.json), "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&(config.record), "record", false, "store the classification on the input database")
	cmd.Flags().StringVar(&(config.label), "verify", "", "label to store the recorded classification as verified with")
	return cmd
}

func (ccc *classifyCmdConfig) classifier(b *backends) (*ripeness.Classifier, error) {
	ctx := ccc.Context()
	rules, err := b.RuleStore(ctx)
	if err != nil {
		return nil, err
	}
	data, err := b.Source(ctx)
	if err != nil {
		return nil, err
	}
	book, err := b.RecommendationBook()
	if err != nil {
		return nil, err
	}
	c := ripeness.New(rules, data)
	c.Forest = ccc.forestMode
	c.Recommendations = book
	return c, nil
}

func (ccc *classifyCmdConfig) color() (dataset.Color, error) {
	if ccc.rgb != "" {
		return dataset.ParseColor(ccc.rgb)
	}
	return bio.ReadColor(os.Stdin, stdoutChannelValueRequester{})
}

func (ccc *classifyCmdConfig) recordClassification(b *backends, result *ripeness.Result) error {
	s, err := b.DataStore(ccc.Context())
	if err != nil {
		return err
	}
	label := result.Label
	verified := ccc.label != ""
	if verified {
		label, err = feature.ParseLabel(ccc.label)
		if err != nil {
			return err
		}
	}
	ccc.Logf("Recording classification of %v as %s (verified: %v)...", result.Color, label, verified)
	return addClassification(ccc.Context(), s, b.EvaluationCache(), result.Color, label, verified)
}

func writeClassification(r *ripeness.Result) error {
	lines := []string{
		fmt.Sprintf("Color: %v", r.Color),
		fmt.Sprintf("Ripeness: %s (%.2f%% confidence, %s)", r.Label, r.Confidence, r.Consensus),
		fmt.Sprintf("  decision tree: %v", r.Rule),
		fmt.Sprintf("  knn: %s (%.2f%%)", r.KNN.Label, r.KNN.Confidence),
		fmt.Sprintf("  random forest: %s (%.2f%%, %s)", r.Forest.Label, r.Forest.Confidence, r.Forest.Agreement),
		"Recommendations:",
	}
	for _, c := range recommendation.Categories() {
		lines = append(lines, fmt.Sprintf("  %s: %s", c, r.Recommendations[c]))
	}
	for _, l := range lines {
		_, err := fmt.Fprintln(os.Stdout, l)
		if err != nil {
			return err
		}
	}
	return nil
}

func (stdoutChannelValueRequester) RequestValueFor(channel string) error {
	fmt.Printf("Please provide the sample's %s value:\n(valid values are integers from 0 to %d)\n", channel, dataset.MaxChannelValue)
	return nil
}

func (stdoutChannelValueRequester) RejectValueFor(channel string, value string) error {
	fmt.Printf("%q is not a valid value for the sample's %s. Please provide an integer from 0 to %d.\n", value, channel, dataset.MaxChannelValue)
	return nil
}
