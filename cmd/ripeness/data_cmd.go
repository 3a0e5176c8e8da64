package main

import (
	"fmt"
	"os"

	"github.com/pbanos/ripeness/dataset"
	"github.com/pbanos/ripeness/feature"
	"github.com/pbanos/ripeness/pkg/bio"
	"github.com/spf13/cobra"
)

func dataCmd(rootConfig *rootCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Manage the training data",
		Long:  `Import training samples into a database, export them as CSV or summarize them`,
	}
	cmd.AddCommand(dataImportCmd(rootConfig), dataExportCmd(rootConfig), dataStatsCmd(rootConfig))
	return cmd
}

func dataImportCmd(rootConfig *rootCmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "import [CSV file]",
		Short: "Import training samples from a CSV file into the input database",
		Long:  `Import training samples from a CSV file with red, green, blue and label columns into the input database. Reads from stdin when no file is given`,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			err := rootConfig.Load(cmd)
			if err != nil {
				fail(loadExitCode(err), err)
			}
			defer rootConfig.ContextCancelFunc()()
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			samples, err := bio.ReadCSVSamplesFromFilePath(path)
			if err != nil {
				fail(exitInvalidFlags, err)
			}
			b := newBackends(rootConfig)
			defer b.Close()
			s, err := b.DataStore(rootConfig.Context())
			if err != nil {
				fail(exitBackend, err)
			}
			n, err := addTrainingSamples(rootConfig.Context(), s, b.EvaluationCache(), samples)
			if err != nil {
				fail(exitBackend, err)
			}
			fmt.Printf("Imported %d samples\n", n)
		},
	}
}

func dataExportCmd(rootConfig *rootCmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the training data as CSV",
		Long:  `Write the training samples and verified classifications of the input as CSV to stdout`,
		Run: func(cmd *cobra.Command, args []string) {
			data := collect(cmd, rootConfig)
			err := bio.WriteCSVSamples(os.Stdout, data.Samples())
			if err != nil {
				fail(exitOutput, err)
			}
		},
	}
}

func dataStatsCmd(rootConfig *rootCmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the training data",
		Long:  `Print the number of samples of every class of the training data along their red and blue statistics`,
		Run: func(cmd *cobra.Command, args []string) {
			data := collect(cmd, rootConfig)
			fmt.Printf("%d samples\n", data.Count())
			stats := data.ClassStats()
			for _, l := range feature.Labels() {
				st, ok := stats[l]
				if !ok {
					continue
				}
				fmt.Printf("  %-16s %4d samples, red min %.0f avg %.2f, blue min %.0f avg %.2f\n", l, st.Count, st.MinRed, st.AvgRed, st.MinBlue, st.AvgBlue)
			}
		},
	}
}

func collect(cmd *cobra.Command, rootConfig *rootCmdConfig) dataset.Dataset {
	err := rootConfig.Load(cmd)
	if err != nil {
		fail(loadExitCode(err), err)
	}
	defer rootConfig.ContextCancelFunc()()
	b := newBackends(rootConfig)
	defer b.Close()
	src, err := b.Source(rootConfig.Context())
	if err != nil {
		fail(exitBackend, err)
	}
	if src == nil {
		fail(exitInvalidFlags, fmt.Errorf("required input flag was not set"))
	}
	data, err := dataset.Collect(rootConfig.Context(), src)
	if err != nil {
		fail(exitBackend, err)
	}
	return data
}
