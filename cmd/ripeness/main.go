package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(exitInvalidFlags)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ripeness",
		Short: "ripeness is a tool to classify tomato ripeness from RGB readings",
		Long:  `A tool to classify tomatoes as mentah, setengah_matang, matang or busuk from RGB sensor readings, evaluate the classifiers and manage their rules and data`,
	}
	config := &rootCmdConfig{}
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&(config.verbose), "verbose", "v", false, "")
	flags.StringVarP(&(config.configPath), "config", "c", "", "path to a YML configuration file, flags override its values")
	flags.StringVarP(&(config.Data), "input", "i", "", "path to a training CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with training data (defaults to the built-in seed samples)")
	flags.StringVar(&(config.Verified), "verified", "", "path to a CSV file with verified classifications to use as training data too")
	flags.StringVarP(&(config.Rules), "rules", "r", "", "path to a YML rule set, 'redis' to read rules from redis or 'db' to read them from the SQL input (defaults to the fallback rules)")
	flags.StringVar(&(config.Redis.Addr), "redis", "", "address of the redis server for rules and cache")
	flags.StringVar(&(config.Cache), "cache", "memory", "evaluation cache: memory or redis")
	flags.StringVar(&(config.History), "history", "", "SQLite3 (.db) file, or PostgreSQL or MongoDB connection URL where evaluation history is kept (defaults to memory)")
	flags.StringVar(&(config.Recommendations), "recommendations", "", "path to a YML file with recommendations (defaults to the built-in ones)")
	flags.StringVar(&(config.Forest), "forest", "fixed", "forest thresholds: fixed or dynamic")
	rootCmd.AddCommand(
		versionCmd(),
		classifyCmd(config),
		evaluateCmd(config),
		historyCmd(config),
		rulesCmd(config),
		dataCmd(config),
	)
	return rootCmd
}
