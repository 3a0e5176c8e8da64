package main

import (
	"context"
	"fmt"
	"io/ioutil"

	"github.com/pbanos/ripeness/evaluation"
	"github.com/pbanos/ripeness/forest"
	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"
)

type redisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type evaluationConfig struct {
	Folds      int   `yaml:"folds"`
	MinSamples int   `yaml:"min_samples"`
	Workers    int   `yaml:"workers"`
	Seed       int64 `yaml:"seed"`
}

/*
Config holds the settings shared by every command. They are read from the
YML file given with the config flag and overridden by the flags set on the
command line.
*/
type Config struct {
	Data            string           `yaml:"input"`
	Verified        string           `yaml:"verified"`
	Rules           string           `yaml:"rules"`
	Redis           redisConfig      `yaml:"redis"`
	Cache           string           `yaml:"cache"`
	History         string           `yaml:"history"`
	Recommendations string           `yaml:"recommendations"`
	Forest          string           `yaml:"forest"`
	Evaluation      evaluationConfig `yaml:"evaluation"`
}

// configError is returned by Load when the configuration file cannot be read or parsed
type configError struct {
	err error
}

func (ce *configError) Error() string {
	return ce.err.Error()
}

/*
loadExitCode returns the exit code for an error returned by Load:
exitConfig for configuration file errors, exitInvalidFlags otherwise.
*/
func loadExitCode(err error) int {
	if _, ok := err.(*configError); ok {
		return exitConfig
	}
	return exitInvalidFlags
}

type rootCmdConfig struct {
	Config
	verbose    bool
	configPath string
	forestMode forest.Mode
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func (rcc *rootCmdConfig) Logf(format string, a ...interface{}) {
	logger(rcc.verbose).Logf(format, a...)
}

func (rcc *rootCmdConfig) Warnf(format string, a ...interface{}) {
	logger(rcc.verbose).Warnf(format, a...)
}

/*
Load reads the configuration file, if any, and applies its values to the
settings whose flags were not set on the command line. It then validates
the result.
*/
func (rcc *rootCmdConfig) Load(cmd *cobra.Command) error {
	if rcc.configPath != "" {
		rcc.Logf("Reading configuration from %s...", rcc.configPath)
		md, err := ioutil.ReadFile(rcc.configPath)
		if err != nil {
			return &configError{fmt.Errorf("reading config yml file %s: %v", rcc.configPath, err)}
		}
		file := Config{}
		err = yaml.Unmarshal(md, &file)
		if err != nil {
			return &configError{fmt.Errorf("parsing config yml file %s: %v", rcc.configPath, err)}
		}
		rcc.merge(cmd, file)
	}
	return rcc.Validate()
}

func (rcc *rootCmdConfig) merge(cmd *cobra.Command, file Config) {
	flags := cmd.Flags()
	settings := []struct {
		flag  string
		value *string
		file  string
	}{
		{"input", &rcc.Data, file.Data},
		{"verified", &rcc.Verified, file.Verified},
		{"rules", &rcc.Rules, file.Rules},
		{"redis", &rcc.Redis.Addr, file.Redis.Addr},
		{"cache", &rcc.Cache, file.Cache},
		{"history", &rcc.History, file.History},
		{"recommendations", &rcc.Recommendations, file.Recommendations},
		{"forest", &rcc.Forest, file.Forest},
	}
	for _, s := range settings {
		if !flags.Changed(s.flag) && s.file != "" {
			*s.value = s.file
		}
	}
	rcc.Redis.Password = file.Redis.Password
	rcc.Redis.DB = file.Redis.DB
	rcc.Redis.Prefix = file.Redis.Prefix
	rcc.Evaluation = file.Evaluation
}

func (rcc *rootCmdConfig) Validate() error {
	var err error
	rcc.forestMode, err = forest.ParseMode(rcc.Forest)
	if err != nil {
		return err
	}
	switch rcc.Cache {
	case "", "memory":
	case "redis":
		if rcc.Redis.Addr == "" {
			return fmt.Errorf("redis cache requires a redis address")
		}
	default:
		return fmt.Errorf("unknown cache %q", rcc.Cache)
	}
	if rcc.Rules == "redis" && rcc.Redis.Addr == "" {
		return fmt.Errorf("redis rules require a redis address")
	}
	if rcc.Redis.Prefix == "" {
		rcc.Redis.Prefix = "ripeness"
	}
	if rcc.Evaluation.Folds == 0 {
		rcc.Evaluation.Folds = evaluation.DefaultFolds
	}
	if rcc.Evaluation.MinSamples == 0 {
		rcc.Evaluation.MinSamples = evaluation.DefaultMinSamples
	}
	if rcc.Evaluation.Folds < 2 {
		return fmt.Errorf("at least 2 folds are needed, got %d", rcc.Evaluation.Folds)
	}
	if rcc.Evaluation.MinSamples < rcc.Evaluation.Folds {
		return fmt.Errorf("min_samples (%d) cannot be lower than folds (%d)", rcc.Evaluation.MinSamples, rcc.Evaluation.Folds)
	}
	return nil
}

func (rcc *rootCmdConfig) Context() context.Context {
	rcc.setContextAndCancelFunc()
	return rcc.ctx
}

func (rcc *rootCmdConfig) ContextCancelFunc() context.CancelFunc {
	rcc.setContextAndCancelFunc()
	return rcc.cancelFunc
}

func (rcc *rootCmdConfig) setContextAndCancelFunc() {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = context.WithCancel(context.Background())
	}
}
