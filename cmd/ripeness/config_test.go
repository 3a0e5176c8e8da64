package main

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pbanos/ripeness/evaluation"
	"github.com/pbanos/ripeness/forest"
	"github.com/spf13/cobra"
)

func TestLoadMergesFileWithFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
input: samples.csv
rules: redis
forest: dynamic
redis:
  addr: localhost:6379
  prefix: tomatoes
evaluation:
  folds: 4
  seed: 7
`
	err := ioutil.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}
	config := &rootCmdConfig{}
	cmd := &cobra.Command{Use: "evaluate"}
	flags := cmd.Flags()
	flags.StringVarP(&(config.configPath), "config", "c", "", "")
	flags.StringVarP(&(config.Data), "input", "i", "", "")
	flags.StringVar(&(config.Verified), "verified", "", "")
	flags.StringVarP(&(config.Rules), "rules", "r", "", "")
	flags.StringVar(&(config.Redis.Addr), "redis", "", "")
	flags.StringVar(&(config.Cache), "cache", "memory", "")
	flags.StringVar(&(config.History), "history", "", "")
	flags.StringVar(&(config.Recommendations), "recommendations", "", "")
	flags.StringVar(&(config.Forest), "forest", "fixed", "")
	err = flags.Parse([]string{"--config", path, "--input", "other.csv"})
	if err != nil {
		t.Fatal(err)
	}
	err = config.Load(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if config.Data != "other.csv" {
		t.Errorf("expected input flag to override the file, got %q", config.Data)
	}
	if config.Rules != "redis" || config.Redis.Addr != "localhost:6379" || config.Redis.Prefix != "tomatoes" {
		t.Errorf("unexpected redis settings %+v rules %q", config.Redis, config.Rules)
	}
	if config.forestMode != forest.Dynamic {
		t.Errorf("got forest mode %v", config.forestMode)
	}
	if config.Evaluation.Folds != 4 || config.Evaluation.MinSamples != evaluation.DefaultMinSamples || config.Evaluation.Seed != 7 {
		t.Errorf("unexpected evaluation settings %+v", config.Evaluation)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		err    string
	}{
		{"defaults", Config{Forest: "fixed", Cache: "memory"}, ""},
		{"unknown forest", Config{Forest: "random"}, "forest"},
		{"unknown cache", Config{Forest: "fixed", Cache: "disk"}, "unknown cache"},
		{"redis cache without address", Config{Forest: "fixed", Cache: "redis"}, "redis address"},
		{"redis rules without address", Config{Forest: "fixed", Rules: "redis"}, "redis address"},
		{"one fold", Config{Forest: "fixed", Evaluation: evaluationConfig{Folds: 1}}, "at least 2 folds"},
		{"min samples under folds", Config{Forest: "fixed", Evaluation: evaluationConfig{Folds: 5, MinSamples: 3}}, "min_samples"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rcc := &rootCmdConfig{Config: tt.config}
			err := rcc.Validate()
			if tt.err == "" {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				if rcc.Redis.Prefix != "ripeness" || rcc.Evaluation.Folds != evaluation.DefaultFolds {
					t.Errorf("defaults not applied: %+v", rcc.Config)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.err) {
				t.Errorf("got error %v, want one containing %q", err, tt.err)
			}
		})
	}
}

func TestSelectModel(t *testing.T) {
	models := evaluation.DefaultModels(nil, forest.Fixed)
	selected, err := selectModel(models, evaluation.KNN)
	if err != nil {
		t.Fatal(err)
	}
	if len(selected) != 1 || selected[0].Name() != evaluation.KNN {
		t.Errorf("got %v", selected)
	}
	if _, err = selectModel(models, "svm"); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestFormatEvaluation(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	out := formatEvaluation(&evaluation.Result{Algorithm: evaluation.KNN, Accuracy: 82, Insufficient: true, SampleCount: 4, CalculatedAt: at})
	if !strings.Contains(out, "knn: 82.00% accuracy (default)") || strings.Count(out, "\n") != 1 {
		t.Errorf("unexpected output %q", out)
	}
}

func TestLoadExitCodes(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.yml")
	err := ioutil.WriteFile(broken, []byte("input: [unterminated"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	badForest := filepath.Join(dir, "forest.yml")
	err = ioutil.WriteFile(badForest, []byte("forest: random\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		path string
		want int
	}{
		{"missing file", filepath.Join(dir, "missing.yml"), exitConfig},
		{"unparseable file", broken, exitConfig},
		{"invalid setting", badForest, exitInvalidFlags},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &rootCmdConfig{configPath: tt.path}
			err := config.Load(&cobra.Command{Use: "classify"})
			if err == nil {
				t.Fatal("expected error")
			}
			if got := loadExitCode(err); got != tt.want {
				t.Errorf("got exit code %d, want %d (%v)", got, tt.want, err)
			}
		})
	}
}
