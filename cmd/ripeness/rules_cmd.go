package main

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pbanos/ripeness/pkg/bio"
	"github.com/pbanos/ripeness/rule"
	"github.com/pbanos/ripeness/rule/json"
	"github.com/spf13/cobra"
)

type rulesCmdConfig struct {
	*rootCmdConfig
	validate   bool
	exportPath string
	importPath string
}

func rulesCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &rulesCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show, validate, import or export the rule set",
		Long:  `Show the active rule set of the decision tree, validate it, export it to a YML file or import a YML file into the redis or database rule store`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Load(cmd)
			if err != nil {
				fail(loadExitCode(err), err)
			}
			defer config.ContextCancelFunc()()
			b := newBackends(config.rootCmdConfig)
			defer b.Close()
			if config.importPath != "" {
				err = config.importRules(b)
				if err != nil {
					fail(exitBackend, err)
				}
			}
			nodes, err := b.Nodes(config.Context())
			if err != nil {
				fail(exitBackend, err)
			}
			if config.exportPath != "" {
				err = exportRules(config.Context(), config.exportPath, nodes)
				if err != nil {
					fail(exitOutput, err)
				}
				config.Logf("Exported %d nodes to %s", len(nodes), config.exportPath)
			}
			fmt.Print(rule.Render(nodes))
			if config.validate {
				errs := rule.Validate(nodes)
				for _, err := range errs {
					fmt.Fprintln(os.Stderr, err)
				}
				if len(errs) > 0 {
					os.Exit(exitInvalidRules)
				}
				fmt.Println("Rule set is valid")
			}
		},
	}
	cmd.Flags().BoolVar(&(config.validate), "validate", false, "check the rule set for malformed nodes and dangling jumps")
	cmd.Flags().StringVar(&(config.exportPath), "export", "", "path of a YML, or JSON (.json), file to write the active rule set to")
	cmd.Flags().StringVar(&(config.importPath), "import", "", "path of a YML, or JSON (.json), rule set to store on the redis or db rule store, replacing nodes with the same order")
	return cmd
}

func (rcc *rulesCmdConfig) importRules(b *backends) error {
	if rcc.Rules != "redis" && rcc.Rules != "db" {
		return fmt.Errorf("importing rules requires the redis or db rule store, got %q", rcc.Rules)
	}
	nodes, err := readRules(rcc.Context(), rcc.importPath)
	if err != nil {
		return err
	}
	if errs := rule.Validate(nodes); len(errs) > 0 {
		return fmt.Errorf("rule set %s is invalid: %v", rcc.importPath, errs[0])
	}
	ns, err := b.RuleStore(rcc.Context())
	if err != nil {
		return err
	}
	for _, n := range nodes {
		err = ns.Put(rcc.Context(), n)
		if err != nil {
			return fmt.Errorf("storing node #%d: %v", n.Order, err)
		}
	}
	rcc.Logf("Imported %d nodes from %s", len(nodes), rcc.importPath)
	return nil
}

func readRules(ctx context.Context, path string) ([]rule.Node, error) {
	if filepath.Ext(path) != ".json" {
		return bio.ReadYMLRulesFromFile(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rules file %s: %v", path, err)
	}
	defer f.Close()
	ns := rule.NewMemoryNodeStore()
	_, err = json.ReadJSONRules(ctx, ns, json.NewNodeEncodeDecoder(), f)
	if err != nil {
		return nil, fmt.Errorf("reading rules from %s: %v", path, err)
	}
	return ns.ActiveNodes(ctx)
}

func exportRules(ctx context.Context, path string, nodes []rule.Node) error {
	var buf bytes.Buffer
	if filepath.Ext(path) == ".json" {
		err := json.WriteJSONRules(ctx, rule.NewMemoryNodeStore(nodes...), json.NewNodeEncodeDecoder(), &buf)
		if err != nil {
			return err
		}
	} else {
		md, err := bio.WriteYMLRules(nodes)
		if err != nil {
			return err
		}
		buf.Write(md)
	}
	err := ioutil.WriteFile(path, buf.Bytes(), 0644)
	if err != nil {
		return fmt.Errorf("writing rules to %s: %v", path, err)
	}
	return nil
}
