package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kbstat/gulag/internal/kb"
	"github.com/kbstat/gulag/internal/kb/report"
)

// env bundles the objects every mode needs: the alphabet, the normalized
// frequency tables, and the statistic registry.
type env struct {
	cfg   kb.Config
	paths kb.DataPaths
	alpha *kb.Alphabet
	tbl   *kb.Tables
	reg   *kb.Registry
}

func loadEnv(c *cli.Context) (*env, error) {
	cfg := kb.DefaultConfig()
	if err := kb.LoadConfigFile("kb.conf", &cfg); err != nil {
		return nil, err
	}
	applyFlagOverrides(c, &cfg)

	paths := kb.DataPaths{Root: dataRoot, Lang: cfg.Lang}

	alpha, err := kb.LoadAlphabet(paths.AlphabetPath())
	if err != nil {
		return nil, err
	}

	counters, err := kb.LoadOrBuildCorpus(alpha, paths.CorpusPath(cfg.Corpus))
	if err != nil {
		return nil, err
	}
	tbl := kb.Normalize(counters)

	reg, err := kb.BuildRegistry()
	if err != nil {
		return nil, err
	}
	if cfg.Weight != "" {
		if err := reg.LoadWeights(paths.WeightPath(cfg.Weight)); err != nil {
			return nil, err
		}
	}
	reg.Clean()

	return &env{cfg: cfg, paths: paths, alpha: alpha, tbl: tbl, reg: reg}, nil
}

// applyFlagOverrides copies any explicitly-set CLI flag over the config
// value it corresponds to, per the external-interfaces precedence rule.
func applyFlagOverrides(c *cli.Context, cfg *kb.Config) {
	if c.IsSet("lang") {
		cfg.Lang = c.String("lang")
	}
	if c.IsSet("corpus") {
		cfg.Corpus = c.String("corpus")
	}
	if c.IsSet("layout1") {
		cfg.Layout = c.String("layout1")
	}
	if c.IsSet("layout2") {
		cfg.Layout2 = c.String("layout2")
	}
	if c.IsSet("weight") {
		cfg.Weight = c.String("weight")
	}
	if c.IsSet("pins") {
		cfg.Pins = c.String("pins")
	}
	if c.IsSet("repetitions") {
		cfg.Repetitions = c.Int("repetitions")
	}
	if c.IsSet("threads") {
		cfg.Threads = c.Int("threads")
	}
	if c.IsSet("output") {
		cfg.OutputMode = c.String("output")
	}
	if c.IsSet("backend") {
		cfg.BackendMode = c.String("backend")
	}
}

func (e *env) loadLayout(name string) (*kb.Layout, error) {
	if name == "" {
		return nil, fmt.Errorf("layout file is required: %w", kb.ErrConfigMissing)
	}
	return kb.LoadLayoutFromFile(e.alpha, name, e.paths.LayoutPath(name))
}

func resolveVerbosity(c *cli.Context) (report.Verbosity, error) {
	mode := c.String("output")
	if mode == "" {
		mode = "normal"
	}
	canonical, err := kb.NormalizeOutputMode(mode)
	if err != nil {
		return 0, err
	}
	return report.ParseVerbosity(canonical), nil
}

func requireArg(c *cli.Context, n int, what string) (string, error) {
	if c.Args().Len() <= n {
		return "", fmt.Errorf("%s is required: %w", what, kb.ErrConfigMissing)
	}
	return c.Args().Get(n), nil
}

var stdout = os.Stdout
