package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/kbstat/gulag/internal/kb"
)

var infoCommand = &cli.Command{
	Name:   "info",
	Usage:  "print the resolved configuration (language, corpus, data paths) and exit",
	Flags:  flagsSlice("lang", "corpus", "weight"),
	Action: infoAction,
}

func infoAction(c *cli.Context) error {
	cfg := kb.DefaultConfig()
	if err := kb.LoadConfigFile("kb.conf", &cfg); err != nil {
		return err
	}
	applyFlagOverrides(c, &cfg)
	paths := kb.DataPaths{Root: dataRoot, Lang: cfg.Lang}

	fmt.Fprintf(stdout, "lang:    %s (%s)\n", cfg.Lang, paths.AlphabetPath())
	fmt.Fprintf(stdout, "corpus:  %s (%s)\n", cfg.Corpus, paths.CorpusPath(cfg.Corpus))
	fmt.Fprintf(stdout, "layouts: %s\n", paths.LayoutsDir())
	if cfg.Weight != "" {
		fmt.Fprintf(stdout, "weight:  %s (%s)\n", cfg.Weight, paths.WeightPath(cfg.Weight))
	}
	fmt.Fprintf(stdout, "threads: %d\n", cfg.Threads)
	fmt.Fprintf(stdout, "output:  %s\n", cfg.OutputMode)
	return nil
}
