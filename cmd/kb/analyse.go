package main

import (
	"github.com/urfave/cli/v2"

	"github.com/kbstat/gulag/internal/kb"
	"github.com/kbstat/gulag/internal/kb/report"
)

var analyzeCommand = &cli.Command{
	Name:      "analyze",
	Aliases:   []string{"analyse", "a"},
	Usage:     "load one layout, score it, and report",
	ArgsUsage: "<layout file>",
	Flags:     flagsSlice("lang", "corpus", "layout1", "weight", "output"),
	Action:    analyzeAction,
}

func analyzeAction(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	name := c.String("layout1")
	if name == "" {
		name, err = requireArg(c, 0, "layout file")
		if err != nil {
			return err
		}
	}

	layout, err := e.loadLayout(name)
	if err != nil {
		return err
	}

	v, err := resolveVerbosity(c)
	if err != nil {
		return err
	}

	sc := kb.Evaluate(layout, e.tbl, e.reg)
	report.RenderScore(stdout, e.alpha, layout, e.reg, sc, v)
	return nil
}
