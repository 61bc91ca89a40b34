package main

import (
	"github.com/urfave/cli/v2"

	"github.com/kbstat/gulag/internal/kb"
	"github.com/kbstat/gulag/internal/kb/report"
)

var compareCommand = &cli.Command{
	Name:      "compare",
	Aliases:   []string{"c"},
	Usage:     "score two layouts and report their diff",
	ArgsUsage: "<layout1 file> <layout2 file>",
	Flags:     flagsSlice("lang", "corpus", "layout1", "layout2", "weight", "output"),
	Action:    compareAction,
}

func compareAction(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	name1 := c.String("layout1")
	if name1 == "" {
		name1, err = requireArg(c, 0, "first layout file")
		if err != nil {
			return err
		}
	}
	name2 := c.String("layout2")
	if name2 == "" {
		name2, err = requireArg(c, 1, "second layout file")
		if err != nil {
			return err
		}
	}

	layoutA, err := e.loadLayout(name1)
	if err != nil {
		return err
	}
	layoutB, err := e.loadLayout(name2)
	if err != nil {
		return err
	}

	scoreA := kb.Evaluate(layoutA, e.tbl, e.reg)
	scoreB := kb.Evaluate(layoutB, e.tbl, e.reg)

	diffLayout := kb.DiffLayout(layoutA, layoutB)
	diff := kb.Diff(scoreA, scoreB)

	report.RenderDiff(stdout, e.alpha, diffLayout, diff)
	return nil
}
