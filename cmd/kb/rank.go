package main

import (
	"github.com/urfave/cli/v2"

	"github.com/kbstat/gulag/internal/kb"
	"github.com/kbstat/gulag/internal/kb/report"
)

var rankCommand = &cli.Command{
	Name:    "rank",
	Aliases: []string{"r"},
	Usage:   "score every layout in the language's layout directory and print them descending",
	Flags:   flagsSlice("lang", "corpus", "weight"),
	Action:  rankAction,
}

func rankAction(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	ranked, err := kb.RankDirectory(e.alpha, e.paths.LayoutsDir(), e.tbl, e.reg)
	if err != nil {
		return err
	}

	report.RenderRanking(stdout, ranked)
	return nil
}
