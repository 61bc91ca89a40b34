package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/kbstat/gulag/internal/kb"
	"github.com/kbstat/gulag/internal/kb/report"
)

var generateCommand = &cli.Command{
	Name:      "generate",
	Aliases:   []string{"g"},
	Usage:     "shuffle a layout's alphabet and anneal from scratch, ignoring pins",
	ArgsUsage: "<layout file>",
	Flags:     flagsSlice("lang", "corpus", "layout1", "weight", "repetitions", "threads", "seed", "output"),
	Action:    generateAction,
}

func generateAction(c *cli.Context) error {
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
	seed := c.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	layout, err := e.loadLayout(name)
	if err != nil {
		return err
	}
	layout.Shuffle(rand.New(rand.NewSource(seed)))

	var pins kb.Pins // all false: nothing pinned

	return runAnneal(c, e, layout, &pins, seed)
}

func runAnneal(c *cli.Context, e *env, input *kb.Layout, pins *kb.Pins, seed int64) error {
	params := kb.AnnealParams{
		Iterations: e.cfg.Repetitions,
		Workers:    e.cfg.Threads,
		Seed:       seed,
	}
	if params.Iterations <= 0 {
		params.Iterations = 1_000_000
	}
	if params.Workers <= 0 {
		params.Workers = 1
	}

	best, sc, err := kb.Anneal(context.Background(), input, pins, e.tbl, e.reg, params, stdout)
	if err != nil {
		return err
	}

	v, err := resolveVerbosity(c)
	if err != nil {
		return err
	}
	report.RenderScore(stdout, e.alpha, best, e.reg, sc, v)
	return nil
}
