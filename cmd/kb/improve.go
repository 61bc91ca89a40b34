package main

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/kbstat/gulag/internal/kb"
)

var improveCommand = &cli.Command{
	Name:      "improve",
	Aliases:   []string{"i"},
	Usage:     "anneal a layout in place, honoring the configured pin mask",
	ArgsUsage: "<layout file>",
	Flags:     flagsSlice("lang", "corpus", "layout1", "weight", "pins", "repetitions", "threads", "seed", "output"),
	Action:    improveAction,
}

func improveAction(c *cli.Context) error {
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

	// --pins on the command line names a pins file; the config file's own
	// pins: line is the inline §6 mask. A CLI flag takes precedence over
	// the config file, the same as every other overridable setting.
	mask, pinsPath := "", ""
	if c.IsSet("pins") {
		pinsPath = e.paths.PinsPath(c.String("pins"))
	} else {
		mask = e.cfg.Pins
	}
	pins, err := kb.LoadPinsFromParams(e.alpha, layout, mask, pinsPath, "", "")
	if err != nil {
		return err
	}

	seed := c.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return runAnneal(c, e, layout, pins, seed)
}
