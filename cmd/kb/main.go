// Package main provides the CLI entrypoint for the kb command-line tool.
//
// analyse.go implements the "analyze" mode: load one layout, score it, and
// report it at the configured verbosity.
//
// compare.go implements the "compare" mode: score two layouts and report
// their per-statistic and aggregate delta alongside a diff layout.
//
// rank.go implements the "rank" mode: score every layout in a language's
// layout directory and print them in descending order.
//
// generate.go and improve.go both hand a layout to the annealing optimizer,
// the former starting from a shuffled matrix with no pins, the latter
// honoring the configured pin mask.
//
// benchmark.go runs generate at a sequence of worker counts and reports
// iterations per second at each.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// dataRoot is the on-disk root all language, corpus, layout, weight, and
// pins files resolve beneath; see kb.DataPaths.
const dataRoot = "data"

// appFlagsMap centralizes flag definitions so each mode command can select
// only the flags relevant to it.
var appFlagsMap = map[string]cli.Flag{
	"lang": &cli.StringFlag{
		Name:    "lang",
		Aliases: []string{"l"},
		Usage:   "language directory under data/ providing the alphabet and layouts",
	},
	"corpus": &cli.StringFlag{
		Name:    "corpus",
		Aliases: []string{"c"},
		Usage:   "corpus file (under data/<lang>/corpora/) to score against",
	},
	"layout1": &cli.StringFlag{
		Name:    "layout1",
		Aliases: []string{"1"},
		Usage:   "first layout file (under data/<lang>/layouts/)",
	},
	"layout2": &cli.StringFlag{
		Name:    "layout2",
		Aliases: []string{"2"},
		Usage:   "second layout file, for compare mode",
	},
	"weight": &cli.StringFlag{
		Name:    "weight",
		Aliases: []string{"w"},
		Usage:   "weight file (under data/weights/) scoring the statistic catalog",
	},
	"pins": &cli.StringFlag{
		Name:    "pins",
		Aliases: []string{"p"},
		Usage:   "pins file (under data/pins/); default pins every unused position",
	},
	"repetitions": &cli.IntFlag{
		Name:    "repetitions",
		Aliases: []string{"r"},
		Usage:   "total annealing iterations, split evenly across workers",
	},
	"threads": &cli.IntFlag{
		Name:    "threads",
		Aliases: []string{"t"},
		Usage:   "number of parallel annealing workers",
	},
	"output": &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "verbosity: quiet, normal, or verbose",
	},
	"backend": &cli.StringFlag{
		Name:    "backend",
		Aliases: []string{"b"},
		Usage:   "scoring backend (reserved for future hardware-accelerated backends)",
	},
	"seed": &cli.Int64Flag{
		Name:  "seed",
		Usage: "base RNG seed; 0 derives a seed from the current time",
	},
}

func flagsSlice(keys ...string) []cli.Flag {
	flags := make([]cli.Flag, 0, len(keys))
	for _, k := range keys {
		if f, ok := appFlagsMap[k]; ok {
			flags = append(flags, f)
		}
	}
	return flags
}

func main() {
	app := &cli.App{
		Name:  "kb",
		Usage: "score and optimize keyboard layouts against corpus n-gram statistics",
		Commands: []*cli.Command{
			analyzeCommand,
			compareCommand,
			rankCommand,
			generateCommand,
			improveCommand,
			benchmarkCommand,
			infoCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
