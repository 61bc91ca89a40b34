package main

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/kbstat/gulag/internal/kb"
)

var benchmarkCommand = &cli.Command{
	Name:      "benchmark",
	Aliases:   []string{"bench"},
	Usage:     "run generate at a sequence of worker counts and report iterations/second",
	ArgsUsage: "<layout file>",
	Flags:     flagsSlice("lang", "corpus", "layout1", "weight", "repetitions", "seed"),
	Action:    benchmarkAction,
}

// benchmarkWorkerCounts returns the sequence of worker counts to try: every
// power of 2 up to runtime.NumCPU(), plus runtime.NumCPU() itself and its
// double, each appearing once.
func benchmarkWorkerCounts() []int {
	max := runtime.NumCPU()
	seen := make(map[int]bool)
	var counts []int
	add := func(n int) {
		if n > 0 && !seen[n] {
			seen[n] = true
			counts = append(counts, n)
		}
	}
	for w := 1; w <= max; w *= 2 {
		add(w)
	}
	add(max)
	add(max * 2)
	return counts
}

func benchmarkAction(c *cli.Context) error {
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

	seed := c.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	repetitions := e.cfg.Repetitions
	if repetitions <= 0 {
		repetitions = 1_000_000
	}

	runID := uuid.New()
	fmt.Fprintf(stdout, "benchmark run %s: layout=%s repetitions=%d\n", runID, layout.Name, repetitions)

	var pins kb.Pins
	for _, workers := range benchmarkWorkerCounts() {
		input := layout.Clone()
		input.Shuffle(rand.New(rand.NewSource(seed)))

		params := kb.AnnealParams{Iterations: repetitions, Workers: workers, Seed: seed}

		start := time.Now()
		_, _, err := kb.Anneal(context.Background(), input, &pins, e.tbl, e.reg, params, nil)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		rate := float64(repetitions) / elapsed.Seconds()
		fmt.Fprintf(stdout, "workers=%3d  %12.0f layouts/sec  (%.2fs)\n", workers, rate, elapsed.Seconds())
	}

	return nil
}
