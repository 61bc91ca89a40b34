package kb

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// AnnealParams configures a simulated-annealing run. Zero-value fields are
// filled with the normative defaults by DefaultAnnealParams.
type AnnealParams struct {
	Iterations int
	Workers    int
	Seed       int64

	InitialTemp         float32
	InitialSwapFraction  float32 // of NumPos, rounded down
	AdaptiveCoolWindow  int     // iterations; default Iterations/20
	AdaptiveCoolThresh  float32 // improvements/iter; default 0.2
	ReheatCadence       int     // iterations; default Iterations/10
	JoltCadence         int     // iterations; default Iterations/50
	TempFloor           float32
	MaxTempCeiling      float32
}

// DefaultAnnealParams fills in the normative defaults for any zero field.
func DefaultAnnealParams(p AnnealParams) AnnealParams {
	if p.Workers <= 0 {
		p.Workers = 1
	}
	if p.InitialTemp == 0 {
		p.InitialTemp = 1000
	}
	if p.InitialSwapFraction == 0 {
		p.InitialSwapFraction = 0.5
	}
	if p.AdaptiveCoolWindow == 0 {
		p.AdaptiveCoolWindow = max(1, p.Iterations/20)
	}
	if p.AdaptiveCoolThresh == 0 {
		p.AdaptiveCoolThresh = 0.2
	}
	if p.ReheatCadence == 0 {
		p.ReheatCadence = max(1, p.Iterations/10)
	}
	if p.JoltCadence == 0 {
		p.JoltCadence = max(1, p.Iterations/50)
	}
	if p.TempFloor == 0 {
		p.TempFloor = 1.0
	}
	if p.MaxTempCeiling == 0 {
		p.MaxTempCeiling = 1500
	}
	return p
}

// workerState holds one annealing worker's exclusively-owned state. No
// field here is ever read or written by another worker.
//
// current/currentScore is the accepted-move anchor the Δ comparison runs
// against; it can regress, since the logistic rule accepts worse moves at
// Δ≤0 to escape local optima (mirroring the original's max_lt). best/
// bestScore is a separate, strictly monotonic best-ever-seen tracker
// updated independently of acceptance, so the value Anneal ultimately
// returns never regresses mid-run.
type workerState struct {
	id                     int
	working, current, best *Layout
	currentScore           float32
	bestScore              float32
	t, maxT                float32
	improvements           int
	rng                    *rand.Rand
}

// swapRecord lets a rejected move be undone in reverse order.
type swapRecord struct{ a, b Pos }

// Anneal runs p.Workers independent annealing workers, each for
// floor(p.Iterations/p.Workers) iterations starting from input, honoring
// pins. It returns the highest-scoring worker's best layout, ties
// resolved to the lower worker id. A panic inside any worker is recovered
// at the goroutine boundary and returned as an error, aborting the run
// with no partial results.
func Anneal(ctx context.Context, input *Layout, pins *Pins, t *Tables, reg *Registry, p AnnealParams, progress io.Writer) (*Layout, Score, error) {
	p = DefaultAnnealParams(p)
	if p.Iterations <= 0 || p.Workers <= 0 {
		return nil, Score{}, fmt.Errorf("%w: iterations and workers must be positive", ErrConfigInvalid)
	}

	free := freePositions(pins)
	if len(free) < 2 {
		sc := Evaluate(input, t, reg)
		return input.Clone(), sc, nil
	}

	perWorker := p.Iterations / p.Workers
	results := make([]*workerState, p.Workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := range p.Workers {
		w := w
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("annealing worker %d panicked: %v", w, r)
				}
			}()
			ws := newWorkerState(w, input, p)
			runWorker(gctx, ws, free, pins, t, reg, p, perWorker, progress)
			results[w] = ws
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Score{}, err
	}

	best := results[0]
	for _, ws := range results[1:] {
		if ws.bestScore > best.bestScore {
			best = ws
		}
	}

	for p, pinned := range pins {
		if pinned && best.best.Cells[p] != input.Cells[p] {
			return nil, Score{}, ErrOptimizerInvariantViolated
		}
	}

	return best.best, Evaluate(best.best, t, reg), nil
}

func newWorkerState(id int, input *Layout, p AnnealParams) *workerState {
	seed := p.Seed ^ int64(id)<<32 ^ int64(id)
	return &workerState{
		id:      id,
		working: input.Clone(),
		current: input.Clone(),
		best:    input.Clone(),
		t:       p.InitialTemp,
		maxT:    p.InitialTemp,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func freePositions(pins *Pins) []Pos {
	var free []Pos
	for p, pinned := range pins {
		if !pinned {
			free = append(free, Pos(p))
		}
	}
	return free
}

func runWorker(ctx context.Context, ws *workerState, free []Pos, pins *Pins, t *Tables, reg *Registry, p AnnealParams, iterations int, progress io.Writer) {
	initialSwapCount := max(1, int(float32(NumPos)*p.InitialSwapFraction))
	ws.currentScore = Evaluate(ws.current, t, reg).Total
	ws.bestScore = ws.currentScore

	for i := range iterations {
		ws.step(i, iterations, initialSwapCount, free, t, reg, p)

		if ws.id == 0 && progress != nil && i%100 == 0 {
			MustFprintf(progress, "\r%3.0f%%  best=%+.4f", 100*float64(i)/float64(iterations), ws.bestScore)
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}

	if ws.id == 0 && progress != nil {
		MustFprintf(progress, "\r100%%  best=%+.4f\n", ws.bestScore)
	}
}

// step runs one iteration's worth of the annealing protocol against ws:
// swap, score, accept-or-revert, then the temperature schedule. Split out
// from runWorker's loop so the best-ever tracker can be exercised directly
// across repeated calls in tests.
func (ws *workerState) step(i, iterations, initialSwapCount int, free []Pos, t *Tables, reg *Registry, p AnnealParams) {
	swapCount := clampInt(roundToInt(float32(initialSwapCount)*ws.t/ws.maxT), 1, initialSwapCount)

	swaps := make([]swapRecord, 0, swapCount)
	for range swapCount {
		a, b := pickSwapPair(ws.rng, free)
		ws.working.Swap(a, b)
		swaps = append(swaps, swapRecord{a, b})
	}

	score := Evaluate(ws.working, t, reg).Total

	// best/bestScore is snapshotted from the proposed layout before the
	// revert below can undo it. It never falls below currentScore, so a
	// new best always coincides with an accepted move --
	// but the snapshot happens first regardless, to keep this tracker's
	// correctness independent of the acceptance branch below.
	if score > ws.bestScore {
		ws.best = ws.working.Clone()
		ws.bestScore = score
	}

	delta := score - ws.currentScore

	accept := delta > 0
	if !accept {
		accept = ws.rng.Float64() < logistic(10*float64(delta)/float64(ws.t))
	}

	if accept {
		ws.current = ws.working.Clone()
		ws.currentScore = score
		ws.improvements++
	} else {
		for j := len(swaps) - 1; j >= 0; j-- {
			ws.working.Swap(swaps[j].a, swaps[j].b)
		}
	}

	if p.AdaptiveCoolWindow > 0 && (i+1)%p.AdaptiveCoolWindow == 0 {
		rate := float32(ws.improvements) / float32(p.AdaptiveCoolWindow)
		if rate > p.AdaptiveCoolThresh {
			ws.maxT *= 0.95
		} else {
			ws.maxT *= 1.05
		}
		ws.maxT = clampFloat(ws.maxT, p.InitialTemp, p.MaxTempCeiling)
		ws.improvements = 0
	}

	if p.ReheatCadence > 0 && (i+1)%p.ReheatCadence == 0 {
		ws.t = ws.maxT
	}

	if p.JoltCadence > 0 && (i+1)%p.JoltCadence == 0 {
		ws.t = clampFloat(ws.t*(1+float32(ws.rng.Float64())*0.3), 0, ws.maxT)
	}

	ws.t = ws.maxT * (1 - float32(i)/float32(iterations))
	if ws.t < p.TempFloor {
		ws.t = p.TempFloor
	}
}

// pickSwapPair returns two distinct free positions, rejecting equal pairs.
// Pins are already excluded by construction of `free`.
func pickSwapPair(rng *rand.Rand, free []Pos) (Pos, Pos) {
	a := free[rng.Intn(len(free))]
	b := a
	for b == a {
		b = free[rng.Intn(len(free))]
	}
	return a, b
}

func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func roundToInt(f float32) int {
	return int(math.Round(float64(f)))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
