package kb

import (
	"bufio"
	"io"
	"os"
)

// Counters holds raw n-gram event counts over an alphabet of size K,
// indexed by base-K grid-ngram address (see FlattenNgram/UnflattenNgram in
// grid.go, here applied to alphabet indices rather than grid positions).
// Overflow above ~2e9 events per cell is not supported.
type Counters struct {
	K    int
	Mono []uint32   // length K
	Bi   []uint32   // length K^2
	Tri  []uint32   // length K^3
	Quad []uint32   // length K^4
	Skip [MaxSkip][]uint32 // each length K^2, gap d = index+1
}

// NewCounters allocates zeroed counter tables sized for an alphabet of K
// symbols.
func NewCounters(k int) *Counters {
	c := &Counters{K: k}
	c.Mono = make([]uint32, pow(k, 1))
	c.Bi = make([]uint32, pow(k, 2))
	c.Tri = make([]uint32, pow(k, 3))
	c.Quad = make([]uint32, pow(k, 4))
	for d := range c.Skip {
		c.Skip[d] = make([]uint32, pow(k, 2))
	}
	return c
}

func pow(base, exp int) int {
	n := 1
	for range exp {
		n *= base
	}
	return n
}

// flattenIdx folds indices (oldest first) into one base-K address.
func flattenIdx(k int, idx ...int) int {
	a := 0
	for _, i := range idx {
		a = a*k + i
	}
	return a
}

// Collector consumes a stream of Unicode code points and accumulates
// Counters, maintaining a sliding history of the last 11 encoded alphabet
// indices per the corpus-collector algorithm.
type Collector struct {
	alpha *Alphabet
	hist  [11]int
	c     *Counters
}

// NewCollector creates a Collector over the given alphabet, with a fresh,
// all-invalid history.
func NewCollector(alpha *Alphabet) *Collector {
	col := &Collector{alpha: alpha, c: NewCounters(alpha.Len())}
	for i := range col.hist {
		col.hist[i] = -1
	}
	return col
}

// Counters returns the accumulated counters. Valid at any point during or
// after feeding; it is not reset by further Feed calls.
func (col *Collector) Counters() *Counters {
	return col.c
}

// Feed processes one code point: shifts the history, encodes the new code
// point into slot 0, and on a valid non-space index increments mono, the
// 2..4-grams anchored at slot 0, and all nine skipgrams anchored at slot 0.
func (col *Collector) Feed(r rune) {
	for i := len(col.hist) - 1; i > 0; i-- {
		col.hist[i] = col.hist[i-1]
	}
	col.hist[0] = col.alpha.Encode(r)

	k := col.alpha.Len()
	s0 := col.hist[0]
	if s0 <= 0 || s0 >= k {
		return // space (0) or not-in-alphabet (-1) is never itself counted
	}

	col.c.Mono[s0]++

	for d := 1; d <= 3; d++ {
		valid := true
		for i := 0; i <= d; i++ {
			if col.hist[i] <= 0 || col.hist[i] >= k {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}
		switch d {
		case 1:
			col.c.Bi[flattenIdx(k, col.hist[1], col.hist[0])]++
		case 2:
			col.c.Tri[flattenIdx(k, col.hist[2], col.hist[1], col.hist[0])]++
		case 3:
			col.c.Quad[flattenIdx(k, col.hist[3], col.hist[2], col.hist[1], col.hist[0])]++
		}
	}

	for d := 1; d <= MaxSkip; d++ {
		other := col.hist[d+1]
		if other <= 0 || other >= k {
			continue
		}
		col.c.Skip[d-1][flattenIdx(k, other, s0)]++
	}
}

// FeedString feeds every rune of s in order.
func (col *Collector) FeedString(s string) {
	for _, r := range s {
		col.Feed(r)
	}
}

// FeedReader feeds every rune read from r, propagating any read error
// other than io.EOF.
func (col *Collector) FeedReader(r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		cp, _, err := br.ReadRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		col.Feed(cp)
	}
}

// FeedFile opens path and feeds its full contents to the collector.
func (col *Collector) FeedFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer CloseFile(file)
	return col.FeedReader(file)
}
