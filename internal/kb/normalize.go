package kb

// Tables holds corpus frequencies normalized to a percentage of their
// n-gram class's total, so layouts scored against different corpora remain
// comparable regardless of absolute corpus size.
type Tables struct {
	K    int
	Mono []float32
	Bi   []float32
	Tri  []float32
	Quad []float32
	Skip [MaxSkip][]float32
}

// Normalize scales each n-gram class of c to percentages (x*100/total),
// each skip gap scaled independently against its own total. A class whose
// total is zero is left all-zero.
func Normalize(c *Counters) *Tables {
	t := &Tables{K: c.K}
	t.Mono = normalizeClass(c.Mono)
	t.Bi = normalizeClass(c.Bi)
	t.Tri = normalizeClass(c.Tri)
	t.Quad = normalizeClass(c.Quad)
	for d := range c.Skip {
		t.Skip[d] = normalizeClass(c.Skip[d])
	}
	return t
}

func normalizeClass(counts []uint32) []float32 {
	out := make([]float32, len(counts))
	var total uint64
	for _, n := range counts {
		total += uint64(n)
	}
	if total == 0 {
		return out
	}
	scale := float32(100) / float32(total)
	for i, n := range counts {
		out[i] = float32(n) * scale
	}
	return out
}
