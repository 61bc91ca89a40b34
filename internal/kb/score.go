package kb

import "math/rand"

// Layout assigns an alphabet index (or -1 for unused) to each of the 36
// grid positions.
type Layout struct {
	Name  string
	Cells [NumPos]int32 // -1 = unused
}

// Clone returns an independent copy of the layout.
func (l *Layout) Clone() *Layout {
	out := *l
	return &out
}

// Swap exchanges the occupants of two positions.
func (l *Layout) Swap(a, b Pos) {
	l.Cells[a], l.Cells[b] = l.Cells[b], l.Cells[a]
}

// Shuffle randomizes the occupants among l's occupied positions in place,
// via Fisher-Yates, keeping unused positions unused.
func (l *Layout) Shuffle(rng *rand.Rand) {
	var occupied []Pos
	for p := Pos(0); p < NumPos; p++ {
		if l.Cells[p] >= 0 {
			occupied = append(occupied, p)
		}
	}
	for i := len(occupied) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		l.Swap(occupied[i], occupied[j])
	}
}

// Score holds the result of evaluating a layout: a per-statistic score
// for scalar (mono/bi/tri/quad) and meta stats, the raw per-gap vector for
// skipgrams (which have no PerStat entry), and the weighted aggregate.
type Score struct {
	PerStat     map[string]float32
	PerStatSkip map[string][MaxSkip]float32
	Total       float32
}

// Evaluate scores a layout against normalized frequency tables using the
// registry's non-skipped statistics. Accumulation order is deterministic:
// family order (mono, bi, tri, quad, skip), then Ngrams order, then gap
// order for skipgrams; meta stats are evaluated last.
func Evaluate(l *Layout, t *Tables, r *Registry) Score {
	sc := Score{
		PerStat:     make(map[string]float32),
		PerStatSkip: make(map[string][MaxSkip]float32),
	}

	scoreFamily := func(stats []Stat, arity int, table []float32) {
		for _, s := range stats {
			if s.Skip {
				continue
			}
			sc.PerStat[s.Name] = scoreNgrams(s.Ngrams, arity, l, t.K, table)
		}
	}
	scoreFamily(r.Mono, 1, t.Mono)
	scoreFamily(r.Bi, 2, t.Bi)
	scoreFamily(r.Tri, 3, t.Tri)
	scoreFamily(r.Quad, 4, t.Quad)

	for _, s := range r.Skip {
		if s.Skip {
			continue
		}
		var vec [MaxSkip]float32
		for d := 0; d < MaxSkip; d++ {
			vec[d] = scoreNgrams(s.Ngrams, 2, l, t.K, t.Skip[d])
		}
		sc.PerStatSkip[s.Name] = vec
	}

	lookup := func(tag StatTag, idx int) float32 {
		switch tag {
		case TagMono:
			return sc.PerStat[r.Mono[idx].Name]
		case TagBi:
			return sc.PerStat[r.Bi[idx].Name]
		case TagTri:
			return sc.PerStat[r.Tri[idx].Name]
		case TagQuad:
			return sc.PerStat[r.Quad[idx].Name]
		case TagSkip:
			vec := sc.PerStatSkip[r.Skip[idx].Name]
			var sum float32
			for d := 0; d < MaxSkip; d++ {
				sum += vec[d] * r.Skip[idx].SkipWeights[d]
			}
			return sum
		}
		return 0
	}

	for _, m := range r.Meta {
		if m.Skip {
			continue
		}
		var val float32
		for _, term := range m.Meta {
			val += lookup(term.Tag, term.Index) * term.Coef
		}
		if m.AbsV && val < 0 {
			val = -val
		}
		sc.PerStat[m.Name] = val
	}

	var total float32
	for _, s := range r.Mono {
		if !s.Skip {
			total += sc.PerStat[s.Name] * s.Weight
		}
	}
	for _, s := range r.Bi {
		if !s.Skip {
			total += sc.PerStat[s.Name] * s.Weight
		}
	}
	for _, s := range r.Tri {
		if !s.Skip {
			total += sc.PerStat[s.Name] * s.Weight
		}
	}
	for _, s := range r.Quad {
		if !s.Skip {
			total += sc.PerStat[s.Name] * s.Weight
		}
	}
	for _, s := range r.Skip {
		if s.Skip {
			continue
		}
		vec := sc.PerStatSkip[s.Name]
		for d := 0; d < MaxSkip; d++ {
			total += vec[d] * s.SkipWeights[d]
		}
	}
	for _, m := range r.Meta {
		if !m.Skip {
			total += sc.PerStat[m.Name] * m.Weight
		}
	}
	sc.Total = total

	return sc
}

// scoreNgrams sums table values over every grid-ngram in ngrams whose
// positions are all occupied in l, decoding each to the frequency-table
// address via the layout's alphabet-index assignment.
func scoreNgrams(ngrams []int32, arity int, l *Layout, k int, table []float32) float32 {
	var sum float32
	for _, g := range ngrams {
		positions := UnflattenNgram(arity, int(g))
		addr := 0
		occupied := true
		for _, p := range positions {
			cell := l.Cells[p]
			if cell < 0 {
				occupied = false
				break
			}
			addr = addr*k + int(cell)
		}
		if !occupied {
			continue
		}
		sum += table[addr]
	}
	return sum
}

// Diff subtracts b's per-statistic scores from a's, per statistic name;
// Diff(a,b).Total = a.Total - b.Total, so diff(a,b) = -diff(b,a) and
// diff(a,a) is all zero.
func Diff(a, b Score) Score {
	out := Score{
		PerStat:     make(map[string]float32, len(a.PerStat)),
		PerStatSkip: make(map[string][MaxSkip]float32, len(a.PerStatSkip)),
		Total:       a.Total - b.Total,
	}
	for name, av := range a.PerStat {
		out.PerStat[name] = av - b.PerStat[name]
	}
	for name, av := range a.PerStatSkip {
		var d [MaxSkip]float32
		bv := b.PerStatSkip[name]
		for i := range d {
			d[i] = av[i] - bv[i]
		}
		out.PerStatSkip[name] = d
	}
	return out
}

// DiffLayout returns a layout whose cell at p holds a's (and b's) common
// occupant when they agree, or -1 where they differ.
func DiffLayout(a, b *Layout) *Layout {
	out := &Layout{Name: a.Name + "-vs-" + b.Name}
	for p := Pos(0); p < NumPos; p++ {
		if a.Cells[p] == b.Cells[p] {
			out.Cells[p] = a.Cells[p]
		} else {
			out.Cells[p] = -1
		}
	}
	return out
}
