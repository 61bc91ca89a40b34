package kb

// handNames and rowNames give the canonical labels for the per-hand and
// per-row monogram stats.
var handNames = [2]string{"hand-left", "hand-right"}
var rowNames = [Rows]string{"row-0", "row-1", "row-2"}

func enumerateMono(pred func(Pos) bool) []int32 {
	var out []int32
	for p := Pos(0); p < NumPos; p++ {
		if pred(p) {
			out = append(out, int32(p))
		}
	}
	return out
}

func enumerateBi(pred func(a, b Pos) bool) []int32 {
	var out []int32
	for a := Pos(0); a < NumPos; a++ {
		for b := Pos(0); b < NumPos; b++ {
			if pred(a, b) {
				out = append(out, int32(FlattenNgram([]Pos{a, b})))
			}
		}
	}
	return out
}

func enumerateTri(pred func([3]Pos) bool) []int32 {
	var out []int32
	for a := Pos(0); a < NumPos; a++ {
		for b := Pos(0); b < NumPos; b++ {
			for c := Pos(0); c < NumPos; c++ {
				ps := [3]Pos{a, b, c}
				if pred(ps) {
					out = append(out, int32(FlattenNgram(ps[:])))
				}
			}
		}
	}
	return out
}

func enumerateQuad(pred func([4]Pos) bool) []int32 {
	var out []int32
	for a := Pos(0); a < NumPos; a++ {
		for b := Pos(0); b < NumPos; b++ {
			for c := Pos(0); c < NumPos; c++ {
				for d := Pos(0); d < NumPos; d++ {
					ps := [4]Pos{a, b, c, d}
					if pred(ps) {
						out = append(out, int32(FlattenNgram(ps[:])))
					}
				}
			}
		}
	}
	return out
}

// monoCatalog builds the per-column, per-finger, per-hand, per-row
// monogram statistics.
func monoCatalog() []Stat {
	var stats []Stat
	for col := range Cols {
		col := col
		stats = append(stats, Stat{
			Name:   colStatName(col),
			Tag:    TagMono,
			Ngrams: enumerateMono(func(p Pos) bool { return Col(p) == col }),
		})
	}
	for f := range 8 {
		f := f
		stats = append(stats, Stat{
			Name:   fingerStatName(f),
			Tag:    TagMono,
			Ngrams: enumerateMono(func(p Pos) bool { return Finger(p) == f }),
		})
	}
	for h := range 2 {
		h := h
		stats = append(stats, Stat{
			Name:   handNames[h],
			Tag:    TagMono,
			Ngrams: enumerateMono(func(p Pos) bool { return Hand(p) == h }),
		})
	}
	for row := range Rows {
		row := row
		stats = append(stats, Stat{
			Name:   rowNames[row],
			Tag:    TagMono,
			Ngrams: enumerateMono(func(p Pos) bool { return Row(p) == row }),
		})
	}
	return stats
}

func colStatName(col int) string {
	names := [Cols]string{
		"col-0", "col-1", "col-2", "col-3", "col-4", "col-5",
		"col-6", "col-7", "col-8", "col-9", "col-10", "col-11",
	}
	return names[col]
}

func fingerStatName(f int) string {
	names := [8]string{
		"finger-lp", "finger-lr", "finger-lm", "finger-li",
		"finger-ri", "finger-rm", "finger-rr", "finger-rp",
	}
	return names[f]
}

// biCatalog builds the bigram statistics shared between the plain bigram
// family and (by weight shape alone) the skipgram family.
func biCatalog() []Stat {
	var stats []Stat

	stats = append(stats, Stat{
		Name:   "sfb",
		Tag:    TagBi,
		Ngrams: enumerateBi(SameFinger),
	})
	for f := range 8 {
		f := f
		stats = append(stats, Stat{
			Name: "sfb-" + fingerSuffix(f),
			Tag:  TagBi,
			Ngrams: enumerateBi(func(a, b Pos) bool {
				return SameFinger(a, b) && Finger(a) == f
			}),
		})
	}
	stats = append(stats, Stat{
		Name:   "bad-sfb",
		Tag:    TagBi,
		Ngrams: enumerateBi(BadSameFinger),
	})
	for f := range 8 {
		f := f
		stats = append(stats, Stat{
			Name: "bad-sfb-" + fingerSuffix(f),
			Tag:  TagBi,
			Ngrams: enumerateBi(func(a, b Pos) bool {
				return BadSameFinger(a, b) && Finger(a) == f
			}),
		})
	}
	stats = append(stats, Stat{Name: "full-russor", Tag: TagBi, Ngrams: enumerateBi(Russor)})
	stats = append(stats, Stat{Name: "half-russor", Tag: TagBi, Ngrams: enumerateBi(HalfRussor)})
	stats = append(stats, Stat{Name: "index-stretch", Tag: TagBi, Ngrams: enumerateBi(IndexStretch)})
	stats = append(stats, Stat{Name: "pinky-stretch", Tag: TagBi, Ngrams: enumerateBi(PinkyStretch)})

	return stats
}

func fingerSuffix(f int) string {
	names := [8]string{"lp", "lr", "lm", "li", "ri", "rm", "rr", "rp"}
	return names[f]
}

// triCatalog builds the trigram statistics, including the same-row,
// adjacent-finger and combined roll variants.
func triCatalog() []Stat {
	var stats []Stat

	stats = append(stats, Stat{Name: "sft", Tag: TagTri, Ngrams: enumerateTri(func(ps [3]Pos) bool {
		return SameFinger(ps[0], ps[1]) && SameFinger(ps[1], ps[2])
	})})
	stats = append(stats, Stat{Name: "alternation", Tag: TagTri, Ngrams: enumerateTri(Alternation)})
	stats = append(stats, Stat{Name: "redirect", Tag: TagTri, Ngrams: enumerateTri(Redirect)})
	stats = append(stats, Stat{Name: "bad-redirect", Tag: TagTri, Ngrams: enumerateTri(BadRedirect)})

	stats = append(stats, Stat{Name: "one-hand", Tag: TagTri, Ngrams: enumerateTri(OneHand)})
	stats = append(stats, Stat{Name: "one-hand-in", Tag: TagTri, Ngrams: enumerateTri(func(ps [3]Pos) bool {
		if !OneHand(ps) {
			return false
		}
		in, _ := rollDirection(Hand(ps[0]), Finger(ps[0]), Finger(ps[2]))
		return in
	})})
	stats = append(stats, Stat{Name: "one-hand-out", Tag: TagTri, Ngrams: enumerateTri(func(ps [3]Pos) bool {
		if !OneHand(ps) {
			return false
		}
		_, out := rollDirection(Hand(ps[0]), Finger(ps[0]), Finger(ps[2]))
		return out
	})})

	stats = append(stats, Stat{Name: "redirect-same-row", Tag: TagTri, Ngrams: enumerateTri(func(ps [3]Pos) bool {
		return Redirect(ps) && TrigramSameRow(ps)
	})})
	stats = append(stats, Stat{Name: "one-hand-same-row", Tag: TagTri, Ngrams: enumerateTri(func(ps [3]Pos) bool {
		return OneHand(ps) && TrigramSameRow(ps)
	})})
	stats = append(stats, Stat{Name: "redirect-adjacent-finger", Tag: TagTri, Ngrams: enumerateTri(func(ps [3]Pos) bool {
		return Redirect(ps) && TrigramAdjacentFinger(ps)
	})})
	stats = append(stats, Stat{Name: "one-hand-adjacent-finger", Tag: TagTri, Ngrams: enumerateTri(func(ps [3]Pos) bool {
		return OneHand(ps) && TrigramAdjacentFinger(ps)
	})})

	stats = append(stats, Stat{Name: "roll", Tag: TagTri, Ngrams: enumerateTri(Roll)})
	stats = append(stats, Stat{Name: "roll-in", Tag: TagTri, Ngrams: enumerateTri(RollIn)})
	stats = append(stats, Stat{Name: "roll-out", Tag: TagTri, Ngrams: enumerateTri(RollOut)})

	rollVariants := []struct {
		suffix string
		extra  func([3]Pos) bool
	}{
		{"same-row", TrigramSameRow},
		{"adjacent-finger", TrigramAdjacentFinger},
		{"same-row-adjacent-finger", func(ps [3]Pos) bool { return TrigramSameRow(ps) && TrigramAdjacentFinger(ps) }},
	}
	rollBases := []struct {
		name string
		pred func([3]Pos) bool
	}{
		{"roll", Roll},
		{"roll-in", RollIn},
		{"roll-out", RollOut},
	}
	for _, base := range rollBases {
		base := base
		for _, v := range rollVariants {
			v := v
			stats = append(stats, Stat{
				Name: base.name + "-" + v.suffix,
				Tag:  TagTri,
				Ngrams: enumerateTri(func(ps [3]Pos) bool {
					return base.pred(ps) && v.extra(ps)
				}),
			})
		}
	}

	return stats
}

// quadSameRow reports all four quadgram positions share a row.
func quadSameRow(ps [4]Pos) bool {
	return Row(ps[0]) == Row(ps[1]) && Row(ps[1]) == Row(ps[2]) && Row(ps[2]) == Row(ps[3])
}

// quadCatalog builds the quadgram statistics: the onehand/redirect
// families extended to length 4, plus true roll and chained roll.
func quadCatalog() []Stat {
	var stats []Stat
	stats = append(stats, Stat{Name: "quad-one-hand", Tag: TagQuad, Ngrams: enumerateQuad(QuadOneHand)})
	stats = append(stats, Stat{Name: "quad-redirect", Tag: TagQuad, Ngrams: enumerateQuad(QuadRedirect)})
	stats = append(stats, Stat{Name: "true-roll", Tag: TagQuad, Ngrams: enumerateQuad(TrueRoll)})
	stats = append(stats, Stat{Name: "chained-roll", Tag: TagQuad, Ngrams: enumerateQuad(ChainedRoll)})

	stats = append(stats, Stat{Name: "quad-one-hand-same-row", Tag: TagQuad, Ngrams: enumerateQuad(func(ps [4]Pos) bool {
		return QuadOneHand(ps) && quadSameRow(ps)
	})})
	stats = append(stats, Stat{Name: "quad-redirect-same-row", Tag: TagQuad, Ngrams: enumerateQuad(func(ps [4]Pos) bool {
		return QuadRedirect(ps) && quadSameRow(ps)
	})})
	stats = append(stats, Stat{Name: "true-roll-same-row", Tag: TagQuad, Ngrams: enumerateQuad(func(ps [4]Pos) bool {
		return TrueRoll(ps) && quadSameRow(ps)
	})})
	stats = append(stats, Stat{Name: "chained-roll-same-row", Tag: TagQuad, Ngrams: enumerateQuad(func(ps [4]Pos) bool {
		return ChainedRoll(ps) && quadSameRow(ps)
	})})

	return stats
}

// skipCatalog builds the skipgram statistics. Each shares its Ngrams (a
// position-pair list) with the analogous bigram predicate, but is scored
// against all nine skip[d] tables using a separate weight per gap.
func skipCatalog() []Stat {
	var stats []Stat

	stats = append(stats, Stat{Name: "skip-sfb", Tag: TagSkip, Ngrams: enumerateBi(SameFinger)})
	for f := range 8 {
		f := f
		stats = append(stats, Stat{
			Name: "skip-sfb-" + fingerSuffix(f),
			Tag:  TagSkip,
			Ngrams: enumerateBi(func(a, b Pos) bool {
				return SameFinger(a, b) && Finger(a) == f
			}),
		})
	}
	stats = append(stats, Stat{Name: "skip-bad-sfb", Tag: TagSkip, Ngrams: enumerateBi(BadSameFinger)})
	for f := range 8 {
		f := f
		stats = append(stats, Stat{
			Name: "skip-bad-sfb-" + fingerSuffix(f),
			Tag:  TagSkip,
			Ngrams: enumerateBi(func(a, b Pos) bool {
				return BadSameFinger(a, b) && Finger(a) == f
			}),
		})
	}
	stats = append(stats, Stat{Name: "skip-lateral-index", Tag: TagSkip, Ngrams: enumerateBi(IndexStretch)})
	stats = append(stats, Stat{Name: "skip-lateral-pinky", Tag: TagSkip, Ngrams: enumerateBi(PinkyStretch)})

	return stats
}

// metaCatalog builds the meta statistics: linear combinations of
// already-computed per-statistic scores, resolved by name against the
// non-meta families at BuildRegistry time.
func metaCatalog() []metaSpec {
	return []metaSpec{
		{
			name: "hand-balance",
			absV: true,
			terms: []metaTermSpec{
				{name: "hand-left", coef: 1},
				{name: "hand-right", coef: -1},
			},
		},
	}
}

// metaSpec and metaTermSpec name-reference meta stats before the registry
// resolves their names to (tag, index) pairs.
type metaTermSpec struct {
	name string
	coef float32
}

type metaSpec struct {
	name  string
	absV  bool
	terms []metaTermSpec
}
