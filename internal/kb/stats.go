package kb

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// StatTag identifies which frequency-table family a statistic draws from.
type StatTag uint8

const (
	TagMono StatTag = iota
	TagBi
	TagTri
	TagQuad
	TagSkip
	TagMeta
)

// MetaTerm is one term of a meta statistic's linear combination: the
// coefficient applied to another statistic's current score, identified by
// (Tag, Index) rather than by name, resolved once at registry-build time.
type MetaTerm struct {
	Tag   StatTag
	Index int
	Coef  float32
}

// Stat is one entry of the statistic registry: a name, the frequency-table
// family it draws from, the grid-ngram indices where its predicate holds
// (empty for meta stats), its weight, and -- for skipgrams -- nine
// per-gap weights. Skip marks a stat excluded from the scoring hot loop.
type Stat struct {
	Name        string
	Tag         StatTag
	Ngrams      []int32
	Weight      float32
	SkipWeights [MaxSkip]float32
	Skip        bool
	Meta        []MetaTerm
	AbsV        bool
}

// statRef locates a stat within its family slice.
type statRef struct {
	Tag   StatTag
	Index int
}

// Registry is the fixed catalog of statistics, partitioned by tag so the
// scoring engine can walk each family against its matching frequency
// table without a type switch per stat.
type Registry struct {
	Mono, Bi, Tri, Quad, Skip, Meta []Stat
	byName                          map[string]statRef
}

// family returns the slice backing a tag, for code that's generic over tag.
func (r *Registry) family(tag StatTag) []Stat {
	switch tag {
	case TagMono:
		return r.Mono
	case TagBi:
		return r.Bi
	case TagTri:
		return r.Tri
	case TagQuad:
		return r.Quad
	case TagSkip:
		return r.Skip
	case TagMeta:
		return r.Meta
	default:
		return nil
	}
}

// setFamily replaces the slice backing a tag.
func (r *Registry) setFamily(tag StatTag, stats []Stat) {
	switch tag {
	case TagMono:
		r.Mono = stats
	case TagBi:
		r.Bi = stats
	case TagTri:
		r.Tri = stats
	case TagQuad:
		r.Quad = stats
	case TagSkip:
		r.Skip = stats
	case TagMeta:
		r.Meta = stats
	}
}

// BuildRegistry enumerates the fixed statistic catalog directly into
// per-family arrays (no intermediate linked list, no -1-sentinel trim
// pass: each stat's Ngrams is already the exact set for which its
// predicate holds). Meta stats are resolved against the non-meta families
// by name; an unknown reference or a duplicate name aborts construction.
func BuildRegistry() (*Registry, error) {
	r := &Registry{byName: make(map[string]statRef)}

	families := []struct {
		tag   StatTag
		stats []Stat
	}{
		{TagMono, monoCatalog()},
		{TagBi, biCatalog()},
		{TagTri, triCatalog()},
		{TagQuad, quadCatalog()},
		{TagSkip, skipCatalog()},
	}
	for _, fam := range families {
		for i, s := range fam.stats {
			if _, dup := r.byName[s.Name]; dup {
				return nil, fmt.Errorf("statistic %q: %w", s.Name, ErrDuplicateStatName)
			}
			r.byName[s.Name] = statRef{Tag: fam.tag, Index: i}
		}
		r.setFamily(fam.tag, fam.stats)
	}

	for _, spec := range metaCatalog() {
		if _, dup := r.byName[spec.name]; dup {
			return nil, fmt.Errorf("statistic %q: %w", spec.name, ErrDuplicateStatName)
		}
		terms := make([]MetaTerm, 0, len(spec.terms))
		for _, t := range spec.terms {
			ref, ok := r.byName[t.name]
			if !ok {
				return nil, fmt.Errorf("meta statistic %q references unknown statistic %q: %w",
					spec.name, t.name, ErrMetaDependencyUnresolved)
			}
			terms = append(terms, MetaTerm{Tag: ref.Tag, Index: ref.Index, Coef: t.coef})
		}
		idx := len(r.Meta)
		r.Meta = append(r.Meta, Stat{Name: spec.name, Tag: TagMeta, Meta: terms, AbsV: spec.absV})
		r.byName[spec.name] = statRef{Tag: TagMeta, Index: idx}
	}

	return r, nil
}

// LoadWeights parses a weight file: lines `<name> : <w1> [w2 .. w9]`,
// blank lines and '#' comments ignored. A scalar stat takes exactly one
// weight; a skipgram stat takes up to nine, applied to gaps 1..9 in
// order -- any gap not given keeps its prior (sentinel) weight.
func (r *Registry) LoadWeights(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening weight file %s: %w", path, ErrWeightMalformed)
	}
	defer CloseFile(file)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("weight file %s line %d: missing ':': %w", path, lineNo, ErrWeightMalformed)
		}
		name := strings.TrimSpace(parts[0])
		fields := strings.Fields(parts[1])
		if len(fields) == 0 {
			return fmt.Errorf("weight file %s line %d: no weight value: %w", path, lineNo, ErrWeightMalformed)
		}

		ref, ok := r.byName[name]
		if !ok {
			return fmt.Errorf("weight file %s line %d: unknown statistic %q: %w", path, lineNo, name, ErrWeightMalformed)
		}

		weights := make([]float32, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return fmt.Errorf("weight file %s line %d: %w", path, lineNo, ErrWeightMalformed)
			}
			weights[i] = float32(v)
		}

		fam := r.family(ref.Tag)
		stat := &fam[ref.Index]
		if ref.Tag == TagSkip {
			if len(weights) > MaxSkip {
				return fmt.Errorf("weight file %s line %d: too many weights for skipgram: %w", path, lineNo, ErrWeightMalformed)
			}
			for i, w := range weights {
				stat.SkipWeights[i] = w
			}
		} else {
			if len(weights) != 1 {
				return fmt.Errorf("weight file %s line %d: scalar statistic takes exactly one weight: %w", path, lineNo, ErrWeightMalformed)
			}
			stat.Weight = weights[0]
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return nil
}

// Clean marks every zero-length or zero-weight statistic Skip=true, then
// force-unskips any stat referenced by a non-skipped meta statistic.
func (r *Registry) Clean() {
	clean := func(stats []Stat, weighOf func(Stat) bool) {
		for i := range stats {
			if len(stats[i].Ngrams) == 0 || !weighOf(stats[i]) {
				stats[i].Skip = true
			}
		}
	}
	nonZero := func(s Stat) bool { return s.Weight != 0 }
	skipNonZero := func(s Stat) bool {
		for _, w := range s.SkipWeights {
			if w != 0 {
				return true
			}
		}
		return false
	}

	clean(r.Mono, nonZero)
	clean(r.Bi, nonZero)
	clean(r.Tri, nonZero)
	clean(r.Quad, nonZero)
	clean(r.Skip, skipNonZero)

	for i := range r.Meta {
		meta := &r.Meta[i]
		meta.Skip = meta.Weight == 0
		if meta.Skip {
			continue
		}
		for _, t := range meta.Meta {
			fam := r.family(t.Tag)
			fam[t.Index].Skip = false
		}
	}
}

// Lookup returns the (tag, index) of a statistic by name, for callers
// that need to resolve a name without walking every family.
func (r *Registry) Lookup(name string) (StatTag, int, bool) {
	ref, ok := r.byName[name]
	return ref.Tag, ref.Index, ok
}
