package kb

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// WriteCache emits the non-zero entries of c in deterministic order
// (enumerate mono, then bi, tri, quad, then each skip gap, each by nested
// index), one record per line, per the sparse cache line format.
func WriteCache(w *bufio.Writer, c *Counters) error {
	k := c.K

	for i, n := range c.Mono {
		if n == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "m %d %d\n", i, n); err != nil {
			return err
		}
	}
	for i := range k {
		for j := range k {
			n := c.Bi[flattenIdx(k, i, j)]
			if n == 0 {
				continue
			}
			if _, err := fmt.Fprintf(w, "b %d %d %d\n", i, j, n); err != nil {
				return err
			}
		}
	}
	for i := range k {
		for j := range k {
			for l := range k {
				n := c.Tri[flattenIdx(k, i, j, l)]
				if n == 0 {
					continue
				}
				if _, err := fmt.Fprintf(w, "t %d %d %d %d\n", i, j, l, n); err != nil {
					return err
				}
			}
		}
	}
	for i := range k {
		for j := range k {
			for l := range k {
				for m := range k {
					n := c.Quad[flattenIdx(k, i, j, l, m)]
					if n == 0 {
						continue
					}
					if _, err := fmt.Fprintf(w, "q %d %d %d %d %d\n", i, j, l, m, n); err != nil {
						return err
					}
				}
			}
		}
	}
	for d := 1; d <= MaxSkip; d++ {
		table := c.Skip[d-1]
		for i := range k {
			for j := range k {
				n := table[flattenIdx(k, i, j)]
				if n == 0 {
					continue
				}
				if _, err := fmt.Fprintf(w, "%d %d %d %d\n", d, i, j, n); err != nil {
					return err
				}
			}
		}
	}
	return w.Flush()
}

// ReadCache parses a sparse cache stream into Counters sized for alphabet
// length k. Readers must tolerate any ordering and any subset of record
// classes being present; unrecognised lines are rejected.
func ReadCache(r *bufio.Scanner, k int) (*Counters, error) {
	c := NewCounters(k)
	line := 0
	for r.Scan() {
		line++
		var kind string
		var a, b, d, e int
		text := r.Text()
		if text == "" {
			continue
		}
		n, err := fmt.Sscanf(text, "%s", &kind)
		if n != 1 || err != nil {
			return nil, fmt.Errorf("cache line %d: malformed record", line)
		}
		switch kind {
		case "m":
			var count uint32
			if _, err := fmt.Sscanf(text, "m %d %d", &a, &count); err != nil {
				return nil, fmt.Errorf("cache line %d: %w", line, err)
			}
			c.Mono[a] = count
		case "b":
			var count uint32
			if _, err := fmt.Sscanf(text, "b %d %d %d", &a, &b, &count); err != nil {
				return nil, fmt.Errorf("cache line %d: %w", line, err)
			}
			c.Bi[flattenIdx(k, a, b)] = count
		case "t":
			var count uint32
			if _, err := fmt.Sscanf(text, "t %d %d %d %d", &a, &b, &d, &count); err != nil {
				return nil, fmt.Errorf("cache line %d: %w", line, err)
			}
			c.Tri[flattenIdx(k, a, b, d)] = count
		case "q":
			var count uint32
			if _, err := fmt.Sscanf(text, "q %d %d %d %d %d", &a, &b, &d, &e, &count); err != nil {
				return nil, fmt.Errorf("cache line %d: %w", line, err)
			}
			c.Quad[flattenIdx(k, a, b, d, e)] = count
		default:
			gap, err := parseSkipGap(kind)
			if err != nil || gap < 1 || gap > MaxSkip {
				return nil, fmt.Errorf("cache line %d: unknown record class %q", line, kind)
			}
			var count uint32
			if _, err := fmt.Sscanf(text, "%d %d %d %d", &gap, &a, &b, &count); err != nil {
				return nil, fmt.Errorf("cache line %d: %w", line, err)
			}
			c.Skip[gap-1][flattenIdx(k, a, b)] = count
		}
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func parseSkipGap(s string) (int, error) {
	var d int
	if _, err := fmt.Sscanf(s, "%d", &d); err != nil {
		return 0, err
	}
	return d, nil
}

// LoadOrBuildCorpus returns cached counters for corpusPath if a sibling
// ".cache" file exists and is newer than the source text; otherwise it
// collects counters from the text file and writes the cache for next time.
func LoadOrBuildCorpus(alpha *Alphabet, corpusPath string) (*Counters, error) {
	cachePath := corpusPath + ".cache"

	cacheInfo, cacheErr := os.Stat(cachePath)
	srcInfo, srcErr := os.Stat(corpusPath)
	if cacheErr == nil && (os.IsNotExist(srcErr) || (srcErr == nil && cacheInfo.ModTime().After(srcInfo.ModTime()))) {
		f, err := os.Open(cachePath)
		if err != nil {
			return nil, err
		}
		defer CloseFile(f)
		return ReadCache(bufio.NewScanner(f), alpha.Len())
	}

	col := NewCollector(alpha)
	if err := col.FeedFile(corpusPath); err != nil {
		return nil, fmt.Errorf("reading corpus %s: %w", corpusPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return nil, err
	}
	out, err := os.Create(cachePath)
	if err != nil {
		return nil, err
	}
	defer CloseFile(out)
	if err := WriteCache(bufio.NewWriter(out), col.Counters()); err != nil {
		return nil, err
	}

	return col.Counters(), nil
}
