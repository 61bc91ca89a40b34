package kb

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RankEntry is one layout's place in a ranking list: its layout (named
// after its file, without the .glg extension) and its score.
type RankEntry struct {
	Layout *Layout
	Score  Score
}

// RankDirectory scores every .glg layout file in dir (skipping dotfiles)
// and returns them sorted by descending aggregate score, ties broken by
// insertion order (sort.SliceStable).
func RankDirectory(alpha *Alphabet, dir string, t *Tables, reg *Registry) ([]RankEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading layout directory %s: %w", dir, err)
	}

	var ranked []RankEntry
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".glg" {
			continue
		}
		layoutName := strings.TrimSuffix(name, ".glg")
		layout, err := LoadLayoutFromFile(alpha, layoutName, filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		sc := Evaluate(layout, t, reg)
		ranked = append(ranked, RankEntry{Layout: layout, Score: sc})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Total > ranked[j].Score.Total
	})

	return ranked, nil
}
