// Package report renders layouts and scores for the three verbosity modes
// (quiet, normal, verbose) using the same go-pretty table conventions the
// rest of the corpus uses for terminal output.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"

	"github.com/kbstat/gulag/internal/kb"
)

// Verbosity selects how much detail RenderScore prints.
type Verbosity int

const (
	Quiet Verbosity = iota
	Normal
	Verbose
)

// ParseVerbosity resolves a normalized output-mode string to a Verbosity.
func ParseVerbosity(mode string) Verbosity {
	switch mode {
	case "quiet":
		return Quiet
	case "verbose":
		return Verbose
	default:
		return Normal
	}
}

// RenderLayout draws the layout's 3x12 grid, padding each glyph to a fixed
// display width so wide code points don't skew the grid.
func RenderLayout(w io.Writer, alpha *kb.Alphabet, l *kb.Layout) {
	for row := 0; row < kb.Rows; row++ {
		for col := 0; col < kb.Cols; col++ {
			p := kb.Flatten(row, col)
			cell := l.Cells[p]
			glyph := "@"
			if cell >= 0 {
				glyph = string(alpha.Decode(int(cell)))
			}
			fmt.Fprint(w, padGlyph(glyph), " ")
		}
		fmt.Fprintln(w)
	}
}

func padGlyph(g string) string {
	w := runewidth.StringWidth(g)
	if w >= 2 {
		return g
	}
	return g + " "
}

// RenderScore renders a layout and its score at the given verbosity. Quiet
// shows the grid and aggregate only; Normal (and, identically, Verbose) add
// a per-statistic table grouped by tag, with skipgram stats rendered as a
// 9-column per-gap row.
func RenderScore(w io.Writer, alpha *kb.Alphabet, l *kb.Layout, reg *kb.Registry, sc kb.Score, v Verbosity) {
	fmt.Fprintf(w, "%s\n", l.Name)
	RenderLayout(w, alpha, l)
	fmt.Fprintf(w, "\nscore: %+.4f\n", sc.Total)

	if v == Quiet {
		return
	}

	renderFamily(w, "mono", reg.Mono, sc)
	renderFamily(w, "bi", reg.Bi, sc)
	renderFamily(w, "tri", reg.Tri, sc)
	renderFamily(w, "quad", reg.Quad, sc)
	renderSkipFamily(w, reg.Skip, sc)
	renderFamily(w, "meta", reg.Meta, sc)
}

func renderFamily(w io.Writer, tag string, stats []kb.Stat, sc kb.Score) {
	var active []kb.Stat
	for _, s := range stats {
		if !s.Skip {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{tag, "score", "weight"})
	for _, s := range active {
		t.AppendRow(table.Row{s.Name, fmt.Sprintf("%.4f", sc.PerStat[s.Name]), fmt.Sprintf("%+.3f", s.Weight)})
	}
	t.Render()
}

func renderSkipFamily(w io.Writer, stats []kb.Stat, sc kb.Score) {
	var active []kb.Stat
	for _, s := range stats {
		if !s.Skip {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	header := table.Row{"skip"}
	for gap := 1; gap <= kb.MaxSkip; gap++ {
		header = append(header, gap)
	}
	t.AppendHeader(header)
	for _, s := range active {
		vec := sc.PerStatSkip[s.Name]
		row := table.Row{s.Name}
		for _, v := range vec {
			row = append(row, fmt.Sprintf("%.3f", v))
		}
		t.AppendRow(row)
	}
	t.Render()
}

// RenderDiff draws a diff layout (positions that differ shown as '@') and
// the A-minus-B score delta, coloring positive deltas green and negative
// ones red. Per-statistic deltas are unweighted, so their sign alone does
// not show the effect on the aggregate score.
func RenderDiff(w io.Writer, alpha *kb.Alphabet, diffLayout *kb.Layout, diff kb.Score) {
	fmt.Fprintf(w, "%s\n", diffLayout.Name)
	RenderLayout(w, alpha, diffLayout)
	fmt.Fprintf(w, "\nscore delta: %s\n", colorDelta(diff.Total))

	if len(diff.PerStat) == 0 {
		return
	}

	names := make([]string, 0, len(diff.PerStat))
	for name := range diff.PerStat {
		names = append(names, name)
	}
	sort.Strings(names)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"stat", "delta"})
	for _, name := range names {
		t.AppendRow(table.Row{name, colorDelta(diff.PerStat[name])})
	}
	t.Render()
}

func colorDelta(delta float32) string {
	s := fmt.Sprintf("%+.4f", delta)
	switch {
	case delta > 0:
		return text.Colors{text.FgGreen}.Sprint(s)
	case delta < 0:
		return text.Colors{text.FgRed}.Sprint(s)
	default:
		return s
	}
}

// RenderRanking draws a descending-by-score ranking table.
func RenderRanking(w io.Writer, ranked []kb.RankEntry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "layout", "score"})
	for i, entry := range ranked {
		t.AppendRow(table.Row{i + 1, entry.Layout.Name, fmt.Sprintf("%+.4f", entry.Score.Total)})
	}
	t.Render()
}
