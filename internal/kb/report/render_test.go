package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbstat/gulag/internal/kb"
)

func testAlphabet(t *testing.T) *kb.Alphabet {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.lang")
	if err := os.WriteFile(path, []byte("  eEtThH\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	a, err := kb.LoadAlphabet(path)
	if err != nil {
		t.Fatalf("LoadAlphabet: %v", err)
	}
	return a
}

// TestParseVerbosityRecognizesAllModes verifies the three canonical output
// modes map to distinct Verbosity levels, and anything else falls back to
// Normal.
func TestParseVerbosityRecognizesAllModes(t *testing.T) {
	if got := ParseVerbosity("quiet"); got != Quiet {
		t.Errorf("ParseVerbosity(quiet) = %v, want Quiet", got)
	}
	if got := ParseVerbosity("verbose"); got != Verbose {
		t.Errorf("ParseVerbosity(verbose) = %v, want Verbose", got)
	}
	if got := ParseVerbosity("normal"); got != Normal {
		t.Errorf("ParseVerbosity(normal) = %v, want Normal", got)
	}
	if got := ParseVerbosity("bogus"); got != Normal {
		t.Errorf("ParseVerbosity(bogus) = %v, want Normal (fallback)", got)
	}
}

// TestPadGlyphPadsNarrowGlyphs verifies single-width glyphs are padded to a
// fixed two-column width.
func TestPadGlyphPadsNarrowGlyphs(t *testing.T) {
	if got := padGlyph("e"); got != "e " {
		t.Errorf("padGlyph(e) = %q, want %q", got, "e ")
	}
	if got := padGlyph("@"); got != "@ " {
		t.Errorf("padGlyph(@) = %q, want %q", got, "@ ")
	}
}

// TestRenderLayoutMarksUnusedPositions verifies unused cells render as '@'
// and occupied ones render their decoded glyph.
func TestRenderLayoutMarksUnusedPositions(t *testing.T) {
	a := testAlphabet(t)
	l := &kb.Layout{Name: "test"}
	for p := kb.Pos(0); p < kb.NumPos; p++ {
		l.Cells[p] = -1
	}
	l.Cells[kb.Flatten(0, 0)] = int32(a.Encode('e'))

	var buf bytes.Buffer
	RenderLayout(&buf, a, l)
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != kb.Rows {
		t.Fatalf("RenderLayout produced %d lines, want %d", len(lines), kb.Rows)
	}
	if !strings.HasPrefix(lines[0], "e ") {
		t.Errorf("first row = %q, want to start with occupied glyph 'e '", lines[0])
	}
	if !strings.Contains(out, "@") {
		t.Error("RenderLayout output missing '@' marker for unused positions")
	}
}

// TestRenderScoreQuietOmitsStatTables verifies Quiet verbosity prints only
// the grid and aggregate score, without any per-statistic table.
func TestRenderScoreQuietOmitsStatTables(t *testing.T) {
	a := testAlphabet(t)
	reg, err := kb.BuildRegistry()
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}
	reg.Clean()

	l := &kb.Layout{Name: "test"}
	for p := kb.Pos(0); p < kb.NumPos; p++ {
		l.Cells[p] = -1
	}
	sc := kb.Score{Total: 1.5, PerStat: map[string]float32{}}

	var buf bytes.Buffer
	RenderScore(&buf, a, l, reg, sc, Quiet)
	out := buf.String()

	if !strings.Contains(out, "score: +1.5000") {
		t.Errorf("RenderScore(Quiet) output missing aggregate score line: %q", out)
	}
	if strings.Contains(out, "weight") {
		t.Error("RenderScore(Quiet) should not print a per-statistic table header")
	}
}

// TestRenderScoreNormalSkipsInactiveStats verifies a statistic family with
// every stat skipped produces no table in Normal verbosity.
func TestRenderScoreNormalSkipsInactiveStats(t *testing.T) {
	a := testAlphabet(t)
	reg, err := kb.BuildRegistry()
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}
	reg.Clean() // no weights loaded, so every stat is skipped

	l := &kb.Layout{Name: "test"}
	for p := kb.Pos(0); p < kb.NumPos; p++ {
		l.Cells[p] = -1
	}
	sc := kb.Score{Total: 0, PerStat: map[string]float32{}}

	var buf bytes.Buffer
	RenderScore(&buf, a, l, reg, sc, Normal)
	out := buf.String()

	if strings.Contains(out, "mono") || strings.Contains(out, "weight") {
		t.Errorf("RenderScore(Normal) with all stats skipped should print no tables, got %q", out)
	}
}

// TestColorDeltaSignsGreenAndRed verifies the delta sign selects the ANSI
// color wrapper, and zero is left uncolored.
func TestColorDeltaSignsGreenAndRed(t *testing.T) {
	pos := colorDelta(0.5)
	neg := colorDelta(-0.5)
	zero := colorDelta(0)

	if !strings.Contains(pos, "+0.5000") {
		t.Errorf("colorDelta(0.5) = %q, want to contain %q", pos, "+0.5000")
	}
	if !strings.Contains(neg, "-0.5000") {
		t.Errorf("colorDelta(-0.5) = %q, want to contain %q", neg, "-0.5000")
	}
	if zero != "+0.0000" {
		t.Errorf("colorDelta(0) = %q, want plain %q with no color codes", zero, "+0.0000")
	}
}

// TestRenderRankingOrdersByInputSlice verifies RenderRanking prints rows in
// the order given (callers are expected to have already sorted).
func TestRenderRankingOrdersByInputSlice(t *testing.T) {
	ranked := []kb.RankEntry{
		{Layout: &kb.Layout{Name: "first"}, Score: kb.Score{Total: 2}},
		{Layout: &kb.Layout{Name: "second"}, Score: kb.Score{Total: 1}},
	}

	var buf bytes.Buffer
	RenderRanking(&buf, ranked)
	out := buf.String()

	firstIdx := strings.Index(out, "first")
	secondIdx := strings.Index(out, "second")
	if firstIdx == -1 || secondIdx == -1 || firstIdx > secondIdx {
		t.Errorf("RenderRanking did not preserve input order: %q", out)
	}
}

// TestRenderDiffShowsSortedStatNames verifies RenderDiff orders its
// per-statistic delta rows alphabetically regardless of map iteration
// order.
func TestRenderDiffShowsSortedStatNames(t *testing.T) {
	a := testAlphabet(t)
	l := &kb.Layout{Name: "diff"}
	for p := kb.Pos(0); p < kb.NumPos; p++ {
		l.Cells[p] = -1
	}
	diff := kb.Score{
		Total: 0.25,
		PerStat: map[string]float32{
			"zeta":  0.1,
			"alpha": -0.1,
		},
	}

	var buf bytes.Buffer
	RenderDiff(&buf, a, l, diff)
	out := buf.String()

	alphaIdx := strings.Index(out, "alpha")
	zetaIdx := strings.Index(out, "zeta")
	if alphaIdx == -1 || zetaIdx == -1 || alphaIdx > zetaIdx {
		t.Errorf("RenderDiff did not sort stat names alphabetically: %q", out)
	}
}
