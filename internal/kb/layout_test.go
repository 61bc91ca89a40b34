package kb

import (
	"errors"
	"path/filepath"
	"testing"
)

// TestLoadLayoutRoundTrip verifies a layout written to file and reloaded
// reproduces the same cell assignments.
func TestLoadLayoutRoundTrip(t *testing.T) {
	a := testAlphabet(t)
	original := &Layout{Name: "qwerty-ish"}
	for p := Pos(0); p < NumPos; p++ {
		original.Cells[p] = -1
	}
	original.Cells[Flatten(0, 0)] = int32(a.Encode('e'))
	original.Cells[Flatten(0, 1)] = int32(a.Encode('t'))
	original.Cells[Flatten(1, 0)] = int32(a.Encode('h'))

	path := filepath.Join(t.TempDir(), "layout.glg")
	if err := SaveLayoutToFile(a, original, path); err != nil {
		t.Fatalf("SaveLayoutToFile: %v", err)
	}

	loaded, err := LoadLayoutFromFile(a, "qwerty-ish", path)
	if err != nil {
		t.Fatalf("LoadLayoutFromFile: %v", err)
	}
	if loaded.Cells != original.Cells {
		t.Errorf("round-tripped layout cells differ: got %v, want %v", loaded.Cells, original.Cells)
	}
}

// TestLoadLayoutUnusedMarker verifies '@' in a layout file marks a
// position unused (-1).
func TestLoadLayoutUnusedMarker(t *testing.T) {
	a := testAlphabet(t)
	content := gridRows([Rows][Cols]string{
		{"e", "t", "h", "n", "a", "@", "@", "@", "@", "@", "@", "@"},
		{"@", "@", "@", "@", "@", "@", "@", "@", "@", "@", "@", "@"},
		{"@", "@", "@", "@", "@", "@", "@", "@", "@", "@", "@", "@"},
	})
	path := writeTempFile(t, "l.glg", content)
	l, err := LoadLayoutFromFile(a, "l", path)
	if err != nil {
		t.Fatalf("LoadLayoutFromFile: %v", err)
	}
	if l.Cells[Flatten(0, 5)] != -1 {
		t.Errorf("Cells[row0,col5] = %d, want -1 for '@'", l.Cells[Flatten(0, 5)])
	}
	if l.Cells[Flatten(0, 0)] != int32(a.Encode('e')) {
		t.Errorf("Cells[row0,col0] = %d, want encoded 'e'", l.Cells[Flatten(0, 0)])
	}
}

func gridRows(rows [Rows][Cols]string) string {
	var out string
	for _, row := range rows {
		for i, f := range row {
			if i > 0 {
				out += " "
			}
			out += f
		}
		out += "\n"
	}
	return out
}

// TestLoadLayoutRejectsWrongColumnCount verifies a row with the wrong
// number of fields is malformed.
func TestLoadLayoutRejectsWrongColumnCount(t *testing.T) {
	a := testAlphabet(t)
	path := writeTempFile(t, "bad.glg", "e t h\n")
	_, err := LoadLayoutFromFile(a, "bad", path)
	if !errors.Is(err, ErrLayoutMalformed) {
		t.Fatalf("LoadLayoutFromFile with wrong column count: got %v, want ErrLayoutMalformed", err)
	}
}

// TestLoadLayoutRejectsUnknownGlyph verifies a code point not present in
// the alphabet is malformed rather than silently dropped.
func TestLoadLayoutRejectsUnknownGlyph(t *testing.T) {
	a := testAlphabet(t)
	row := "z @ @ @ @ @ @ @ @ @ @ @\n"
	content := row + row + row
	path := writeTempFile(t, "bad.glg", content)
	_, err := LoadLayoutFromFile(a, "bad", path)
	if !errors.Is(err, ErrLayoutMalformed) {
		t.Fatalf("LoadLayoutFromFile with unknown glyph: got %v, want ErrLayoutMalformed", err)
	}
}

// TestLoadLayoutSkipsCommentsAndBlankLines verifies '#' comment lines and
// blank lines are ignored when counting rows.
func TestLoadLayoutSkipsCommentsAndBlankLines(t *testing.T) {
	a := testAlphabet(t)
	row := "@ @ @ @ @ @ @ @ @ @ @ @\n"
	content := "# a comment\n\n" + row + "# another\n" + row + "\n" + row
	path := writeTempFile(t, "ok.glg", content)
	l, err := LoadLayoutFromFile(a, "ok", path)
	if err != nil {
		t.Fatalf("LoadLayoutFromFile: %v", err)
	}
	for p := Pos(0); p < NumPos; p++ {
		if l.Cells[p] != -1 {
			t.Fatalf("Cells[%d] = %d, want -1", p, l.Cells[p])
		}
	}
}

// TestLoadLayoutMissingFile verifies a nonexistent layout file fails with
// ErrLayoutMalformed rather than a bare os.PathError.
func TestLoadLayoutMissingFile(t *testing.T) {
	a := testAlphabet(t)
	_, err := LoadLayoutFromFile(a, "missing", filepath.Join(t.TempDir(), "nope.glg"))
	if !errors.Is(err, ErrLayoutMalformed) {
		t.Fatalf("LoadLayoutFromFile on missing file: got %v, want ErrLayoutMalformed", err)
	}
}
