package kb

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadLayoutFromFile loads a Layout from a .glg file: Rows lines of Cols
// whitespace-separated code points, row-major, '@' marking an unused
// position. Lines starting with '#' and blank lines are ignored.
func LoadLayoutFromFile(alpha *Alphabet, name, path string) (*Layout, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening layout file %s: %w", path, ErrLayoutMalformed)
	}
	defer CloseFile(file)

	scanner := bufio.NewScanner(file)
	l := &Layout{Name: name}
	row := 0
	for row < Rows {
		line, ok := readAlphaLine(scanner)
		if !ok {
			return nil, fmt.Errorf("layout file %s: not enough rows: %w", path, ErrLayoutMalformed)
		}
		fields := strings.Fields(line)
		if len(fields) != Cols {
			return nil, fmt.Errorf("layout file %s row %d has %d entries, expected %d: %w",
				path, row+1, len(fields), Cols, ErrLayoutMalformed)
		}
		for col, field := range fields {
			p := Flatten(row, col)
			if field == "@" {
				l.Cells[p] = -1
				continue
			}
			runes := []rune(field)
			if len(runes) != 1 {
				return nil, fmt.Errorf("layout file %s row %d col %d: multi-code-point entry %q: %w",
					path, row+1, col+1, field, ErrLayoutMalformed)
			}
			idx := alpha.Encode(runes[0])
			if idx < 0 {
				return nil, fmt.Errorf("layout file %s row %d col %d: %q not in alphabet: %w",
					path, row+1, col+1, field, ErrLayoutMalformed)
			}
			l.Cells[p] = int32(idx)
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return l, nil
}

// SaveLayoutToFile writes a Layout back to .glg format.
func SaveLayoutToFile(alpha *Alphabet, l *Layout, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer CloseFile(file)

	w := bufio.NewWriter(file)
	defer FlushWriter(w)

	for row := range Rows {
		for col := range Cols {
			p := Flatten(row, col)
			cell := l.Cells[p]
			if cell < 0 {
				MustFprint(w, "@")
			} else {
				MustFprintf(w, "%c", alpha.Decode(int(cell)))
			}
			if col < Cols-1 {
				MustFprint(w, " ")
			}
		}
		MustFprintln(w)
	}
	return nil
}

// String renders the layout as a 3x12 grid of glyphs, '@' for unused.
func (l *Layout) String(alpha *Alphabet) string {
	var sb strings.Builder
	for row := range Rows {
		for col := range Cols {
			p := Flatten(row, col)
			cell := l.Cells[p]
			if cell < 0 {
				sb.WriteRune('@')
			} else {
				sb.WriteRune(alpha.Decode(int(cell)))
			}
			sb.WriteRune(' ')
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
