package kb

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Pins marks which of the 36 grid positions are fixed during optimization.
// true means the position must not change.
type Pins [NumPos]bool

// LoadPins reads a pins file: Rows lines of Cols whitespace-separated
// single characters, '.', '_', '-' for unpinned and '*', 'x', 'X' for
// pinned. Mirrors the layout file's line-skipping conventions.
func LoadPins(path string) (*Pins, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pins file %s: %w", path, err)
	}
	defer CloseFile(file)

	var pins Pins
	scanner := bufio.NewScanner(file)
	row := 0
	for row < Rows {
		line, ok := readAlphaLine(scanner)
		if !ok {
			return nil, fmt.Errorf("pins file %s: not enough rows", path)
		}
		fields := strings.Fields(line)
		if len(fields) != Cols {
			return nil, fmt.Errorf("pins file %s row %d has %d entries, expected %d",
				path, row+1, len(fields), Cols)
		}
		for col, field := range fields {
			if len(field) != 1 {
				return nil, fmt.Errorf("pins file %s row %d col %d must be exactly 1 character", path, row+1, col+1)
			}
			p := Flatten(row, col)
			switch field[0] {
			case '.', '_', '-':
				pins[p] = false
			case '*', 'x', 'X':
				pins[p] = true
			default:
				return nil, fmt.Errorf("pins file %s row %d col %d: invalid character %q", path, row+1, col+1, field)
			}
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &pins, nil
}

// ParsePinMask parses the config file's inline pin-mask line: exactly
// Rows*Cols characters, row-major, '.' for free and any other character
// for pinned.
func ParsePinMask(mask string) (*Pins, error) {
	runes := []rune(mask)
	if len(runes) != NumPos {
		return nil, fmt.Errorf("pin mask must be exactly %d characters, got %d: %w", NumPos, len(runes), ErrConfigInvalid)
	}
	var pins Pins
	for i, r := range runes {
		pins[i] = r != '.'
	}
	return &pins, nil
}

// LoadPinsFromParams configures pins from the config file's inline mask,
// an external pins file, an individually-pinned rune string, or a
// free-rune string (all runes except those pin), in that order of
// precedence (pinChars always layers on top of whichever base is
// selected). free is mutually exclusive with mask, path, and pinChars.
// With none of these set, every unused position is pinned and nothing
// else is.
func LoadPinsFromParams(alpha *Alphabet, l *Layout, mask, path, pinChars, free string) (*Pins, error) {
	if (mask != "" || path != "" || pinChars != "") && free != "" {
		return nil, fmt.Errorf("cannot use both --free and --pins/--pins-file/a config pin mask together")
	}

	if free != "" {
		var pins Pins
		for i := range pins {
			pins[i] = true
		}
		for _, r := range free {
			idx := alpha.Encode(r)
			if idx < 0 {
				return nil, fmt.Errorf("cannot free unavailable character: %q", r)
			}
			if p, ok := findCell(l, int32(idx)); ok {
				pins[p] = false
			}
		}
		return &pins, nil
	}

	var pins *Pins
	switch {
	case mask != "":
		parsed, err := ParsePinMask(mask)
		if err != nil {
			return nil, err
		}
		pins = parsed
	case path != "":
		loaded, err := LoadPins(path)
		if err != nil {
			return nil, err
		}
		pins = loaded
	default:
		pins = &Pins{}
		for p, cell := range l.Cells {
			if cell < 0 {
				pins[p] = true
			}
		}
	}

	for _, r := range pinChars {
		idx := alpha.Encode(r)
		if idx < 0 {
			return nil, fmt.Errorf("cannot pin unavailable character: %q", r)
		}
		p, ok := findCell(l, int32(idx))
		if !ok {
			return nil, fmt.Errorf("cannot pin character not placed on layout: %q", r)
		}
		pins[p] = true
	}

	return pins, nil
}

func findCell(l *Layout, idx int32) (Pos, bool) {
	for p, cell := range l.Cells {
		if cell == idx {
			return Pos(p), true
		}
	}
	return 0, false
}
