package kb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// MaxAlphabet is the number of (possibly shifted) code-point slots a
// language file may fill: 50 indices times two slots each.
const MaxAlphabet = 2 * 50

// Alphabet maps between the up-to-50 symbols a corpus and layout may use
// and their dense index [0, 50). Slots 2i and 2i+1 of the source file both
// resolve to index i; Decode returns slot 2i, the canonical (unshifted)
// member. Index 0 is always space.
type Alphabet struct {
	slots []rune       // raw 2*K-length sequence, pair (2i, 2i+1) -> index i
	index map[rune]int // code point -> index
}

// LoadAlphabet reads a language file: a raw sequence of up to 100 code
// points, terminated by newline or EOF, where consecutive pairs (0,1),
// (2,3), ... each collapse to one alphabet index. The first pair must be
// two literal spaces (index 0). A code point repeated outside its own pair
// is rejected as malformed; '@' may never appear in the file.
func LoadAlphabet(path string) (*Alphabet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening alphabet file %s: %w", path, ErrAlphabetMalformed)
	}
	defer CloseFile(file)

	r := bufio.NewReader(file)
	var slots []rune
	for len(slots) < MaxAlphabet {
		cp, _, err := r.ReadRune()
		if err == io.EOF || cp == '\n' {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading alphabet file %s: %w", path, err)
		}
		if cp == '@' {
			return nil, fmt.Errorf("alphabet file %s contains reserved code point '@': %w", path, ErrAlphabetMalformed)
		}
		slots = append(slots, cp)
	}
	if len(slots) == MaxAlphabet {
		if cp, _, err := r.ReadRune(); err == nil && cp != '\n' {
			return nil, fmt.Errorf("alphabet file %s has more than %d code points: %w", path, MaxAlphabet, ErrAlphabetMalformed)
		}
	}

	if len(slots) < 2 || slots[0] != ' ' || slots[1] != ' ' {
		return nil, fmt.Errorf("alphabet file %s must begin with two spaces: %w", path, ErrAlphabetMalformed)
	}
	if len(slots)%2 != 0 {
		return nil, fmt.Errorf("alphabet file %s has an odd number of code points: %w", path, ErrAlphabetMalformed)
	}

	a := &Alphabet{
		slots: slots,
		index: make(map[rune]int, len(slots)),
	}
	for i, cp := range slots {
		idx := i / 2
		if prev, seen := a.index[cp]; seen && prev != idx {
			return nil, fmt.Errorf("alphabet file %s: duplicate code point %q: %w", path, cp, ErrAlphabetMalformed)
		}
		a.index[cp] = idx
	}

	return a, nil
}

// readAlphaLine advances scanner to the next line that is neither blank
// nor a '#' comment, returning it and true, or "", false at EOF. Shared by
// the layout and pins file readers, which both skip the same boilerplate.
func readAlphaLine(scanner *bufio.Scanner) (string, bool) {
	for scanner.Scan() {
		line := scanner.Text()
		if s := strings.TrimSpace(line); s == "" || s[0] == '#' {
			continue
		}
		return line, true
	}
	return "", false
}

// Len reports the number of distinct indices (K) in the alphabet.
func (a *Alphabet) Len() int {
	return len(a.slots) / 2
}

// Encode returns the index of r, or -1 if r is not in the alphabet.
func (a *Alphabet) Encode(r rune) int {
	if idx, ok := a.index[r]; ok {
		return idx
	}
	return -1
}

// Decode returns the canonical (unshifted) code point at index i, or '@'
// if i is out of range.
func (a *Alphabet) Decode(i int) rune {
	if i < 0 || 2*i >= len(a.slots) {
		return '@'
	}
	return a.slots[2*i]
}
