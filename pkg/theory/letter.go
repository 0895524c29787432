// Package theory models pitches, intervals, keys, scales, key signatures and
// chords as immutable values, together with the arithmetic that relates them.
package theory

import "fmt"

// Music constants
const (
	KeysInOctave          = 12
	SmallestProgramNumber = 0
	LargestProgramNumber  = 127
)

// Letter is one of the seven diatonic note names
type Letter int

const (
	A Letter = iota
	B
	C
	D
	E
	F
	G
)

// LetterCount is the number of diatonic letters
const LetterCount = 7

var letterOffsets = [LetterCount]int{9, 11, 0, 2, 4, 5, 7}

// Letters returns all letters in alphabetical order rotated so that start
// comes first.
func Letters(start Letter) []Letter {
	letters := make([]Letter, 0, LetterCount)
	for i := 0; i < LetterCount; i++ {
		letters = append(letters, Letter(floorMod(int(start)+i, LetterCount)))
	}
	return letters
}

// LetterFromChar returns the letter for an upper or lower case character
func LetterFromChar(c byte) (Letter, error) {
	switch {
	case c >= 'A' && c <= 'G':
		return Letter(c - 'A'), nil
	case c >= 'a' && c <= 'g':
		return Letter(c - 'a'), nil
	default:
		return 0, invalidToken("letter", string(c))
	}
}

// ParseLetter parses a single letter character
func ParseLetter(s string) (Letter, error) {
	if len(s) != 1 {
		return 0, invalidToken("letter", s)
	}
	return LetterFromChar(s[0])
}

// Offset returns the chromatic offset of the natural letter (C = 0).
// Invalid letters have offset 0.
func (l Letter) Offset() int {
	if !l.Valid() {
		return 0
	}
	return letterOffsets[l]
}

// Ordinal returns the alphabetical position (A = 0)
func (l Letter) Ordinal() int {
	return int(l)
}

// Valid reports whether l is one of A..G
func (l Letter) Valid() bool {
	return l >= A && l <= G
}

// Step returns the letter n diatonic steps away, wrapping around.
func (l Letter) Step(n int) Letter {
	return Letter(floorMod(int(l)+n, LetterCount))
}

func (l Letter) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Letter(%d)", int(l))
	}
	return string(rune('A' + int(l)))
}

// diatonicIndex counts letters from C, so that octave numbers change
// between B and C.
func (l Letter) diatonicIndex() int {
	return floorMod(int(l)-int(C), LetterCount)
}

func letterFromDiatonicIndex(i int) Letter {
	return Letter(floorMod(i+int(C), LetterCount))
}

func floorMod(a, b int) int {
	return ((a % b) + b) % b
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
