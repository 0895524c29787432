package theory

import "fmt"

// Accidental alters a letter by up to three semitones. None is the zero
// value and means "unspecified"; Natural is an explicit marker. Both have
// offset 0 but are different accidentals.
type Accidental int

const (
	None Accidental = iota
	Natural
	TripleFlat
	DoubleFlat
	Flat
	Sharp
	DoubleSharp
	TripleSharp
)

type accidentalInfo struct {
	symbol string
	offset int
}

var accidentalTable = map[Accidental]accidentalInfo{
	TripleFlat:  {"bbb", -3},
	DoubleFlat:  {"bb", -2},
	Flat:        {"b", -1},
	None:        {"", 0},
	Natural:     {"n", 0},
	Sharp:       {"#", 1},
	DoubleSharp: {"x", 2},
	TripleSharp: {"#x", 3},
}

// Accidentals returns every accidental ordered by offset, None before Natural.
func Accidentals() []Accidental {
	return []Accidental{TripleFlat, DoubleFlat, Flat, None, Natural, Sharp, DoubleSharp, TripleSharp}
}

// Accidental offset bounds
const (
	MinAccidentalOffset = -3
	MaxAccidentalOffset = 3
)

// AccidentalFromOffset returns the accidental for a semitone offset.
// An offset of 0 yields Natural.
func AccidentalFromOffset(offset int) (Accidental, error) {
	switch offset {
	case -3:
		return TripleFlat, nil
	case -2:
		return DoubleFlat, nil
	case -1:
		return Flat, nil
	case 0:
		return Natural, nil
	case 1:
		return Sharp, nil
	case 2:
		return DoubleSharp, nil
	case 3:
		return TripleSharp, nil
	default:
		return None, invalidToken("accidental offset", offset)
	}
}

// spellingAccidental is AccidentalFromOffset for spellings derived by the
// package: a zero displacement is written without any accidental.
func spellingAccidental(offset int) (Accidental, error) {
	if offset == 0 {
		return None, nil
	}
	return AccidentalFromOffset(offset)
}

// ParseAccidental parses one of "", "n", "b", "bb", "bbb", "#", "x", "#x"
func ParseAccidental(s string) (Accidental, error) {
	switch s {
	case "bbb":
		return TripleFlat, nil
	case "bb":
		return DoubleFlat, nil
	case "b":
		return Flat, nil
	case "":
		return None, nil
	case "n":
		return Natural, nil
	case "#":
		return Sharp, nil
	case "x":
		return DoubleSharp, nil
	case "#x":
		return TripleSharp, nil
	default:
		return None, invalidToken("accidental", s)
	}
}

// Offset returns the semitone displacement
func (a Accidental) Offset() int {
	return accidentalTable[a].offset
}

// Valid reports whether a is a known accidental
func (a Accidental) Valid() bool {
	_, ok := accidentalTable[a]
	return ok
}

// IsFlat reports whether a lowers its letter
func (a Accidental) IsFlat() bool {
	return a.Offset() < 0
}

// IsSharp reports whether a raises its letter
func (a Accidental) IsSharp() bool {
	return a.Offset() > 0
}

func (a Accidental) String() string {
	info, ok := accidentalTable[a]
	if !ok {
		return fmt.Sprintf("Accidental(%d)", int(a))
	}
	return info.symbol
}

// Name returns a descriptive name such as "double sharp"
func (a Accidental) Name() string {
	switch a {
	case TripleFlat:
		return "triple flat"
	case DoubleFlat:
		return "double flat"
	case Flat:
		return "flat"
	case None:
		return "none"
	case Natural:
		return "natural"
	case Sharp:
		return "sharp"
	case DoubleSharp:
		return "double sharp"
	case TripleSharp:
		return "triple sharp"
	default:
		return a.String()
	}
}
