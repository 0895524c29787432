package theory

import (
	"fmt"
	"strconv"
	"strings"
)

// Degree is a position within a seven note scale, starting at 1
type Degree int

const (
	Tonic Degree = iota + 1
	Supertonic
	Mediant
	Subdominant
	Dominant
	Submediant
	LeadingTone
)

var degreeNames = [...]string{"", "tonic", "supertonic", "mediant", "subdominant", "dominant", "submediant", "leading tone"}

// Degrees returns the seven degrees rotated to begin at start
func Degrees(start Degree) []Degree {
	degrees := make([]Degree, 0, LetterCount)
	for i := 0; i < LetterCount; i++ {
		degrees = append(degrees, Degree(floorMod(int(start)-1+i, LetterCount)+1))
	}
	return degrees
}

// DegreeFromValue returns the degree with the given 1-based value
func DegreeFromValue(value int) (Degree, error) {
	if value < int(Tonic) || value > int(LeadingTone) {
		return 0, invalidToken("degree", value)
	}
	return Degree(value), nil
}

// ParseDegree accepts a degree name ("dominant") or its value ("5")
func ParseDegree(s string) (Degree, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return DegreeFromValue(v)
	}
	name := strings.ToLower(strings.ReplaceAll(s, "_", " "))
	for d := Tonic; d <= LeadingTone; d++ {
		if degreeNames[d] == name {
			return d, nil
		}
	}
	return 0, invalidToken("degree", s)
}

// Value returns the 1-based position
func (d Degree) Value() int {
	return int(d)
}

// Valid reports whether d is one of the seven degrees
func (d Degree) Valid() bool {
	return d >= Tonic && d <= LeadingTone
}

func (d Degree) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Degree(%d)", int(d))
	}
	return degreeNames[d]
}

// Inversion selects which chord member sounds lowest
type Inversion int

const (
	RootPosition Inversion = iota
	FirstInversion
	SecondInversion
	ThirdInversion
)

// Inversions returns every inversion in order
func Inversions() []Inversion {
	return []Inversion{RootPosition, FirstInversion, SecondInversion, ThirdInversion}
}

// InversionFromValue returns the inversion numbered 0..3
func InversionFromValue(value int) (Inversion, error) {
	if value < int(RootPosition) || value > int(ThirdInversion) {
		return 0, invalidToken("inversion", value)
	}
	return Inversion(value), nil
}

// ParseInversion accepts "root", "first", "second", "third" or 0..3
func ParseInversion(s string) (Inversion, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return InversionFromValue(v)
	}
	for _, inv := range Inversions() {
		if inv.String() == strings.ToLower(s) {
			return inv, nil
		}
	}
	return 0, invalidToken("inversion", s)
}

// BottomDegree returns the degree placed in the bass: tonic, mediant,
// dominant or leading tone.
func (i Inversion) BottomDegree() Degree {
	switch i {
	case FirstInversion:
		return Mediant
	case SecondInversion:
		return Dominant
	case ThirdInversion:
		return LeadingTone
	default:
		return Tonic
	}
}

func (i Inversion) String() string {
	switch i {
	case RootPosition:
		return "root"
	case FirstInversion:
		return "first"
	case SecondInversion:
		return "second"
	case ThirdInversion:
		return "third"
	default:
		return fmt.Sprintf("Inversion(%d)", int(i))
	}
}
