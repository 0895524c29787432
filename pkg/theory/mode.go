package theory

import "fmt"

// Mode is a named step pattern, also used as the quality of a Scale
type Mode int

const (
	ModeIonian Mode = iota
	ModeDorian
	ModePhrygian
	ModeLydian
	ModeMixolydian
	ModeAeolian
	ModeLocrian
	ModeMajor
	ModeNaturalMinor
	ModeHarmonicMinor
	ModeMelodicMinor
)

type modeInfo struct {
	name       string
	symbol     string
	ascending  []int
	descending []int // nil means the reversed, negated ascending pattern
}

var modeTable = [...]modeInfo{
	ModeIonian:        {"ionian", "ion", []int{2, 2, 1, 2, 2, 2, 1}, nil},
	ModeDorian:        {"dorian", "dor", []int{2, 1, 2, 2, 2, 1, 2}, nil},
	ModePhrygian:      {"phrygian", "phr", []int{1, 2, 2, 2, 1, 2, 2}, nil},
	ModeLydian:        {"lydian", "lyd", []int{2, 2, 2, 1, 2, 2, 1}, nil},
	ModeMixolydian:    {"mixolydian", "mix", []int{2, 2, 1, 2, 2, 1, 2}, nil},
	ModeAeolian:       {"aeolian", "aeo", []int{2, 1, 2, 2, 1, 2, 2}, nil},
	ModeLocrian:       {"locrian", "loc", []int{1, 2, 2, 1, 2, 2, 2}, nil},
	ModeMajor:         {"major", "maj", []int{2, 2, 1, 2, 2, 2, 1}, nil},
	ModeNaturalMinor:  {"natural minor", "min", []int{2, 1, 2, 2, 1, 2, 2}, nil},
	ModeHarmonicMinor: {"harmonic minor", "hmin", []int{2, 1, 2, 2, 1, 3, 1}, nil},
	ModeMelodicMinor:  {"melodic minor", "mmin", []int{2, 1, 2, 2, 2, 2, 1}, []int{-2, -2, -1, -2, -2, -1, -2}},
}

// Modes returns every mode in declaration order
func Modes() []Mode {
	modes := make([]Mode, len(modeTable))
	for i := range modeTable {
		modes[i] = Mode(i)
	}
	return modes
}

// ParseMode accepts a mode symbol ("maj") or name ("major")
func ParseMode(s string) (Mode, error) {
	for i, info := range modeTable {
		if info.symbol == s || info.name == s {
			return Mode(i), nil
		}
	}
	return 0, invalidToken("mode", s)
}

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	return m >= 0 && int(m) < len(modeTable)
}

// Ascending returns a copy of the ascending semitone steps
func (m Mode) Ascending() []int {
	return append([]int(nil), modeTable[m].ascending...)
}

// Descending returns a copy of the descending semitone steps, walking down
// from the upper tonic. Steps are negative.
func (m Mode) Descending() []int {
	if d := modeTable[m].descending; d != nil {
		return append([]int(nil), d...)
	}
	asc := modeTable[m].ascending
	desc := make([]int, len(asc))
	for i, step := range asc {
		desc[len(asc)-1-i] = -step
	}
	return desc
}

// IsOctaveRepeating reports whether both directions span exactly one octave
func (m Mode) IsOctaveRepeating() bool {
	return abs(sum(m.Ascending())) == KeysInOctave && abs(sum(m.Descending())) == KeysInOctave
}

// IsMajor reports whether the mode has a major third above its tonic
func (m Mode) IsMajor() bool {
	asc := modeTable[m].ascending
	return asc[0]+asc[1] == 4
}

// IsMinor reports whether the mode has a minor third above its tonic
func (m Mode) IsMinor() bool {
	asc := modeTable[m].ascending
	return asc[0]+asc[1] == 3
}

// Parallel returns the mode of opposite quality sharing the tonic. Only the
// major and minor modes have one.
func (m Mode) Parallel() (Mode, error) {
	switch m {
	case ModeMajor:
		return ModeNaturalMinor, nil
	case ModeIonian:
		return ModeAeolian, nil
	case ModeNaturalMinor, ModeHarmonicMinor, ModeMelodicMinor:
		return ModeMajor, nil
	case ModeAeolian:
		return ModeIonian, nil
	default:
		return m, fmt.Errorf("%w: mode %s has no parallel mode", ErrInvalidConstruction, m.Name())
	}
}

// Name returns the descriptive name, e.g. "harmonic minor"
func (m Mode) Name() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeTable[m].name
}

// String returns the symbol used in key signature notation
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeTable[m].symbol
}

// majorDegree is the degree of the relative major scale this mode starts on.
func (m Mode) majorDegree() Degree {
	switch m {
	case ModeDorian:
		return Supertonic
	case ModePhrygian:
		return Mediant
	case ModeLydian:
		return Subdominant
	case ModeMixolydian:
		return Dominant
	case ModeAeolian, ModeNaturalMinor, ModeHarmonicMinor, ModeMelodicMinor:
		return Submediant
	case ModeLocrian:
		return LeadingTone
	default:
		return Tonic
	}
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
