package theory

import (
	"fmt"
	"strconv"
)

// Quality is the quality of an interval
type Quality int

const (
	Perfect Quality = iota
	Major
	Minor
	Diminished
	DoublyDiminished
	Augmented
	DoublyAugmented
)

var qualitySymbols = [...]string{"P", "M", "m", "d", "dd", "A", "AA"}

// Qualities returns every interval quality
func Qualities() []Quality {
	return []Quality{Perfect, Major, Minor, Diminished, DoublyDiminished, Augmented, DoublyAugmented}
}

// ParseQuality parses one of P, M, m, d, dd, A, AA
func ParseQuality(s string) (Quality, error) {
	for i, symbol := range qualitySymbols {
		if symbol == s {
			return Quality(i), nil
		}
	}
	return 0, invalidToken("interval quality", s)
}

func (q Quality) String() string {
	if q < Perfect || q > DoublyAugmented {
		return fmt.Sprintf("Quality(%d)", int(q))
	}
	return qualitySymbols[q]
}

// adjustment is the semitone difference from the major or perfect interval
// of the same distance.
func (q Quality) adjustment(perfectCapable bool) int {
	switch q {
	case Minor:
		return -1
	case Diminished:
		if perfectCapable {
			return -1
		}
		return -2
	case DoublyDiminished:
		if perfectCapable {
			return -2
		}
		return -3
	case Augmented:
		return 1
	case DoublyAugmented:
		return 2
	default:
		return 0
	}
}

var majorSteps = modeTable[ModeMajor].ascending

// Interval is a quality with a diatonic distance (1 = unison)
type Interval struct {
	quality  Quality
	distance int
}

// NewInterval validates the quality against the distance
func NewInterval(quality Quality, distance int) (Interval, error) {
	if distance <= 0 {
		return Interval{}, fmt.Errorf("%w: interval %s%d (distance must be a positive integer)", ErrInvalidConstruction, quality, distance)
	}
	switch quality {
	case Perfect:
		if !IsPerfectCapable(distance) {
			return Interval{}, fmt.Errorf("%w: interval %s%d (distance cannot have a perfect quality)", ErrInvalidConstruction, quality, distance)
		}
	case Major, Minor:
		if IsPerfectCapable(distance) {
			return Interval{}, fmt.Errorf("%w: interval %s%d (distance cannot have major or minor quality)", ErrInvalidConstruction, quality, distance)
		}
	case Diminished, DoublyDiminished, Augmented, DoublyAugmented:
	default:
		return Interval{}, invalidToken("interval quality", int(quality))
	}
	return Interval{quality: quality, distance: distance}, nil
}

// MustInterval is NewInterval for package-level tables; it panics on error.
func MustInterval(quality Quality, distance int) Interval {
	i, err := NewInterval(quality, distance)
	if err != nil {
		panic(err)
	}
	return i
}

// IsPerfectCapable reports whether distance mod 7 is 1, 4 or 5
func IsPerfectCapable(distance int) bool {
	switch distance % LetterCount {
	case 1, 4, 5:
		return true
	default:
		return false
	}
}

// Quality returns the interval's quality
func (i Interval) Quality() Quality {
	return i.quality
}

// Distance returns the diatonic distance
func (i Interval) Distance() int {
	return i.distance
}

// Offset returns the size in semitones
func (i Interval) Offset() int {
	return majorOffset(i.distance) + i.quality.adjustment(IsPerfectCapable(i.distance))
}

// majorOffset is the semitone size of the major or perfect interval of a
// distance.
func majorOffset(distance int) int {
	octaves := (distance - 1) / LetterCount
	return octaves*KeysInOctave + sum(majorSteps[:(distance-1)%LetterCount])
}

// Invert returns the complementary interval within an octave, e.g. M3 -> m6.
// Compound intervals are reduced first. Unisons and octaves invert into
// each other, so P1 -> P8 and P8 -> P1.
func (i Interval) Invert() Interval {
	distance := 9 - ((i.distance-1)%LetterCount + 1)
	if i.distance > 1 && (i.distance-1)%LetterCount == 0 {
		distance = 1
	}
	var quality Quality
	switch i.quality {
	case Major:
		quality = Minor
	case Minor:
		quality = Major
	case Diminished:
		quality = Augmented
	case DoublyDiminished:
		quality = DoublyAugmented
	case Augmented:
		quality = Diminished
	case DoublyAugmented:
		quality = DoublyDiminished
	default:
		quality = Perfect
	}
	return Interval{quality: quality, distance: distance}
}

// Between returns the interval from a up to b. b must not be diatonically
// below a.
func Between(a, b Pitch) (Interval, error) {
	distance := 1 + b.diatonicIndex() - a.diatonicIndex()
	if distance <= 0 {
		return Interval{}, fmt.Errorf("%w: interval from %s to %s has non-positive distance", ErrInvalidConstruction, a, b)
	}

	residual := b.ProgramNumber() - a.ProgramNumber() - majorOffset(distance)
	perfect := IsPerfectCapable(distance)

	var quality Quality
	switch residual {
	case -3:
		if perfect {
			return Interval{}, fmt.Errorf("%w: no interval from %s to %s", ErrInvalidConstruction, a, b)
		}
		quality = DoublyDiminished
	case -2:
		if perfect {
			quality = DoublyDiminished
		} else {
			quality = Diminished
		}
	case -1:
		if perfect {
			quality = Diminished
		} else {
			quality = Minor
		}
	case 0:
		if perfect {
			quality = Perfect
		} else {
			quality = Major
		}
	case 1:
		quality = Augmented
	case 2:
		quality = DoublyAugmented
	default:
		return Interval{}, fmt.Errorf("%w: no interval from %s to %s", ErrInvalidConstruction, a, b)
	}
	return NewInterval(quality, distance)
}

// ParseInterval parses "<quality><distance>", e.g. "M3", "P8", "dd7"
func ParseInterval(s string) (Interval, error) {
	split := 0
	for split < len(s) && !isDigit(s[split]) {
		split++
	}
	end := split
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if split == 0 || end == split {
		return Interval{}, missingInformation("interval", s)
	}
	if end != len(s) {
		return Interval{}, extraInformation("interval", s)
	}

	quality, err := ParseQuality(s[:split])
	if err != nil {
		return Interval{}, &ParseError{Kind: "interval", Input: s, Reason: err}
	}
	distance, err := strconv.Atoi(s[split:end])
	if err != nil {
		return Interval{}, &ParseError{Kind: "interval", Input: s, Reason: err}
	}
	if !canonicalNumber(s[split:end], distance) {
		return Interval{}, extraInformation("interval", s)
	}
	return NewInterval(quality, distance)
}

func (i Interval) String() string {
	return i.quality.String() + strconv.Itoa(i.distance)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// canonicalNumber reports whether s is written the way String writes n:
// no sign on positives and no leading zeros.
func canonicalNumber(s string, n int) bool {
	return s == strconv.Itoa(n)
}
