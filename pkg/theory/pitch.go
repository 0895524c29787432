package theory

import (
	"fmt"
	"strconv"
	"strings"
)

// Pitch is a key in a specific octave. Octave numbers change between B and
// C, so B#3 and C4 are enharmonic and share program number 48.
type Pitch struct {
	key    Key
	octave int
}

// NewPitch returns the pitch if its program number is within [0,127]
func NewPitch(key Key, octave int) (Pitch, error) {
	if !key.Valid() {
		return Pitch{}, fmt.Errorf("%w: key %s", ErrInvalidConstruction, key)
	}
	pn := programNumber(key, octave)
	if pn < SmallestProgramNumber || pn > LargestProgramNumber {
		return Pitch{}, fmt.Errorf("%w: pitch %s%d has program number %d outside [%d,%d]",
			ErrInvalidConstruction, key, octave, pn, SmallestProgramNumber, LargestProgramNumber)
	}
	return Pitch{key: key, octave: octave}, nil
}

func programNumber(key Key, octave int) int {
	return octave*KeysInOctave + key.displacement()
}

// PitchFromProgramNumber spells a program number with policy. The octave is
// whichever makes the chosen spelling sound at exactly programNumber.
func PitchFromProgramNumber(programNumber int, policy SpellingPolicy) (Pitch, error) {
	if programNumber < SmallestProgramNumber || programNumber > LargestProgramNumber {
		return Pitch{}, invalidToken("program number", programNumber)
	}
	key, err := KeyFromOffset(floorMod(programNumber, KeysInOctave), policy)
	if err != nil {
		return Pitch{}, err
	}
	rest := programNumber - key.displacement()
	if floorMod(rest, KeysInOctave) != 0 {
		return Pitch{}, invariant("key %s does not spell program number %d", key, programNumber)
	}
	return NewPitch(key, floorDiv(rest, KeysInOctave))
}

// Key returns the pitch's key
func (p Pitch) Key() Key {
	return p.key
}

// Octave returns the pitch's octave number
func (p Pitch) Octave() int {
	return p.octave
}

// ProgramNumber returns the MIDI-compatible pitch number
func (p Pitch) ProgramNumber() int {
	return programNumber(p.key, p.octave)
}

func (p Pitch) diatonicIndex() int {
	return p.octave*LetterCount + p.key.letter.diatonicIndex()
}

// Apply respells the pitch's letter for a key signature, keeping the octave
func (p Pitch) Apply(ks KeySignature) (Pitch, error) {
	key, err := p.key.Apply(ks)
	if err != nil {
		return Pitch{}, err
	}
	return NewPitch(key, p.octave)
}

// Transpose moves the pitch by semitones and spells the result with policy.
// The letter is not preserved.
func (p Pitch) Transpose(semitones int, policy SpellingPolicy) (Pitch, error) {
	return PitchFromProgramNumber(p.ProgramNumber()+semitones, policy)
}

// HalfStepUp is Transpose(1, policy)
func (p Pitch) HalfStepUp(policy SpellingPolicy) (Pitch, error) {
	return p.Transpose(1, policy)
}

// HalfStepDown is Transpose(-1, policy)
func (p Pitch) HalfStepDown(policy SpellingPolicy) (Pitch, error) {
	return p.Transpose(-1, policy)
}

// Step moves the pitch up by an interval. The result lands on the letter
// the interval's distance names, so a major third above C is always an E.
func (p Pitch) Step(interval Interval) (Pitch, error) {
	index := p.diatonicIndex() + interval.distance - 1
	letter := letterFromDiatonicIndex(index)
	octave := floorDiv(index, LetterCount)

	base, err := spellAscending(letter, p.key, ModeMajor)
	if err != nil {
		return Pitch{}, err
	}
	offset := base.accidental.Offset() + interval.quality.adjustment(IsPerfectCapable(interval.distance))
	accidental, err := spellingAccidental(offset)
	if err != nil {
		return Pitch{}, fmt.Errorf("%w: %s above %s needs an accidental of %d semitones", ErrInvalidConstruction, interval, p, offset)
	}
	return NewPitch(NewKey(letter, accidental), octave)
}

// StepDown moves the pitch down by an interval; it is the inverse of Step.
func (p Pitch) StepDown(interval Interval) (Pitch, error) {
	index := p.diatonicIndex() - (interval.distance - 1)
	letter := letterFromDiatonicIndex(index)
	octave := floorDiv(index, LetterCount)

	// The target sounds interval.Offset() semitones below p.
	target := p.ProgramNumber() - interval.Offset()
	key, err := spell(letter, target)
	if err != nil {
		return Pitch{}, fmt.Errorf("%w: %s below %s cannot be spelled", ErrInvalidConstruction, interval, p)
	}
	lower, err := NewPitch(key, octave)
	if err != nil {
		return Pitch{}, err
	}
	if lower.ProgramNumber() != target {
		return Pitch{}, fmt.Errorf("%w: %s below %s cannot be spelled", ErrInvalidConstruction, interval, p)
	}
	return lower, nil
}

// IsHigherThan compares program numbers
func (p Pitch) IsHigherThan(other Pitch) bool {
	return p.ProgramNumber() > other.ProgramNumber()
}

// IsLowerThan compares program numbers
func (p Pitch) IsLowerThan(other Pitch) bool {
	return p.ProgramNumber() < other.ProgramNumber()
}

// Compare returns -1, 0 or 1 by program number
func (p Pitch) Compare(other Pitch) int {
	a, b := p.ProgramNumber(), other.ProgramNumber()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// IsEnharmonic reports whether both pitches share a program number
func (p Pitch) IsEnharmonic(other Pitch) bool {
	return p.ProgramNumber() == other.ProgramNumber()
}

// HigherPitch returns the lowest pitch spelled with key that is above p
func (p Pitch) HigherPitch(key Key) (Pitch, error) {
	octave := floorDiv(p.ProgramNumber()-key.displacement(), KeysInOctave) + 1
	return NewPitch(key, octave)
}

// LowerPitch returns the highest pitch spelled with key that is below p
func (p Pitch) LowerPitch(key Key) (Pitch, error) {
	octave := floorDiv(p.ProgramNumber()-key.displacement()-1, KeysInOctave)
	return NewPitch(key, octave)
}

// ParsePitch parses "<key><octave>" optionally followed by
// "(<program number>)", which must match.
func ParsePitch(s string) (Pitch, error) {
	i := 0
	for i < len(s) && (isLetterChar(s[i]) || s[i] == '#') {
		i++
	}
	if i == 0 {
		return Pitch{}, missingInformation("pitch", s)
	}
	key, err := ParseKey(s[:i])
	if err != nil {
		return Pitch{}, &ParseError{Kind: "pitch", Input: s, Reason: err}
	}

	j := i
	if j < len(s) && s[j] == '-' {
		j++
	}
	digits := j
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j == digits {
		return Pitch{}, missingInformation("pitch", s)
	}
	octave, err := strconv.Atoi(s[i:j])
	if err != nil {
		return Pitch{}, &ParseError{Kind: "pitch", Input: s, Reason: err}
	}
	if !canonicalNumber(s[i:j], octave) {
		return Pitch{}, extraInformation("pitch", s)
	}

	pitch, err := NewPitch(key, octave)
	if err != nil {
		return Pitch{}, err
	}

	rest := s[j:]
	if rest == "" {
		return pitch, nil
	}
	if rest[0] != '(' {
		return Pitch{}, extraInformation("pitch", s)
	}
	closing := strings.IndexByte(rest, ')')
	if closing < 0 {
		return Pitch{}, missingInformation("pitch", s)
	}
	if closing != len(rest)-1 {
		return Pitch{}, extraInformation("pitch", s)
	}
	number := rest[1:closing]
	if number == "" {
		return Pitch{}, missingInformation("pitch", s)
	}
	pn, err := strconv.Atoi(number)
	if err != nil {
		return Pitch{}, &ParseError{Kind: "pitch", Input: s, Reason: err}
	}
	if !canonicalNumber(number, pn) {
		return Pitch{}, extraInformation("pitch", s)
	}
	if pn != pitch.ProgramNumber() {
		return Pitch{}, &ParseError{Kind: "pitch", Input: s,
			Reason: fmt.Errorf("program number %d doesn't match key and octave (%d)", pn, pitch.ProgramNumber())}
	}
	return pitch, nil
}

// String returns "<key><octave>", e.g. "Eb4"
func (p Pitch) String() string {
	return p.key.String() + strconv.Itoa(p.octave)
}

// StringWithProgramNumber returns "<key><octave>(<program number>)"
func (p Pitch) StringWithProgramNumber() string {
	return fmt.Sprintf("%s(%d)", p, p.ProgramNumber())
}

func isLetterChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
