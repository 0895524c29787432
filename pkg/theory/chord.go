package theory

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ChordQuality is a named interval pattern above a root
type ChordQuality int

const (
	ChordMajor ChordQuality = iota
	ChordMinor
	ChordDiminished
	ChordAugmented
	ChordMajorSeventh
	ChordMinorSeventh
	ChordDominantSeventh
	ChordDiminishedSeventh
	ChordHalfDiminishedSeventh
	ChordMinorMajorSeventh
	ChordAugmentedMajorSeventh
)

type chordQualityInfo struct {
	symbol    string
	intervals []Interval
}

var chordQualityTable = [...]chordQualityInfo{
	ChordMajor:                 {"maj", []Interval{MustInterval(Perfect, 1), MustInterval(Major, 3), MustInterval(Perfect, 5)}},
	ChordMinor:                 {"min", []Interval{MustInterval(Perfect, 1), MustInterval(Minor, 3), MustInterval(Perfect, 5)}},
	ChordDiminished:            {"dim", []Interval{MustInterval(Perfect, 1), MustInterval(Minor, 3), MustInterval(Diminished, 5)}},
	ChordAugmented:             {"aug", []Interval{MustInterval(Perfect, 1), MustInterval(Major, 3), MustInterval(Augmented, 5)}},
	ChordMajorSeventh:          {"maj7", []Interval{MustInterval(Perfect, 1), MustInterval(Major, 3), MustInterval(Perfect, 5), MustInterval(Major, 7)}},
	ChordMinorSeventh:          {"min7", []Interval{MustInterval(Perfect, 1), MustInterval(Minor, 3), MustInterval(Perfect, 5), MustInterval(Minor, 7)}},
	ChordDominantSeventh:       {"7", []Interval{MustInterval(Perfect, 1), MustInterval(Major, 3), MustInterval(Perfect, 5), MustInterval(Minor, 7)}},
	ChordDiminishedSeventh:     {"dim7", []Interval{MustInterval(Perfect, 1), MustInterval(Minor, 3), MustInterval(Diminished, 5), MustInterval(Diminished, 7)}},
	ChordHalfDiminishedSeventh: {"m7(b5)", []Interval{MustInterval(Perfect, 1), MustInterval(Minor, 3), MustInterval(Diminished, 5), MustInterval(Minor, 7)}},
	ChordMinorMajorSeventh:     {"mMaj7", []Interval{MustInterval(Perfect, 1), MustInterval(Minor, 3), MustInterval(Perfect, 5), MustInterval(Major, 7)}},
	ChordAugmentedMajorSeventh: {"maj7(#5)", []Interval{MustInterval(Perfect, 1), MustInterval(Major, 3), MustInterval(Augmented, 5), MustInterval(Major, 7)}},
}

// ChordQualities returns every chord quality
func ChordQualities() []ChordQuality {
	qualities := make([]ChordQuality, len(chordQualityTable))
	for i := range chordQualityTable {
		qualities[i] = ChordQuality(i)
	}
	return qualities
}

// ParseChordQuality parses a symbol such as "maj7" or "m7(b5)"
func ParseChordQuality(s string) (ChordQuality, error) {
	for i, info := range chordQualityTable {
		if info.symbol == s {
			return ChordQuality(i), nil
		}
	}
	return 0, invalidToken("chord quality", s)
}

// Intervals returns the quality's intervals above the root
func (q ChordQuality) Intervals() []Interval {
	return append([]Interval(nil), chordQualityTable[q].intervals...)
}

func (q ChordQuality) String() string {
	if q < 0 || int(q) >= len(chordQualityTable) {
		return fmt.Sprintf("ChordQuality(%d)", int(q))
	}
	return chordQualityTable[q].symbol
}

// ChordElement is an Interval or a ChordQuality
type ChordElement interface {
	chordIntervals() []Interval
}

func (i Interval) chordIntervals() []Interval     { return []Interval{i} }
func (q ChordQuality) chordIntervals() []Interval { return q.Intervals() }

// Chord is an ordered set of pitches, lowest first when built
type Chord struct {
	pitches []Pitch
}

// NewChord keeps the pitches in the given order
func NewChord(pitches ...Pitch) Chord {
	return Chord{pitches: append([]Pitch(nil), pitches...)}
}

// ErrMissingRoot is returned by ChordBuilder.Build when no root was set
var ErrMissingRoot = errors.New("chord has no root")

// BuildChord stacks elements above root, removes duplicates, sorts by pitch
// height and rotates the inversion's degree into the bass.
func BuildChord(root Pitch, inversion Inversion, elements ...ChordElement) (Chord, error) {
	return buildChord(root, inversion.BottomDegree(), elements)
}

func buildChord(root Pitch, bottom Degree, elements []ChordElement) (Chord, error) {
	seen := make(map[Pitch]bool)
	var pitches []Pitch
	for _, element := range elements {
		for _, interval := range element.chordIntervals() {
			pitch, err := root.Step(interval)
			if err != nil {
				return Chord{}, err
			}
			if !seen[pitch] {
				seen[pitch] = true
				pitches = append(pitches, pitch)
			}
		}
	}
	sort.SliceStable(pitches, func(i, j int) bool {
		if pitches[i].ProgramNumber() != pitches[j].ProgramNumber() {
			return pitches[i].ProgramNumber() < pitches[j].ProgramNumber()
		}
		return pitches[i].diatonicIndex() < pitches[j].diatonicIndex()
	})

	letter := root.key.letter.Step(bottom.Value() - 1)
	target := -1
	for i, pitch := range pitches {
		if pitch.key.letter == letter {
			target = i
			break
		}
	}
	if target < 0 {
		return Chord{}, fmt.Errorf("%w: unable to invert chord, missing %s pitch", ErrInvalidConstruction, bottom)
	}

	bass := pitches[target]
	inverted := append([]Pitch(nil), pitches[target:]...)
	for _, pitch := range pitches[:target] {
		raised, err := bass.HigherPitch(pitch.key)
		if err != nil {
			return Chord{}, err
		}
		inverted = append(inverted, raised)
	}
	return Chord{pitches: inverted}, nil
}

// ChordBuilder assembles a chord step by step; errors surface in Build.
type ChordBuilder struct {
	root     *Pitch
	elements []ChordElement
	bottom   Degree
}

// NewChordBuilder returns an empty builder with the root in the bass
func NewChordBuilder() *ChordBuilder {
	return &ChordBuilder{bottom: Tonic}
}

// SetRoot sets the pitch the elements are measured from
func (b *ChordBuilder) SetRoot(root Pitch) *ChordBuilder {
	b.root = &root
	return b
}

// Add appends an interval or chord quality
func (b *ChordBuilder) Add(element ChordElement) *ChordBuilder {
	b.elements = append(b.elements, element)
	return b
}

// AddInterval appends a single interval above the root
func (b *ChordBuilder) AddInterval(interval Interval) *ChordBuilder {
	return b.Add(interval)
}

// AddQuality appends every interval of a chord quality
func (b *ChordBuilder) AddQuality(quality ChordQuality) *ChordBuilder {
	return b.Add(quality)
}

// SetInversion places the inversion's degree in the bass
func (b *ChordBuilder) SetInversion(inversion Inversion) *ChordBuilder {
	b.bottom = inversion.BottomDegree()
	return b
}

// SetBottomDegree places any degree in the bass
func (b *ChordBuilder) SetBottomDegree(degree Degree) *ChordBuilder {
	b.bottom = degree
	return b
}

// Build returns the chord
func (b *ChordBuilder) Build() (Chord, error) {
	if b.root == nil {
		return Chord{}, ErrMissingRoot
	}
	if !b.bottom.Valid() {
		return Chord{}, invalidToken("degree", int(b.bottom))
	}
	return buildChord(*b.root, b.bottom, b.elements)
}

// Pitches returns a copy of the chord's pitches
func (c Chord) Pitches() []Pitch {
	return append([]Pitch(nil), c.pitches...)
}

// Len returns the number of pitches
func (c Chord) Len() int {
	return len(c.pitches)
}

// Lowest returns the lowest sounding pitch
func (c Chord) Lowest() (Pitch, bool) {
	if len(c.pitches) == 0 {
		return Pitch{}, false
	}
	lowest := c.pitches[0]
	for _, p := range c.pitches[1:] {
		if p.IsLowerThan(lowest) {
			lowest = p
		}
	}
	return lowest, true
}

// Equal reports whether both chords hold the same pitches in the same order
func (c Chord) Equal(other Chord) bool {
	if len(c.pitches) != len(other.pitches) {
		return false
	}
	for i := range c.pitches {
		if c.pitches[i] != other.pitches[i] {
			return false
		}
	}
	return true
}

// Transpose steps every pitch up by interval
func (c Chord) Transpose(interval Interval) (Chord, error) {
	pitches := make([]Pitch, len(c.pitches))
	for i, p := range c.pitches {
		stepped, err := p.Step(interval)
		if err != nil {
			return Chord{}, err
		}
		pitches[i] = stepped
	}
	return Chord{pitches: pitches}, nil
}

// ParseChord parses "[<pitch>,<pitch>,...]"
func ParseChord(s string) (Chord, error) {
	open := strings.IndexByte(s, '[')
	closing := strings.LastIndexByte(s, ']')
	if open < 0 || closing < 0 {
		return Chord{}, missingInformation("chord", s)
	}
	if open != 0 || closing != len(s)-1 {
		return Chord{}, extraInformation("chord", s)
	}
	inner := s[1 : len(s)-1]
	if strings.ContainsAny(inner, "[]") {
		return Chord{}, extraInformation("chord", s)
	}
	if inner == "" {
		return Chord{}, nil
	}

	parts := strings.Split(inner, ",")
	pitches := make([]Pitch, 0, len(parts))
	for _, part := range parts {
		pitch, err := ParsePitch(part)
		if err != nil {
			return Chord{}, &ParseError{Kind: "chord", Input: s, Reason: err}
		}
		pitches = append(pitches, pitch)
	}
	return Chord{pitches: pitches}, nil
}

func (c Chord) String() string {
	parts := make([]string, len(c.pitches))
	for i, p := range c.pitches {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}
