package theory

import "fmt"

// Scale spells the notes of a mode on a tonic in both directions
type Scale struct {
	signature  KeySignature
	descending [LetterCount]Key // from the tonic downward
}

// NewScale derives the ascending and descending spellings
func NewScale(tonic Key, mode Mode) (Scale, error) {
	ks, err := NewKeySignature(tonic, mode)
	if err != nil {
		return Scale{}, err
	}
	return ScaleOf(ks)
}

// ScaleOf returns the scale of an existing key signature
func ScaleOf(ks KeySignature) (Scale, error) {
	s := Scale{signature: ks}
	s.descending[0] = ks.tonic
	for i := 1; i < LetterCount; i++ {
		letter := ks.tonic.letter.Step(-i)
		key, err := spellDescending(letter, ks.tonic, ks.mode)
		if err != nil {
			return Scale{}, fmt.Errorf("%w: %s cannot spell %s descending", ErrInvalidConstruction, ks, letter)
		}
		s.descending[i] = key
	}
	return s, nil
}

// KeySignature returns the scale's key signature
func (s Scale) KeySignature() KeySignature {
	return s.signature
}

// Mode returns the scale's quality
func (s Scale) Mode() Mode {
	return s.signature.mode
}

// Keys returns the ascending keys, one per degree
func (s Scale) Keys() []Key {
	return s.signature.Keys()
}

// DescendingKeys returns the keys walking down from the tonic
func (s Scale) DescendingKeys() []Key {
	return append([]Key(nil), s.descending[:]...)
}

// Pitches realizes the ascending scale from the tonic in octave up to the
// tonic an octave higher.
func (s Scale) Pitches(octave int) ([]Pitch, error) {
	current, err := NewPitch(s.signature.tonic, octave)
	if err != nil {
		return nil, err
	}
	pitches := []Pitch{current}
	for _, key := range append(s.Keys()[1:], s.signature.tonic) {
		current, err = current.HigherPitch(key)
		if err != nil {
			return nil, err
		}
		pitches = append(pitches, current)
	}
	return pitches, nil
}

// DescendingPitches realizes the descending scale from the tonic in octave
// down to the tonic an octave lower.
func (s Scale) DescendingPitches(octave int) ([]Pitch, error) {
	current, err := NewPitch(s.signature.tonic, octave)
	if err != nil {
		return nil, err
	}
	pitches := []Pitch{current}
	for _, key := range append(s.DescendingKeys()[1:], s.signature.tonic) {
		current, err = current.LowerPitch(key)
		if err != nil {
			return nil, err
		}
		pitches = append(pitches, current)
	}
	return pitches, nil
}

func (s Scale) String() string {
	return s.signature.String()
}
