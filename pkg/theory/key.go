package theory

// Key is a letter with an accidental, e.g. "F#" or "Bb"
type Key struct {
	letter     Letter
	accidental Accidental
}

// NewKey returns the key for a letter and accidental. Out-of-range values
// are kept; check Valid, or let NewPitch and NewKeySignature reject them.
func NewKey(letter Letter, accidental Accidental) Key {
	return Key{letter: letter, accidental: accidental}
}

// Valid reports whether both the letter and the accidental are known
func (k Key) Valid() bool {
	return k.letter.Valid() && k.accidental.Valid()
}

// Letter returns the key's letter
func (k Key) Letter() Letter {
	return k.letter
}

// Accidental returns the key's accidental
func (k Key) Accidental() Accidental {
	return k.accidental
}

// Offset returns the chromatic offset reduced to [0,12)
func (k Key) Offset() int {
	return floorMod(k.displacement(), KeysInOctave)
}

// displacement is the unreduced semitone position relative to the C of the
// letter's own octave; Cb is -1 and B# is 12.
func (k Key) displacement() int {
	return k.letter.Offset() + k.accidental.Offset()
}

// Apply respells the key's letter so that it belongs to the key signature
func (k Key) Apply(ks KeySignature) (Key, error) {
	return spellAscending(k.letter, ks.tonic, ks.mode)
}

// WithAccidental returns the key's letter with a different accidental
func (k Key) WithAccidental(a Accidental) Key {
	return Key{letter: k.letter, accidental: a}
}

func (k Key) None() Key        { return k.WithAccidental(None) }
func (k Key) Natural() Key     { return k.WithAccidental(Natural) }
func (k Key) Sharp() Key       { return k.WithAccidental(Sharp) }
func (k Key) DoubleSharp() Key { return k.WithAccidental(DoubleSharp) }
func (k Key) TripleSharp() Key { return k.WithAccidental(TripleSharp) }
func (k Key) Flat() Key        { return k.WithAccidental(Flat) }
func (k Key) DoubleFlat() Key  { return k.WithAccidental(DoubleFlat) }
func (k Key) TripleFlat() Key  { return k.WithAccidental(TripleFlat) }

func (k Key) IsNone() bool        { return k.accidental == None }
func (k Key) IsNatural() bool     { return k.accidental == Natural }
func (k Key) IsSharp() bool       { return k.accidental == Sharp }
func (k Key) IsDoubleSharp() bool { return k.accidental == DoubleSharp }
func (k Key) IsTripleSharp() bool { return k.accidental == TripleSharp }
func (k Key) IsFlat() bool        { return k.accidental == Flat }
func (k Key) IsDoubleFlat() bool  { return k.accidental == DoubleFlat }
func (k Key) IsTripleFlat() bool  { return k.accidental == TripleFlat }

// IsEnharmonic reports whether both keys sound the same
func (k Key) IsEnharmonic(other Key) bool {
	return k.Offset() == other.Offset()
}

// IsEnharmonic reports whether a and b share a chromatic offset
func IsEnharmonic(a, b Key) bool {
	return a.IsEnharmonic(b)
}

// Respell returns the key spelled with another letter, if an accidental in
// [-3,3] can reach the same offset.
func (k Key) Respell(letter Letter) (Key, bool) {
	diff := nearest(k.Offset() - letter.Offset())
	if diff < MinAccidentalOffset || diff > MaxAccidentalOffset {
		return Key{}, false
	}
	if letter == k.letter {
		return k, true
	}
	accidental, err := spellingAccidental(diff)
	if err != nil {
		return Key{}, false
	}
	return Key{letter: letter, accidental: accidental}, true
}

// Enharmonics returns every spelling of the key's offset, one per letter
// that can reach it, in letter order A..G. The key itself is included.
func (k Key) Enharmonics() []Key {
	keys := make([]Key, 0, LetterCount)
	for _, letter := range Letters(A) {
		if respelled, ok := k.Respell(letter); ok {
			keys = append(keys, respelled)
		}
	}
	return keys
}

// KeyFromOffset spells a chromatic offset in [0,12) using policy
func KeyFromOffset(offset int, policy SpellingPolicy) (Key, error) {
	canonical, err := sharpSpelling(offset)
	if err != nil {
		return Key{}, err
	}
	return policy.Resolve(canonical.Enharmonics())
}

// sharpSpelling puts white keys on their letter and black keys as a sharp on
// the letter below.
func sharpSpelling(offset int) (Key, error) {
	switch offset {
	case 0:
		return Key{letter: C}, nil
	case 1:
		return Key{letter: C, accidental: Sharp}, nil
	case 2:
		return Key{letter: D}, nil
	case 3:
		return Key{letter: D, accidental: Sharp}, nil
	case 4:
		return Key{letter: E}, nil
	case 5:
		return Key{letter: F}, nil
	case 6:
		return Key{letter: F, accidental: Sharp}, nil
	case 7:
		return Key{letter: G}, nil
	case 8:
		return Key{letter: G, accidental: Sharp}, nil
	case 9:
		return Key{letter: A}, nil
	case 10:
		return Key{letter: A, accidental: Sharp}, nil
	case 11:
		return Key{letter: B}, nil
	default:
		return Key{}, invalidToken("offset", offset)
	}
}

// ParseKey parses "<letter><accidental>", e.g. "C", "f#", "Bbb"
func ParseKey(s string) (Key, error) {
	if s == "" {
		return Key{}, missingInformation("key", s)
	}
	letter, err := LetterFromChar(s[0])
	if err != nil {
		return Key{}, &ParseError{Kind: "key", Input: s, Reason: err}
	}
	accidental, err := ParseAccidental(s[1:])
	if err != nil {
		return Key{}, &ParseError{Kind: "key", Input: s, Reason: err}
	}
	return Key{letter: letter, accidental: accidental}, nil
}

func (k Key) String() string {
	return k.letter.String() + k.accidental.String()
}

// spellAscending spells letter as a member of the scale on tonic in mode,
// walking the ascending pattern.
func spellAscending(letter Letter, tonic Key, mode Mode) (Key, error) {
	steps := floorMod(letter.Ordinal()-tonic.letter.Ordinal(), LetterCount)
	target := tonic.displacement() + sum(mode.Ascending()[:steps])
	return spell(letter, target)
}

// spellDescending is spellAscending walking down from the upper tonic with
// the descending pattern.
func spellDescending(letter Letter, tonic Key, mode Mode) (Key, error) {
	steps := floorMod(tonic.letter.Ordinal()-letter.Ordinal(), LetterCount)
	target := tonic.displacement() + sum(mode.Descending()[:steps])
	return spell(letter, target)
}

// spell picks the accidental that moves letter onto target (mod 12),
// wrapping the octave when the plain difference exceeds an accidental.
func spell(letter Letter, target int) (Key, error) {
	diff := nearest(floorMod(target, KeysInOctave) - letter.Offset())
	accidental, err := spellingAccidental(diff)
	if err != nil {
		return Key{}, err
	}
	return Key{letter: letter, accidental: accidental}, nil
}

// nearest reduces a semitone difference to (-6,6].
func nearest(diff int) int {
	diff = floorMod(diff, KeysInOctave)
	if diff > KeysInOctave/2 {
		diff -= KeysInOctave
	}
	return diff
}
