package theory

import (
	"fmt"
	"sort"
	"strings"
)

// Circle of fifths orders in which accidentals are added to a signature
var (
	OrderOfFlats  = []Letter{B, E, A, D, G, C, F}
	OrderOfSharps = []Letter{F, C, G, D, A, E, B}
)

// KeySignature is a tonic with a mode; it fixes the spelling of all seven
// letters.
type KeySignature struct {
	tonic Key
	mode  Mode
	keys  [LetterCount]Key // indexed by degree - 1
}

// NewKeySignature derives the seven keys of tonic in mode
func NewKeySignature(tonic Key, mode Mode) (KeySignature, error) {
	if !mode.Valid() {
		return KeySignature{}, invalidToken("mode", int(mode))
	}
	if !tonic.letter.Valid() {
		return KeySignature{}, invalidToken("letter", int(tonic.letter))
	}
	if !tonic.accidental.Valid() {
		return KeySignature{}, invalidToken("accidental", int(tonic.accidental))
	}
	ks := KeySignature{tonic: tonic, mode: mode}
	for i, letter := range Letters(tonic.letter) {
		key, err := spellAscending(letter, tonic, mode)
		if err != nil {
			return KeySignature{}, fmt.Errorf("%w: %s%s cannot spell %s", ErrInvalidConstruction, tonic, mode, letter)
		}
		ks.keys[i] = key
	}
	// the tonic keeps its own accidental, e.g. an explicit natural
	ks.keys[0] = tonic
	return ks, nil
}

// MustKeySignature is NewKeySignature that panics on error
func MustKeySignature(tonic Key, mode Mode) KeySignature {
	ks, err := NewKeySignature(tonic, mode)
	if err != nil {
		panic(err)
	}
	return ks
}

// Tonic returns the signature's tonic
func (ks KeySignature) Tonic() Key {
	return ks.tonic
}

// Mode returns the signature's mode
func (ks KeySignature) Mode() Mode {
	return ks.mode
}

// Keys returns the seven keys from tonic to leading tone
func (ks KeySignature) Keys() []Key {
	return append([]Key(nil), ks.keys[:]...)
}

// KeyOf returns the key at a degree
func (ks KeySignature) KeyOf(degree Degree) (Key, error) {
	if !degree.Valid() {
		return Key{}, invalidToken("degree", int(degree))
	}
	return ks.at(degree), nil
}

func (ks KeySignature) at(degree Degree) Key {
	return ks.keys[degree-1]
}

// KeyOfLetter returns the signature's spelling of letter
func (ks KeySignature) KeyOfLetter(letter Letter) Key {
	return ks.keys[floorMod(letter.Ordinal()-ks.tonic.letter.Ordinal(), LetterCount)]
}

// DegreeOf returns the degree of a key's letter
func (ks KeySignature) DegreeOf(key Key) Degree {
	return Degree(floorMod(key.letter.Ordinal()-ks.tonic.letter.Ordinal(), LetterCount) + 1)
}

// KeysWithAccidentals returns the keys carrying a flat or sharp, flats first
// in BEADGCF order then sharps in FCGDAEB order.
func (ks KeySignature) KeysWithAccidentals() []Key {
	var flats, sharps []Key
	for _, key := range ks.keys {
		switch {
		case key.accidental.IsFlat():
			flats = append(flats, key)
		case key.accidental.IsSharp():
			sharps = append(sharps, key)
		}
	}
	sortByOrder(flats, OrderOfFlats)
	sortByOrder(sharps, OrderOfSharps)
	return append(flats, sharps...)
}

func sortByOrder(keys []Key, order []Letter) {
	position := make(map[Letter]int, len(order))
	for i, letter := range order {
		position[letter] = i
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return position[keys[i].letter] < position[keys[j].letter]
	})
}

// AccidentalCount returns how many of the seven keys carry an accidental
func (ks KeySignature) AccidentalCount() int {
	return len(ks.KeysWithAccidentals())
}

// AccidentalType returns Flat, Sharp or None depending on which kind of
// accidental the signature uses most.
func (ks KeySignature) AccidentalType() Accidental {
	flats, sharps := 0, 0
	for _, key := range ks.keys {
		switch {
		case key.accidental.IsFlat():
			flats++
		case key.accidental.IsSharp():
			sharps++
		}
	}
	switch {
	case flats > sharps:
		return Flat
	case sharps > 0:
		return Sharp
	default:
		return None
	}
}

// Relative returns the signature sharing this one's accidentals with the
// opposite major/minor quality: the submediant for major modes, the mediant
// for minor modes.
func (ks KeySignature) Relative() (KeySignature, error) {
	switch ks.mode {
	case ModeMajor:
		return NewKeySignature(ks.at(Submediant), ModeNaturalMinor)
	case ModeIonian:
		return NewKeySignature(ks.at(Submediant), ModeAeolian)
	case ModeAeolian:
		return NewKeySignature(ks.at(Mediant), ModeIonian)
	case ModeNaturalMinor, ModeHarmonicMinor, ModeMelodicMinor:
		return NewKeySignature(ks.at(Mediant), ModeMajor)
	default:
		return KeySignature{}, fmt.Errorf("%w: mode %s has no relative", ErrInvalidConstruction, ks.mode.Name())
	}
}

// Parallel returns the signature on the same tonic with the opposite
// major/minor quality.
func (ks KeySignature) Parallel() (KeySignature, error) {
	mode, err := ks.mode.Parallel()
	if err != nil {
		return KeySignature{}, err
	}
	return NewKeySignature(ks.tonic, mode)
}

// KeySignatureFromAccidentals finds the signature in mode whose major
// equivalent carries count flats or sharps.
func KeySignatureFromAccidentals(accidental Accidental, count int, mode Mode) (KeySignature, error) {
	if count < 0 || count > LetterCount {
		return KeySignature{}, invalidToken("accidental count", count)
	}

	var tonic Key
	switch {
	case accidental.IsSharp() && accidental.Offset() == 1:
		letter := OrderOfSharps[(count+1)%LetterCount]
		tonic = NewKey(letter, None)
		if containsLetter(OrderOfSharps[:count], letter) {
			tonic = tonic.Sharp()
		}
	case accidental.IsFlat() && accidental.Offset() == -1:
		letter := OrderOfFlats[floorMod(count-2, LetterCount)]
		tonic = NewKey(letter, None)
		if containsLetter(OrderOfFlats[:count], letter) {
			tonic = tonic.Flat()
		}
	case accidental.Offset() == 0 && count == 0:
		tonic = NewKey(C, None)
	default:
		return KeySignature{}, fmt.Errorf("%w: %d %s accidentals", ErrInvalidConstruction, count, accidental.Name())
	}

	major, err := NewKeySignature(tonic, ModeMajor)
	if err != nil {
		return KeySignature{}, err
	}
	return NewKeySignature(major.at(mode.majorDegree()), mode)
}

func containsLetter(letters []Letter, letter Letter) bool {
	for _, l := range letters {
		if l == letter {
			return true
		}
	}
	return false
}

// ParseKeySignature parses "<key><mode symbol>", e.g. "Dmaj" or "F#min"
func ParseKeySignature(s string) (KeySignature, error) {
	if s == "" {
		return KeySignature{}, missingInformation("key signature", s)
	}
	i := 1
	for i < len(s) && strings.IndexByte("bn#x", s[i]) >= 0 {
		i++
	}
	key, err := ParseKey(s[:i])
	if err != nil {
		return KeySignature{}, &ParseError{Kind: "key signature", Input: s, Reason: err}
	}
	if i == len(s) {
		return KeySignature{}, missingInformation("key signature", s)
	}
	mode, err := ParseMode(s[i:])
	if err != nil {
		return KeySignature{}, &ParseError{Kind: "key signature", Input: s, Reason: err}
	}
	return NewKeySignature(key, mode)
}

func (ks KeySignature) String() string {
	return ks.tonic.String() + ks.mode.String()
}
