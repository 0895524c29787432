package theory

import (
	"fmt"
	"strings"
)

// Predicate tests a candidate spelling
type Predicate func(Key) bool

// SpellingPolicy chooses one spelling among enharmonic candidates. Predicates
// are tried in order; the first predicate satisfied by any candidate decides,
// and among several satisfying candidates the earliest one wins.
type SpellingPolicy []Predicate

// Predicates
var (
	IsNoneOrNatural Predicate = func(k Key) bool { return k.IsNone() || k.IsNatural() }
	IsSharp         Predicate = func(k Key) bool { return k.IsSharp() }
	IsFlat          Predicate = func(k Key) bool { return k.IsFlat() }
)

// HasAccidental matches keys carrying exactly a
func HasAccidental(a Accidental) Predicate {
	return func(k Key) bool { return k.accidental == a }
}

// HasLetter matches keys spelled with letter
func HasLetter(letter Letter) Predicate {
	return func(k Key) bool { return k.letter == letter }
}

// InKeySignature matches the spelling a key signature gives the candidate's
// letter.
func InKeySignature(ks KeySignature) Predicate {
	return func(k Key) bool {
		want := ks.KeyOfLetter(k.letter)
		// an explicitly natural tonic still spells its letter plainly
		if want.accidental == Natural {
			want = want.None()
		}
		return want == k
	}
}

// Policies
var (
	DefaultPolicy = SpellingPolicy{IsNoneOrNatural, IsSharp, IsFlat}
	SharpPolicy   = SpellingPolicy{IsNoneOrNatural, IsSharp}
	FlatPolicy    = SpellingPolicy{IsNoneOrNatural, IsFlat, IsSharp}
)

// LetterPolicy keeps the given letter whatever accidental that takes
func LetterPolicy(letter Letter) SpellingPolicy {
	return SpellingPolicy{HasLetter(letter)}
}

// KeySignaturePolicy prefers the signature's own spellings, then naturals,
// then accidentals of the signature's kind.
func KeySignaturePolicy(ks KeySignature) SpellingPolicy {
	if ks.AccidentalType() == Flat {
		return SpellingPolicy{InKeySignature(ks), IsNoneOrNatural, IsFlat, IsSharp}
	}
	return SpellingPolicy{InKeySignature(ks), IsNoneOrNatural, IsSharp, IsFlat}
}

// PolicyNames lists the names accepted by ParsePolicy
var PolicyNames = []string{"default", "sharp", "flat"}

// ParsePolicy returns a named policy
func ParsePolicy(name string) (SpellingPolicy, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return DefaultPolicy, nil
	case "sharp", "sharps":
		return SharpPolicy, nil
	case "flat", "flats":
		return FlatPolicy, nil
	default:
		return nil, invalidToken("spelling policy", name)
	}
}

// Then returns a policy trying p first and the extra predicates afterwards
func (p SpellingPolicy) Then(extra ...Predicate) SpellingPolicy {
	combined := make(SpellingPolicy, 0, len(p)+len(extra))
	combined = append(combined, p...)
	return append(combined, extra...)
}

// Resolve picks a candidate
func (p SpellingPolicy) Resolve(candidates []Key) (Key, error) {
	if len(p) == 0 {
		return Key{}, ErrEmptyPolicy
	}
	for _, predicate := range p {
		for _, candidate := range candidates {
			if predicate(candidate) {
				return candidate, nil
			}
		}
	}
	return Key{}, fmt.Errorf("%w: none of %v", ErrUnresolvableSpelling, candidates)
}
