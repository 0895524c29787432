package theory

import (
	"errors"
	"strings"
	"testing"
)

func keyStrings(keys []Key) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}

func pitchStrings(pitches []Pitch) string {
	parts := make([]string, len(pitches))
	for i, p := range pitches {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

func TestKeySignatureKeys(t *testing.T) {
	tests := []struct {
		signature string
		want      string
	}{
		{"Cmaj", "C D E F G A B"},
		{"Dmaj", "D E F# G A B C#"},
		{"Cbmaj", "Cb Db Eb Fb Gb Ab Bb"},
		{"Amin", "A B C D E F G"},
		{"Ahmin", "A B C D E F G#"},
		{"Cmmin", "C D Eb F G A B"},
		{"Ddor", "D E F G A B C"},
		{"Blyd", "B C# D# E# F# G# A#"},
		{"Cnmaj", "Cn D E F G A B"},
	}
	for _, tt := range tests {
		t.Run(tt.signature, func(t *testing.T) {
			if got := keyStrings(mustSignature(t, tt.signature).Keys()); got != tt.want {
				t.Errorf("%s.Keys() = %s, want %s", tt.signature, got, tt.want)
			}
		})
	}
}

func TestKeySignatureFromAccidentals(t *testing.T) {
	tests := []struct {
		accidental Accidental
		count      int
		mode       Mode
		want       string
	}{
		{Sharp, 0, ModeMajor, "Cmaj"},
		{Sharp, 1, ModeMajor, "Gmaj"},
		{Sharp, 2, ModeMajor, "Dmaj"},
		{Sharp, 5, ModeMajor, "Bmaj"},
		{Sharp, 6, ModeMajor, "F#maj"},
		{Sharp, 7, ModeMajor, "C#maj"},
		{Flat, 0, ModeMajor, "Cmaj"},
		{Flat, 1, ModeMajor, "Fmaj"},
		{Flat, 2, ModeMajor, "Bbmaj"},
		{Flat, 4, ModeMajor, "Abmaj"},
		{Flat, 7, ModeMajor, "Cbmaj"},
		{Natural, 0, ModeMajor, "Cmaj"},
		{Sharp, 2, ModeNaturalMinor, "Bmin"},
		{Flat, 3, ModeDorian, "Fdor"},
		{Sharp, 1, ModeMixolydian, "Dmix"},
		{Flat, 3, ModeHarmonicMinor, "Chmin"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			ks, err := KeySignatureFromAccidentals(tt.accidental, tt.count, tt.mode)
			if err != nil {
				t.Fatalf("KeySignatureFromAccidentals(%s, %d, %s) error = %v", tt.accidental.Name(), tt.count, tt.mode, err)
			}
			if ks.String() != tt.want {
				t.Errorf("KeySignatureFromAccidentals(%s, %d, %s) = %s, want %s",
					tt.accidental.Name(), tt.count, tt.mode, ks, tt.want)
			}
		})
	}
}

func TestKeySignatureFromAccidentalsErrors(t *testing.T) {
	if _, err := KeySignatureFromAccidentals(Sharp, 8, ModeMajor); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("8 sharps error = %v, want ErrInvalidToken", err)
	}
	if _, err := KeySignatureFromAccidentals(DoubleSharp, 2, ModeMajor); !errors.Is(err, ErrInvalidConstruction) {
		t.Errorf("2 double sharps error = %v, want ErrInvalidConstruction", err)
	}
	if _, err := KeySignatureFromAccidentals(Natural, 3, ModeMajor); !errors.Is(err, ErrInvalidConstruction) {
		t.Errorf("3 naturals error = %v, want ErrInvalidConstruction", err)
	}
}

func TestKeySignatureAccidentalCount(t *testing.T) {
	modes := []Mode{
		ModeIonian, ModeDorian, ModePhrygian, ModeLydian, ModeMixolydian, ModeAeolian, ModeLocrian,
		ModeMajor, ModeNaturalMinor,
	}
	for _, mode := range modes {
		for _, accidental := range []Accidental{Sharp, Flat} {
			for count := 0; count <= LetterCount; count++ {
				ks, err := KeySignatureFromAccidentals(accidental, count, mode)
				if err != nil {
					t.Fatalf("KeySignatureFromAccidentals(%s, %d, %s) error = %v", accidental.Name(), count, mode, err)
				}
				if ks.AccidentalCount() != count {
					t.Errorf("%s.AccidentalCount() = %d, want %d", ks, ks.AccidentalCount(), count)
				}
				want := accidental
				if count == 0 {
					want = None
				}
				if ks.AccidentalType() != want {
					t.Errorf("%s.AccidentalType() = %s, want %s", ks, ks.AccidentalType().Name(), want.Name())
				}
			}
		}
	}
}

func TestKeySignatureAccidentalCountBounds(t *testing.T) {
	for _, letter := range Letters(A) {
		for _, accidental := range Accidentals() {
			for _, mode := range Modes() {
				ks, err := NewKeySignature(NewKey(letter, accidental), mode)
				if err != nil {
					continue
				}
				if n := ks.AccidentalCount(); n < 0 || n > LetterCount {
					t.Errorf("%s.AccidentalCount() = %d, want 0..%d", ks, n, LetterCount)
				}
			}
		}
	}
}

func TestKeysWithAccidentalsOrder(t *testing.T) {
	tests := []struct {
		signature string
		want      string
	}{
		{"Cmaj", ""},
		{"Ebmaj", "Bb Eb Ab"},
		{"Emaj", "F# C# G# D#"},
		{"C#maj", "F# C# G# D# A# E# B#"},
		{"Cbmaj", "Bb Eb Ab Db Gb Cb Fb"},
		{"Ahmin", "G#"},
	}
	for _, tt := range tests {
		if got := keyStrings(mustSignature(t, tt.signature).KeysWithAccidentals()); got != tt.want {
			t.Errorf("%s.KeysWithAccidentals() = %q, want %q", tt.signature, got, tt.want)
		}
	}
}

func TestKeySignatureLookups(t *testing.T) {
	ks := mustSignature(t, "Dmaj")
	if got, err := ks.KeyOf(Mediant); err != nil || got.String() != "F#" {
		t.Errorf("KeyOf(Mediant) = %s, %v, want F#", got, err)
	}
	if got := ks.KeyOfLetter(C); got.String() != "C#" {
		t.Errorf("KeyOfLetter(C) = %s, want C#", got)
	}
	if got := ks.DegreeOf(mustKey(t, "F#")); got != Mediant {
		t.Errorf("DegreeOf(F#) = %s, want mediant", got)
	}
	if got := ks.DegreeOf(mustKey(t, "C")); got != LeadingTone {
		t.Errorf("DegreeOf(C) = %s, want leading tone", got)
	}
}

func TestKeyOfInvalidDegree(t *testing.T) {
	ks := mustSignature(t, "Dmaj")
	for _, d := range []Degree{0, -1, 8} {
		if _, err := ks.KeyOf(d); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("KeyOf(%d) error = %v, want ErrInvalidToken", int(d), err)
		}
	}
}

func TestNewKeySignatureInvalidTonic(t *testing.T) {
	for _, tonic := range []Key{NewKey(Letter(9), None), NewKey(C, Accidental(42))} {
		if _, err := NewKeySignature(tonic, ModeMajor); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("NewKeySignature(%s, major) error = %v, want ErrInvalidToken", tonic, err)
		}
	}
}

func TestKeySignatureRelativeParallel(t *testing.T) {
	tests := []struct {
		signature, relative, parallel string
	}{
		{"Cmaj", "Amin", "Cmin"},
		{"Amin", "Cmaj", "Amaj"},
		{"Ebmaj", "Cmin", "Ebmin"},
		{"Ahmin", "Cmaj", "Amaj"},
		{"Cion", "Aaeo", ""},
	}
	for _, tt := range tests {
		ks := mustSignature(t, tt.signature)
		relative, err := ks.Relative()
		if err != nil || relative.String() != tt.relative {
			t.Errorf("%s.Relative() = %v, %v, want %s", tt.signature, relative, err, tt.relative)
		}
		if tt.parallel == "" {
			continue
		}
		parallel, err := ks.Parallel()
		if err != nil || parallel.String() != tt.parallel {
			t.Errorf("%s.Parallel() = %v, %v, want %s", tt.signature, parallel, err, tt.parallel)
		}
	}

	if _, err := mustSignature(t, "Gdor").Relative(); !errors.Is(err, ErrInvalidConstruction) {
		t.Errorf("Gdor.Relative() error = %v, want ErrInvalidConstruction", err)
	}
	if _, err := mustSignature(t, "Gdor").Parallel(); !errors.Is(err, ErrInvalidConstruction) {
		t.Errorf("Gdor.Parallel() error = %v, want ErrInvalidConstruction", err)
	}
}

func TestParseKeySignature(t *testing.T) {
	for _, s := range []string{"Cmaj", "F#min", "Bbdor", "Gxlyd", "Ebhmin", "Cnmaj", "Abmmin", "Eloc"} {
		if got := mustSignature(t, s).String(); got != s {
			t.Errorf("ParseKeySignature(%q).String() = %q", s, got)
		}
	}

	tests := []struct {
		input string
		want  error
	}{
		{"", ErrMissingInformation},
		{"C", ErrMissingInformation},
		{"C#", ErrMissingInformation},
		{"Hmaj", ErrInvalidParse},
		{"Cfoo", ErrInvalidParse},
	}
	for _, tt := range tests {
		if _, err := ParseKeySignature(tt.input); !errors.Is(err, tt.want) {
			t.Errorf("ParseKeySignature(%q) error = %v, want %v", tt.input, err, tt.want)
		}
	}
}

func TestScalePitches(t *testing.T) {
	tests := []struct {
		signature string
		octave    int
		want      string
	}{
		{"Cmaj", 4, "C4 D4 E4 F4 G4 A4 B4 C5"},
		{"Bmaj", 3, "B3 C#4 D#4 E4 F#4 G#4 A#4 B4"},
		{"Cbmaj", 4, "Cb4 Db4 Eb4 Fb4 Gb4 Ab4 Bb4 Cb5"},
		{"Ahmin", 3, "A3 B3 C4 D4 E4 F4 G#4 A4"},
	}
	for _, tt := range tests {
		scale, err := ScaleOf(mustSignature(t, tt.signature))
		if err != nil {
			t.Fatalf("ScaleOf(%s) error = %v", tt.signature, err)
		}
		pitches, err := scale.Pitches(tt.octave)
		if err != nil {
			t.Fatalf("%s.Pitches(%d) error = %v", tt.signature, tt.octave, err)
		}
		if got := pitchStrings(pitches); got != tt.want {
			t.Errorf("%s.Pitches(%d) = %s, want %s", tt.signature, tt.octave, got, tt.want)
		}
	}
}

func TestScaleDescending(t *testing.T) {
	melodic, err := NewScale(NewKey(C, None), ModeMelodicMinor)
	if err != nil {
		t.Fatalf("NewScale() error = %v", err)
	}
	if got := keyStrings(melodic.Keys()); got != "C D Eb F G A B" {
		t.Errorf("ascending = %s", got)
	}
	if got := keyStrings(melodic.DescendingKeys()); got != "C Bb Ab G F Eb D" {
		t.Errorf("descending = %s", got)
	}
	pitches, err := melodic.DescendingPitches(5)
	if err != nil {
		t.Fatalf("DescendingPitches() error = %v", err)
	}
	if got := pitchStrings(pitches); got != "C5 Bb4 Ab4 G4 F4 Eb4 D4 C4" {
		t.Errorf("DescendingPitches(5) = %s", got)
	}

	major, err := NewScale(NewKey(D, None), ModeMajor)
	if err != nil {
		t.Fatalf("NewScale() error = %v", err)
	}
	if got := keyStrings(major.DescendingKeys()); got != "D C# B A G F# E" {
		t.Errorf("D major descending = %s", got)
	}
	if major.String() != "Dmaj" || major.Mode() != ModeMajor {
		t.Errorf("scale = %s, mode %s", major, major.Mode())
	}
}
