package theory

import (
	"errors"
	"testing"
)

func TestLetterOffsets(t *testing.T) {
	tests := []struct {
		letter  Letter
		offset  int
		ordinal int
		symbol  string
	}{
		{A, 9, 0, "A"},
		{B, 11, 1, "B"},
		{C, 0, 2, "C"},
		{D, 2, 3, "D"},
		{E, 4, 4, "E"},
		{F, 5, 5, "F"},
		{G, 7, 6, "G"},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			if got := tt.letter.Offset(); got != tt.offset {
				t.Errorf("%s.Offset() = %d, want %d", tt.symbol, got, tt.offset)
			}
			if got := tt.letter.Ordinal(); got != tt.ordinal {
				t.Errorf("%s.Ordinal() = %d, want %d", tt.symbol, got, tt.ordinal)
			}
			if got := tt.letter.String(); got != tt.symbol {
				t.Errorf("String() = %q, want %q", got, tt.symbol)
			}
			parsed, err := ParseLetter(tt.symbol)
			if err != nil || parsed != tt.letter {
				t.Errorf("ParseLetter(%q) = %v, %v, want %v", tt.symbol, parsed, err, tt.letter)
			}
		})
	}
}

func TestInvalidLetterOffset(t *testing.T) {
	for _, l := range []Letter{-1, 7, 9} {
		if got := l.Offset(); got != 0 {
			t.Errorf("Letter(%d).Offset() = %d, want 0", int(l), got)
		}
		if got := NewKey(l, Sharp).Valid(); got {
			t.Errorf("NewKey(Letter(%d), Sharp).Valid() = true", int(l))
		}
	}
}

func TestLettersRotation(t *testing.T) {
	got := Letters(C)
	want := []Letter{C, D, E, F, G, A, B}
	if len(got) != len(want) {
		t.Fatalf("Letters(C) returned %d letters, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Letters(C)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLetterFromChar(t *testing.T) {
	if l, err := LetterFromChar('e'); err != nil || l != E {
		t.Errorf("LetterFromChar('e') = %v, %v, want E", l, err)
	}
	if _, err := LetterFromChar('H'); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("LetterFromChar('H') error = %v, want ErrInvalidToken", err)
	}
}

func TestAccidentalRoundTrip(t *testing.T) {
	for _, a := range Accidentals() {
		t.Run(a.Name(), func(t *testing.T) {
			parsed, err := ParseAccidental(a.String())
			if err != nil {
				t.Fatalf("ParseAccidental(%q) error = %v", a.String(), err)
			}
			if parsed != a {
				t.Errorf("ParseAccidental(%q) = %v, want %v", a.String(), parsed, a)
			}
		})
	}
}

func TestAccidentalFromOffset(t *testing.T) {
	tests := []struct {
		offset int
		want   Accidental
	}{
		{-3, TripleFlat},
		{-2, DoubleFlat},
		{-1, Flat},
		{0, Natural},
		{1, Sharp},
		{2, DoubleSharp},
		{3, TripleSharp},
	}
	for _, tt := range tests {
		got, err := AccidentalFromOffset(tt.offset)
		if err != nil || got != tt.want {
			t.Errorf("AccidentalFromOffset(%d) = %v, %v, want %v", tt.offset, got, err, tt.want)
		}
		if got.Offset() != tt.offset {
			t.Errorf("%v.Offset() = %d, want %d", got, got.Offset(), tt.offset)
		}
	}

	for _, offset := range []int{-4, 4, 12} {
		if _, err := AccidentalFromOffset(offset); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("AccidentalFromOffset(%d) error = %v, want ErrInvalidToken", offset, err)
		}
	}
}

func TestNoneAndNaturalAreDistinct(t *testing.T) {
	if None == Natural {
		t.Fatal("None and Natural must be different accidentals")
	}
	if None.Offset() != Natural.Offset() {
		t.Errorf("None.Offset() = %d, Natural.Offset() = %d, want equal", None.Offset(), Natural.Offset())
	}
	if _, err := ParseAccidental("nn"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ParseAccidental(\"nn\") error = %v, want ErrInvalidToken", err)
	}
}

func TestDegrees(t *testing.T) {
	got := Degrees(Dominant)
	want := []Degree{Dominant, Submediant, LeadingTone, Tonic, Supertonic, Mediant, Subdominant}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Degrees(Dominant)[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	for _, v := range []int{0, 8} {
		if _, err := DegreeFromValue(v); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("DegreeFromValue(%d) error = %v, want ErrInvalidToken", v, err)
		}
	}

	for _, d := range Degrees(Tonic) {
		parsed, err := ParseDegree(d.String())
		if err != nil || parsed != d {
			t.Errorf("ParseDegree(%q) = %v, %v, want %v", d.String(), parsed, err, d)
		}
	}
}

func TestInversionBottomDegree(t *testing.T) {
	tests := []struct {
		inversion Inversion
		want      Degree
	}{
		{RootPosition, Tonic},
		{FirstInversion, Mediant},
		{SecondInversion, Dominant},
		{ThirdInversion, LeadingTone},
	}
	for _, tt := range tests {
		if got := tt.inversion.BottomDegree(); got != tt.want {
			t.Errorf("%v.BottomDegree() = %v, want %v", tt.inversion, got, tt.want)
		}
		parsed, err := ParseInversion(tt.inversion.String())
		if err != nil || parsed != tt.inversion {
			t.Errorf("ParseInversion(%q) = %v, %v", tt.inversion.String(), parsed, err)
		}
	}
}

func TestModes(t *testing.T) {
	for _, m := range Modes() {
		t.Run(m.Name(), func(t *testing.T) {
			if !m.IsOctaveRepeating() {
				t.Errorf("%s should repeat at the octave", m.Name())
			}
			parsed, err := ParseMode(m.String())
			if err != nil || parsed != m {
				t.Errorf("ParseMode(%q) = %v, %v, want %v", m.String(), parsed, err, m)
			}
			if m.IsMajor() == m.IsMinor() {
				t.Errorf("%s must be exactly one of major or minor", m.Name())
			}
		})
	}
}

func TestModeDescending(t *testing.T) {
	got := ModeMajor.Descending()
	want := []int{-1, -2, -2, -2, -1, -2, -2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ModeMajor.Descending()[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	// the returned slice is a copy
	got[0] = 100
	if ModeMajor.Descending()[0] != -1 {
		t.Error("Descending() exposed the mode's table")
	}
}

func TestModeParallel(t *testing.T) {
	if m, err := ModeMajor.Parallel(); err != nil || m != ModeNaturalMinor {
		t.Errorf("ModeMajor.Parallel() = %v, %v", m, err)
	}
	if m, err := ModeHarmonicMinor.Parallel(); err != nil || m != ModeMajor {
		t.Errorf("ModeHarmonicMinor.Parallel() = %v, %v", m, err)
	}
	if _, err := ModeDorian.Parallel(); !errors.Is(err, ErrInvalidConstruction) {
		t.Errorf("ModeDorian.Parallel() error = %v, want ErrInvalidConstruction", err)
	}
}

func TestQualityRoundTrip(t *testing.T) {
	for _, q := range Qualities() {
		parsed, err := ParseQuality(q.String())
		if err != nil || parsed != q {
			t.Errorf("ParseQuality(%q) = %v, %v, want %v", q.String(), parsed, err, q)
		}
	}
	if _, err := ParseQuality("X"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ParseQuality(\"X\") error = %v, want ErrInvalidToken", err)
	}
}
