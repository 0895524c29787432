package theory

import (
	"errors"
	"testing"
)

func TestParsePitch(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		number int
	}{
		{"C4", "C4", 48},
		{"B#3", "B#3", 48},
		{"Cb4", "Cb4", 47},
		{"A4(57)", "A4", 57},
		{"Eb4", "Eb4", 51},
		{"Fx2", "Fx2", 31},
		{"B#-1", "B#-1", 0},
		{"C0", "C0", 0},
		{"G10", "G10", 127},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParsePitch(tt.input)
			if err != nil {
				t.Fatalf("ParsePitch(%q) error = %v", tt.input, err)
			}
			if p.String() != tt.want {
				t.Errorf("ParsePitch(%q) = %s, want %s", tt.input, p, tt.want)
			}
			if p.ProgramNumber() != tt.number {
				t.Errorf("ParsePitch(%q).ProgramNumber() = %d, want %d", tt.input, p.ProgramNumber(), tt.number)
			}
		})
	}
}

func TestParsePitchErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrMissingInformation},
		{"C", ErrMissingInformation},
		{"4", ErrMissingInformation},
		{"A4(", ErrMissingInformation},
		{"A4()", ErrMissingInformation},
		{"A4x", ErrExtraInformation},
		{"A4(57)x", ErrExtraInformation},
		{"A4(58)", ErrInvalidParse},
		{"H4", ErrInvalidParse},
		{"C-1", ErrInvalidConstruction},
		{"G#10", ErrInvalidConstruction},
		{"C04", ErrExtraInformation},
		{"C-0", ErrExtraInformation},
		{"B#-01", ErrExtraInformation},
		{"C4(+48)", ErrExtraInformation},
		{"C4(048)", ErrExtraInformation},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if _, err := ParsePitch(tt.input); !errors.Is(err, tt.want) {
				t.Errorf("ParsePitch(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestPitchStringWithProgramNumber(t *testing.T) {
	p := mustPitch(t, "A4")
	if got := p.StringWithProgramNumber(); got != "A4(57)" {
		t.Errorf("StringWithProgramNumber() = %q, want %q", got, "A4(57)")
	}
	back := mustPitch(t, p.StringWithProgramNumber())
	if back != p {
		t.Errorf("round trip = %s, want %s", back, p)
	}
}

func TestPitchFromProgramNumber(t *testing.T) {
	tests := []struct {
		number int
		policy SpellingPolicy
		want   string
	}{
		{0, DefaultPolicy, "C0"},
		{48, DefaultPolicy, "C4"},
		{61, DefaultPolicy, "C#5"},
		{61, FlatPolicy, "Db5"},
		{70, FlatPolicy, "Bb5"},
		{127, DefaultPolicy, "G10"},
	}
	for _, tt := range tests {
		got, err := PitchFromProgramNumber(tt.number, tt.policy)
		if err != nil {
			t.Fatalf("PitchFromProgramNumber(%d) error = %v", tt.number, err)
		}
		if got.String() != tt.want {
			t.Errorf("PitchFromProgramNumber(%d) = %s, want %s", tt.number, got, tt.want)
		}
	}

	for _, number := range []int{-1, 128} {
		if _, err := PitchFromProgramNumber(number, DefaultPolicy); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("PitchFromProgramNumber(%d) error = %v, want ErrInvalidToken", number, err)
		}
	}
}

func TestPitchProgramNumberRoundTrip(t *testing.T) {
	for _, policy := range []SpellingPolicy{DefaultPolicy, SharpPolicy, FlatPolicy} {
		for number := SmallestProgramNumber; number <= LargestProgramNumber; number++ {
			p, err := PitchFromProgramNumber(number, policy)
			if err != nil {
				t.Fatalf("PitchFromProgramNumber(%d) error = %v", number, err)
			}
			if p.ProgramNumber() != number {
				t.Errorf("PitchFromProgramNumber(%d) = %s with program number %d", number, p, p.ProgramNumber())
			}
			parsed, err := ParsePitch(p.String())
			if err != nil || parsed != p {
				t.Errorf("ParsePitch(%q) = %v, %v", p.String(), parsed, err)
			}
		}
	}
}

func TestPitchStep(t *testing.T) {
	tests := []struct {
		pitch, interval, want string
	}{
		{"C4", "m3", "Eb4"},
		{"C4", "M3", "E4"},
		{"C4", "P5", "G4"},
		{"B3", "m2", "C4"},
		{"E4", "M2", "F#4"},
		{"F#4", "M7", "E#5"},
		{"Bb3", "d5", "Fb4"},
		{"C4", "P8", "C5"},
	}
	for _, tt := range tests {
		got, err := mustPitch(t, tt.pitch).Step(mustParseInterval(t, tt.interval))
		if err != nil {
			t.Fatalf("%s.Step(%s) error = %v", tt.pitch, tt.interval, err)
		}
		if got.String() != tt.want {
			t.Errorf("%s.Step(%s) = %s, want %s", tt.pitch, tt.interval, got, tt.want)
		}
	}

	if _, err := mustPitch(t, "G10").Step(mustParseInterval(t, "M2")); !errors.Is(err, ErrInvalidConstruction) {
		t.Errorf("G10.Step(M2) error = %v, want ErrInvalidConstruction", err)
	}
}

func TestPitchStepDown(t *testing.T) {
	tests := []struct {
		pitch, interval, want string
	}{
		{"E4", "M3", "C4"},
		{"C4", "m3", "A3"},
		{"C4", "P5", "F3"},
		{"Eb4", "M2", "Db4"},
		{"C5", "P8", "C4"},
	}
	for _, tt := range tests {
		got, err := mustPitch(t, tt.pitch).StepDown(mustParseInterval(t, tt.interval))
		if err != nil {
			t.Fatalf("%s.StepDown(%s) error = %v", tt.pitch, tt.interval, err)
		}
		if got.String() != tt.want {
			t.Errorf("%s.StepDown(%s) = %s, want %s", tt.pitch, tt.interval, got, tt.want)
		}
	}
}

func TestPitchTranspose(t *testing.T) {
	c4 := mustPitch(t, "C4")

	up, err := c4.HalfStepUp(DefaultPolicy)
	if err != nil || up.String() != "C#4" {
		t.Errorf("C4.HalfStepUp() = %v, %v, want C#4", up, err)
	}
	down, err := c4.HalfStepDown(FlatPolicy)
	if err != nil || down.String() != "B3" {
		t.Errorf("C4.HalfStepDown() = %v, %v, want B3", down, err)
	}
	fifth, err := c4.Transpose(7, DefaultPolicy)
	if err != nil || fifth.String() != "G4" {
		t.Errorf("C4.Transpose(7) = %v, %v, want G4", fifth, err)
	}
	if _, err := c4.Transpose(-49, DefaultPolicy); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("C4.Transpose(-49) error = %v, want ErrInvalidToken", err)
	}
}

func TestPitchComparison(t *testing.T) {
	bSharp, c := mustPitch(t, "B#3"), mustPitch(t, "C4")
	if bSharp == c {
		t.Error("B#3 and C4 must not be equal")
	}
	if !bSharp.IsEnharmonic(c) || bSharp.Compare(c) != 0 {
		t.Error("B#3 and C4 must be enharmonic")
	}

	cFlat := mustPitch(t, "Cb4")
	if !cFlat.IsLowerThan(c) || !c.IsHigherThan(cFlat) || cFlat.Compare(c) != -1 {
		t.Error("Cb4 must sound lower than C4")
	}
}

func TestPitchHigherLower(t *testing.T) {
	tests := []struct {
		pitch, key   string
		higher, lower string
	}{
		{"C4", "C", "C5", "C3"},
		{"E4", "C", "C5", "C4"},
		{"B3", "C", "C4", "C3"},
		{"C4", "Cb", "Cb5", "Cb4"},
		{"C4", "B#", "B#4", "B#2"},
	}
	for _, tt := range tests {
		p, k := mustPitch(t, tt.pitch), mustKey(t, tt.key)
		higher, err := p.HigherPitch(k)
		if err != nil || higher.String() != tt.higher {
			t.Errorf("%s.HigherPitch(%s) = %v, %v, want %s", tt.pitch, tt.key, higher, err, tt.higher)
		}
		lower, err := p.LowerPitch(k)
		if err != nil || lower.String() != tt.lower {
			t.Errorf("%s.LowerPitch(%s) = %v, %v, want %s", tt.pitch, tt.key, lower, err, tt.lower)
		}
	}
}

func TestPitchApply(t *testing.T) {
	got, err := mustPitch(t, "F4").Apply(mustSignature(t, "Dmaj"))
	if err != nil || got.String() != "F#4" {
		t.Errorf("F4.Apply(Dmaj) = %v, %v, want F#4", got, err)
	}
}

func TestNewPitchInvalidKey(t *testing.T) {
	tests := []Key{
		NewKey(Letter(9), None),
		NewKey(Letter(-1), Sharp),
		NewKey(C, Accidental(42)),
	}
	for _, key := range tests {
		if _, err := NewPitch(key, 4); !errors.Is(err, ErrInvalidConstruction) {
			t.Errorf("NewPitch(%s, 4) error = %v, want ErrInvalidConstruction", key, err)
		}
	}
}
