package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/james-see/etude/pkg/theory"
)

// Operation identifies what a menu entry does with its input
type Operation int

const (
	OpScale Operation = iota
	OpKeySignature
	OpChord
	OpInterval
	OpTranspose
	OpExport
	OpConvert
	OpExit
)

// MenuItem represents a menu option
type MenuItem struct {
	Title       string
	Description string
	Placeholder string
	Op          Operation
}

var menuItems = []MenuItem{
	{Title: "Scale", Description: "Spell a scale up and down", Placeholder: "Dmaj, Cmmin, F#dor", Op: OpScale},
	{Title: "Key signature", Description: "Keys, accidentals, relative and parallel", Placeholder: "Ebmaj, G#hmin", Op: OpKeySignature},
	{Title: "Chord", Description: "Build a chord from a root, qualities, intervals and an inversion", Placeholder: "C4 maj7 first", Op: OpChord},
	{Title: "Interval", Description: "Interval between two pitches, or describe one", Placeholder: "C4 E4, or m7", Op: OpInterval},
	{Title: "Transpose", Description: "Step a pitch by an interval (-M3 steps down) or by semitones (+3, -2)", Placeholder: "C4 M3, Eb4 -2", Op: OpTranspose},
	{Title: "Export chord", Description: "Write a chord to a MIDI, text or LilyPond file", Placeholder: "[C4,E4,G4] chord.mid", Op: OpExport},
	{Title: "Convert score file", Description: "Convert a MIDI file to text or a text score to MIDI", Op: OpConvert},
	{Title: "Exit", Description: "Exit the application", Op: OpExit},
}

func joinKeys(keys []theory.Key) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}

func joinPitches(pitches []theory.Pitch) string {
	parts := make([]string, len(pitches))
	for i, p := range pitches {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

// evaluate runs a non-exporting operation on the user's input
func evaluate(op Operation, input string, policy theory.SpellingPolicy) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", errors.New("nothing entered")
	}
	switch op {
	case OpScale:
		return describeScale(input)
	case OpKeySignature:
		return describeKeySignature(input)
	case OpChord:
		return describeChord(input)
	case OpInterval:
		return describeInterval(input)
	case OpTranspose:
		return transpose(input, policy)
	default:
		return "", fmt.Errorf("operation %d takes no text input", op)
	}
}

func describeScale(input string) (string, error) {
	ks, err := theory.ParseKeySignature(input)
	if err != nil {
		return "", err
	}
	scale, err := theory.ScaleOf(ks)
	if err != nil {
		return "", err
	}
	up, err := scale.Pitches(4)
	if err != nil {
		return "", err
	}
	down, err := scale.DescendingPitches(5)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (%s)\nUp:   %s\nDown: %s",
		scale, ks.Mode().Name(), joinPitches(up), joinPitches(down)), nil
}

func describeKeySignature(input string) (string, error) {
	ks, err := theory.ParseKeySignature(input)
	if err != nil {
		return "", err
	}
	var s strings.Builder
	fmt.Fprintf(&s, "%s (%s)\n", ks, ks.Mode().Name())
	fmt.Fprintf(&s, "Keys:        %s\n", joinKeys(ks.Keys()))
	accidentals := joinKeys(ks.KeysWithAccidentals())
	if accidentals == "" {
		accidentals = "none"
	}
	fmt.Fprintf(&s, "Accidentals: %s (%d)", accidentals, ks.AccidentalCount())
	if relative, err := ks.Relative(); err == nil {
		fmt.Fprintf(&s, "\nRelative:    %s", relative)
	}
	if parallel, err := ks.Parallel(); err == nil {
		fmt.Fprintf(&s, "\nParallel:    %s", parallel)
	}
	return s.String(), nil
}

// parseChordDescription reads "<root> [quality|interval|inversion]..."; a root
// alone builds a major triad.
func parseChordDescription(input string) (theory.Chord, error) {
	fields := strings.Fields(input)
	root, err := theory.ParsePitch(fields[0])
	if err != nil {
		return theory.Chord{}, err
	}
	b := theory.NewChordBuilder().SetRoot(root)
	elements := 0
	for _, field := range fields[1:] {
		if q, err := theory.ParseChordQuality(field); err == nil {
			b.AddQuality(q)
			elements++
			continue
		}
		if i, err := theory.ParseInterval(field); err == nil {
			b.AddInterval(i)
			elements++
			continue
		}
		if inv, err := theory.ParseInversion(field); err == nil {
			b.SetInversion(inv)
			continue
		}
		return theory.Chord{}, fmt.Errorf("%q is not a chord quality, interval or inversion", field)
	}
	if elements == 0 {
		b.AddQuality(theory.ChordMajor)
	}
	return b.Build()
}

func describeChord(input string) (string, error) {
	chord, err := parseChordDescription(input)
	if err != nil {
		return "", err
	}
	numbers := make([]string, 0, chord.Len())
	for _, p := range chord.Pitches() {
		numbers = append(numbers, strconv.Itoa(p.ProgramNumber()))
	}
	return fmt.Sprintf("%s\nProgram numbers: %s", chord, strings.Join(numbers, " ")), nil
}

func describeInterval(input string) (string, error) {
	fields := strings.Fields(input)
	switch len(fields) {
	case 1:
		interval, err := theory.ParseInterval(fields[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: %d semitones, inverts to %s", interval, interval.Offset(), interval.Invert()), nil
	case 2:
		from, err := theory.ParsePitch(fields[0])
		if err != nil {
			return "", err
		}
		to, err := theory.ParsePitch(fields[1])
		if err != nil {
			return "", err
		}
		interval, err := theory.Between(from, to)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s → %s: %s (%d semitones)", from, to, interval, interval.Offset()), nil
	default:
		return "", errors.New("enter two pitches or one interval")
	}
}

func transpose(input string, policy theory.SpellingPolicy) (string, error) {
	fields := strings.Fields(input)
	if len(fields) != 2 {
		return "", errors.New("enter a pitch and an interval or semitone count")
	}
	p, err := theory.ParsePitch(fields[0])
	if err != nil {
		return "", err
	}

	amount := fields[1]
	var result theory.Pitch
	if semitones, convErr := strconv.Atoi(amount); convErr == nil {
		result, err = p.Transpose(semitones, policy)
	} else {
		down := strings.HasPrefix(amount, "-")
		interval, parseErr := theory.ParseInterval(strings.TrimLeft(amount, "+-"))
		if parseErr != nil {
			return "", parseErr
		}
		if down {
			result, err = p.StepDown(interval)
		} else {
			result, err = p.Step(interval)
		}
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s → %s", p.StringWithProgramNumber(), result.StringWithProgramNumber()), nil
}
