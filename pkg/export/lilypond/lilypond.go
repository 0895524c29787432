// Package lilypond renders scores as LilyPond source
package lilypond

import (
	"errors"
	"fmt"
	"strings"

	"github.com/james-see/etude/pkg/export"
	"github.com/james-see/etude/pkg/theory"
)

// Version is written in the \version header
const Version = "2.24.0"

// ErrUnsupportedAccidental is returned for triple accidentals, which
// LilyPond's default note names cannot express.
var ErrUnsupportedAccidental = errors.New("accidental has no LilyPond note name")

// Encoder writes LilyPond notation. It cannot read it back.
type Encoder struct{}

// New creates a LilyPond encoder
func New() *Encoder {
	return &Encoder{}
}

// Name returns the encoder's display name
func (e *Encoder) Name() string { return "LilyPond" }

// Format returns export.FormatLilyPond
func (e *Encoder) Format() export.Format { return export.FormatLilyPond }

// Encode writes the score as a single voice
func (e *Encoder) Encode(score *export.Score) ([]byte, error) {
	if score == nil || len(score.Events) == 0 {
		return nil, export.ErrEmptyScore
	}

	var elems []string
	tempo := score.Tempo
	if tempo <= 0 {
		tempo = export.DefaultTempo
	}
	elems = append(elems, fmt.Sprintf(`\tempo 4 = %d`, int(tempo+0.5)))

	for i, ev := range score.Events {
		if ev.Steps <= 0 {
			return nil, fmt.Errorf("event %d has %d steps", i, ev.Steps)
		}
		elem, err := event(ev)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		elems = append(elems, elem)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\\version %q\n", Version)
	if score.Name != "" {
		fmt.Fprintf(&b, "\\header { title = %q }\n", score.Name)
	}
	fmt.Fprintf(&b, "{ %s }\n", strings.Join(elems, " "))
	return []byte(b.String()), nil
}

// event renders one event, tying durations that need more than one note
// value.
func event(ev export.Event) (string, error) {
	body := "r"
	if !ev.IsRest() {
		names := make([]string, len(ev.Pitches))
		for i, p := range ev.Pitches {
			name, err := Pitch(p)
			if err != nil {
				return "", err
			}
			names[i] = name
		}
		body = names[0]
		if len(names) > 1 {
			body = "<" + strings.Join(names, " ") + ">"
		}
	}

	durations := Durations(ev.Steps)
	parts := make([]string, len(durations))
	for i, d := range durations {
		parts[i] = body + d
		if !ev.IsRest() && i < len(durations)-1 {
			parts[i] += "~"
		}
	}
	return strings.Join(parts, " "), nil
}

var noteNames = map[theory.Letter]string{
	theory.C: "c", theory.D: "d", theory.E: "e", theory.F: "f",
	theory.G: "g", theory.A: "a", theory.B: "b",
}

var alterationSuffix = map[int]string{-2: "eses", -1: "es", 0: "", 1: "is", 2: "isis"}

// Pitch returns the Dutch LilyPond name of a pitch in absolute octave
// mode. LilyPond's c is MIDI note 48, which is C4 here, so c' is C5 and
// c, is C3. An explicit natural is forced with !.
func Pitch(p theory.Pitch) (string, error) {
	key := p.Key()
	suffix, ok := alterationSuffix[key.Accidental().Offset()]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedAccidental, key)
	}

	n := noteNames[key.Letter()] + suffix
	marks := p.Octave() - 4
	if marks > 0 {
		n += strings.Repeat("'", marks)
	} else if marks < 0 {
		n += strings.Repeat(",", -marks)
	}
	if key.IsNatural() {
		n += "!"
	}
	return n, nil
}

// durations in sixteenth steps, longest first
var durationValues = []struct {
	steps int
	name  string
}{
	{24, "1."},
	{16, "1"},
	{12, "2."},
	{8, "2"},
	{6, "4."},
	{4, "4"},
	{3, "8."},
	{2, "8"},
	{1, "16"},
}

// Durations splits a step count into LilyPond note values
func Durations(steps int) []string {
	var out []string
	for _, d := range durationValues {
		for steps >= d.steps {
			out = append(out, d.name)
			steps -= d.steps
		}
	}
	return out
}
