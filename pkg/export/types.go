// Package export writes chords, scales and pitch lines to music file formats
// and reads them back.
package export

import (
	"errors"
	"fmt"

	"github.com/james-see/etude/pkg/theory"
)

const (
	// DefaultTempo is the tempo of a new score in BPM
	DefaultTempo = 120.0
	// DefaultSteps is a quarter note
	DefaultSteps = 4
	// DefaultVelocity is used for events without a velocity
	DefaultVelocity = 100
	// StepsPerQuarter fixes a step to a sixteenth note
	StepsPerQuarter = 4
)

// Event is a set of pitches sounding together. An event without pitches is
// a rest.
type Event struct {
	Pitches  []theory.Pitch
	Steps    int   // length in sixteenth-note steps
	Velocity uint8 // 0 means DefaultVelocity
}

// IsRest reports whether the event has no pitches
func (e Event) IsRest() bool {
	return len(e.Pitches) == 0
}

// Chord returns the event's pitches as a chord
func (e Event) Chord() theory.Chord {
	return theory.NewChord(e.Pitches...)
}

// Score is an ordered sequence of events in 4/4
type Score struct {
	Name   string
	Tempo  float64
	Events []Event
}

// Steps returns the total length of the score in steps
func (s *Score) Steps() int {
	total := 0
	for _, ev := range s.Events {
		total += ev.Steps
	}
	return total
}

// Chords returns one chord per event, rests included as empty chords
func (s *Score) Chords() []theory.Chord {
	chords := make([]theory.Chord, len(s.Events))
	for i, ev := range s.Events {
		chords[i] = ev.Chord()
	}
	return chords
}

// Encoder writes a score in one file format
type Encoder interface {
	Name() string
	Format() Format
	Encode(score *Score) ([]byte, error)
}

// Decoder is implemented by encoders that can also read their format
type Decoder interface {
	Decode(data []byte) (*Score, error)
}

// ErrEmptyScore is returned when encoding a score without events
var ErrEmptyScore = errors.New("score has no events")

func validate(score *Score) error {
	if score == nil {
		return errors.New("nil score")
	}
	if len(score.Events) == 0 {
		return ErrEmptyScore
	}
	for i, ev := range score.Events {
		if ev.Steps <= 0 {
			return fmt.Errorf("event %d has %d steps", i, ev.Steps)
		}
	}
	return nil
}

func steps(n int) int {
	if n <= 0 {
		return DefaultSteps
	}
	return n
}

// ScoreFromChord returns a score holding a single chord
func ScoreFromChord(name string, chord theory.Chord, n int) *Score {
	return &Score{
		Name:   name,
		Tempo:  DefaultTempo,
		Events: []Event{{Pitches: chord.Pitches(), Steps: steps(n)}},
	}
}

// ScoreFromPitches returns a score playing the pitches one after another
func ScoreFromPitches(name string, pitches []theory.Pitch, n int) *Score {
	score := &Score{Name: name, Tempo: DefaultTempo}
	for _, p := range pitches {
		score.Events = append(score.Events, Event{Pitches: []theory.Pitch{p}, Steps: steps(n)})
	}
	return score
}

// ScoreFromScale plays a scale from its tonic in octave, up or down
func ScoreFromScale(scale theory.Scale, octave int, descending bool, n int) (*Score, error) {
	var (
		pitches []theory.Pitch
		err     error
	)
	if descending {
		pitches, err = scale.DescendingPitches(octave)
	} else {
		pitches, err = scale.Pitches(octave)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to realize %s: %w", scale, err)
	}
	return ScoreFromPitches(scale.String(), pitches, n), nil
}
