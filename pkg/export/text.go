package export

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/james-see/etude/pkg/theory"
)

// TextEncoder writes one canonical chord string and its step count per line.
// Header lines start with '#'. Unlike MIDI it keeps every spelling.
//
//	# name: Cmaj
//	# tempo: 120
//	[C4,E4,G4] 4
//	[] 2
type TextEncoder struct{}

// NewTextEncoder creates a text encoder
func NewTextEncoder() *TextEncoder {
	return &TextEncoder{}
}

// Name returns the encoder's display name
func (t *TextEncoder) Name() string { return "etude text" }

// Format returns FormatText
func (t *TextEncoder) Format() Format { return FormatText }

// Encode writes the score
func (t *TextEncoder) Encode(score *Score) ([]byte, error) {
	if err := validate(score); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if score.Name != "" {
		fmt.Fprintf(&buf, "# name: %s\n", score.Name)
	}
	tempo := score.Tempo
	if tempo <= 0 {
		tempo = DefaultTempo
	}
	fmt.Fprintf(&buf, "# tempo: %s\n", strconv.FormatFloat(tempo, 'f', -1, 64))

	for _, ev := range score.Events {
		fmt.Fprintf(&buf, "%s %d\n", ev.Chord(), ev.Steps)
	}
	return buf.Bytes(), nil
}

// Decode reads a score back. A line without a step count lasts DefaultSteps.
func (t *TextEncoder) Decode(data []byte) (*Score, error) {
	score := &Score{Tempo: DefaultTempo}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			key, value, ok := strings.Cut(strings.TrimSpace(line[1:]), ":")
			if !ok {
				continue
			}
			value = strings.TrimSpace(value)
			switch strings.ToLower(strings.TrimSpace(key)) {
			case "name":
				score.Name = value
			case "tempo":
				tempo, err := strconv.ParseFloat(value, 64)
				if err != nil || tempo <= 0 {
					return nil, fmt.Errorf("line %d: invalid tempo %q", lineNumber, value)
				}
				score.Tempo = tempo
			}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) > 2 {
			return nil, fmt.Errorf("line %d: expected <chord> [steps], got %q", lineNumber, line)
		}
		chord, err := theory.ParseChord(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		n := DefaultSteps
		if len(fields) == 2 {
			n, err = strconv.Atoi(fields[1])
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("line %d: invalid step count %q", lineNumber, fields[1])
			}
		}
		score.Events = append(score.Events, Event{Pitches: chord.Pitches(), Steps: n})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read text score: %w", err)
	}

	if len(score.Events) == 0 {
		return nil, ErrEmptyScore
	}
	return score, nil
}
