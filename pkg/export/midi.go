package export

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/james-see/etude/pkg/theory"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// MIDIEncoder writes scores as single-track Standard MIDI Files. Note
// numbers are program numbers. MIDI keeps no spelling, so decoded pitches
// are spelled with the encoder's policy.
type MIDIEncoder struct {
	ticksPerQuarter uint16
	policy          theory.SpellingPolicy
}

// NewMIDIEncoder creates a MIDI encoder spelling decoded notes with policy
func NewMIDIEncoder(policy theory.SpellingPolicy) *MIDIEncoder {
	if len(policy) == 0 {
		policy = theory.DefaultPolicy
	}
	return &MIDIEncoder{
		ticksPerQuarter: 480,
		policy:          policy,
	}
}

// Name returns the encoder's display name
func (m *MIDIEncoder) Name() string { return "Standard MIDI File" }

// Format returns FormatMIDI
func (m *MIDIEncoder) Format() Format { return FormatMIDI }

func (m *MIDIEncoder) ticksPerStep() uint32 {
	return uint32(m.ticksPerQuarter) / StepsPerQuarter
}

// Encode creates MIDI data from a score
func (m *MIDIEncoder) Encode(score *Score) ([]byte, error) {
	if err := validate(score); err != nil {
		return nil, err
	}

	tempo := score.Tempo
	if tempo <= 0 {
		tempo = DefaultTempo
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(m.ticksPerQuarter)

	var track smf.Track

	if score.Name != "" {
		name := score.Name
		if len(name) > 127 {
			name = name[:127]
		}
		track.Add(0, smf.Message(append([]byte{0xFF, 0x03, byte(len(name))}, name...)))
	}

	microsecondsPerBeat := uint32(60000000.0 / tempo)
	track.Add(0, smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsecondsPerBeat >> 16),
		byte(microsecondsPerBeat >> 8),
		byte(microsecondsPerBeat),
	}))

	// 4/4
	track.Add(0, smf.Message([]byte{0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08}))

	channel := uint8(0)
	var pending uint32 // ticks since the last written event

	for _, ev := range score.Events {
		duration := uint32(ev.Steps) * m.ticksPerStep()
		if ev.IsRest() {
			pending += duration
			continue
		}

		velocity := ev.Velocity
		if velocity == 0 {
			velocity = DefaultVelocity
		}

		notes := make([]uint8, len(ev.Pitches))
		for i, p := range ev.Pitches {
			notes[i] = uint8(p.ProgramNumber())
		}

		for i, note := range notes {
			delta := uint32(0)
			if i == 0 {
				delta = pending
			}
			track.Add(delta, midi.NoteOn(channel, note, velocity))
		}
		for i, note := range notes {
			delta := uint32(0)
			if i == 0 {
				delta = duration
			}
			track.Add(delta, midi.NoteOff(channel, note))
		}
		pending = 0
	}

	// Trailing rests keep the file's length
	if pending > 0 {
		track.Add(pending, smf.Message([]byte{0xFF, 0x06, 0x00}))
	}

	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

type midiNote struct {
	on, off  int64
	number   uint8
	velocity uint8
}

// Decode parses MIDI data. Notes starting on the same tick form one event;
// gaps between events become rests.
func (m *MIDIEncoder) Decode(data []byte) (*Score, error) {
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	ticksPerQuarter := int64(m.ticksPerQuarter)
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		ticksPerQuarter = int64(mt.Resolution())
	}
	ticksPerStep := ticksPerQuarter / StepsPerQuarter
	if ticksPerStep == 0 {
		return nil, fmt.Errorf("MIDI resolution %d is too coarse", ticksPerQuarter)
	}

	score := &Score{Name: "MIDI Score", Tempo: DefaultTempo}

	var (
		notes []midiNote
		end   int64
	)

	for _, track := range s.Tracks {
		open := make(map[uint8][]int)
		var currentTick int64

		for _, ev := range track {
			currentTick += int64(ev.Delta)
			if currentTick > end {
				end = currentTick
			}
			msg := ev.Message

			// Tempo meta (FF 51 03 tt tt tt)
			if len(msg) >= 6 && msg[0] == 0xFF && msg[1] == 0x51 && msg[2] == 0x03 {
				microsecondsPerBeat := uint32(msg[3])<<16 | uint32(msg[4])<<8 | uint32(msg[5])
				if microsecondsPerBeat > 0 {
					score.Tempo = 60000000.0 / float64(microsecondsPerBeat)
				}
				continue
			}

			// Track name meta (FF 03 len text)
			if len(msg) >= 3 && msg[0] == 0xFF && msg[1] == 0x03 {
				if n := int(msg[2]); n > 0 && n < 0x80 && len(msg) >= 3+n {
					score.Name = string(msg[3 : 3+n])
				}
				continue
			}

			if len(msg) < 3 {
				continue
			}
			status, number, velocity := msg[0], msg[1], msg[2]

			switch {
			case status >= 0x90 && status <= 0x9F && velocity > 0:
				open[number] = append(open[number], len(notes))
				notes = append(notes, midiNote{on: currentTick, off: -1, number: number, velocity: velocity})
			case (status >= 0x80 && status <= 0x8F) || (status >= 0x90 && status <= 0x9F):
				if started := open[number]; len(started) > 0 {
					notes[started[0]].off = currentTick
					open[number] = started[1:]
				}
			}
		}
	}

	if len(notes) == 0 {
		return nil, ErrEmptyScore
	}

	for i := range notes {
		if notes[i].off < 0 {
			notes[i].off = end
		}
	}
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].on != notes[j].on {
			return notes[i].on < notes[j].on
		}
		return notes[i].number < notes[j].number
	})

	toSteps := func(ticks int64) int {
		return int((ticks + ticksPerStep/2) / ticksPerStep)
	}

	var cursor int64
	for i := 0; i < len(notes); {
		j := i
		for j < len(notes) && notes[j].on == notes[i].on {
			j++
		}
		group := notes[i:j]

		if gap := toSteps(group[0].on - cursor); gap > 0 {
			score.Events = append(score.Events, Event{Steps: gap})
		}

		event := Event{Velocity: group[0].velocity}
		var longest int64
		for _, n := range group {
			p, err := theory.PitchFromProgramNumber(int(n.number), m.policy)
			if err != nil {
				return nil, fmt.Errorf("note %d: %w", n.number, err)
			}
			event.Pitches = append(event.Pitches, p)
			if d := n.off - n.on; d > longest {
				longest = d
			}
		}
		event.Steps = toSteps(longest)
		if event.Steps < 1 {
			event.Steps = 1
		}
		score.Events = append(score.Events, event)

		cursor = group[0].on + int64(event.Steps)*ticksPerStep
		i = j
	}

	if gap := toSteps(end - cursor); gap > 0 {
		score.Events = append(score.Events, Event{Steps: gap})
	}

	return score, nil
}
