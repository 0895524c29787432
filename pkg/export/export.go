package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a file format
type Format string

const (
	FormatMIDI     Format = "midi"
	FormatText     Format = "text"
	FormatLilyPond Format = "lilypond"
	FormatUnknown  Format = "unknown"
)

// ErrUnknownFormat is returned for formats no encoder is registered for
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat accepts a format name or a file extension
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "midi", "mid":
		return FormatMIDI
	case "text", "txt", "etude":
		return FormatText
	case "lilypond", "ly":
		return FormatLilyPond
	default:
		return FormatUnknown
	}
}

// DetectFormat detects the format of a file based on its extension
func DetectFormat(filename string) Format {
	ext := filepath.Ext(filename)
	if ext == "" {
		return FormatUnknown
	}
	return ParseFormat(ext)
}

// DetectFormatFromContent detects format from file content
func DetectFormatFromContent(data []byte) Format {
	if len(data) >= 4 && string(data[:4]) == "MThd" {
		return FormatMIDI
	}

	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return FormatUnknown
	case bytes.HasPrefix(trimmed, []byte(`\version`)), trimmed[0] == '{':
		return FormatLilyPond
	case trimmed[0] == '#', trimmed[0] == '[':
		return FormatText
	default:
		return FormatUnknown
	}
}

// Exporter dispatches scores to the encoder registered for a format
type Exporter struct {
	encoders map[Format]Encoder
	order    []Format
}

// New creates an Exporter with the given encoders
func New(encoders ...Encoder) *Exporter {
	e := &Exporter{encoders: make(map[Format]Encoder)}
	for _, enc := range encoders {
		e.Register(enc)
	}
	return e
}

// Register adds an encoder, replacing any previous one for its format
func (e *Exporter) Register(enc Encoder) {
	if _, ok := e.encoders[enc.Format()]; !ok {
		e.order = append(e.order, enc.Format())
	}
	e.encoders[enc.Format()] = enc
}

// Encoder returns the encoder for a format
func (e *Exporter) Encoder(format Format) (Encoder, error) {
	enc, ok := e.encoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return enc, nil
}

// Formats returns the registered formats in registration order
func (e *Exporter) Formats() []Format {
	return append([]Format(nil), e.order...)
}

// Export encodes a score
func (e *Exporter) Export(score *Score, format Format) ([]byte, error) {
	enc, err := e.Encoder(format)
	if err != nil {
		return nil, err
	}
	return enc.Encode(score)
}

// ExportFile encodes a score into the format named by the path's extension
func (e *Exporter) ExportFile(score *Score, path string) error {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return errors.New("cannot determine output format from filename")
	}
	data, err := e.Export(score, format)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// Import decodes data in a format
func (e *Exporter) Import(data []byte, format Format) (*Score, error) {
	enc, err := e.Encoder(format)
	if err != nil {
		return nil, err
	}
	dec, ok := enc.(Decoder)
	if !ok {
		return nil, fmt.Errorf("%s cannot be read back", enc.Name())
	}
	return dec.Decode(data)
}

// ImportFile reads a file, detecting its format from the extension or,
// failing that, its content.
func (e *Exporter) ImportFile(path string) (*Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	format := DetectFormat(path)
	if format == FormatUnknown {
		format = DetectFormatFromContent(data)
	}
	if format == FormatUnknown {
		return nil, errors.New("cannot determine input format")
	}
	return e.Import(data, format)
}

// ConvertFile converts a file from one format to another
func (e *Exporter) ConvertFile(inputPath, outputPath string) error {
	score, err := e.ImportFile(inputPath)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	return e.ExportFile(score, outputPath)
}

// SupportedConversions returns a list of supported conversion paths
func (e *Exporter) SupportedConversions() []string {
	var conversions []string
	for _, from := range e.order {
		if _, ok := e.encoders[from].(Decoder); !ok {
			continue
		}
		for _, to := range e.order {
			if from != to {
				conversions = append(conversions, fmt.Sprintf("%s -> %s", from, to))
			}
		}
	}
	return conversions
}
