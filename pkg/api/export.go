package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/james-see/etude/pkg/export"
	"github.com/james-see/etude/pkg/theory"
)

// ExportRequest names what to export: a chord, a scale by key signature, or
// a chord built from a root.
type ExportRequest struct {
	Name       string        `json:"name"`
	Chord      string        `json:"chord"`
	Signature  string        `json:"signature"`
	Octave     *int          `json:"octave"`
	Descending bool          `json:"descending"`
	Build      *ChordRequest `json:"build"`
	Steps      int           `json:"steps"`
	Tempo      float64       `json:"tempo"`
}

func (r ExportRequest) score() (*export.Score, error) {
	var score *export.Score
	switch {
	case r.Chord != "":
		chord, err := theory.ParseChord(r.Chord)
		if err != nil {
			return nil, err
		}
		score = export.ScoreFromChord(r.Chord, chord, r.Steps)
	case r.Build != nil:
		chord, err := r.Build.build()
		if err != nil {
			return nil, err
		}
		score = export.ScoreFromChord(chord.String(), chord, r.Steps)
	case r.Signature != "":
		ks, err := theory.ParseKeySignature(r.Signature)
		if err != nil {
			return nil, err
		}
		scale, err := theory.ScaleOf(ks)
		if err != nil {
			return nil, err
		}
		octave := 4
		if r.Octave != nil {
			octave = *r.Octave
		}
		score, err = export.ScoreFromScale(scale, octave, r.Descending, r.Steps)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("one of chord, build or signature is required")
	}

	if r.Name != "" {
		score.Name = r.Name
	}
	if r.Tempo > 0 {
		score.Tempo = r.Tempo
	}
	return score, nil
}

func contentType(format export.Format) string {
	switch format {
	case export.FormatMIDI:
		return "audio/midi"
	case export.FormatText:
		return "text/plain; charset=utf-8"
	case export.FormatLilyPond:
		return "text/x-lilypond; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

func extension(format export.Format) string {
	switch format {
	case export.FormatMIDI:
		return ".mid"
	case export.FormatLilyPond:
		return ".ly"
	default:
		return ".txt"
	}
}

// handleExport godoc
// @Summary Export a chord or scale
// @Description Renders a chord, built chord or scale in a file format
// @Tags export
// @Accept json
// @Produce application/octet-stream
// @Param format path string true "midi, text or lilypond"
// @Param request body ExportRequest true "What to export"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/export/{format} [post]
func (s *Server) handleExport(c *gin.Context) {
	format := export.ParseFormat(c.Param("format"))
	if _, err := s.exporter.Encoder(format); err != nil {
		badRequest(c, err)
		return
	}

	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	score, err := req.score()
	if err != nil {
		badRequest(c, err)
		return
	}

	data, err := s.exporter.Export(score, format)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", "etude"+extension(format)))
	c.Data(http.StatusOK, contentType(format), data)
}

// handleConvert godoc
// @Summary Convert a file
// @Description Upload a MIDI or text score and receive it in another format
// @Tags export
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param format path string true "Target format: midi, text or lilypond"
// @Param file formData file true "File to convert"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/convert/{format} [post]
func (s *Server) handleConvert(c *gin.Context) {
	toFormat := export.ParseFormat(c.Param("format"))
	if _, err := s.exporter.Encoder(toFormat); err != nil {
		badRequest(c, err)
		return
	}

	// Get uploaded file
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	fromFormat := export.DetectFormat(header.Filename)
	if fromFormat == export.FormatUnknown {
		fromFormat = export.DetectFormatFromContent(data)
	}
	score, err := s.exporter.Import(data, fromFormat)
	if err != nil {
		badRequest(c, err)
		return
	}

	result, err := s.exporter.Export(score, toFormat)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	outputName := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	if outputName == "" {
		outputName = "converted"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputName+extension(toFormat)))
	c.Data(http.StatusOK, contentType(toFormat), result)
}
