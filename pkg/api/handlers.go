package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/james-see/etude/pkg/theory"
)

func keyJSON(k theory.Key) gin.H {
	enharmonics := make([]string, 0)
	for _, e := range k.Enharmonics() {
		enharmonics = append(enharmonics, e.String())
	}
	return gin.H{
		"key":         k.String(),
		"letter":      k.Letter().String(),
		"accidental":  k.Accidental().Name(),
		"offset":      k.Offset(),
		"enharmonics": enharmonics,
	}
}

func pitchJSON(p theory.Pitch) gin.H {
	return gin.H{
		"pitch":         p.String(),
		"key":           p.Key().String(),
		"octave":        p.Octave(),
		"programNumber": p.ProgramNumber(),
	}
}

func keyStrings(keys []theory.Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

func pitchStrings(pitches []theory.Pitch) []string {
	out := make([]string, len(pitches))
	for i, p := range pitches {
		out[i] = p.String()
	}
	return out
}

func signatureJSON(ks theory.KeySignature) gin.H {
	h := gin.H{
		"signature":   ks.String(),
		"tonic":       ks.Tonic().String(),
		"mode":        ks.Mode().Name(),
		"keys":        keyStrings(ks.Keys()),
		"accidentals": keyStrings(ks.KeysWithAccidentals()),
		"count":       ks.AccidentalCount(),
		"type":        ks.AccidentalType().Name(),
	}
	if relative, err := ks.Relative(); err == nil {
		h["relative"] = relative.String()
	}
	if parallel, err := ks.Parallel(); err == nil {
		h["parallel"] = parallel.String()
	}
	return h
}

func chordJSON(chord theory.Chord) gin.H {
	numbers := make([]int, 0, chord.Len())
	for _, p := range chord.Pitches() {
		numbers = append(numbers, p.ProgramNumber())
	}
	h := gin.H{
		"chord":          chord.String(),
		"pitches":        pitchStrings(chord.Pitches()),
		"programNumbers": numbers,
	}
	if lowest, ok := chord.Lowest(); ok {
		h["lowest"] = lowest.String()
	}
	return h
}

// getKey godoc
// @Summary Describe a key
// @Description Parses a key such as C# (escape # as %23) and lists its enharmonic spellings
// @Tags theory
// @Produce json
// @Param key path string true "Key, e.g. Bb"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/key/{key} [get]
func getKey(c *gin.Context) {
	k, err := theory.ParseKey(c.Param("key"))
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, keyJSON(k))
}

// spellOffset godoc
// @Summary Spell a chromatic offset
// @Description Spells an offset in [0,12) with a spelling policy
// @Tags theory
// @Produce json
// @Param offset path int true "Offset from C"
// @Param policy query string false "default, sharp or flat"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/spell/{offset} [get]
func spellOffset(c *gin.Context) {
	offset, err := strconv.Atoi(c.Param("offset"))
	if err != nil {
		badRequest(c, fmt.Errorf("invalid offset %q", c.Param("offset")))
		return
	}
	policy, ok := policyParam(c)
	if !ok {
		return
	}
	k, err := theory.KeyFromOffset(offset, policy)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, keyJSON(k))
}

// getPitch godoc
// @Summary Describe a pitch
// @Description Parses a pitch such as Eb4 or A4(57)
// @Tags theory
// @Produce json
// @Param pitch path string true "Pitch"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/pitch/{pitch} [get]
func getPitch(c *gin.Context) {
	p, err := theory.ParsePitch(c.Param("pitch"))
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, pitchJSON(p))
}

// stepPitch godoc
// @Summary Step a pitch
// @Description Moves a pitch by an interval (keeping letter logic) or by semitones (respelled with a policy)
// @Tags theory
// @Produce json
// @Param pitch path string true "Pitch"
// @Param interval query string false "Interval, e.g. M3"
// @Param semitones query int false "Semitones"
// @Param direction query string false "up (default) or down"
// @Param policy query string false "default, sharp or flat"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/pitch/{pitch}/step [get]
func stepPitch(c *gin.Context) {
	p, err := theory.ParsePitch(c.Param("pitch"))
	if err != nil {
		badRequest(c, err)
		return
	}
	down := c.DefaultQuery("direction", "up") == "down"

	var result theory.Pitch
	switch {
	case c.Query("interval") != "":
		interval, err := theory.ParseInterval(c.Query("interval"))
		if err != nil {
			badRequest(c, err)
			return
		}
		if down {
			result, err = p.StepDown(interval)
		} else {
			result, err = p.Step(interval)
		}
		if err != nil {
			badRequest(c, err)
			return
		}
	case c.Query("semitones") != "":
		semitones, err := strconv.Atoi(c.Query("semitones"))
		if err != nil {
			badRequest(c, fmt.Errorf("invalid semitones %q", c.Query("semitones")))
			return
		}
		if down {
			semitones = -semitones
		}
		policy, ok := policyParam(c)
		if !ok {
			return
		}
		result, err = p.Transpose(semitones, policy)
		if err != nil {
			badRequest(c, err)
			return
		}
	default:
		badRequest(c, errors.New("interval or semitones is required"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from": pitchJSON(p),
		"to":   pitchJSON(result),
	})
}

// intervalBetween godoc
// @Summary Interval between two pitches
// @Tags theory
// @Produce json
// @Param from query string true "Lower pitch"
// @Param to query string true "Upper pitch"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/interval [get]
func intervalBetween(c *gin.Context) {
	from, err := theory.ParsePitch(c.Query("from"))
	if err != nil {
		badRequest(c, err)
		return
	}
	to, err := theory.ParsePitch(c.Query("to"))
	if err != nil {
		badRequest(c, err)
		return
	}
	interval, err := theory.Between(from, to)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, intervalJSON(interval))
}

func intervalJSON(i theory.Interval) gin.H {
	return gin.H{
		"interval": i.String(),
		"quality":  i.Quality().String(),
		"distance": i.Distance(),
		"offset":   i.Offset(),
		"inverse":  i.Invert().String(),
	}
}

// getInterval godoc
// @Summary Describe an interval
// @Tags theory
// @Produce json
// @Param interval path string true "Interval, e.g. m7"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/interval/{interval} [get]
func getInterval(c *gin.Context) {
	interval, err := theory.ParseInterval(c.Param("interval"))
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, intervalJSON(interval))
}

// getKeySignature godoc
// @Summary Describe a key signature
// @Description Parses a signature such as Dmaj or F%23min
// @Tags theory
// @Produce json
// @Param signature path string true "Key signature"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/keysignature/{signature} [get]
func getKeySignature(c *gin.Context) {
	ks, err := theory.ParseKeySignature(c.Param("signature"))
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, signatureJSON(ks))
}

// keySignatureFromAccidentals godoc
// @Summary Key signature from an accidental count
// @Tags theory
// @Produce json
// @Param accidental query string true "sharp or flat"
// @Param count query int true "Number of accidentals, 0-7"
// @Param mode query string false "Mode symbol or name (default maj)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/keysignature [get]
func keySignatureFromAccidentals(c *gin.Context) {
	accidental, err := parseAccidentalParam(c.DefaultQuery("accidental", "sharp"))
	if err != nil {
		badRequest(c, err)
		return
	}
	count, err := strconv.Atoi(c.DefaultQuery("count", "0"))
	if err != nil {
		badRequest(c, fmt.Errorf("invalid count %q", c.Query("count")))
		return
	}
	mode, err := theory.ParseMode(c.DefaultQuery("mode", "maj"))
	if err != nil {
		badRequest(c, err)
		return
	}
	ks, err := theory.KeySignatureFromAccidentals(accidental, count, mode)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, signatureJSON(ks))
}

// parseAccidentalParam accepts a symbol or a name
func parseAccidentalParam(s string) (theory.Accidental, error) {
	for _, a := range theory.Accidentals() {
		if s == a.Name() {
			return a, nil
		}
	}
	return theory.ParseAccidental(s)
}

// getScale godoc
// @Summary Realize a scale
// @Tags theory
// @Produce json
// @Param signature path string true "Key signature, e.g. Cmmin"
// @Param octave query int false "Octave of the tonic (default 4)"
// @Param descending query bool false "Walk down from the tonic"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/scale/{signature} [get]
func getScale(c *gin.Context) {
	ks, err := theory.ParseKeySignature(c.Param("signature"))
	if err != nil {
		badRequest(c, err)
		return
	}
	octave, err := strconv.Atoi(c.DefaultQuery("octave", "4"))
	if err != nil {
		badRequest(c, fmt.Errorf("invalid octave %q", c.Query("octave")))
		return
	}
	scale, err := theory.ScaleOf(ks)
	if err != nil {
		badRequest(c, err)
		return
	}

	var pitches []theory.Pitch
	if c.Query("descending") == "true" {
		pitches, err = scale.DescendingPitches(octave)
	} else {
		pitches, err = scale.Pitches(octave)
	}
	if err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scale":      scale.String(),
		"keys":       keyStrings(scale.Keys()),
		"descending": keyStrings(scale.DescendingKeys()),
		"pitches":    pitchStrings(pitches),
	})
}

// getChord godoc
// @Summary Describe a chord
// @Description Parses a chord such as [C4,E4,G4] (URL-escaped)
// @Tags theory
// @Produce json
// @Param chord path string true "Chord"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/chord/{chord} [get]
func getChord(c *gin.Context) {
	chord, err := theory.ParseChord(c.Param("chord"))
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, chordJSON(chord))
}

// ChordRequest describes a chord to build
type ChordRequest struct {
	Root      string   `json:"root" binding:"required"`
	Qualities []string `json:"qualities"`
	Intervals []string `json:"intervals"`
	Inversion string   `json:"inversion"`
}

func (r ChordRequest) build() (theory.Chord, error) {
	root, err := theory.ParsePitch(r.Root)
	if err != nil {
		return theory.Chord{}, err
	}
	b := theory.NewChordBuilder().SetRoot(root)
	for _, q := range r.Qualities {
		quality, err := theory.ParseChordQuality(q)
		if err != nil {
			return theory.Chord{}, err
		}
		b.AddQuality(quality)
	}
	for _, s := range r.Intervals {
		interval, err := theory.ParseInterval(s)
		if err != nil {
			return theory.Chord{}, err
		}
		b.AddInterval(interval)
	}
	if len(r.Qualities) == 0 && len(r.Intervals) == 0 {
		b.AddQuality(theory.ChordMajor)
	}
	if r.Inversion != "" {
		inversion, err := theory.ParseInversion(r.Inversion)
		if err != nil {
			return theory.Chord{}, err
		}
		b.SetInversion(inversion)
	}
	return b.Build()
}

// buildChord godoc
// @Summary Build a chord
// @Description Stacks chord qualities and intervals above a root and applies an inversion
// @Tags theory
// @Accept json
// @Produce json
// @Param request body ChordRequest true "Chord to build"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/chord [post]
func buildChord(c *gin.Context) {
	var req ChordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	chord, err := req.build()
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, chordJSON(chord))
}
