// Package main is the entry point for the etude CLI
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/james-see/etude/pkg/api"
	"github.com/james-see/etude/pkg/export"
	"github.com/james-see/etude/pkg/export/lilypond"
	"github.com/james-see/etude/pkg/theory"
	"github.com/james-see/etude/pkg/tui"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	policyName   string
	outputFile   string
	serverPort   int
	intervalName string
	semitones    int
	down         bool
	octave       int
	descending   bool
	accidental   string
	count        int
	modeName     string
	qualities    []string
	intervals    []string
	inversion    string
	steps        int
	tempo        float64
	scoreName    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "etude",
	Short: "Music theory notation: keys, pitches, intervals, scales and chords",
	Long: `etude spells and relates keys, pitches, intervals, scales, key signatures
and chords, and exports them as MIDI, plain text or LilyPond.

Examples:
  etude scale Dmaj
  etude step C4 --interval m3
  etude spell 3 --policy flat
  etude chord D4 --quality min --interval m7 --inversion first
  etude keysig --accidental flat --count 3 --mode min
  etude export "[C4,E4,G4]" -o chord.mid
  etude convert progression.txt -o progression.mid
  etude tui
  etude serve --port 8080`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var keyCmd = &cobra.Command{
	Use:   "key <key>",
	Short: "Show a key's offset and enharmonic spellings",
	Args:  cobra.ExactArgs(1),
	RunE:  runKey,
}

var spellCmd = &cobra.Command{
	Use:   "spell <offset>",
	Short: "Spell a chromatic offset 0-11 as a key",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpell,
}

var pitchCmd = &cobra.Command{
	Use:   "pitch <pitch|program number>",
	Short: "Show a pitch's program number, or spell a program number",
	Args:  cobra.ExactArgs(1),
	RunE:  runPitch,
}

var stepCmd = &cobra.Command{
	Use:   "step <pitch>",
	Short: "Step a pitch by an interval or a number of semitones",
	Args:  cobra.ExactArgs(1),
	RunE:  runStep,
}

var intervalCmd = &cobra.Command{
	Use:   "interval <from> <to>",
	Short: "Compute the interval between two ascending pitches",
	Args:  cobra.ExactArgs(2),
	RunE:  runInterval,
}

var intervalOffsetCmd = &cobra.Command{
	Use:   "interval-offset <interval>",
	Short: "Show an interval's size in semitones and its inversion",
	Args:  cobra.ExactArgs(1),
	RunE:  runIntervalOffset,
}

var scaleCmd = &cobra.Command{
	Use:   "scale <signature>",
	Short: "Spell a scale, e.g. Dmaj, Cmmin, F#dor",
	Args:  cobra.ExactArgs(1),
	RunE:  runScale,
}

var keysigCmd = &cobra.Command{
	Use:   "keysig [signature]",
	Short: "Describe a key signature, or find one from its accidentals",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runKeySignature,
}

var chordCmd = &cobra.Command{
	Use:   "chord <root|chord>",
	Short: "Build a chord from a root, or describe a chord like [C4,E4,G4]",
	Args:  cobra.ExactArgs(1),
	RunE:  runChord,
}

var exportCmd = &cobra.Command{
	Use:   "export <chord|signature>",
	Short: "Export a chord or a scale; the output extension picks the format",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Auto-detect and convert between formats",
	Long:  `Automatically detects input format and converts to the output format based on file extension.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&policyName, "policy", "p", "default", "Spelling policy (default, sharp, flat)")

	// step command
	stepCmd.Flags().StringVarP(&intervalName, "interval", "i", "", "Interval to step by, e.g. M3")
	stepCmd.Flags().IntVarP(&semitones, "semitones", "s", 0, "Semitones to step by, spelled with --policy")
	stepCmd.Flags().BoolVarP(&down, "down", "d", false, "Step downwards")
	stepCmd.MarkFlagsMutuallyExclusive("interval", "semitones")
	stepCmd.MarkFlagsOneRequired("interval", "semitones")

	// scale command
	scaleCmd.Flags().IntVar(&octave, "octave", 4, "Octave of the tonic")
	scaleCmd.Flags().BoolVar(&descending, "descending", false, "Walk down from the tonic")

	// keysig command
	keysigCmd.Flags().StringVarP(&accidental, "accidental", "a", "", "Accidental kind: sharp, flat, # or b")
	keysigCmd.Flags().IntVarP(&count, "count", "c", 0, "Number of accidentals")
	keysigCmd.Flags().StringVarP(&modeName, "mode", "m", "maj", "Mode symbol")

	// chord command
	chordCmd.Flags().StringSliceVarP(&qualities, "quality", "q", nil, "Chord qualities, e.g. maj, min7")
	chordCmd.Flags().StringSliceVarP(&intervals, "interval", "i", nil, "Extra intervals above the root, e.g. m7")
	chordCmd.Flags().StringVar(&inversion, "inversion", "root", "Inversion: root, first, second, third")

	// export command
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (required)")
	exportCmd.Flags().IntVar(&steps, "steps", export.DefaultSteps, "Sixteenth-note steps per event")
	exportCmd.Flags().Float64Var(&tempo, "tempo", export.DefaultTempo, "Tempo in beats per minute")
	exportCmd.Flags().StringVar(&scoreName, "name", "", "Score name")
	exportCmd.Flags().IntVar(&octave, "octave", 4, "Octave of a scale's tonic")
	exportCmd.Flags().BoolVar(&descending, "descending", false, "Export a scale walking down")
	_ = exportCmd.MarkFlagRequired("output")

	// convert command
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (required)")
	_ = convertCmd.MarkFlagRequired("output")

	// serve command
	serveCmd.Flags().IntVar(&serverPort, "port", 8080, "Server port")

	// Add commands
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(spellCmd)
	rootCmd.AddCommand(pitchCmd)
	rootCmd.AddCommand(stepCmd)
	rootCmd.AddCommand(intervalCmd)
	rootCmd.AddCommand(intervalOffsetCmd)
	rootCmd.AddCommand(scaleCmd)
	rootCmd.AddCommand(keysigCmd)
	rootCmd.AddCommand(chordCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func getPolicy() (theory.SpellingPolicy, error) {
	return theory.ParsePolicy(policyName)
}

func getExporter() (*export.Exporter, error) {
	policy, err := getPolicy()
	if err != nil {
		return nil, err
	}
	return export.New(
		export.NewMIDIEncoder(policy),
		export.NewTextEncoder(),
		lilypond.New(),
	), nil
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

func runKey(cmd *cobra.Command, args []string) error {
	k, err := theory.ParseKey(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: offset %d, %s\n", k, k.Offset(), k.Accidental().Name())
	fmt.Fprintf(out, "Enharmonics: %s\n", joinKeys(k.Enharmonics()))
	return nil
}

func runSpell(cmd *cobra.Command, args []string) error {
	offset, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid offset %q: %w", args[0], err)
	}
	policy, err := getPolicy()
	if err != nil {
		return err
	}
	k, err := theory.KeyFromOffset(offset, policy)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), k)
	return nil
}

func runPitch(cmd *cobra.Command, args []string) error {
	if n, err := strconv.Atoi(args[0]); err == nil {
		policy, err := getPolicy()
		if err != nil {
			return err
		}
		p, err := theory.PitchFromProgramNumber(n, policy)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p.StringWithProgramNumber())
		return nil
	}

	p, err := theory.ParsePitch(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), p.StringWithProgramNumber())
	return nil
}

func runStep(cmd *cobra.Command, args []string) error {
	p, err := theory.ParsePitch(args[0])
	if err != nil {
		return err
	}

	var result theory.Pitch
	if intervalName != "" {
		interval, err := theory.ParseInterval(intervalName)
		if err != nil {
			return err
		}
		if down {
			result, err = p.StepDown(interval)
		} else {
			result, err = p.Step(interval)
		}
		if err != nil {
			return err
		}
	} else {
		policy, err := getPolicy()
		if err != nil {
			return err
		}
		n := semitones
		if down {
			n = -n
		}
		if result, err = p.Transpose(n, policy); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", p.StringWithProgramNumber(), result.StringWithProgramNumber())
	return nil
}

func runInterval(cmd *cobra.Command, args []string) error {
	from, err := theory.ParsePitch(args[0])
	if err != nil {
		return err
	}
	to, err := theory.ParsePitch(args[1])
	if err != nil {
		return err
	}
	interval, err := theory.Between(from, to)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d semitones)\n", interval, interval.Offset())
	return nil
}

func runIntervalOffset(cmd *cobra.Command, args []string) error {
	interval, err := theory.ParseInterval(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d semitones, inverts to %s\n", interval, interval.Offset(), interval.Invert())
	return nil
}

func runScale(cmd *cobra.Command, args []string) error {
	ks, err := theory.ParseKeySignature(args[0])
	if err != nil {
		return err
	}
	scale, err := theory.ScaleOf(ks)
	if err != nil {
		return err
	}

	var pitches []theory.Pitch
	if descending {
		pitches, err = scale.DescendingPitches(octave)
	} else {
		pitches, err = scale.Pitches(octave)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), joinPitches(pitches))
	return nil
}

func runKeySignature(cmd *cobra.Command, args []string) error {
	var ks theory.KeySignature
	var err error
	switch {
	case len(args) == 1:
		ks, err = theory.ParseKeySignature(args[0])
	case accidental != "":
		ks, err = keySignatureFromFlags()
	default:
		return errors.New("give a signature or --accidental with --count")
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", ks, ks.Mode().Name())
	fmt.Fprintf(out, "Keys:        %s\n", joinKeys(ks.Keys()))
	fmt.Fprintf(out, "Accidentals: %s (%d)\n", joinKeys(ks.KeysWithAccidentals()), ks.AccidentalCount())
	if relative, err := ks.Relative(); err == nil {
		fmt.Fprintf(out, "Relative:    %s\n", relative)
	}
	if parallel, err := ks.Parallel(); err == nil {
		fmt.Fprintf(out, "Parallel:    %s\n", parallel)
	}
	return nil
}

func keySignatureFromFlags() (theory.KeySignature, error) {
	var a theory.Accidental
	switch strings.ToLower(accidental) {
	case "sharp", "sharps":
		a = theory.Sharp
	case "flat", "flats":
		a = theory.Flat
	default:
		parsed, err := theory.ParseAccidental(accidental)
		if err != nil {
			return theory.KeySignature{}, err
		}
		a = parsed
	}
	mode, err := theory.ParseMode(modeName)
	if err != nil {
		return theory.KeySignature{}, err
	}
	return theory.KeySignatureFromAccidentals(a, count, mode)
}

func buildChord(desc string) (theory.Chord, error) {
	if strings.HasPrefix(desc, "[") {
		return theory.ParseChord(desc)
	}

	root, err := theory.ParsePitch(desc)
	if err != nil {
		return theory.Chord{}, err
	}
	inv, err := theory.ParseInversion(inversion)
	if err != nil {
		return theory.Chord{}, err
	}

	b := theory.NewChordBuilder().SetRoot(root).SetInversion(inv)
	for _, name := range qualities {
		q, err := theory.ParseChordQuality(name)
		if err != nil {
			return theory.Chord{}, err
		}
		b.AddQuality(q)
	}
	for _, name := range intervals {
		i, err := theory.ParseInterval(name)
		if err != nil {
			return theory.Chord{}, err
		}
		b.AddInterval(i)
	}
	if len(qualities) == 0 && len(intervals) == 0 {
		b.AddQuality(theory.ChordMajor)
	}
	return b.Build()
}

func runChord(cmd *cobra.Command, args []string) error {
	chord, err := buildChord(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), chord)
	return nil
}

// scoreFor reads a chord literal or, failing that, a key signature whose
// scale is exported.
func scoreFor(arg string) (*export.Score, error) {
	if strings.HasPrefix(arg, "[") {
		chord, err := theory.ParseChord(arg)
		if err != nil {
			return nil, err
		}
		return export.ScoreFromChord(arg, chord, steps), nil
	}

	ks, err := theory.ParseKeySignature(arg)
	if err != nil {
		return nil, fmt.Errorf("%q is neither a chord nor a key signature: %w", arg, err)
	}
	scale, err := theory.ScaleOf(ks)
	if err != nil {
		return nil, err
	}
	return export.ScoreFromScale(scale, octave, descending, steps)
}

func runExport(cmd *cobra.Command, args []string) error {
	exporter, err := getExporter()
	if err != nil {
		return err
	}
	score, err := scoreFor(args[0])
	if err != nil {
		return err
	}
	if scoreName != "" {
		score.Name = scoreName
	}
	score.Tempo = tempo

	if err := exporter.ExportFile(score, outputFile); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s -> %s\n", args[0], outputFile)
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	exporter, err := getExporter()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Converting %s -> %s\n", input, outputFile)
	if err := exporter.ConvertFile(input, outputFile); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Conversion complete!")
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	policy, err := getPolicy()
	if err != nil {
		return err
	}
	return tui.Run(policy)
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
