// Package tui provides a terminal user interface for exploring keys, scales
// and chords
package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/james-see/etude/pkg/export"
	"github.com/james-see/etude/pkg/export/lilypond"
	"github.com/james-see/etude/pkg/theory"
)

// Staff-paper color scheme
var (
	inkBlue   = lipgloss.Color("#5FAFFF")
	brass     = lipgloss.Color("#FFAF00")
	paper     = lipgloss.Color("#E4E4E4")
	staffGray = lipgloss.Color("#303030")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(inkBlue).
			Background(staffGray).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(paper).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(inkBlue).
			Bold(true).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(brass).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(inkBlue).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#767676")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(inkBlue).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateMenu State = iota
	StateInput
	StateFilePicker
	StateExporting
	StateResult
)

var scoreFileTypes = []string{".mid", ".midi", ".txt", ".etude"}

// Model represents the TUI model
type Model struct {
	state        State
	menuIndex    int
	item         MenuItem
	input        textinput.Model
	filePicker   filepicker.Model
	spinner      spinner.Model
	exporter     *export.Exporter
	policy       theory.SpellingPolicy
	result       string
	selectedFile string
	outputFile   string
	err          error
	width        int
	height       int
}

// exportDoneMsg signals that a file was written
type exportDoneMsg struct {
	outputFile string
	err        error
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick)
}

// New creates a new TUI model spelling derived pitches with policy
func New(policy theory.SpellingPolicy) Model {
	if len(policy) == 0 {
		policy = theory.DefaultPolicy
	}

	ti := textinput.New()
	ti.Prompt = "♪ "
	ti.CharLimit = 120
	ti.Width = 48

	fp := filepicker.New()
	fp.AllowedTypes = scoreFileTypes
	fp.CurrentDirectory, _ = os.Getwd()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(inkBlue)

	return Model{
		state:      StateMenu,
		input:      ti,
		filePicker: fp,
		spinner:    s,
		policy:     policy,
		exporter: export.New(
			export.NewMIDIEncoder(policy),
			export.NewTextEncoder(),
			lilypond.New(),
		),
	}
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The file picker reads its directory asynchronously and needs every message
	if m.state == StateFilePicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.state = StateMenu
				return m, nil
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			m.state = StateExporting
			return m, tea.Batch(m.spinner.Tick, m.performConversion(path))
		}

		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filePicker.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StateInput:
			return m.updateInput(msg)
		case StateResult:
			return m.updateResult(msg)
		case StateExporting:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case exportDoneMsg:
		m.state = StateResult
		m.outputFile = msg.outputFile
		m.err = msg.err
		return m, nil
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case "enter":
		m.item = menuItems[m.menuIndex]
		switch m.item.Op {
		case OpExit:
			return m, tea.Quit
		case OpConvert:
			m.state = StateFilePicker
			m.filePicker.AllowedTypes = scoreFileTypes
			return m, m.filePicker.Init()
		}
		m.state = StateInput
		m.input.Reset()
		m.input.Placeholder = m.item.Placeholder
		return m, m.input.Focus()
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// updateInput lets q through to the text field; only ctrl+c quits here
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.state = StateMenu
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		value := m.input.Value()
		m.input.Blur()
		if m.item.Op == OpExport {
			m.state = StateExporting
			return m, tea.Batch(m.spinner.Tick, m.performExport(value))
		}
		m.result, m.err = evaluate(m.item.Op, value, m.policy)
		m.state = StateResult
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateMenu
		m.err = nil
		m.result = ""
		m.selectedFile = ""
		m.outputFile = ""
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// performExport writes "<chord> <file>" where the chord is a literal like
// [C4,E4,G4] or a description like "C4 maj7 first"; the extension picks the format.
func (m Model) performExport(value string) tea.Cmd {
	return func() tea.Msg {
		fields := strings.Fields(value)
		if len(fields) < 2 {
			return exportDoneMsg{err: errors.New("enter a chord followed by an output file")}
		}
		outputFile := fields[len(fields)-1]
		desc := strings.Join(fields[:len(fields)-1], " ")

		var chord theory.Chord
		var err error
		if strings.HasPrefix(desc, "[") {
			chord, err = theory.ParseChord(desc)
		} else {
			chord, err = parseChordDescription(desc)
		}
		if err != nil {
			return exportDoneMsg{err: err}
		}

		score := export.ScoreFromChord(chord.String(), chord, export.DefaultSteps)
		if err := m.exporter.ExportFile(score, outputFile); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{outputFile: outputFile}
	}
}

// performConversion turns a MIDI file into a text score and anything else
// into MIDI, writing next to the input.
func (m Model) performConversion(path string) tea.Cmd {
	return func() tea.Msg {
		ext := ".mid"
		if export.DetectFormat(path) == export.FormatMIDI {
			ext = ".txt"
		}
		outputFile := strings.TrimSuffix(path, filepath.Ext(path)) + ext

		if err := m.exporter.ConvertFile(path, outputFile); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{outputFile: outputFile}
	}
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateMenu:
		s.WriteString(m.viewMenu())
	case StateInput:
		s.WriteString(m.viewInput())
	case StateFilePicker:
		s.WriteString(m.viewFilePicker())
	case StateExporting:
		s.WriteString(m.viewExporting())
	case StateResult:
		s.WriteString(m.viewResult())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • esc: menu • q: quit"))

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" ETUDE "))
	s.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", item.Title)))
			s.WriteString("\n")
			s.WriteString(lipgloss.NewStyle().Foreground(brass).PaddingLeft(4).Render(item.Description))
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", item.Title)))
		}
		s.WriteString("\n")
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewInput() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf(" %s ", strings.ToUpper(m.item.Title))))
	s.WriteString("\n\n")
	s.WriteString(m.item.Description)
	s.WriteString("\n\n")
	s.WriteString(m.input.View())

	return boxStyle.Render(s.String())
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT SCORE FILE "))
	s.WriteString("\n\n")
	s.WriteString(m.filePicker.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("esc: back to menu"))

	return s.String()
}

func (m Model) viewExporting() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" WRITING "))
	s.WriteString("\n\n")
	if m.selectedFile != "" {
		s.WriteString(fmt.Sprintf("%s Converting %s...\n", m.spinner.View(), filepath.Base(m.selectedFile)))
	} else {
		s.WriteString(fmt.Sprintf("%s Exporting %s...\n", m.spinner.View(), m.input.Value()))
	}
	s.WriteString(statusStyle.Render(fmt.Sprintf("  formats: %v", m.exporter.Formats())))

	return boxStyle.Render(s.String())
}

func (m Model) viewResult() string {
	var s strings.Builder

	switch {
	case m.err != nil:
		s.WriteString(titleStyle.Render(" ERROR "))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s", m.err.Error())))
	case m.outputFile != "":
		s.WriteString(titleStyle.Render(" SUCCESS "))
		s.WriteString("\n\n")
		s.WriteString(successStyle.Render("✓ File written"))
		s.WriteString("\n\n")
		if m.selectedFile != "" {
			s.WriteString(fmt.Sprintf("Input:  %s\n", filepath.Base(m.selectedFile)))
		}
		s.WriteString(fmt.Sprintf("Output: %s", m.outputFile))
	default:
		s.WriteString(titleStyle.Render(fmt.Sprintf(" %s ", strings.ToUpper(m.item.Title))))
		s.WriteString("\n\n")
		s.WriteString(successStyle.Render(m.result))
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press enter to continue"))

	return boxStyle.Render(s.String())
}

func asciiLogo() string {
	logo := `
        _            _
   ___ | |_  _   _  __| |  ___
  / _ \| __|| | | |/ _` + "`" + ` | / _ \
 |  __/| |_ | |_| | (_| ||  __/
  \___| \__| \__,_|\__,_| \___|
`
	return lipgloss.NewStyle().Foreground(inkBlue).Render(logo)
}

// Run starts the TUI application
func Run(policy theory.SpellingPolicy) error {
	p := tea.NewProgram(New(policy), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
