// Package tui is a Bubble Tea front end that walks a learner through one
// polynomial, stage by stage.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"gopkg.in/errgo.v1"

	"github.com/njchilds90/polyroots"
	"github.com/njchilds90/polyroots/internal/logging"
)

// Version is set during build
var Version = "0.1.0"

// mode is what the text input is collecting.
type mode int

const (
	modePolynomial mode = iota
	modeGuess
	modeBrowse
)

// Config holds TUI configuration
type Config struct {
	ShowLaTeX bool
	Options   []polyroots.Option
	Logger    *slog.Logger
	// Polynomial, when set, starts the tutorial immediately.
	Polynomial string
}

// Model is the main Bubbletea model
type Model struct {
	width  int
	height int
	ready  bool

	input    textinput.Model
	viewport viewport.Model
	mode     mode

	tut       *polyroots.Tutorial
	sessionID string
	status    string
	statusID  int
	err       error

	showLaTeX bool
	opts      []polyroots.Option
	logger    *slog.Logger
}

// New creates a new model
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "x^3-2x^2-5x+6"
	ti.Prompt = "f(x) = "
	ti.CharLimit = 256
	ti.Width = 48
	ti.Focus()

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	m := Model{
		input:     ti,
		viewport:  viewport.New(80, 20),
		showLaTeX: cfg.ShowLaTeX,
		opts:      append(append([]polyroots.Option(nil), cfg.Options...), polyroots.WithLogger(logger)),
		logger:    logger,
	}
	if cfg.Polynomial != "" {
		m.start(cfg.Polynomial)
	}
	return m
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(cfg Config) error {
	_, err := tea.NewProgram(New(cfg), tea.WithAltScreen()).Run()
	return err
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Stage is the stage on screen, StageForms before a polynomial is entered.
func (m Model) Stage() polyroots.Stage {
	if m.tut == nil {
		return polyroots.StageForms
	}
	return m.tut.Stage()
}

// Tutorial is the active walk-through, nil until a polynomial is accepted.
func (m Model) Tutorial() *polyroots.Tutorial { return m.tut }

// Err is the last error shown in the status bar.
func (m Model) Err() error { return m.err }

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 5 // Title + tabs + input
		footerHeight := 4 // Status bar + help
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - headerHeight - footerHeight
		if m.viewport.Height < 3 {
			m.viewport.Height = 3
		}
		m.ready = true
		m.refresh()

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
			m.err = nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		if m.mode == modeGuess {
			m.mode = modeBrowse
			m.input.Blur()
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil
	}

	if m.mode != modeBrowse {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "n", "right":
		if _, err := m.tut.Next(); err != nil {
			return m.fail(err)
		}
	case "b", "left":
		st := m.tut.Stage()
		if st == polyroots.StageForms {
			return m, nil
		}
		if err := m.tut.Goto(st - 1); err != nil {
			return m.fail(err)
		}
	case "1", "2", "3", "4", "5":
		st := polyroots.Stages[int(msg.String()[0]-'1')]
		if err := m.tut.Goto(st); err != nil {
			return m.fail(err)
		}
	case "g":
		if m.tut.Stage() != polyroots.StageSynthetic {
			return m.fail(errgo.Newf("guesses are made in the %s stage", polyroots.StageSynthetic.Title()))
		}
		m.mode = modeGuess
		m.input.Prompt = "guess = "
		m.input.Placeholder = "-3/2"
		m.input.Reset()
		m.input.Focus()
		return m, textinput.Blink
	case "a":
		return m.autoGuess()
	case "l":
		m.showLaTeX = !m.showLaTeX
	case "r":
		m.tut = nil
		m.mode = modePolynomial
		m.input.Prompt = "f(x) = "
		m.input.Placeholder = "x^3-2x^2-5x+6"
		m.input.Reset()
		m.input.Focus()
		m.refresh()
		return m, textinput.Blink
	case "up", "k":
		m.viewport.LineUp(1)
		return m, nil
	case "down", "j":
		m.viewport.LineDown(1)
		return m, nil
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

// submit handles enter in the two input modes.
func (m Model) submit() (tea.Model, tea.Cmd) {
	switch m.mode {
	case modePolynomial:
		if !m.start(m.input.Value()) {
			cmd := m.flash()
			return m, cmd
		}
		return m, nil
	case modeGuess:
		r, err := polyroots.ParseRational(strings.TrimSpace(m.input.Value()))
		if err != nil {
			return m.fail(err)
		}
		return m.guess(r)
	}
	return m, nil
}

// start opens a tutorial on raw and reports whether it was accepted.
func (m *Model) start(raw string) bool {
	tut, err := polyroots.NewTutorial(raw, m.opts...)
	if err != nil {
		m.err = err
		m.refresh()
		return false
	}
	m.tut = tut
	m.sessionID = uuid.New().String()
	m.mode = modeBrowse
	m.input.Blur()
	m.err = nil
	m.logger.Info("tutorial started",
		slog.String("session", m.sessionID),
		slog.String("polynomial", tut.Forms().Polynomial))
	m.refresh()
	return true
}

func (m Model) guess(r polyroots.Rational) (tea.Model, tea.Cmd) {
	d, err := m.tut.Guess(r)
	if err != nil {
		return m.fail(err)
	}
	m.err = nil
	m.input.Reset()
	if m.tut.Session().State().Terminal() {
		m.mode = modeBrowse
		m.input.Blur()
	}
	if d.IsRoot() {
		m.status = r.String() + " is a root"
	} else {
		m.status = r.String() + " is not a root"
	}
	m.refresh()
	cmd := m.flash()
	return m, cmd
}

// autoGuess tries the first remaining candidate.
func (m Model) autoGuess() (tea.Model, tea.Cmd) {
	if m.tut.Stage() != polyroots.StageSynthetic {
		return m.fail(errgo.Newf("guesses are made in the %s stage", polyroots.StageSynthetic.Title()))
	}
	rest := m.tut.Session().Remaining()
	if len(rest) == 0 {
		return m.fail(polyroots.ErrSessionFinished)
	}
	return m.guess(rest[0])
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.logger.Debug("rejected", slog.Any("error", err))
	cmd := m.flash()
	return m, cmd
}

func (m *Model) flash() tea.Cmd {
	m.statusID++
	return clearStatusAfter(m.statusID, 4*time.Second)
}

// refresh re-renders the current stage into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.content())
	m.viewport.GotoTop()
}

func (m Model) content() string {
	if m.tut == nil {
		return SubHeaderStyle.Render("Enter a polynomial in x. Implicit multiplication is fine: 7x(x+5).")
	}
	var body string
	switch m.tut.Stage() {
	case polyroots.StageForms:
		body = RenderForms(m.tut.Forms(), m.showLaTeX)
	case polyroots.StageRZT:
		res, err := m.tut.RationalZeroTest()
		if err != nil {
			return StatusErrorStyle.Render(err.Error())
		}
		body = RenderRZT(res, m.showLaTeX)
	case polyroots.StageDescartes:
		sc, err := m.tut.Descartes()
		if err != nil {
			return StatusErrorStyle.Render(err.Error())
		}
		body = RenderDescartes(sc)
	case polyroots.StageSynthetic:
		body = RenderSession(m.tut.Session().Snapshot(), m.showLaTeX)
	case polyroots.StageFinal:
		rep, err := m.tut.Final()
		if err != nil {
			return StatusErrorStyle.Render(err.Error())
		}
		body = RenderReport(rep, m.showLaTeX)
	}
	return HeaderStyle.Render(m.tut.Stage().Title()) + "\n\n" + body
}

// View renders the UI
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	if m.mode != modeBrowse {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.ready {
		b.WriteString(PanelStyle.Render(m.viewport.View()))
	} else {
		b.WriteString(m.content())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	title := LogoStyle.Render("polyroots") + " " + SubHeaderStyle.Render("v"+Version)
	if m.tut != nil {
		title += "  " + SubHeaderStyle.Render("session "+m.sessionID[:8])
	}
	return title
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(polyroots.Stages))
	for i, st := range polyroots.Stages {
		label := fmt.Sprintf("%d %s", i+1, st.Title())
		switch {
		case m.tut != nil && m.tut.Stage() == st:
			tabs[i] = TabActiveStyle.Render(label)
		case m.tut != nil && m.tut.Completed(st):
			tabs[i] = TabDoneStyle.Render(label)
		default:
			tabs[i] = TabLockedStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderStatusBar() string {
	switch {
	case m.err != nil:
		return StatusBarStyle.Render(StatusErrorStyle.Render(m.err.Error()))
	case m.status != "":
		return StatusBarStyle.Render(m.status)
	case m.tut != nil && m.tut.NoRoots():
		return StatusBarStyle.Render("This polynomial has no roots to find.")
	}
	return StatusBarStyle.Render("ready")
}

func (m Model) renderHelp() string {
	var keys [][2]string
	switch m.mode {
	case modePolynomial:
		keys = [][2]string{{"enter", "start"}, {"esc", "quit"}}
	case modeGuess:
		keys = [][2]string{{"enter", "divide"}, {"esc", "cancel"}}
	default:
		keys = [][2]string{{"n", "next"}, {"b", "back"}, {"1-5", "stage"}, {"g", "guess"}, {"a", "auto guess"}, {"l", "latex"}, {"r", "new"}, {"q", "quit"}}
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = HelpKeyStyle.Render(k[0]) + " " + HelpDescStyle.Render(k[1])
	}
	return HelpStyle.Render(strings.Join(parts, "  "))
}
