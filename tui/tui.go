package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/arkfall/engine/command"
	"github.com/nathoo/arkfall/engine/events"
	"github.com/nathoo/arkfall/types"
)

// entry is one unstyled log line. Lines are kept raw so the log can be
// re-wrapped when the terminal is resized.
type entry struct {
	text string
	kind lineKind
}

// Model is the Bubble Tea model for the Arkfall TUI.
type Model struct {
	session *command.Session

	log     viewport.Model
	input   textinput.Model
	history *History
	entries []entry

	width, height int
	ready         bool
	trace         bool
	quitting      bool
	lastCmd       string
}

// turnMsg carries one turn's output into the Update loop.
type turnMsg struct {
	echo  string // player input, empty for the opening screen
	lines []string
	kind  lineKind // kindNarrative classifies each line itself
}

// deferredMsg fires when a piece of deferred narration comes due.
type deferredMsg struct {
	item events.Deferred
}

// New creates a TUI model wired to the given session.
func New(sess *command.Session) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.CharLimit = 256
	ti.Focus()

	return Model{
		session: sess,
		input:   ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program.
func Run(sess *command.Session) error {
	_, err := tea.NewProgram(New(sess), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// Init shows the opening screen.
func (m Model) Init() tea.Cmd {
	opening := func() tea.Msg {
		lines := append([]string{"ARKFALL", "", command.Intro, ""}, m.session.LocationLines()...)
		return turnMsg{lines: lines}
	}
	return tea.Batch(textinput.Blink, opening)
}

// Update routes messages: resizes, keys, turn output and deferred narration.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}

	case turnMsg:
		m = m.appendTurn(msg)

	case deferredMsg:
		m = m.deliver(msg.item)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// resize fits the log above the status bar and input line.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	logHeight := max(height-2, 1)

	if m.ready {
		m.log.Width = width
		m.log.Height = logHeight
	} else {
		m.log = viewport.New(width, logHeight)
		m.log.KeyMap = logKeyMap()
		m.ready = true
	}
	m.render()
}

// handleKey consumes the keys the TUI owns; anything else goes to the input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit, true

	case "enter":
		next, cmd := m.handleEnter()
		return next, cmd, true

	case "up":
		if prev, ok := m.history.Prev(); ok {
			m.input.SetValue(prev)
			m.input.CursorEnd()
		}
		return m, nil, true

	case "down":
		next, ok := m.history.Next()
		if !ok {
			m.history.ResetCursor()
		}
		m.input.SetValue(next)
		m.input.CursorEnd()
		return m, nil, true

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

// handleEnter runs the submitted line as a meta-command or game command.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if input == "" {
		return m, nil
	}
	m.history.Push(input)
	m.history.ResetCursor()

	switch strings.ToLower(input) {
	case "again", "g":
		if m.lastCmd == "" {
			return m.appendTurn(turnMsg{echo: input, lines: []string{"Nothing to repeat."}, kind: kindMeta}), nil
		}
		input = m.lastCmd
	default:
		m.lastCmd = input
	}

	if strings.HasPrefix(input, "/") {
		lines, quit := m.handleMeta(input)
		m = m.appendTurn(turnMsg{echo: input, lines: lines, kind: kindMeta})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	res := m.session.Execute(input)
	turn := turnMsg{echo: input, lines: res.Output}
	if !res.OK {
		turn.kind = kindError
	}
	if m.trace {
		turn.lines = append(turn.lines, traceLines(res)...)
	}
	return m.appendTurn(turn), m.scheduleDeferred()
}

// scheduleDeferred drains the outbox into one timer per item.
func (m Model) scheduleDeferred() tea.Cmd {
	items := m.session.Engine.Outbox.Drain()
	if len(items) == 0 {
		return nil
	}
	timers := make([]tea.Cmd, 0, len(items))
	for _, d := range items {
		timers = append(timers, tea.Tick(d.Delay, func(time.Time) tea.Msg {
			return deferredMsg{item: d}
		}))
	}
	return tea.Batch(timers...)
}

// deliver logs a due narration item unless its run has been replaced.
func (m Model) deliver(d events.Deferred) Model {
	if text, ok := m.session.Engine.Deliver(d); ok {
		m.entries = append(m.entries, entry{text: text, kind: kindBark})
		m.render()
	}
	return m
}

// appendTurn logs the echoed input, the output lines and a blank separator.
func (m Model) appendTurn(t turnMsg) Model {
	if t.echo != "" {
		m.entries = append(m.entries, entry{text: "> " + t.echo, kind: kindInput})
	}
	for _, line := range t.lines {
		kind := t.kind
		if kind == kindNarrative {
			kind = classifyLine(line)
		}
		m.entries = append(m.entries, entry{text: line, kind: kind})
	}
	m.entries = append(m.entries, entry{})
	m.render()
	return m
}

// render re-wraps and re-styles the whole log at the current width.
func (m *Model) render() {
	if !m.ready {
		return
	}
	width := max(m.width, 10)

	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		if e.text != "" {
			out[i] = styleLine(wordWrap(e.text, width), e.kind)
		}
	}
	m.log.SetContent(strings.Join(out, "\n"))
	m.log.GotoBottom()
}

// View stacks the log, the status bar and the input line.
func (m Model) View() string {
	switch {
	case m.quitting:
		return ""
	case !m.ready:
		return "Loading..."
	}
	return m.log.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	switch cmd := strings.Fields(input)[0]; cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return helpLines(), false

	case "/state":
		return command.DebugLines(m.session.Engine), false

	case "/history":
		recent := m.history.Recent(10)
		if len(recent) == 0 {
			return []string{"No commands yet."}, false
		}
		return recent, false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func helpLines() []string {
	lines := []string{
		"System:",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Debug: dump run state",
		"  /trace        Toggle debug trace output",
		"  /history      Show recent commands",
		"  again (g)     Repeat your last command",
		"",
	}
	lines = append(lines, command.HelpLines()...)
	return append(lines, "", "PgUp/PgDn scroll the log, Up/Down recall commands.")
}

func traceLines(res types.Result) []string {
	var lines []string
	if !res.OK {
		lines = append(lines, "[trace] Rejected: "+res.Reason)
	}
	if len(res.Events) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Events: %d", len(res.Events)))
		for _, e := range res.Events {
			lines = append(lines, fmt.Sprintf("[trace]   %s", e.Type))
		}
	}
	return lines
}

// logKeyMap pages the log with PgUp/PgDn and ctrl+u/ctrl+d; Up/Down
// belong to command history.
func logKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
