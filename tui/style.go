package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	styleChoice = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleDialogue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleBark = lipgloss.NewStyle().
			Foreground(lipgloss.Color("180")).
			Italic(true)

	styleAlert = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindTitle
	kindChoice
	kindDialogue
	kindBark
	kindAlert
	kindSystem
	kindMeta
	kindInput
	kindError
	kindTrace
)

// styles maps each kind to its style; kinds not listed render as narrative.
var styles = map[lineKind]lipgloss.Style{
	kindTitle:    styleTitle,
	kindChoice:   styleChoice,
	kindDialogue: styleDialogue,
	kindBark:     styleBark,
	kindAlert:    styleAlert,
	kindSystem:   styleSystem,
	kindMeta:     styleSystem,
	kindInput:    stylePlayerInput,
	kindError:    styleError,
	kindTrace:    styleTrace,
}

// styleLine renders an already wrapped line. Meta-command output is
// bracketed.
func styleLine(text string, kind lineKind) string {
	if kind == kindMeta {
		text = "[" + text + "]"
	}
	style, ok := styles[kind]
	if !ok {
		style = styleNarrative
	}
	return style.Render(text)
}

// wordWrap breaks text at spaces so no line exceeds width, unless a single
// word is longer.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wordwrap(text, width, "")
}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "== ") && strings.HasSuffix(line, " =="):
		return kindTitle
	case isChoiceLine(line):
		return kindChoice
	case strings.HasPrefix(line, "Not enough"),
		strings.HasPrefix(line, "Alarms"),
		strings.HasPrefix(line, "Rations "),
		strings.Contains(strings.ToLower(line), "starv"):
		return kindAlert
	case isSpeech(line):
		return kindDialogue
	default:
		return kindNarrative
	}
}

// isChoiceLine matches the numbered options under an encounter, "  2. Leave".
func isChoiceLine(line string) bool {
	rest := strings.TrimPrefix(line, "  ")
	if rest == line || rest == "" {
		return false
	}
	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	return i > 0 && strings.HasPrefix(rest[i:], ". ")
}

// isSpeech matches "Speaker: words" where the speaker is a single word.
func isSpeech(line string) bool {
	i := strings.Index(line, ": ")
	if i <= 0 || i > 16 {
		return false
	}
	return !strings.ContainsAny(line[:i], " 0123456789")
}
