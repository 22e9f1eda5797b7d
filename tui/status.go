package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nathoo/arkfall/types"
)

// crewBadge is a member's initial and stress level, "x" once dead.
// "Tomas Reyes" at stress 2 -> "R2".
func crewBadge(m types.CrewMember) string {
	initial := "?"
	if fields := strings.Fields(m.Name); len(fields) > 0 {
		initial = fields[len(fields)-1][:1]
	}
	if !m.Alive() {
		return initial + "x"
	}
	return fmt.Sprintf("%s%d", initial, m.Stress)
}

// operationalDecks counts the decks still working.
func operationalDecks(decks [types.DeckCount]types.Deck) int {
	n := 0
	for _, d := range decks {
		if d.Status == types.DeckOperational {
			n++
		}
	}
	return n
}

// renderStatusBar produces a full-width inverted status line showing
// sector, resources and deck count on the left and crew stress on the right.
func (m Model) renderStatusBar() string {
	s := m.session.Engine.State
	r := s.Resources

	left := fmt.Sprintf(" Sector %d | E:%d S:%d R:%d | Decks %d/%d",
		s.Run.Sector, r.Energy, r.Salvage, r.Rations,
		operationalDecks(s.Decks), types.DeckCount)
	if s.Run.GameOver {
		left += " | RUN OVER"
	}

	badges := make([]string, 0, len(s.Crew))
	for _, c := range s.Crew {
		badges = append(badges, crewBadge(c))
	}
	right := "Crew " + strings.Join(badges, " ") + " "

	// Drop the crew summary when it does not fit.
	if lipgloss.Width(left)+lipgloss.Width(right)+2 > m.width {
		right = fmt.Sprintf("K:%d ", s.Run.Knowledge)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
