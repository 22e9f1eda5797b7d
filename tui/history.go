// Package tui provides the Bubble Tea terminal UI for Arkfall.
package tui

// History holds recently submitted commands for Up/Down recall.
// The oldest entry is dropped once limit is reached.
type History struct {
	entries  []string
	limit    int
	pos      int
	browsing bool
}

// NewHistory creates a history that remembers up to limit commands.
func NewHistory(limit int) *History {
	return &History{entries: make([]string, 0, limit), limit: limit}
}

// Push records a command. Repeating the previous command is not recorded.
func (h *History) Push(cmd string) {
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	if h.limit > 0 && len(h.entries) == h.limit {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, cmd)
}

// Prev steps back to an older command, stopping at the oldest.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case !h.browsing:
		h.browsing = true
		h.pos = len(h.entries) - 1
	case h.pos > 0:
		h.pos--
	}
	return h.entries[h.pos], true
}

// Next steps forward to a newer command. Stepping past the newest ends
// browsing and reports false so the caller can clear the input.
func (h *History) Next() (string, bool) {
	if !h.browsing {
		return "", false
	}
	if h.pos+1 >= len(h.entries) {
		h.browsing = false
		return "", false
	}
	h.pos++
	return h.entries[h.pos], true
}

// ResetCursor ends browsing; the next Prev starts from the newest entry.
func (h *History) ResetCursor() {
	h.browsing = false
}

// Recent returns up to n commands, oldest first.
func (h *History) Recent(n int) []string {
	if n > len(h.entries) {
		n = len(h.entries)
	}
	return append([]string(nil), h.entries[len(h.entries)-n:]...)
}
