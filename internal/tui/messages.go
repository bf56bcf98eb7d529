package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// clearStatusMsg drops a status line once it has been shown long enough.
type clearStatusMsg struct{ id int }

func clearStatusAfter(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}
