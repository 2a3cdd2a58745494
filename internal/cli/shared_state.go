package cli

import tea "github.com/charmbracelet/bubbletea"

// SharedState holds what the root model and the terminal adapters share
// via pointer.
type SharedState struct {
	App *App

	// Terminal dimensions
	Width  int
	Height int

	// Commands queued by adapters while the controller runs. The root
	// model drains them at the end of every Update.
	pending []tea.Cmd
}

// Enqueue schedules cmd to be returned from the current Update.
func (s *SharedState) Enqueue(cmd tea.Cmd) {
	if cmd != nil {
		s.pending = append(s.pending, cmd)
	}
}

// Drain returns the queued commands as one batch and empties the queue.
func (s *SharedState) Drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// ContentHeight returns the available height for panels, accounting for
// header (2 lines: title + separator), and status bar (3 lines: notice,
// separator, hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
