package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram wraps the model in a full-screen program. Hosts forward
// completion with p.Send(DoneMsg{}).
func NewProgram(cfg Config, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return tea.NewProgram(NewModel(cfg), opts...)
}
