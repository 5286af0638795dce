package commands

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"locator/internal/eventbus"
	"locator/internal/ui/services/initial"
	"locator/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(state *state.AppState, bus eventbus.EventBus) *Executor {
	return &Executor{
		ctx: &CommandContext{
			State: state,
			Bus:   bus,
		},
	}
}

// ExecuteLoadInitialParams creates and executes a load command
func (e *Executor) ExecuteLoadInitialParams(source initial.Source, timeout time.Duration) tea.Cmd {
	cmd := NewLoadInitialParamsCommand(e.ctx, source, timeout)
	return cmd.Execute()
}

// ExecuteRequestLocate creates and executes a locate request command
func (e *Executor) ExecuteRequestLocate(seq uint64) tea.Cmd {
	cmd := NewRequestLocateCommand(e.ctx, seq)
	return cmd.Execute()
}

// ExecuteShowLink creates and executes a show link command
func (e *Executor) ExecuteShowLink(link string) tea.Cmd {
	cmd := NewShowLinkCommand(e.ctx, link)
	return cmd.Execute()
}
