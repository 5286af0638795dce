package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"locator/internal/domain"
	"locator/internal/eventbus"
	"locator/internal/ui/services/initial"
	"locator/internal/ui/state"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	State *state.AppState
	Bus   eventbus.EventBus
}

// InitialParamsLoadedMsg carries the initial parameters once the source answers
type InitialParamsLoadedMsg struct {
	Params domain.InitialParams
	Err    error
}

// LoadInitialParamsCommand reads the initial parameter source off the UI loop
type LoadInitialParamsCommand struct {
	ctx     *CommandContext
	source  initial.Source
	timeout time.Duration
}

// NewLoadInitialParamsCommand creates a new load command. A nil source yields empty parameters.
func NewLoadInitialParamsCommand(ctx *CommandContext, source initial.Source, timeout time.Duration) *LoadInitialParamsCommand {
	return &LoadInitialParamsCommand{
		ctx:     ctx,
		source:  source,
		timeout: timeout,
	}
}

// Execute returns a tea.Cmd that resolves the source
func (c *LoadInitialParamsCommand) Execute() tea.Cmd {
	source, timeout := c.source, c.timeout
	return func() tea.Msg {
		if source == nil {
			return InitialParamsLoadedMsg{}
		}
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		params, err := source.Params(ctx)
		return InitialParamsLoadedMsg{Params: params, Err: err}
	}
}

// RequestLocateCommand asks the geolocation worker for the current position
type RequestLocateCommand struct {
	ctx *CommandContext
	seq uint64
}

// NewRequestLocateCommand creates a new locate request command
func NewRequestLocateCommand(ctx *CommandContext, seq uint64) *RequestLocateCommand {
	return &RequestLocateCommand{
		ctx: ctx,
		seq: seq,
	}
}

// Execute publishes the request
func (c *RequestLocateCommand) Execute() tea.Cmd {
	if c.ctx.Bus != nil {
		c.ctx.Bus.Publish(eventbus.LocateRequestedEvent{Seq: c.seq})
	}
	return nil
}

// ShowLinkCommand puts the deep link of the committed query in the status bar
type ShowLinkCommand struct {
	ctx  *CommandContext
	link string
}

// NewShowLinkCommand creates a new show link command
func NewShowLinkCommand(ctx *CommandContext, link string) *ShowLinkCommand {
	return &ShowLinkCommand{
		ctx:  ctx,
		link: link,
	}
}

// Execute updates the status bar
func (c *ShowLinkCommand) Execute() tea.Cmd {
	if c.link == "" {
		c.ctx.State.SetStatus("Link: (no filters)")
	} else {
		c.ctx.State.SetStatus("Link: ?" + c.link)
	}
	return nil
}
