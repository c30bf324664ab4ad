package display

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// TUIInterface runs the Bubble Tea program and feeds what the user types to
// a session. It is the Output for sessions played in the TUI: entries reach
// the model as messages, so they are safe to add from the game loop.
type TUIInterface struct {
	model   *TUIModel
	program *tea.Program
	logger  *log.Logger
}

// NewTUIInterface creates a new TUI-based interface
func NewTUIInterface(logger *log.Logger, opts ...tea.ProgramOption) *TUIInterface {
	model := NewTUIModel(logger)
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)

	return &TUIInterface{
		model:   model,
		program: tea.NewProgram(model, opts...),
		logger:  logger.WithPrefix("tui"),
	}
}

// AddLogEntry queues an entry for the log pane
func (ti *TUIInterface) AddLogEntry(entry string) {
	ti.program.Send(logEntryMsg{entry: entry})
}

// SetStatus queues new sidebar content
func (ti *TUIInterface) SetStatus(field, players string) {
	ti.program.Send(statusMsg{field: field, players: players})
}

// Run starts the program and handles input until the user quits, the
// program exits or ctx is cancelled
func (ti *TUIInterface) Run(ctx context.Context, s *Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := ti.program.Run()
		cancel()
		done <- err
	}()

	s.Start()
	for {
		action, args, shouldContinue, err := ti.model.WaitForAction(ctx)
		if err != nil {
			break
		}

		ti.logger.Debug("Received user action", "action", action, "args", args, "continue", shouldContinue)
		if !shouldContinue {
			break
		}
		if !s.HandleLine(strings.Join(append([]string{action}, args...), " ")) {
			ti.logger.Info("User chose to quit")
			break
		}
	}

	ti.model.SendQuitSignal()
	err := <-done
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
