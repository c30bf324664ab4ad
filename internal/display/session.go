package display

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/setgame/internal/command"
	"github.com/lox/setgame/internal/game"
)

// Output receives the text a session produces. The TUI shows entries in its
// log pane and status in the sidebar; the console prints entries and ignores
// status.
type Output interface {
	AddLogEntry(entry string)
	SetStatus(field, players string)
}

// Session connects typed commands to a game and reports the results
type Session struct {
	game     *game.Game
	out      Output
	renderer *Renderer
	logger   *log.Logger
	events   *eventLogger
}

// eventLogger writes every game event to the output. It runs under the
// game's lock, so it only formats and forwards.
type eventLogger struct {
	out Output
}

func (e *eventLogger) OnEvent(event game.GameEvent) {
	e.out.AddLogEntry(game.FormatEvent(event))
}

// NewSession creates a session and subscribes it to the game's events
func NewSession(g *game.Game, out Output, renderer *Renderer, logger *log.Logger) *Session {
	s := &Session{
		game:     g,
		out:      out,
		renderer: renderer,
		logger:   logger.WithPrefix("session"),
		events:   &eventLogger{out: out},
	}
	g.EventBus().Subscribe(s.events)
	return s
}

// Close stops forwarding game events
func (s *Session) Close() {
	s.game.EventBus().Unsubscribe(s.events)
}

// Start greets the players and shows the opening field
func (s *Session) Start() {
	players := s.game.Players()
	s.out.AddLogEntry(fmt.Sprintf("SET: %s (player 0) vs %s (player 1). Type 'help' for commands.",
		players[0].Name, players[1].Name))
	s.showField()
	s.refreshStatus()
}

// Finished reports whether the game is over
func (s *Session) Finished() bool {
	return s.game.Finished()
}

// HandleLine parses and runs one line of input. It returns false when the
// player asked to quit.
func (s *Session) HandleLine(line string) bool {
	cmd, err := command.Parse(line)
	if err != nil {
		s.logger.Debug("Unparseable input", "input", line, "error", err)
		if errors.Is(err, command.ErrUnknownCommand) {
			s.out.AddLogEntry(fmt.Sprintf("Error: %s. Type 'help' for available commands.", err))
		} else {
			s.out.AddLogEntry(fmt.Sprintf("Error: %s", err))
		}
		return true
	}
	return s.Handle(cmd)
}

// Handle runs a parsed command and returns whether to keep reading input
func (s *Session) Handle(cmd command.Command) bool {
	s.logger.Debug("Handling command", "command", cmd.Kind)

	switch cmd.Kind {
	case command.None:
	case command.Quit:
		return false
	case command.Declare:
		s.handleDeclare(cmd)
	case command.Field:
		s.showField()
	case command.Players:
		s.out.AddLogEntry(s.renderer.Players(s.game.Players()))
	case command.Hint:
		s.handleHint()
	case command.Help:
		s.out.AddLogEntry(command.Usage)
	}

	s.refreshStatus()
	return true
}

func (s *Session) handleDeclare(cmd command.Command) {
	outcome, err := s.game.Declare(cmd.Player, cmd.Positions[0], cmd.Positions[1], cmd.Positions[2])
	if err != nil {
		s.logger.Debug("Declaration refused", "player", cmd.Player, "error", err)
		s.out.AddLogEntry(fmt.Sprintf("Error: %s", err))
		return
	}

	switch {
	case outcome.Finished:
		s.out.AddLogEntry(s.resultLine())
	case outcome.Accepted:
		s.showField()
		if s.game.Stalled() {
			s.out.AddLogEntry(s.renderer.Warning("No SET on the field and no cards left to deal. Type 'quit' to end the game."))
		}
	}
}

func (s *Session) handleHint() {
	if s.game.Finished() {
		s.out.AddLogEntry("The game is over.")
		return
	}
	positions, ok := s.game.Hint()
	if !ok {
		s.out.AddLogEntry("There is no SET on the field.")
		return
	}
	s.out.AddLogEntry(fmt.Sprintf("Hint: %s %s %s", positions[0], positions[1], positions[2]))
}

func (s *Session) resultLine() string {
	players := s.game.Players()
	switch s.game.Winner() {
	case game.Player1Wins:
		return s.renderer.Success(fmt.Sprintf("%s wins!", players[0].Name))
	case game.Player2Wins:
		return s.renderer.Success(fmt.Sprintf("%s wins!", players[1].Name))
	default:
		return s.renderer.Warning("It's a draw.")
	}
}

func (s *Session) showField() {
	s.out.AddLogEntry(s.renderer.Field(s.game.Snapshot()))
}

func (s *Session) refreshStatus() {
	snapshot := s.game.Snapshot()
	s.out.SetStatus(s.renderer.Field(snapshot), s.renderer.Players(snapshot.Players))
}
