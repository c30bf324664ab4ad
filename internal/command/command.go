// Package command parses the text commands typed at the console or into the
// TUI input line.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/setgame/internal/game"
)

// Kind identifies a command
type Kind int

const (
	None Kind = iota // blank input
	Declare
	Field
	Players
	Hint
	Help
	Quit
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Declare:
		return "set"
	case Field:
		return "field"
	case Players:
		return "players"
	case Hint:
		return "hint"
	case Help:
		return "help"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage: set <player> <row> <col> <row> <col> <row> <col>")
)

// Command is a parsed line of input
type Command struct {
	Kind      Kind
	Player    int
	Positions [3]game.Pos
}

var verbs = map[string]Kind{
	"set":     Declare,
	"setcall": Declare,
	"field":   Field,
	"f":       Field,
	"players": Players,
	"player":  Players,
	"hint":    Hint,
	"help":    Help,
	"?":       Help,
	"quit":    Quit,
	"exit":    Quit,
	"q":       Quit,
}

// Parse turns a line of input into a Command. Player and position ranges are
// checked by the game, not here.
func Parse(line string) (Command, error) {
	parts := strings.Fields(strings.ToLower(line))
	if len(parts) == 0 {
		return Command{Kind: None}, nil
	}

	kind, ok := verbs[parts[0]]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, parts[0])
	}
	if kind != Declare {
		return Command{Kind: kind}, nil
	}
	return parseDeclare(parts[1:])
}

func parseDeclare(args []string) (Command, error) {
	if len(args) != 7 {
		return Command{}, ErrUsage
	}

	nums := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q is not a number", ErrUsage, arg)
		}
		nums[i] = n
	}

	cmd := Command{Kind: Declare, Player: nums[0]}
	for i := range cmd.Positions {
		cmd.Positions[i] = game.Pos{Row: nums[1+2*i], Col: nums[2+2*i]}
	}
	return cmd, nil
}

// Usage is the help text listing every command
const Usage = `Commands:
  set <player> <r> <c> <r> <c> <r> <c>   declare a SET (player 0 or 1, rows 0-2, columns 0-3)
  field                                  show the field
  players                                show scores and penalties
  hint                                   show a SET on the field
  help                                   show this help
  quit                                   leave the game`
