package display

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Console is the line-oriented interface: commands are read from in and
// everything the session reports is printed to out
type Console struct {
	in     *bufio.Scanner
	out    io.Writer
	prompt string
}

// NewConsole creates a console reading commands from in
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:     bufio.NewScanner(in),
		out:    out,
		prompt: "> ",
	}
}

// AddLogEntry prints an entry on its own line
func (c *Console) AddLogEntry(entry string) {
	fmt.Fprintln(c.out, entry)
}

// SetStatus is a no-op; the console shows the field when it changes
func (c *Console) SetStatus(_, _ string) {}

// Run reads commands until the player quits, the game ends, the input runs
// out or ctx is cancelled
func (c *Console) Run(ctx context.Context, s *Session) error {
	s.Start()
	for !s.Finished() {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(c.out, c.prompt)
		if !c.in.Scan() {
			fmt.Fprintln(c.out)
			return c.in.Err()
		}
		if !s.HandleLine(c.in.Text()) {
			return nil
		}
	}
	return nil
}
