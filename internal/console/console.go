// Package console is the terminal front end of the catalog. It reads one
// command per line, turns it into a session intent and renders the
// resulting state as text.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"catalog-admin/internal/session"

	"github.com/rs/zerolog"
)

const prompt = "> "

// Console reads commands from in and renders to out.
type Console struct {
	sess     *session.Session
	in       *bufio.Scanner
	out      io.Writer
	commands map[string]command
	logger   zerolog.Logger
}

// New creates a console driving sess.
func New(sess *session.Session, in io.Reader, out io.Writer, logger zerolog.Logger) *Console {
	c := &Console{
		sess:   sess,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger.With().Str("component", "console").Logger(),
	}
	c.commands = c.routes()
	return c
}

// Run loads the products, shows the first page and processes commands
// until quit, end of input or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "Product Management")
	fmt.Fprintln(c.out, "Type 'help' for the list of commands.")
	c.reload(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(c.out, prompt)
		if !c.in.Scan() {
			fmt.Fprintln(c.out)
			return c.in.Err()
		}

		if quit := c.Execute(ctx, c.in.Text()); quit {
			return nil
		}
	}
}

// Execute runs a single command line. It reports whether the console
// should stop.
func (c *Console) Execute(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	name, args, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	args = strings.TrimSpace(args)

	cmd, ok := c.commands[name]
	if !ok {
		fmt.Fprintf(c.out, "Unknown command %q. Type 'help' for the list of commands.\n", name)
		return false
	}

	c.logger.Debug().Str("command", name).Msg("executing command")

	if cmd.quit {
		fmt.Fprintln(c.out, "Bye.")
		return true
	}
	cmd.run(ctx, args)
	return false
}
