package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"mdtodo/internal/config"
	"mdtodo/internal/exitcode"
	"mdtodo/internal/service"
	"mdtodo/internal/ui"
)

func init() {
	Register(&UICmd{})
}

// UICmd starts the interactive terminal UI.
type UICmd struct {
	in io.Reader
}

// SetInput overrides the UI's input stream (for testing).
func (c *UICmd) SetInput(in io.Reader) {
	c.in = in
}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return []string{"tui"} }
func (c *UICmd) Synopsis() string   { return "Open the interactive view" }
func (c *UICmd) Usage() string      { return "mdtodo ui [common flags]" }
func (c *UICmd) NeedsService() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	in := c.in
	if in == nil {
		in = os.Stdin
	}

	err := ui.Run(ctx, svc, in, out)
	switch {
	case errors.Is(err, ui.ErrNotTTY):
		fmt.Fprintln(errOut, "error: ui requires a terminal (try: mdtodo list --all)")
		return exitcode.UserError
	case err != nil:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
