package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"mdtodo/internal/config"
	"mdtodo/internal/exitcode"
	"mdtodo/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Add a pending task" }
func (c *AddCmd) Usage() string      { return "mdtodo add [common flags] <text...>" }
func (c *AddCmd) NeedsService() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	}

	if _, err := svc.Add(ctx, text); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
