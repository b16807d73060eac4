package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"mdtodo/internal/config"
	"mdtodo/internal/exitcode"
	"mdtodo/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "mdtodo help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  mdtodo                                   List pending tasks
  mdtodo list [common flags] [--all]       List pending (and done) tasks
  mdtodo add [common flags] <text...>      Add a pending task
  mdtodo done [common flags] <ref...>      Mark pending tasks done (refs: 1 2 3)
  mdtodo undo [common flags] <ref...>      Move done tasks back (refs: d1 or 1)
  mdtodo ui [common flags]                 Interactive terminal UI
  mdtodo push [common flags] [--list <name>]
                                           Publish tasks to Google Tasks
  mdtodo login [common flags]
  mdtodo logout [common flags]
  mdtodo help
  mdtodo version

Common flags:
  --config <dir>       Override config directory
  --todo-file <path>   Pending task file (default todos.md)
  --done-file <path>   Done task file (default done_todos.md)
  --quiet              Suppress informational output
  --debug              Print debug logs to stderr
`
