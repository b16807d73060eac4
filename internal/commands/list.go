package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"mdtodo/internal/config"
	"mdtodo/internal/exitcode"
	"mdtodo/internal/output"
	"mdtodo/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `mdtodo` (no args) and `mdtodo list [--all]`.
type ListCmd struct {
	all bool
}

// SetAll toggles the done section (for testing).
func (c *ListCmd) SetAll(all bool) {
	c.all = all
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "mdtodo list [common flags] [--all]" }
func (c *ListCmd) NeedsService() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.all, "all", false, "")
	fs.BoolVar(&c.all, "a", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	pending, err := svc.Pending(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	for i, t := range pending {
		output.FormatTask(out, i+1, t)
	}

	if !c.all {
		if len(pending) == 0 && !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	done, err := svc.Done(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	if len(pending) == 0 && len(done) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	// Done section is printed even if empty so the layout stays stable.
	output.FormatSectionHeader(out, output.DoneSectionTitle)
	for i, t := range done {
		output.FormatDoneTask(out, i+1, t)
	}

	return exitcode.Success
}
