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
	Register(&DoneCmd{})
	Register(&UndoCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string   { return "Mark pending tasks completed" }
func (c *DoneCmd) Usage() string      { return "mdtodo done [common flags] <ref...>" }
func (c *DoneCmd) NeedsService() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, svc, args, true, out, errOut)
}

// UndoCmd implements the undo command: it moves done tasks back to pending.
type UndoCmd struct{}

func (c *UndoCmd) Name() string       { return "undo" }
func (c *UndoCmd) Aliases() []string  { return []string{"reopen"} }
func (c *UndoCmd) Synopsis() string   { return "Move done tasks back to pending" }
func (c *UndoCmd) Usage() string      { return "mdtodo undo [common flags] <ref...>" }
func (c *UndoCmd) NeedsService() bool { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, svc, args, false, out, errOut)
}

// runToggle is the shared implementation for done and undo. References are
// resolved against one snapshot, then each task is moved by ID.
func runToggle(ctx context.Context, cfg *config.Config, svc service.Service, args []string, done bool, out, errOut io.Writer) int {
	refs, err := ParseTaskRefs(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	for i := range refs {
		if done && refs[i].Done {
			fmt.Fprintf(errOut, "error: task already done: %s\n", refs[i])
			return exitcode.UserError
		}
		if !done {
			// Bare numbers address the done list for undo.
			refs[i].Done = true
		}
	}

	targets, err := resolveRefs(ctx, svc, refs)
	if err != nil {
		return reportError(errOut, err)
	}

	for _, t := range targets {
		if _, err := svc.SetDone(ctx, t.ID, done); err != nil {
			return reportError(errOut, err)
		}
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
