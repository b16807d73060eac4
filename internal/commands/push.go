package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"mdtodo/internal/config"
	"mdtodo/internal/exitcode"
	"mdtodo/internal/service"
)

func init() {
	Register(&PushCmd{})
}

// PushCmd publishes the local lists to a Google Tasks list. The local files
// stay authoritative; nothing is pulled back.
type PushCmd struct {
	listName string
	mirror   service.Mirror
}

// SetListName sets the remote list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

// SetMirror implements MirrorCommand.
func (c *PushCmd) SetMirror(m service.Mirror) {
	c.mirror = m
}

func (c *PushCmd) Name() string       { return "push" }
func (c *PushCmd) Aliases() []string  { return nil }
func (c *PushCmd) Synopsis() string   { return "Publish tasks to Google Tasks" }
func (c *PushCmd) Usage() string      { return "mdtodo push [common flags] [--list <name>]" }
func (c *PushCmd) NeedsService() bool { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.mirror == nil {
		fmt.Fprintln(errOut, "error: not logged in (run: mdtodo login)")
		return exitcode.AuthError
	}

	name := strings.TrimSpace(c.listName)
	if name == "" {
		name = cfg.MirrorList
	}

	pending, err := svc.Pending(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	done, err := svc.Done(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	list, err := c.mirror.ResolveList(ctx, name)
	switch {
	case errors.Is(err, service.ErrNotFound):
		list, err = c.mirror.CreateList(ctx, name)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return exitcode.BackendError
		}
	case errors.Is(err, service.ErrAmbiguous):
		fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", name)
		return exitcode.UserError
	case err != nil:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	remote, err := c.mirror.ListOpenTasks(ctx, list.ID)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	plan := planPush(pending, done, remote)
	for _, title := range plan.create {
		if err := c.mirror.CreateTask(ctx, list.ID, title); err != nil {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return exitcode.BackendError
		}
	}
	for _, id := range plan.complete {
		if err := c.mirror.CompleteTask(ctx, list.ID, id); err != nil {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return exitcode.BackendError
		}
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created %d, completed %d\n", len(plan.create), len(plan.complete))
	}
	return exitcode.Success
}
