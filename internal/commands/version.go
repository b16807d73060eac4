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

// Version is overridden by release builds:
//
//	go build -ldflags "-X mdtodo/internal/commands.Version=1.2.3" ./cmd/mdtodo
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd prints "mdtodo <version>". It never touches the task files.
type VersionCmd struct{}

func (c *VersionCmd) Name() string       { return "version" }
func (c *VersionCmd) Aliases() []string  { return nil }
func (c *VersionCmd) Synopsis() string   { return "Print the mdtodo version" }
func (c *VersionCmd) Usage() string      { return "mdtodo version" }
func (c *VersionCmd) NeedsService() bool { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	fmt.Fprintf(out, "mdtodo %s\n", Version)
	return exitcode.Success
}
