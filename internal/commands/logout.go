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
	Register(&LogoutCmd{})
}

// LogoutCmd deletes the Google Tasks token used by push. The local task
// files are untouched, and oauth_client.json stays so a later login needs
// no console setup.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string       { return "logout" }
func (c *LogoutCmd) Aliases() []string  { return nil }
func (c *LogoutCmd) Synopsis() string   { return "Forget the Google Tasks token used by push" }
func (c *LogoutCmd) Usage() string      { return "mdtodo logout [common flags]" }
func (c *LogoutCmd) NeedsService() bool { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// Nothing to forget is still a success; scripts run logout blindly.
	if !cfg.HasToken() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	if err := cfg.RemoveToken(); err != nil {
		fmt.Fprintf(errOut, "error: failed to remove token: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
