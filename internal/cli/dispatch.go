// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"mdtodo/internal/commands"
	"mdtodo/internal/config"
	"mdtodo/internal/exitcode"
	"mdtodo/internal/logging"
	"mdtodo/internal/service"
)

// ServiceFactory creates a Service from config.
// Used to inject the task backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error)

// MirrorFactory creates the remote mirror used by push.
type MirrorFactory func(ctx context.Context, cfg *config.Config) (service.Mirror, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
	mirror   MirrorFactory
}

// NewDispatcher creates a new dispatcher with the given registry and
// factories. mirror may be nil, in which case mirror commands report that
// the user is not logged in.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory, mirror MirrorFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
		mirror:   mirror,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	todoFile  string
	doneFile  string
	quiet     bool
	debug     bool
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configDir, "config", "", "")
	fs.StringVar(&f.todoFile, "todo-file", "", "")
	fs.StringVar(&f.doneFile, "done-file", "", "")
	fs.BoolVar(&f.quiet, "quiet", false, "")
	fs.BoolVar(&f.debug, "debug", false, "")
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	var common commonFlags
	common.register(fs)
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", describeFlagError(err))
		return exitcode.UserError
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.Load(common.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	if common.todoFile != "" {
		cfg.PendingPath = common.todoFile
	}
	if common.doneFile != "" {
		cfg.DonePath = common.doneFile
	}
	cfg.Quiet = common.quiet
	cfg.Debug = common.debug

	logger := newLogger(cfg, errOut)
	logger.Debug("dispatch", "command", cmd.Name(), "todo_file", cfg.PendingPath, "done_file", cfg.DonePath)

	var svc service.Service
	if cmd.NeedsService() && d.factory != nil {
		svc, err = d.factory(ctx, cfg, logger)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	if mc, ok := cmd.(commands.MirrorCommand); ok {
		if code := d.injectMirror(ctx, cfg, mc, errOut); code != exitcode.Success {
			return code
		}
	}

	return cmd.Run(ctx, cfg, svc, positionalArgs, out, errOut)
}

// injectMirror checks the stored credentials and hands a mirror to mc.
func (d *Dispatcher) injectMirror(ctx context.Context, cfg *config.Config, mc commands.MirrorCommand, errOut io.Writer) int {
	if d.mirror == nil {
		mc.SetMirror(nil)
		return exitcode.Success
	}
	if !cfg.HasOAuthClient() {
		fmt.Fprintf(errOut, "error: oauth_client.json not found in %s\n", cfg.Dir)
		return exitcode.AuthError
	}
	if !cfg.HasToken() {
		fmt.Fprintln(errOut, "error: not logged in (run: mdtodo login)")
		return exitcode.AuthError
	}

	m, err := d.mirror(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %s\n", err)
		return exitcode.AuthError
	}
	mc.SetMirror(m)
	return exitcode.Success
}

func newLogger(cfg *config.Config, w io.Writer) *log.Logger {
	opts := logging.DefaultOptions()
	opts.Level = logging.ParseLevel(cfg.LogLevel)
	opts.Formatter = logging.ParseFormatter(cfg.LogFormat)
	if cfg.Debug {
		opts.Level = log.DebugLevel
	}
	return logging.New(w, opts)
}

// describeFlagError turns flag package errors into the CLI's wording.
func describeFlagError(err error) string {
	errStr := err.Error()

	// Missing flag value
	if strings.HasPrefix(errStr, "flag needs an argument:") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return "flag needs an argument: " + flagName
	}

	// Unknown flag
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
		return "unknown flag: " + flagName
	}

	return errStr
}
