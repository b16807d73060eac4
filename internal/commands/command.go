// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"mdtodo/internal/config"
	"mdtodo/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsService returns true if the command reads or changes the task
	// lists. Commands like help, version, login, logout return false.
	NeedsService() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, task file paths).
	// svc is nil if NeedsService() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}

// MirrorCommand is a command that also talks to a remote mirror. The
// dispatcher injects the mirror before calling Run.
type MirrorCommand interface {
	Command
	SetMirror(m service.Mirror)
}
