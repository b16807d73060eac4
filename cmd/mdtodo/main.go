// Package main is the entry point for the mdtodo CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"mdtodo/internal/backend/googletasks"
	"mdtodo/internal/backend/mdfile"
	"mdtodo/internal/cli"
	"mdtodo/internal/commands"
	"mdtodo/internal/config"
	"mdtodo/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error) {
		return mdfile.New(cfg, logger), nil
	}
	mirror := func(ctx context.Context, cfg *config.Config) (service.Mirror, error) {
		return googletasks.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory, mirror)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
