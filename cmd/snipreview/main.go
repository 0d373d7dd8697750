// Package main is the entry point for the snipreview CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/snipreview/internal/cli"
	"github.com/yaklabco/snipreview/internal/logging"

	// Import rules package to register built-in rules via init().
	_ "github.com/yaklabco/snipreview/pkg/review/rules"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)
	rootCmd.SetArgs(cli.WithDefaultCommand(rootCmd, os.Args[1:]))

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !cli.IsResultSignal(err) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCodeForError(err)
}
