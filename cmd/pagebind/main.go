package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/pagebind/internal/cli"
	"github.com/rshade/pagebind/internal/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	return extractExitCode(root.ExecuteContext(ctx))
}

// extractExitCode maps a command error to a process exit code. Commands
// choose their own code with cli.ExitError; any other error exits 1.
func extractExitCode(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := cli.IsExitError(err); ok {
		return exitErr.Code
	}
	return 1
}
