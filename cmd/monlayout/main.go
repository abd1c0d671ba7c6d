package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/monlayout/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	c := cli.New(os.Stdout, os.Stderr, cli.LogInfo)
	err := c.RootCommand().ExecuteContext(ctx)
	cancel()

	os.Exit(cli.ReportError(os.Stderr, err))
}
