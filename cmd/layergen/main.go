// Command layergen generates the domain layers of entities.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/syssam/layergen/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
