// Package main is the entry point for gotodoc, the editor helper that
// opens documentation for the word under the cursor.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/gotodoc/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		if errors.Is(err, app.ErrEmptyToken) {
			fmt.Fprintln(os.Stderr, "gotodoc: no word under the cursor")
			return 2
		}
		fmt.Fprintf(os.Stderr, "gotodoc: %v\n", err)
		return 1
	}
	return 0
}
