package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/arthur-debert/heimweh/cmd/heimweh"
	"github.com/arthur-debert/heimweh/pkg/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := heimweh.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		output.PrintError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
