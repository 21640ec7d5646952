package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "crop-doctor",
		Short:         "Leaf photo diagnosis: disease labels, curated remedies and short summaries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newBotCommand(),
		newServeCommand(),
		newRemedyCommand(),
		newDescribeCommand(),
	)

	return root
}
