package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/crusty-lang/crusty/internal/diag"
	"github.com/crusty-lang/crusty/internal/driver"
)

func newWatchCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE...",
		Short: "Re-check files whenever they change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			formatter := diag.NewFormatter(out)

			err := driver.Watch(ctx, args, flags.options(cmd), func(res driver.Result) {
				if res.OK() {
					fmt.Fprintf(out, "ok %s (%d items)\n", res.Path, len(res.File.Items))
					return
				}
				report(formatter, res)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
