package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/crusty-lang/crusty/internal/diag"
	"github.com/crusty-lang/crusty/internal/driver"
)

func newCheckCmd(flags *rootFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Report errors with source snippets",
		Long: `check parses every file and prints the first error of each failing file.
The exit status is 1 when any file fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := driver.ParseFiles(cmd.Context(), args, flags.options(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			formatter := diag.NewFormatter(out)
			enc := json.NewEncoder(out)

			failed := 0
			for _, res := range results {
				if res.OK() {
					continue
				}
				failed++

				if asJSON {
					if err := enc.Encode(res.Err); err != nil {
						return err
					}
					continue
				}
				report(formatter, res)
			}

			if !asJSON {
				summarize(out, len(results), failed)
			}
			if failed > 0 {
				return errFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print each error as a JSON object")
	return cmd
}

// report prints a failed result with a snippet of its source.
func report(formatter *diag.Formatter, res driver.Result) {
	formatter.AddSource(res.Path, res.Source)
	formatter.Format(res.Err.ToDiagnostic())
}

func summarize(out io.Writer, total, failed int) {
	switch {
	case failed == 0:
		fmt.Fprintf(out, "ok: %d file(s) parsed\n", total)
	default:
		fmt.Fprintf(out, "%d of %d file(s) failed to parse\n", failed, total)
	}
}
