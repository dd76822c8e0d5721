package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/crusty-lang/crusty/internal/driver"
	"github.com/crusty-lang/crusty/internal/parser"
)

// version is overridden at link time with -ldflags "-X main.version=...".
var version = "dev"

// errFailed signals that at least one file did not parse. Its diagnostics
// have already been printed, so main only sets the exit status.
var errFailed = errors.New("one or more files failed to parse")

type rootFlags struct {
	jobs     int
	maxDepth int
	verbose  bool
}

func (f *rootFlags) options(cmd *cobra.Command) driver.Options {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return driver.Options{
		Jobs:     f.jobs,
		MaxDepth: f.maxDepth,
		Logger:   logger,
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "crusty",
		Short: "Front-end parser for the crusty language",
		Long: `crusty parses source files into an abstract syntax tree and reports the
first syntax or lexical error in each file.

Commands:
  parse    Print the syntax tree of each file
  check    Report errors with source snippets
  watch    Re-check files whenever they change
  version  Print the crusty version
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().IntVarP(&flags.jobs, "jobs", "j", 0, "files parsed in parallel (0 = GOMAXPROCS)")
	root.PersistentFlags().IntVar(&flags.maxDepth, "max-depth", parser.DefaultMaxDepth, "maximum rule nesting before a parse is abandoned")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log per-file timings to stderr")

	root.AddCommand(
		newParseCmd(flags),
		newCheckCmd(flags),
		newWatchCmd(flags),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the crusty version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "crusty %s\n", version)
		},
	}
}
