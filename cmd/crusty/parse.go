package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/crusty-lang/crusty/internal/ast"
	"github.com/crusty-lang/crusty/internal/driver"
	"github.com/crusty-lang/crusty/internal/parser"
)

// parseOutput is one line of `crusty parse --format json`.
type parseOutput struct {
	Path  string             `json:"path"`
	OK    bool               `json:"ok"`
	AST   string             `json:"ast,omitempty"`
	Error *parser.ParseError `json:"error,omitempty"`
}

func newParseCmd(flags *rootFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Print the syntax tree of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "sexpr" && format != "json" {
				return fmt.Errorf("unknown format %q (want sexpr or json)", format)
			}

			results, err := driver.ParseFiles(cmd.Context(), args, flags.options(cmd))
			if err != nil {
				return err
			}

			var failed bool
			for _, res := range results {
				if !res.OK() {
					failed = true
				}
				var werr error
				if format == "json" {
					werr = writeParseJSON(cmd.OutOrStdout(), res)
				} else {
					werr = writeParseSexpr(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, len(results) > 1)
				}
				if werr != nil {
					return werr
				}
			}

			if failed {
				return errFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "sexpr", "output format: sexpr or json")
	return cmd
}

func writeParseSexpr(out, errOut io.Writer, res driver.Result, named bool) error {
	if !res.OK() {
		_, err := fmt.Fprintln(errOut, res.Err.Error())
		return err
	}

	if named {
		_, err := fmt.Fprintf(out, "%s: %s\n", res.Path, ast.Sexpr(res.File))
		return err
	}
	_, err := fmt.Fprintln(out, ast.Sexpr(res.File))
	return err
}

func writeParseJSON(out io.Writer, res driver.Result) error {
	line := parseOutput{Path: res.Path, OK: res.OK(), Error: res.Err}
	if res.OK() {
		line.AST = ast.Sexpr(res.File)
	}
	return json.NewEncoder(out).Encode(line)
}
