// Copyright © 2026 The Quill authors

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/quill-lang/quill/analysis"
	"github.com/spf13/cobra"
)

var (
	inferFile string
	inferLine int
)

var inferCmd = &cobra.Command{
	Use:   "infer [flags] EXPR",
	Short: "Print the inferred type of an expression",
	Long: `Print the type Quill infers for an expression, or "unknown".

Without --file only literals, builtins and operators are understood. With
--file the declarations of that file are visible too; --line selects the
1-based line whose scope is used, so that parameters and locals of the
enclosing function resolve.

Examples:
  quill infer '"a" + str(1)'                 # str
  quill infer '10 / 4'                       # float
  quill infer --file app.quill 'origin.x'     # type of a struct field
  quill infer --file app.quill --line 12 n   # a parameter's type`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string
		if inferFile != "" {
			src, err := os.ReadFile(inferFile) //nolint:gosec // CLI tool reads user-specified files
			if err != nil {
				return err
			}
			text = string(src)
		}
		ctx, err := inferContext(analysis.NewTable(text), inferLine)
		if err != nil {
			return err
		}
		writeInferred(cmd.OutOrStdout(), strings.Join(args, " "), ctx)
		return nil
	},
}

func inferContext(table *analysis.Table, line int) (analysis.Context, error) {
	if line == 0 {
		return table.Globals(), nil
	}
	if line < 0 || line > len(table.Lines) {
		return nil, fmt.Errorf("line %d out of range (1-%d)", line, len(table.Lines))
	}
	return table.ContextAt(line - 1), nil
}

func writeInferred(w io.Writer, expr string, ctx analysis.Context) {
	t, ok := analysis.InferExpr(expr, ctx)
	if !ok {
		t = "unknown"
	}
	fmt.Fprintln(w, t) //nolint:errcheck // best-effort CLI output
}

func init() {
	rootCmd.AddCommand(inferCmd)

	inferCmd.Flags().StringVarP(&inferFile, "file", "f", "",
		"Resolve names against the declarations of this file.")
	inferCmd.Flags().IntVarP(&inferLine, "line", "l", 0,
		"Infer in the scope of this 1-based line of --file.")
}
