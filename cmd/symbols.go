// Copyright © 2026 The Quill authors

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/quill-lang/quill/analysis"
	"github.com/spf13/cobra"
)

var symbolsJSON bool

var symbolsCmd = &cobra.Command{
	Use:   "symbols [flags] FILE",
	Short: "List the functions, structs and variables declared in a file",
	Long: `List the declarations found in a Quill source file, in line order.

Each line shows the 1-based position, the kind and the signature of the
symbol. Variables declared inside a function name it. Use --json for the
full symbol table, including parameters, struct fields and doc comments.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0]) //nolint:gosec // CLI tool reads user-specified files
		if err != nil {
			return err
		}
		return writeSymbols(cmd.OutOrStdout(), analysis.Symbols(string(src)), symbolsJSON)
	},
}

func writeSymbols(w io.Writer, syms []*analysis.Symbol, asJSON bool) error {
	if asJSON {
		if syms == nil {
			syms = []*analysis.Symbol{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(syms)
	}
	for _, s := range syms {
		scope := ""
		if s.Enclosing != "" {
			scope = " (in " + s.Enclosing + ")"
		}
		if _, err := fmt.Fprintf(w, "%d:%d\t%-8s %s%s\n", s.Line+1, s.Col+1, s.Kind, s.Signature(), scope); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(symbolsCmd)

	symbolsCmd.Flags().BoolVar(&symbolsJSON, "json", false,
		"Output the symbol table as JSON.")
}
