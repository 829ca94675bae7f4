// Copyright © 2026 The Quill authors

package cmd

import (
	"github.com/quill-lang/quill/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl [FILE]",
	Short: "Start an interactive type inference shell",
	Long: `Start an interactive shell for exploring how Quill infers types.

Enter an expression to print its inferred type. Declarations (functions,
structs and typed variables) are added to the session's document and become
visible to later expressions; a declaration whose braces are still open
continues on the next line. When FILE is given it is loaded first.

Commands:
  :symbols      list the symbols of the document
  :line N       infer in the scope of line N
  :load FILE    replace the document with FILE
  :check        lint the document
  :reset        clear the document
  :quit         leave (or Ctrl-D)

Example session:
  quill> struct P { int x float y }
  struct P { int x float y }
  quill> P p = P(1, 2.0)
  variable P p
  quill> p.y * 2
  float`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := []repl.Option{repl.WithColor(colorMode())}
		if len(args) == 1 {
			opts = append(opts, repl.WithFile(args[0]))
		}
		return repl.RunRepl("quill> ", "  ...> ", opts...)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
