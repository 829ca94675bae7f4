// Copyright © 2026 The Quill authors

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/quill-lang/quill/lint"
	"github.com/quill-lang/quill/workspace"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const stdinName = "<stdin>"

// Exit codes of the lint command.
const (
	exitClean    = 0
	exitFindings = 1
	exitUsage    = 2
)

type lintOptions struct {
	json     bool
	checks   []string
	list     bool
	long     bool
	excludes []string
	strict   bool
}

// LintCommand creates the "lint" cobra command. Embedders can pass
// WithAnalyzers to run their own checks next to the built-in ones.
func LintCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts...)
	var lo lintOptions

	cmd := &cobra.Command{
		Use:   "lint [flags] [files...]",
		Short: "Run static analysis checks on Quill source files",
		Long: `Run static analysis checks on Quill source files.

Each check is an independent analyzer that reads the document's symbol table
and reports diagnostics. Arguments ending in "/..." expand to every .quill
file below that directory, honoring .gitignore and --exclude. With no files,
reads from stdin.

Exit codes:
  0  No problems found
  1  One or more errors or warnings were reported (any finding with --strict)
  2  Bad invocation (invalid flags, unreadable files)

To suppress a diagnostic, add a comment at the end of the line:
  int n = 2.5 // nolint:implicit-cast

To suppress all checks on a line:
  int n = 2.5 // nolint

Available checks (use --checks to select specific ones):
` + lint.AnalyzerDoc(false, 80) + `Examples:
  quill lint file.quill                          # Lint a single file
  quill lint ./...                               # Lint a directory tree
  quill lint --json file.quill                   # Output diagnostics as JSON
  quill lint --checks=call-args file.quill       # Run only specific checks
  quill lint --list --long                       # Describe every check
  quill lint --exclude='vendor' ./...            # Exclude a directory
  cat file.quill | quill lint                    # Lint from stdin`,
		Run: func(cmd *cobra.Command, args []string) {
			if !cmd.Flags().Changed("checks") {
				lo.checks = viper.GetStringSlice("lint.checks")
			}
			if !cmd.Flags().Changed("exclude") {
				lo.excludes = viper.GetStringSlice("lint.exclude")
			}
			if code := runLint(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, lo, args); code != exitClean {
				os.Exit(code)
			}
		},
	}

	cmd.Flags().BoolVar(&lo.json, "json", false,
		"Output diagnostics as JSON.")
	cmd.Flags().StringSliceVar(&lo.checks, "checks", nil,
		"Comma-separated list of checks to run (default: all).")
	cmd.Flags().BoolVar(&lo.list, "list", false,
		"List available checks and exit.")
	cmd.Flags().BoolVar(&lo.long, "long", false,
		"With --list, print the full description of each check.")
	cmd.Flags().StringArrayVar(&lo.excludes, "exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
	cmd.Flags().BoolVar(&lo.strict, "strict", false,
		"Fail on hints and informational findings too.")

	return cmd
}

func runLint(stdout, stderr io.Writer, cfg *cmdConfig, lo lintOptions, args []string) int {
	if lo.list {
		listAnalyzers(stdout, cfg.allAnalyzers(), lo.long)
		return exitClean
	}

	analyzers, err := cfg.selectAnalyzers(lo.checks)
	if err != nil {
		fmt.Fprintf(stderr, "quill lint: %v\n", err)
		return exitUsage
	}
	l := &lint.Linter{Analyzers: analyzers}
	r := newRenderer()

	var diags []lint.Diagnostic
	if len(args) == 0 {
		src, err := io.ReadAll(cfg.stdin)
		if err != nil {
			fmt.Fprintf(stderr, "reading stdin: %v\n", err)
			return exitUsage
		}
		r.SourceReader = func(path string) ([]byte, error) {
			if path == stdinName {
				return src, nil
			}
			return os.ReadFile(path) //nolint:gosec // CLI tool reads user-specified files
		}
		diags, err = l.LintFile(src, stdinName)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
	} else {
		paths, err := workspace.ExpandArgs(args, lo.excludes)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
		for _, path := range paths {
			fileDiags, err := lintFile(l, path)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return exitUsage
			}
			diags = append(diags, fileDiags...)
		}
	}

	if lo.json {
		if err := lint.FormatJSON(stdout, diags); err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
	} else if len(diags) > 0 {
		_ = renderLintDiagnostics(stderr, r, diags)
	}
	if failing(diags, lo.strict) {
		return exitFindings
	}
	return exitClean
}

func lintFile(l *lint.Linter, path string) ([]lint.Diagnostic, error) {
	src, err := os.ReadFile(path) //nolint:gosec // CLI tool reads user-specified files
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l.LintFile(src, path)
}

// failing reports whether diags should fail the run. Hints and information
// only count in strict mode.
func failing(diags []lint.Diagnostic, strict bool) bool {
	for _, d := range diags {
		if strict || d.Severity == lint.SeverityError || d.Severity == lint.SeverityWarning {
			return true
		}
	}
	return false
}

func listAnalyzers(w io.Writer, analyzers []*lint.Analyzer, long bool) {
	for _, a := range analyzers {
		if !long {
			fmt.Fprintf(w, "%-20s %s\n", a.Name, a.Summary())
			continue
		}
		fmt.Fprintf(w, "%s (%s)\n%s\n\n", a.Name, a.Severity, indent.String(wordwrap.String(a.Doc, 76), 4))
	}
}

func init() {
	rootCmd.AddCommand(LintCommand())
}
