// Copyright © 2026 The Quill authors

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/quill-lang/quill/analysis"
	"github.com/quill-lang/quill/diagnostic"
	"github.com/quill-lang/quill/lint"
	"github.com/quill-lang/quill/workspace"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultWatchDebounce = 200 * time.Millisecond

var watchExcludes []string

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [dirs...]",
	Short: "Re-check Quill files whenever they change",
	Long: `Lint every .quill file below the given directories (default ".") and
keep watching them. Files are checked again shortly after they are written;
bursts of writes are coalesced using the watch.debounce setting
(QUILL_WATCH_DEBOUNCE, default 200ms). New directories are picked up
automatically. .gitignore and --exclude apply as for "quill lint".

Press Ctrl-C to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		roots := args
		if len(roots) == 0 {
			roots = []string{"."}
		}
		excludes := watchExcludes
		if !cmd.Flags().Changed("exclude") {
			excludes = viper.GetStringSlice("lint.exclude")
		}

		lw := newLintWatcher(cmd.ErrOrStderr(), colorMode(), lint.DefaultAnalyzers())
		for _, root := range roots {
			files, err := workspace.FindFiles(root, excludes)
			if err != nil {
				return err
			}
			for _, path := range files {
				lw.check(path)
			}
		}

		w, err := workspace.NewWatcher(durationSetting("watch.debounce", defaultWatchDebounce), excludes, lw.onChange)
		if err != nil {
			return err
		}
		defer w.Close() //nolint:errcheck // best-effort cleanup
		if err := w.Watch(roots); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		return nil
	},
}

// lintWatcher re-lints files reported by a workspace.Watcher. Tables are
// kept in a cache keyed by path so that unchanged files are not rebuilt and
// removed files are dropped.
type lintWatcher struct {
	mu     sync.Mutex
	out    io.Writer
	color  diagnostic.ColorMode
	linter *lint.Linter
	cache  *analysis.Cache
}

func newLintWatcher(out io.Writer, color diagnostic.ColorMode, analyzers []*lint.Analyzer) *lintWatcher {
	return &lintWatcher{
		out:    out,
		color:  color,
		linter: &lint.Linter{Analyzers: analyzers},
		cache:  analysis.NewCache(1024),
	}
}

func (lw *lintWatcher) onChange(changes []workspace.Change) {
	for _, c := range changes {
		if c.Removed {
			lw.remove(c.Path)
			continue
		}
		lw.check(c.Path)
	}
}

func (lw *lintWatcher) remove(path string) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if lw.cache.Invalidate(path) {
		lw.printf("%s: removed\n", path)
	}
}

func (lw *lintWatcher) check(path string) {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	src, err := os.ReadFile(path) //nolint:gosec // paths come from the watched tree
	if err != nil {
		lw.printf("%s: %v\n", path, err)
		return
	}
	table := lw.cache.Table(path, string(src))
	diags, err := lw.linter.LintTable(context.Background(), table, path)
	if err != nil {
		lw.printf("%v\n", err)
		return
	}
	if len(diags) == 0 {
		lw.printf("%s: ok\n", path)
		return
	}
	// Render from the text just linted; the file may change again.
	r := &diagnostic.Renderer{
		Color:        lw.color,
		SourceReader: func(string) ([]byte, error) { return src, nil },
	}
	_ = renderLintDiagnostics(lw.out, r, diags)
	lw.printf("%s: %d %s\n\n", path, len(diags), plural(len(diags), "problem"))
}

func (lw *lintWatcher) printf(format string, args ...any) {
	fmt.Fprintf(lw.out, format, args...) //nolint:errcheck // best-effort terminal output
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringArrayVar(&watchExcludes, "exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
}
