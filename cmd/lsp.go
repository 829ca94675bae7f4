// Copyright © 2026 The Quill authors

package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quill-lang/quill/lsp"
	"github.com/spf13/cobra"
)

// LSPCommand creates the "lsp" cobra command. Embedders can pass
// WithAnalyzers so that editors see their custom checks.
func LSPCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts...)

	var (
		stdio       bool
		port        int
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "lsp [flags]",
		Short: "Start the Quill Language Server Protocol server",
		Long: `Start an LSP server for Quill source files.

The language server publishes diagnostics as documents change, lists the
symbols of a document and shows signatures, inferred types and doc comments
on hover. Validation after an edit waits for a pause in typing; the delay is
read from the lsp.debounce setting (QUILL_LSP_DEBOUNCE, default 300ms).

Transport modes:
  --stdio      Use stdin/stdout for LSP communication (default)
  --port N     Listen for an LSP client on TCP port N

With --metrics-addr, Prometheus metrics (validations, durations, cache
invalidations) are served over HTTP at /metrics on that address.

Examples:
  quill lsp                                  Start with stdio transport
  quill lsp --port 7998                      Start with TCP on port 7998
  quill lsp --metrics-addr localhost:9464    Also expose metrics`,
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			if metricsAddr != "" {
				go serveMetrics(metricsAddr)
			}

			srv := lsp.New(lspOptions(cfg)...)

			var err error
			if !stdio && port > 0 {
				addr := fmt.Sprintf("localhost:%d", port)
				cmdLog.Noticef("Quill LSP server listening on %s", addr)
				err = srv.RunTCP(addr)
			} else {
				err = srv.RunStdio()
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().BoolVar(&stdio, "stdio", false,
		"Use stdin/stdout for LSP communication (default behavior)")
	cmd.Flags().IntVar(&port, "port", 0,
		"TCP port for LSP server (use instead of --stdio)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "",
		"Serve Prometheus metrics on this address")

	return cmd
}

func lspOptions(cfg *cmdConfig) []lsp.Option {
	opts := []lsp.Option{lsp.WithDebounce(durationSetting("lsp.debounce", lsp.DefaultDebounce))}
	if len(cfg.analyzers) > 0 {
		opts = append(opts, lsp.WithAnalyzers(cfg.allAnalyzers()...))
	}
	return opts
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	cmdLog.Noticef("serving metrics on http://%s/metrics", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		cmdLog.Errorf("metrics server: %v", err)
	}
}

func init() {
	rootCmd.AddCommand(LSPCommand())
}
