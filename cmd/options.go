// Copyright © 2026 The Quill authors

package cmd

import (
	"io"
	"os"

	"github.com/quill-lang/quill/lint"
)

// Option configures an exported command factory (LintCommand, LSPCommand).
type Option func(*cmdConfig)

type cmdConfig struct {
	analyzers []*lint.Analyzer
	stdin     io.Reader
}

// WithAnalyzers adds custom checks to the built-in set. They run by default
// and can be selected with --checks like any other.
func WithAnalyzers(analyzers ...*lint.Analyzer) Option {
	return func(c *cmdConfig) { c.analyzers = append(c.analyzers, analyzers...) }
}

// withStdin replaces the input read by lint when no files are given.
func withStdin(r io.Reader) Option {
	return func(c *cmdConfig) { c.stdin = r }
}

func newCmdConfig(opts ...Option) *cmdConfig {
	cfg := &cmdConfig{stdin: os.Stdin}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// allAnalyzers returns the built-in analyzers followed by the custom ones.
func (c *cmdConfig) allAnalyzers() []*lint.Analyzer {
	return append(lint.DefaultAnalyzers(), c.analyzers...)
}

// selectAnalyzers narrows the full set to names; an empty list selects all.
func (c *cmdConfig) selectAnalyzers(names []string) ([]*lint.Analyzer, error) {
	all := c.allAnalyzers()
	if len(names) == 0 {
		return all, nil
	}
	return lint.Select(all, names)
}
