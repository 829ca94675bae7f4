// Copyright © 2026 The Quill authors

// Package repl implements an interactive shell for exploring type
// inference over a Quill document.
package repl

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ergochat/readline"
	"github.com/quill-lang/quill/diagnostic"
)

type config struct {
	stdin  io.ReadCloser
	stderr io.WriteCloser
	file    string
	history string
	color   diagnostic.ColorMode
}

func newConfig(opts ...Option) *config {
	config := &config{history: historyPath()}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output to the REPL.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithFile loads a document before the first prompt.
func WithFile(path string) Option {
	return func(c *config) {
		c.file = path
	}
}

// WithHistoryFile sets where input history is kept. An empty path
// disables history.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.history = path
	}
}

// WithColor sets the color mode used by :check.
func WithColor(mode diagnostic.ColorMode) Option {
	return func(c *config) {
		c.color = mode
	}
}

// RunRepl runs the shell until :quit or end of input.
func RunRepl(prompt, cont string, opts ...Option) error {
	cfg := newConfig(opts...)
	var out io.Writer = os.Stderr
	if cfg.stderr != nil {
		out = cfg.stderr
	}

	session := NewSession(out)
	session.color = cfg.color
	if cfg.file != "" {
		if err := session.Load(cfg.file); err != nil {
			return err
		}
	}

	ensureHistoryFilePermissions(cfg.history)
	rlCfg := &readline.Config{
		Stdout:            out,
		Stderr:            out,
		Prompt:            prompt,
		HistoryFile:       cfg.history,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{session: session},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	for {
		if session.Continuing() {
			rl.SetPrompt(cont)
		} else {
			rl.SetPrompt(prompt)
		}
		line, err := rl.ReadSlice()
		if err == readline.ErrInterrupt {
			// Ctrl-C drops an unfinished declaration.
			session.abandon()
			continue
		}
		if err != nil {
			return nil
		}
		if !session.Handle(string(bytes.TrimRight(line, "\r\n"))) {
			return nil
		}
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".quill_history")
}

// ensureHistoryFilePermissions creates the history file if needed and
// restricts it to the current user; history may contain source snippets.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0o600) //nolint:gosec // path comes from the user's home or an option
	if err != nil {
		return
	}
	_ = f.Close()
	_ = os.Chmod(path, 0o600)
}
