// Copyright © 2026 The Quill authors

// Package quilltest holds helpers shared by the package tests.
package quilltest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Source joins lines into a document with a trailing newline.
func Source(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// WriteFile writes content to name under dir, creating parent directories,
// and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
