// Copyright © 2026 The Quill authors

package repl

import (
	"strings"

	"github.com/quill-lang/quill/lexical"
)

var commands = []string{":check", ":help", ":line", ":load", ":quit", ":reset", ":symbols"}

// symbolCompleter implements readline.AutoCompleter over the session's
// symbols, the builtins and the REPL commands.
type symbolCompleter struct {
	session *Session
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	if pos > len(line) {
		pos = len(line)
	}
	// Commands complete only at the start of the line.
	if text := string(line[:pos]); strings.HasPrefix(text, ":") && !strings.Contains(text, " ") {
		return suffixes(text, filterPrefix(commands, text))
	}

	start := pos
	for start > 0 && line[start-1] < 128 && lexical.IsIdentByte(byte(line[start-1])) {
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}
	return suffixes(prefix, c.session.names(prefix))
}

func filterPrefix(words []string, prefix string) []string {
	var out []string
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			out = append(out, w)
		}
	}
	return out
}

// suffixes builds readline completions: each entry is the text to append.
func suffixes(prefix string, candidates []string) ([][]rune, int) {
	if len(candidates) == 0 {
		return nil, 0
	}
	result := make([][]rune, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, []rune(c[len(prefix):]))
	}
	return result, len(prefix)
}
