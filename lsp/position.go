// Copyright © 2026 The Quill authors

package lsp

import (
	"strings"

	"github.com/quill-lang/quill/analysis"
	"github.com/quill-lang/quill/lexical"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// toLSPPosition converts a 0-based line and column, clamping negatives.
func toLSPPosition(line, col int) protocol.Position {
	return protocol.Position{
		Line:      safeUint(line),
		Character: safeUint(col),
	}
}

// safeUint converts a non-negative int to protocol.UInteger, clamping
// negative values to zero.
func safeUint(n int) protocol.UInteger {
	if n < 0 {
		return 0
	}
	return protocol.UInteger(n) // #nosec G115 -- line/col are always small positive ints
}

// nameRange covers n characters starting at the 0-based line and column.
func nameRange(line, col, n int) protocol.Range {
	start := toLSPPosition(line, col)
	return protocol.Range{
		Start: start,
		End:   protocol.Position{Line: start.Line, Character: start.Character + safeUint(n)},
	}
}

// symbolRange covers a symbol's declaration: a function's whole body when
// it closes, otherwise its declaration line.
func symbolRange(sym *analysis.Symbol, lines []string) protocol.Range {
	end := sym.Line
	if sym.HasBody() {
		end = sym.EndLine
	}
	width := 0
	if end < len(lines) {
		width = len(lines[end])
	}
	return protocol.Range{
		Start: toLSPPosition(sym.Line, 0),
		End:   toLSPPosition(end, width),
	}
}

// wordAt returns the identifier under the 0-based position and the column
// where it starts. The cursor can be inside or at the end of a word.
func wordAt(lines []string, line, col int) (string, int) {
	if line < 0 || line >= len(lines) {
		return "", 0
	}
	ln := lines[line]
	if col < 0 || col > len(ln) {
		return "", 0
	}
	start := col
	for start > 0 && lexical.IsIdentByte(ln[start-1]) {
		start--
	}
	end := col
	for end < len(ln) && lexical.IsIdentByte(ln[end]) {
		end++
	}
	return ln[start:end], start
}

// receiverBefore returns the identifier directly before a '.' that precedes
// col, as in the "p" of "p.x".
func receiverBefore(line string, col int) string {
	if col < 1 || col > len(line) || line[col-1] != '.' {
		return ""
	}
	end := col - 1
	start := end
	for start > 0 && lexical.IsIdentByte(line[start-1]) {
		start--
	}
	return line[start:end]
}

// uriToPath converts a file:// URI to a filesystem path.
func uriToPath(uri string) string {
	if path, ok := strings.CutPrefix(uri, "file://"); ok {
		return path
	}
	return uri
}
