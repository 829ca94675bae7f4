// Copyright © 2026 The Quill authors

package diagnostic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/muesli/reflow/wordwrap"
)

const (
	defaultWidth = 80
	tabWidth     = 4
	notePrefix   = "   = note: "
)

// Renderer formats diagnostics as annotated source snippets. Source files
// are read once and cached, so a Renderer must not be shared between
// goroutines.
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// Width is the column at which notes are wrapped. Zero means 80.
	Width int

	// SourceReader reads source file contents. If nil, os.ReadFile is used.
	SourceReader func(string) ([]byte, error)

	sources map[string][]string
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	p := choosePalette(r.Color, fileFromWriter(w))
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	r.writeHeader(ew, d, p)
	for _, span := range d.Spans {
		r.writeSpan(ew, span, d.Severity, p)
	}
	for _, note := range d.Notes {
		r.writeNote(ew, note, p)
	}

	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderAll writes all diagnostics to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

// errWriter wraps a writer and captures the first error, short-circuiting
// subsequent writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (r *Renderer) writeHeader(ew *errWriter, d Diagnostic, p palette) {
	label := d.Severity.String()
	if d.Code != "" {
		label += "[" + d.Code + "]"
	}
	ew.printf("%s%s%s: %s%s%s\n", p.severity(d.Severity), label, p.reset, p.bold, d.Message, p.reset)
}

func (r *Renderer) writeSpan(ew *errWriter, span Span, sev Severity, p palette) {
	loc := span.File
	if span.Line > 0 {
		loc += ":" + strconv.Itoa(span.Line)
		if span.Col > 0 {
			loc += ":" + strconv.Itoa(span.Col)
		}
	}
	ew.printf("  %s-->%s %s\n", p.boldBlue, p.reset, loc)

	source, ok := r.sourceLine(span.File, span.Line)
	if !ok {
		ew.printf("   %s|%s\n", p.boldBlue, p.reset)
		return
	}

	num := strconv.Itoa(span.Line)
	gutter := strings.Repeat(" ", len(num))
	ew.printf(" %s%s |%s\n", p.boldBlue, gutter, p.reset)
	ew.printf(" %s%s |%s  %s\n", p.boldBlue, num, p.reset, expandTabs(source))

	col := span.Col
	if col <= 0 {
		col = 1
	}
	endCol := span.EndCol
	if endCol <= 0 {
		endCol = tokenEnd(source, col)
	}
	if endCol < col {
		endCol = col
	}
	prefix := ""
	if col-1 <= len(source) {
		prefix = source[:col-1]
	}
	marker := strings.Repeat(" ", displayWidth(prefix)) + strings.Repeat("^", endCol-col+1)
	ew.printf(" %s%s |%s  %s%s", p.boldBlue, gutter, p.reset, p.severity(sev), marker)
	if span.Label != "" {
		ew.printf(" %s", span.Label)
	}
	ew.printf("%s\n", p.reset)
}

// writeNote writes a note, wrapping long text under the "= note:" prefix.
func (r *Renderer) writeNote(ew *errWriter, note string, p palette) {
	width := r.Width
	if width <= 0 {
		width = defaultWidth
	}
	lines := strings.Split(wordwrap.String(note, width-len(notePrefix)), "\n")
	ew.printf("   %s=%s note: %s\n", p.boldCyan, p.reset, lines[0])
	for _, line := range lines[1:] {
		ew.printf("%s%s\n", strings.Repeat(" ", len(notePrefix)), line)
	}
}

// sourceLine returns the 1-based line of file, reading and caching the file
// on first use.
func (r *Renderer) sourceLine(file string, line int) (string, bool) {
	if line <= 0 || file == "" {
		return "", false
	}
	lines, ok := r.sources[file]
	if !ok {
		reader := r.SourceReader
		if reader == nil {
			reader = os.ReadFile
		}
		if data, err := reader(file); err == nil {
			lines = strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
		}
		if r.sources == nil {
			r.sources = make(map[string][]string)
		}
		r.sources[file] = lines
	}
	if line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}

// tokenEnd returns the 1-based inclusive end column of the identifier or
// token starting at col.
func tokenEnd(source string, col int) int {
	if col > len(source) {
		return col
	}
	end := col - 1
	for end < len(source) {
		ch, size := utf8.DecodeRuneInString(source[end:])
		if ch == ' ' || ch == '\t' || strings.ContainsRune("()[]{},", ch) {
			break
		}
		end += size
	}
	if end == col-1 {
		return col
	}
	return end
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// displayWidth returns the display width of a string, expanding tabs.
func displayWidth(s string) int {
	w := 0
	for _, ch := range s {
		if ch == '\t' {
			w += tabWidth
		} else {
			w++
		}
	}
	return w
}

// fileFromWriter extracts an *os.File from a writer for terminal detection.
// Returns nil if the writer is not backed by a file.
func fileFromWriter(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
