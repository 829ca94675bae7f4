// Copyright © 2026 The Quill authors

package repl

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/quill-lang/quill/analysis"
	"github.com/quill-lang/quill/diagnostic"
	"github.com/quill-lang/quill/lexical"
	"github.com/quill-lang/quill/lint"
)

const bufferName = "<repl>"

// Session holds the document being explored. Declarations typed at the
// prompt are appended to the document; any other input is treated as an
// expression whose type is inferred at the current line.
type Session struct {
	out io.Writer

	name  string
	lines []string
	table *analysis.Table

	// at is the 0-based line expressions are inferred at; -1 means the end
	// of the document.
	at int

	// pending holds the lines of a declaration whose braces are still open.
	pending []string
	depth   int

	color diagnostic.ColorMode
}

// NewSession returns an empty session writing results to out.
func NewSession(out io.Writer) *Session {
	s := &Session{out: out, name: bufferName, at: -1, color: diagnostic.ColorAuto}
	s.rebuild()
	return s
}

// Continuing reports whether the session is inside an unfinished
// declaration.
func (s *Session) Continuing() bool {
	return len(s.pending) > 0
}

// Load replaces the document with the contents of path.
func (s *Session) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	s.name = path
	s.lines = analysis.SplitLines(strings.TrimSuffix(string(data), "\n"))
	s.at = -1
	s.pending, s.depth = nil, 0
	s.rebuild()
	return nil
}

// Table returns the symbol table of the current document.
func (s *Session) Table() *analysis.Table {
	return s.table
}

// Handle processes one line of input. It returns false when the session
// should end.
func (s *Session) Handle(input string) bool {
	if s.Continuing() {
		s.continueDecl(input)
		return true
	}
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return true
	case strings.HasPrefix(input, ":"):
		return s.command(input)
	}

	if d := s.table.Recognizer().Recognize(input); d.Kind != analysis.DeclUnrecognized {
		s.startDecl(input)
		return true
	}
	s.infer(input)
	return true
}

func (s *Session) startDecl(line string) {
	s.pending = []string{line}
	s.depth = lexical.BraceDelta(line)
	if s.depth <= 0 {
		s.commit()
	}
}

func (s *Session) continueDecl(line string) {
	s.pending = append(s.pending, line)
	s.depth += lexical.BraceDelta(line)
	if s.depth <= 0 {
		s.commit()
	}
}

func (s *Session) abandon() {
	s.pending, s.depth = nil, 0
}

func (s *Session) commit() {
	first := len(s.lines)
	s.lines = append(s.lines, s.pending...)
	s.abandon()
	s.rebuild()
	sym := s.table.SymbolAt(first)
	switch {
	case sym == nil:
	case sym.Kind == analysis.SymStruct:
		s.printf("%s\n", sym.Signature())
	default:
		s.printf("%s %s\n", sym.Kind, sym.Signature())
	}
}

func (s *Session) rebuild() {
	s.table = analysis.NewTable(strings.Join(s.lines, "\n"))
}

func (s *Session) context() analysis.Context {
	if s.at < 0 {
		return s.table.Globals()
	}
	return s.table.ContextAt(s.at)
}

func (s *Session) infer(expr string) {
	if t, ok := analysis.InferExpr(expr, s.context()); ok {
		s.printf("%s\n", t)
		return
	}
	s.printf("unknown\n")
}

func (s *Session) command(input string) bool {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case ":quit", ":q":
		return false
	case ":help":
		s.printf("%s", helpText)
	case ":symbols":
		s.symbols()
	case ":line":
		s.setLine(arg)
	case ":load":
		if arg == "" {
			s.printf("usage: :load FILE\n")
			break
		}
		if err := s.Load(arg); err != nil {
			s.printf("%v\n", err)
			break
		}
		s.printf("loaded %s: %d lines, %d symbols\n", arg, len(s.lines), len(s.table.Symbols))
	case ":check":
		s.check()
	case ":reset":
		s.name, s.lines, s.at = bufferName, nil, -1
		s.rebuild()
	default:
		s.printf("unknown command %s (try :help)\n", name)
	}
	return true
}

const helpText = `Enter an expression to print its inferred type, or a declaration to add it.
  :symbols      list the symbols of the document
  :line N       infer at line N (1-based); without N, at the end
  :load FILE    replace the document with FILE
  :check        lint the document
  :reset        clear the document
  :quit         leave
`

func (s *Session) symbols() {
	if len(s.table.Symbols) == 0 {
		s.printf("no symbols\n")
		return
	}
	for _, sym := range s.table.Symbols {
		scope := ""
		if sym.Enclosing != "" {
			scope = " (in " + sym.Enclosing + ")"
		}
		s.printf("%4d  %-8s %s%s\n", sym.Line+1, sym.Kind, sym.Signature(), scope)
	}
}

func (s *Session) setLine(arg string) {
	if arg == "" {
		s.at = -1
		s.printf("inferring at end of document\n")
		return
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(s.lines) {
		s.printf("line must be between 1 and %d\n", len(s.lines))
		return
	}
	s.at = n - 1
	if fn := s.table.EnclosingFunction(s.at); fn != nil {
		s.printf("inferring at line %d in %s\n", n, fn.Name)
		return
	}
	s.printf("inferring at line %d\n", n)
}

func (s *Session) check() {
	l := &lint.Linter{Analyzers: lint.DefaultAnalyzers()}
	diags, err := l.LintFile([]byte(strings.Join(s.lines, "\n")), s.name)
	if err != nil {
		s.printf("%v\n", err)
		return
	}
	if len(diags) == 0 {
		s.printf("no problems\n")
		return
	}
	r := &diagnostic.Renderer{
		Color:        s.color,
		SourceReader: func(string) ([]byte, error) { return []byte(strings.Join(s.lines, "\n")), nil },
	}
	annotations := make([]diagnostic.Diagnostic, len(diags))
	for i, d := range diags {
		annotations[i] = d.Annotation()
	}
	_ = r.RenderAll(s.out, annotations)
}

// names returns the symbol and builtin names starting with prefix.
func (s *Session) names(prefix string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, sym := range s.table.Symbols {
		add(sym.Name)
	}
	for _, name := range analysis.BuiltinNames() {
		add(name)
	}
	sort.Strings(out)
	return out
}

func (s *Session) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...) //nolint:errcheck // best-effort REPL output
}
