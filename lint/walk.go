// Copyright © 2026 The Quill authors

package lint

import (
	"regexp"
	"strings"

	"github.com/quill-lang/quill/analysis"
	"github.com/quill-lang/quill/lexical"
)

var callNameRe = regexp.MustCompile(`\b([A-Za-z_]\w*)\s*\(`)

// CallSite is one name(args) occurrence. Columns are 0-based byte offsets
// into the source line.
type CallSite struct {
	Name  string
	Line  int
	Col   int // start of Name
	Close int // the closing parenthesis
	Args  []Arg
}

// Arg is one top-level argument of a call.
type Arg struct {
	Text string
	Col  int
}

// Len returns the width of the call expression in bytes.
func (c CallSite) Len() int {
	return c.Close + 1 - c.Col
}

// WalkCalls calls fn for every call site in the document. Method calls
// (x.name(...)), control keywords and calls whose arguments continue on a
// later line are skipped.
func WalkCalls(pass *Pass, fn func(call CallSite)) {
	for i, code := range pass.Code {
		for _, call := range callsOnLine(pass.Lines[i], code, i) {
			fn(call)
		}
	}
}

func callsOnLine(line, code string, lineNum int) []CallSite {
	var calls []CallSite
	for _, m := range callNameRe.FindAllStringSubmatchIndex(code, -1) {
		name := code[m[2]:m[3]]
		if analysis.ControlKeywords[name] {
			continue
		}
		if m[2] > 0 && code[m[2]-1] == '.' {
			continue
		}
		open := m[1] - 1
		closing := lexical.MatchClose(line, open)
		if closing < 0 {
			continue
		}
		calls = append(calls, CallSite{
			Name:  name,
			Line:  lineNum,
			Col:   m[2],
			Close: closing,
			Args:  splitArgs(line, code, open+1, closing),
		})
	}
	return calls
}

// splitArgs splits line[start:end] on commas at nesting depth zero. code is
// the masked line, so commas inside strings never split.
func splitArgs(line, code string, start, end int) []Arg {
	if strings.TrimSpace(line[start:end]) == "" {
		return nil
	}
	var args []Arg
	depth := 0
	from := start
	emit := func(to int) {
		text := line[from:to]
		trimmed := strings.TrimLeft(text, " \t")
		args = append(args, Arg{
			Text: strings.TrimSpace(trimmed),
			Col:  from + len(text) - len(trimmed),
		})
	}
	for i := start; i < end; i++ {
		switch code[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				emit(i)
				from = i + 1
			}
		}
	}
	emit(end)
	return args
}

// WordRe returns a pattern matching name as a whole word. A trailing
// "(" after optional spaces is captured in group 1, which distinguishes a
// call from a bare reference.
func WordRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b(\s*\()?`)
}

// IsDefinitionLine reports whether line declares a function or struct.
func IsDefinitionLine(pass *Pass, line int) bool {
	switch pass.Table.Recognizer().Recognize(pass.Lines[line]).Kind {
	case analysis.DeclFunction, analysis.DeclStruct:
		return true
	}
	return false
}

// exprAfter returns the source text of line from col to the end of its code,
// trimmed and without trailing semicolons. The second result is the column
// where the expression starts.
func exprAfter(line, code string, col int) (string, int) {
	end := len(code)
	if c := lexical.CommentStart(line); c >= 0 && c < end {
		end = c
	}
	if col > end {
		return "", col
	}
	text := line[col:end]
	trimmed := strings.TrimLeft(text, " \t")
	start := col + len(text) - len(trimmed)
	return strings.TrimRight(strings.TrimSpace(trimmed), "; \t"), start
}
