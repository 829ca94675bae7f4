// Copyright © 2026 The Quill authors

package analysis

import (
	"strings"

	"github.com/quill-lang/quill/lexical"
)

// Table is the symbol table of one document. A Table is immutable once
// built and may be shared between goroutines.
type Table struct {
	Lines   []string
	Symbols []*Symbol
	Docs    Docs

	rec *Recognizer
}

// NewTable scans text and builds its symbol table.
func NewTable(text string) *Table {
	lines := SplitLines(text)
	t := &Table{
		Lines: lines,
		Docs:  ExtractDocs(lines),
		rec:   NewRecognizer(StructNames(lines)),
	}
	for i, line := range lines {
		d := t.rec.Recognize(line)
		var sym *Symbol
		switch d.Kind {
		case DeclFunction:
			sym = &Symbol{
				Name:       d.Name,
				Kind:       SymFunction,
				ReturnType: d.Type,
				Params:     ParseParams(d.Params),
				EndLine:    -1,
			}
			if end, ok := t.bodyEnd(i); ok {
				sym.EndLine = end
			}
		case DeclStruct:
			sym = &Symbol{Name: d.Name, Kind: SymStruct, Fields: t.fields(i)}
		case DeclVariable:
			sym = &Symbol{Name: d.Name, Kind: SymVariable, VarType: d.Type}
		default:
			continue
		}
		sym.Line = i
		sym.Col = d.Col
		sym.Doc = t.Docs[i]
		t.Symbols = append(t.Symbols, sym)
	}
	for _, s := range t.Symbols {
		if s.Kind != SymVariable {
			continue
		}
		if fn := t.EnclosingFunction(s.Line); fn != nil {
			s.Enclosing = fn.Name
		}
	}
	return t
}

// Recognizer returns the declaration recognizer built for this document.
func (t *Table) Recognizer() *Recognizer {
	return t.rec
}

// bodyStart returns the line holding the opening brace of the function
// declared at line, or -1 when the function has no body. The brace may sit
// on the header line or start the next non-blank line.
func (t *Table) bodyStart(line int) int {
	if strings.Contains(lexical.Mask(t.Lines[line]), "{") {
		return line
	}
	for j := line + 1; j < len(t.Lines); j++ {
		trimmed := strings.TrimSpace(t.Lines[j])
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "{") {
			return j
		}
		break
	}
	return -1
}

// bodyEnd finds the closing line of the function declared at line.
func (t *Table) bodyEnd(line int) (int, bool) {
	return lexical.BlockEnd(t.Lines, t.bodyStart(line))
}

// fields parses the fields of the struct declared at line. Fields may share
// the header line ("struct P { int x int y }") or follow it, one or more per
// line, up to the closing brace.
func (t *Table) fields(line int) []Field {
	header := lexical.Mask(t.Lines[line])
	rest := header[strings.IndexByte(header, '{')+1:]
	if end := strings.IndexByte(rest, '}'); end >= 0 {
		return t.fieldsIn(rest[:end])
	}
	out := t.fieldsIn(rest)
	for j := line + 1; j < len(t.Lines); j++ {
		if closingBraceRe.MatchString(t.Lines[j]) {
			break
		}
		m := lexical.Mask(t.Lines[j])
		if end := strings.IndexByte(m, '}'); end >= 0 {
			out = append(out, t.fieldsIn(m[:end])...)
			break
		}
		out = append(out, t.fieldsIn(m)...)
	}
	return out
}

func (t *Table) fieldsIn(segment string) []Field {
	var out []Field
	for _, m := range t.rec.fieldRe.FindAllStringSubmatch(segment, -1) {
		out = append(out, Field{Type: m[1], Name: m[2]})
	}
	return out
}

func (t *Table) first(name string, kind SymbolKind) *Symbol {
	for _, s := range t.Symbols {
		if s.Name == name && s.Kind == kind {
			return s
		}
	}
	return nil
}

// Function returns the first function declared with the given name.
func (t *Table) Function(name string) *Symbol { return t.first(name, SymFunction) }

// Struct returns the struct declared with the given name.
func (t *Table) Struct(name string) *Symbol { return t.first(name, SymStruct) }

// Variable returns the first variable declared with the given name.
func (t *Table) Variable(name string) *Symbol { return t.first(name, SymVariable) }

// Functions returns every function in declaration order.
func (t *Table) Functions() []*Symbol {
	var out []*Symbol
	for _, s := range t.Symbols {
		if s.Kind == SymFunction {
			out = append(out, s)
		}
	}
	return out
}

// SymbolAt returns the symbol declared on line, if any.
func (t *Table) SymbolAt(line int) *Symbol {
	for _, s := range t.Symbols {
		if s.Line == line {
			return s
		}
	}
	return nil
}

// EnclosingFunction returns the innermost function whose body is still open
// at line. For each function declared above line, braces are counted from
// the line holding its opening brace up to the line before; a positive count
// means the body has not closed yet. The latest such function wins.
func (t *Table) EnclosingFunction(line int) *Symbol {
	var inner *Symbol
	for _, fn := range t.Symbols {
		if fn.Kind != SymFunction || fn.Line >= line {
			continue
		}
		start := t.bodyStart(fn.Line)
		if start < 0 || start >= line {
			continue
		}
		depth := 0
		for j := start; j < line && j < len(t.Lines); j++ {
			depth += lexical.BraceDelta(t.Lines[j])
			if depth <= 0 && j > start {
				break
			}
		}
		if depth > 0 {
			inner = fn
		}
	}
	return inner
}

// Globals returns the functions, structs and top-level variables.
func (t *Table) Globals() Context {
	var out Context
	for _, s := range t.Symbols {
		if s.Kind == SymVariable && s.Enclosing != "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FunctionContext returns the symbols visible at line inside fn: its
// parameters, then the locals fn declared before line (nearest first), then
// the globals.
func (t *Table) FunctionContext(fn *Symbol, line int) Context {
	var ctx Context
	for i := len(t.Symbols) - 1; i >= 0; i-- {
		s := t.Symbols[i]
		if s.Kind == SymVariable && s.Enclosing == fn.Name && s.Line > fn.Line && s.Line < line {
			ctx = append(ctx, s)
		}
	}
	for _, p := range fn.Params {
		ctx = append(ctx, &Symbol{
			Name:      p.Name,
			Kind:      SymVariable,
			Line:      fn.Line,
			VarType:   p.ValueType(),
			Enclosing: fn.Name,
		})
	}
	return append(ctx, t.Globals()...)
}

// ContextAt returns the symbols visible at line.
func (t *Table) ContextAt(line int) Context {
	if fn := t.EnclosingFunction(line); fn != nil {
		return t.FunctionContext(fn, line)
	}
	return t.Globals()
}
