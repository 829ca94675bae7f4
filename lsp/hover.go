// Copyright © 2026 The Quill authors

package lsp

import (
	"fmt"
	"strings"

	"github.com/quill-lang/quill/analysis"
	"github.com/quill-lang/quill/lexical"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	table := s.table(doc)

	line := int(params.Position.Line)
	word, start := wordAt(table.Lines, line, int(params.Position.Character))
	if word == "" || !lexical.IdentRe.MatchString(word) {
		return nil, nil
	}
	if src := table.Lines[line]; lexical.InComment(src, start) || lexical.InString(src, start) {
		return nil, nil
	}

	content := hoverContent(table, line, start, word)
	if content == "" {
		return nil, nil
	}
	r := nameRange(line, start, len(word))
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: content,
		},
		Range: &r,
	}, nil
}

// hoverContent builds Markdown hover text for the identifier word found at
// the 0-based line and column. Field accesses resolve through the
// receiver's struct type.
func hoverContent(table *analysis.Table, line, col int, word string) string {
	ctx := table.ContextAt(line)

	if recv := receiverBefore(table.Lines[line], col); recv != "" {
		return fieldHover(ctx, recv, word)
	}

	if decl := table.SymbolAt(line); decl != nil && decl.Name == word && decl.Col == col {
		return symbolHover(table, decl)
	}
	if sym := ctx.Lookup(word); sym != nil {
		return symbolHover(table, sym)
	}
	if t, ok := analysis.BuiltinReturnType(word); ok {
		return fmt.Sprintf("**builtin** `%s`\n\nreturns `%s`", word, t)
	}
	return ""
}

func fieldHover(ctx analysis.Context, recv, field string) string {
	v := ctx.Variable(recv)
	if v == nil {
		return ""
	}
	st := ctx.Struct(v.VarType)
	if st == nil {
		return ""
	}
	for _, f := range st.Fields {
		if f.Name == field {
			return fmt.Sprintf("**field** `%s` of struct `%s`\n\n```quill\n%s %s\n```", f.Name, st.Name, f.Type, f.Name)
		}
	}
	return ""
}

func symbolHover(table *analysis.Table, sym *analysis.Symbol) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** `%s`", symbolKindLabel(sym, table), sym.Name)
	fmt.Fprintf(&sb, "\n\n```quill\n%s\n```", sym.Signature())

	if sym.Kind == analysis.SymVariable {
		if t, ok := initializerType(table, sym); ok && analysis.Normalize(t) != analysis.Normalize(sym.VarType) {
			fmt.Fprintf(&sb, "\n\ninitialized with a value of type `%s`", t)
		}
	}
	if sym.Doc != "" {
		fmt.Fprintf(&sb, "\n\n%s", sym.Doc)
	}
	return sb.String()
}

// initializerType infers the type of the expression a variable is declared
// with.
func initializerType(table *analysis.Table, sym *analysis.Symbol) (string, bool) {
	if sym.Line >= len(table.Lines) || table.SymbolAt(sym.Line) != sym {
		return "", false
	}
	code := lexical.StripComment(table.Lines[sym.Line])
	rest := code[min(len(code), sym.Col+len(sym.Name)):]
	_, expr, ok := strings.Cut(rest, "=")
	if !ok {
		return "", false
	}
	expr = strings.TrimRight(strings.TrimSpace(expr), "; \t")
	return analysis.InferExpr(expr, table.ContextAt(sym.Line))
}
