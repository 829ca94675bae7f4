// Copyright © 2026 The Quill authors

package lsp

import (
	"regexp"

	"github.com/quill-lang/quill/analysis"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentDocumentSymbol returns the document outline: functions with
// their parameters and locals, structs with their fields, and top-level
// variables.
func (s *Server) textDocumentDocumentSymbol(_ *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	table := s.table(doc)

	symbols := []protocol.DocumentSymbol{}
	for _, sym := range table.Symbols {
		if sym.Kind == analysis.SymVariable && sym.Enclosing != "" {
			continue
		}
		symbols = append(symbols, documentSymbol(table, sym))
	}
	return symbols, nil
}

func documentSymbol(table *analysis.Table, sym *analysis.Symbol) protocol.DocumentSymbol {
	detail := sym.Signature()
	ds := protocol.DocumentSymbol{
		Name:           sym.Name,
		Detail:         &detail,
		Kind:           mapSymbolKind(sym.Kind),
		Range:          symbolRange(sym, table.Lines),
		SelectionRange: nameRange(sym.Line, sym.Col, len(sym.Name)),
	}
	switch sym.Kind {
	case analysis.SymFunction:
		ds.Children = functionChildren(table, sym)
	case analysis.SymStruct:
		ds.Children = structChildren(table, sym)
	}
	return ds
}

func functionChildren(table *analysis.Table, fn *analysis.Symbol) []protocol.DocumentSymbol {
	var children []protocol.DocumentSymbol
	header := table.Lines[fn.Line]
	from := fn.Col + len(fn.Name)
	for _, p := range fn.Params {
		col, ok := wordIndex(header, from, p.Name)
		if !ok {
			continue
		}
		detail := p.Display()
		r := nameRange(fn.Line, col, len(p.Name))
		children = append(children, protocol.DocumentSymbol{
			Name:           p.Name,
			Detail:         &detail,
			Kind:           protocol.SymbolKindVariable,
			Range:          r,
			SelectionRange: r,
		})
		from = col + len(p.Name)
	}
	for _, local := range table.Symbols {
		if local.Kind != analysis.SymVariable || local.Enclosing != fn.Name {
			continue
		}
		if local.Line <= fn.Line || fn.HasBody() && local.Line > fn.EndLine {
			continue
		}
		detail := local.VarType
		r := nameRange(local.Line, local.Col, len(local.Name))
		children = append(children, protocol.DocumentSymbol{
			Name:           local.Name,
			Detail:         &detail,
			Kind:           protocol.SymbolKindVariable,
			Range:          r,
			SelectionRange: r,
		})
	}
	return children
}

// structChildren locates each field in the lines following the header, in
// declaration order.
func structChildren(table *analysis.Table, st *analysis.Symbol) []protocol.DocumentSymbol {
	var children []protocol.DocumentSymbol
	line, from := st.Line, st.Col+len(st.Name)
	for _, f := range st.Fields {
		for line < len(table.Lines) {
			if col, ok := wordIndex(table.Lines[line], from, f.Name); ok {
				detail := f.Type
				r := nameRange(line, col, len(f.Name))
				children = append(children, protocol.DocumentSymbol{
					Name:           f.Name,
					Detail:         &detail,
					Kind:           protocol.SymbolKindField,
					Range:          r,
					SelectionRange: r,
				})
				from = col + len(f.Name)
				break
			}
			line, from = line+1, 0
		}
	}
	return children
}

// wordIndex finds name as a whole word in s at or after from.
func wordIndex(s string, from int, name string) (int, bool) {
	if from > len(s) {
		return 0, false
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	loc := re.FindStringIndex(s[from:])
	if loc == nil {
		return 0, false
	}
	return from + loc[0], true
}

// mapSymbolKind converts an analysis.SymbolKind to an LSP SymbolKind.
func mapSymbolKind(kind analysis.SymbolKind) protocol.SymbolKind {
	switch kind {
	case analysis.SymFunction:
		return protocol.SymbolKindFunction
	case analysis.SymStruct:
		return protocol.SymbolKindStruct
	default:
		return protocol.SymbolKindVariable
	}
}

// symbolKindLabel is the word used for a symbol in hover text.
func symbolKindLabel(sym *analysis.Symbol, table *analysis.Table) string {
	if sym.Kind != analysis.SymVariable || sym.Enclosing == "" {
		return sym.Kind.String()
	}
	if decl := table.SymbolAt(sym.Line); decl != nil && decl.Kind == analysis.SymFunction {
		return "parameter"
	}
	return "local variable"
}
