// Copyright © 2026 The Quill authors

package analysis

// Context is the ordered list of symbols visible at a point in a document:
// locals first, then globals. Lookups return the first match, so a local
// shadows any global of the same name.
type Context []*Symbol

// Lookup returns the first symbol with the given name, of any kind.
func (c Context) Lookup(name string) *Symbol {
	for _, s := range c {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (c Context) lookupKind(name string, kind SymbolKind) *Symbol {
	for _, s := range c {
		if s.Name == name && s.Kind == kind {
			return s
		}
	}
	return nil
}

// Function returns the first function named name.
func (c Context) Function(name string) *Symbol { return c.lookupKind(name, SymFunction) }

// Struct returns the first struct named name.
func (c Context) Struct(name string) *Symbol { return c.lookupKind(name, SymStruct) }

// Variable returns the first variable named name.
func (c Context) Variable(name string) *Symbol { return c.lookupKind(name, SymVariable) }

// CallKind tags what a call expression name(...) resolves to.
type CallKind int

const (
	CallUnknown CallKind = iota
	CallStruct
	CallFunction
)

// CallTarget is the resolution of a call site.
type CallTarget struct {
	Kind   CallKind
	Symbol *Symbol
}

// ResolveCall resolves the callee of name(...). Construction and call are
// lexically identical, so structs are always tried before functions.
func (c Context) ResolveCall(name string) CallTarget {
	if s := c.Struct(name); s != nil {
		return CallTarget{Kind: CallStruct, Symbol: s}
	}
	if s := c.Function(name); s != nil {
		return CallTarget{Kind: CallFunction, Symbol: s}
	}
	return CallTarget{Kind: CallUnknown}
}
