// Copyright © 2026 The Quill authors

package analysis

import (
	"fmt"
	"strings"
)

// SymbolKind classifies a declaration.
type SymbolKind int

const (
	SymFunction SymbolKind = iota
	SymStruct
	SymVariable
)

func (k SymbolKind) String() string {
	switch k {
	case SymFunction:
		return "function"
	case SymStruct:
		return "struct"
	case SymVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k SymbolKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParamKind classifies a function parameter.
type ParamKind int

const (
	ParamTyped    ParamKind = iota // TYPE name
	ParamImplicit                  // bare name, typed any
	ParamRest                      // TYPE *name
	ParamKeywords                  // TYPE **name
)

// MarshalText encodes the parameter kind by name.
func (k ParamKind) MarshalText() ([]byte, error) {
	switch k {
	case ParamImplicit:
		return []byte("implicit"), nil
	case ParamRest:
		return []byte("rest"), nil
	case ParamKeywords:
		return []byte("keywords"), nil
	default:
		return []byte("typed"), nil
	}
}

// Param is one entry of a function's parameter list.
type Param struct {
	Name string    `json:"name"`
	Type string    `json:"type"`
	Kind ParamKind `json:"kind"`
}

// Variadic reports whether the parameter collects extra arguments.
func (p Param) Variadic() bool {
	return p.Kind == ParamRest || p.Kind == ParamKeywords
}

// Display renders the parameter with its variadic marker, e.g. "int *rest".
func (p Param) Display() string {
	switch p.Kind {
	case ParamImplicit:
		return p.Name
	case ParamRest:
		return p.Type + " *" + p.Name
	case ParamKeywords:
		return p.Type + " **" + p.Name
	default:
		return p.Type + " " + p.Name
	}
}

// ValueType is the type of the parameter's value inside the function body.
// Rest parameters hold a list and keyword parameters a dict.
func (p Param) ValueType() string {
	switch p.Kind {
	case ParamRest:
		return TypeList
	case ParamKeywords:
		return TypeDict
	default:
		return p.Type
	}
}

// Field is one member of a struct, in construction order.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Symbol is a named declaration. Lines and columns are 0-based.
type Symbol struct {
	Name string     `json:"name"`
	Kind SymbolKind `json:"kind"`
	Line int        `json:"line"`
	Col  int        `json:"col"`
	Doc  string     `json:"doc,omitempty"`

	// Functions.
	ReturnType string  `json:"returnType,omitempty"`
	Params     []Param `json:"params,omitempty"`
	EndLine    int     `json:"endLine,omitempty"` // -1 when the body never closes

	// Structs.
	Fields []Field `json:"fields,omitempty"`

	// Variables.
	VarType   string `json:"varType,omitempty"`
	Enclosing string `json:"enclosing,omitempty"` // enclosing function, "" at top level
}

// Type returns the type a reference to the symbol produces: the return type
// of a function, the struct itself, or a variable's declared type.
func (s *Symbol) Type() string {
	switch s.Kind {
	case SymFunction:
		return s.ReturnType
	case SymStruct:
		return s.Name
	default:
		return s.VarType
	}
}

// HasBody reports whether a function's closing brace was found.
func (s *Symbol) HasBody() bool {
	return s.Kind == SymFunction && s.EndLine >= s.Line
}

// Variadic reports whether any parameter is a rest or keyword parameter.
func (s *Symbol) Variadic() bool {
	for _, p := range s.Params {
		if p.Variadic() {
			return true
		}
	}
	return false
}

// Slots returns the positional slots of a call to the symbol: a function's
// parameter types or a struct's field types.
func (s *Symbol) Slots() []string {
	var out []string
	switch s.Kind {
	case SymFunction:
		for _, p := range s.Params {
			out = append(out, p.Type)
		}
	case SymStruct:
		for _, f := range s.Fields {
			out = append(out, f.Type)
		}
	}
	return out
}

// Signature renders a one-line declaration for display.
func (s *Symbol) Signature() string {
	switch s.Kind {
	case SymFunction:
		params := make([]string, len(s.Params))
		for i, p := range s.Params {
			params[i] = p.Display()
		}
		return fmt.Sprintf("%s %s(%s)", s.ReturnType, s.Name, strings.Join(params, ", "))
	case SymStruct:
		fields := make([]string, len(s.Fields))
		for i, f := range s.Fields {
			fields[i] = f.Type + " " + f.Name
		}
		return fmt.Sprintf("struct %s { %s }", s.Name, strings.Join(fields, " "))
	default:
		return s.VarType + " " + s.Name
	}
}
