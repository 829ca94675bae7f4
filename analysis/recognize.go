// Copyright © 2026 The Quill authors

package analysis

import (
	"regexp"
	"strings"
)

// DeclKind tags the result of recognizing a single source line.
type DeclKind int

const (
	DeclUnrecognized DeclKind = iota
	DeclFunction
	DeclStruct
	DeclVariable
)

// Decl is a declaration recognized on one line. Col is the byte offset of
// Name within the line.
type Decl struct {
	Kind   DeclKind
	Type   string // return type or variable type; empty for structs
	Name   string
	Col    int
	Params string // raw parameter text, functions only
}

// ControlKeywords are words that may precede "(...) {" without being a
// function name.
var ControlKeywords = map[string]bool{
	"if": true, "elif": true, "else": true, "while": true, "for": true,
	"switch": true, "match": true, "case": true, "try": true, "catch": true,
	"with": true, "return": true, "defer": true, "spawn": true,
}

var (
	structHeaderRe = regexp.MustCompile(`^\s*struct\s+(\w+)\s*\{`)
	closingBraceRe = regexp.MustCompile(`^\s*\}`)
)

// Recognizer matches declaration lines. Its patterns embed the set of valid
// type tokens: the primitives plus the struct names of the document.
type Recognizer struct {
	types   map[string]bool
	funcRe  *regexp.Regexp
	varRe   *regexp.Regexp
	fieldRe *regexp.Regexp
}

// NewRecognizer builds a recognizer accepting the primitive types and the
// given struct names as type tokens.
func NewRecognizer(structs []string) *Recognizer {
	r := &Recognizer{types: make(map[string]bool)}
	var alts []string
	for _, name := range append(append([]string(nil), Primitives...), structs...) {
		if r.types[name] {
			continue
		}
		r.types[name] = true
		alts = append(alts, regexp.QuoteMeta(name))
	}
	typ := `(` + strings.Join(alts, "|") + `)`
	r.funcRe = regexp.MustCompile(`^\s*` + typ + `\s+(\w+)\s*\(([^)]*)\)`)
	r.varRe = regexp.MustCompile(`^\s*` + typ + `\s+(\w+)\s*=`)
	r.fieldRe = regexp.MustCompile(`\b` + typ + `\s+([A-Za-z_]\w*)`)
	return r
}

// IsType reports whether name is a valid type token for this document.
func (r *Recognizer) IsType(name string) bool {
	return r.types[name]
}

// Recognize classifies a line. Functions take precedence over structs, and
// structs over variables; a line matches at most one kind.
func (r *Recognizer) Recognize(line string) Decl {
	if d, ok := r.function(line); ok {
		return d
	}
	if d, ok := structDecl(line); ok {
		return d
	}
	if d, ok := r.variable(line); ok {
		return d
	}
	return Decl{Kind: DeclUnrecognized}
}

func (r *Recognizer) function(line string) (Decl, bool) {
	m := r.funcRe.FindStringSubmatchIndex(line)
	if m == nil {
		return Decl{}, false
	}
	return Decl{
		Kind:   DeclFunction,
		Type:   line[m[2]:m[3]],
		Name:   line[m[4]:m[5]],
		Col:    m[4],
		Params: line[m[6]:m[7]],
	}, true
}

func structDecl(line string) (Decl, bool) {
	m := structHeaderRe.FindStringSubmatchIndex(line)
	if m == nil {
		return Decl{}, false
	}
	return Decl{Kind: DeclStruct, Name: line[m[2]:m[3]], Col: m[2]}, true
}

func (r *Recognizer) variable(line string) (Decl, bool) {
	m := r.varRe.FindStringSubmatchIndex(line)
	if m == nil {
		return Decl{}, false
	}
	// "int x == y" is a comparison, not a declaration.
	if m[1] < len(line) && line[m[1]] == '=' {
		return Decl{}, false
	}
	return Decl{
		Kind: DeclVariable,
		Type: line[m[2]:m[3]],
		Name: line[m[4]:m[5]],
		Col:  m[4],
	}, true
}

// StructNames returns the names of all structs declared in lines, in order.
func StructNames(lines []string) []string {
	var names []string
	for _, line := range lines {
		if m := structHeaderRe.FindStringSubmatch(line); m != nil {
			names = append(names, m[1])
		}
	}
	return names
}

var (
	keywordsParamRe = regexp.MustCompile(`^(\w+)?\s*\*\*\s*(\w+)$`)
	restParamRe     = regexp.MustCompile(`^(\w+)?\s*\*\s*(\w+)$`)
	typedParamRe    = regexp.MustCompile(`^(\w+)\s+(\w+)$`)
	bareParamRe     = regexp.MustCompile(`^(\w+)$`)
)

// ParseParams splits raw parameter text on commas and classifies each
// entry. Default values ("int n = 3") are dropped. Commas nested inside a
// default value are not understood.
func ParseParams(text string) []Param {
	var params []Param
	for _, tok := range strings.Split(text, ",") {
		if i := strings.IndexByte(tok, '='); i >= 0 {
			tok = tok[:i]
		}
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		params = append(params, parseParam(tok))
	}
	return params
}

func parseParam(tok string) Param {
	if m := keywordsParamRe.FindStringSubmatch(tok); m != nil {
		return Param{Name: m[2], Type: orAny(m[1]), Kind: ParamKeywords}
	}
	if m := restParamRe.FindStringSubmatch(tok); m != nil {
		return Param{Name: m[2], Type: orAny(m[1]), Kind: ParamRest}
	}
	if m := typedParamRe.FindStringSubmatch(tok); m != nil {
		return Param{Name: m[2], Type: m[1], Kind: ParamTyped}
	}
	if m := bareParamRe.FindStringSubmatch(tok); m != nil {
		return Param{Name: m[1], Type: TypeAny, Kind: ParamImplicit}
	}
	// Unknown shape: keep the slot so arity stays right.
	words := strings.Fields(tok)
	return Param{Name: strings.Trim(words[len(words)-1], "*"), Type: TypeAny, Kind: ParamImplicit}
}

func orAny(t string) string {
	if t == "" {
		return TypeAny
	}
	return t
}
