// Copyright © 2026 The Quill authors

package analysis

import (
	"regexp"
	"strings"

	"github.com/quill-lang/quill/lexical"
)

var (
	callRe        = regexp.MustCompile(`^([A-Za-z_]\w*)\s*\(`)
	fieldAccessRe = regexp.MustCompile(`^([A-Za-z_]\w*)\.([A-Za-z_]\w*)$`)
	decimalRe     = regexp.MustCompile(`(?:^|[^\w.])\d+\.\d*`)
	floatCallRe   = regexp.MustCompile(`\bfloat\s*\(`)
	strCallRe     = regexp.MustCompile(`\bstr\s*\(`)
	bitwiseRe     = regexp.MustCompile(`<<|>>|[&|^]`)
	comparisonRe  = regexp.MustCompile(`==|!=|<=|>=|\b(?:and|or|not)\b`)
	arithSplitRe  = regexp.MustCompile(`\*\*|[-+*/]`)
)

// InferLiteral returns the type of expr when it is a single literal:
// strings, f-strings and byte strings, ints, floats, bools, lists, dicts and
// sets. A brace literal is a dict when it is empty or holds a top-level ':'.
// Identifiers are never resolved.
func InferLiteral(expr string) (string, bool) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return "", false
	}
	switch {
	case lexical.BoolRe.MatchString(s):
		return TypeBool, true
	case lexical.IntRe.MatchString(s):
		return TypeInt, true
	case lexical.FloatRe.MatchString(s):
		return TypeFloat, true
	}
	switch s[0] {
	case '"', '\'':
		if lexical.LiteralEnd(s, 0) == len(s)-1 {
			return TypeStr, true
		}
	case 'f', 'b':
		if len(s) > 2 && (s[1] == '"' || s[1] == '\'') && lexical.LiteralEnd(s, 1) == len(s)-1 {
			if s[0] == 'f' {
				return TypeStr, true
			}
			return TypeBytes, true
		}
	case '[':
		if lexical.MatchClose(s, 0) == len(s)-1 {
			return TypeList, true
		}
	case '{':
		if lexical.MatchClose(s, 0) == len(s)-1 {
			inner := s[1 : len(s)-1]
			if strings.TrimSpace(inner) == "" || lexical.HasTopLevel(inner, ':') {
				return TypeDict, true
			}
			return TypeSet, true
		}
	}
	return "", false
}

// InferExpr returns the type of expr given the symbols in ctx. Rules are
// tried from the most specific to the broadest:
//
//  1. literals (InferLiteral)
//  2. calls: struct construction, declared functions, builtins
//  3. string concatenation
//  4. arithmetic: '/' or any float operand makes a float, otherwise int
//  5. bitwise operators: int
//  6. comparisons and logical operators: bool
//  7. identifiers: the variable's declared type
//  8. field access on a struct-typed variable
//
// Indexing and anything else has no type. Operands are split on operator
// characters only; parentheses and precedence are not understood.
func InferExpr(expr string, ctx Context) (string, bool) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return "", false
	}
	if t, ok := InferLiteral(s); ok {
		return t, true
	}
	code := lexical.Mask(s)

	if m := callRe.FindStringSubmatchIndex(s); m != nil && lexical.MatchClose(s, m[1]-1) == len(s)-1 {
		return inferCall(s[m[2]:m[3]], ctx)
	}

	if hasBinaryOp(code, "+") && (strings.ContainsAny(code, `"'`) || strCallRe.MatchString(code)) {
		return TypeStr, true
	}

	if hasBinaryOp(code, "+-*/") {
		return inferArithmetic(s, code, ctx), true
	}

	if bitwiseRe.MatchString(code) {
		return TypeInt, true
	}

	if comparisonRe.MatchString(code) || hasLoneAngle(code) {
		return TypeBool, true
	}

	if lexical.IdentRe.MatchString(s) {
		return identType(s, ctx)
	}

	if m := fieldAccessRe.FindStringSubmatch(s); m != nil {
		return fieldType(m[1], m[2], ctx)
	}

	// Indexing (xs[i]) and anything else: element types are unknown and
	// guessing would produce false positives.
	return "", false
}

func inferCall(name string, ctx Context) (string, bool) {
	target := ctx.ResolveCall(name)
	switch target.Kind {
	case CallStruct:
		return target.Symbol.Name, true
	case CallFunction:
		return target.Symbol.ReturnType, target.Symbol.ReturnType != ""
	}
	return BuiltinReturnType(name)
}

func inferArithmetic(s, code string, ctx Context) string {
	if hasBinaryOp(code, "/") || decimalRe.MatchString(code) || floatCallRe.MatchString(code) {
		return TypeFloat
	}
	result := TypeInt
	for _, operand := range arithSplitRe.Split(s, -1) {
		t, ok := operandType(strings.TrimSpace(operand), ctx)
		if !ok {
			continue
		}
		switch Normalize(t) {
		case TypeFloat:
			return TypeFloat
		case TypeStr:
			result = TypeStr
		case TypeList:
			if result == TypeInt {
				result = TypeList
			}
		}
	}
	return result
}

// operandType resolves a bare identifier or field access operand.
func operandType(op string, ctx Context) (string, bool) {
	if lexical.IdentRe.MatchString(op) {
		if v := ctx.Variable(op); v != nil && v.VarType != "" {
			return v.VarType, true
		}
		return "", false
	}
	if m := fieldAccessRe.FindStringSubmatch(op); m != nil {
		return fieldType(m[1], m[2], ctx)
	}
	return "", false
}

func identType(name string, ctx Context) (string, bool) {
	sym := ctx.Lookup(name)
	if sym == nil {
		return "", false
	}
	switch sym.Kind {
	case SymVariable:
		return sym.VarType, sym.VarType != ""
	case SymFunction:
		return TypeFunction, true
	}
	return "", false
}

func fieldType(varName, field string, ctx Context) (string, bool) {
	v := ctx.Variable(varName)
	if v == nil {
		return "", false
	}
	st := ctx.Struct(v.VarType)
	if st == nil {
		return "", false
	}
	for _, f := range st.Fields {
		if f.Name == field {
			return f.Type, true
		}
	}
	return "", false
}

// hasBinaryOp reports whether code contains one of ops used as a binary
// operator, i.e. preceded by an operand rather than by another operator.
func hasBinaryOp(code, ops string) bool {
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(ops, code[i]) < 0 {
			continue
		}
		j := i - 1
		for j >= 0 && code[j] == ' ' {
			j--
		}
		if j < 0 {
			continue
		}
		p := code[j]
		if lexical.IsIdentByte(p) || p == ')' || p == ']' || p == '}' || p == '"' || p == '\'' {
			return true
		}
	}
	return false
}

// hasLoneAngle reports whether code holds a '<' or '>' that is not part of
// a shift operator.
func hasLoneAngle(code string) bool {
	for i := 0; i < len(code); i++ {
		if code[i] != '<' && code[i] != '>' {
			continue
		}
		prevAngle := i > 0 && (code[i-1] == '<' || code[i-1] == '>')
		nextAngle := i+1 < len(code) && (code[i+1] == '<' || code[i+1] == '>')
		if !prevAngle && !nextAngle {
			return true
		}
	}
	return false
}
