// Copyright © 2026 The Quill authors

package analysis

// Primitive type names. Any declared struct name is also a type.
const (
	TypeVoid     = "void"
	TypeInt      = "int"
	TypeFloat    = "float"
	TypeStr      = "str"
	TypeString   = "string"
	TypeBool     = "bool"
	TypeList     = "list"
	TypeDict     = "dict"
	TypeSet      = "set"
	TypeBytes    = "bytes"
	TypeAny      = "any"
	TypePyObject = "pyobject"
	TypePyObj    = "pyobj"
	TypeFunction = "function"
)

// Primitives lists the built-in type names in the order they are tried by
// the declaration recognizers.
var Primitives = []string{
	TypeVoid, TypeInt, TypeFloat, TypeStr, TypeString, TypeBool,
	TypeList, TypeDict, TypeSet, TypeBytes, TypeAny,
	TypePyObject, TypePyObj, TypeFunction,
}

var primitiveSet = func() map[string]bool {
	m := make(map[string]bool, len(Primitives))
	for _, p := range Primitives {
		m[p] = true
	}
	return m
}()

// IsPrimitive reports whether name is a built-in type name.
func IsPrimitive(name string) bool {
	return primitiveSet[name]
}

// Normalize maps type aliases to a canonical name.
func Normalize(t string) string {
	switch t {
	case TypeString:
		return TypeStr
	case TypePyObj:
		return TypePyObject
	}
	return t
}

// Compatibility is the outcome of checking a value's type against a
// declared type.
type Compatibility int

const (
	Compatible   Compatibility = iota
	ImplicitCast               // float value where int is declared; truncates
	Mismatch
)

// Compat checks whether a value of type actual may be used where declared
// is expected. any is compatible in both directions. An int value widens to
// float silently, while a float value narrowing to int is an implicit cast.
func Compat(declared, actual string) Compatibility {
	d, a := Normalize(declared), Normalize(actual)
	switch {
	case d == "" || a == "":
		return Compatible
	case d == a, d == TypeAny, a == TypeAny:
		return Compatible
	case d == TypeFloat && a == TypeInt:
		return Compatible
	case d == TypeInt && a == TypeFloat:
		return ImplicitCast
	}
	return Mismatch
}
