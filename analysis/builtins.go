// Copyright © 2026 The Quill authors

package analysis

import "sort"

// builtinReturnTypes holds the result type of runtime builtins. Builtins
// whose result depends on their arguments (min, max, abs, ...) are absent so
// that calls to them have no inferred type.
var builtinReturnTypes = map[string]string{
	// conversions
	"int":   TypeInt,
	"float": TypeFloat,
	"str":   TypeStr,
	"bool":  TypeBool,
	"list":  TypeList,
	"dict":  TypeDict,
	"set":   TypeSet,
	"bytes": TypeBytes,

	// sequences and strings
	"len":        TypeInt,
	"range":      TypeList,
	"keys":       TypeList,
	"values":     TypeList,
	"items":      TypeList,
	"split":      TypeList,
	"sorted":     TypeList,
	"join":       TypeStr,
	"upper":      TypeStr,
	"lower":      TypeStr,
	"strip":      TypeStr,
	"replace":    TypeStr,
	"format":     TypeStr,
	"repr":       TypeStr,
	"type":       TypeStr,
	"chr":        TypeStr,
	"hex":        TypeStr,
	"ord":        TypeInt,
	"hash":       TypeInt,
	"contains":   TypeBool,
	"startswith": TypeBool,
	"endswith":   TypeBool,
	"isinstance": TypeBool,
	"append":     TypeVoid,

	// math
	"sqrt":    TypeFloat,
	"pow":     TypeFloat,
	"exp":     TypeFloat,
	"log":     TypeFloat,
	"sin":     TypeFloat,
	"cos":     TypeFloat,
	"tan":     TypeFloat,
	"random":  TypeFloat,
	"floor":   TypeInt,
	"ceil":    TypeInt,
	"round":   TypeInt,
	"randint": TypeInt,

	// io and system
	"print":      TypeVoid,
	"println":    TypeVoid,
	"input":      TypeStr,
	"read_file":  TypeStr,
	"write_file": TypeVoid,
	"exists":     TypeBool,
	"sleep":      TypeVoid,
	"time":       TypeFloat,
	"exit":       TypeVoid,

	// sockets
	"connect": TypeInt,
	"send":    TypeInt,
	"recv":    TypeBytes,
	"close":   TypeVoid,

	// python interop
	"py_import": TypePyObject,
	"py_call":   TypeAny,
	"py_eval":   TypeAny,
	"py_attr":   TypeAny,
}

// BuiltinReturnType returns the result type of the named builtin.
func BuiltinReturnType(name string) (string, bool) {
	t, ok := builtinReturnTypes[name]
	return t, ok
}

// BuiltinNames returns the names of the builtins with a known result type,
// sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinReturnTypes))
	for name := range builtinReturnTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
