// Copyright © 2026 The Quill authors

// Package analysis provides symbol extraction and lightweight type inference
// for Quill source.
//
// There is no grammar or AST. A Table is built from raw text by line-oriented
// recognizers (see Recognizer) in two passes: struct names are collected
// first so that struct-typed parameters, fields and variables can be
// recognized in the second pass. Type inference (InferLiteral, InferExpr) is
// an ordered list of conservative pattern matches; an expression that no
// rule understands has no type, which callers treat as "skip this check".
//
// Every function in this package is a pure function of its inputs. The only
// state is the caller-owned Cache.
package analysis

import "strings"

// SplitLines splits document text into lines, dropping carriage returns.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Symbols returns the functions, structs and variables declared in text,
// ordered by declaration line.
func Symbols(text string) []*Symbol {
	return NewTable(text).Symbols
}
