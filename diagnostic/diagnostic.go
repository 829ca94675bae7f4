// Copyright © 2026 The Quill authors

// Package diagnostic renders findings as annotated source snippets for
// terminal output, in the style of rustc:
//
//	warning[implicit-cast]: implicit conversion from float to int: variable x
//	  --> main.quill:3:9
//	   |
//	 3 |  int x = 3.5
//	   |          ^^^
//	   = note: the fractional part is truncated
//
// It does not depend on the lint or analysis packages, so any command can
// use it.
package diagnostic

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Span identifies a region of one source line to underline.
type Span struct {
	File   string // path for reading source; display name if unreadable
	Line   int    // 1-based line number
	Col    int    // 1-based start column
	EndCol int    // 1-based inclusive end column (0 = the token at Col)
	Label  string // text shown after the underline
}

// Diagnostic is a single finding with optional source annotations and
// trailing notes.
type Diagnostic struct {
	Severity Severity
	Code     string // shown in brackets after the severity, if set
	Message  string
	Spans    []Span
	Notes    []string // "= note:" lines
}
