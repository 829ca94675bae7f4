// Copyright © 2026 The Quill authors

// Package lexical provides line-level lexical helpers for Quill source:
// string and comment boundary detection, masking of non-code text, and
// brace-balanced block scanning.
//
// Quill has no block comments. A line comment starts at "//" outside a
// string literal and runs to the end of the line. String literals are
// delimited by matching single or double quotes; an f-string (f"...")
// treats the contents of {...} interpolation blocks as code.
package lexical

import "regexp"

// Literal and identifier recognizers. Each pattern is anchored and matches
// a whole, already trimmed token.
var (
	IdentRe = regexp.MustCompile(`^[A-Za-z_]\w*$`)
	IntRe   = regexp.MustCompile(`^[-+]?(?:0[xX][0-9a-fA-F_]+|0[bB][01_]+|\d[\d_]*)$`)
	FloatRe = regexp.MustCompile(`^[-+]?(?:(?:\d[\d_]*\.\d*|\.\d+)(?:[eE][-+]?\d+)?|\d+[eE][-+]?\d+)$`)
	BoolRe  = regexp.MustCompile(`^(?:true|false)$`)
)

type class uint8

const (
	classCode class = iota
	classQuote
	classString
	classComment
)

// classify assigns a class to every byte of line. The second result is the
// class of the position just past the end of the line, which is classString
// for an unterminated literal.
func classify(line string) ([]class, class) {
	cls := make([]class, len(line))
	var (
		quote byte // open delimiter; 0 outside strings
		fstr  bool
		depth int // f-string interpolation depth
	)
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if quote == 0 {
			switch {
			case ch == '/' && i+1 < len(line) && line[i+1] == '/':
				for j := i; j < len(line); j++ {
					cls[j] = classComment
				}
				return cls, classComment
			case ch == '"' || ch == '\'':
				quote = ch
				fstr = hasPrefix(line, i, 'f')
				depth = 0
				cls[i] = classQuote
			default:
				cls[i] = classCode
			}
			continue
		}
		if depth > 0 {
			switch ch {
			case '{':
				depth++
			case '}':
				depth--
			}
			cls[i] = classCode
			continue
		}
		switch {
		case ch == '\\':
			cls[i] = classString
			if i+1 < len(line) {
				i++
				cls[i] = classString
			}
		case fstr && ch == '{':
			depth++
			cls[i] = classCode
		case ch == quote:
			quote = 0
			fstr = false
			cls[i] = classQuote
		default:
			cls[i] = classString
		}
	}
	if quote != 0 && depth == 0 {
		return cls, classString
	}
	return cls, classCode
}

// hasPrefix reports whether the quote at i is preceded by a standalone
// prefix letter p (e.g. the f of f"...").
func hasPrefix(line string, i int, p byte) bool {
	if i == 0 || line[i-1] != p {
		return false
	}
	return i == 1 || !IsIdentByte(line[i-2])
}

// IsIdentByte reports whether b can appear in an identifier.
func IsIdentByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// InString reports whether the byte at col lies inside the body of a string
// literal. Interpolation blocks of f-strings are code, not string. A column
// at or past the end of the line reports whether the line ends inside an
// unterminated literal.
func InString(line string, col int) bool {
	if col < 0 {
		return false
	}
	cls, end := classify(line)
	if col >= len(line) {
		return end == classString
	}
	return cls[col] == classString
}

// CommentStart returns the byte offset of the "//" that starts a line
// comment, or -1 if the line has no comment.
func CommentStart(line string) int {
	cls, _ := classify(line)
	for i, c := range cls {
		if c == classComment {
			return i
		}
	}
	return -1
}

// InComment reports whether col lies inside a line comment.
func InComment(line string, col int) bool {
	start := CommentStart(line)
	return start >= 0 && col >= start
}

// StripComment returns line without its trailing comment.
func StripComment(line string) string {
	if start := CommentStart(line); start >= 0 {
		return line[:start]
	}
	return line
}

// StripStrings removes the body of every string literal in line. Quotes are
// kept and the code inside f-string interpolation blocks is preserved, so
// f"a {x + 1} b" becomes f"{x + 1}".
func StripStrings(line string) string {
	cls, _ := classify(line)
	out := make([]byte, 0, len(line))
	for i := 0; i < len(line); i++ {
		if cls[i] != classString {
			out = append(out, line[i])
		}
	}
	return string(out)
}

// Mask returns a copy of line of the same length in which string bodies and
// comment text are replaced by spaces. Offsets into the result index the
// original line, which lets callers search the mask and slice the source.
func Mask(line string) string {
	cls, _ := classify(line)
	out := []byte(line)
	for i, c := range cls {
		if c == classString || c == classComment {
			out[i] = ' '
		}
	}
	return string(out)
}

// LiteralEnd returns the offset of the quote that closes the string literal
// opened at start, or -1 if the literal is unterminated.
func LiteralEnd(s string, start int) int {
	cls, _ := classify(s)
	for i := start + 1; i < len(s); i++ {
		if cls[i] == classQuote {
			return i
		}
	}
	return -1
}
