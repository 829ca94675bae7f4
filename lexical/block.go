// Copyright © 2026 The Quill authors

package lexical

import "strings"

// BraceDelta returns the number of '{' minus the number of '}' in the code
// portion of line.
func BraceDelta(line string) int {
	n := 0
	for _, ch := range []byte(StripStrings(StripComment(line))) {
		switch ch {
		case '{':
			n++
		case '}':
			n--
		}
	}
	return n
}

// BlockEnd scans forward from lines[start], which holds the first '{' of a
// block, and returns the index of the line on which the block's braces
// balance back to zero. The boolean is false when the document ends first.
func BlockEnd(lines []string, start int) (int, bool) {
	if start < 0 {
		return -1, false
	}
	depth := 0
	opened := false
	for i := start; i < len(lines); i++ {
		for _, ch := range []byte(Mask(lines[i])) {
			switch ch {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
				if opened && depth == 0 {
					return i, true
				}
			}
		}
	}
	return -1, false
}

func closerOf(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	}
	return 0
}

// MatchClose returns the offset of the bracket that closes the one at
// s[open], counting only brackets outside strings and comments. It returns
// -1 if s[open] is not an opening bracket or the bracket is never closed.
func MatchClose(s string, open int) int {
	if open < 0 || open >= len(s) {
		return -1
	}
	closer := closerOf(s[open])
	if closer == 0 {
		return -1
	}
	opener := s[open]
	m := Mask(s)
	if m[open] != opener {
		return -1
	}
	depth := 0
	for i := open; i < len(m); i++ {
		switch m[i] {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// SplitTopLevel splits s on sep where sep occurs outside strings and outside
// any (), [] or {} nesting. Parts are trimmed; a blank s yields no parts.
func SplitTopLevel(s string, sep byte) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	m := Mask(s)
	var parts []string
	depth, last := 0, 0
	for i := 0; i < len(m); i++ {
		switch m[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[last:]))
}

// HasTopLevel reports whether sep occurs in s outside strings and outside
// bracket nesting.
func HasTopLevel(s string, sep byte) bool {
	return len(SplitTopLevel(s, sep)) > 1
}
