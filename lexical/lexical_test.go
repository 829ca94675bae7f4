// Copyright © 2026 The Quill authors

package lexical

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInString(t *testing.T) {
	tests := []struct {
		name string
		line string
		col  int
		want bool
	}{
		{"before string", `x = "abc"`, 0, false},
		{"inside string", `x = "abc"`, 5, true},
		{"on opening quote", `x = "abc"`, 4, false},
		{"after string", `x = "abc" + y`, 11, false},
		{"single quotes", `x = 'a b'`, 6, true},
		{"escaped quote does not close", `x = "a\"b"`, 8, true},
		{"f-string body", `s = f"hi {name}"`, 7, true},
		{"f-string interpolation is code", `s = f"hi {name}"`, 11, false},
		{"nested interpolation braces", `s = f"{ {1: 2}[1] } tail"`, 11, false},
		{"after interpolation", `s = f"{a} tail"`, 11, true},
		{"unterminated at eol", `x = "abc`, 8, true},
		{"comment is not string", `x = 1 // "quoted"`, 11, false},
		{"identifier ending in f is not a prefix", `x = if"a{b}"`, 8, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InString(tt.line, tt.col))
		})
	}
}

func TestCommentStart(t *testing.T) {
	assert.Equal(t, -1, CommentStart(`int x = 1`))
	assert.Equal(t, 10, CommentStart(`int x = 1 // one`))
	assert.Equal(t, -1, CommentStart(`str u = "http://host"`))
	assert.Equal(t, 22, CommentStart(`str u = "http://host" // url`))
	assert.Equal(t, 0, CommentStart(`/// docs`))
}

func TestInComment(t *testing.T) {
	line := `int x = 1 // one`
	assert.False(t, InComment(line, 4))
	assert.True(t, InComment(line, 10))
	assert.True(t, InComment(line, 14))
}

func TestStripComment(t *testing.T) {
	assert.Equal(t, `int x = 1 `, StripComment(`int x = 1 // one`))
	assert.Equal(t, `str s = "a // b"`, StripComment(`str s = "a // b"`))
}

func TestStripStrings(t *testing.T) {
	assert.Equal(t, `print("")`, StripStrings(`print("if { while")`))
	assert.Equal(t, `s = f"{x + 1}"`, StripStrings(`s = f"a {x + 1} b"`))
	assert.Equal(t, `x = "" + ''`, StripStrings(`x = "a\"b" + 'c'`))
}

func TestMask(t *testing.T) {
	line := `print("a;b") // c;`
	m := Mask(line)
	assert.Len(t, m, len(line))
	assert.NotContains(t, m, ";")
	assert.True(t, strings.HasPrefix(m, `print("   ")`))
}

func TestLiteralEnd(t *testing.T) {
	assert.Equal(t, 4, LiteralEnd(`"abc"`, 0))
	assert.Equal(t, 5, LiteralEnd(`"a\"b" + "c"`, 0))
	assert.Equal(t, -1, LiteralEnd(`"abc`, 0))
	assert.Equal(t, 8, LiteralEnd(`f"{a"b"}"`, 1))
}

func TestBraceDelta(t *testing.T) {
	assert.Equal(t, 1, BraceDelta(`void f() {`))
	assert.Equal(t, 0, BraceDelta(`print("{")`))
	assert.Equal(t, -1, BraceDelta(`} // {`))
	assert.Equal(t, 1, BraceDelta(`if s == f"{x}}" {`))
}

func TestBlockEnd(t *testing.T) {
	lines := []string{
		`int f(int x) {`,
		`    if x > 0 {`,
		`        print("}")`,
		`    }`,
		`    return x`,
		`}`,
		`int y = 2`,
	}
	end, ok := BlockEnd(lines, 0)
	assert.True(t, ok)
	assert.Equal(t, 5, end)

	end, ok = BlockEnd(lines, 1)
	assert.True(t, ok)
	assert.Equal(t, 3, end)

	_, ok = BlockEnd(lines[:5], 0)
	assert.False(t, ok, "block running off the document is not found")
}

func TestBlockEnd_SingleLine(t *testing.T) {
	end, ok := BlockEnd([]string{`void helper() {}`}, 0)
	assert.True(t, ok)
	assert.Equal(t, 0, end)
}

func TestMatchClose(t *testing.T) {
	assert.Equal(t, 9, MatchClose(`f(g(1), 2)`, 1))
	assert.Equal(t, 5, MatchClose(`f(")")`, 1))
	assert.Equal(t, -1, MatchClose(`f(1`, 1))
	assert.Equal(t, -1, MatchClose(`f(1)`, 0))
	assert.Equal(t, 4, MatchClose(`[1,2] + [3]`, 0))
}

func TestSplitTopLevel(t *testing.T) {
	assert.Equal(t, []string{"1", "g(2, 3)", `"a,b"`, "[4, 5]"}, SplitTopLevel(`1, g(2, 3), "a,b", [4, 5]`, ','))
	assert.Nil(t, SplitTopLevel("  ", ','))
	assert.Equal(t, []string{"x"}, SplitTopLevel("x", ','))
	assert.True(t, HasTopLevel(`"a": 1`, ':'))
	assert.False(t, HasTopLevel(`"a:b", f(x: 1)`, ':'))
}

func TestLiteralRegexps(t *testing.T) {
	for _, s := range []string{"0", "42", "-7", "0xff", "1_000"} {
		assert.True(t, IntRe.MatchString(s), s)
	}
	for _, s := range []string{"3.5", "-0.25", ".5", "1e9", "2.0e-3", "10."} {
		assert.True(t, FloatRe.MatchString(s), s)
	}
	assert.False(t, IntRe.MatchString("3.5"))
	assert.False(t, FloatRe.MatchString("35"))
	assert.True(t, BoolRe.MatchString("true"))
	assert.False(t, BoolRe.MatchString("True"))
	assert.True(t, IdentRe.MatchString("_x1"))
	assert.False(t, IdentRe.MatchString("1x"))
}
