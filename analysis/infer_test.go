// Copyright © 2026 The Quill authors

package analysis

import (
	"testing"

	"github.com/quill-lang/quill/quilltest"
	"github.com/stretchr/testify/assert"
)

func TestInferLiteral(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{`"hi"`, TypeStr},
		{`'c'`, TypeStr},
		{`"say \"hi\""`, TypeStr},
		{`f"x = {x + 1}"`, TypeStr},
		{`b"raw"`, TypeBytes},
		{`42`, TypeInt},
		{`-7`, TypeInt},
		{`0xFF`, TypeInt},
		{`1_000`, TypeInt},
		{`3.14`, TypeFloat},
		{`.5`, TypeFloat},
		{`1e9`, TypeFloat},
		{`true`, TypeBool},
		{`false`, TypeBool},
		{`[1, 2, 3]`, TypeList},
		{`[]`, TypeList},
		{`{}`, TypeDict},
		{`{"a": 1, "b": 2}`, TypeDict},
		{`{1, 2}`, TypeSet},
		{`{"a:b"}`, TypeSet},
		{`  12  `, TypeInt},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, ok := InferLiteral(tt.expr)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInferLiteral_NoOpinion(t *testing.T) {
	for _, expr := range []string{
		"", "x", "count", "True", `"a" + "b"`, `[1] + [2]`, `f(x)`,
		`"unterminated`, `{1, 2} | {3}`, `xs[0]`,
	} {
		_, ok := InferLiteral(expr)
		assert.False(t, ok, "%q", expr)
	}
}

var inferSource = quilltest.Source(
	"struct P { int x int y }",
	"P p = P(1, 2)",
	"float ratio = 0.5",
	"int n = 3",
	"str name = \"q\"",
	"list xs = [1, 2]",
	"int sq(int v) {",
	"    return v * v",
	"}",
)

func TestInferExpr(t *testing.T) {
	ctx := NewTable(inferSource).Globals()
	tests := []struct {
		expr string
		want string
	}{
		// literals
		{`"s"`, TypeStr},
		{`[n]`, TypeList},

		// calls
		{`sq(2)`, TypeInt},
		{`P(1, 2)`, "P"},
		{`len(xs)`, TypeInt},
		{`sqrt(2)`, TypeFloat},
		{`recv(sock, 1024)`, TypeBytes},
		{`py_call(obj, "f")`, TypeAny},
		{`sleep(1)`, TypeVoid},

		// string concatenation
		{`"a" + name`, TypeStr},
		{`str(n) + "!"`, TypeStr},
		{`name + name`, TypeStr},

		// arithmetic
		{`10 / 2`, TypeFloat},
		{`n / n`, TypeFloat},
		{`n + 1`, TypeInt},
		{`n - 1`, TypeInt},
		{`n * ratio`, TypeFloat},
		{`n + 1.5`, TypeFloat},
		{`float(n) * 2`, TypeFloat},
		{`2 ** 3`, TypeInt},
		{`(n + 1) * 2`, TypeInt},
		{`p.x + p.y`, TypeInt},
		{`xs + xs`, TypeList},

		// bitwise before comparison
		{`n & 1`, TypeInt},
		{`n << 2`, TypeInt},
		{`n >> 1`, TypeInt},
		{`n ^ 3`, TypeInt},

		// comparison and logic
		{`n == 3`, TypeBool},
		{`n != 3`, TypeBool},
		{`n <= 3`, TypeBool},
		{`n < 3`, TypeBool},
		{`n > 3`, TypeBool},
		{`ok and done`, TypeBool},
		{`not done`, TypeBool},

		// identifiers and fields
		{`n`, TypeInt},
		{`ratio`, TypeFloat},
		{`p`, "P"},
		{`sq`, TypeFunction},
		{`p.x`, TypeInt},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, ok := InferExpr(tt.expr, ctx)
			if assert.True(t, ok) {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestInferExpr_NoOpinion(t *testing.T) {
	ctx := NewTable(inferSource).Globals()
	for _, expr := range []string{
		"", "missing", "missing(1)", "xs[0]", "p.z", "q.x", "n.x",
		"sq(1) (2)",
	} {
		got, ok := InferExpr(expr, ctx)
		assert.False(t, ok, "%q inferred %q", expr, got)
	}
}

func TestInferExpr_StructBeforeFunction(t *testing.T) {
	ctx := Context{
		{Name: "Box", Kind: SymFunction, ReturnType: TypeInt},
		{Name: "Box", Kind: SymStruct},
	}
	got, ok := InferExpr("Box(1)", ctx)
	assert.True(t, ok)
	assert.Equal(t, "Box", got)
}

func TestInferExpr_DivisionAlwaysFloat(t *testing.T) {
	for _, expr := range []string{"10 / 2", "1/1", "n / 2", "len(xs) / 2"} {
		got, ok := InferExpr(expr, nil)
		assert.True(t, ok, expr)
		assert.Equal(t, TypeFloat, got, expr)
	}
}

func TestInferExpr_LiteralOnlyIgnoresIdentifiers(t *testing.T) {
	ctx := NewTable(inferSource).Globals()
	_, ok := InferLiteral("n")
	assert.False(t, ok)
	got, ok := InferExpr("n", ctx)
	assert.True(t, ok)
	assert.Equal(t, TypeInt, got)
}

func TestContext_ResolveCall(t *testing.T) {
	fn := &Symbol{Name: "make", Kind: SymFunction, ReturnType: TypeDict}
	st := &Symbol{Name: "Pt", Kind: SymStruct}
	ctx := Context{fn, st}
	assert.Equal(t, CallTarget{Kind: CallFunction, Symbol: fn}, ctx.ResolveCall("make"))
	assert.Equal(t, CallTarget{Kind: CallStruct, Symbol: st}, ctx.ResolveCall("Pt"))
	assert.Equal(t, CallTarget{Kind: CallUnknown}, ctx.ResolveCall("nope"))
}

func TestCompat(t *testing.T) {
	tests := []struct {
		declared, actual string
		want             Compatibility
	}{
		{"int", "int", Compatible},
		{"str", "string", Compatible},
		{"pyobj", "pyobject", Compatible},
		{"any", "P", Compatible},
		{"P", "any", Compatible},
		{"int", "", Compatible},
		{"float", "int", Compatible},
		{"int", "float", ImplicitCast},
		{"str", "int", Mismatch},
		{"P", "Q", Mismatch},
		{"list", "set", Mismatch},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compat(tt.declared, tt.actual), "%s <- %s", tt.declared, tt.actual)
	}
}
