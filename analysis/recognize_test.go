// Copyright © 2026 The Quill authors

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecognize(t *testing.T) {
	rec := NewRecognizer([]string{"Point"})
	tests := []struct {
		name string
		line string
		want Decl
	}{
		{"function", "int add(int a, int b) {",
			Decl{Kind: DeclFunction, Type: "int", Name: "add", Col: 4, Params: "int a, int b"}},
		{"struct return type", "Point origin() {",
			Decl{Kind: DeclFunction, Type: "Point", Name: "origin", Col: 6, Params: ""}},
		{"struct", "struct Point {",
			Decl{Kind: DeclStruct, Name: "Point", Col: 7}},
		{"variable", "    float y = 3.5",
			Decl{Kind: DeclVariable, Type: "float", Name: "y", Col: 10}},
		{"struct typed variable", "Point p = Point(1, 2)",
			Decl{Kind: DeclVariable, Type: "Point", Name: "p", Col: 6}},
		{"string alias", "string s = \"x\"",
			Decl{Kind: DeclVariable, Type: "string", Name: "s", Col: 7}},
		{"comparison is not a declaration", "int x == y", Decl{}},
		{"unknown type", "integer x = 1", Decl{}},
		{"control flow", "if (x) {", Decl{}},
		{"call", "foo(1)", Decl{}},
		{"assignment without type", "x = 1", Decl{}},
		{"blank", "", Decl{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rec.Recognize(tt.line))
		})
	}
}

func TestRecognize_FunctionBeatsVariable(t *testing.T) {
	rec := NewRecognizer(nil)
	d := rec.Recognize("int f(int a) { int b = a }")
	assert.Equal(t, DeclFunction, d.Kind)
	assert.Equal(t, "f", d.Name)
}

func TestRecognizer_IsType(t *testing.T) {
	rec := NewRecognizer([]string{"Point", "int"})
	assert.True(t, rec.IsType("int"))
	assert.True(t, rec.IsType("pyobj"))
	assert.True(t, rec.IsType("Point"))
	assert.False(t, rec.IsType("Line"))
	assert.False(t, rec.IsType("struct"))
}

func TestStructNames(t *testing.T) {
	names := StructNames([]string{
		"struct A {",
		"    int x",
		"}",
		"  struct B{ int y }",
		"// struct C {",
		"mystruct D {",
	})
	assert.Equal(t, []string{"A", "B"}, names)
}

func TestParseParams(t *testing.T) {
	params := ParseParams(`int a, float *rest, **kw, b, str name = "x"`)
	assert.Equal(t, []Param{
		{Name: "a", Type: "int", Kind: ParamTyped},
		{Name: "rest", Type: "float", Kind: ParamRest},
		{Name: "kw", Type: "any", Kind: ParamKeywords},
		{Name: "b", Type: "any", Kind: ParamImplicit},
		{Name: "name", Type: "str", Kind: ParamTyped},
	}, params)
}

func TestParseParams_EdgeCases(t *testing.T) {
	assert.Nil(t, ParseParams(""))
	assert.Nil(t, ParseParams("   "))

	params := ParseParams("int a b c, dict ** opts")
	assert.Equal(t, []Param{
		{Name: "c", Type: "any", Kind: ParamImplicit},
		{Name: "opts", Type: "dict", Kind: ParamKeywords},
	}, params)
}

func TestParam_Display(t *testing.T) {
	assert.Equal(t, "int n", Param{Name: "n", Type: "int", Kind: ParamTyped}.Display())
	assert.Equal(t, "x", Param{Name: "x", Type: "any", Kind: ParamImplicit}.Display())
	assert.Equal(t, "str *parts", Param{Name: "parts", Type: "str", Kind: ParamRest}.Display())
	assert.Equal(t, "any **kw", Param{Name: "kw", Type: "any", Kind: ParamKeywords}.Display())
}
