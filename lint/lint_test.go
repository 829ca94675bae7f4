// Copyright © 2026 The Quill authors

package lint

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/quill-lang/quill/analysis"
	"github.com/quill-lang/quill/quilltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// lintSource runs all default analyzers on the given source and returns diagnostics.
func lintSource(t *testing.T, source string) []Diagnostic {
	t.Helper()
	l := &Linter{Analyzers: DefaultAnalyzers()}
	diags, err := l.LintFile([]byte(source), "test.quill")
	require.NoError(t, err)
	return diags
}

// lintCheck runs a single analyzer on the given source.
func lintCheck(t *testing.T, analyzer *Analyzer, source string) []Diagnostic {
	t.Helper()
	l := &Linter{Analyzers: []*Analyzer{analyzer}}
	diags, err := l.LintFile([]byte(source), "test.quill")
	require.NoError(t, err)
	return diags
}

// assertHasDiag checks that at least one diagnostic contains the given substring.
func assertHasDiag(t *testing.T, diags []Diagnostic, substr string) {
	t.Helper()
	for _, d := range diags {
		if strings.Contains(d.Message, substr) {
			return
		}
	}
	t.Errorf("expected diagnostic containing %q, got: %v", substr, messages(diags))
}

// assertNoDiags checks that there are no diagnostics.
func assertNoDiags(t *testing.T, diags []Diagnostic) {
	t.Helper()
	if len(diags) > 0 {
		t.Errorf("expected no diagnostics, got %d: %v", len(diags), messages(diags))
	}
}

// assertDiagOnLine checks that a diagnostic exists on the given 1-based line
// with the given code.
func assertDiagOnLine(t *testing.T, diags []Diagnostic, line int, code string) {
	t.Helper()
	for _, d := range diags {
		if d.Pos.Line == line && d.Code == code {
			return
		}
	}
	t.Errorf("expected %s diagnostic on line %d, got: %v", code, line, messages(diags))
}

// withCode returns the diagnostics carrying code.
func withCode(diags []Diagnostic, code string) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// withSeverity returns the diagnostics of the given severity.
func withSeverity(diags []Diagnostic, sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

func messages(diags []Diagnostic) []string {
	var msgs []string
	for _, d := range diags {
		msgs = append(msgs, d.String())
	}
	return msgs
}

// --- Position.String() ---

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "test.quill", Position{File: "test.quill"}.String())
	assert.Equal(t, "test.quill:10", Position{File: "test.quill", Line: 10}.String())
	assert.Equal(t, "test.quill:10:5", Position{File: "test.quill", Line: 10, Col: 5}.String())
}

// --- Diagnostic.String() ---

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Pos:      Position{File: "test.quill", Line: 10, Col: 3},
		Message:  "unexpected semicolon",
		Analyzer: "semicolon",
		Code:     "semicolon",
	}
	assert.Equal(t, "test.quill:10:3: unexpected semicolon (semicolon)", d.String())

	d.Analyzer, d.Code = "assign-type", "implicit-cast"
	d.Notes = []string{"convert explicitly"}
	assert.Equal(t, "test.quill:10:3: unexpected semicolon (assign-type/implicit-cast)\n  = note: convert explicitly", d.String())
}

// --- Framework ---

func TestLintFile_AnalyzerError(t *testing.T) {
	errAnalyzer := &Analyzer{
		Name: "fail",
		Doc:  "Always fails.",
		Run: func(pass *Pass) error {
			return fmt.Errorf("intentional failure")
		},
	}
	l := &Linter{Analyzers: []*Analyzer{errAnalyzer}}
	_, err := l.LintFile([]byte("int x = 1"), "test.quill")
	require.Error(t, err)
	assert.Equal(t, "test.quill: analyzer fail: intentional failure", err.Error())
}

func TestPass_ReportDefaults(t *testing.T) {
	custom := &Analyzer{
		Name:     "todo",
		Severity: SeverityInfo,
		Run: func(pass *Pass) error {
			for i, line := range pass.Lines {
				if c := strings.Index(line, "TODO"); c >= 0 {
					pass.Reportf(i, c, 4, "found a TODO")
				}
			}
			return nil
		},
	}
	diags := lintCheck(t, custom, quilltest.Source("int x = 1", "int y = 2 // TODO"))
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, "todo", d.Analyzer)
	assert.Equal(t, "todo", d.Code)
	assert.Equal(t, SeverityInfo, d.Severity)
	assert.Equal(t, Position{File: "test.quill", Line: 2, Col: 14}, d.Pos)
	assert.Equal(t, Position{File: "test.quill", Line: 2, Col: 18}, d.EndPos)
}

func TestPass_DiagnosticfOverrides(t *testing.T) {
	pass := &Pass{Analyzer: AnalyzerSemicolon, Filename: "test.quill"}
	d := pass.Diagnosticf(0, 4, 1, "found %q", ";")
	assert.Equal(t, Position{File: "test.quill", Line: 1, Col: 5}, d.Pos)
	assert.Equal(t, Position{File: "test.quill", Line: 1, Col: 6}, d.EndPos)
	assert.Equal(t, `found ";"`, d.Message)

	d.Code, d.Severity = "stray", SeverityWarning
	pass.Report(d)
	require.Len(t, pass.diagnostics, 1)
	assert.Equal(t, "stray", pass.diagnostics[0].Code)
	assert.Equal(t, SeverityWarning, pass.diagnostics[0].Severity)
	assert.Equal(t, "semicolon", pass.diagnostics[0].Analyzer)
}

func TestLintFile_Sorted(t *testing.T) {
	diags := lintSource(t, quilltest.Source(
		"int a = 3.5;",
		"x();",
	))
	for i := 1; i < len(diags); i++ {
		prev, cur := diags[i-1].Pos, diags[i].Pos
		assert.True(t, prev.Line < cur.Line || (prev.Line == cur.Line && prev.Col <= cur.Col),
			"%v before %v", prev, cur)
	}
}

func TestLintTable_Spans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	t.Cleanup(func() {
		err := tp.Shutdown(context.Background())
		assert.NoError(t, err, "TracerProvider shutdown")
	})
	otel.SetTracerProvider(tp)

	l := &Linter{Analyzers: []*Analyzer{AnalyzerSemicolon, AnalyzerUnused}}
	table := analysis.NewTable("int x = 1;\n")
	diags, err := l.LintTable(context.Background(), table, "spans.quill")
	require.NoError(t, err)
	assert.Len(t, diags, 2)

	spans := exporter.GetSpans()
	require.Len(t, spans, 3)
	names := []string{spans[0].Name, spans[1].Name, spans[2].Name}
	assert.Equal(t, []string{"semicolon", "unused", "lint spans.quill"}, names)
	assert.Equal(t, spans[2].SpanContext.SpanID(), spans[0].Parent.SpanID())
}

// --- missing-return-type ---

func TestMissingReturnType_Positive(t *testing.T) {
	diags := lintCheck(t, AnalyzerMissingReturnType, quilltest.Source(
		"greet(str name) {",
		"    println(name)",
		"}",
	))
	require.Len(t, diags, 1)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Equal(t, Position{File: "test.quill", Line: 1, Col: 1}, diags[0].Pos)
	assertHasDiag(t, diags, "greet is missing a return type")
	assert.Contains(t, diags[0].Notes[0], "void greet")
}

func TestMissingReturnType_Negative(t *testing.T) {
	diags := lintCheck(t, AnalyzerMissingReturnType, quilltest.Source(
		"struct P { int x }",
		"void greet(str name) {",
		"    if (name) {",
		"    }",
		"    while (true) {",
		"    }",
		"    for (x) {",
		"    }",
		"    println(name)",
		"}",
		"P make() {",
		"}",
		"P(x) {",
		"}",
	))
	assertNoDiags(t, diags)
}

// --- semicolon ---

func TestSemicolon_Positive(t *testing.T) {
	diags := lintCheck(t, AnalyzerSemicolon, quilltest.Source(
		"int x = 1;",
		"a(); b();",
	))
	require.Len(t, diags, 3)
	assert.Equal(t, Position{File: "test.quill", Line: 1, Col: 10}, diags[0].Pos)
	assert.Equal(t, 2, diags[1].Pos.Line)
	assert.Equal(t, 2, diags[2].Pos.Line)
}

func TestSemicolon_Negative_CommentsAndStrings(t *testing.T) {
	diags := lintCheck(t, AnalyzerSemicolon, quilltest.Source(
		`str s = "a;b" // c; d`,
		`str t = f"{s};"`,
		`// ;;;`,
	))
	assertNoDiags(t, diags)
}

// --- call-args ---

const addSource = "int add(int a, int b) {\n    return a + b\n}\n"

func TestCallArgs_Negative_Matching(t *testing.T) {
	diags := lintCheck(t, AnalyzerCallArgs, addSource+"int r = add(1, 2)\n")
	assertNoDiags(t, diags)
}

func TestCallArgs_Positive_ArityAfterShrinking(t *testing.T) {
	src := "int add(int a) {\n    return a\n}\nint r = add(1, 2)\n"
	diags := lintCheck(t, AnalyzerCallArgs, src)
	require.Len(t, diags, 1)
	assert.Equal(t, "arity-mismatch", diags[0].Code)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Equal(t, "add expects 1 argument, got 2", diags[0].Message)
	assert.Equal(t, Position{File: "test.quill", Line: 4, Col: 9}, diags[0].Pos)
	assert.Equal(t, Position{File: "test.quill", Line: 4, Col: 18}, diags[0].EndPos)
}

func TestCallArgs_Positive_TypeMismatch(t *testing.T) {
	diags := lintCheck(t, AnalyzerCallArgs, addSource+`int r = add(1, "x")`+"\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "type-mismatch", diags[0].Code)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Equal(t, "type mismatch: argument 2 of add expects int, got str", diags[0].Message)
	assert.Equal(t, 16, diags[0].Pos.Col)
}

func TestCallArgs_Positive_StringWithParen(t *testing.T) {
	diags := lintCheck(t, AnalyzerCallArgs, addSource+`add(1, ")")`+"\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "type-mismatch", diags[0].Code)
}

func TestCallArgs_Positive_ImplicitCast(t *testing.T) {
	diags := lintCheck(t, AnalyzerCallArgs, addSource+"add(1.5, 2)\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "implicit-cast", diags[0].Code)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
}

func TestCallArgs_Negative_Widening(t *testing.T) {
	src := "float scale(float f) {\n    return f\n}\nscale(2)\n"
	assertNoDiags(t, lintCheck(t, AnalyzerCallArgs, src))
}

func TestCallArgs_Negative_Variadic(t *testing.T) {
	src := quilltest.Source(
		"void log(str msg, any *args) {",
		"}",
		"void opts(**kw) {",
		"}",
		`log("a", 1, 2, 3)`,
		"log()",
		"opts(1, 2)",
	)
	assertNoDiags(t, lintCheck(t, AnalyzerCallArgs, src))
}

func TestCallArgs_Struct(t *testing.T) {
	diags := lintCheck(t, AnalyzerCallArgs, quilltest.Source(
		"struct P { int x int y }",
		"P a = P(1, 2)",
		"P b = P(1)",
		`P c = P(1, "y")`,
	))
	require.Len(t, diags, 2)
	assert.Equal(t, "struct P has 2 fields, got 1 argument", diags[0].Message)
	assertDiagOnLine(t, diags, 3, "arity-mismatch")
	assertDiagOnLine(t, diags, 4, "type-mismatch")
}

func TestCallArgs_StructBeforeFunction(t *testing.T) {
	diags := lintCheck(t, AnalyzerCallArgs, quilltest.Source(
		"struct Box { int v }",
		"int Box(int a, int b) {",
		"    return a",
		"}",
		"Box b = Box(1)",
	))
	assertNoDiags(t, diags)
}

func TestCallArgs_Negative_Skipped(t *testing.T) {
	diags := lintCheck(t, AnalyzerCallArgs, addSource+quilltest.Source(
		"str x = \"s\"",
		"add(x, x)",
		"obj.add(1)",
		"add(add(1, 2), 3)",
		"unknown(1, 2, 3)",
		"add(1,",
		"    2, 3)",
		`println("add(1)")`,
		"// add(1)",
	))
	assertNoDiags(t, diags)
}

// --- assign-type ---

func TestAssignType_ImplicitCast(t *testing.T) {
	diags := lintSource(t, "int x = 3.5\n")
	warnings := withSeverity(diags, SeverityWarning)
	require.Len(t, warnings, 1)
	assert.Equal(t, "implicit-cast", warnings[0].Code)
	assert.Equal(t, "assign-type", warnings[0].Analyzer)
	assert.Empty(t, withSeverity(diags, SeverityError))
	assert.Equal(t, Position{File: "test.quill", Line: 1, Col: 9}, warnings[0].Pos)
}

func TestAssignType_Widening(t *testing.T) {
	diags := lintSource(t, "float x = 3\n")
	assert.Empty(t, withSeverity(diags, SeverityError))
	assert.Empty(t, withSeverity(diags, SeverityWarning))
	assertNoDiags(t, lintCheck(t, AnalyzerAssignType, "float x = 3\n"))
}

func TestAssignType_StructFieldAccess(t *testing.T) {
	ok := quilltest.Source(
		"struct P { int x int y }",
		"P p = P(1, 2)",
		"int z = p.x",
	)
	for _, a := range []*Analyzer{AnalyzerCallArgs, AnalyzerAssignType, AnalyzerReturnType, AnalyzerMissingReturnType, AnalyzerSemicolon} {
		assertNoDiags(t, lintCheck(t, a, ok))
	}

	bad := quilltest.Source(
		"struct P { int x int y }",
		"P p = P(1, 2)",
		"str z = p.x",
	)
	diags := lintSource(t, bad)
	mismatches := withCode(diags, "type-mismatch")
	require.Len(t, mismatches, 1)
	assert.Equal(t, SeverityError, mismatches[0].Severity)
	assert.Equal(t, 3, mismatches[0].Pos.Line)
	assert.Equal(t, "type mismatch: variable z expects str, got int", mismatches[0].Message)
}

func TestAssignType_LocalsShadowGlobals(t *testing.T) {
	assertNoDiags(t, lintCheck(t, AnalyzerAssignType, quilltest.Source(
		`str n = "global"`,
		"void f(int n) {",
		"    int m = n",
		"}",
	)))

	diags := lintCheck(t, AnalyzerAssignType, quilltest.Source(
		"int n = 1",
		"void f(str n) {",
		"    int m = n",
		"}",
	))
	require.Len(t, diags, 1)
	assertDiagOnLine(t, diags, 3, "type-mismatch")
}

func TestAssignType_Expressions(t *testing.T) {
	diags := lintCheck(t, AnalyzerAssignType, quilltest.Source(
		"int half = 10 / 2",
		"int approx = 3.5 // rounded later",
		`str s = "a" + str(1)`,
		"bool b = 1 < 2",
		"int y = foo(1)",
		"any a = 1.5",
		"list xs = [1, 2]",
		"int first = xs[0]",
		"dict d = {1, 2}",
	))
	require.Len(t, diags, 3)
	assertDiagOnLine(t, diags, 1, "implicit-cast")
	assertDiagOnLine(t, diags, 2, "implicit-cast")
	assertDiagOnLine(t, diags, 9, "type-mismatch")
}

// --- return-type ---

func TestReturnType_MissingReturn(t *testing.T) {
	diags := lintCheck(t, AnalyzerReturnType, `int f() { println("hi") }`+"\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "missing-return", diags[0].Code)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Equal(t, Position{File: "test.quill", Line: 1, Col: 5}, diags[0].Pos)

	assertNoDiags(t, lintCheck(t, AnalyzerReturnType, `int f() { println("hi") return 1 }`+"\n"))
	assertNoDiags(t, lintCheck(t, AnalyzerReturnType, "int f() { return 1 }\n"))
}

func TestReturnType_Mismatch(t *testing.T) {
	diags := lintCheck(t, AnalyzerReturnType, quilltest.Source(
		"str name() {",
		"    return 42",
		"}",
	))
	require.Len(t, diags, 1)
	assertDiagOnLine(t, diags, 2, "type-mismatch")
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Equal(t, 12, diags[0].Pos.Col)
}

func TestReturnType_ImplicitCast(t *testing.T) {
	diags := lintCheck(t, AnalyzerReturnType, quilltest.Source(
		"int f() {",
		"    return 2.5",
		"}",
	))
	require.Len(t, diags, 1)
	assertDiagOnLine(t, diags, 2, "implicit-cast")
}

func TestReturnType_Negative(t *testing.T) {
	diags := lintCheck(t, AnalyzerReturnType, quilltest.Source(
		"void a() { }",
		"any b() {}",
		"float half(int n) {",
		"    return n / 2",
		"}",
		"int twice(int n) {",
		"    return n * 2",
		"}",
		"str f() {",
		`    println("return 5")`,
		`    return "x"`,
		"}",
		"int unclosed() {",
	))
	assertNoDiags(t, diags)
}

func TestReturnType_BraceAfterBlankLine(t *testing.T) {
	src := quilltest.Source(
		"int f(int a)",
		"",
		"{",
		"    int y = a",
		"    return y",
		"}",
		"f(1)",
	)
	assertNoDiags(t, lintSource(t, src))
	assertNoDiags(t, lintSource(t, "float a = 1.5\n"+src))
}

func TestReturnType_BareReturnIsMissing(t *testing.T) {
	diags := lintCheck(t, AnalyzerReturnType, quilltest.Source(
		"int h() {",
		"    return",
		"}",
	))
	require.Len(t, diags, 1)
	assert.Equal(t, "missing-return", diags[0].Code)
}

func TestReturnType_NestedFunctions(t *testing.T) {
	diags := lintCheck(t, AnalyzerReturnType, quilltest.Source(
		"int outer() {",
		"    str inner() {",
		`        return "s"`,
		"    }",
		"    return 1",
		"}",
	))
	assertNoDiags(t, diags)
}

// --- unused ---

func TestUnused_Function(t *testing.T) {
	diags := lintSource(t, "void helper() {}\n")
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, "unused-function", d.Code)
	assert.Equal(t, SeverityHint, d.Severity)
	assert.True(t, d.HasTag(TagUnnecessary))
	assert.Equal(t, Position{File: "test.quill", Line: 1, Col: 6}, d.Pos)

	assertNoDiags(t, lintSource(t, "void helper() {}\nhelper()\n"))
}

func TestUnused_Function_Negative(t *testing.T) {
	assertNoDiags(t, lintCheck(t, AnalyzerUnused, "void main() {}\n"))
	assertNoDiags(t, lintCheck(t, AnalyzerUnused, "@route\nvoid handler() {}\n"))
	assertNoDiags(t, lintCheck(t, AnalyzerUnused, "void cb() {}\nregister(cb)\n"))
	assertNoDiags(t, lintCheck(t, AnalyzerUnused, "void cb() {}\nprintln(\"cb()\")\n"))
}

func TestUnused_Function_CommentDoesNotCount(t *testing.T) {
	diags := lintCheck(t, AnalyzerUnused, "void helper() {}\n// helper()\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "unused-function", diags[0].Code)
}

func TestUnused_Variable(t *testing.T) {
	diags := lintCheck(t, AnalyzerUnused, "int x = 1\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "unused-variable", diags[0].Code)
	assert.True(t, diags[0].HasTag(TagUnnecessary))

	assertNoDiags(t, lintCheck(t, AnalyzerUnused, "int x = 1\nprintln(x)\n"))
	assertNoDiags(t, lintCheck(t, AnalyzerUnused, "int x = 1\nprintln(f\"{x}\")\n"))

	diags = lintCheck(t, AnalyzerUnused, "int x = 1\nprintln(\"x\")\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "unused-variable", diags[0].Code)
}

// --- nolint ---

func TestNolint(t *testing.T) {
	assertNoDiags(t, lintSource(t, "int x = 1; // nolint\n"))

	diags := lintSource(t, "int x = 1; // nolint:semicolon\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "unused-variable", diags[0].Code)

	diags = lintCheck(t, AnalyzerAssignType, "int x = 3.5 // nolint:implicit-cast\n")
	assertNoDiags(t, diags)

	diags = lintCheck(t, AnalyzerSemicolon, "x(); // nolintfoo\n")
	require.Len(t, diags, 1)

	diags = lintCheck(t, AnalyzerSemicolon, "x(); // nolint:unused,semicolon trailing words\n")
	assertNoDiags(t, diags)
}

// --- helpers ---

func TestValidate(t *testing.T) {
	diags := Validate("int x = 1;\n")
	require.NotEmpty(t, diags)
	assert.Equal(t, "", diags[0].Pos.File)
	assert.Empty(t, Validate(""))
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, FormatJSON(&buf, lintSource(t, "void helper() {}\n")))
	out := buf.String()
	assert.Contains(t, out, `"severity": "hint"`)
	assert.Contains(t, out, `"code": "unused-function"`)
	assert.Contains(t, out, `"unnecessary"`)
}

func TestFormatText(t *testing.T) {
	var buf bytes.Buffer
	FormatText(&buf, lintCheck(t, AnalyzerSemicolon, "x();\n"))
	assert.Equal(t, "test.quill:1:4: unexpected semicolon (semicolon)\n"+
		"  = note: statements end at the end of the line; remove the semicolon\n", buf.String())
}

func TestSeverity_JSONRoundTrip(t *testing.T) {
	for _, s := range []Severity{SeverityError, SeverityWarning, SeverityInfo, SeverityHint} {
		b, err := s.MarshalJSON()
		require.NoError(t, err)
		var got Severity
		require.NoError(t, got.UnmarshalJSON(b))
		assert.Equal(t, s, got)
	}
	var s Severity
	assert.Error(t, s.UnmarshalJSON([]byte(`"fatal"`)))
}

func TestSelect(t *testing.T) {
	analyzers, err := Select(DefaultAnalyzers(), []string{"unused", " semicolon"})
	require.NoError(t, err)
	require.Len(t, analyzers, 2)
	assert.Equal(t, "semicolon", analyzers[0].Name)
	assert.Equal(t, "unused", analyzers[1].Name)

	_, err = Select(DefaultAnalyzers(), []string{"bogus", "semicolon"})
	assert.EqualError(t, err, "unknown check: bogus")
}

func TestAnalyzerNames(t *testing.T) {
	assert.Equal(t, []string{
		"assign-type", "call-args", "missing-return-type", "return-type", "semicolon", "unused",
	}, AnalyzerNames())
}

func TestAnalyzerDoc(t *testing.T) {
	short := AnalyzerDoc(false, 80)
	assert.Contains(t, short, "  call-args\n    Check argument count and literal argument types at call sites.\n")
	assert.NotContains(t, short, "Calls are resolved")

	long := AnalyzerDoc(true, 40)
	assert.Contains(t, long, "Calls are resolved")
	for _, line := range strings.Split(long, "\n") {
		assert.LessOrEqual(t, len(line), 48, line)
	}
}
