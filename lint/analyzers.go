// Copyright © 2026 The Quill authors

package lint

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/quill-lang/quill/analysis"
	"github.com/quill-lang/quill/lexical"
)

var (
	bareFunctionRe = regexp.MustCompile(`^\s*([A-Za-z_]\w*)\s*\(([^)]*)\)\s*\{`)
	returnRe       = regexp.MustCompile(`\breturn\b`)
)

// AnalyzerMissingReturnType reports function definitions written without a
// return type, e.g. "greet(str name) {".
var AnalyzerMissingReturnType = &Analyzer{
	Name:     "missing-return-type",
	Severity: SeverityError,
	Doc:      "Report function definitions that have no return type.\n\nEvery function must declare what it returns. A line of the form `name(params) {` where `name` is not a type, `struct` or a control-flow keyword is a definition missing its return type. Use `void` for functions that return nothing.",
	Run: func(pass *Pass) error {
		rec := pass.Table.Recognizer()
		for i, code := range pass.Code {
			m := bareFunctionRe.FindStringSubmatchIndex(code)
			if m == nil {
				continue
			}
			name := code[m[2]:m[3]]
			if rec.IsType(name) || name == "struct" || analysis.ControlKeywords[name] {
				continue
			}
			pass.ReportWithNotes(pass.Diagnosticf(i, m[2], m[3]-m[2], "function %s is missing a return type", name),
				fmt.Sprintf("use `void %s(...)` if it returns nothing", name))
		}
		return nil
	},
}

// AnalyzerSemicolon reports semicolons, which the language does not use.
var AnalyzerSemicolon = &Analyzer{
	Name:     "semicolon",
	Severity: SeverityError,
	Doc:      "Report semicolons outside comments and strings.\n\nStatements end at the end of the line. A semicolon is a syntax error.",
	Run: func(pass *Pass) error {
		for i, code := range pass.Code {
			for col := 0; col < len(code); col++ {
				if code[col] != ';' {
					continue
				}
				pass.ReportWithNotes(pass.Diagnosticf(i, col, 1, "unexpected semicolon"),
					"statements end at the end of the line; remove the semicolon")
			}
		}
		return nil
	},
}

// AnalyzerCallArgs checks the arguments of calls to functions and struct
// constructors declared in the document.
var AnalyzerCallArgs = &Analyzer{
	Name:     "call-args",
	Severity: SeverityError,
	Doc:      "Check argument count and literal argument types at call sites.\n\nCalls are resolved against declared structs first, then functions. The number of arguments must match the parameters (or fields) unless the function takes `*rest` or `**keywords`, in which case the call is not checked. Only literal arguments are type checked. Passing a float where an int is expected is a warning.",
	Run: func(pass *Pass) error {
		globals := pass.Table.Globals()
		WalkCalls(pass, func(call CallSite) {
			if IsDefinitionLine(pass, call.Line) {
				return
			}
			target := globals.ResolveCall(call.Name)
			if target.Kind == analysis.CallUnknown || target.Symbol.Variadic() {
				return
			}
			slots := target.Symbol.Slots()
			if len(call.Args) != len(slots) {
				var msg string
				if target.Kind == analysis.CallStruct {
					msg = fmt.Sprintf("struct %s has %d %s, got %d %s", call.Name,
						len(slots), plural(len(slots), "field"), len(call.Args), plural(len(call.Args), "argument"))
				} else {
					msg = fmt.Sprintf("%s expects %d %s, got %d", call.Name,
						len(slots), plural(len(slots), "argument"), len(call.Args))
				}
				pass.ReportWithNotes(Diagnostic{
					Pos:     pass.At(call.Line, call.Col),
					EndPos:  pass.At(call.Line, call.Close+1),
					Message: msg,
					Code:    "arity-mismatch",
				}, "declared as "+target.Symbol.Signature())
				return
			}
			for i, arg := range call.Args {
				actual, ok := analysis.InferLiteral(arg.Text)
				if !ok {
					continue
				}
				reportCompat(pass, call.Line, arg.Col, len(arg.Text), slots[i], actual,
					fmt.Sprintf("argument %d of %s", i+1, call.Name))
			}
		})
		return nil
	},
}

// AnalyzerAssignType checks typed variable declarations against the type of
// their initializer.
var AnalyzerAssignType = &Analyzer{
	Name:     "assign-type",
	Severity: SeverityError,
	Doc:      "Check that the initializer of `TYPE name = expr` has the declared type.\n\nThe expression is inferred in the scope of the enclosing function, where parameters and earlier locals shadow globals. Expressions whose type cannot be inferred are not checked. A float value assigned to an int is a warning.",
	Run: func(pass *Pass) error {
		rec := pass.Table.Recognizer()
		for i, line := range pass.Lines {
			d := rec.Recognize(line)
			if d.Kind != analysis.DeclVariable {
				continue
			}
			eq := strings.IndexByte(pass.Code[i][d.Col+len(d.Name):], '=')
			if eq < 0 {
				continue
			}
			expr, col := exprAfter(line, pass.Code[i], d.Col+len(d.Name)+eq+1)
			actual, ok := analysis.InferExpr(expr, pass.Table.ContextAt(i))
			if !ok {
				continue
			}
			reportCompat(pass, i, col, len(expr), d.Type, actual, "variable "+d.Name)
		}
		return nil
	},
}

// AnalyzerReturnType checks return statements against the declared return
// type and reports functions that never return a value.
var AnalyzerReturnType = &Analyzer{
	Name:     "return-type",
	Severity: SeverityError,
	Doc:      "Check `return` values against the function's declared return type.\n\nFunctions declared `void` or `any` are not checked, nor are functions whose closing brace cannot be found. A function with any other return type must contain at least one `return expr`; otherwise a missing-return warning is reported.",
	Run: func(pass *Pass) error {
		for _, fn := range pass.Table.Functions() {
			switch analysis.Normalize(fn.ReturnType) {
			case analysis.TypeVoid, analysis.TypeAny:
				continue
			}
			if !fn.HasBody() {
				continue
			}
			if !checkReturns(pass, fn) {
				d := pass.Diagnosticf(fn.Line, fn.Col, len(fn.Name),
					"%s is declared to return %s but has no return statement", fn.Name, fn.ReturnType)
				d.Code, d.Severity = "missing-return", SeverityWarning
				pass.Report(d)
			}
		}
		return nil
	},
}

// checkReturns checks every "return expr" in fn's body and reports whether
// at least one was found. Lines that belong to a nested function are left
// to that function.
func checkReturns(pass *Pass, fn *analysis.Symbol) bool {
	found := false
	for i := fn.Line; i <= fn.EndLine; i++ {
		if i > fn.Line && pass.Table.EnclosingFunction(i) != fn {
			continue
		}
		code := pass.Code[i]
		for _, m := range returnRe.FindAllStringIndex(code, -1) {
			if i == fn.Line && !strings.Contains(code[:m[0]], "{") {
				continue
			}
			expr, col := returnExpr(pass.Lines[i], code, m[1])
			if expr == "" {
				continue
			}
			found = true
			actual, ok := analysis.InferExpr(expr, pass.Table.FunctionContext(fn, i))
			if !ok {
				continue
			}
			reportCompat(pass, i, col, len(expr), fn.ReturnType, actual, fn.Name+" return value")
		}
	}
	return found
}

// returnExpr extracts the expression following a return keyword that ends
// at col. The expression stops at an unbalanced closing brace so that
// one-line bodies ("{ return 1 }") work.
func returnExpr(line, code string, col int) (string, int) {
	end := len(code)
	depth := 0
scan:
	for j := col; j < len(code); j++ {
		switch code[j] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth == 0 {
				end = j
				break scan
			}
			depth--
		}
	}
	return exprAfter(line[:end], code[:end], col)
}

// reportCompat reports a type-mismatch error or an implicit-cast warning
// when a value of type actual is used where declared is expected.
func reportCompat(pass *Pass, line, col, n int, declared, actual, what string) {
	switch analysis.Compat(declared, actual) {
	case analysis.Mismatch:
		d := pass.Diagnosticf(line, col, n, "type mismatch: %s expects %s, got %s", what, declared, actual)
		d.Code = "type-mismatch"
		pass.Report(d)
	case analysis.ImplicitCast:
		d := pass.Diagnosticf(line, col, n, "implicit conversion from %s to %s: %s", actual, declared, what)
		d.Code, d.Severity = "implicit-cast", SeverityWarning
		pass.ReportWithNotes(d, "the fractional part is truncated; convert explicitly with int(...)")
	}
}

// AnalyzerUnused reports functions and variables that are declared but never
// referenced.
var AnalyzerUnused = &Analyzer{
	Name:     "unused",
	Severity: SeverityHint,
	Doc:      "Report functions and variables that are never used.\n\nA function is unused when its name appears as a call only in its own definition and is never referenced as a value. `main` and functions directly preceded by a `@decorator` line are always considered used. A variable is unused when its name never appears outside its declaration. Names inside comments are ignored.",
	Run: func(pass *Pass) error {
		stripped := make([]string, len(pass.Lines))
		for i, line := range pass.Lines {
			stripped[i] = lexical.StripComment(line)
		}
		for _, sym := range pass.Table.Symbols {
			switch sym.Kind {
			case analysis.SymFunction:
				if sym.Name == "main" || decorated(pass.Lines, sym.Line) {
					continue
				}
				calls, bare := countUses(stripped, sym.Name)
				if calls > 1 || bare > 0 {
					continue
				}
				reportUnused(pass, sym, "unused-function", "function %s is never used")
			case analysis.SymVariable:
				if sym.Name == "_" {
					continue
				}
				calls, bare := countUses(pass.Code, sym.Name)
				if calls+bare > 1 {
					continue
				}
				reportUnused(pass, sym, "unused-variable", "variable %s is never used")
			}
		}
		return nil
	},
}

func reportUnused(pass *Pass, sym *analysis.Symbol, code, format string) {
	d := pass.Diagnosticf(sym.Line, sym.Col, len(sym.Name), format, sym.Name)
	d.Code, d.Tags = code, []Tag{TagUnnecessary}
	pass.Report(d)
}

// countUses counts whole-word occurrences of name in lines, split into call
// sites (name followed by "(") and bare references.
func countUses(lines []string, name string) (calls, bare int) {
	re := WordRe(name)
	for _, line := range lines {
		for _, m := range re.FindAllStringSubmatchIndex(line, -1) {
			if m[2] >= 0 {
				calls++
			} else {
				bare++
			}
		}
	}
	return calls, bare
}

// decorated reports whether the line above line is a decorator ("@name").
func decorated(lines []string, line int) bool {
	return line > 0 && strings.HasPrefix(strings.TrimSpace(lines[line-1]), "@")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// AnalyzerNames returns a sorted list of all default analyzer names.
func AnalyzerNames() []string {
	analyzers := DefaultAnalyzers()
	names := make([]string, len(analyzers))
	for i, a := range analyzers {
		names[i] = a.Name
	}
	sort.Strings(names)
	return names
}

// AnalyzerDoc returns a formatted documentation string for all analyzers:
// each name with its summary line, or with the full description wrapped to
// width when verbose is set.
func AnalyzerDoc(verbose bool, width int) string {
	var b strings.Builder
	for _, a := range DefaultAnalyzers() {
		fmt.Fprintf(&b, "  %s\n", a.Name)
		doc := a.Summary()
		if verbose {
			doc = a.Doc
		}
		fmt.Fprintf(&b, "%s\n\n", indent.String(wordwrap.String(doc, width-4), 4))
	}
	return b.String()
}
