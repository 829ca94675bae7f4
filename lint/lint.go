// Copyright © 2026 The Quill authors

// Package lint provides static checks for Quill source files.
//
// The linter is modeled after go vet: each check is an independent Analyzer
// that receives the document's symbol table and reports diagnostics. The
// framework builds the table once, runs the analyzers, filters nolint
// suppressions and sorts the results. One analyzer's findings never suppress
// another's.
//
// Analyzers are composable and extensible; embedders can define custom
// checks alongside the built-in set.
package lint

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/quill-lang/quill/analysis"
	"github.com/quill-lang/quill/lexical"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/quill-lang/quill/lint"

// Severity indicates the severity level of a lint diagnostic.
type Severity int

const (
	severityUnset Severity = iota // unexported zero sentinel for default detection
	SeverityError
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

// MarshalJSON serializes the severity as a JSON string.
// An unset severity (zero value) is marshaled as "warning".
func (s Severity) MarshalJSON() ([]byte, error) {
	if s == severityUnset {
		return json.Marshal("warning")
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes a severity from a JSON string.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	case "hint":
		*s = SeverityHint
	default:
		return fmt.Errorf("unknown severity: %q", str)
	}
	return nil
}

// Tag marks a diagnostic for special presentation by editors.
type Tag string

// TagUnnecessary marks code that can be removed (rendered faded).
const TagUnnecessary Tag = "unnecessary"

// Analyzer defines a single lint check.
type Analyzer struct {
	// Name is a short identifier for this check (e.g. "call-args").
	Name string

	// Doc is a human-readable description. The first line is a short summary.
	Doc string

	// Severity is the default severity for diagnostics from this analyzer.
	Severity Severity

	// Run executes the check. It should call pass.Report() for each finding.
	Run func(pass *Pass) error
}

// Summary returns the first line of the analyzer's documentation.
func (a *Analyzer) Summary() string {
	summary, _, _ := strings.Cut(a.Doc, "\n")
	return summary
}

// Pass provides context to a running analyzer.
type Pass struct {
	// Analyzer is the currently running check.
	Analyzer *Analyzer

	// Filename is the source file being analyzed.
	Filename string

	// Table is the symbol table of the document.
	Table *analysis.Table

	// Lines are the document's source lines; Code holds the same lines with
	// string bodies and comments masked out (see lexical.Mask).
	Lines []string
	Code  []string

	// diagnostics collects reported findings.
	diagnostics []Diagnostic
}

// Report records a diagnostic finding.
func (p *Pass) Report(d Diagnostic) {
	d.Analyzer = p.Analyzer.Name
	if d.Severity == severityUnset {
		d.Severity = p.Analyzer.Severity
	}
	if d.Code == "" {
		d.Code = p.Analyzer.Name
	}
	p.diagnostics = append(p.diagnostics, d)
}

// ReportWithNotes records a diagnostic with additional hint text.
func (p *Pass) ReportWithNotes(d Diagnostic, notes ...string) {
	d.Notes = append(d.Notes, notes...)
	p.Report(d)
}

// Reportf is a convenience for reporting a diagnostic spanning n bytes at a
// 0-based line and column.
func (p *Pass) Reportf(line, col, n int, format string, args ...interface{}) {
	p.Report(p.Diagnosticf(line, col, n, format, args...))
}

// Diagnosticf builds, without reporting it, a diagnostic spanning n bytes at
// a 0-based line and column. Callers set Code, Severity or Tags before
// passing it to Report.
func (p *Pass) Diagnosticf(line, col, n int, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Pos:     p.At(line, col),
		EndPos:  p.At(line, col+n),
		Message: fmt.Sprintf(format, args...),
	}
}

// At converts a 0-based line and column into a Position.
func (p *Pass) At(line, col int) Position {
	return Position{File: p.Filename, Line: line + 1, Col: col + 1}
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	// Pos is the source location of the problem. EndPos, when set, is the
	// exclusive end of the highlighted range on the same line.
	Pos    Position `json:"pos"`
	EndPos Position `json:"end"`

	// Message is a human-readable description of the problem.
	Message string `json:"message"`

	// Analyzer is the name of the check that found this problem.
	Analyzer string `json:"analyzer"`

	// Code identifies the kind of finding (e.g. "implicit-cast"). It
	// defaults to the analyzer name.
	Code string `json:"code"`

	// Severity is the severity level of the diagnostic.
	Severity Severity `json:"severity"`

	Tags []Tag `json:"tags,omitempty"`

	// Notes are optional hint text lines for the user.
	Notes []string `json:"notes,omitempty"`
}

// Position identifies a location in source code. Line and Col are 1-based;
// a zero Col means the column is unknown.
type Position struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Col  int    `json:"col,omitempty"`
}

// String returns the position in file:line:col format.
func (p Position) String() string {
	if p.Line == 0 {
		return p.File
	}
	if p.Col > 0 {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// HasTag reports whether the diagnostic carries tag.
func (d Diagnostic) HasTag(tag Tag) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// String returns the diagnostic in go vet style: file:line:col: message
// (analyzer), with the code appended when it differs from the analyzer name,
// and optional note lines.
func (d Diagnostic) String() string {
	check := d.Analyzer
	if d.Code != "" && d.Code != d.Analyzer {
		check += "/" + d.Code
	}
	s := fmt.Sprintf("%s: %s (%s)", d.Pos, d.Message, check)
	for _, n := range d.Notes {
		s += "\n  = note: " + n
	}
	return s
}

// Linter runs a set of analyzers over source files.
type Linter struct {
	Analyzers []*Analyzer
}

// LintFile analyzes a single source file and returns all diagnostics.
func (l *Linter) LintFile(source []byte, filename string) ([]Diagnostic, error) {
	return l.LintTable(context.Background(), analysis.NewTable(string(source)), filename)
}

// LintTable runs the analyzers over an already built symbol table, which
// lets callers share tables through an analysis.Cache. A span is recorded
// for the file and for each analyzer.
func (l *Linter) LintTable(ctx context.Context, table *analysis.Table, filename string) ([]Diagnostic, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "lint "+filename,
		trace.WithAttributes(
			semconv.CodeFilepath(filename),
			attribute.Int("quill.lines", len(table.Lines)),
			attribute.Int("quill.analyzers", len(l.Analyzers)),
		))
	defer span.End()

	code := make([]string, len(table.Lines))
	for i, line := range table.Lines {
		code[i] = lexical.Mask(line)
	}

	var all []Diagnostic
	for _, analyzer := range l.Analyzers {
		pass := &Pass{
			Analyzer: analyzer,
			Filename: filename,
			Table:    table,
			Lines:    table.Lines,
			Code:     code,
		}
		if err := runPass(ctx, pass); err != nil {
			err = fmt.Errorf("%s: analyzer %s: %w", filename, analyzer.Name, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		all = append(all, pass.diagnostics...)
	}

	// Filter suppressed diagnostics (// nolint comments)
	all = filterSuppressed(all, table.Lines)

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Pos.File != all[j].Pos.File {
			return all[i].Pos.File < all[j].Pos.File
		}
		if all[i].Pos.Line != all[j].Pos.Line {
			return all[i].Pos.Line < all[j].Pos.Line
		}
		return all[i].Pos.Col < all[j].Pos.Col
	})

	span.SetAttributes(attribute.Int("quill.diagnostics", len(all)))
	return all, nil
}

func runPass(ctx context.Context, pass *Pass) error {
	_, span := otel.Tracer(tracerName).Start(ctx, pass.Analyzer.Name,
		trace.WithAttributes(semconv.CodeFunction(pass.Analyzer.Name)))
	defer span.End()
	if err := pass.Analyzer.Run(pass); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(attribute.Int("quill.diagnostics", len(pass.diagnostics)))
	return nil
}

// Validate runs the default analyzers over text. The built-in analyzers
// never fail, so there is no error result.
func Validate(text string) []Diagnostic {
	l := &Linter{Analyzers: DefaultAnalyzers()}
	diags, err := l.LintFile([]byte(text), "")
	if err != nil {
		return nil
	}
	return diags
}

// filterSuppressed removes diagnostics on lines with // nolint comments.
// A bare directive suppresses everything on its line; "nolint:a,b" only
// the named analyzers or codes.
func filterSuppressed(diags []Diagnostic, lines []string) []Diagnostic {
	nolintLines := nolintDirectives(lines)
	if len(nolintLines) == 0 {
		return diags
	}

	var filtered []Diagnostic
	for _, d := range diags {
		directive, ok := nolintLines[d.Pos.Line]
		if !ok {
			filtered = append(filtered, d)
			continue
		}
		// Empty directive = suppress all
		if directive == "" {
			continue
		}
		suppressed := false
		for _, name := range strings.Split(directive, ",") {
			name = strings.TrimSpace(name)
			if name == d.Analyzer || name == d.Code {
				suppressed = true
				break
			}
		}
		if !suppressed {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// nolintDirectives maps 1-based line numbers to their nolint directive.
func nolintDirectives(lines []string) map[int]string {
	directives := make(map[int]string)
	for i, line := range lines {
		start := lexical.CommentStart(line)
		if start < 0 {
			continue
		}
		text := strings.TrimSpace(strings.TrimLeft(line[start:], "/"))
		if !strings.HasPrefix(text, "nolint") {
			continue
		}
		rest := strings.TrimPrefix(text, "nolint")
		if rest == "" || rest[0] == ' ' {
			directives[i+1] = ""
			continue
		}
		if list, ok := strings.CutPrefix(rest, ":"); ok {
			list, _, _ = strings.Cut(list, " ")
			directives[i+1] = list
		}
	}
	return directives
}

// FormatText writes diagnostics in go vet text format.
func FormatText(w io.Writer, diags []Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(w, d.String()) //nolint:errcheck // best-effort output to writer
	}
}

// FormatJSON writes diagnostics as JSON.
func FormatJSON(w io.Writer, diags []Diagnostic) error {
	if diags == nil {
		diags = []Diagnostic{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diags)
}

// DefaultAnalyzers returns the built-in set of lint checks.
func DefaultAnalyzers() []*Analyzer {
	return []*Analyzer{
		AnalyzerMissingReturnType,
		AnalyzerSemicolon,
		AnalyzerCallArgs,
		AnalyzerAssignType,
		AnalyzerReturnType,
		AnalyzerUnused,
	}
}

// Select returns the analyzers of from named in names, keeping the order of
// from. Unknown names are an error.
func Select(from []*Analyzer, names []string) ([]*Analyzer, error) {
	selected := make(map[string]bool)
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			selected[name] = true
		}
	}
	var out []*Analyzer
	for _, a := range from {
		if selected[a.Name] {
			out = append(out, a)
			delete(selected, a.Name)
		}
	}
	if len(selected) > 0 {
		var unknown []string
		for name := range selected {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown check: %s", strings.Join(unknown, ", "))
	}
	return out, nil
}
