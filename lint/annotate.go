// Copyright © 2026 The Quill authors

package lint

import "github.com/quill-lang/quill/diagnostic"

// Annotation converts the diagnostic into a source annotation for the
// terminal renderer.
func (d Diagnostic) Annotation() diagnostic.Diagnostic {
	code := d.Code
	if code == "" {
		code = d.Analyzer
	}
	out := diagnostic.Diagnostic{
		Severity: annotationSeverity(d.Severity),
		Code:     code,
		Message:  d.Message,
		Notes:    d.Notes,
	}
	if d.Pos.File != "" || d.Pos.Line > 0 {
		span := diagnostic.Span{
			File: d.Pos.File,
			Line: d.Pos.Line,
			Col:  d.Pos.Col,
		}
		// EndPos is exclusive; the renderer wants the last column.
		if d.EndPos.Line == d.Pos.Line && d.EndPos.Col > d.Pos.Col {
			span.EndCol = d.EndPos.Col - 1
		}
		out.Spans = []diagnostic.Span{span}
	}
	return out
}

func annotationSeverity(s Severity) diagnostic.Severity {
	switch s {
	case SeverityError:
		return diagnostic.SeverityError
	case SeverityInfo:
		return diagnostic.SeverityInfo
	case SeverityHint:
		return diagnostic.SeverityHint
	default:
		return diagnostic.SeverityWarning
	}
}
