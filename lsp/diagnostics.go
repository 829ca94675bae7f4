// Copyright © 2026 The Quill authors

package lsp

import (
	"context"
	"time"

	"github.com/quill-lang/quill/lint"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagnosticSource = "quill"

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.captureNotify(ctx)
	doc := s.docs.Open(
		params.TextDocument.URI,
		int32(params.TextDocument.Version),
		params.TextDocument.Text,
	)
	s.analyzeAndPublish(doc)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.captureNotify(ctx)
	// With full sync, the last content change is the complete document.
	var content string
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = c.Text
		case protocol.TextDocumentContentChangeEvent:
			content = c.Text
		}
	}

	doc := s.docs.Change(
		params.TextDocument.URI,
		int32(params.TextDocument.Version),
		content,
	)
	s.invalidate(doc.URI)

	// Debounce: only the last edit in a burst is validated.
	s.debounceMu.Lock()
	if t, ok := s.debounce[doc.URI]; ok {
		t.Stop()
	}
	uri := doc.URI
	var timer *time.Timer
	timer = time.AfterFunc(s.debounceDelay, func() {
		s.debounceMu.Lock()
		if s.debounce[uri] == timer {
			delete(s.debounce, uri)
		}
		s.debounceMu.Unlock()
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("validating %s: panic: %v", uri, r)
			}
		}()
		if d := s.docs.Get(uri); d != nil {
			s.analyzeAndPublish(d)
		}
	})
	s.debounce[uri] = timer
	s.debounceMu.Unlock()
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.captureNotify(ctx)
	// Cancel any pending debounce and publish immediately.
	s.cancelDebounce(params.TextDocument.URI)

	if doc := s.docs.Get(params.TextDocument.URI); doc != nil {
		s.analyzeAndPublish(doc)
	}
	return nil
}

func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.cancelDebounce(uri)

	// Clear diagnostics for the closed file.
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})

	s.docs.Close(uri)
	s.invalidate(uri)
	return nil
}

func (s *Server) cancelDebounce(uri string) {
	s.debounceMu.Lock()
	if t, ok := s.debounce[uri]; ok {
		t.Stop()
		delete(s.debounce, uri)
	}
	s.debounceMu.Unlock()
}

// analyzeAndPublish lints a document and publishes the complete diagnostic
// set, replacing whatever the client showed before.
func (s *Server) analyzeAndPublish(doc *Document) {
	start := time.Now()
	uri := doc.URI
	table := s.table(doc)

	diags := []protocol.Diagnostic{}
	lintDiags, err := s.linter.LintTable(context.Background(), table, uriToPath(uri))
	if err != nil {
		log.Errorf("%s", err)
	}
	for _, d := range lintDiags {
		diags = append(diags, convertLintDiagnostic(d))
		diagnosticsTotal.WithLabelValues(d.Severity.String()).Inc()
	}

	validationsTotal.Inc()
	validationDuration.Observe(time.Since(start).Seconds())
	log.Debugf("validated %s: %d diagnostics in %s", uri, len(diags), time.Since(start))

	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

// convertLintDiagnostic converts a lint.Diagnostic to an LSP Diagnostic.
// Lint positions are 1-based with an exclusive end column.
func convertLintDiagnostic(d lint.Diagnostic) protocol.Diagnostic {
	start := toLSPPosition(d.Pos.Line-1, d.Pos.Col-1)
	end := start // Default: zero-width range.
	if d.EndPos.Line > 0 {
		end = toLSPPosition(d.EndPos.Line-1, d.EndPos.Col-1)
	}
	sev := mapLintSeverity(d.Severity)
	code := d.Code
	if code == "" {
		code = d.Analyzer
	}
	pd := protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &sev,
		Source:   strPtr(diagnosticSource),
		Code:     &protocol.IntegerOrString{Value: code},
		Message:  d.Message,
	}
	if d.HasTag(lint.TagUnnecessary) {
		pd.Tags = []protocol.DiagnosticTag{protocol.DiagnosticTagUnnecessary}
	}
	return pd
}

// mapLintSeverity converts a lint.Severity to a protocol.DiagnosticSeverity.
func mapLintSeverity(sev lint.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case lint.SeverityError:
		return protocol.DiagnosticSeverityError
	case lint.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case lint.SeverityInfo:
		return protocol.DiagnosticSeverityInformation
	case lint.SeverityHint:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityWarning
	}
}

func strPtr(s string) *string {
	return &s
}
