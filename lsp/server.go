// Copyright © 2026 The Quill authors

// Package lsp implements a Language Server Protocol server for Quill.
// It publishes diagnostics and answers document symbol and hover requests.
package lsp

import (
	"os"
	"sync"
	"time"

	"github.com/quill-lang/quill/analysis"
	"github.com/quill-lang/quill/lint"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	glspserver "github.com/tliron/glsp/server"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const (
	serverName = "quill-lsp"

	// DefaultDebounce is the delay between the last edit and re-validation.
	DefaultDebounce = 300 * time.Millisecond

	defaultCacheSize = 256
)

var log = commonlog.GetLogger("quill.lsp")

// Server is the Quill language server.
type Server struct {
	handler protocol.Handler
	glspSrv *glspserver.Server
	docs    *DocumentStore

	// Symbol tables keyed by document URI.
	cache     *analysis.Cache
	cacheSize int

	// Linter instance shared across diagnostics runs.
	linter *lint.Linter

	// Debouncer for didChange notifications.
	debounceDelay time.Duration
	debounceMu    sync.Mutex
	debounce      map[string]*time.Timer

	// Context for sending notifications (captured from latest request).
	notifyMu sync.Mutex
	notify   glsp.NotifyFunc

	// exitFn is called on the LSP exit notification. Defaults to os.Exit.
	// Overridable for testing.
	exitFn func(int)
}

// Option configures the LSP server.
type Option func(*Server)

// WithAnalyzers replaces the default analyzer set.
func WithAnalyzers(analyzers ...*lint.Analyzer) Option {
	return func(s *Server) { s.linter.Analyzers = analyzers }
}

// WithDebounce sets the delay between an edit and re-validation. Values
// below zero are treated as zero.
func WithDebounce(d time.Duration) Option {
	return func(s *Server) {
		if d < 0 {
			d = 0
		}
		s.debounceDelay = d
	}
}

// WithCacheSize bounds the number of symbol tables kept in memory.
func WithCacheSize(n int) Option {
	return func(s *Server) { s.cacheSize = n }
}

// New creates a new Quill LSP server.
func New(opts ...Option) *Server {
	s := &Server{
		docs:          NewDocumentStore(),
		cacheSize:     defaultCacheSize,
		linter:        &lint.Linter{Analyzers: lint.DefaultAnalyzers()},
		debounceDelay: DefaultDebounce,
		debounce:      make(map[string]*time.Timer),
		exitFn:        os.Exit,
	}
	for _, o := range opts {
		o(s)
	}
	s.cache = analysis.NewCache(s.cacheSize)

	s.handler = protocol.Handler{
		Initialize: s.initialize,
		Shutdown:   s.shutdown,
		Exit:       s.exit,
		SetTrace:   s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidSave:   s.textDocumentDidSave,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentHover:          s.textDocumentHover,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,

		WorkspaceDidChangeWatchedFiles: s.workspaceDidChangeWatchedFiles,
	}

	s.glspSrv = glspserver.NewServer(&s.handler, serverName, false)
	return s
}

// RunStdio starts the server using stdio transport.
func (s *Server) RunStdio() error {
	return s.glspSrv.RunStdio()
}

// RunTCP starts the server listening on the given address.
func (s *Server) RunTCP(addr string) error {
	return s.glspSrv.RunTCP(addr)
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	s.captureNotify(ctx)
	if params.ClientInfo != nil {
		log.Infof("initialize from %s", params.ClientInfo.Name)
	}

	capabilities := s.handler.CreateServerCapabilities()

	// Override text document sync to full.
	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
		Save:      &protocol.SaveOptions{IncludeText: boolPtr(false)},
	}

	version := "0.1.0"
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	s.debounceMu.Lock()
	for _, t := range s.debounce {
		t.Stop()
	}
	s.debounce = make(map[string]*time.Timer)
	s.debounceMu.Unlock()

	s.cache.InvalidateAll()
	return nil
}

// exit terminates the process. Shutdown always succeeds, so the exit code
// is 0.
func (s *Server) exit(_ *glsp.Context) error {
	s.exitFn(0)
	return nil
}

// setTrace handles the $/setTrace notification (required by some clients).
func (s *Server) setTrace(_ *glsp.Context, _ *protocol.SetTraceParams) error {
	return nil
}

// workspaceDidChangeWatchedFiles drops cached tables for deleted files.
// Changed files that are open are re-validated from the editor's copy, so
// only deletions matter here.
func (s *Server) workspaceDidChangeWatchedFiles(_ *glsp.Context, params *protocol.DidChangeWatchedFilesParams) error {
	for _, change := range params.Changes {
		if change.Type != protocol.FileChangeTypeDeleted {
			continue
		}
		if s.invalidate(change.URI) {
			log.Debugf("invalidated %s after deletion", change.URI)
		}
	}
	return nil
}

// invalidate drops the cached table for uri.
func (s *Server) invalidate(uri string) bool {
	if !s.cache.Invalidate(uri) {
		return false
	}
	cacheInvalidations.Inc()
	return true
}

// table returns the symbol table for a document's current content.
func (s *Server) table(doc *Document) *analysis.Table {
	uri, content := doc.Snapshot()
	return s.cache.Table(uri, content)
}

// captureNotify stores the notification function from the context for
// async use (e.g., publishing diagnostics after a debounce).
func (s *Server) captureNotify(ctx *glsp.Context) {
	s.notifyMu.Lock()
	s.notify = ctx.Notify
	s.notifyMu.Unlock()
}

// sendNotification sends a notification to the client.
func (s *Server) sendNotification(method string, params any) {
	s.notifyMu.Lock()
	fn := s.notify
	s.notifyMu.Unlock()
	if fn != nil {
		fn(method, params)
	}
}

func boolPtr(b bool) *bool {
	return &b
}
