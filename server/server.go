// Copyright © 2024 The renamebridge authors

// Package server wires the rename engine onto the Language Server
// Protocol via tliron/glsp, mirroring the teacher's lsp package: a
// Server struct holding a protocol.Handler, an Option-configured
// constructor, and one handler method per LSP request the engine serves.
package server

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/swiftclang/renamebridge/backend"
	"github.com/swiftclang/renamebridge/docstore"
	"github.com/swiftclang/renamebridge/index"
	"github.com/swiftclang/renamebridge/rename"
	"github.com/tliron/glsp"
	glspserver "github.com/tliron/glsp/server"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const serverName = "renamebridge"

// Server is the cross-language rename language server.
type Server struct {
	handler protocol.Handler
	glspSrv *glspserver.Server

	docs  *docstore.Store
	index index.Index
	log   *logrus.Logger

	swift backend.Swift
	clang backend.Clang

	swiftService rename.LanguageService
	clangService rename.LanguageService

	orchestrator *rename.Orchestrator

	rootURI string

	// exitFn is called on the LSP exit notification. Overridable for
	// testing, mirroring the teacher's Server.exitFn.
	exitFn func(int)
}

// Option configures the server.
type Option func(*Server)

// WithSwiftBackend injects the Swift backend client.
func WithSwiftBackend(swift backend.Swift) Option {
	return func(s *Server) { s.swift = swift }
}

// WithClangBackend injects the Clang backend client.
func WithClangBackend(clang backend.Clang) Option {
	return func(s *Server) { s.clang = clang }
}

// WithIndex injects the workspace symbol index.
func WithIndex(idx index.Index) Option {
	return func(s *Server) { s.index = idx }
}

// WithLogger overrides the default logrus logger.
func WithLogger(log *logrus.Logger) Option {
	return func(s *Server) { s.log = log }
}

// New creates a rename language server.
func New(opts ...Option) *Server {
	s := &Server{
		docs:   docstore.NewStore(),
		log:    logrus.New(),
		exitFn: os.Exit,
	}
	for _, o := range opts {
		o(s)
	}

	if s.swift != nil {
		s.swiftService = rename.NewSwiftService(s.swift)
	}
	if s.clang != nil {
		s.clangService = rename.NewClangService(s.clang, s.swift)
	}

	s.orchestrator = rename.NewOrchestrator(s.workspaceFor)

	s.handler = protocol.Handler{
		Initialize: s.initialize,
		Shutdown:   s.shutdown,
		Exit:       s.exit,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentRename:        s.textDocumentRename,
		TextDocumentPrepareRename: s.textDocumentPrepareRename,
	}

	s.glspSrv = glspserver.NewServer(&s.handler, serverName, false)
	return s
}

// RunStdio starts the server using stdio transport.
func (s *Server) RunStdio() error {
	return s.glspSrv.RunStdio()
}

// RunTCP starts the server listening on addr.
func (s *Server) RunTCP(addr string) error {
	return s.glspSrv.RunTCP(addr)
}

// workspaceFor resolves the single Workspace this server exposes,
// regardless of request URI. The engine is out-of-scope for
// workspace/project discovery (spec §1); a real deployment would route
// to a per-project Workspace here.
func (s *Server) workspaceFor(uri string) (*rename.Workspace, bool) {
	if s.rootURI == "" && uri == "" {
		return nil, false
	}
	return &rename.Workspace{
		Docs:  s.docs,
		Index: s.index,
		Log:   s.log.WithField("component", "orchestrator"),
		Swift: func() rename.LanguageService { return s.swiftService },
		Clang: func() rename.LanguageService { return s.clangService },
	}, true
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.RootURI != nil {
		s.rootURI = *params.RootURI
	}

	capabilities := s.handler.CreateServerCapabilities()
	capabilities.RenameProvider = &protocol.RenameOptions{
		PrepareProvider: boolPtr(true),
	}
	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
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
	return nil
}

func (s *Server) exit(_ *glsp.Context) error {
	s.exitFn(0)
	return nil
}

func (s *Server) textDocumentDidOpen(_ *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	lang := languageFromID(params.TextDocument.LanguageID)
	s.docs.Open(params.TextDocument.URI, lang, params.TextDocument.Version, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(_ *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	// Full sync only (spec ambient concern: mirrors the teacher's choice
	// of TextDocumentSyncKindFull), so the last event carries the whole
	// document text.
	last := params.ContentChanges[len(params.ContentChanges)-1]
	if full, ok := last.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.docs.Change(params.TextDocument.URI, params.TextDocument.Version, full.Text)
	}
	return nil
}

func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.Close(params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentRename(_ *glsp.Context, params *protocol.RenameParams) (*protocol.WorkspaceEdit, error) {
	reqID := uuid.New().String()
	log := s.log.WithFields(logrus.Fields{"requestId": reqID, "uri": params.TextDocument.URI})
	log.Debug("textDocument/rename")

	req := rename.RenameRequest{
		URI:      params.TextDocument.URI,
		Position: params.Position,
		NewName:  params.NewName,
	}
	edit, err := s.orchestrator.Rename(context.Background(), req)
	if err != nil {
		log.WithError(err).Warn("rename failed")
	}
	return edit, err
}

func (s *Server) textDocumentPrepareRename(_ *glsp.Context, params *protocol.PrepareRenameParams) (any, error) {
	reqID := uuid.New().String()
	s.log.WithFields(logrus.Fields{"requestId": reqID, "uri": params.TextDocument.URI}).Debug("textDocument/prepareRename")

	resp, err := s.orchestrator.PrepareRename(context.Background(), params.TextDocument.URI, params.Position)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	return &protocol.RangeWithPlaceholder{Range: resp.Range, Placeholder: resp.Placeholder}, nil
}

func languageFromID(id string) docstore.Language {
	switch id {
	case "swift":
		return docstore.LanguageSwift
	case "objective-c", "objective-cpp", "c", "cpp":
		return docstore.LanguageClang
	default:
		return docstore.LanguageUnknown
	}
}

func boolPtr(b bool) *bool { return &b }
