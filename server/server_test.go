// Copyright © 2024 The renamebridge authors

package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftclang/renamebridge/backend"
	"github.com/swiftclang/renamebridge/docstore"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// mockContext returns a minimal glsp.Context for testing, mirroring the
// teacher's lsp.mockContext.
func mockContext() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {},
	}
}

func TestTextDocumentDidOpenStoresDocument(t *testing.T) {
	s := New()
	err := s.textDocumentDidOpen(mockContext(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        "file:///a.swift",
			LanguageID: "swift",
			Version:    1,
			Text:       "func foo() {}\n",
		},
	})
	require.NoError(t, err)

	snap, ok := s.docs.Get("file:///a.swift")
	require.True(t, ok)
	assert.Equal(t, "func foo() {}\n", snap.Text())
	assert.Equal(t, docstore.LanguageSwift, snap.Language())
}

func TestTextDocumentDidChangeReplacesText(t *testing.T) {
	s := New()
	require.NoError(t, s.textDocumentDidOpen(mockContext(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: "file:///a.swift", LanguageID: "swift", Version: 1, Text: "foo\n"},
	}))

	err := s.textDocumentDidChange(mockContext(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file:///a.swift"},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "bar\n"},
		},
	})
	require.NoError(t, err)

	snap, ok := s.docs.Get("file:///a.swift")
	require.True(t, ok)
	assert.Equal(t, "bar\n", snap.Text())
}

func TestTextDocumentDidChangeNoEventsIsNoOp(t *testing.T) {
	s := New()
	require.NoError(t, s.textDocumentDidOpen(mockContext(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: "file:///a.swift", LanguageID: "swift", Version: 1, Text: "foo\n"},
	}))

	err := s.textDocumentDidChange(mockContext(), &protocol.DidChangeTextDocumentParams{
		TextDocument:   protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file:///a.swift"}},
		ContentChanges: nil,
	})
	require.NoError(t, err)

	snap, ok := s.docs.Get("file:///a.swift")
	require.True(t, ok)
	assert.Equal(t, "foo\n", snap.Text())
}

func TestTextDocumentDidCloseRemovesDocument(t *testing.T) {
	s := New()
	require.NoError(t, s.textDocumentDidOpen(mockContext(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: "file:///a.swift", LanguageID: "swift", Version: 1, Text: "foo\n"},
	}))

	err := s.textDocumentDidClose(mockContext(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.swift"},
	})
	require.NoError(t, err)

	_, ok := s.docs.Get("file:///a.swift")
	assert.False(t, ok)
}

func TestTextDocumentRenameDelegatesToOrchestrator(t *testing.T) {
	fakeSwift := &backend.FakeSwift{
		LocalRenameFunc: func(uri string, pos protocol.Position, newName string) (backend.LocalRenameResult, error) {
			return backend.LocalRenameResult{
				Edits: protocol.WorkspaceEdit{Changes: map[protocol.DocumentUri][]protocol.TextEdit{
					protocol.DocumentUri(uri): {{NewText: newName}},
				}},
			}, nil
		},
	}
	s := New(WithSwiftBackend(fakeSwift))
	require.NoError(t, s.textDocumentDidOpen(mockContext(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: "file:///a.swift", LanguageID: "swift", Version: 1, Text: "foo\n"},
	}))

	edit, err := s.textDocumentRename(mockContext(), &protocol.RenameParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.swift"},
			Position:     protocol.Position{Line: 0, Character: 0},
		},
		NewName: "bar",
	})
	require.NoError(t, err)
	require.NotNil(t, edit)
	require.Contains(t, edit.Changes, protocol.DocumentUri("file:///a.swift"))
	assert.Equal(t, "bar", edit.Changes["file:///a.swift"][0].NewText)
}

func TestTextDocumentPrepareRenameDelegatesToOrchestrator(t *testing.T) {
	fakeSwift := &backend.FakeSwift{
		PrepareRenameFunc: func(uri string, pos protocol.Position) (*backend.PrepareRenameResult, error) {
			return &backend.PrepareRenameResult{Placeholder: "foo"}, nil
		},
	}
	s := New(WithSwiftBackend(fakeSwift))
	require.NoError(t, s.textDocumentDidOpen(mockContext(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: "file:///a.swift", LanguageID: "swift", Version: 1, Text: "foo\n"},
	}))

	result, err := s.textDocumentPrepareRename(mockContext(), &protocol.PrepareRenameParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.swift"},
			Position:     protocol.Position{Line: 0, Character: 0},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	rp, ok := result.(*protocol.RangeWithPlaceholder)
	require.True(t, ok)
	assert.Equal(t, "foo", rp.Placeholder)
}

func TestLanguageFromID(t *testing.T) {
	assert.Equal(t, docstore.LanguageSwift, languageFromID("swift"))
	assert.Equal(t, docstore.LanguageClang, languageFromID("objective-c"))
	assert.Equal(t, docstore.LanguageClang, languageFromID("cpp"))
	assert.Equal(t, docstore.LanguageUnknown, languageFromID("rust"))
}

func TestInitializeSetsRenameCapabilities(t *testing.T) {
	s := New()
	rootURI := "file:///root"
	result, err := s.initialize(mockContext(), &protocol.InitializeParams{RootURI: &rootURI})
	require.NoError(t, err)

	initResult, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	require.NotNil(t, initResult.Capabilities.RenameProvider)
	assert.Equal(t, "file:///root", s.rootURI)
}

func TestExitCallsExitFn(t *testing.T) {
	s := New()
	var called int
	s.exitFn = func(code int) { called = code }
	err := s.exit(mockContext())
	require.NoError(t, err)
	assert.Equal(t, 0, called)
}
