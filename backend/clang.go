// Copyright © 2024 The renamebridge authors

package backend

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ClangPosition is one 1-based UTF-8 line/column position to rename at,
// grouped by URI in an IndexedRenameRequest.
type ClangPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// IndexedRenameRequest is the Clang backend's indexed-rename request
// (spec §6): positions grouped by URI let the backend rewrite every
// file's selector occurrences in one round trip.
type IndexedRenameRequest struct {
	TextDocument protocol.TextDocumentIdentifier          `json:"textDocument"`
	OldName      string                                   `json:"oldName"`
	NewName      string                                   `json:"newName"`
	Positions    map[protocol.DocumentUri][]ClangPosition `json:"positions"`
}

// Clang is the client-side contract for the Clang backend (spec §6).
// IndexedRename is the one request spec §6 spells out explicitly;
// LocalRename, PrepareRename, and SymbolInfo forward the primary-file
// capabilities a real Clang backend (clangd) already exposes over LSP,
// mirroring Swift's contract so both language services satisfy the same
// rename.LanguageService interface.
type Clang interface {
	IndexedRename(ctx context.Context, req IndexedRenameRequest) (protocol.WorkspaceEdit, error)
	LocalRename(ctx context.Context, uri string, pos protocol.Position, newName string) (LocalRenameResult, error)
	PrepareRename(ctx context.Context, uri string, pos protocol.Position) (*PrepareRenameResult, error)
	SymbolInfo(ctx context.Context, uri string, pos protocol.Position) ([]SymbolDetail, error)
}

// jsonrpcClang is a Clang backend client over jsonrpc2.
type jsonrpcClang struct {
	conn *jsonrpc2.Conn
}

// NewJSONRPCClang wraps an established jsonrpc2 connection as a Clang
// backend client.
func NewJSONRPCClang(conn *jsonrpc2.Conn) Clang {
	return &jsonrpcClang{conn: conn}
}

func (c *jsonrpcClang) IndexedRename(ctx context.Context, req IndexedRenameRequest) (protocol.WorkspaceEdit, error) {
	var resp protocol.WorkspaceEdit
	err := c.conn.Call(ctx, "clang/indexedRename", req, &resp)
	return resp, err
}

func (c *jsonrpcClang) LocalRename(ctx context.Context, uri string, pos protocol.Position, newName string) (LocalRenameResult, error) {
	params := protocol.RenameParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     pos,
		},
		NewName: newName,
	}
	var resp struct {
		protocol.WorkspaceEdit
		USR string `json:"usr,omitempty"`
	}
	if err := c.conn.Call(ctx, "textDocument/rename", params, &resp); err != nil {
		return LocalRenameResult{}, err
	}
	return LocalRenameResult{Edits: resp.WorkspaceEdit, USR: resp.USR, HasUSR: resp.USR != ""}, nil
}

func (c *jsonrpcClang) PrepareRename(ctx context.Context, uri string, pos protocol.Position) (*PrepareRenameResult, error) {
	params := protocol.PrepareRenameParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     pos,
		},
	}
	var resp *protocol.RangeWithPlaceholder
	if err := c.conn.Call(ctx, "textDocument/prepareRename", params, &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	return &PrepareRenameResult{Range: resp.Range, Placeholder: resp.Placeholder}, nil
}

func (c *jsonrpcClang) SymbolInfo(ctx context.Context, uri string, pos protocol.Position) ([]SymbolDetail, error) {
	params := protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Position:     pos,
	}
	var resp []SymbolDetail
	err := c.conn.Call(ctx, "clang/symbolInfo", params, &resp)
	return resp, err
}
