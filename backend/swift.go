// Copyright © 2024 The renamebridge authors

// Package backend defines the request/response contracts for the two
// opaque downstream language services the rename engine talks to: the
// Swift backend and the Clang backend (spec §1, §6). Both are treated as
// external collaborators — this package only describes their wire shape
// and a jsonrpc2 transport for reaching them; it holds no rename logic.
package backend

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// NameKind selects which half of a Swift<->ObjC translation the Swift
// backend should perform (spec §4.3, §6).
type NameKind string

const (
	NameKindSwift NameKind = "swift"
	NameKindObjC  NameKind = "objc"
)

// TranslateNameRequest is the Swift backend's name-translation request
// (spec §6): either {BaseName, ArgNames} or {SelectorPieces} is set,
// depending on NameKind and direction.
type TranslateNameRequest struct {
	SourceFile     string   `json:"sourcefile"`
	CompilerArgs   []string `json:"compilerargs"`
	Offset         int      `json:"offset"`
	NameKind       NameKind `json:"namekind"`
	BaseName       string   `json:"baseName,omitempty"`
	ArgNames       []string `json:"argNames,omitempty"`
	SelectorPieces []string `json:"selectorPieces,omitempty"`
}

// TranslateNameResponse is the Swift backend's name-translation
// response. Swift->ObjC responses populate IsZeroArgSelector and
// SelectorPieces; ObjC->Swift responses populate BaseName and ArgNames.
type TranslateNameResponse struct {
	IsZeroArgSelector bool     `json:"isZeroArgSelector"`
	SelectorPieces    []string `json:"selectorPieces,omitempty"`
	BaseName          string   `json:"baseName,omitempty"`
	ArgNames          []string `json:"argNames,omitempty"`
}

// RenameLocationInput is one occurrence position sent to the Swift
// backend's find-syntactic-rename-ranges request.
type RenameLocationInput struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	NameType string `json:"nametype"`
}

// RenameLocationGroup groups the positions that share an old name (spec
// §6: "a list of {locations, name}").
type RenameLocationGroup struct {
	Locations []RenameLocationInput `json:"locations"`
	Name      string                `json:"name"`
}

// SyntacticRenameRangesRequest is the Swift backend's syntactic request.
// It carries the source text directly rather than a document URI: per
// spec §4.4 this is "a syntactic request that does not consult the
// in-memory snapshot held by the backend".
type SyntacticRenameRangesRequest struct {
	SourceFile      string                `json:"sourcefile"`
	SourceText      string                `json:"sourcetext"`
	RenameLocations []RenameLocationGroup `json:"renamelocations"`
}

// WirePiece is one raw categorized range as reported by the backend:
// four 1-based UTF-8 coordinates, a kind identifier, and an optional
// parameter index (spec §4.2, §6).
type WirePiece struct {
	Line           int    `json:"line"`
	Column         int    `json:"column"`
	EndLine        int    `json:"endline"`
	EndColumn      int    `json:"endcolumn"`
	Kind           string `json:"kind"`
	ParameterIndex *int   `json:"argindex,omitempty"`
}

// CategorizedRange is one occurrence's raw ranges plus its context
// category identifier.
type CategorizedRange struct {
	Ranges   []WirePiece `json:"ranges"`
	Category string      `json:"category"`
}

// SyntacticRenameRangesResponse is the Swift backend's response.
type SyntacticRenameRangesResponse struct {
	CategorizedRanges []CategorizedRange `json:"categorizedranges"`
}

// SymbolDetail is one candidate symbol reported for a position (spec
// §6: "symbolInfo(textDocument, position) -> [SymbolDetail]"). USR is
// absent for symbols the backend cannot resolve to a stable identifier
// (e.g. unresolved or dynamic references).
type SymbolDetail struct {
	Name   string
	USR    string
	HasUSR bool
}

// LocalRenameResult is the primary-file rename result a language
// service's own backend produces before the orchestrator fans out across
// the workspace (spec §6: "rename(request) -> (edits, usr?)").
type LocalRenameResult struct {
	Edits  protocol.WorkspaceEdit
	USR    string
	HasUSR bool
}

// PrepareRenameResult is the placeholder/range pair a backend's own
// prepare-rename resolves, before C7 may override the placeholder with
// the definition-site spelling.
type PrepareRenameResult struct {
	Range       protocol.Range
	Placeholder string
}

// Swift is the client-side contract for the Swift backend (spec §6).
// TranslateName and SyntacticRenameRanges are the two requests spec §6
// spells out explicitly; LocalRename, PrepareRename, and SymbolInfo
// forward the primary-file-scoped capabilities a real Swift backend
// (sourcekit-lsp) already exposes over LSP, so the Swift language
// service (rename.LanguageService) has something to delegate to for
// steps 3 and C7 of the orchestrator.
type Swift interface {
	TranslateName(ctx context.Context, req TranslateNameRequest) (TranslateNameResponse, error)
	SyntacticRenameRanges(ctx context.Context, req SyntacticRenameRangesRequest) (SyntacticRenameRangesResponse, error)
	LocalRename(ctx context.Context, uri string, pos protocol.Position, newName string) (LocalRenameResult, error)
	PrepareRename(ctx context.Context, uri string, pos protocol.Position) (*PrepareRenameResult, error)
	SymbolInfo(ctx context.Context, uri string, pos protocol.Position) ([]SymbolDetail, error)
}

// jsonrpcSwift is a Swift backend client that speaks JSON-RPC over an
// existing jsonrpc2.Conn (e.g. a pipe to a sourcekit-lsp-style process).
type jsonrpcSwift struct {
	conn *jsonrpc2.Conn
}

// NewJSONRPCSwift wraps an established jsonrpc2 connection as a Swift
// backend client.
func NewJSONRPCSwift(conn *jsonrpc2.Conn) Swift {
	return &jsonrpcSwift{conn: conn}
}

func (c *jsonrpcSwift) TranslateName(ctx context.Context, req TranslateNameRequest) (TranslateNameResponse, error) {
	var resp TranslateNameResponse
	err := c.conn.Call(ctx, "swift/nameTranslation", req, &resp)
	return resp, err
}

func (c *jsonrpcSwift) SyntacticRenameRanges(ctx context.Context, req SyntacticRenameRangesRequest) (SyntacticRenameRangesResponse, error) {
	var resp SyntacticRenameRangesResponse
	err := c.conn.Call(ctx, "swift/findSyntacticRenameRanges", req, &resp)
	return resp, err
}

func (c *jsonrpcSwift) LocalRename(ctx context.Context, uri string, pos protocol.Position, newName string) (LocalRenameResult, error) {
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

func (c *jsonrpcSwift) PrepareRename(ctx context.Context, uri string, pos protocol.Position) (*PrepareRenameResult, error) {
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

func (c *jsonrpcSwift) SymbolInfo(ctx context.Context, uri string, pos protocol.Position) ([]SymbolDetail, error) {
	params := protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Position:     pos,
	}
	var resp []SymbolDetail
	err := c.conn.Call(ctx, "swift/symbolInfo", params, &resp)
	return resp, err
}
