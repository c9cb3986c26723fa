// Copyright © 2024 The renamebridge authors

package rename

import (
	"context"

	"github.com/swiftclang/renamebridge/backend"
	"github.com/swiftclang/renamebridge/docstore"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// RenameRequest is a client-initiated rename at a primary-file position
// (spec §6).
type RenameRequest struct {
	URI      string
	Position protocol.Position
	NewName  string
}

// LocalRenameResult is what LanguageService.Rename returns for the
// primary file: the local edits plus the symbol's USR, if the service
// could resolve one (spec §4.6 step 3).
type LocalRenameResult struct {
	Edits  protocol.WorkspaceEdit
	USR    string
	HasUSR bool
}

// PrepareRenameResponse is the placeholder/range pair returned to the
// client's rename dialog (spec §4.7).
type PrepareRenameResponse struct {
	Range       protocol.Range
	Placeholder string
}

// LanguageService is the contract each of the two backends' Go-side
// wrappers implements (spec §6). The orchestrator depends only on this
// interface, never on backend.Swift/backend.Clang directly, so C6 is
// agnostic to which language a file belongs to.
type LanguageService interface {
	// Rename performs local rename for the primary file; it may be
	// semantic (spec §4.6 step 3).
	Rename(ctx context.Context, req RenameRequest) (LocalRenameResult, error)

	// EditsToRename computes the text edits for one file's occurrences
	// of a symbol being renamed (spec §4.6 step 8, §6).
	EditsToRename(ctx context.Context, locations []RenameLocation, snap docstore.Snapshot, oldName, newName *TranslatableName) ([]protocol.TextEdit, error)

	// PrepareRename resolves the placeholder/range for a rename dialog
	// (spec §4.7, §6).
	PrepareRename(ctx context.Context, uri string, pos protocol.Position) (*PrepareRenameResponse, error)

	// SymbolInfo reports the candidate symbols at a position (spec §6).
	SymbolInfo(ctx context.Context, uri string, pos protocol.Position) ([]backend.SymbolDetail, error)
}

// SwiftService is the LanguageService backed by the Swift backend.
type SwiftService struct {
	Swift backend.Swift
}

// NewSwiftService wraps a Swift backend client as a LanguageService.
func NewSwiftService(swift backend.Swift) *SwiftService {
	return &SwiftService{Swift: swift}
}

func (s *SwiftService) Rename(ctx context.Context, req RenameRequest) (LocalRenameResult, error) {
	res, err := s.Swift.LocalRename(ctx, req.URI, req.Position, req.NewName)
	if err != nil {
		return LocalRenameResult{}, err
	}
	return LocalRenameResult{Edits: res.Edits, USR: res.USR, HasUSR: res.HasUSR}, nil
}

// EditsToRename implements the Swift side of spec §4.6's "editsToRename
// on the Swift service": pick any one location for translation (all
// locations share a definition), translate both names to Swift spelling,
// parse them, extract syntactic ranges, and flat-map the piece-edit
// composer over the result.
func (s *SwiftService) EditsToRename(ctx context.Context, locations []RenameLocation, snap docstore.Snapshot, oldName, newName *TranslatableName) ([]protocol.TextEdit, error) {
	if len(locations) == 0 {
		return nil, nil
	}
	anchor := locations[0]
	anchorPos, ok := snap.PositionFromUTF8(anchor.Line, anchor.UTF8Column)
	if !ok {
		return nil, &CannotComputeOffsetError{}
	}

	oldSwiftName, err := oldName.SwiftName(ctx, anchorPos, snap, s.Swift)
	if err != nil {
		return nil, err
	}
	newSwiftName, err := newName.SwiftName(ctx, anchorPos, snap, s.Swift)
	if err != nil {
		return nil, err
	}

	oldParsed := ParseCompoundName(oldSwiftName)
	newParsed := ParseCompoundName(newSwiftName)

	categorized, err := SyntacticRanges(ctx, s.Swift, locations, oldSwiftName, snap)
	if err != nil {
		return nil, err
	}

	var edits []protocol.TextEdit
	for _, cat := range categorized {
		edits = append(edits, EditsForOccurrence(cat, oldParsed, newParsed, snap)...)
	}
	return edits, nil
}

func (s *SwiftService) PrepareRename(ctx context.Context, uri string, pos protocol.Position) (*PrepareRenameResponse, error) {
	res, err := s.Swift.PrepareRename(ctx, uri, pos)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	return &PrepareRenameResponse{Range: res.Range, Placeholder: res.Placeholder}, nil
}

func (s *SwiftService) SymbolInfo(ctx context.Context, uri string, pos protocol.Position) ([]backend.SymbolDetail, error) {
	return s.Swift.SymbolInfo(ctx, uri, pos)
}

// ClangService is the LanguageService backed by the Clang backend.
type ClangService struct {
	Clang backend.Clang
	Swift backend.Swift // needed for name translation (Swift backend owns translation, spec §6)
}

// NewClangService wraps a Clang backend client as a LanguageService. The
// Swift backend client is also required: name translation is always a
// Swift-backend request regardless of which side initiated rename (spec
// §4.3, §6).
func NewClangService(clang backend.Clang, swift backend.Swift) *ClangService {
	return &ClangService{Clang: clang, Swift: swift}
}

func (c *ClangService) Rename(ctx context.Context, req RenameRequest) (LocalRenameResult, error) {
	res, err := c.Clang.LocalRename(ctx, req.URI, req.Position, req.NewName)
	if err != nil {
		return LocalRenameResult{}, err
	}
	return LocalRenameResult{Edits: res.Edits, USR: res.USR, HasUSR: res.HasUSR}, nil
}

// EditsToRename implements the Clang side of spec §4.6: translate both
// names to clang spelling via C3, then forward to the clang backend's
// indexed-rename request, returning only the edits for snap's own URI.
func (c *ClangService) EditsToRename(ctx context.Context, locations []RenameLocation, snap docstore.Snapshot, oldName, newName *TranslatableName) ([]protocol.TextEdit, error) {
	oldClangName, err := oldName.ClangName(ctx, c.Swift)
	if err != nil {
		return nil, err
	}
	newClangName, err := newName.ClangName(ctx, c.Swift)
	if err != nil {
		return nil, err
	}

	positions := make([]backend.ClangPosition, 0, len(locations))
	for _, loc := range locations {
		positions = append(positions, backend.ClangPosition{Line: loc.Line, Column: loc.UTF8Column})
	}

	uri := protocol.DocumentUri(snap.URI())
	req := backend.IndexedRenameRequest{
		TextDocument: protocol.TextDocumentIdentifier{URI: snap.URI()},
		OldName:      oldClangName,
		NewName:      newClangName,
		Positions:    map[protocol.DocumentUri][]backend.ClangPosition{uri: positions},
	}

	resp, err := c.Clang.IndexedRename(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Changes == nil {
		return nil, nil
	}
	return resp.Changes[snap.URI()], nil
}

func (c *ClangService) PrepareRename(ctx context.Context, uri string, pos protocol.Position) (*PrepareRenameResponse, error) {
	res, err := c.Clang.PrepareRename(ctx, uri, pos)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	return &PrepareRenameResponse{Range: res.Range, Placeholder: res.Placeholder}, nil
}

func (c *ClangService) SymbolInfo(ctx context.Context, uri string, pos protocol.Position) ([]backend.SymbolDetail, error) {
	return c.Clang.SymbolInfo(ctx, uri, pos)
}
