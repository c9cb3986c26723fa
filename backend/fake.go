// Copyright © 2024 The renamebridge authors

package backend

import (
	"context"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// FakeSwift is an in-memory Swift backend double for tests. Each field
// defaults to a no-op/zero response; set the Func fields to script
// specific behavior.
type FakeSwift struct {
	TranslateNameFunc         func(TranslateNameRequest) (TranslateNameResponse, error)
	SyntacticRenameRangesFunc func(SyntacticRenameRangesRequest) (SyntacticRenameRangesResponse, error)
	LocalRenameFunc           func(uri string, pos protocol.Position, newName string) (LocalRenameResult, error)
	PrepareRenameFunc         func(uri string, pos protocol.Position) (*PrepareRenameResult, error)
	SymbolInfoFunc            func(uri string, pos protocol.Position) ([]SymbolDetail, error)
}

func (f *FakeSwift) TranslateName(_ context.Context, req TranslateNameRequest) (TranslateNameResponse, error) {
	if f.TranslateNameFunc == nil {
		return TranslateNameResponse{}, nil
	}
	return f.TranslateNameFunc(req)
}

func (f *FakeSwift) SyntacticRenameRanges(_ context.Context, req SyntacticRenameRangesRequest) (SyntacticRenameRangesResponse, error) {
	if f.SyntacticRenameRangesFunc == nil {
		return SyntacticRenameRangesResponse{}, nil
	}
	return f.SyntacticRenameRangesFunc(req)
}

func (f *FakeSwift) LocalRename(_ context.Context, uri string, pos protocol.Position, newName string) (LocalRenameResult, error) {
	if f.LocalRenameFunc == nil {
		return LocalRenameResult{}, nil
	}
	return f.LocalRenameFunc(uri, pos, newName)
}

func (f *FakeSwift) PrepareRename(_ context.Context, uri string, pos protocol.Position) (*PrepareRenameResult, error) {
	if f.PrepareRenameFunc == nil {
		return nil, nil
	}
	return f.PrepareRenameFunc(uri, pos)
}

func (f *FakeSwift) SymbolInfo(_ context.Context, uri string, pos protocol.Position) ([]SymbolDetail, error) {
	if f.SymbolInfoFunc == nil {
		return nil, nil
	}
	return f.SymbolInfoFunc(uri, pos)
}

// FakeClang is an in-memory Clang backend double for tests.
type FakeClang struct {
	IndexedRenameFunc func(IndexedRenameRequest) (protocol.WorkspaceEdit, error)
	LocalRenameFunc   func(uri string, pos protocol.Position, newName string) (LocalRenameResult, error)
	PrepareRenameFunc func(uri string, pos protocol.Position) (*PrepareRenameResult, error)
	SymbolInfoFunc    func(uri string, pos protocol.Position) ([]SymbolDetail, error)
}

func (f *FakeClang) IndexedRename(_ context.Context, req IndexedRenameRequest) (protocol.WorkspaceEdit, error) {
	if f.IndexedRenameFunc == nil {
		return protocol.WorkspaceEdit{}, nil
	}
	return f.IndexedRenameFunc(req)
}

func (f *FakeClang) LocalRename(_ context.Context, uri string, pos protocol.Position, newName string) (LocalRenameResult, error) {
	if f.LocalRenameFunc == nil {
		return LocalRenameResult{}, nil
	}
	return f.LocalRenameFunc(uri, pos, newName)
}

func (f *FakeClang) PrepareRename(_ context.Context, uri string, pos protocol.Position) (*PrepareRenameResult, error) {
	if f.PrepareRenameFunc == nil {
		return nil, nil
	}
	return f.PrepareRenameFunc(uri, pos)
}

func (f *FakeClang) SymbolInfo(_ context.Context, uri string, pos protocol.Position) ([]SymbolDetail, error) {
	if f.SymbolInfoFunc == nil {
		return nil, nil
	}
	return f.SymbolInfoFunc(uri, pos)
}
