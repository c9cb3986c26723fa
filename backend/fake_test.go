// Copyright © 2024 The renamebridge authors

package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestFakeSwiftDefaultsAreNoOps(t *testing.T) {
	f := &FakeSwift{}
	ctx := context.Background()

	resp, err := f.TranslateName(ctx, TranslateNameRequest{})
	require.NoError(t, err)
	assert.Equal(t, TranslateNameResponse{}, resp)

	rangesResp, err := f.SyntacticRenameRanges(ctx, SyntacticRenameRangesRequest{})
	require.NoError(t, err)
	assert.Empty(t, rangesResp.CategorizedRanges)

	local, err := f.LocalRename(ctx, "file:///a.swift", protocol.Position{}, "bar")
	require.NoError(t, err)
	assert.False(t, local.HasUSR)

	prep, err := f.PrepareRename(ctx, "file:///a.swift", protocol.Position{})
	require.NoError(t, err)
	assert.Nil(t, prep)

	details, err := f.SymbolInfo(ctx, "file:///a.swift", protocol.Position{})
	require.NoError(t, err)
	assert.Nil(t, details)
}

func TestFakeSwiftInvokesScriptedFuncs(t *testing.T) {
	called := false
	f := &FakeSwift{
		TranslateNameFunc: func(req TranslateNameRequest) (TranslateNameResponse, error) {
			called = true
			return TranslateNameResponse{BaseName: "x"}, nil
		},
	}
	resp, err := f.TranslateName(context.Background(), TranslateNameRequest{})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "x", resp.BaseName)
}

func TestFakeClangDefaultsAreNoOps(t *testing.T) {
	f := &FakeClang{}
	ctx := context.Background()

	edit, err := f.IndexedRename(ctx, IndexedRenameRequest{})
	require.NoError(t, err)
	assert.Nil(t, edit.Changes)

	local, err := f.LocalRename(ctx, "file:///a.m", protocol.Position{}, "bar")
	require.NoError(t, err)
	assert.False(t, local.HasUSR)

	prep, err := f.PrepareRename(ctx, "file:///a.m", protocol.Position{})
	require.NoError(t, err)
	assert.Nil(t, prep)
}

func TestFakeClangInvokesScriptedFuncs(t *testing.T) {
	f := &FakeClang{
		SymbolInfoFunc: func(uri string, pos protocol.Position) ([]SymbolDetail, error) {
			return []SymbolDetail{{Name: "foo", USR: "c:foo", HasUSR: true}}, nil
		},
	}
	details, err := f.SymbolInfo(context.Background(), "file:///a.m", protocol.Position{})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "c:foo", details[0].USR)
}
