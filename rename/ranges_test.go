// Copyright © 2024 The renamebridge authors

package rename

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftclang/renamebridge/backend"
	"github.com/swiftclang/renamebridge/docstore"
)

func TestSyntacticRangesClassifiesPiecesAndContext(t *testing.T) {
	snap := docstore.NewSnapshot("file:///a.swift", docstore.LanguageSwift, "func foo(a: Int) {}\n")
	fake := &backend.FakeSwift{
		SyntacticRenameRangesFunc: func(req backend.SyntacticRenameRangesRequest) (backend.SyntacticRenameRangesResponse, error) {
			require.Len(t, req.RenameLocations, 1)
			assert.Equal(t, "foo(a:)", req.RenameLocations[0].Name)
			assert.Equal(t, "definition", req.RenameLocations[0].Locations[0].NameType)
			return backend.SyntacticRenameRangesResponse{
				CategorizedRanges: []backend.CategorizedRange{
					{
						Category: "active-code",
						Ranges: []backend.WirePiece{
							{Line: 1, Column: 6, EndLine: 1, EndColumn: 9, Kind: "base-name"},
						},
					},
				},
			}, nil
		},
	}

	locs := []RenameLocation{{Line: 1, UTF8Column: 6, Usage: UsageDefinition}}
	result, err := SyntacticRanges(context.Background(), fake, locs, "foo(a:)", snap)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, ActiveCode, result[0].Context)
	require.Len(t, result[0].Pieces, 1)
	assert.Equal(t, BaseName, result[0].Pieces[0].Kind)
}

func TestSyntacticRangesDropsPiecesThatFailSnapshotLookup(t *testing.T) {
	snap := docstore.NewSnapshot("file:///a.swift", docstore.LanguageSwift, "foo\n")
	fake := &backend.FakeSwift{
		SyntacticRenameRangesFunc: func(req backend.SyntacticRenameRangesRequest) (backend.SyntacticRenameRangesResponse, error) {
			return backend.SyntacticRenameRangesResponse{
				CategorizedRanges: []backend.CategorizedRange{
					{
						Category: "active-code",
						Ranges: []backend.WirePiece{
							{Line: 1, Column: 1, EndLine: 1, EndColumn: 4, Kind: "base-name"},
							{Line: 99, Column: 1, EndLine: 99, EndColumn: 2, Kind: "base-name"},
						},
					},
				},
			}, nil
		},
	}

	locs := []RenameLocation{{Line: 1, UTF8Column: 1, Usage: UsageCall}}
	result, err := SyntacticRanges(context.Background(), fake, locs, "foo", snap)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Len(t, result[0].Pieces, 1, "the out-of-range piece should be silently dropped")
}

func TestSyntacticRangesUnrecognizedContextFails(t *testing.T) {
	snap := docstore.NewSnapshot("file:///a.swift", docstore.LanguageSwift, "foo\n")
	fake := &backend.FakeSwift{
		SyntacticRenameRangesFunc: func(req backend.SyntacticRenameRangesRequest) (backend.SyntacticRenameRangesResponse, error) {
			return backend.SyntacticRenameRangesResponse{
				CategorizedRanges: []backend.CategorizedRange{
					{Category: "not-a-real-context"},
				},
			}, nil
		},
	}

	locs := []RenameLocation{{Line: 1, UTF8Column: 1, Usage: UsageCall}}
	_, err := SyntacticRanges(context.Background(), fake, locs, "foo", snap)
	require.Error(t, err)
	var internalErr *InternalError
	require.ErrorAs(t, err, &internalErr)
}

func TestSyntacticRangesPropagatesBackendError(t *testing.T) {
	snap := docstore.NewSnapshot("file:///a.swift", docstore.LanguageSwift, "foo\n")
	wantErr := assert.AnError
	fake := &backend.FakeSwift{
		SyntacticRenameRangesFunc: func(req backend.SyntacticRenameRangesRequest) (backend.SyntacticRenameRangesResponse, error) {
			return backend.SyntacticRenameRangesResponse{}, wantErr
		},
	}

	_, err := SyntacticRanges(context.Background(), fake, nil, "foo", snap)
	assert.ErrorIs(t, err, wantErr)
}
