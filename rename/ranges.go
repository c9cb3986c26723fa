// Copyright © 2024 The renamebridge authors

package rename

import (
	"context"

	"github.com/swiftclang/renamebridge/backend"
	"github.com/swiftclang/renamebridge/docstore"
)

func usageNameType(u Usage) string {
	switch u {
	case UsageDefinition:
		return "definition"
	case UsageCall:
		return "call"
	default:
		return "reference"
	}
}

// SyntacticRanges obtains the categorized piece ranges for a set of
// rename locations from the Swift backend (spec §4.4, C4). The request
// carries the snapshot's own text rather than relying on any copy the
// backend might hold, since find-syntactic-rename-ranges is a purely
// syntactic request.
//
// Pieces whose coordinates fail snapshot lookup are silently dropped. An
// unrecognized context identifier or a response missing
// categorizedranges entirely fails the whole call with InternalError.
func SyntacticRanges(ctx context.Context, swift backend.Swift, locations []RenameLocation, oldName string, snap docstore.Snapshot) ([]CategorizedName, error) {
	inputs := make([]backend.RenameLocationInput, 0, len(locations))
	for _, loc := range locations {
		inputs = append(inputs, backend.RenameLocationInput{
			Line:     loc.Line,
			Column:   loc.UTF8Column,
			NameType: usageNameType(loc.Usage),
		})
	}

	req := backend.SyntacticRenameRangesRequest{
		SourceFile: docstore.URIToPath(snap.URI()),
		SourceText: snap.Text(),
		RenameLocations: []backend.RenameLocationGroup{
			{Locations: inputs, Name: oldName},
		},
	}

	resp, err := swift.SyntacticRenameRanges(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.CategorizedRanges == nil {
		return nil, &InternalError{Message: "response is missing categorizedranges"}
	}

	result := make([]CategorizedName, 0, len(resp.CategorizedRanges))
	for _, cr := range resp.CategorizedRanges {
		nameCtx, ok := ClassifyContext(cr.Category)
		if !ok {
			return nil, &InternalError{Message: "unrecognized name context " + cr.Category}
		}

		pieces := make([]Piece, 0, len(cr.Ranges))
		for _, wp := range cr.Ranges {
			piece, ok := ClassifyPiece(BackendPiece{
				StartLine:      wp.Line,
				StartColumn:    wp.Column,
				EndLine:        wp.EndLine,
				EndColumn:      wp.EndColumn,
				Kind:           wp.Kind,
				ParameterIndex: wp.ParameterIndex,
			}, snap)
			if !ok {
				continue
			}
			pieces = append(pieces, piece)
		}

		result = append(result, CategorizedName{Pieces: pieces, Context: nameCtx})
	}
	return result, nil
}
