// Copyright © 2024 The renamebridge authors

package rename

import (
	"strings"

	"github.com/swiftclang/renamebridge/docstore"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// EditsForOccurrence computes the text edits for one occurrence, given
// the pieces classified for it and the old/new compound names (spec
// §4.5). It skips Unmatched, Mismatch, StringLiteral, and Comment
// contexts entirely. For each piece it applies at most one edit per the
// table in spec §4.5; an out-of-range parameter index skips that piece
// without failing the whole occurrence.
func EditsForOccurrence(cat CategorizedName, oldName, newName CompoundName, snap docstore.Snapshot) []protocol.TextEdit {
	if !cat.Context.IsRenameable() {
		return nil
	}

	var edits []protocol.TextEdit
	for _, piece := range cat.Pieces {
		edit, ok := editForPiece(piece, oldName, newName, snap)
		if ok {
			edits = append(edits, edit)
		}
	}
	return edits
}

func editForPiece(piece Piece, oldName, newName CompoundName, snap docstore.Snapshot) (protocol.TextEdit, bool) {
	switch piece.Kind {
	case BaseName:
		return replace(piece.Range, newName.BaseName()), true
	case KeywordBaseName:
		return protocol.TextEdit{}, false
	}

	if !piece.HasParameterIndex() {
		return protocol.TextEdit{}, false
	}
	p, pOK := oldName.ParameterAt(piece.ParameterIndex)
	q, qOK := newName.ParameterAt(piece.ParameterIndex)
	if !pOK || !qOK {
		return protocol.TextEdit{}, false
	}

	switch piece.Kind {
	case ParameterName:
		return editParameterName(piece, p, q, snap)
	case NonCollapsibleParameterName:
		return protocol.TextEdit{}, false
	case DeclArgumentLabel:
		if isEmptyRange(piece.Range) {
			return insert(piece.Range, q.LabelOrUnderscore()+" "), true
		}
		return replace(piece.Range, q.LabelOrUnderscore()), true
	case CallArgumentLabel:
		return replace(piece.Range, q.LabelOrEmpty()), true
	case CallArgumentColon:
		if q.IsWildcard() {
			return replace(piece.Range, ""), true
		}
		return protocol.TextEdit{}, false
	case CallArgumentCombined:
		if !q.IsWildcard() {
			return insert(piece.Range, q.Label()+": "), true
		}
		return protocol.TextEdit{}, false
	case SelectorArgumentLabel:
		return replace(piece.Range, q.LabelOrUnderscore()), true
	default:
		return protocol.TextEdit{}, false
	}
}

// editParameterName implements the ParameterName row of the table: a
// prior external label can be promoted into a new internal name, an
// identical internal name can collapse to nothing, or nothing happens.
func editParameterName(piece Piece, p, q Parameter, snap docstore.Snapshot) (protocol.TextEdit, bool) {
	if q.IsWildcard() && isEmptyRange(piece.Range) && !p.IsWildcard() {
		return insert(piece.Range, " "+p.Label()), true
	}

	original, ok := snap.TextAt(piece.Range)
	if ok && strings.TrimSpace(original) == strings.TrimSpace(q.Label()) {
		return replace(piece.Range, ""), true
	}
	return protocol.TextEdit{}, false
}

func isEmptyRange(r docstore.Range) bool {
	return r.Start.Line == r.End.Line && r.Start.Character == r.End.Character
}

func replace(r docstore.Range, text string) protocol.TextEdit {
	return protocol.TextEdit{Range: r, NewText: text}
}

func insert(at docstore.Range, text string) protocol.TextEdit {
	return protocol.TextEdit{Range: docstore.Range{Start: at.Start, End: at.Start}, NewText: text}
}
