// Copyright © 2024 The renamebridge authors

package rename

import "github.com/swiftclang/renamebridge/docstore"

// PieceKind is the closed taxonomy of rename piece roles (spec §3).
// Modeled as a tagged enum rather than a bare string so the piece-edit
// composer's case analysis in edits.go switches over a closed set of
// named constants.
type PieceKind int

const (
	// BaseName is the base-name occurrence at a declaration or call site.
	BaseName PieceKind = iota
	// KeywordBaseName is a non-renameable base name such as "init" or
	// "subscript".
	KeywordBaseName
	// ParameterName is the internal (local) name of a parameter.
	ParameterName
	// NonCollapsibleParameterName is an internal name that must never
	// collapse with the external label even when textually identical.
	NonCollapsibleParameterName
	// DeclArgumentLabel is the external label written at a declaration.
	DeclArgumentLabel
	// CallArgumentLabel is the external label written at a call site.
	CallArgumentLabel
	// CallArgumentColon is the ":" (and following space) after a
	// call-site label.
	CallArgumentColon
	// CallArgumentCombined is an empty range positioned at an unnamed
	// call argument, used to insert a brand-new label.
	CallArgumentCombined
	// SelectorArgumentLabel is a label inside a #selector-style
	// compound reference.
	SelectorArgumentLabel
)

func (k PieceKind) String() string {
	switch k {
	case BaseName:
		return "BaseName"
	case KeywordBaseName:
		return "KeywordBaseName"
	case ParameterName:
		return "ParameterName"
	case NonCollapsibleParameterName:
		return "NonCollapsibleParameterName"
	case DeclArgumentLabel:
		return "DeclArgumentLabel"
	case CallArgumentLabel:
		return "CallArgumentLabel"
	case CallArgumentColon:
		return "CallArgumentColon"
	case CallArgumentCombined:
		return "CallArgumentCombined"
	case SelectorArgumentLabel:
		return "SelectorArgumentLabel"
	default:
		return "Unknown"
	}
}

// NameContext classifies the occurrence a CategorizedName was found in.
// Only ActiveCode, InactiveCode, and Selector are renamed (spec §3).
type NameContext int

const (
	Unmatched NameContext = iota
	Mismatch
	ActiveCode
	InactiveCode
	StringLiteral
	Selector
	Comment
)

func (c NameContext) String() string {
	switch c {
	case Unmatched:
		return "Unmatched"
	case Mismatch:
		return "Mismatch"
	case ActiveCode:
		return "ActiveCode"
	case InactiveCode:
		return "InactiveCode"
	case StringLiteral:
		return "StringLiteral"
	case Selector:
		return "Selector"
	case Comment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// IsRenameable reports whether occurrences in this context ever produce
// edits. InactiveCode is included per spec §9 open question (c): the
// composer must treat it as renameable should a backend ever emit it.
func (c NameContext) IsRenameable() bool {
	switch c {
	case ActiveCode, InactiveCode, Selector:
		return true
	default:
		return false
	}
}

// Piece is one contiguous, classified range within a single occurrence
// of a compound name.
type Piece struct {
	Range docstore.Range
	Kind  PieceKind
	// ParameterIndex is the zero-based position of this piece's
	// parameter within the parsed old name's parameter list. It is
	// meaningful only for non-base-name kinds.
	ParameterIndex    int
	hasParameterIndex bool
}

// NewBasePiece constructs a base-name piece (BaseName or
// KeywordBaseName), which never carries a parameter index.
func NewBasePiece(r docstore.Range, kind PieceKind) Piece {
	return Piece{Range: r, Kind: kind}
}

// NewParameterPiece constructs a piece tied to a specific parameter slot.
func NewParameterPiece(r docstore.Range, kind PieceKind, parameterIndex int) Piece {
	return Piece{Range: r, Kind: kind, ParameterIndex: parameterIndex, hasParameterIndex: true}
}

// HasParameterIndex reports whether this piece carries a parameter index.
func (p Piece) HasParameterIndex() bool {
	return p.hasParameterIndex
}

// CategorizedName is an occurrence's full set of classified pieces plus
// the surrounding NameContext.
type CategorizedName struct {
	Pieces  []Piece
	Context NameContext
}

// backendPieceKinds maps the Swift backend's wire-level kind identifiers
// onto the closed PieceKind taxonomy. Kept as a package-level table
// rather than a switch in ClassifyPiece so the set of recognized kind
// strings is visible in one place.
var backendPieceKinds = map[string]PieceKind{
	"base-name":                     BaseName,
	"keyword-base-name":             KeywordBaseName,
	"parameter-name":                ParameterName,
	"noncollapsible-parameter-name": NonCollapsibleParameterName,
	"decl-argument-label":           DeclArgumentLabel,
	"call-argument-label":           CallArgumentLabel,
	"call-argument-colon":           CallArgumentColon,
	"call-argument-combined":        CallArgumentCombined,
	"selector-argument-label":       SelectorArgumentLabel,
}

var backendContexts = map[string]NameContext{
	"unmatched":      Unmatched,
	"mismatch":       Mismatch,
	"active-code":    ActiveCode,
	"inactive-code":  InactiveCode,
	"string-literal":  StringLiteral,
	"selector":       Selector,
	"comment":        Comment,
}

// BackendPiece is the raw, wire-level shape of a piece as reported by the
// Swift backend's find-syntactic-rename-ranges response (spec §4.2, §6):
// four 1-based UTF-8 line/column coordinates, a kind identifier, and an
// optional parameter index.
type BackendPiece struct {
	StartLine, StartColumn int
	EndLine, EndColumn     int
	Kind                   string
	ParameterIndex         *int
}

// ClassifyPiece converts a BackendPiece into a Piece, translating 1-based
// UTF-8 coordinates into the snapshot's internal (0-based line, UTF-16
// column) position model via snap's line table. It returns false when the
// coordinates cannot be located in the snapshot or the kind identifier is
// outside the closed set (spec §4.2).
func ClassifyPiece(raw BackendPiece, snap docstore.Snapshot) (Piece, bool) {
	kind, ok := backendPieceKinds[raw.Kind]
	if !ok {
		return Piece{}, false
	}

	start, ok := snap.PositionFromUTF8(raw.StartLine, raw.StartColumn)
	if !ok {
		return Piece{}, false
	}
	end, ok := snap.PositionFromUTF8(raw.EndLine, raw.EndColumn)
	if !ok {
		return Piece{}, false
	}
	r := docstore.Range{Start: start, End: end}

	if raw.ParameterIndex == nil {
		return NewBasePiece(r, kind), true
	}
	return NewParameterPiece(r, kind, *raw.ParameterIndex), true
}

// ClassifyContext maps a backend context identifier onto NameContext. It
// returns false for an identifier outside the closed seven-value set.
func ClassifyContext(id string) (NameContext, bool) {
	ctx, ok := backendContexts[id]
	return ctx, ok
}
