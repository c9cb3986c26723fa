// Copyright © 2024 The renamebridge authors

package rename

import (
	"context"

	"github.com/swiftclang/renamebridge/docstore"
	"github.com/swiftclang/renamebridge/index"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// PrepareRename implements spec §4.7: delegate to the language service's
// own prepare-rename, then — if a USR and an index are available —
// override the placeholder with the definition-site spelling via C3, so
// a cross-language rename dialog shows the name in the language the user
// must type it in.
func (o *Orchestrator) PrepareRename(ctx context.Context, uri string, pos protocol.Position) (*PrepareRenameResponse, error) {
	ws, ok := o.Workspaces(uri)
	if !ok {
		return nil, &WorkspaceNotOpenError{URI: uri}
	}

	snap, err := docstore.Load(ws.Docs, uri, docstore.LanguageUnknown)
	if err != nil {
		return nil, err
	}
	service := o.primaryService(ws, snap.Language())
	if service == nil {
		return nil, nil
	}

	resp, err := service.PrepareRename(ctx, uri, pos)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	if isBareKeywordPlaceholder(resp.Placeholder) {
		return nil, nil
	}

	usr, ok := usrAtPosition(ctx, service, uri, pos)
	if !ok || ws.Index == nil {
		return resp, nil
	}

	defs := ws.Index.Occurrences(usr, index.RoleDefinition|index.RoleForwardDefinition)
	if len(defs) != 1 {
		return resp, nil
	}
	def := defs[0]

	defURI := docstore.PathToURI(def.Location.Path)
	defSnap, err := docstore.Load(ws.Docs, defURI, ws.docstoreLanguage(def.Symbol.Language))
	if err != nil {
		return resp, nil
	}
	defPos, ok := defSnap.PositionFromUTF8(def.Location.Line, def.Location.UTF8Column)
	if !ok {
		return resp, nil
	}
	defOffset, ok := defSnap.OffsetFromPosition(defPos)
	if !ok {
		return resp, nil
	}

	isObjCSelector := def.Symbol.Language == index.LanguageObjectiveC &&
		(def.Symbol.Kind == index.SymbolKindInstanceMethod || def.Symbol.Kind == index.SymbolKindClassMethod)
	name := NewTranslatableName(def.Symbol.Name, defURI, defPos, defOffset, def.Symbol.Language, isObjCSelector)

	spelling, err := definitionSpellingFor(ctx, ws, snap.Language(), name, pos, snap)
	if err != nil || spelling == "" {
		return resp, nil
	}
	resp.Placeholder = spelling
	return resp, nil
}

// keywordBaseNames are the base names spec §3 calls out as
// non-renameable (KeywordBaseName pieces never participate in edits).
var keywordBaseNames = map[string]bool{
	"init":      true,
	"subscript": true,
}

// isBareKeywordPlaceholder reports whether a prepare-rename placeholder
// names a keyword base name with no argument labels to show: spec §5
// (supplemented feature) — such a symbol has nothing left to highlight in
// a rename dialog, so prepareRename returns absent for it the same way
// the teacher's textDocumentPrepareRename returns absent for builtins.
func isBareKeywordPlaceholder(placeholder string) bool {
	parsed := ParseCompoundName(placeholder)
	return keywordBaseNames[parsed.BaseName()] && len(parsed.Parameters()) == 0
}

// usrAtPosition asks the language service's symbolInfo for the unique
// symbol at pos that carries a USR. Spec §4.7 says "obtains the USR of
// the symbol at the position"; when symbolInfo reports more than one
// USR-bearing candidate, none is preferred over another, so prepareRename
// falls back to the service's own placeholder.
func usrAtPosition(ctx context.Context, service LanguageService, uri string, pos protocol.Position) (string, bool) {
	details, err := service.SymbolInfo(ctx, uri, pos)
	if err != nil {
		return "", false
	}
	var usr string
	found := 0
	for _, d := range details {
		if d.HasUSR {
			usr = d.USR
			found++
		}
	}
	if found != 1 {
		return "", false
	}
	return usr, true
}

// definitionSpellingFor renders name in the language the rename was
// invoked in.
func definitionSpellingFor(ctx context.Context, ws *Workspace, lang docstore.Language, name *TranslatableName, pos protocol.Position, snap docstore.Snapshot) (string, error) {
	switch lang {
	case docstore.LanguageSwift:
		swiftService, ok := ws.Swift().(*SwiftService)
		if !ok {
			return "", nil
		}
		return name.SwiftName(ctx, pos, snap, swiftService.Swift)
	case docstore.LanguageClang:
		clangService, ok := ws.Clang().(*ClangService)
		if !ok {
			return "", nil
		}
		return name.ClangName(ctx, clangService.Swift)
	default:
		return "", nil
	}
}
