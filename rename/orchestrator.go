// Copyright © 2024 The renamebridge authors

package rename

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
	"github.com/swiftclang/renamebridge/docstore"
	"github.com/swiftclang/renamebridge/index"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Workspace resolves collaborators the orchestrator needs but does not
// own: the document manager, the symbol index, and which LanguageService
// covers a given URI (spec §1: document manager and index are "out of
// scope, interfaced only").
type Workspace struct {
	Docs  docstore.Manager
	Index index.Index
	Log   *logrus.Entry
	Clang func() LanguageService
	Swift func() LanguageService
}

// serviceForLanguage maps an index.Language onto the LanguageService that
// owns it, per spec §4.6 step 8 ("clang -> treat as C for service
// routing; swift -> Swift; unknown -> skip").
func (w *Workspace) serviceForLanguage(lang index.Language) (LanguageService, bool) {
	switch lang {
	case index.LanguageSwift:
		return w.Swift(), true
	case index.LanguageC, index.LanguageCPP, index.LanguageObjectiveC:
		return w.Clang(), true
	default:
		return nil, false
	}
}

func (w *Workspace) docstoreLanguage(lang index.Language) docstore.Language {
	switch lang {
	case index.LanguageSwift:
		return docstore.LanguageSwift
	case index.LanguageC, index.LanguageCPP, index.LanguageObjectiveC:
		return docstore.LanguageClang
	default:
		return docstore.LanguageUnknown
	}
}

// Orchestrator drives C6: local rename, workspace-wide discovery through
// the index, per-file fan-out, and merge.
type Orchestrator struct {
	Workspaces func(uri string) (*Workspace, bool)
}

// NewOrchestrator constructs an Orchestrator. workspaceFor resolves the
// owning Workspace for a request URI, or reports false if none is open
// (spec §4.6 step 1).
func NewOrchestrator(workspaceFor func(uri string) (*Workspace, bool)) *Orchestrator {
	return &Orchestrator{Workspaces: workspaceFor}
}

// Rename implements spec §4.6's ten-step rename(request) -> WorkspaceEdit?
// operation.
func (o *Orchestrator) Rename(ctx context.Context, req RenameRequest) (*protocol.WorkspaceEdit, error) {
	// Step 1: resolve the workspace.
	ws, ok := o.Workspaces(req.URI)
	if !ok {
		return nil, &WorkspaceNotOpenError{URI: req.URI}
	}

	// Step 2: resolve the language service for the primary URI.
	primarySnap, err := docstore.Load(ws.Docs, req.URI, docstore.LanguageUnknown)
	if err != nil {
		return nil, err
	}
	primaryService := o.primaryService(ws, primarySnap.Language())
	if primaryService == nil {
		return nil, nil
	}

	// Step 3: local rename on the primary file.
	local, err := primaryService.Rename(ctx, req)
	if err != nil {
		return nil, err
	}
	if !local.HasUSR || ws.Index == nil {
		return &local.Edits, nil
	}

	// Step 4: build the old TranslatableName from the unique definition
	// occurrence of the USR.
	defs := ws.Index.Occurrences(local.USR, index.RoleDefinition|index.RoleForwardDefinition)
	if len(defs) != 1 {
		ws.Log.WithFields(logrus.Fields{"usr": local.USR, "definitions": len(defs)}).
			Warn("global rename refused: ambiguous or missing definition")
		return &local.Edits, nil
	}
	def := defs[0]

	defLang := def.Symbol.Language
	isObjCSelector := def.Symbol.Language == index.LanguageObjectiveC &&
		(def.Symbol.Kind == index.SymbolKindInstanceMethod || def.Symbol.Kind == index.SymbolKindClassMethod)

	defURI := docstore.PathToURI(def.Location.Path)
	defSnap, err := docstore.Load(ws.Docs, defURI, ws.docstoreLanguage(def.Symbol.Language))
	if err != nil {
		ws.Log.WithError(err).Warn("global rename refused: cannot load defining snapshot")
		return &local.Edits, nil
	}
	defPos, ok := defSnap.PositionFromUTF8(def.Location.Line, def.Location.UTF8Column)
	if !ok {
		ws.Log.Warn("global rename refused: definition position out of range")
		return &local.Edits, nil
	}
	defOffset, ok := defSnap.OffsetFromPosition(defPos)
	if !ok {
		ws.Log.Warn("global rename refused: cannot compute definition offset")
		return &local.Edits, nil
	}

	oldName := NewTranslatableName(def.Symbol.Name, defURI, defPos, defOffset, defLang, isObjCSelector)

	// Step 5: clone with the new spelling; no cache carry-over.
	newName := oldName.WithDefinitionName(req.NewName)

	// Step 6: seed changes depending on whether the defining language
	// matches the primary file's language.
	changes := make(map[string][]protocol.TextEdit)
	if defLang == indexLanguageFor(primarySnap.Language()) {
		for uri, edits := range local.Edits.Changes {
			changes[string(uri)] = edits
		}
	}

	// Step 7: query all occurrences of the USR, grouped by file.
	all := ws.Index.Occurrences(local.USR, 0)
	groups := index.GroupByFile(all)

	// Step 8: per-file fan-out, concurrent, cancellable.
	type fileResult struct {
		uri   string
		edits []protocol.TextEdit
	}
	p := pool.NewWithResults[*fileResult]().WithContext(ctx).WithCancelOnError()
	for path, occs := range groups {
		path := path
		occs := occs
		uri := docstore.PathToURI(path)
		if _, already := changes[uri]; already {
			continue
		}
		p.Go(func(ctx context.Context) (*fileResult, error) {
			lang, ok := ws.Index.SymbolProvider(path)
			if !ok {
				ws.Log.WithField("path", path).Debug("skipping occurrence: no symbol provider")
				return nil, nil
			}
			service, ok := ws.serviceForLanguage(lang)
			if !ok {
				return nil, nil
			}
			snap, err := docstore.Load(ws.Docs, uri, ws.docstoreLanguage(lang))
			if err != nil {
				ws.Log.WithError(err).WithField("path", path).Debug("skipping file: cannot load snapshot")
				return nil, nil
			}
			renameLocs := LocationsFromOccurrences(occs)
			edits, err := service.EditsToRename(ctx, renameLocs, snap, oldName, newName)
			if err != nil {
				ws.Log.WithError(err).WithField("path", path).Debug("skipping file: editsToRename failed")
				return nil, nil
			}
			return &fileResult{uri: uri, edits: edits}, nil
		})
	}
	results, err := p.Wait()
	if err != nil {
		return nil, &CancelledError{Cause: err}
	}

	// Step 9: merge.
	for _, r := range results {
		if r == nil || len(r.edits) == 0 {
			continue
		}
		if _, exists := changes[r.uri]; exists {
			continue // assert no overwrite: first writer (primary seed) wins
		}
		changes[r.uri] = r.edits
	}

	// Step 10: return the merged workspace edit.
	wireChanges := make(map[protocol.DocumentUri][]protocol.TextEdit, len(changes))
	for uri, edits := range changes {
		wireChanges[protocol.DocumentUri(uri)] = edits
	}
	return &protocol.WorkspaceEdit{Changes: wireChanges}, nil
}

func (o *Orchestrator) primaryService(ws *Workspace, lang docstore.Language) LanguageService {
	switch lang {
	case docstore.LanguageSwift:
		return ws.Swift()
	case docstore.LanguageClang:
		return ws.Clang()
	default:
		return nil
	}
}

func indexLanguageFor(lang docstore.Language) index.Language {
	switch lang {
	case docstore.LanguageSwift:
		return index.LanguageSwift
	case docstore.LanguageClang:
		return index.LanguageObjectiveC
	default:
		return index.LanguageUnknown
	}
}

// CancelledError wraps a cancellation surfaced from the per-file fan-out
// (spec §5, §7).
type CancelledError struct {
	Cause error
}

func (e *CancelledError) Error() string { return "rename cancelled: " + e.Cause.Error() }

func (e *CancelledError) Unwrap() error { return ErrCancelled }
