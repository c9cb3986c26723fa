// Copyright © 2024 The renamebridge authors

package rename

import (
	"context"
	"strings"

	"github.com/swiftclang/renamebridge/backend"
	"github.com/swiftclang/renamebridge/docstore"
	"github.com/swiftclang/renamebridge/index"
	"golang.org/x/sync/singleflight"
)

// TranslatableName holds a symbol's definition-site identity and
// memoizes its translation into the other language (spec §3, §4.3). All
// of its fields describe the declaring site regardless of where rename
// was invoked; two TranslatableNames built from the same USR always
// translate identically.
type TranslatableName struct {
	DefinitionName       string
	DefinitionURI        string
	DefinitionPosition   docstore.Position
	DefinitionOffset     int
	DefinitionLanguage   index.Language
	IsObjectiveCSelector bool

	group       singleflight.Group
	clangCached *string
	swiftCached *string
}

// NewTranslatableName builds a TranslatableName for the unique definition
// occurrence of a USR (spec §4.6 step 4). offset is the definition
// position's byte offset in the defining snapshot, resolved once by the
// caller before construction.
func NewTranslatableName(name, uri string, pos docstore.Position, offset int, lang index.Language, isObjCSelector bool) *TranslatableName {
	return &TranslatableName{
		DefinitionName:       name,
		DefinitionURI:        uri,
		DefinitionPosition:   pos,
		DefinitionOffset:     offset,
		DefinitionLanguage:   lang,
		IsObjectiveCSelector: isObjCSelector,
	}
}

// WithDefinitionName clones t with its definition name replaced. The
// translation cache is not carried over (spec §4.6 step 5): this is how
// the orchestrator builds newTranslatableName from oldTranslatableName.
func (t *TranslatableName) WithDefinitionName(name string) *TranslatableName {
	return &TranslatableName{
		DefinitionName:       name,
		DefinitionURI:        t.DefinitionURI,
		DefinitionPosition:   t.DefinitionPosition,
		DefinitionOffset:     t.DefinitionOffset,
		DefinitionLanguage:   t.DefinitionLanguage,
		IsObjectiveCSelector: t.IsObjectiveCSelector,
	}
}

// ClangName returns t's spelling in the C-family language (spec §4.3).
// For a Clang definition this is DefinitionName verbatim; for a Swift
// definition it invokes the Swift backend's name-translation request.
// The result is memoized: only the first successful computation ever
// calls the backend, and concurrent callers single-flight onto the same
// in-flight call (spec §5).
func (t *TranslatableName) ClangName(ctx context.Context, swift backend.Swift) (string, error) {
	if t.clangCached != nil {
		return *t.clangCached, nil
	}

	switch t.DefinitionLanguage {
	case index.LanguageObjectiveC, index.LanguageC, index.LanguageCPP:
		t.clangCached = &t.DefinitionName
		return t.DefinitionName, nil
	case index.LanguageSwift:
		v, err, _ := t.group.Do("clang", func() (any, error) {
			return t.translateSwiftToClang(ctx, swift)
		})
		if err != nil {
			return "", err
		}
		result := v.(string)
		t.clangCached = &result
		return result, nil
	default:
		return "", &UnsupportedLanguageError{Language: t.DefinitionLanguage}
	}
}

func (t *TranslatableName) translateSwiftToClang(ctx context.Context, swift backend.Swift) (string, error) {
	parsed := ParseCompoundName(t.DefinitionName)
	argNames := make([]string, len(parsed.Parameters()))
	for i, p := range parsed.Parameters() {
		argNames[i] = p.LabelOrUnderscore()
	}

	req := backend.TranslateNameRequest{
		SourceFile: docstore.URIToPath(t.DefinitionURI),
		Offset:     t.DefinitionOffset,
		NameKind:   backend.NameKindSwift,
		BaseName:   parsed.BaseName(),
		ArgNames:   argNames,
	}
	resp, err := swift.TranslateName(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.SelectorPieces) == 0 && !resp.IsZeroArgSelector {
		return "", &MalformedTranslationResponseError{Direction: "swift->objc", Payload: resp}
	}

	var b strings.Builder
	multiArg := len(resp.SelectorPieces) > 1
	for _, piece := range resp.SelectorPieces {
		b.WriteString(piece)
		if multiArg {
			b.WriteByte(':')
		}
	}
	return b.String(), nil
}

// SwiftName returns t's spelling in the Swift-family language (spec
// §4.3). For a Swift definition this is DefinitionName verbatim; for a
// Clang definition it invokes the Swift backend's name-translation
// request at the given call-site position/snapshot. The result is
// memoized the same way as ClangName.
func (t *TranslatableName) SwiftName(ctx context.Context, atPosition docstore.Position, inSnapshot docstore.Snapshot, swift backend.Swift) (string, error) {
	if t.swiftCached != nil {
		return *t.swiftCached, nil
	}

	switch t.DefinitionLanguage {
	case index.LanguageSwift:
		t.swiftCached = &t.DefinitionName
		return t.DefinitionName, nil
	case index.LanguageObjectiveC, index.LanguageC, index.LanguageCPP:
		v, err, _ := t.group.Do("swift", func() (any, error) {
			return t.translateClangToSwift(ctx, atPosition, inSnapshot, swift)
		})
		if err != nil {
			return "", err
		}
		result := v.(string)
		t.swiftCached = &result
		return result, nil
	default:
		return "", &UnsupportedLanguageError{Language: t.DefinitionLanguage}
	}
}

func (t *TranslatableName) translateClangToSwift(ctx context.Context, atPosition docstore.Position, inSnapshot docstore.Snapshot, swift backend.Swift) (string, error) {
	offset, ok := inSnapshot.OffsetFromPosition(atPosition)
	if !ok {
		return "", &CannotComputeOffsetError{Position: atPosition}
	}

	req := backend.TranslateNameRequest{
		SourceFile: docstore.URIToPath(inSnapshot.URI()),
		Offset:     offset,
		NameKind:   backend.NameKindObjC,
	}
	if t.IsObjectiveCSelector {
		pieces := strings.Split(t.DefinitionName, ":")
		// strings.Split on a trailing ":" yields a trailing empty
		// element; drop it the same way CompoundName parsing does.
		if len(pieces) > 0 && pieces[len(pieces)-1] == "" {
			pieces = pieces[:len(pieces)-1]
		}
		for i, p := range pieces {
			pieces[i] = p + ":"
		}
		req.SelectorPieces = pieces
	} else {
		req.BaseName = t.DefinitionName
	}

	resp, err := swift.TranslateName(ctx, req)
	if err != nil {
		return "", err
	}
	if resp.BaseName == "" {
		return "", &MalformedTranslationResponseError{Direction: "objc->swift", Payload: resp}
	}

	if len(resp.ArgNames) == 0 {
		return resp.BaseName, nil
	}
	var b strings.Builder
	b.WriteString(resp.BaseName)
	b.WriteByte('(')
	for _, arg := range resp.ArgNames {
		if arg == "" {
			b.WriteString("_:")
		} else {
			b.WriteString(arg)
			b.WriteByte(':')
		}
	}
	b.WriteByte(')')
	return b.String(), nil
}

// UnsupportedLanguageError reports that a definition language is
// neither Swift-family nor Clang-family.
type UnsupportedLanguageError struct {
	Language index.Language
}

func (e *UnsupportedLanguageError) Error() string {
	return "unsupported definition language for translation"
}

func (e *UnsupportedLanguageError) Unwrap() error { return ErrUnsupportedLanguage }
