// Copyright © 2024 The renamebridge authors

// Package index defines the symbol-index contract the rename engine
// consumes (spec §1, §6: "out of scope, interfaced only") and an
// in-memory implementation used by the orchestrator's own tests and by
// small standalone deployments.
//
// The occurrence record and role bitmask follow the vocabulary of
// sourcegraph/scip's Occurrence/SymbolRole, rather than inventing a new
// one, since that is the closed-source-independent index wire format the
// rest of the example pack already reaches for (SimplyLiz-CodeMCP).
package index

import (
	"fmt"
	"os"
	"sort"
	"sync"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"
)

// Roles is a bitmask of symbol roles. The bit values follow the SCIP
// protocol's own SymbolRole constants (see scippb.Occurrence.SymbolRoles,
// an int32 bitmask) so LoadSCIP below needs no translation table.
type Roles int32

const (
	RoleDefinition        Roles = 1
	RoleImport            Roles = 2
	RoleWriteAccess       Roles = 4
	RoleReference         Roles = 8
	RoleGenerated         Roles = 16
	RoleTest              Roles = 32
	RoleForwardDefinition Roles = 64
	// RoleCall is not part of the base SCIP protocol; it is this
	// engine's extension bit marking a call-site occurrence, which the
	// rename orchestrator needs to distinguish from a plain read
	// reference (spec §3, RenameLocation.usage).
	RoleCall Roles = 128
)

// Has reports whether r includes the given role bit.
func (r Roles) Has(role Roles) bool {
	return r&role != 0
}

// Language identifies the defining language of an indexed symbol.
type Language int

const (
	LanguageUnknown Language = iota
	LanguageSwift
	LanguageObjectiveC
	LanguageC
	LanguageCPP
)

// SymbolKind classifies what a USR denotes, enough to decide
// isObjectiveCSelector (spec §4.6 step 4: "language is Objective-C AND
// kind in {instanceMethod, classMethod}").
type SymbolKind int

const (
	SymbolKindUnknown SymbolKind = iota
	SymbolKindFunction
	SymbolKindInstanceMethod
	SymbolKindClassMethod
	SymbolKindType
	SymbolKindVariable
)

// Symbol is the defining information about one USR.
type Symbol struct {
	USR      string
	Name     string
	Language Language
	Kind     SymbolKind
}

// Location is a position within a file, as reported by the index: a
// path (not a URI) plus a 1-based line and 1-based UTF-8 column.
type Location struct {
	Path       string
	Line       int
	UTF8Column int
}

// Occurrence is one recorded occurrence of a symbol.
type Occurrence struct {
	Symbol   Symbol
	Location Location
	Roles    Roles
}

// Index is the read-only contract the rename engine depends on.
type Index interface {
	// Occurrences returns every recorded occurrence of usr whose Roles
	// intersect roleMask. Pass 0 to request all occurrences regardless
	// of role.
	Occurrences(usr string, roleMask Roles) []Occurrence

	// SymbolProvider reports which backend owns path, or false if path
	// is not covered by any known backend (spec §4.6 step 8: "unknown ->
	// skip").
	SymbolProvider(path string) (Language, bool)
}

// InMemory is a simple, thread-safe Index backed by a slice of
// occurrences, suitable for tests and small single-process deployments.
type InMemory struct {
	mu          sync.RWMutex
	occurrences []Occurrence
	providers   map[string]Language
}

// NewInMemory creates an empty in-memory index.
func NewInMemory() *InMemory {
	return &InMemory{providers: make(map[string]Language)}
}

// Add records an occurrence in the index.
func (idx *InMemory) Add(occ Occurrence) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.occurrences = append(idx.occurrences, occ)
}

// SetProvider registers which language backend owns path.
func (idx *InMemory) SetProvider(path string, lang Language) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.providers[path] = lang
}

func (idx *InMemory) Occurrences(usr string, roleMask Roles) []Occurrence {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	var out []Occurrence
	for _, occ := range idx.occurrences {
		if occ.Symbol.USR != usr {
			continue
		}
		if roleMask != 0 && !occ.Roles.Has(roleMask) {
			continue
		}
		out = append(out, occ)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Location.Path != out[j].Location.Path {
			return out[i].Location.Path < out[j].Location.Path
		}
		if out[i].Location.Line != out[j].Location.Line {
			return out[i].Location.Line < out[j].Location.Line
		}
		return out[i].Location.UTF8Column < out[j].Location.UTF8Column
	})
	return out
}

func (idx *InMemory) SymbolProvider(path string) (Language, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	lang, ok := idx.providers[path]
	return lang, ok
}

// GroupByFile partitions occurrences by their file path, preserving each
// group's relative order.
func GroupByFile(occurrences []Occurrence) map[string][]Occurrence {
	groups := make(map[string][]Occurrence)
	for _, occ := range occurrences {
		groups[occ.Location.Path] = append(groups[occ.Location.Path], occ)
	}
	return groups
}

// LoadSCIP reads a SCIP index protobuf from path and populates an
// InMemory index from its documents' occurrences, keyed by SCIP symbol
// string in place of a USR. Symbols without a Definition-role occurrence
// in the index are still recorded as References.
func LoadSCIP(path string) (*InMemory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading SCIP index %s: %w", path, err)
	}
	var doc scippb.Index
	if err := proto.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing SCIP index %s: %w", path, err)
	}

	idx := NewInMemory()
	for _, d := range doc.Documents {
		idx.SetProvider(d.RelativePath, scipLanguage(d.Language))
		for _, occ := range d.Occurrences {
			line, col := scipRangeStart(occ.Range)
			idx.Add(Occurrence{
				Symbol: Symbol{USR: occ.Symbol, Language: scipLanguage(d.Language)},
				Location: Location{
					Path:       d.RelativePath,
					Line:       line,
					UTF8Column: col,
				},
				Roles: Roles(occ.SymbolRoles),
			})
		}
	}
	return idx, nil
}

// scipRangeStart converts a SCIP range ([startLine, startChar, ...], all
// 0-based) into a 1-based line / 1-based UTF-8 column pair.
func scipRangeStart(r []int32) (line, col int) {
	if len(r) < 2 {
		return 0, 0
	}
	return int(r[0]) + 1, int(r[1]) + 1
}

func scipLanguage(name string) Language {
	switch name {
	case "swift":
		return LanguageSwift
	case "objective-c", "objective-c++":
		return LanguageObjectiveC
	case "c":
		return LanguageC
	case "c++":
		return LanguageCPP
	default:
		return LanguageUnknown
	}
}
